package cmd

import (
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/faizan/stadium/config"
	"github.com/faizan/stadium/handlers"
	"github.com/faizan/stadium/logging"
	"github.com/faizan/stadium/metrics"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the hypermedia API",
		Long: `Serve opens and migrates the database, then serves the API and the
Prometheus metrics until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd)
			if err != nil {
				return err
			}
			defer config.Close(db)

			gate, err := schemas.NewGate()
			if err != nil {
				return err
			}

			if !strings.EqualFold(a.cfg.Log.Level, "debug") {
				gin.SetMode(gin.ReleaseMode)
			}

			logger := logging.WithComponent(a.logger, "http")
			m := metrics.New()
			h := handlers.NewHandler(repository.NewStore(db), gate, logger)
			router := handlers.SetupRouter(h,
				logging.RequestID(logger),
				logging.RequestLogger(logger),
				m.Middleware(),
			)
			router.GET("/metrics", gin.WrapH(m.Handler()))

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting server", "addr", srv.Addr, "driver", a.cfg.Database.Driver)
			if err := runServer(ctx, srv, a.cfg.Server.ShutdownTimeout, nil); err != nil {
				return err
			}
			a.logger.Info("server stopped")
			return nil
		},
	}
}
