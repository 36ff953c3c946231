// Package cmd implements the stadium command line.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/faizan/stadium/config"
	"github.com/faizan/stadium/logging"
)

// Version is set at build time with -ldflags.
var Version = "dev"

const (
	configName = "stadium"
	configType = "yaml"
)

// app is the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the stadium command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "stadium",
		Short: "Stadium serves a hypermedia catalog of artists, albums, tracks and choreographies",
		Long: `Stadium is a Mason hypermedia API over a catalog of artists, their albums,
the tracks on those albums and the choreographies danced to them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./stadium.yaml or $HOME/.stadium/stadium.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: json or text")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newPopulateCmd(a),
		newImportArtistCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the config file, environment and flags, then installs the
// logger.
func (a *app) load(cmd *cobra.Command) error {
	v := config.NewViper()
	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.stadium")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || a.configFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	root := cmd.Root().PersistentFlags()
	if err := v.BindPFlag(config.KeyLogLevel, root.Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag(config.KeyLogFormat, root.Lookup("log-format")); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config file", "path", used)
	}
	return nil
}

// openDB connects to the configured database and migrates it.
func (a *app) openDB(cmd *cobra.Command) (*gorm.DB, error) {
	db, err := config.OpenDB(a.cfg.Database, logging.WithComponent(a.logger, "database"))
	if err != nil {
		return nil, err
	}
	if err := config.Migrate(cmd.Context(), db); err != nil {
		_ = config.Close(db)
		return nil, err
	}
	return db, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "stadium "+Version)
		},
	}
}
