// Package handlers serves the stadium hypermedia API over gin.
package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

// Handler serves every resource of the API. Each request runs its
// repository calls in one transaction.
type Handler struct {
	store  *repository.Store
	gate   *schemas.Gate
	logger *slog.Logger
}

func NewHandler(store *repository.Store, gate *schemas.Gate, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, gate: gate, logger: logger}
}

// SetupRouter registers the API routes on a new engine. middleware runs
// before recovery and every route.
func SetupRouter(h *Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	// Natural keys are path-escaped, so route on the raw path to keep an
	// escaped "/" inside a single segment.
	r.UseRawPath = true
	r.HandleMethodNotAllowed = true
	r.Use(middleware...)
	r.Use(gin.Recovery())

	r.NoRoute(h.NotFound)
	r.NoMethod(h.MethodNotAllowed)

	r.GET("/api/", h.GetEntryPoint)
	r.GET("/profiles/:profile/", h.GetProfile)
	r.GET("/instadium/link-relations/", h.GetLinkRelations)

	r.GET("/api/artists/", h.ListArtists)
	r.POST("/api/artists/", h.CreateArtist)
	r.GET("/api/artists/:artist/", h.GetArtist)
	r.PUT("/api/artists/:artist/", h.UpdateArtist)
	r.DELETE("/api/artists/:artist/", h.DeleteArtist)

	albums := []*gin.RouterGroup{r.Group("/api/albums"), r.Group("/api/artists/:artist/albums")}
	for _, g := range albums {
		g.GET("/", h.ListAlbums)
		g.POST("/", h.CreateAlbum)
		g.GET("/:album/", h.GetAlbum)
		g.PUT("/:album/", h.UpdateAlbum)
		g.DELETE("/:album/", h.DeleteAlbum)
		g.POST("/:album/", h.CreateTrack)
		g.GET("/:album/:disc/:track/", h.GetTrack)
		g.PUT("/:album/:disc/:track/", h.UpdateTrack)
		g.DELETE("/:album/:disc/:track/", h.DeleteTrack)
	}

	r.GET("/api/choreographies/", h.ListChoreographies)
	r.POST("/api/choreographies/", h.CreateChoreography)
	r.GET("/api/choreographies/:choreography/", h.GetChoreography)
	r.PUT("/api/choreographies/:choreography/", h.UpdateChoreography)
	r.DELETE("/api/choreographies/:choreography/", h.DeleteChoreography)

	return r
}
