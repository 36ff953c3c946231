package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/mason"
	"github.com/faizan/stadium/models"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

// ListArtists godoc
// @Summary List artists
// @Tags artists
// @Produce application/vnd.mason+json
// @Success 200 {object} mason.Document
// @Router /api/artists/ [get]
func (h *Handler) ListArtists(c *gin.Context) {
	var artists []models.Artist
	err := h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		var err error
		artists, err = tx.Artists().List(c.Request.Context())
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	doc := mason.NewStadiumCollection(mason.ArtistsURL()).
		AddControlAddArtist().
		AddControlAllAlbums()
	for i := range artists {
		doc.AddItem(mason.NewItem(artists[i].Document(), mason.ArtistURL(artists[i].UniqueName), mason.ArtistProfile))
	}
	h.writeDocument(c, http.StatusOK, doc)
}

// CreateArtist godoc
// @Summary Add an artist
// @Tags artists
// @Accept json
// @Param artist body schemas.Schema true "Artist document"
// @Success 201
// @Failure 400 {object} mason.Document
// @Failure 409 {object} mason.Document
// @Failure 415 {object} mason.Document
// @Router /api/artists/ [post]
func (h *Handler) CreateArtist(c *gin.Context) {
	doc, err := h.validate(c, schemas.Artist)
	if err != nil {
		h.fail(c, err)
		return
	}
	var artist models.Artist
	if err := artist.Apply(doc); err != nil {
		h.fail(c, err)
		return
	}

	err = h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		return tx.Artists().Create(c.Request.Context(), &artist)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, mason.ArtistURL(artist.UniqueName))
}

// GetArtist godoc
// @Summary Get an artist by unique name
// @Tags artists
// @Produce application/vnd.mason+json
// @Param artist path string true "Artist unique name"
// @Success 200 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Router /api/artists/{artist}/ [get]
func (h *Handler) GetArtist(c *gin.Context) {
	var artist *models.Artist
	err := h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		var err error
		artist, err = tx.Artists().Find(c.Request.Context(), c.Param("artist"))
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	self := mason.ArtistURL(artist.UniqueName)
	doc := mason.NewStadium(artist.Document()).
		AddLink(mason.RelSelf, self).
		AddLink(mason.RelProfile, mason.ArtistProfile).
		AddLink(mason.RelCollection, mason.ArtistsURL()).
		AddControlAlbumsBy(artist.UniqueName).
		AddControlEdit(self, schemas.Artist).
		AddControlDelete(self, schemas.Artist).
		AddControlAddArtist()
	h.writeDocument(c, http.StatusOK, doc)
}

// UpdateArtist godoc
// @Summary Replace an artist
// @Tags artists
// @Accept json
// @Param artist path string true "Artist unique name"
// @Success 204
// @Failure 400 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Failure 409 {object} mason.Document
// @Failure 415 {object} mason.Document
// @Router /api/artists/{artist}/ [put]
func (h *Handler) UpdateArtist(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Artists().Find(ctx, c.Param("artist"))
		if err != nil {
			return err
		}
		doc, err := h.validate(c, schemas.Artist)
		if err != nil {
			return err
		}
		var in models.Artist
		if err := in.Apply(doc); err != nil {
			return err
		}
		return tx.Artists().Update(ctx, existing, in)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

// DeleteArtist godoc
// @Summary Delete an artist with its albums and their tracks
// @Tags artists
// @Param artist path string true "Artist unique name"
// @Success 204
// @Failure 404 {object} mason.Document
// @Router /api/artists/{artist}/ [delete]
func (h *Handler) DeleteArtist(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		artist, err := tx.Artists().Find(ctx, c.Param("artist"))
		if err != nil {
			return err
		}
		return tx.Artists().Delete(ctx, artist)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
