package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/mason"
	"github.com/faizan/stadium/models"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

// albumKey reads the album address from the path. Routes under /api/albums/
// carry no artist and address albums without one.
func albumKey(c *gin.Context) repository.AlbumKey {
	return repository.AlbumKey{Artist: c.Param("artist"), Title: c.Param("album")}
}

// ListAlbums godoc
// @Summary List every album, or the albums of one artist
// @Tags albums
// @Produce application/vnd.mason+json
// @Param artist path string false "Artist unique name"
// @Success 200 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Router /api/albums/ [get]
// @Router /api/artists/{artist}/albums/ [get]
func (h *Handler) ListAlbums(c *gin.Context) {
	ctx := c.Request.Context()
	artist := c.Param("artist")

	var albums []models.Album
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if artist == "" {
			albums, err = tx.Albums().List(ctx)
		} else {
			albums, err = tx.Albums().ListByArtist(ctx, artist)
		}
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	doc := mason.NewStadiumCollection(mason.AlbumCollectionURL(artist)).
		AddControlAddAlbum(artist).
		AddControlAllArtists()
	if artist != "" {
		doc.AddLink(mason.RelAuthor, mason.ArtistURL(artist))
		doc.AddControlAllAlbums()
	}
	for i := range albums {
		album := &albums[i]
		doc.AddItem(mason.NewItem(album.Document(), mason.AlbumURL(album.ArtistKey(), album.Title), mason.AlbumProfile))
	}
	h.writeDocument(c, http.StatusOK, doc)
}

// CreateAlbum godoc
// @Summary Add an album, owned by the artist in the path if any
// @Tags albums
// @Accept json
// @Param artist path string false "Artist unique name"
// @Success 201
// @Failure 400 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Failure 409 {object} mason.Document
// @Failure 415 {object} mason.Document
// @Router /api/albums/ [post]
// @Router /api/artists/{artist}/albums/ [post]
func (h *Handler) CreateAlbum(c *gin.Context) {
	doc, err := h.validate(c, schemas.Album)
	if err != nil {
		h.fail(c, err)
		return
	}
	var album models.Album
	if err := album.Apply(doc); err != nil {
		h.fail(c, err)
		return
	}

	artist := c.Param("artist")
	err = h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		return tx.Albums().Create(c.Request.Context(), artist, &album)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, mason.AlbumURL(artist, album.Title))
}

// GetAlbum godoc
// @Summary Get an album with its tracks
// @Tags albums
// @Produce application/vnd.mason+json
// @Success 200 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Router /api/albums/{album}/ [get]
// @Router /api/artists/{artist}/albums/{album}/ [get]
func (h *Handler) GetAlbum(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		album  *models.Album
		tracks []models.Track
	)
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		album, err = tx.Albums().Find(ctx, albumKey(c))
		if err != nil {
			return err
		}
		tracks, err = tx.Tracks().ListByAlbum(ctx, album)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	artist := album.ArtistKey()
	self := mason.AlbumURL(artist, album.Title)
	doc := mason.NewStadiumCollection(self).
		AddLink(mason.RelProfile, mason.AlbumProfile).
		AddLink(mason.RelCollection, mason.AlbumCollectionURL(artist))
	doc.Fields = album.Document()
	if artist != "" {
		doc.AddLink(mason.RelAuthor, mason.ArtistURL(artist))
	}
	doc.AddControlEdit(self, schemas.Album).
		AddControlDelete(self, schemas.Album).
		AddControlAddTrack(artist, album.Title)
	for i := range tracks {
		track := &tracks[i]
		href := mason.TrackURL(artist, album.Title, track.DiscNumber, track.TrackNumber)
		doc.AddItem(mason.NewItem(track.Document(), href, mason.TrackProfile))
	}
	h.writeDocument(c, http.StatusOK, doc)
}

// UpdateAlbum godoc
// @Summary Replace an album
// @Tags albums
// @Accept json
// @Success 204
// @Failure 400 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Failure 409 {object} mason.Document
// @Failure 415 {object} mason.Document
// @Router /api/albums/{album}/ [put]
// @Router /api/artists/{artist}/albums/{album}/ [put]
func (h *Handler) UpdateAlbum(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Albums().Find(ctx, albumKey(c))
		if err != nil {
			return err
		}
		doc, err := h.validate(c, schemas.Album)
		if err != nil {
			return err
		}
		var in models.Album
		if err := in.Apply(doc); err != nil {
			return err
		}
		return tx.Albums().Update(ctx, existing, in)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

// DeleteAlbum godoc
// @Summary Delete an album with its tracks
// @Tags albums
// @Success 204
// @Failure 404 {object} mason.Document
// @Router /api/albums/{album}/ [delete]
// @Router /api/artists/{artist}/albums/{album}/ [delete]
func (h *Handler) DeleteAlbum(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		album, err := tx.Albums().Find(ctx, albumKey(c))
		if err != nil {
			return err
		}
		return tx.Albums().Delete(ctx, album)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
