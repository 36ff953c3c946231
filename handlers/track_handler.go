package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/mason"
	"github.com/faizan/stadium/models"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

// trackKey reads the track address from the path. A position that is not a
// positive integer addresses no track.
func trackKey(c *gin.Context) (repository.TrackKey, bool) {
	disc, err := strconv.Atoi(c.Param("disc"))
	if err != nil || disc < 1 {
		return repository.TrackKey{}, false
	}
	number, err := strconv.Atoi(c.Param("track"))
	if err != nil || number < 1 {
		return repository.TrackKey{}, false
	}
	return repository.TrackKey{Album: albumKey(c), Disc: disc, Number: number}, true
}

func (h *Handler) trackNotFound(c *gin.Context) {
	h.writeError(c, http.StatusNotFound, "Not found",
		fmt.Sprintf("No track was found at %s/%s of album %s", c.Param("disc"), c.Param("track"), c.Param("album")))
}

// CreateTrack godoc
// @Summary Add a track to an album
// @Description The album resource is the collection of its tracks.
// @Tags tracks
// @Accept json
// @Success 201
// @Failure 400 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Failure 409 {object} mason.Document
// @Failure 415 {object} mason.Document
// @Router /api/albums/{album}/ [post]
// @Router /api/artists/{artist}/albums/{album}/ [post]
func (h *Handler) CreateTrack(c *gin.Context) {
	doc, err := h.validate(c, schemas.Track)
	if err != nil {
		h.fail(c, err)
		return
	}
	var track models.Track
	if err := track.Apply(doc); err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	key := albumKey(c)
	err = h.store.Transaction(ctx, func(tx *repository.Store) error {
		album, err := tx.Albums().Find(ctx, key)
		if err != nil {
			return err
		}
		return tx.Tracks().Create(ctx, album, &track)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, mason.TrackURL(key.Artist, key.Title, track.DiscNumber, track.TrackNumber))
}

// GetTrack godoc
// @Summary Get a track by its position on an album
// @Tags tracks
// @Produce application/vnd.mason+json
// @Param disc path int true "Disc number"
// @Param track path int true "Track number"
// @Success 200 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Router /api/albums/{album}/{disc}/{track}/ [get]
// @Router /api/artists/{artist}/albums/{album}/{disc}/{track}/ [get]
func (h *Handler) GetTrack(c *gin.Context) {
	key, ok := trackKey(c)
	if !ok {
		h.trackNotFound(c)
		return
	}

	var track *models.Track
	err := h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		var err error
		track, err = tx.Tracks().Find(c.Request.Context(), key)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	self := mason.TrackURL(key.Album.Artist, key.Album.Title, track.DiscNumber, track.TrackNumber)
	doc := mason.NewStadium(track.Document()).
		AddLink(mason.RelSelf, self).
		AddLink(mason.RelProfile, mason.TrackProfile).
		AddLink(mason.RelUp, mason.AlbumURL(key.Album.Artist, key.Album.Title))
	if track.Choreography != nil {
		doc.AddLink(mason.RelChoreography, mason.ChoreographyURL(track.Choreography.Name))
	}
	doc.AddControlEdit(self, schemas.Track).
		AddControlDelete(self, schemas.Track)
	h.writeDocument(c, http.StatusOK, doc)
}

// UpdateTrack godoc
// @Summary Replace a track
// @Description Changing disc_number or track_number moves the track on its album.
// @Tags tracks
// @Accept json
// @Success 204
// @Failure 400 {object} mason.Document
// @Failure 404 {object} mason.Document
// @Failure 409 {object} mason.Document
// @Failure 415 {object} mason.Document
// @Router /api/albums/{album}/{disc}/{track}/ [put]
// @Router /api/artists/{artist}/albums/{album}/{disc}/{track}/ [put]
func (h *Handler) UpdateTrack(c *gin.Context) {
	key, ok := trackKey(c)
	if !ok {
		h.trackNotFound(c)
		return
	}

	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Tracks().Find(ctx, key)
		if err != nil {
			return err
		}
		doc, err := h.validate(c, schemas.Track)
		if err != nil {
			return err
		}
		var in models.Track
		if err := in.Apply(doc); err != nil {
			return err
		}
		return tx.Tracks().Update(ctx, existing, in)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

// DeleteTrack godoc
// @Summary Delete a track
// @Tags tracks
// @Success 204
// @Failure 404 {object} mason.Document
// @Router /api/albums/{album}/{disc}/{track}/ [delete]
// @Router /api/artists/{artist}/albums/{album}/{disc}/{track}/ [delete]
func (h *Handler) DeleteTrack(c *gin.Context) {
	key, ok := trackKey(c)
	if !ok {
		h.trackNotFound(c)
		return
	}

	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		track, err := tx.Tracks().Find(ctx, key)
		if err != nil {
			return err
		}
		return tx.Tracks().Delete(ctx, track)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
