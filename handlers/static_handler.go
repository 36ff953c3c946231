package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/mason"
)

var profiles = map[string]string{
	"artist": "An artist has a display name and a unique_name that addresses it. " +
		"Deleting an artist deletes its albums and their tracks.",
	"album": "An album has a title, a release date (YYYY-MM-DD), an optional genre and a number of discs. " +
		"Its title is unique per artist. The album document lists its tracks and accepts new ones.",
	"track": "A track sits at a disc_number and track_number on one album, has a length (HH:MM:SS) " +
		"and lyrics, and may name the choreography danced to it.",
	"choreography": "A choreography has a unique name and a description. " +
		"Deleting one leaves the tracks danced to it without a choreography.",
	"error": "An error document carries @error with a short @message and one detail in @messages, " +
		"and the resource_url that failed.",
}

const linkRelations = `stadium:artists-all        GET the collection of every artist
stadium:albums-all         GET the collection of every album
stadium:choreographies-all GET the collection of every choreography
stadium:albums-by          GET the albums of one artist
stadium:add-artist         POST a new artist
stadium:add-album          POST a new album to a collection
stadium:add-track          POST a new track to an album
stadium:add-choreography   POST a new choreography
stadium:choreography       GET the choreography danced to a track
stadium:delete             DELETE the current item
`

// GetEntryPoint godoc
// @Summary API entry point
// @Produce application/vnd.mason+json
// @Success 200 {object} mason.Document
// @Router /api/ [get]
func (h *Handler) GetEntryPoint(c *gin.Context) {
	doc := mason.NewStadium(nil).
		AddControlAllArtists().
		AddControlAllAlbums().
		AddControlAllChoreographies()
	h.writeDocument(c, http.StatusOK, doc)
}

// GetProfile godoc
// @Summary Describe an entity profile
// @Produce plain
// @Param profile path string true "Profile name"
// @Success 200 {string} string
// @Failure 404 {object} mason.Document
// @Router /profiles/{profile}/ [get]
func (h *Handler) GetProfile(c *gin.Context) {
	name := c.Param("profile")
	text, ok := profiles[name]
	if !ok {
		h.writeError(c, http.StatusNotFound, "Not found", "No profile was found with the name "+name)
		return
	}
	c.String(http.StatusOK, text)
}

func (h *Handler) GetLinkRelations(c *gin.Context) {
	c.String(http.StatusOK, linkRelations)
}

// NotFound answers requests that match no route.
func (h *Handler) NotFound(c *gin.Context) {
	h.writeError(c, http.StatusNotFound, "Not found", "No resource was found at "+c.Request.URL.Path)
}

// MethodNotAllowed answers requests whose path exists under other methods.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	h.writeError(c, http.StatusMethodNotAllowed, "Method not allowed",
		c.Request.Method+" is not supported on "+c.Request.URL.Path)
}
