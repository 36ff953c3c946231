package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/logging"
	"github.com/faizan/stadium/mason"
	"github.com/faizan/stadium/models"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

// writeDocument renders doc as a Mason document.
func (h *Handler) writeDocument(c *gin.Context, status int, doc *mason.Document) {
	body, err := json.Marshal(doc)
	if err != nil {
		h.requestLogger(c).Error("failed to encode document", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, mason.MediaType, body)
}

func (h *Handler) writeError(c *gin.Context, status int, title, details string) {
	h.writeDocument(c, status, mason.NewError(c.Request.URL.Path, title, details))
}

// fail renders err as an error document with the status of its kind.
// Unclassified errors are logged and rendered as 500.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.writeError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, schemas.ErrUnsupportedMediaType):
		h.writeError(c, http.StatusUnsupportedMediaType, "Unsupported media type", "Requests must be JSON")
	case errors.Is(err, schemas.ErrInvalidDocument), errors.Is(err, models.ErrInvalidValue):
		h.writeError(c, http.StatusBadRequest, "Invalid JSON document", err.Error())
	case errors.Is(err, repository.ErrConflict):
		h.writeError(c, http.StatusConflict, "Already exists", err.Error())
	default:
		h.requestLogger(c).Error("request failed", "path", c.Request.URL.Path, "error", err)
		h.writeError(c, http.StatusInternalServerError, "Internal server error", "The server could not complete the request")
	}
}

// created answers a successful POST.
func created(c *gin.Context, location string) {
	c.Header("Location", location)
	c.Status(http.StatusCreated)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// validate reads the request body and passes it through the gate.
func (h *Handler) validate(c *gin.Context, kind schemas.Kind) (schemas.Document, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", schemas.ErrUnsupportedMediaType, err)
		}
	}
	return h.gate.Validate(c.GetHeader("Content-Type"), body, kind)
}

func (h *Handler) requestLogger(c *gin.Context) *slog.Logger {
	return logging.FromContext(c.Request.Context(), h.logger)
}
