package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faizan/stadium/mason"
	"github.com/faizan/stadium/models"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

func (h *Handler) ListChoreographies(c *gin.Context) {
	var choreographies []models.Choreography
	err := h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		var err error
		choreographies, err = tx.Choreographies().List(c.Request.Context())
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	doc := mason.NewStadiumCollection(mason.ChoreographiesURL()).AddControlAddChoreography()
	for i := range choreographies {
		item := &choreographies[i]
		doc.AddItem(mason.NewItem(item.Document(), mason.ChoreographyURL(item.Name), mason.ChoreographyProfile))
	}
	h.writeDocument(c, http.StatusOK, doc)
}

func (h *Handler) CreateChoreography(c *gin.Context) {
	doc, err := h.validate(c, schemas.Choreography)
	if err != nil {
		h.fail(c, err)
		return
	}
	var choreography models.Choreography
	if err := choreography.Apply(doc); err != nil {
		h.fail(c, err)
		return
	}

	err = h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		return tx.Choreographies().Create(c.Request.Context(), &choreography)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, mason.ChoreographyURL(choreography.Name))
}

func (h *Handler) GetChoreography(c *gin.Context) {
	var choreography *models.Choreography
	err := h.store.Transaction(c.Request.Context(), func(tx *repository.Store) error {
		var err error
		choreography, err = tx.Choreographies().Find(c.Request.Context(), c.Param("choreography"))
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	self := mason.ChoreographyURL(choreography.Name)
	doc := mason.NewStadium(choreography.Document()).
		AddLink(mason.RelSelf, self).
		AddLink(mason.RelProfile, mason.ChoreographyProfile).
		AddLink(mason.RelCollection, mason.ChoreographiesURL()).
		AddControlEdit(self, schemas.Choreography).
		AddControlDelete(self, schemas.Choreography).
		AddControlAddChoreography()
	h.writeDocument(c, http.StatusOK, doc)
}

func (h *Handler) UpdateChoreography(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Choreographies().Find(ctx, c.Param("choreography"))
		if err != nil {
			return err
		}
		doc, err := h.validate(c, schemas.Choreography)
		if err != nil {
			return err
		}
		var in models.Choreography
		if err := in.Apply(doc); err != nil {
			return err
		}
		return tx.Choreographies().Update(ctx, existing, in)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}

// DeleteChoreography leaves the tracks danced to the choreography in place
// with no choreography.
func (h *Handler) DeleteChoreography(c *gin.Context) {
	ctx := c.Request.Context()
	err := h.store.Transaction(ctx, func(tx *repository.Store) error {
		choreography, err := tx.Choreographies().Find(ctx, c.Param("choreography"))
		if err != nil {
			return err
		}
		return tx.Choreographies().Delete(ctx, choreography)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	noContent(c)
}
