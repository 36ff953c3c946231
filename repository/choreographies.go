package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/faizan/stadium/models"
)

var choreographyColumns = []string{"name", "description"}

type Choreographies struct {
	db *gorm.DB
}

func (r *Choreographies) Find(ctx context.Context, name string) (*models.Choreography, error) {
	var choreography models.Choreography
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&choreography).Error
	if err != nil {
		return nil, lookupError(err, "find choreography", "No choreography was found with the name %s", name)
	}
	return &choreography, nil
}

func (r *Choreographies) List(ctx context.Context) ([]models.Choreography, error) {
	var choreographies []models.Choreography
	if err := r.db.WithContext(ctx).Order("id").Find(&choreographies).Error; err != nil {
		return nil, fmt.Errorf("list choreographies: %w", err)
	}
	return choreographies, nil
}

func (r *Choreographies) Create(ctx context.Context, choreography *models.Choreography) error {
	err := r.db.WithContext(ctx).Create(choreography).Error
	return classify(err, "create choreography", "Choreography with name '%s' already exists.", choreography.Name)
}

func (r *Choreographies) Update(ctx context.Context, existing *models.Choreography, in models.Choreography) error {
	existing.Name = in.Name
	existing.Description = in.Description
	err := r.db.WithContext(ctx).Model(existing).Select(choreographyColumns).Updates(existing).Error
	return classify(err, "update choreography", "Choreography with name '%s' already exists.", in.Name)
}

// Delete removes the choreography. Tracks danced to it keep existing with
// no choreography.
func (r *Choreographies) Delete(ctx context.Context, choreography *models.Choreography) error {
	err := r.db.WithContext(ctx).Delete(&models.Choreography{}, choreography.ID).Error
	return classify(err, "delete choreography", "Choreography '%s' is still referenced.", choreography.Name)
}
