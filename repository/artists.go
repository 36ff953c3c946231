package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faizan/stadium/models"
)

var artistColumns = []string{"name", "unique_name"}

type Artists struct {
	db *gorm.DB
}

// Find returns the artist with the given unique name.
func (r *Artists) Find(ctx context.Context, uniqueName string) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).Where("unique_name = ?", uniqueName).First(&artist).Error
	if err != nil {
		return nil, lookupError(err, "find artist", "No artist was found with the name %s", uniqueName)
	}
	return &artist, nil
}

// List returns every artist in insertion order.
func (r *Artists) List(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.db.WithContext(ctx).Order("id").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (r *Artists) Create(ctx context.Context, artist *models.Artist) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(artist).Error
	return classify(err, "create artist", "Artist with name '%s' already exists.", artist.UniqueName)
}

// Update replaces the writable fields of existing with those of in.
func (r *Artists) Update(ctx context.Context, existing *models.Artist, in models.Artist) error {
	existing.Name = in.Name
	existing.UniqueName = in.UniqueName
	err := r.db.WithContext(ctx).Model(existing).Select(artistColumns).Omit(clause.Associations).Updates(existing).Error
	return classify(err, "update artist", "Artist with name '%s' already exists.", in.UniqueName)
}

// Delete removes the artist. The database cascades to its albums and their
// tracks.
func (r *Artists) Delete(ctx context.Context, artist *models.Artist) error {
	err := r.db.WithContext(ctx).Delete(&models.Artist{}, artist.ID).Error
	return classify(err, "delete artist", "Artist '%s' is still referenced.", artist.UniqueName)
}
