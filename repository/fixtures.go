package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/faizan/stadium/models"
)

// Populate loads a small demonstration catalog in one transaction.
func Populate(ctx context.Context, store *Store) error {
	return store.Transaction(ctx, func(tx *Store) error {
		choreographies := []models.Choreography{
			{Name: "chore", Description: "A choreography to dance to"},
			{Name: "un truc", Description: "Un truc de ouf"},
			{Name: "namemodified", Description: "Renamed once already"},
		}
		for i := range choreographies {
			if err := tx.Choreographies().Create(ctx, &choreographies[i]); err != nil {
				return err
			}
		}

		artists := []models.Artist{
			{Name: "ben10", UniqueName: "nasmus"},
			{Name: "desChamps", UniqueName: "zizou"},
			{Name: "hamoud", UniqueName: "boualam"},
			{Name: "john", UniqueName: "snow"},
		}
		for i := range artists {
			if err := tx.Artists().Create(ctx, &artists[i]); err != nil {
				return err
			}
		}

		genre := "Rap"
		album := models.Album{
			Title:   "album1",
			Release: time.Date(2021, time.November, 12, 0, 0, 0, 0, time.UTC),
			Genre:   &genre,
			Discs:   1,
		}
		if err := tx.Albums().Create(ctx, "nasmus", &album); err != nil {
			return err
		}

		track := models.Track{
			Title:            "track1",
			DiscNumber:       1,
			TrackNumber:      8,
			Length:           "00:03:40",
			Lyrics:           "tttt",
			ChoreographyName: "chore",
		}
		return tx.Tracks().Create(ctx, &album, &track)
	})
}

// Reset deletes every catalog row, children first.
func Reset(ctx context.Context, store *Store) error {
	return store.Transaction(ctx, func(tx *Store) error {
		for _, model := range []any{&models.Track{}, &models.Album{}, &models.Artist{}, &models.Choreography{}} {
			if err := tx.db.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("reset %T: %w", model, err)
			}
		}
		return nil
	})
}
