package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faizan/stadium/models"
)

var trackColumns = []string{"title", "disc_number", "track_number", "length", "lyrics", "choreography_id"}

// TrackKey identifies a track by its position on an album.
type TrackKey struct {
	Album  AlbumKey
	Disc   int
	Number int
}

type Tracks struct {
	db *gorm.DB
}

// Find returns the track at key with its choreography loaded.
func (r *Tracks) Find(ctx context.Context, key TrackKey) (*models.Track, error) {
	album, err := (&Albums{db: r.db}).Find(ctx, key.Album)
	if err != nil {
		return nil, err
	}

	var track models.Track
	err = r.db.WithContext(ctx).Preload("Choreography").
		Where("album_id = ? AND disc_number = ? AND track_number = ?", album.ID, key.Disc, key.Number).
		First(&track).Error
	if err != nil {
		return nil, lookupError(err, "find track",
			"No track was found at disc %d, number %d of album %s", key.Disc, key.Number, key.Album.Title)
	}
	return &track, nil
}

// ListByAlbum returns the tracks of album ordered by disc then number.
func (r *Tracks) ListByAlbum(ctx context.Context, album *models.Album) ([]models.Track, error) {
	var tracks []models.Track
	err := r.db.WithContext(ctx).Preload("Choreography").
		Where("album_id = ?", album.ID).
		Order("disc_number").Order("track_number").
		Find(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("list tracks of %s: %w", album.Title, err)
	}
	return tracks, nil
}

// Create stores track on album, resolving its choreography by name.
func (r *Tracks) Create(ctx context.Context, album *models.Album, track *models.Track) error {
	if err := r.resolveChoreography(ctx, track); err != nil {
		return err
	}
	track.AlbumID = album.ID
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(track).Error
	return classify(err, "create track", "Track %d on disc %d of album '%s' already exists.",
		track.TrackNumber, track.DiscNumber, album.Title)
}

// Update replaces the writable fields of existing with those of in. The
// owning album never changes.
func (r *Tracks) Update(ctx context.Context, existing *models.Track, in models.Track) error {
	if err := r.resolveChoreography(ctx, &in); err != nil {
		return err
	}
	existing.Title = in.Title
	existing.DiscNumber = in.DiscNumber
	existing.TrackNumber = in.TrackNumber
	existing.Length = in.Length
	existing.Lyrics = in.Lyrics
	existing.ChoreographyID = in.ChoreographyID
	existing.Choreography = in.Choreography
	existing.ChoreographyName = in.ChoreographyName
	err := r.db.WithContext(ctx).Model(existing).Select(trackColumns).Omit(clause.Associations).Updates(existing).Error
	return classify(err, "update track", "Track %d on disc %d already exists on this album.",
		in.TrackNumber, in.DiscNumber)
}

func (r *Tracks) Delete(ctx context.Context, track *models.Track) error {
	err := r.db.WithContext(ctx).Delete(&models.Track{}, track.ID).Error
	return classify(err, "delete track", "Track '%s' is still referenced.", track.Title)
}

// resolveChoreography sets ChoreographyID from ChoreographyName. Naming a
// choreography that does not exist is a conflict with the stored state.
func (r *Tracks) resolveChoreography(ctx context.Context, track *models.Track) error {
	track.ChoreographyID = nil
	track.Choreography = nil
	if track.ChoreographyName == "" {
		return nil
	}
	choreography, err := (&Choreographies{db: r.db}).Find(ctx, track.ChoreographyName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return conflict(err, "No choreography was found with the name %s", track.ChoreographyName)
		}
		return err
	}
	track.ChoreographyID = &choreography.ID
	track.Choreography = choreography
	return nil
}
