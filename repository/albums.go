package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faizan/stadium/models"
)

var albumColumns = []string{"title", "release", "genre", "discs"}

// AlbumKey identifies an album by the unique name of its artist and its
// title. An empty Artist addresses an album without an artist.
type AlbumKey struct {
	Artist string
	Title  string
}

func (k AlbumKey) String() string {
	if k.Artist == "" {
		return k.Title
	}
	return k.Artist + "/" + k.Title
}

type Albums struct {
	db *gorm.DB
}

func (r *Albums) artists() *Artists { return &Artists{db: r.db} }

// Find returns the album addressed by key with its artist loaded.
func (r *Albums) Find(ctx context.Context, key AlbumKey) (*models.Album, error) {
	query := r.db.WithContext(ctx).Preload("Artist").Where("title = ?", key.Title)
	if key.Artist == "" {
		query = query.Where("artist_id IS NULL")
	} else {
		artist, err := r.artists().Find(ctx, key.Artist)
		if err != nil {
			return nil, err
		}
		query = query.Where("artist_id = ?", artist.ID)
	}

	var album models.Album
	if err := query.First(&album).Error; err != nil {
		return nil, lookupError(err, "find album", "No album was found with the name %s", key.Title)
	}
	return &album, nil
}

// List returns every album, with or without an artist.
func (r *Albums) List(ctx context.Context) ([]models.Album, error) {
	var albums []models.Album
	if err := r.db.WithContext(ctx).Preload("Artist").Order("id").Find(&albums).Error; err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// ListByArtist returns the albums owned by the artist with uniqueName.
func (r *Albums) ListByArtist(ctx context.Context, uniqueName string) ([]models.Album, error) {
	artist, err := r.artists().Find(ctx, uniqueName)
	if err != nil {
		return nil, err
	}
	var albums []models.Album
	err = r.db.WithContext(ctx).Where("artist_id = ?", artist.ID).Order("id").Find(&albums).Error
	if err != nil {
		return nil, fmt.Errorf("list albums of %s: %w", uniqueName, err)
	}
	for i := range albums {
		albums[i].Artist = artist
	}
	return albums, nil
}

// Create stores album under the artist with uniqueName, or without an
// artist when uniqueName is empty.
func (r *Albums) Create(ctx context.Context, uniqueName string, album *models.Album) error {
	album.ArtistID = nil
	album.Artist = nil
	if uniqueName != "" {
		artist, err := r.artists().Find(ctx, uniqueName)
		if err != nil {
			return err
		}
		album.ArtistID = &artist.ID
		album.Artist = artist
	} else if err := r.checkArtistless(ctx, album.Title, 0); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(album).Error
	return classify(err, "create album", "Album with name '%s' already exists.", album.Title)
}

// Update replaces the writable fields of existing with those of in. The
// owning artist never changes.
func (r *Albums) Update(ctx context.Context, existing *models.Album, in models.Album) error {
	if existing.ArtistID == nil {
		if err := r.checkArtistless(ctx, in.Title, existing.ID); err != nil {
			return err
		}
	}
	existing.Title = in.Title
	existing.Release = in.Release
	existing.Genre = in.Genre
	existing.Discs = in.Discs
	err := r.db.WithContext(ctx).Model(existing).Select(albumColumns).Omit(clause.Associations).Updates(existing).Error
	return classify(err, "update album", "Album with name '%s' already exists.", in.Title)
}

// Delete removes the album. The database cascades to its tracks.
func (r *Albums) Delete(ctx context.Context, album *models.Album) error {
	err := r.db.WithContext(ctx).Delete(&models.Album{}, album.ID).Error
	return classify(err, "delete album", "Album '%s' is still referenced.", album.Title)
}

// checkArtistless enforces title uniqueness among albums without an artist,
// which the (title, artist_id) index cannot since NULLs compare distinct.
func (r *Albums) checkArtistless(ctx context.Context, title string, exceptID uint) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Album{}).
		Where("title = ? AND artist_id IS NULL AND id <> ?", title, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check album title: %w", err)
	}
	if count > 0 {
		return conflict(nil, "Album with name '%s' already exists.", title)
	}
	return nil
}
