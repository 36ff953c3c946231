package spotifyimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/faizan/stadium/models"
	"github.com/faizan/stadium/repository"
)

// ErrNoArtist is returned when a search matches no artist.
var ErrNoArtist = errors.New("no artist found")

// Result summarises one import.
type Result struct {
	Artist  string
	Albums  int
	Tracks  int
	Skipped int
}

type Importer struct {
	catalog Catalog
	store   *repository.Store
	logger  *slog.Logger
}

func NewImporter(catalog Catalog, store *repository.Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{catalog: catalog, store: store, logger: logger}
}

// ImportArtist creates the most popular artist matching query under
// uniqueName, then each of its albums with their tracks. An empty
// uniqueName uses the catalog name. Albums are imported one transaction
// each; an album that conflicts with stored data is skipped.
func (i *Importer) ImportArtist(ctx context.Context, query, uniqueName string) (Result, error) {
	found, err := i.catalog.SearchArtists(ctx, query)
	if err != nil {
		return Result{}, err
	}
	if len(found) == 0 {
		return Result{}, fmt.Errorf("%w for %q", ErrNoArtist, query)
	}
	best := found[0]
	for _, a := range found[1:] {
		if a.Popularity > best.Popularity {
			best = a
		}
	}
	if uniqueName == "" {
		uniqueName = best.Name
	}

	artist := models.Artist{Name: best.Name, UniqueName: uniqueName}
	err = i.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Artists().Create(ctx, &artist)
	})
	if err != nil {
		return Result{}, err
	}

	var genre *string
	if len(best.Genres) > 0 {
		genre = &best.Genres[0]
	}

	albums, err := i.catalog.ArtistAlbums(ctx, best.ID)
	if err != nil {
		return Result{}, err
	}

	result := Result{Artist: uniqueName}
	for _, a := range albums {
		imported, err := i.importAlbum(ctx, uniqueName, genre, a)
		if errors.Is(err, repository.ErrConflict) || errors.Is(err, models.ErrInvalidValue) {
			i.logger.Warn("skipping album", "artist", uniqueName, "album", a.Name, "error", err)
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("import album %q: %w", a.Name, err)
		}
		result.Albums++
		result.Tracks += imported
	}
	return result, nil
}

func (i *Importer) importAlbum(ctx context.Context, uniqueName string, genre *string, a Album) (int, error) {
	release, err := ParseReleaseDate(a.ReleaseDate, a.ReleaseDatePrecision)
	if err != nil {
		return 0, err
	}
	tracks, err := i.catalog.AlbumTracks(ctx, a.ID)
	if err != nil {
		return 0, err
	}

	album := models.Album{Title: a.Name, Release: release, Genre: genre, Discs: 1}
	for _, t := range tracks {
		if t.DiscNumber > album.Discs {
			album.Discs = t.DiscNumber
		}
	}

	imported := 0
	err = i.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Albums().Create(ctx, uniqueName, &album); err != nil {
			return err
		}
		for _, t := range tracks {
			length, err := models.FormatLength(t.Duration)
			if err != nil {
				return err
			}
			disc := t.DiscNumber
			if disc < 1 {
				disc = 1
			}
			track := models.Track{
				Title:       t.Name,
				DiscNumber:  disc,
				TrackNumber: t.TrackNumber,
				Length:      length,
			}
			if err := tx.Tracks().Create(ctx, &album, &track); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// ParseReleaseDate reads a catalog release date of the given precision.
// Missing month or day default to the first.
func ParseReleaseDate(date, precision string) (time.Time, error) {
	layout := models.ReleaseLayout
	switch precision {
	case "year":
		layout = "2006"
	case "month":
		layout = "2006-01"
	case "day", "":
		if len(date) == len("2006") {
			layout = "2006"
		}
	default:
		return time.Time{}, fmt.Errorf("%w: unknown release date precision %q", models.ErrInvalidValue, precision)
	}
	t, err := time.Parse(layout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: release date %q: %v", models.ErrInvalidValue, date, err)
	}
	return t, nil
}
