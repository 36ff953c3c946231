// Package spotifyimport imports an artist's albums and tracks from an
// external music catalog into the stadium store.
package spotifyimport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/faizan/stadium/config"
)

type Artist struct {
	ID         string
	Name       string
	Popularity int
	Genres     []string
}

type Album struct {
	ID          string
	Name        string
	ReleaseDate string
	// ReleaseDatePrecision is "year", "month" or "day".
	ReleaseDatePrecision string
}

type Track struct {
	Name        string
	DiscNumber  int
	TrackNumber int
	Duration    time.Duration
}

// Catalog is the read side of an external music catalog.
type Catalog interface {
	SearchArtists(ctx context.Context, query string) ([]Artist, error)
	ArtistAlbums(ctx context.Context, artistID string) ([]Album, error)
	AlbumTracks(ctx context.Context, albumID string) ([]Track, error)
}

// SpotifyCatalog reads the Spotify Web API with client credentials. Only the
// first page of each listing is read.
type SpotifyCatalog struct {
	client spotify.Client
	market string
}

// NewSpotifyCatalog fetches an application token for cfg's credentials.
func NewSpotifyCatalog(ctx context.Context, cfg config.Spotify) (*SpotifyCatalog, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("spotify client id and secret are required")
	}
	creds := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotify.TokenURL,
	}
	token, err := creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Spotify API token: %w", err)
	}
	return &SpotifyCatalog{
		client: spotify.Authenticator{}.NewClient(token),
		market: cfg.Market,
	}, nil
}

func (s *SpotifyCatalog) SearchArtists(_ context.Context, query string) ([]Artist, error) {
	var opt *spotify.Options
	if s.market != "" {
		market := s.market
		opt = &spotify.Options{Country: &market}
	}
	results, err := s.client.SearchOpt(query, spotify.SearchTypeArtist, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to search for artist: %w", err)
	}
	if results.Artists == nil {
		return nil, nil
	}

	artists := make([]Artist, 0, len(results.Artists.Artists))
	for _, a := range results.Artists.Artists {
		artists = append(artists, Artist{
			ID:         string(a.ID),
			Name:       a.Name,
			Popularity: a.Popularity,
			Genres:     a.Genres,
		})
	}
	return artists, nil
}

func (s *SpotifyCatalog) ArtistAlbums(_ context.Context, artistID string) ([]Album, error) {
	page, err := s.client.GetArtistAlbums(spotify.ID(artistID))
	if err != nil {
		return nil, fmt.Errorf("failed to list albums of %s: %w", artistID, err)
	}
	albums := make([]Album, 0, len(page.Albums))
	for _, a := range page.Albums {
		albums = append(albums, Album{
			ID:                   string(a.ID),
			Name:                 a.Name,
			ReleaseDate:          a.ReleaseDate,
			ReleaseDatePrecision: a.ReleaseDatePrecision,
		})
	}
	return albums, nil
}

func (s *SpotifyCatalog) AlbumTracks(_ context.Context, albumID string) ([]Track, error) {
	page, err := s.client.GetAlbumTracks(spotify.ID(albumID))
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks of %s: %w", albumID, err)
	}
	tracks := make([]Track, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, Track{
			Name:        t.Name,
			DiscNumber:  t.DiscNumber,
			TrackNumber: t.TrackNumber,
			Duration:    time.Duration(t.Duration) * time.Millisecond,
		})
	}
	return tracks, nil
}
