package models

import "time"

// ReleaseLayout is the wire format of Album.Release.
const ReleaseLayout = "2006-01-02"

// Album belongs to at most one artist and is unique per (title, artist).
type Album struct {
	ID       uint      `json:"-" gorm:"primaryKey"`
	Title    string    `json:"title" gorm:"size:255;not null;uniqueIndex:idx_album_title_artist"`
	Release  time.Time `json:"release" gorm:"type:date;not null"`
	Genre    *string   `json:"genre" gorm:"size:255"`
	Discs    int       `json:"discs" gorm:"not null;default:1"`
	ArtistID *uint     `json:"-" gorm:"uniqueIndex:idx_album_title_artist"`
	Artist   *Artist   `json:"-"`
	Tracks   []Track   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

// ArtistKey is the unique name of the owning artist, empty when the album
// has none or the artist was not loaded.
func (a *Album) ArtistKey() string {
	if a.Artist == nil {
		return ""
	}
	return a.Artist.UniqueName
}

// Apply replaces every writable field with the values of doc. Missing
// optional fields fall back to their defaults.
func (a *Album) Apply(doc map[string]any) error {
	title, err := requiredString(doc, "title")
	if err != nil {
		return err
	}
	release, err := requiredString(doc, "release")
	if err != nil {
		return err
	}
	releaseDate, err := time.Parse(ReleaseLayout, release)
	if err != nil {
		return invalidValue("release must be a date in YYYY-MM-DD form, got %q", release)
	}
	genre, err := optionalString(doc, "genre")
	if err != nil {
		return err
	}
	discs, err := optionalInt(doc, "discs", 1)
	if err != nil {
		return err
	}
	if discs < 1 {
		return invalidValue("discs must be at least 1, got %d", discs)
	}

	a.Title = title
	a.Release = releaseDate
	a.Genre = genre
	a.Discs = discs
	return nil
}

// Document returns the writable fields as they appear on the wire, plus the
// owning artist's unique name or null.
func (a *Album) Document() map[string]any {
	var artist any
	if key := a.ArtistKey(); key != "" {
		artist = key
	}
	var genre any
	if a.Genre != nil {
		genre = *a.Genre
	}
	return map[string]any{
		"title":   a.Title,
		"release": a.Release.Format(ReleaseLayout),
		"genre":   genre,
		"discs":   a.Discs,
		"artist":  artist,
	}
}
