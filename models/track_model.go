package models

import (
	"fmt"
	"time"
)

// LengthLayout is the wire format of Track.Length.
const LengthLayout = "15:04:05"

// Track belongs to an album and is unique per (disc_number, track_number,
// album). The choreography reference is optional.
type Track struct {
	ID             uint          `json:"-" gorm:"primaryKey"`
	Title          string        `json:"title" gorm:"size:255;not null"`
	DiscNumber     int           `json:"disc_number" gorm:"not null;default:1;uniqueIndex:idx_track_position"`
	TrackNumber    int           `json:"track_number" gorm:"not null;uniqueIndex:idx_track_position"`
	Length         string        `json:"length" gorm:"size:8;not null"`
	Lyrics         string        `json:"lyrics" gorm:"type:text;not null"`
	AlbumID        uint          `json:"-" gorm:"not null;uniqueIndex:idx_track_position"`
	ChoreographyID *uint         `json:"-"`
	Choreography   *Choreography `json:"-" gorm:"constraint:OnDelete:SET NULL;"`

	// ChoreographyName is the natural key named by a write document. The
	// repository resolves it to ChoreographyID.
	ChoreographyName string `json:"-" gorm:"-"`
}

// Apply replaces every writable field with the values of doc. A missing
// disc_number means disc 1; a missing choreography clears the reference.
func (t *Track) Apply(doc map[string]any) error {
	title, err := requiredString(doc, "title")
	if err != nil {
		return err
	}
	disc, err := optionalInt(doc, "disc_number", 1)
	if err != nil {
		return err
	}
	number, err := requiredInt(doc, "track_number")
	if err != nil {
		return err
	}
	if disc < 1 || number < 1 {
		return invalidValue("disc_number and track_number must be positive, got %d and %d", disc, number)
	}
	rawLength, err := requiredString(doc, "length")
	if err != nil {
		return err
	}
	length, err := ParseLength(rawLength)
	if err != nil {
		return err
	}
	lyrics, err := requiredString(doc, "lyrics")
	if err != nil {
		return err
	}
	choreography, err := optionalString(doc, "choreography")
	if err != nil {
		return err
	}

	t.Title = title
	t.DiscNumber = disc
	t.TrackNumber = number
	t.Length = length
	t.Lyrics = lyrics
	t.ChoreographyName = ""
	if choreography != nil {
		t.ChoreographyName = *choreography
	}
	return nil
}

// ParseLength normalises a time-of-day duration to HH:MM:SS.
func ParseLength(s string) (string, error) {
	parsed, err := time.Parse(LengthLayout, s)
	if err != nil {
		return "", invalidValue("length must be a duration in HH:MM:SS form, got %q", s)
	}
	return parsed.Format(LengthLayout), nil
}

// FormatLength renders d as HH:MM:SS. Durations of a day or more cannot be
// represented and are rejected.
func FormatLength(d time.Duration) (string, error) {
	if d < 0 || d >= 24*time.Hour {
		return "", invalidValue("length %s is out of range", d)
	}
	total := int(d.Round(time.Second) / time.Second)
	if total >= 24*60*60 {
		total = 24*60*60 - 1
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60), nil
}

// Document returns the writable fields as they appear on the wire. The
// choreography is the referenced name or null.
func (t *Track) Document() map[string]any {
	var choreography any
	if t.Choreography != nil {
		choreography = t.Choreography.Name
	}
	return map[string]any{
		"title":        t.Title,
		"disc_number":  t.DiscNumber,
		"track_number": t.TrackNumber,
		"length":       t.Length,
		"lyrics":       t.Lyrics,
		"choreography": choreography,
	}
}
