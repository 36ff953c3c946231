// Package schemas holds the JSON Schemas of every writable entity and the
// gate that validates inbound write documents against them.
package schemas

import "fmt"

// Kind tags an entity type.
type Kind string

const (
	Artist       Kind = "artist"
	Album        Kind = "album"
	Track        Kind = "track"
	Choreography Kind = "choreography"
)

// Kinds lists every registered entity kind.
var Kinds = []Kind{Artist, Album, Track, Choreography}

// FieldType is the JSON primitive type of a writable field. Dates and times
// are plain strings here; models coerce them.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
)

// Field describes one writable field.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Description string
	// MaxLength bounds string fields stored in sized columns. Zero means
	// unbounded.
	MaxLength int
}

// registry never contains surrogate keys.
var registry = map[Kind][]Field{
	Artist: {
		{Name: "name", Type: TypeString, Required: true, Description: "Artist name", MaxLength: 255},
		{Name: "unique_name", Type: TypeString, Required: true, Description: "Artist unique name", MaxLength: 255},
	},
	Album: {
		{Name: "title", Type: TypeString, Required: true, Description: "Album title", MaxLength: 255},
		{Name: "release", Type: TypeString, Required: true, Description: "Release date (YYYY-MM-DD)"},
		{Name: "genre", Type: TypeString, Description: "Album genre", MaxLength: 255},
		{Name: "discs", Type: TypeNumber, Description: "Number of discs"},
	},
	Track: {
		{Name: "title", Type: TypeString, Required: true, Description: "Track title", MaxLength: 255},
		{Name: "disc_number", Type: TypeNumber, Description: "Disc number"},
		{Name: "track_number", Type: TypeNumber, Required: true, Description: "Track's number on the disc"},
		{Name: "length", Type: TypeString, Required: true, Description: "Track length (HH:MM:SS)"},
		{Name: "lyrics", Type: TypeString, Required: true, Description: "Track lyrics"},
		{Name: "choreography", Type: TypeString, Description: "Name of the choreography danced to this track", MaxLength: 64},
	},
	Choreography: {
		{Name: "name", Type: TypeString, Required: true, Description: "Choreography name", MaxLength: 64},
		{Name: "description", Type: TypeString, Required: true, Description: "Choreography's description", MaxLength: 255},
	},
}

// Property is a single entry of a schema's properties.
type Property struct {
	Description string    `json:"description,omitempty"`
	Type        FieldType `json:"type"`
	MaxLength   int       `json:"maxLength,omitempty"`
}

// Schema is the JSON Schema of one entity kind. It marshals to the exact
// object embedded in hypermedia controls.
type Schema struct {
	Type                 string              `json:"type"`
	Required             []string            `json:"required"`
	Properties           map[string]Property `json:"properties"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

// Fields returns a copy of the writable fields of kind, in declaration order.
func Fields(kind Kind) ([]Field, error) {
	fields, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out, nil
}

// For builds the JSON Schema of kind. It panics on an unregistered kind,
// which is a programming error.
func For(kind Kind) *Schema {
	fields, err := Fields(kind)
	if err != nil {
		panic(err)
	}

	schema := &Schema{
		Type:       "object",
		Required:   []string{},
		Properties: make(map[string]Property, len(fields)),
	}
	for _, f := range fields {
		schema.Properties[f.Name] = Property{Description: f.Description, Type: f.Type, MaxLength: f.MaxLength}
		if f.Required {
			schema.Required = append(schema.Required, f.Name)
		}
	}
	return schema
}
