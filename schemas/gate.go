package schemas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrUnsupportedMediaType is returned when a write did not declare or
	// parse as JSON content.
	ErrUnsupportedMediaType = errors.New("requests must be JSON")
	// ErrInvalidDocument is matched by every *ValidationError.
	ErrInvalidDocument = errors.New("invalid JSON document")
)

// ValidationError carries the schema validator's message.
type ValidationError struct {
	Kind    Kind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// Document is a parsed write payload that satisfied its schema. Numbers are
// kept as json.Number.
type Document map[string]any

// Gate validates write payloads before any storage access happens.
type Gate struct {
	compiled map[Kind]*jsonschema.Schema
}

// NewGate compiles the schema of every registered kind.
func NewGate() (*Gate, error) {
	g := &Gate{compiled: make(map[Kind]*jsonschema.Schema, len(Kinds))}
	for _, kind := range Kinds {
		raw, err := json.Marshal(For(kind))
		if err != nil {
			return nil, fmt.Errorf("marshal %s schema: %w", kind, err)
		}
		compiled, err := jsonschema.CompileString(schemaURL(kind), string(raw))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		g.compiled[kind] = compiled
	}
	return g, nil
}

func schemaURL(kind Kind) string {
	return "stadium://schemas/" + string(kind) + ".json"
}

// Validate checks that body was sent as JSON and satisfies the schema of
// kind. The parsed document is returned unchanged.
func (g *Gate) Validate(contentType string, body []byte, kind Kind) (Document, error) {
	schema, ok := g.compiled[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if !IsJSONMediaType(contentType) {
		return nil, ErrUnsupportedMediaType
	}

	value, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	if err := schema.Validate(value); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, &ValidationError{Kind: kind, Message: verr.Error()}
		}
		return nil, fmt.Errorf("validate %s document: %w", kind, err)
	}

	doc, ok := value.(map[string]any)
	if !ok {
		// The schema only accepts objects.
		return nil, &ValidationError{Kind: kind, Message: "document must be a JSON object"}
	}
	return Document(doc), nil
}

func decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("request body is required")
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}
	return value, nil
}

// IsJSONMediaType reports whether contentType names JSON, including
// structured-syntax types such as application/vnd.mason+json.
func IsJSONMediaType(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
