package schemas

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	gate, err := NewGate()
	require.NoError(t, err)
	return gate
}

func TestGateRejectsNonJSONContent(t *testing.T) {
	gate := newTestGate(t)
	body := []byte(`{"name":"chore","description":"blablabla"}`)

	tests := []struct {
		name        string
		contentType string
		body        []byte
	}{
		{name: "missing content type", contentType: "", body: body},
		{name: "form content type", contentType: "application/x-www-form-urlencoded", body: body},
		{name: "text content type", contentType: "text/plain", body: body},
		{name: "empty body", contentType: "application/json", body: nil},
		{name: "malformed body", contentType: "application/json", body: []byte(`{"name":`)},
		{name: "trailing data", contentType: "application/json", body: []byte(`{} {}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Validate(tt.contentType, tt.body, Choreography)
			assert.ErrorIs(t, err, ErrUnsupportedMediaType)
		})
	}
}

func TestGateRejectsInvalidDocuments(t *testing.T) {
	gate := newTestGate(t)

	tests := []struct {
		name string
		kind Kind
		body string
	}{
		{name: "missing required field", kind: Choreography, body: `{"name":"chore"}`},
		{name: "wrong primitive type", kind: Choreography, body: `{"name":"chore","description":5}`},
		{name: "extra field", kind: Artist, body: `{"name":"a","unique_name":"a","id":3}`},
		{name: "number as string", kind: Track, body: `{"title":"t","track_number":"1","length":"00:03:00","lyrics":""}`},
		{name: "not an object", kind: Artist, body: `["a"]`},
		{name: "name too long", kind: Choreography, body: `{"name":"` + strings.Repeat("x", 65) + `","description":"d"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Validate("application/json", []byte(tt.body), tt.kind)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Message)
			assert.Equal(t, tt.kind, verr.Kind)
		})
	}
}

func TestGateAcceptsNameAtMaxLength(t *testing.T) {
	gate := newTestGate(t)
	_, err := gate.Validate("application/json",
		[]byte(`{"name":"`+strings.Repeat("x", 64)+`","description":"d"}`), Choreography)
	require.NoError(t, err)
}

func TestGatePassesValidDocumentThrough(t *testing.T) {
	gate := newTestGate(t)

	doc, err := gate.Validate("application/vnd.mason+json; charset=utf-8",
		[]byte(`{"title":"t1","track_number":3,"length":"00:03:40","lyrics":"la"}`), Track)
	require.NoError(t, err)

	assert.Equal(t, "t1", doc["title"])
	assert.Equal(t, json.Number("3"), doc["track_number"])
	assert.Len(t, doc, 4)
}

func TestGateUnknownKind(t *testing.T) {
	gate := newTestGate(t)
	_, err := gate.Validate("application/json", []byte(`{}`), Kind("playlist"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidDocument))
}

func TestIsJSONMediaType(t *testing.T) {
	assert.True(t, IsJSONMediaType("application/json"))
	assert.True(t, IsJSONMediaType("application/json; charset=utf-8"))
	assert.True(t, IsJSONMediaType("application/vnd.mason+json"))
	assert.False(t, IsJSONMediaType("text/html"))
	assert.False(t, IsJSONMediaType(""))
	assert.False(t, IsJSONMediaType(";;"))
}
