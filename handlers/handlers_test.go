package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizan/stadium/config"
	"github.com/faizan/stadium/logging"
	"github.com/faizan/stadium/mason"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/schemas"
)

const jsonType = "application/json"

func newTestRouter(t *testing.T, populate bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(config.Database{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "handlers.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.Close(db) })
	require.NoError(t, config.Migrate(context.Background(), db))

	store := repository.NewStore(db)
	if populate {
		require.NoError(t, repository.Populate(context.Background(), store))
	}
	gate, err := schemas.NewGate()
	require.NoError(t, err)
	return SetupRouter(NewHandler(store, gate, logging.Discard()))
}

func doRequest(r http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func controls(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	ctrls, ok := body["@controls"].(map[string]any)
	require.True(t, ok, "document has no @controls")
	return ctrls
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	errBody, ok := body["@error"].(map[string]any)
	require.True(t, ok, "document has no @error")
	messages, ok := errBody["@messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
	assert.Equal(t, mason.ErrorProfile, controls(t, body)["profile"].(map[string]any)["href"])
	return errBody["@message"].(string)
}

func countItems(t *testing.T, r http.Handler, path string) int {
	t.Helper()
	rec := doRequest(r, http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := decode(t, rec)["items"].([]any)
	require.True(t, ok)
	return len(items)
}

func TestChoreographyCreateThenGet(t *testing.T) {
	r := newTestRouter(t, false)

	rec := doRequest(r, http.MethodPost, "/api/choreographies/", jsonType, `{"name":"chore","description":"blablabla"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasSuffix(location, "/api/choreographies/chore/"), location)

	rec = doRequest(r, http.MethodGet, location, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, mason.MediaType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"name":"chore"`)

	body := decode(t, rec)
	edit := controls(t, body)["edit"].(map[string]any)
	assert.Equal(t, http.MethodPut, edit["method"])

	raw, err := json.Marshal(schemas.For(schemas.Choreography))
	require.NoError(t, err)
	var want any
	require.NoError(t, json.Unmarshal(raw, &want))
	assert.Equal(t, want, edit["schema"])

	namespaces := body["@namespaces"].(map[string]any)
	assert.Equal(t, mason.LinkRelationsURL, namespaces["stadium"].(map[string]any)["name"])
}

func TestMissingItemsAreNotFound(t *testing.T) {
	r := newTestRouter(t, true)

	paths := []string{
		"/api/choreographies/nonexistent/",
		"/api/artists/nobody/",
		"/api/artists/nobody/albums/",
		"/api/artists/nasmus/albums/nothing/",
		"/api/albums/album1/",
		"/api/artists/nasmus/albums/album1/1/99/",
		"/api/artists/nasmus/albums/album1/one/8/",
		"/profiles/unknown/",
		"/api/nothing/",
		"/nowhere",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := doRequest(r, http.MethodGet, path, "", "")
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Not found", errorMessage(t, rec))
		})
	}
}

func TestUnsupportedMethods(t *testing.T) {
	r := newTestRouter(t, true)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/api/artists/"},
		{http.MethodPost, "/api/choreographies/chore/"},
		{http.MethodDelete, "/api/"},
		{http.MethodPatch, "/api/artists/nasmus/"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doRequest(r, tt.method, tt.path, jsonType, `{}`)
			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, mason.MediaType, rec.Header().Get("Content-Type"))
			assert.Equal(t, "Method not allowed", errorMessage(t, rec))
		})
	}
}

func TestWritesRejectNonJSON(t *testing.T) {
	r := newTestRouter(t, true)

	collections := map[string]string{
		"/api/artists/":                      `{"name":"a","unique_name":"a"}`,
		"/api/choreographies/":               `{"name":"c","description":"d"}`,
		"/api/albums/":                       `{"title":"t","release":"2020-01-01"}`,
		"/api/artists/nasmus/albums/":        `{"title":"t","release":"2020-01-01"}`,
		"/api/artists/nasmus/albums/album1/": `{"title":"t","track_number":1,"length":"00:01:00","lyrics":""}`,
	}
	for path, body := range collections {
		t.Run(path, func(t *testing.T) {
			before := countItems(t, r, path)

			rec := doRequest(r, http.MethodPost, path, "text/plain", body)
			require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
			assert.Equal(t, "Unsupported media type", errorMessage(t, rec))

			rec = doRequest(r, http.MethodPost, path, jsonType, "not json")
			require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

			assert.Equal(t, before, countItems(t, r, path))
		})
	}
}

func TestWritesRejectInvalidDocuments(t *testing.T) {
	r := newTestRouter(t, true)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"missing field", "/api/artists/", `{"name":"a"}`},
		{"wrong type", "/api/choreographies/", `{"name":"c","description":5}`},
		{"extra field", "/api/choreographies/", `{"name":"c","description":"d","id":1}`},
		{"bad date", "/api/albums/", `{"title":"t","release":"yesterday"}`},
		{"bad length", "/api/artists/nasmus/albums/album1/", `{"title":"t","track_number":1,"length":"long","lyrics":""}`},
		{"name too long", "/api/choreographies/", `{"name":"` + strings.Repeat("c", 65) + `","description":"d"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := countItems(t, r, tt.path)
			rec := doRequest(r, http.MethodPost, tt.path, jsonType, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, "Invalid JSON document", errorMessage(t, rec))
			assert.Equal(t, before, countItems(t, r, tt.path))
		})
	}
}

func TestConflicts(t *testing.T) {
	r := newTestRouter(t, true)

	rec := doRequest(r, http.MethodPost, "/api/artists/", jsonType, `{"name":"x","unique_name":"nasmus"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already exists", errorMessage(t, rec))

	rec = doRequest(r, http.MethodPost, "/api/artists/nasmus/albums/", jsonType, `{"title":"album1","release":"2020-01-01"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The same title under another artist is a different album.
	rec = doRequest(r, http.MethodPost, "/api/artists/zizou/albums/", jsonType, `{"title":"album1","release":"2020-01-01"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, http.MethodPost, "/api/artists/nasmus/albums/album1/", jsonType,
		`{"title":"again","track_number":8,"length":"00:01:00","lyrics":""}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(r, http.MethodPost, "/api/artists/nasmus/albums/album1/", jsonType,
		`{"title":"t","track_number":2,"length":"00:01:00","lyrics":"","choreography":"missing"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(r, http.MethodPut, "/api/artists/zizou/", jsonType, `{"name":"x","unique_name":"nasmus"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = doRequest(r, http.MethodGet, "/api/artists/zizou/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestArtistDeleteCascades(t *testing.T) {
	r := newTestRouter(t, false)

	rec := doRequest(r, http.MethodPost, "/api/artists/", jsonType, `{"name":"a","unique_name":"a"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(r, http.MethodPost, "/api/artists/a/albums/", jsonType, `{"title":"alb","release":"2020-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	albumURL := rec.Header().Get("Location")
	assert.Equal(t, "/api/artists/a/albums/alb/", albumURL)
	rec = doRequest(r, http.MethodPost, albumURL, jsonType, `{"title":"t1","track_number":1,"length":"00:02:00","lyrics":"la"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	trackURL := rec.Header().Get("Location")
	assert.Equal(t, "/api/artists/a/albums/alb/1/1/", trackURL)

	require.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, trackURL, "", "").Code)

	rec = doRequest(r, http.MethodDelete, "/api/artists/a/", "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, albumURL, "", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, trackURL, "", "").Code)
	assert.Zero(t, countItems(t, r, "/api/albums/"))
}

func TestArtistRename(t *testing.T) {
	r := newTestRouter(t, true)

	rec := doRequest(r, http.MethodPut, "/api/artists/nasmus/", jsonType, `{"name":"ben11","unique_name":"nasmus2"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/artists/nasmus/", "", "").Code)

	rec = doRequest(r, http.MethodGet, "/api/artists/nasmus2/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ben11", body["name"])
	assert.Equal(t, "/api/artists/nasmus2/albums/", controls(t, body)[mason.RelAlbumsBy].(map[string]any)["href"])

	// Albums follow their artist.
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/artists/nasmus2/albums/album1/", "", "").Code)
}

func TestChoreographyRename(t *testing.T) {
	r := newTestRouter(t, true)

	rec := doRequest(r, http.MethodPut, "/api/choreographies/chore/", jsonType, `{"name":"chore2","description":"d"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/choreographies/chore/", "", "").Code)

	rec = doRequest(r, http.MethodGet, "/api/choreographies/chore2/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "d", decode(t, rec)["description"])

	// Tracks keep pointing at the renamed choreography.
	rec = doRequest(r, http.MethodGet, "/api/artists/nasmus/albums/album1/1/8/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "chore2", body["choreography"])
	assert.Equal(t, "/api/choreographies/chore2/", controls(t, body)[mason.RelChoreography].(map[string]any)["href"])
}

func TestUpdateChecksExistenceBeforeBody(t *testing.T) {
	r := newTestRouter(t, true)

	rec := doRequest(r, http.MethodPut, "/api/choreographies/missing/", "text/plain", "x")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(r, http.MethodPut, "/api/choreographies/chore/", "text/plain", "x")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = doRequest(r, http.MethodPut, "/api/choreographies/chore/", jsonType, `{"name":"chore"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(r, http.MethodPut, "/api/choreographies/chore/", jsonType, `{"name":"chore","description":"new"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "new", decode(t, doRequest(r, http.MethodGet, "/api/choreographies/chore/", "", ""))["description"])
}

func TestAlbumDocumentListsTracks(t *testing.T) {
	r := newTestRouter(t, true)
	albumURL := "/api/artists/nasmus/albums/album1/"

	rec := doRequest(r, http.MethodPost, albumURL, jsonType, `{"title":"intro","track_number":1,"length":"00:01:00","lyrics":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, http.MethodGet, albumURL, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "album1", body["title"])
	assert.Equal(t, "2021-11-12", body["release"])
	assert.Equal(t, "Rap", body["genre"])
	assert.Equal(t, "nasmus", body["artist"])

	ctrls := controls(t, body)
	assert.Equal(t, albumURL, ctrls["self"].(map[string]any)["href"])
	assert.Equal(t, "/api/artists/nasmus/", ctrls["author"].(map[string]any)["href"])
	assert.Equal(t, http.MethodPost, ctrls[mason.RelAddTrack].(map[string]any)["method"])
	assert.Equal(t, http.MethodDelete, ctrls[mason.RelDelete].(map[string]any)["method"])

	items := body["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "intro", first["title"])
	assert.Equal(t, albumURL+"1/1/", first["@controls"].(map[string]any)["self"].(map[string]any)["href"])
	assert.Equal(t, "track1", items[1].(map[string]any)["title"])
}

func TestTrackDocument(t *testing.T) {
	r := newTestRouter(t, true)

	rec := doRequest(r, http.MethodGet, "/api/artists/nasmus/albums/album1/1/8/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "track1", body["title"])
	assert.Equal(t, "00:03:40", body["length"])
	assert.Equal(t, "chore", body["choreography"])
	assert.Equal(t, float64(8), body["track_number"])

	ctrls := controls(t, body)
	assert.Equal(t, "/api/choreographies/chore/", ctrls[mason.RelChoreography].(map[string]any)["href"])
	assert.Equal(t, "/api/artists/nasmus/albums/album1/", ctrls["up"].(map[string]any)["href"])

	// Deleting the choreography keeps the track.
	require.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/choreographies/chore/", "", "").Code)
	rec = doRequest(r, http.MethodGet, "/api/artists/nasmus/albums/album1/1/8/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Nil(t, body["choreography"])
	assert.NotContains(t, controls(t, body), mason.RelChoreography)
}

func TestTrackMoveAndDelete(t *testing.T) {
	r := newTestRouter(t, true)
	trackURL := "/api/artists/nasmus/albums/album1/1/8/"

	rec := doRequest(r, http.MethodPut, trackURL, jsonType,
		`{"title":"track1","disc_number":1,"track_number":9,"length":"00:03:40","lyrics":"tttt","choreography":"un truc"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, trackURL, "", "").Code)

	moved := "/api/artists/nasmus/albums/album1/1/9/"
	assert.Equal(t, "un truc", decode(t, doRequest(r, http.MethodGet, moved, "", ""))["choreography"])

	require.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, moved, "", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodDelete, moved, "", "").Code)
}

func TestArtistlessAlbums(t *testing.T) {
	r := newTestRouter(t, false)

	rec := doRequest(r, http.MethodPost, "/api/albums/", jsonType, `{"title":"compilation","release":"1999-09-09","discs":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	location := rec.Header().Get("Location")
	assert.Equal(t, "/api/albums/compilation/", location)

	rec = doRequest(r, http.MethodPost, "/api/albums/", jsonType, `{"title":"compilation","release":"1999-09-09"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decode(t, doRequest(r, http.MethodGet, location, "", ""))
	assert.Nil(t, body["artist"])
	assert.Equal(t, float64(2), body["discs"])
	assert.NotContains(t, controls(t, body), "author")

	rec = doRequest(r, http.MethodPost, location, jsonType, `{"title":"t","disc_number":2,"track_number":3,"length":"00:01:00","lyrics":""}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/albums/compilation/2/3/", rec.Header().Get("Location"))

	require.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, location, "", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/albums/compilation/2/3/", "", "").Code)
}

func TestEscapedNaturalKeys(t *testing.T) {
	r := newTestRouter(t, false)

	tests := []struct {
		key      string
		location string
	}{
		{"AC/DC", "/api/artists/AC%2FDC/"},
		{"AC/DC+1", "/api/artists/AC%2FDC%2B1/"},
		{"a+b", "/api/artists/a%2Bb/"},
		{"50%/off", "/api/artists/50%25%2Foff/"},
		{"x y/z", "/api/artists/x%20y%2Fz/"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			body, err := json.Marshal(map[string]string{"name": tt.key, "unique_name": tt.key})
			require.NoError(t, err)
			rec := doRequest(r, http.MethodPost, "/api/artists/", jsonType, string(body))
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			location := rec.Header().Get("Location")
			assert.Equal(t, tt.location, location)

			rec = doRequest(r, http.MethodGet, location, "", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.key, decode(t, rec)["unique_name"])
		})
	}
}

func TestCollections(t *testing.T) {
	r := newTestRouter(t, true)

	rec := doRequest(r, http.MethodGet, "/api/artists/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	items := body["items"].([]any)
	require.Len(t, items, 4)
	first := items[0].(map[string]any)
	assert.Equal(t, "nasmus", first["unique_name"])
	assert.Equal(t, mason.ArtistProfile, first["@controls"].(map[string]any)["profile"].(map[string]any)["href"])
	assert.Equal(t, http.MethodPost, controls(t, body)[mason.RelAddArtist].(map[string]any)["method"])

	assert.Equal(t, 3, countItems(t, r, "/api/choreographies/"))
	assert.Equal(t, 1, countItems(t, r, "/api/albums/"))
	assert.Equal(t, 1, countItems(t, r, "/api/artists/nasmus/albums/"))
	assert.Zero(t, countItems(t, r, "/api/artists/zizou/albums/"))
}

func TestEntryPointAndStaticResources(t *testing.T) {
	r := newTestRouter(t, false)

	rec := doRequest(r, http.MethodGet, "/api/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ctrls := controls(t, decode(t, rec))
	assert.Equal(t, mason.ArtistsURL(), ctrls[mason.RelArtistsAll].(map[string]any)["href"])
	assert.Equal(t, mason.AlbumsURL(), ctrls[mason.RelAlbumsAll].(map[string]any)["href"])
	assert.Equal(t, mason.ChoreographiesURL(), ctrls[mason.RelChoreographiesAll].(map[string]any)["href"])

	for _, profile := range []string{"artist", "album", "track", "choreography", "error"} {
		rec = doRequest(r, http.MethodGet, "/profiles/"+profile+"/", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	}

	rec = doRequest(r, http.MethodGet, mason.LinkRelationsURL, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), mason.RelAddTrack)
}
