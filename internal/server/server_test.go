package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/justyntemme/novel-t/internal/epub/epubtest"
)

func newLibraryDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chapters := []epubtest.Chapter{
		{Title: "Intro", Body: "Hello."},
		{Title: "Body", Body: "More words here.", Children: []epubtest.Chapter{{Title: "Aside", Body: "Quiet."}}},
	}
	epubtest.Write(t, dir, "book10.epub", epubtest.Book{Title: "Ten", Author: "A", Chapters: chapters})
	epubtest.Write(t, dir, "book2.epub", epubtest.Book{Title: "Two", Author: "B", Chapters: chapters, Cover: []byte("\x89PNG\r\n\x1a\n0000000000")})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a book"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.epub"), 0o755))
	return dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestListBooks_NaturalOrderAndMetadata(t *testing.T) {
	s := New(newLibraryDir(t), nil)

	rec := get(t, s, "/api/books")
	require.Equal(t, http.StatusOK, rec.Code)
	books := decode[[]bookEntry](t, rec)
	require.Len(t, books, 2)
	assert.Equal(t, "book2.epub", books[0].ID)
	assert.Equal(t, "Two", books[0].Name)
	assert.Equal(t, "B", books[0].Author)
	assert.Equal(t, "books/book2.epub/cover", books[0].Cover)
	assert.Equal(t, "book10.epub", books[1].Filename)
	assert.Empty(t, books[1].Cover)
}

func TestGetTOC_BothRouteLayouts(t *testing.T) {
	s := New(newLibraryDir(t), nil)

	for _, path := range []string{"/api/books/book2.epub/toc", "/api/book/book2.epub/toc"} {
		rec := get(t, s, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		toc := decode[[]tocEntry](t, rec)
		require.Len(t, toc, 3)
		assert.Equal(t, "2", toc[2].ID)
		assert.Equal(t, "Aside", toc[2].Title)
		require.NotNil(t, toc[2].Parent)
		assert.Equal(t, "Body", *toc[2].Parent)
		assert.Nil(t, toc[0].Parent)
	}
}

func TestGetChapter(t *testing.T) {
	s := New(newLibraryDir(t), nil)

	rec := get(t, s, "/api/books/book10.epub/chapters/1")
	require.Equal(t, http.StatusOK, rec.Code)
	ch := decode[chapterBody](t, rec)
	assert.Equal(t, "Body", ch.Title)
	assert.Contains(t, ch.Content, "More words here.")

	rec = get(t, s, "/api/book/book10.epub/chapter/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Intro", decode[chapterBody](t, rec).Title)
}

func TestNotFoundDetails(t *testing.T) {
	s := New(newLibraryDir(t), nil)

	tests := []struct {
		path   string
		detail string
	}{
		{"/api/books/missing.epub/toc", detailBookNotFound},
		{"/api/books/..%2Fsecret.epub/toc", detailBookNotFound},
		{"/api/books/book10.epub/chapters/99", detailChapterNotFound},
		{"/api/books/book10.epub/cover", detailCoverNotFound},
		{"/api/nothing", "Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, s, tt.path)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.detail, decode[errorBody](t, rec).Detail)
		})
	}
}

func TestGetCover(t *testing.T) {
	s := New(newLibraryDir(t), nil)

	rec := get(t, s, "/api/books/book2.epub/cover")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s := New(newLibraryDir(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndRequestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := New(t.TempDir(), zap.New(core))

	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/api/health").Code)

	requests := logs.FilterMessage("Request").All()
	require.Len(t, requests, 2)
	assert.Equal(t, int64(http.StatusOK), requests[0].ContextMap()["status"])
}

func TestListBooks_MissingDirectory(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "gone"), nil)
	assert.Equal(t, http.StatusInternalServerError, get(t, s, "/api/books").Code)
}
