package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/novel-t/pkg/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/api")
}

func TestListBooks_MapsFields(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"filename":"moby.epub","name":"Moby Dick","author":"Melville"},{"id":7}]`))
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, models.Book{ID: "moby.epub", Title: "Moby Dick", Author: "Melville"}, books[0])
	assert.Equal(t, "7", books[1].ID)
	assert.Equal(t, models.UntitledBook, books[1].Title)
	assert.Equal(t, models.UnknownAuthor, books[1].Author)
}

func TestListBooks_NotFoundFallsBackToSample(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Book{models.SampleBook}, books)
}

func TestListBooks_NonArrayFallsBackToSample(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"books":[]}`))
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Book{models.SampleBook}, books)
}

func TestListBooks_EmptyArrayIsEmptyCatalog(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestListBooks_ServerErrorIsReturned(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListBooks(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "boom", se.Message)
}

func TestFetchTOC_EscapesBookID(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/my%20book.epub/toc", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 0, "title": "Intro", "href": "intro.xhtml", "parent": nil},
			{"id": 1, "title": "One", "href": "one.xhtml", "parent": "Intro"},
		})
	})

	items, err := c.FetchTOC(context.Background(), "my book.epub")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "0", items[0].ID)
	assert.Equal(t, 1, items[1].Index)
	assert.Equal(t, "Intro", items[1].Parent)
}

func TestFetchTOC_NotFoundCarriesDetail(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Book not found"}`))
	})

	_, err := c.FetchTOC(context.Background(), "missing.epub")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "HTTP 404: Book not found", err.Error())
}

func TestFetchChapter_UsesCustomRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/book/b.epub/chapter/3", r.URL.Path)
		_, _ = w.Write([]byte(`{"title":"Three","content":"<p>hi</p>"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", WithRoutes(Routes{Chapter: "/book/{book}/chapter/{chapter}"}))
	ch, err := c.FetchChapter(context.Background(), "b.epub", "3")
	require.NoError(t, err)
	assert.Equal(t, &models.Chapter{Title: "Three", Content: "<p>hi</p>"}, ch)
}

func TestFetchChapter_CancelledContext(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchChapter(ctx, "b", "0")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchCover_ResolvesRelativeReference(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 6))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/covers/a.png", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	})

	got, err := c.FetchCover(context.Background(), "covers/a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 6), got.Bounds())
}

func TestFetchCover_Empty(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	_, err := c.FetchCover(context.Background(), "")
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusTeapot)
	})
	assert.NoError(t, c.Health(context.Background()))
}
