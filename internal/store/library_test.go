package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/novel-t/pkg/models"
)

func sampleTOC(n int) []models.TocItem {
	items := make([]models.TocItem, n)
	for i := range items {
		items[i] = models.TocItem{ID: string(rune('a' + i)), Title: "Chapter", Index: i}
	}
	return items
}

func selectedState(tocLen int) LibraryState {
	s := NewLibraryState()
	s = ReduceLibrary(s, BookSelected{Book: models.Book{ID: "b1", Title: "Book"}})
	s = ReduceLibrary(s, TocLoaded{Items: sampleTOC(tocLen)})
	return s
}

func TestReduceLibrary_FetchLifecycle(t *testing.T) {
	s := NewLibraryState()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 1, s.TotalPages)

	s = ReduceLibrary(s, BooksRequested{})
	assert.True(t, s.IsFetching)

	books := []models.Book{{ID: "1"}, {ID: "2"}}
	s = ReduceLibrary(s, BooksLoaded{Books: books})
	assert.False(t, s.IsFetching)
	assert.Len(t, s.Books, 2)

	s = ReduceLibrary(s, BooksRequested{})
	s = ReduceLibrary(s, BooksFailed{Err: errors.New("boom")})
	assert.False(t, s.IsFetching)
	assert.Len(t, s.Books, 2, "failure keeps the stale catalog")
}

func TestReduceLibrary_EmptyCatalogThenFailure(t *testing.T) {
	s := NewLibraryState()
	s = ReduceLibrary(s, BooksLoaded{Books: []models.Book{}})
	s = ReduceLibrary(s, BooksFailed{})

	assert.NotNil(t, s.Books)
	assert.Empty(t, s.Books)
	assert.False(t, s.IsFetching)
}

func TestReduceLibrary_TocRequestedNeedsSelection(t *testing.T) {
	s := ReduceLibrary(NewLibraryState(), TocRequested{})
	assert.False(t, s.IsFetching)

	s = ReduceLibrary(s, BookSelected{Book: models.Book{ID: "b"}})
	s = ReduceLibrary(s, TocRequested{})
	assert.True(t, s.IsFetching)

	s = ReduceLibrary(s, TocFailed{})
	assert.False(t, s.IsFetching)
}

func TestReduceLibrary_BookSelectedKeepsTOC(t *testing.T) {
	s := selectedState(3)
	s = ReduceLibrary(s, BookSelected{Book: models.Book{ID: "other"}})

	require.NotNil(t, s.SelectedBook)
	assert.Equal(t, "other", s.SelectedBook.ID)
	assert.Len(t, s.TOC, 3)
}

func TestReduceLibrary_BookDeselectedClearsReadingState(t *testing.T) {
	s := selectedState(3)
	s = ReduceLibrary(s, ChapterIndexSet{Index: 2})
	s = ReduceLibrary(s, ChapterLoaded{Chapter: models.Chapter{Title: "x", Content: "a b"}})

	s = ReduceLibrary(s, BookDeselected{})
	assert.Nil(t, s.SelectedBook)
	assert.Nil(t, s.TOC)
	assert.Nil(t, s.CurrentChapter)
	assert.Equal(t, 0, s.CurrentChapterIdx)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, 1, s.TotalPages)
}

func TestReduceLibrary_ChapterRequestedPreconditions(t *testing.T) {
	s := ReduceLibrary(NewLibraryState(), ChapterRequested{ChapterID: "a"})
	assert.False(t, s.IsFetching, "no selected book")

	s = selectedState(2)
	s = ReduceLibrary(s, ChapterRequested{ChapterID: "zz"})
	assert.False(t, s.IsFetching, "unknown chapter id")

	s = ReduceLibrary(s, ChapterRequested{ChapterID: "b"})
	assert.True(t, s.IsFetching)

	s = ReduceLibrary(s, ChapterFailed{})
	assert.False(t, s.IsFetching)
}

func TestReduceLibrary_ChapterLoadedResetsPage(t *testing.T) {
	geo := BrowserGeometry(900)
	long := strings.Repeat("word ", 3200)

	s := selectedState(2)
	s = ReduceLibrary(s, ChapterLoaded{Chapter: models.Chapter{Content: long}, Geometry: geo})
	require.Equal(t, 8, s.TotalPages)

	s = ReduceLibrary(s, PageSet{Page: 5})
	require.Equal(t, 5, s.CurrentPage)

	s = ReduceLibrary(s, ChapterRequested{ChapterID: "b"})
	s = ReduceLibrary(s, ChapterLoaded{Chapter: models.Chapter{Content: long}, Geometry: geo})
	assert.Equal(t, 1, s.CurrentPage)
	assert.False(t, s.IsFetching)
	require.NotNil(t, s.CurrentChapter)
}

func TestReduceLibrary_ChapterIndexStaysInBounds(t *testing.T) {
	s := selectedState(4)
	for _, idx := range []int{3, 7, -1, 0, 4, 2, 100, -50} {
		s = ReduceLibrary(s, ChapterIndexSet{Index: idx})
		assert.GreaterOrEqual(t, s.CurrentChapterIdx, 0)
		assert.Less(t, s.CurrentChapterIdx, len(s.TOC))
	}
	assert.Equal(t, 2, s.CurrentChapterIdx)
}

func TestReduceLibrary_ChapterIndexWithEmptyTOC(t *testing.T) {
	s := ReduceLibrary(NewLibraryState(), ChapterIndexSet{Index: 1})
	assert.Equal(t, 0, s.CurrentChapterIdx)
}

func TestReduceLibrary_TocLoadedClampsIndex(t *testing.T) {
	s := selectedState(5)
	s = ReduceLibrary(s, ChapterIndexSet{Index: 4})

	s = ReduceLibrary(s, TocLoaded{Items: sampleTOC(2)})
	assert.Equal(t, 0, s.CurrentChapterIdx)

	s = ReduceLibrary(s, ChapterIndexSet{Index: 1})
	s = ReduceLibrary(s, TocLoaded{Items: sampleTOC(3)})
	assert.Equal(t, 1, s.CurrentChapterIdx, "still valid index is kept")
}

func TestReduceLibrary_PageSetBounds(t *testing.T) {
	s := selectedState(1)
	s = ReduceLibrary(s, ChapterLoaded{
		Chapter:  models.Chapter{Content: strings.Repeat("w ", 1000)},
		Geometry: BrowserGeometry(900),
	})
	require.Equal(t, 3, s.TotalPages)

	s = ReduceLibrary(s, PageSet{Page: 0})
	assert.Equal(t, 1, s.CurrentPage)
	s = ReduceLibrary(s, PageSet{Page: 4})
	assert.Equal(t, 1, s.CurrentPage)
	s = ReduceLibrary(s, PageSet{Page: 3})
	assert.Equal(t, 3, s.CurrentPage)
}

func TestReduceLibrary_RepaginatedClampsPage(t *testing.T) {
	s := ReduceLibrary(NewLibraryState(), Repaginated{Geometry: BrowserGeometry(200)})
	assert.Equal(t, 1, s.TotalPages, "no chapter resident")

	s = selectedState(1)
	s = ReduceLibrary(s, ChapterLoaded{
		Chapter:  models.Chapter{Content: strings.Repeat("w ", 3200)},
		Geometry: BrowserGeometry(900),
	})
	s = ReduceLibrary(s, PageSet{Page: 8})

	s = ReduceLibrary(s, Repaginated{Geometry: BrowserGeometry(2000)})
	assert.Equal(t, 3, s.TotalPages)
	assert.Equal(t, 3, s.CurrentPage)
}
