package store

import "github.com/justyntemme/novel-t/pkg/models"

// LibraryState holds the catalog, the selection and the reading position
type LibraryState struct {
	Books             []models.Book
	SelectedBook      *models.Book
	TOC               []models.TocItem
	CurrentChapter    *models.Chapter
	CurrentChapterIdx int
	CurrentPage       int
	TotalPages        int
	IsFetching        bool
}

// NewLibraryState returns the state before anything was fetched
func NewLibraryState() LibraryState {
	return LibraryState{CurrentPage: 1, TotalPages: 1}
}

// HasChapter reports whether id names an entry of the TOC
func (s LibraryState) HasChapter(id string) bool {
	return s.chapterIndex(id) >= 0
}

func (s LibraryState) chapterIndex(id string) int {
	for i, item := range s.TOC {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// CurrentTocItem returns the TOC entry at CurrentChapterIdx
func (s LibraryState) CurrentTocItem() (models.TocItem, bool) {
	if s.CurrentChapterIdx < 0 || s.CurrentChapterIdx >= len(s.TOC) {
		return models.TocItem{}, false
	}
	return s.TOC[s.CurrentChapterIdx], true
}

// ReduceLibrary applies ev to s. Events whose precondition does not hold
// leave the state untouched.
func ReduceLibrary(s LibraryState, ev LibraryEvent) LibraryState {
	switch ev := ev.(type) {
	case BooksRequested:
		s.IsFetching = true
	case BooksLoaded:
		s.Books = ev.Books
		s.IsFetching = false
	case BooksFailed:
		s.IsFetching = false

	case BookSelected:
		book := ev.Book
		s.SelectedBook = &book
	case BookDeselected:
		s.SelectedBook = nil
		s.TOC = nil
		s.CurrentChapter = nil
		s.CurrentChapterIdx = 0
		s.CurrentPage = 1
		s.TotalPages = 1

	case TocRequested:
		if s.SelectedBook == nil {
			return s
		}
		s.IsFetching = true
	case TocLoaded:
		s.TOC = ev.Items
		s.IsFetching = false
		if s.CurrentChapterIdx >= len(s.TOC) || s.CurrentChapterIdx < 0 {
			s.CurrentChapterIdx = 0
		}
	case TocFailed:
		s.IsFetching = false

	case ChapterRequested:
		if s.SelectedBook == nil || !s.HasChapter(ev.ChapterID) {
			return s
		}
		s.IsFetching = true
	case ChapterLoaded:
		chapter := ev.Chapter
		s.CurrentChapter = &chapter
		s.IsFetching = false
		s.CurrentPage = 1
		s.TotalPages = ComputePages(chapter.Content, ev.Geometry)
	case ChapterFailed:
		s.IsFetching = false

	case ChapterIndexSet:
		if ev.Index < 0 || ev.Index >= len(s.TOC) {
			return s
		}
		s.CurrentChapterIdx = ev.Index
	case PageSet:
		if ev.Page < 1 || ev.Page > s.TotalPages {
			return s
		}
		s.CurrentPage = ev.Page
	case Repaginated:
		if s.CurrentChapter == nil {
			return s
		}
		s.TotalPages = ComputePages(s.CurrentChapter.Content, ev.Geometry)
		s.CurrentPage = min(s.CurrentPage, s.TotalPages)
	}
	return s
}

// clone returns a copy that shares no slices or pointers with s
func (s LibraryState) clone() LibraryState {
	out := s
	if s.Books != nil {
		out.Books = append([]models.Book(nil), s.Books...)
	}
	if s.TOC != nil {
		out.TOC = append([]models.TocItem(nil), s.TOC...)
	}
	if s.SelectedBook != nil {
		book := *s.SelectedBook
		out.SelectedBook = &book
	}
	if s.CurrentChapter != nil {
		chapter := *s.CurrentChapter
		out.CurrentChapter = &chapter
	}
	return out
}
