package ui

import (
	"context"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/pkg/models"
)

// Catalog is the data access the UI needs. *api.Client implements it.
type Catalog interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	FetchTOC(ctx context.Context, bookID string) ([]models.TocItem, error)
	FetchChapter(ctx context.Context, bookID, chapterID string) (*models.Chapter, error)
	FetchCover(ctx context.Context, ref string) (image.Image, error)
}

// Fetch commands resolve to store events. Responses are applied in the
// order they arrive; a late response for a book that is no longer
// selected still lands.

func (a *App) fetchBooks() tea.Cmd {
	ctx, catalog, log := a.ctx, a.catalog, a.log
	return func() tea.Msg {
		books, err := catalog.ListBooks(ctx)
		if err != nil {
			log.Debug("List books failed", zap.Error(err))
			return store.BooksFailed{Err: err}
		}
		return store.BooksLoaded{Books: books}
	}
}

func (a *App) fetchTOC(bookID string) tea.Cmd {
	ctx, catalog, log := a.ctx, a.catalog, a.log
	return func() tea.Msg {
		items, err := catalog.FetchTOC(ctx, bookID)
		if err != nil {
			log.Debug("Fetch TOC failed", zap.String("book", bookID), zap.Error(err))
			return store.TocFailed{Err: err}
		}
		return store.TocLoaded{Items: items}
	}
}

// fetchChapter resolves to a ChapterLoaded without geometry. The App
// fills it in from the current window when the event is applied.
func (a *App) fetchChapter(bookID, chapterID string) tea.Cmd {
	ctx, catalog, log := a.ctx, a.catalog, a.log
	return func() tea.Msg {
		ch, err := catalog.FetchChapter(ctx, bookID, chapterID)
		if err != nil {
			log.Debug("Fetch chapter failed", zap.String("book", bookID), zap.String("chapter", chapterID), zap.Error(err))
			return store.ChapterFailed{Err: err}
		}
		if ch == nil {
			ch = &models.Chapter{}
		}
		return store.ChapterLoaded{Chapter: *ch}
	}
}

// loadCover fetches a cover for the details screen
func (a *App) loadCover(ref string) (image.Image, error) {
	return a.catalog.FetchCover(a.ctx, ref)
}
