package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/justyntemme/novel-t/internal/epub"
)

const (
	detailBookNotFound    = "Book not found"
	detailChapterNotFound = "Chapter not found"
	detailCoverNotFound   = "Cover not found"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, data any, log *zap.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, detail string, log *zap.Logger) {
	writeJSON(w, status, errorBody{Detail: detail}, log)
}

func param(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.log)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.library.List()
	if err != nil {
		s.log.Error("Failed to list books", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Unable to read library", s.log)
		return
	}
	writeJSON(w, http.StatusOK, books, s.log)
}

func (s *Server) handleGetTOC(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	var toc []tocEntry
	err := s.library.With(id, func(b *epub.Book) error {
		toc = tocEntries(b.TOC())
		return nil
	})
	if err != nil {
		s.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, toc, s.log)
}

func (s *Server) handleGetChapter(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	var body chapterBody
	err := s.library.With(id, func(b *epub.Book) error {
		ch, err := b.Chapter(param(r, "chapter"))
		if err != nil {
			return err
		}
		body = chapterBody{Title: ch.Title, Content: ch.Content}
		return nil
	})
	if err != nil {
		s.fail(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, body, s.log)
}

func (s *Server) handleGetCover(w http.ResponseWriter, r *http.Request) {
	id := param(r, "id")
	var data []byte
	err := s.library.With(id, func(b *epub.Book) error {
		if b.Cover == "" {
			return ErrNoCover
		}
		var err error
		data, err = b.CoverImage()
		return err
	})
	if err != nil {
		s.fail(w, id, err)
		return
	}
	if kind, err := filetype.Image(data); err == nil && kind.MIME.Value != "" {
		w.Header().Set("Content-Type", kind.MIME.Value)
	}
	_, _ = w.Write(data)
}

func (s *Server) fail(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, ErrBookNotFound):
		writeError(w, http.StatusNotFound, detailBookNotFound, s.log)
	case errors.Is(err, epub.ErrChapterNotFound):
		writeError(w, http.StatusNotFound, detailChapterNotFound, s.log)
	case errors.Is(err, ErrNoCover):
		writeError(w, http.StatusNotFound, detailCoverNotFound, s.log)
	default:
		s.log.Warn("Book request failed", zap.String("book", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error(), s.log)
	}
}
