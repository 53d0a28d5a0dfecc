package server

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/novel-t/internal/epub"
	"github.com/justyntemme/novel-t/pkg/models"
)

// sniffLen is the number of leading bytes filetype needs
const sniffLen = 262

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNoCover      = errors.New("book has no cover")
)

// bookEntry is the wire form of a catalog entry
type bookEntry struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Name     string `json:"name,omitempty"`
	Author   string `json:"author,omitempty"`
	Cover    string `json:"cover,omitempty"`
}

type tocEntry struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Index  int     `json:"index"`
	Href   string  `json:"href"`
	Parent *string `json:"parent"`
}

type chapterBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func tocEntries(items []models.TocItem) []tocEntry {
	out := make([]tocEntry, len(items))
	for i, it := range items {
		out[i] = tocEntry{ID: it.ID, Title: it.Title, Index: it.Index, Href: it.Href}
		if it.Parent != "" {
			parent := it.Parent
			out[i].Parent = &parent
		}
	}
	return out
}

// Library is a directory of EPUB files. Book ids are file names.
type Library struct {
	dir string
	log *zap.Logger
}

// NewLibrary creates a library rooted at dir
func NewLibrary(dir string, log *zap.Logger) *Library {
	return &Library{dir: dir, log: log}
}

// Dir returns the library root
func (l *Library) Dir() string {
	return l.dir
}

// List returns every EPUB in the directory in natural file name order
func (l *Library) List() ([]bookEntry, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := isEPUB(filepath.Join(l.dir, e.Name()))
		if err != nil {
			l.log.Debug("Skipping unreadable file", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if ok {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))

	books := make([]bookEntry, 0, len(names))
	for _, name := range names {
		entry := bookEntry{ID: name, Filename: name}
		err := l.With(name, func(b *epub.Book) error {
			entry.Name = b.Title
			entry.Author = b.Author
			if b.Cover != "" {
				entry.Cover = "books/" + url.PathEscape(name) + "/cover"
			}
			return nil
		})
		if err != nil {
			l.log.Warn("Unable to read book metadata", zap.String("file", name), zap.Error(err))
		}
		books = append(books, entry)
	}
	return books, nil
}

// With opens the book id, runs fn and closes the book
func (l *Library) With(id string, fn func(*epub.Book) error) (err error) {
	path, err := l.path(id)
	if err != nil {
		return err
	}
	b, err := epub.Open(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(b))
	return fn(b)
}

// path maps a book id to a file inside the library
func (l *Library) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", ErrBookNotFound
	}
	path := filepath.Join(l.dir, id)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrBookNotFound
	}
	return path, nil
}

// isEPUB sniffs the file header. Archives that do not store the mimetype
// entry first are accepted when the extension says epub.
func isEPUB(path string) (ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	head = head[:n]
	if filetype.Is(head, "epub") {
		return true, nil
	}
	return strings.EqualFold(filepath.Ext(path), ".epub") && filetype.Is(head, "zip"), nil
}
