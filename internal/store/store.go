package store

import (
	"sync"

	"go.uber.org/zap"
)

// Snapshot is a read-only copy of both slices handed to renderers
type Snapshot struct {
	Library     LibraryState
	Preferences PreferencesState
	LastFailure *FetchFailure
}

// Options configure a Store
type Options struct {
	DarkThemes  []Color
	Preferences *PreferencesState
	Logger      *zap.Logger
}

// Store owns the application state. Transitions are applied one at a time
// in the order Dispatch is called.
type Store struct {
	mu          sync.RWMutex
	library     LibraryState
	prefs       PreferencesState
	lastFailure *FetchFailure
	dark        ThemeSet
	log         *zap.Logger
}

// New creates a Store in its initial state
func New(opts Options) *Store {
	dark := opts.DarkThemes
	if len(dark) == 0 {
		dark = DefaultDarkThemes
	}
	prefs := NewPreferencesState()
	if opts.Preferences != nil {
		prefs = *opts.Preferences
		prefs.FontSize = ClampFontSize(prefs.FontSize)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		library: NewLibraryState(),
		prefs:   prefs,
		dark:    NewThemeSet(dark...),
		log:     log,
	}
}

// Dispatch applies ev to the slice it belongs to
func (s *Store) Dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := ev.(type) {
	case LibraryEvent:
		s.library = ReduceLibrary(s.library, ev)
		if failure := failureOf(ev); failure != nil {
			s.lastFailure = failure
			s.log.Warn("Fetch failed", zap.Stringer("kind", failure.Kind), zap.Error(failure.Err))
		} else if isLoaded(ev) {
			s.lastFailure = nil
		}
	case PreferencesEvent:
		s.prefs = ReducePreferences(s.prefs, ev, s.dark)
	}
	s.log.Debug("Dispatched", zap.String("event", eventName(ev)),
		zap.Bool("fetching", s.library.IsFetching),
		zap.Int("chapter", s.library.CurrentChapterIdx),
		zap.Int("page", s.library.CurrentPage),
		zap.Int("pages", s.library.TotalPages))
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Library:     s.library.clone(),
		Preferences: s.prefs,
	}
	if s.lastFailure != nil {
		failure := *s.lastFailure
		snap.LastFailure = &failure
	}
	return snap
}

// Library returns a copy of the library slice
func (s *Store) Library() LibraryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.library.clone()
}

// Preferences returns a copy of the preferences slice
func (s *Store) Preferences() PreferencesState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// StepChapter resolves the next or previous chapter without changing state
func (s *Store) StepChapter(dir Direction) Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StepChapter(s.library, dir)
}

// DarkThemes returns the backgrounds that take white text
func (s *Store) DarkThemes() ThemeSet {
	return s.dark
}

func isLoaded(ev Event) bool {
	switch ev.(type) {
	case BooksLoaded, TocLoaded, ChapterLoaded:
		return true
	}
	return false
}

func eventName(ev Event) string {
	switch ev.(type) {
	case BooksRequested:
		return "BooksRequested"
	case BooksLoaded:
		return "BooksLoaded"
	case BooksFailed:
		return "BooksFailed"
	case BookSelected:
		return "BookSelected"
	case BookDeselected:
		return "BookDeselected"
	case TocRequested:
		return "TocRequested"
	case TocLoaded:
		return "TocLoaded"
	case TocFailed:
		return "TocFailed"
	case ChapterRequested:
		return "ChapterRequested"
	case ChapterLoaded:
		return "ChapterLoaded"
	case ChapterFailed:
		return "ChapterFailed"
	case ChapterIndexSet:
		return "ChapterIndexSet"
	case PageSet:
		return "PageSet"
	case Repaginated:
		return "Repaginated"
	case FontSizeSet:
		return "FontSizeSet"
	case FontFamilySet:
		return "FontFamilySet"
	case BackgroundColorSet:
		return "BackgroundColorSet"
	case TextColorSet:
		return "TextColorSet"
	case ShortcutsOverlayToggled:
		return "ShortcutsOverlayToggled"
	case FullscreenToggled:
		return "FullscreenToggled"
	case PreferencesRestored:
		return "PreferencesRestored"
	default:
		return "unknown"
	}
}
