package store

import "github.com/justyntemme/novel-t/pkg/models"

// Event is anything the Store can dispatch. The set is closed: only the
// types declared in this file implement it.
type Event interface {
	event()
}

// LibraryEvent drives the library/navigation slice
type LibraryEvent interface {
	Event
	libraryEvent()
}

// PreferencesEvent drives the reader preferences slice
type PreferencesEvent interface {
	Event
	preferencesEvent()
}

// Library events

// BooksRequested marks the catalog fetch as outstanding
type BooksRequested struct{}

// BooksLoaded carries a freshly fetched catalog
type BooksLoaded struct {
	Books []models.Book
}

// BooksFailed reports a failed catalog fetch
type BooksFailed struct {
	Err error
}

// BookSelected selects a book. It does not clear the TOC or chapter.
type BookSelected struct {
	Book models.Book
}

// BookDeselected drops the selection together with its TOC and chapter
type BookDeselected struct{}

// TocRequested marks a TOC fetch for the selected book as outstanding
type TocRequested struct{}

// TocLoaded carries the TOC of the selected book
type TocLoaded struct {
	Items []models.TocItem
}

// TocFailed reports a failed TOC fetch
type TocFailed struct {
	Err error
}

// ChapterRequested marks a chapter fetch as outstanding
type ChapterRequested struct {
	ChapterID string
}

// ChapterLoaded carries a chapter body and the geometry used to paginate it
type ChapterLoaded struct {
	Chapter  models.Chapter
	Geometry PageGeometry
}

// ChapterFailed reports a failed chapter fetch
type ChapterFailed struct {
	Err error
}

// ChapterIndexSet moves the current TOC position
type ChapterIndexSet struct {
	Index int
}

// PageSet moves the advisory page counter
type PageSet struct {
	Page int
}

// Repaginated recomputes the page count of the resident chapter
type Repaginated struct {
	Geometry PageGeometry
}

func (BooksRequested) event()   {}
func (BooksLoaded) event()      {}
func (BooksFailed) event()      {}
func (BookSelected) event()     {}
func (BookDeselected) event()   {}
func (TocRequested) event()     {}
func (TocLoaded) event()        {}
func (TocFailed) event()        {}
func (ChapterRequested) event() {}
func (ChapterLoaded) event()    {}
func (ChapterFailed) event()    {}
func (ChapterIndexSet) event()  {}
func (PageSet) event()          {}
func (Repaginated) event()      {}

func (BooksRequested) libraryEvent()   {}
func (BooksLoaded) libraryEvent()      {}
func (BooksFailed) libraryEvent()      {}
func (BookSelected) libraryEvent()     {}
func (BookDeselected) libraryEvent()   {}
func (TocRequested) libraryEvent()     {}
func (TocLoaded) libraryEvent()        {}
func (TocFailed) libraryEvent()        {}
func (ChapterRequested) libraryEvent() {}
func (ChapterLoaded) libraryEvent()    {}
func (ChapterFailed) libraryEvent()    {}
func (ChapterIndexSet) libraryEvent()  {}
func (PageSet) libraryEvent()          {}
func (Repaginated) libraryEvent()      {}

// Preferences events

// FontSizeSet sets the font size, clamped to [MinFontSize, MaxFontSize]
type FontSizeSet struct {
	Size int
}

// FontFamilySet sets the font family name
type FontFamilySet struct {
	Family string
}

// BackgroundColorSet sets the background and may re-derive the text color
type BackgroundColorSet struct {
	Color Color
}

// TextColorSet sets the text color explicitly
type TextColorSet struct {
	Color Color
}

// ShortcutsOverlayToggled flips the keyboard shortcuts overlay
type ShortcutsOverlayToggled struct{}

// FullscreenToggled flips fullscreen reading
type FullscreenToggled struct{}

// PreferencesRestored replaces the persisted part of the preferences
// without applying the color coupling rule
type PreferencesRestored struct {
	FontSize        int
	FontFamily      string
	BackgroundColor Color
	TextColor       Color
}

func (FontSizeSet) event()             {}
func (FontFamilySet) event()           {}
func (BackgroundColorSet) event()      {}
func (TextColorSet) event()            {}
func (ShortcutsOverlayToggled) event() {}
func (FullscreenToggled) event()       {}
func (PreferencesRestored) event()     {}

func (FontSizeSet) preferencesEvent()             {}
func (FontFamilySet) preferencesEvent()           {}
func (BackgroundColorSet) preferencesEvent()      {}
func (TextColorSet) preferencesEvent()            {}
func (ShortcutsOverlayToggled) preferencesEvent() {}
func (FullscreenToggled) preferencesEvent()       {}
func (PreferencesRestored) preferencesEvent()     {}
