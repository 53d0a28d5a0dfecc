package views

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/pkg/models"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewLibrary ViewType = iota
	ViewContents
	ViewReader
	ViewSettings
	ViewDetails
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewLibrary:
		return "Library"
	case ViewContents:
		return "Contents"
	case ViewReader:
		return "Reader"
	case ViewSettings:
		return "Settings"
	case ViewDetails:
		return "Book Details"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Message types for inter-view communication

// OpenBookMsg is sent when a book is selected to read
type OpenBookMsg struct {
	Book models.Book
}

// ShowDetailsMsg asks for the details screen of a book
type ShowDetailsMsg struct {
	Book models.Book
}

// ReloadBooksMsg asks for the catalog to be fetched again
type ReloadBooksMsg struct{}

// OpenChapterMsg asks for the chapter at a contents index
type OpenChapterMsg struct {
	Index int
}

// StepChapterMsg asks for the next or previous chapter
type StepChapterMsg struct {
	Direction store.Direction
}

// PageTurnMsg moves the page counter by Delta
type PageTurnMsg struct {
	Delta int
}

// PreferenceMsg carries a preference change made on screen
type PreferenceMsg struct {
	Event store.PreferencesEvent
}

// CoverLoadedMsg delivers a decoded cover image
type CoverLoadedMsg struct {
	BookID string
	Image  image.Image
	Err    error
}

// SwitchViewMsg requests a view switch
type SwitchViewMsg struct {
	View ViewType
}

// BackMsg returns to the screen shown before the current one
type BackMsg struct{}

// QuitMsg ends the program
type QuitMsg struct{}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// SwitchTo creates a command to switch views
func SwitchTo(view ViewType) tea.Cmd {
	return send(SwitchViewMsg{View: view})
}

// Back creates a command that returns to the previous view
func Back() tea.Cmd {
	return send(BackMsg{})
}
