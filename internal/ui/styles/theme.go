package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/novel-t/internal/store"
)

// Theme represents the chrome colors drawn around the page
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
}

// Built-in themes
var (
	// DarkTheme frames dark pages
	DarkTheme = Theme{
		Name:          "dark",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#06B6D4"),
		Background:    lipgloss.Color("#1F2937"),
		Foreground:    lipgloss.Color("#F9FAFB"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#F9FAFB"),
	}

	// LightTheme frames light pages
	LightTheme = Theme{
		Name:          "light",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#0891B2"),
		Background:    lipgloss.Color("#FFFFFF"),
		Foreground:    lipgloss.Color("#1F2937"),
		Success:       lipgloss.Color("#059669"),
		Warning:       lipgloss.Color("#D97706"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#FFFFFF"),
	}

	// SepiaTheme frames warm paper tones
	SepiaTheme = Theme{
		Name:          "sepia",
		Primary:       lipgloss.Color("#8B4513"),
		Secondary:     lipgloss.Color("#A0522D"),
		Background:    lipgloss.Color("#F4ECD8"),
		Foreground:    lipgloss.Color("#3B2F2F"),
		Success:       lipgloss.Color("#6B8E23"),
		Warning:       lipgloss.Color("#B8860B"),
		Error:         lipgloss.Color("#B22222"),
		Muted:         lipgloss.Color("#8C7B6B"),
		Border:        lipgloss.Color("#D2C4A8"),
		Selection:     lipgloss.Color("#8B4513"),
		SelectionText: lipgloss.Color("#F4ECD8"),
	}

	// currentTheme holds the active theme
	currentTheme = DarkTheme
)

// sepiaBackground is the paper tone that gets the sepia chrome
const sepiaBackground store.Color = "#f4ecd8"

// ThemeFor picks the chrome that suits a page background
func ThemeFor(bg store.Color) Theme {
	switch {
	case bg.Equal(sepiaBackground):
		return SepiaTheme
	case bg.IsDark():
		return DarkTheme
	default:
		return LightTheme
	}
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	currentTheme = theme

	// Update color variables
	Primary = theme.Primary
	Secondary = theme.Secondary
	Success = theme.Success
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	// Update styles
	TitleBar = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	StatusBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Foreground(theme.Warning).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ListItemDimmed = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 2)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Align(lipgloss.Right)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	BookTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	BookAuthor = lipgloss.NewStyle().
		Foreground(theme.Secondary)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(DarkTheme)
}
