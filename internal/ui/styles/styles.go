package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/novel-t/internal/store"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Background = lipgloss.Color("#1F2937") // Dark gray
	Foreground = lipgloss.Color("#F9FAFB") // Light gray
	Border     = lipgloss.Color("#374151") // Gray border

	// Title bar
	TitleBar = lipgloss.NewStyle().
		Foreground(Foreground).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	// Status bar at bottom
	StatusBar = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Foreground(Warning).
		Padding(0, 1)

	// List styles
	ListItem = lipgloss.NewStyle().
		Foreground(Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(Foreground).
		Background(Primary).
		Padding(0, 2).
		Bold(true)

	ListItemDimmed = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 2)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(Foreground).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(Secondary).
		Align(lipgloss.Right)

	// Dialog/Modal styles
	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		MarginBottom(1)

	// Book info styles
	BookTitle = lipgloss.NewStyle().
		Foreground(Foreground).
		Bold(true)

	BookAuthor = lipgloss.NewStyle().
		Foreground(Secondary)
)

// Page returns the style chapter text is drawn with
func Page(bg, fg store.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(bg.Normalize()))).
		Foreground(lipgloss.Color(string(fg.Normalize())))
}

// Swatch renders a small block of color c
func Swatch(c store.Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(c.Normalize()))).
		Render("    ")
}

// TruncateText shortens s to width cells, ending with an ellipsis
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
