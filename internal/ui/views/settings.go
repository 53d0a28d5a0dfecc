package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/internal/ui/styles"
)

// Settings rows
const (
	settingFontSize = iota
	settingFontFamily
	settingBackground
	settingTextColor
	settingFullscreen
	settingCount
)

// Palette lists the choices offered on the settings screen
type Palette struct {
	FontFamilies []string
	Backgrounds  []store.Color
	TextColors   []store.Color
}

// SettingsView edits the reading preferences
type SettingsView struct {
	store   *store.Store
	palette Palette
	cursor  int

	// Dimensions
	width  int
	height int
}

// NewSettingsView creates a new settings view
func NewSettingsView(s *store.Store, p Palette) *SettingsView {
	if len(p.FontFamilies) == 0 {
		p.FontFamilies = []string{store.DefaultFontFamily}
	}
	if len(p.Backgrounds) == 0 {
		p.Backgrounds = []store.Color{store.White}
	}
	if len(p.TextColors) == 0 {
		p.TextColors = []store.Color{store.Black}
	}
	return &SettingsView{
		store:   s,
		palette: p,
		width:   80,
		height:  24,
	}
}

// Init implements View
func (v *SettingsView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *SettingsView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "s":
		return v, Back()
	case "j", "down", "tab":
		v.cursor = (v.cursor + 1) % settingCount
	case "k", "up", "shift+tab":
		v.cursor = (v.cursor + settingCount - 1) % settingCount
	case "l", "right", "enter", "+", "=":
		return v, v.change(1)
	case "h", "left", "-", "_":
		return v, v.change(-1)
	}
	return v, nil
}

// change moves the value of the selected row by step
func (v *SettingsView) change(step int) tea.Cmd {
	prefs := v.store.Preferences()
	var ev store.PreferencesEvent

	switch v.cursor {
	case settingFontSize:
		ev = store.FontSizeSet{Size: prefs.FontSize + step}
	case settingFontFamily:
		i := indexOf(len(v.palette.FontFamilies), func(i int) bool {
			return v.palette.FontFamilies[i] == prefs.FontFamily
		})
		ev = store.FontFamilySet{Family: v.palette.FontFamilies[cycle(i, step, len(v.palette.FontFamilies))]}
	case settingBackground:
		i := indexOf(len(v.palette.Backgrounds), func(i int) bool {
			return v.palette.Backgrounds[i].Equal(prefs.BackgroundColor)
		})
		ev = store.BackgroundColorSet{Color: v.palette.Backgrounds[cycle(i, step, len(v.palette.Backgrounds))]}
	case settingTextColor:
		i := indexOf(len(v.palette.TextColors), func(i int) bool {
			return v.palette.TextColors[i].Equal(prefs.TextColor)
		})
		ev = store.TextColorSet{Color: v.palette.TextColors[cycle(i, step, len(v.palette.TextColors))]}
	case settingFullscreen:
		ev = store.FullscreenToggled{}
	}
	return send(PreferenceMsg{Event: ev})
}

func indexOf(n int, match func(int) bool) int {
	for i := 0; i < n; i++ {
		if match(i) {
			return i
		}
	}
	return -1
}

// cycle steps from i through n entries, wrapping around. An unknown
// current value (-1) moves to the first or last entry.
func cycle(i, step, n int) int {
	if i < 0 {
		if step < 0 {
			return n - 1
		}
		return 0
	}
	return ((i+step)%n + n) % n
}

// View implements View
func (v *SettingsView) View() string {
	prefs := v.store.Preferences()

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Reading Settings") + "\n")

	rows := []struct {
		label string
		value string
	}{
		{"Font size", fmt.Sprintf("%d  (%d-%d)", prefs.FontSize, store.MinFontSize, store.MaxFontSize)},
		{"Font family", prefs.FontFamily},
		{"Background", styles.Swatch(prefs.BackgroundColor) + " " + string(prefs.BackgroundColor)},
		{"Text color", styles.Swatch(prefs.TextColor) + " " + string(prefs.TextColor)},
		{"Fullscreen", onOff(prefs.IsFullscreen)},
	}
	for i, row := range rows {
		label := fmt.Sprintf("%-12s", row.label)
		if i == v.cursor {
			b.WriteString(styles.ListItemSelected.Render("▸ "+label) + "  ‹ " + row.value + " ›\n")
		} else {
			b.WriteString(styles.ListItem.Render("  "+label) + "    " + row.value + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.Page(prefs.BackgroundColor, prefs.TextColor).Padding(0, 2).
		Render("The quick brown fox jumps over the lazy dog."))
	b.WriteString("\n")
	if !store.Legible(prefs.BackgroundColor, prefs.TextColor) {
		b.WriteString(styles.WarningStyle.Render("Text and background are hard to tell apart") + "\n")
	}
	b.WriteString(styles.MutedText.Render("Font family is saved but the terminal font is not changed.") + "\n\n")

	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" select"),
		styles.HelpKey.Render("h/l") + styles.Help.Render(" change"),
		styles.HelpKey.Render("esc") + styles.Help.Render(" back"),
	}
	b.WriteString(strings.Join(help, "  "))

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, styles.Dialog.Render(b.String()))
}

// SetSize implements View
func (v *SettingsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
