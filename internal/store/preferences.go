package store

// Font size bounds
const (
	MinFontSize     = 12
	MaxFontSize     = 24
	DefaultFontSize = 16
)

// DefaultFontFamily is the family used before the user picks one
const DefaultFontFamily = "Arial"

// PreferencesState holds presentation preferences and overlay visibility
type PreferencesState struct {
	FontSize              int
	FontFamily            string
	BackgroundColor       Color
	TextColor             Color
	ShowKeyboardShortcuts bool
	IsFullscreen          bool
}

// NewPreferencesState returns black text on white at the default font
func NewPreferencesState() PreferencesState {
	return PreferencesState{
		FontSize:        DefaultFontSize,
		FontFamily:      DefaultFontFamily,
		BackgroundColor: White,
		TextColor:       Black,
	}
}

// ClampFontSize limits n to the supported range
func ClampFontSize(n int) int {
	return min(max(n, MinFontSize), MaxFontSize)
}

// ReducePreferences applies ev to s. dark is the set of backgrounds that
// take white text when the text color is still a default.
func ReducePreferences(s PreferencesState, ev PreferencesEvent, dark ThemeSet) PreferencesState {
	switch ev := ev.(type) {
	case FontSizeSet:
		s.FontSize = ClampFontSize(ev.Size)
	case FontFamilySet:
		s.FontFamily = ev.Family
	case BackgroundColorSet:
		s.BackgroundColor = ev.Color
		if s.TextColor.IsDefaultText() {
			s.TextColor = textColorFor(ev.Color, dark)
		}
	case TextColorSet:
		s.TextColor = ev.Color
	case ShortcutsOverlayToggled:
		s.ShowKeyboardShortcuts = !s.ShowKeyboardShortcuts
	case FullscreenToggled:
		s.IsFullscreen = !s.IsFullscreen
	case PreferencesRestored:
		if ev.FontSize != 0 {
			s.FontSize = ClampFontSize(ev.FontSize)
		}
		if ev.FontFamily != "" {
			s.FontFamily = ev.FontFamily
		}
		if ev.BackgroundColor != "" {
			s.BackgroundColor = ev.BackgroundColor
		}
		if ev.TextColor != "" {
			s.TextColor = ev.TextColor
		}
	}
	return s
}

func textColorFor(bg Color, dark ThemeSet) Color {
	if dark.Contains(bg) {
		return White
	}
	return Black
}
