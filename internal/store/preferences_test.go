package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testDark = NewThemeSet(DefaultDarkThemes...)

func reducePrefs(s PreferencesState, evs ...PreferencesEvent) PreferencesState {
	for _, ev := range evs {
		s = ReducePreferences(s, ev, testDark)
	}
	return s
}

func TestReducePreferences_FontSizeClamps(t *testing.T) {
	s := NewPreferencesState()
	assert.Equal(t, 24, reducePrefs(s, FontSizeSet{Size: 30}).FontSize)
	assert.Equal(t, 12, reducePrefs(s, FontSizeSet{Size: 5}).FontSize)
	assert.Equal(t, 18, reducePrefs(s, FontSizeSet{Size: 18}).FontSize)
}

func TestReducePreferences_DarkBackgroundFlipsDefaultText(t *testing.T) {
	s := reducePrefs(NewPreferencesState(), BackgroundColorSet{Color: "#1a1a1a"})
	assert.Equal(t, White, s.TextColor)

	s = reducePrefs(s, BackgroundColorSet{Color: "#f5f5f5"})
	assert.Equal(t, Black, s.TextColor)
}

func TestReducePreferences_CustomTextColorSurvivesBackground(t *testing.T) {
	s := reducePrefs(NewPreferencesState(),
		BackgroundColorSet{Color: "#000000"},
		TextColorSet{Color: "#008000"},
		BackgroundColorSet{Color: "#ffffff"},
	)
	assert.Equal(t, Color("#008000"), s.TextColor)
	assert.Equal(t, Color("#ffffff"), s.BackgroundColor)
}

func TestReducePreferences_ExplicitDefaultTextStillCoupled(t *testing.T) {
	// Re-picking white is indistinguishable from never customizing.
	s := reducePrefs(NewPreferencesState(),
		TextColorSet{Color: "#ffffff"},
		BackgroundColorSet{Color: "#f0f9eb"},
	)
	assert.Equal(t, Black, s.TextColor)
}

func TestReducePreferences_UnknownBackgroundIsLight(t *testing.T) {
	s := reducePrefs(NewPreferencesState(),
		BackgroundColorSet{Color: "#332d20"},
		BackgroundColorSet{Color: "#f4ecd8"},
	)
	assert.Equal(t, Black, s.TextColor)
}

func TestReducePreferences_Toggles(t *testing.T) {
	s := reducePrefs(NewPreferencesState(), ShortcutsOverlayToggled{})
	assert.True(t, s.ShowKeyboardShortcuts)
	s = reducePrefs(s, ShortcutsOverlayToggled{})
	assert.False(t, s.ShowKeyboardShortcuts)

	s = reducePrefs(s, FullscreenToggled{})
	assert.True(t, s.IsFullscreen)
}

func TestReducePreferences_Restored(t *testing.T) {
	s := reducePrefs(NewPreferencesState(), PreferencesRestored{
		FontSize:        40,
		FontFamily:      "Georgia, serif",
		BackgroundColor: "#1a1a1a",
		TextColor:       "#666666",
	})
	assert.Equal(t, 24, s.FontSize)
	assert.Equal(t, "Georgia, serif", s.FontFamily)
	assert.Equal(t, Color("#1a1a1a"), s.BackgroundColor)
	assert.Equal(t, Color("#666666"), s.TextColor, "restore does not apply the coupling rule")

	s = reducePrefs(s, PreferencesRestored{})
	assert.Equal(t, 24, s.FontSize, "zero values keep the current preference")
	assert.Equal(t, "Georgia, serif", s.FontFamily)
}

func TestReducePreferences_AutomaticPairIsLegible(t *testing.T) {
	backgrounds := append([]Color{"#ffffff", "#f5f5f5", "#f0f9eb", "#f4ecd8"}, DefaultDarkThemes...)
	for _, bg := range backgrounds {
		s := reducePrefs(NewPreferencesState(), BackgroundColorSet{Color: bg})
		assert.True(t, Legible(s.BackgroundColor, s.TextColor), "bg %s text %s", bg, s.TextColor)
	}
}
