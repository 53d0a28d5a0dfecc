package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/pkg/models"
)

func TestListCursor_WindowFollowsCursor(t *testing.T) {
	var l listCursor
	l.set(7, 10)
	start, end := l.window(10, 3)
	assert.Equal(t, 5, start)
	assert.Equal(t, 8, end)

	l.move(-6, 10)
	start, end = l.window(10, 3)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)

	l.move(100, 10)
	assert.Equal(t, 9, l.cursor)

	l.set(3, 0)
	assert.Equal(t, 0, l.cursor)
}

func TestDepths_NestsByParentTitle(t *testing.T) {
	toc := []models.TocItem{
		{Title: "Part One"},
		{Title: "Chapter 1", Parent: "Part One"},
		{Title: "Scene", Parent: "Chapter 1"},
		{Title: "Part Two"},
		{Title: "Orphan", Parent: "Missing"},
	}
	assert.Equal(t, []int{0, 1, 2, 0, 0}, depths(toc))
}

func TestCycle(t *testing.T) {
	assert.Equal(t, 1, cycle(0, 1, 3))
	assert.Equal(t, 0, cycle(2, 1, 3))
	assert.Equal(t, 2, cycle(0, -1, 3))
	assert.Equal(t, 0, cycle(-1, 1, 3))
	assert.Equal(t, 2, cycle(-1, -1, 3))
}

func TestPageGeometry_FullscreenDropsChrome(t *testing.T) {
	prefs := store.NewPreferencesState()
	g := PageGeometry(80, 30, prefs)
	assert.Equal(t, float64(27), g.Viewport.Available())
	assert.Equal(t, 13, g.Metrics.WordsPerLine)

	prefs.IsFullscreen = true
	assert.Equal(t, float64(30), PageGeometry(80, 30, prefs).Viewport.Available())

	prefs.FontSize = store.MaxFontSize
	assert.Less(t, PageGeometry(80, 30, prefs).Metrics.WordsPerLine, g.Metrics.WordsPerLine)
}

func TestLibraryView_EnterOpensSelectedBook(t *testing.T) {
	s := store.New(store.Options{})
	s.Dispatch(store.BooksLoaded{Books: []models.Book{
		{ID: "a", Title: "Alpha", Author: "Ann"},
		{ID: "b", Title: "Beta", Author: "Bob"},
	}})
	v := NewLibraryView(s, func() []string { return []string{"b"} })

	_, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenBookMsg{Book: models.Book{ID: "b", Title: "Beta", Author: "Bob"}}, cmd())

	out := v.View()
	assert.Contains(t, out, "Alpha - Ann")
	assert.Contains(t, out, " 1 Beta - Bob")
}

func TestSettingsView_WarnsOnIllegibleColors(t *testing.T) {
	s := store.New(store.Options{})
	v := NewSettingsView(s, Palette{})
	assert.NotContains(t, v.View(), "hard to tell apart")

	s.Dispatch(store.BackgroundColorSet{Color: "#1a1a1a"})
	s.Dispatch(store.TextColorSet{Color: "#1e1e1e"})
	assert.Contains(t, v.View(), "hard to tell apart")
}

func TestReaderView_KeysEmitIntents(t *testing.T) {
	s := store.New(store.Options{})
	v := NewReaderView(s)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, StepChapterMsg{Direction: store.Forward}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	assert.Equal(t, StepChapterMsg{Direction: store.Backward}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, PageTurnMsg{Delta: 1}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	assert.Equal(t, PreferenceMsg{Event: store.FullscreenToggled{}}, cmd())

	v.SetNotice("hello")
	_, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Empty(t, v.Notice())
}
