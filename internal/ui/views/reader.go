package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/novel-t/internal/content"
	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/internal/ui/styles"
)

// Rows taken by the header and the footer outside fullscreen
const (
	readerHeaderRows = 1
	readerFooterRows = 2
)

// PageGeometry returns the layout a chapter is paginated with on a
// terminal of width x height cells
func PageGeometry(width, height int, prefs store.PreferencesState) store.PageGeometry {
	vp := store.Viewport{Height: float64(height)}
	if !prefs.IsFullscreen {
		vp.Header = readerHeaderRows
		vp.Footer = readerFooterRows
	}
	col := content.ColumnWidth(width, content.Scale(prefs.FontSize))
	return store.PageGeometry{
		Viewport: vp,
		Metrics:  store.TerminalMetrics(col),
	}
}

// renderKey identifies what the viewport content was built from
type renderKey struct {
	content string
	width   int
	size    int
	bg, fg  store.Color
}

// ReaderView displays the current chapter
type ReaderView struct {
	store *store.Store
	vp    viewport.Model

	rendered renderKey
	notice   string

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a new reader view
func NewReaderView(s *store.Store) *ReaderView {
	v := &ReaderView{
		store:  s,
		vp:     viewport.New(80, 21),
		width:  80,
		height: 24,
	}
	return v
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	return nil
}

// SetNotice shows msg in the footer until the next key press
func (v *ReaderView) SetNotice(msg string) {
	v.notice = msg
}

// Notice returns the message currently shown in the footer
func (v *ReaderView) Notice() string {
	return v.notice
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	v.notice = ""
	v.sync()
	prefs := v.store.Preferences()

	switch keyMsg.String() {
	case "right", "l", "n":
		return v, send(StepChapterMsg{Direction: store.Forward})
	case "left", "h", "p":
		return v, send(StepChapterMsg{Direction: store.Backward})
	case " ", "pgdown":
		v.vp.PageDown()
		return v, send(PageTurnMsg{Delta: 1})
	case "b", "pgup":
		v.vp.PageUp()
		return v, send(PageTurnMsg{Delta: -1})
	case "j", "down":
		v.vp.ScrollDown(1)
	case "k", "up":
		v.vp.ScrollUp(1)
	case "ctrl+d":
		v.vp.HalfPageDown()
	case "ctrl+u":
		v.vp.HalfPageUp()
	case "g", "home":
		v.vp.GotoTop()
	case "G", "end":
		v.vp.GotoBottom()
	case "+", "=":
		return v, send(PreferenceMsg{Event: store.FontSizeSet{Size: prefs.FontSize + 1}})
	case "-", "_":
		return v, send(PreferenceMsg{Event: store.FontSizeSet{Size: prefs.FontSize - 1}})
	case "f":
		return v, send(PreferenceMsg{Event: store.FullscreenToggled{}})
	case "t":
		return v, SwitchTo(ViewContents)
	case "s":
		return v, SwitchTo(ViewSettings)
	case "i":
		if book := v.store.Library().SelectedBook; book != nil {
			return v, send(ShowDetailsMsg{Book: *book})
		}
	case "q", "esc":
		return v, SwitchTo(ViewLibrary)
	}
	return v, nil
}

// View implements View
func (v *ReaderView) View() string {
	snap := v.store.Snapshot()
	lib := snap.Library
	prefs := snap.Preferences

	if lib.SelectedBook == nil {
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render("No book selected"))
	}

	body := v.renderBody(snap)
	if prefs.IsFullscreen {
		return body
	}

	var b strings.Builder
	b.WriteString(v.renderHeader(lib) + "\n")
	b.WriteString(body + "\n")
	b.WriteString(v.renderFooter(snap))
	return b.String()
}

func (v *ReaderView) renderBody(snap store.Snapshot) string {
	lib := snap.Library
	rows := v.bodyRows(snap.Preferences)

	switch {
	case lib.CurrentChapter == nil && snap.LastFailure != nil:
		return lipgloss.Place(v.width, rows, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render("Error: "+snap.LastFailure.Error()))
	case lib.CurrentChapter == nil && lib.IsFetching:
		return lipgloss.Place(v.width, rows, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Loading..."))
	case lib.CurrentChapter == nil:
		return lipgloss.Place(v.width, rows, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No chapter loaded"))
	}

	v.sync()
	return v.vp.View()
}

// sync rebuilds the viewport when the chapter, the size or the colors
// changed since the last render. A new chapter starts at the top.
func (v *ReaderView) sync() {
	snap := v.store.Snapshot()
	prefs := snap.Preferences
	v.vp.Width = v.width
	v.vp.Height = v.bodyRows(prefs)

	chapter := snap.Library.CurrentChapter
	if chapter == nil {
		return
	}
	key := renderKey{
		content: chapter.Content,
		width:   v.width,
		size:    prefs.FontSize,
		bg:      prefs.BackgroundColor,
		fg:      prefs.TextColor,
	}
	if key == v.rendered {
		return
	}
	newChapter := key.content != v.rendered.content
	v.rendered = key

	v.vp.SetContent(v.renderChapter(chapter.Content, prefs))
	if newChapter {
		v.vp.GotoTop()
	}
}

// renderChapter wraps the chapter text to the column for the font size
// and paints it with the page colors
func (v *ReaderView) renderChapter(markup string, prefs store.PreferencesState) string {
	col := content.ColumnWidth(v.width, content.Scale(prefs.FontSize))
	margin := strings.Repeat(" ", max(0, (v.width-col)/2))
	page := styles.Page(prefs.BackgroundColor, prefs.TextColor).Width(v.width)

	lines := content.Wrap(content.ToText(markup), col)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = page.Render(margin + line)
	}
	return strings.Join(out, "\n")
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *ReaderView) bodyRows(prefs store.PreferencesState) int {
	if prefs.IsFullscreen {
		return max(1, v.height)
	}
	return max(1, v.height-readerHeaderRows-readerFooterRows)
}

// renderHeader renders the reader header with proper truncation
func (v *ReaderView) renderHeader(lib store.LibraryState) string {
	maxTitleWidth := max(10, v.width/3)
	titlePart := styles.ReaderHeader.Render(" " + styles.TruncateText(lib.SelectedBook.Title, maxTitleWidth) + " ")

	chapterTitle := ""
	if item, ok := lib.CurrentTocItem(); ok {
		chapterTitle = styles.TruncateText(item.Title, 30)
	}
	chapterPart := styles.Help.Render(fmt.Sprintf(" Ch %d/%d: %s ", lib.CurrentChapterIdx+1, len(lib.TOC), chapterTitle))

	progress := styles.ReaderProgress.Render(fmt.Sprintf(" %d%% ", int(v.vp.ScrollPercent()*100)))

	left := titlePart + chapterPart
	gap := max(0, v.width-lipgloss.Width(left)-lipgloss.Width(progress))
	return left + strings.Repeat(" ", gap) + progress
}

// renderFooter renders the page counter, the notice line and key help
func (v *ReaderView) renderFooter(snap store.Snapshot) string {
	lib := snap.Library
	prefs := snap.Preferences

	status := styles.SecondaryText.Render(fmt.Sprintf("Page %d of %d", lib.CurrentPage, lib.TotalPages)) +
		styles.MutedText.Render(fmt.Sprintf("  %dpt  %s", prefs.FontSize, prefs.FontFamily))
	switch {
	case v.notice != "":
		status += "  " + styles.WarningStyle.Render(v.notice)
	case snap.LastFailure != nil:
		status += "  " + styles.ErrorStyle.Render(snap.LastFailure.Error())
	case lib.IsFetching:
		status += "  " + styles.MutedText.Render("Loading...")
	}

	help := []string{
		styles.HelpKey.Render("←/→") + styles.Help.Render(" chapter"),
		styles.HelpKey.Render("space/b") + styles.Help.Render(" page"),
		styles.HelpKey.Render("t") + styles.Help.Render(" contents"),
		styles.HelpKey.Render("f") + styles.Help.Render(" fullscreen"),
		styles.HelpKey.Render("s") + styles.Help.Render(" settings"),
		styles.HelpKey.Render("?") + styles.Help.Render(" help"),
		styles.HelpKey.Render("q") + styles.Help.Render(" library"),
	}
	return status + "\n" + strings.Join(help, "  ")
}
