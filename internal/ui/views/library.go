package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/internal/ui/styles"
	"github.com/justyntemme/novel-t/pkg/models"
)

// LibraryView displays the book catalog
type LibraryView struct {
	store  *store.Store
	recent func() []string

	list listCursor

	// Dimensions
	width  int
	height int
}

// NewLibraryView creates a new library view. recent returns the ids of
// recently opened books, newest first.
func NewLibraryView(s *store.Store, recent func() []string) *LibraryView {
	if recent == nil {
		recent = func() []string { return nil }
	}
	return &LibraryView{
		store:  s,
		recent: recent,
		width:  80,
		height: 24,
	}
}

// Init implements View
func (v *LibraryView) Init() tea.Cmd {
	return nil
}

// Selected returns the book under the cursor
func (v *LibraryView) Selected() (models.Book, bool) {
	books := v.store.Library().Books
	if len(books) == 0 {
		return models.Book{}, false
	}
	v.list.set(v.list.cursor, len(books))
	return books[v.list.cursor], true
}

// Update implements View
func (v *LibraryView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	n := len(v.store.Library().Books)

	switch keyMsg.String() {
	case "j", "down":
		v.list.move(1, n)
	case "k", "up":
		v.list.move(-1, n)
	case "g", "home":
		v.list.set(0, n)
	case "G", "end":
		v.list.set(n-1, n)
	case "ctrl+d", "pgdown":
		v.list.move(v.visibleLines()/2, n)
	case "ctrl+u", "pgup":
		v.list.move(-v.visibleLines()/2, n)
	case "enter":
		if book, ok := v.Selected(); ok {
			return v, send(OpenBookMsg{Book: book})
		}
	case "i":
		if book, ok := v.Selected(); ok {
			return v, send(ShowDetailsMsg{Book: book})
		}
	case "r":
		return v, send(ReloadBooksMsg{})
	case "s":
		return v, SwitchTo(ViewSettings)
	case "q":
		return v, send(QuitMsg{})
	}
	return v, nil
}

// View implements View
func (v *LibraryView) View() string {
	lib := v.store.Library()
	var b strings.Builder

	b.WriteString(v.renderHeader(len(lib.Books)) + "\n")

	switch {
	case lib.IsFetching && len(lib.Books) == 0:
		b.WriteString(v.placeholder(styles.MutedText.Render("Loading books...")))
		return b.String()
	case len(lib.Books) == 0:
		b.WriteString(v.placeholder(styles.MutedText.Render("No books found")))
		b.WriteString("\n" + v.renderFooter())
		return b.String()
	}

	recent := make(map[string]int)
	for i, id := range v.recent() {
		recent[id] = i + 1
	}

	start, end := v.list.window(len(lib.Books), v.visibleLines())
	for i := start; i < end; i++ {
		book := lib.Books[i]
		opened := lib.SelectedBook != nil && lib.SelectedBook.ID == book.ID
		b.WriteString(v.renderBookLine(book, i == v.list.cursor, opened, recent[book.ID]) + "\n")
	}
	for i := end - start; i < v.visibleLines(); i++ {
		b.WriteString("\n")
	}

	b.WriteString(v.renderFooter())
	return b.String()
}

func (v *LibraryView) placeholder(content string) string {
	return lipgloss.Place(v.width, max(1, v.height-4), lipgloss.Center, lipgloss.Center, content)
}

// SetSize implements View
func (v *LibraryView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *LibraryView) visibleLines() int {
	return max(1, v.height-4)
}

// renderHeader renders the header bar
func (v *LibraryView) renderHeader(total int) string {
	title := styles.TitleBar.Render(" Library ")
	count := styles.Help.Render(fmt.Sprintf(" %d books ", total))

	gap := max(0, v.width-lipgloss.Width(title)-lipgloss.Width(count))
	return title + strings.Repeat(" ", gap) + count
}

// renderBookLine renders a single book line
func (v *LibraryView) renderBookLine(book models.Book, selected, opened bool, recentRank int) string {
	indicator := "   "
	switch {
	case opened:
		indicator = " ▶ "
	case recentRank > 0:
		indicator = fmt.Sprintf("%2d ", recentRank)
	}

	line := styles.TruncateText(fmt.Sprintf("%s - %s", book.Title, book.Author), max(10, v.width-9))
	if selected {
		return styles.ListItemSelected.Width(v.width).Render("▸ " + indicator + line)
	}
	return styles.ListItem.Render("  " + indicator + line)
}

// renderFooter renders the footer help
func (v *LibraryView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" nav"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" read"),
		styles.HelpKey.Render("i") + styles.Help.Render(" details"),
		styles.HelpKey.Render("r") + styles.Help.Render(" reload"),
		styles.HelpKey.Render("s") + styles.Help.Render(" settings"),
		styles.HelpKey.Render("?") + styles.Help.Render(" help"),
		styles.HelpKey.Render("q") + styles.Help.Render(" quit"),
	}
	return strings.Join(help, "  ")
}
