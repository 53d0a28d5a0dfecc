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

// ContentsView lists the table of contents of the selected book
type ContentsView struct {
	store *store.Store
	list  listCursor

	// Dimensions
	width  int
	height int
}

// NewContentsView creates a new contents view
func NewContentsView(s *store.Store) *ContentsView {
	return &ContentsView{
		store:  s,
		width:  80,
		height: 24,
	}
}

// Init implements View. The cursor starts on the chapter being read.
func (v *ContentsView) Init() tea.Cmd {
	lib := v.store.Library()
	v.list.set(lib.CurrentChapterIdx, len(lib.TOC))
	return nil
}

// Update implements View
func (v *ContentsView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	n := len(v.store.Library().TOC)

	switch keyMsg.String() {
	case "esc", "t", "q":
		return v, Back()
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
		if n > 0 {
			return v, send(OpenChapterMsg{Index: v.list.cursor})
		}
	}
	return v, nil
}

// View implements View
func (v *ContentsView) View() string {
	lib := v.store.Library()
	var b strings.Builder

	title := "Contents"
	if lib.SelectedBook != nil {
		title = lib.SelectedBook.Title
	}
	header := styles.TitleBar.Render(" " + styles.TruncateText(title, max(10, v.width-20)) + " ")
	count := styles.Help.Render(fmt.Sprintf(" %d chapters ", len(lib.TOC)))
	gap := max(0, v.width-lipgloss.Width(header)-lipgloss.Width(count))
	b.WriteString(header + strings.Repeat(" ", gap) + count + "\n")

	if len(lib.TOC) == 0 {
		msg := styles.MutedText.Render("No table of contents loaded")
		if lib.IsFetching {
			msg = styles.MutedText.Render("Loading contents...")
		}
		b.WriteString(lipgloss.Place(v.width, max(1, v.height-4), lipgloss.Center, lipgloss.Center, msg))
		b.WriteString("\n" + v.renderFooter())
		return b.String()
	}

	depth := depths(lib.TOC)
	start, end := v.list.window(len(lib.TOC), v.visibleLines())
	for i := start; i < end; i++ {
		item := lib.TOC[i]
		marker := "  "
		if i == lib.CurrentChapterIdx {
			marker = "● "
		}
		line := marker + strings.Repeat("  ", depth[i]) + styles.TruncateText(item.Title, max(10, v.width-10-2*depth[i]))
		if i == v.list.cursor {
			b.WriteString(styles.ListItemSelected.Width(v.width).Render(line) + "\n")
		} else {
			b.WriteString(styles.ListItem.Render(line) + "\n")
		}
	}
	for i := end - start; i < v.visibleLines(); i++ {
		b.WriteString("\n")
	}

	b.WriteString(v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *ContentsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *ContentsView) visibleLines() int {
	return max(1, v.height-4)
}

func (v *ContentsView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" nav"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" go to chapter"),
		styles.HelpKey.Render("esc") + styles.Help.Render(" back"),
	}
	return strings.Join(help, "  ")
}

// depths returns the nesting level of each entry. Parent names the title
// of the enclosing entry.
func depths(toc []models.TocItem) []int {
	level := make(map[string]int, len(toc))
	out := make([]int, len(toc))
	for i, item := range toc {
		if item.Parent != "" {
			if d, ok := level[item.Parent]; ok {
				out[i] = d + 1
			}
		}
		if _, seen := level[item.Title]; !seen {
			level[item.Title] = out[i]
		}
	}
	return out
}
