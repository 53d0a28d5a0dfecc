package views

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/internal/ui/styles"
	"github.com/justyntemme/novel-t/internal/ui/terminal"
	"github.com/justyntemme/novel-t/pkg/models"
)

// Cells reserved for the cover next to the book fields
const (
	coverCols = 24
	coverRows = 16
)

// CoverLoader fetches and decodes the cover behind a book's cover reference
type CoverLoader func(ref string) (image.Image, error)

// DetailsView displays information about a book and its cover
type DetailsView struct {
	store *store.Store
	load  CoverLoader
	mode  terminal.TermImageMode
	out   io.Writer

	// Book being displayed
	book *models.Book

	// Cover (loaded async)
	cover    string
	coverErr error
	loading  bool

	// Dimensions
	width  int
	height int
}

// NewDetailsView creates a new book details view. Covers are drawn only
// when mode is a graphics protocol.
func NewDetailsView(s *store.Store, load CoverLoader, mode terminal.TermImageMode) *DetailsView {
	return &DetailsView{
		store:  s,
		load:   load,
		mode:   mode,
		out:    os.Stdout,
		width:  80,
		height: 24,
	}
}

// SetBook sets the book to display
func (v *DetailsView) SetBook(book models.Book) {
	v.book = &book
	v.cover = ""
	v.coverErr = nil
	v.loading = false
}

// Init implements View
func (v *DetailsView) Init() tea.Cmd {
	if v.book == nil || v.book.Cover == "" || v.load == nil || v.mode == terminal.TermModeNone {
		return nil
	}
	v.loading = true
	book := *v.book
	load := v.load
	return func() tea.Msg {
		img, err := load(book.Cover)
		return CoverLoadedMsg{BookID: book.ID, Image: img, Err: err}
	}
}

// Update implements View
func (v *DetailsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case CoverLoadedMsg:
		if v.book == nil || msg.BookID != v.book.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.coverErr = msg.Err
			return v, nil
		}
		img := terminal.FitToCells(msg.Image, coverCols, coverRows)
		v.cover, v.coverErr = terminal.RenderImageToString(img, v.mode)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "i":
			v.clear()
			return v, Back()
		case "enter", "r":
			if v.book != nil {
				v.clear()
				return v, send(OpenBookMsg{Book: *v.book})
			}
		}
	}
	return v, nil
}

// clear removes a drawn cover from the terminal
func (v *DetailsView) clear() {
	if v.cover != "" {
		terminal.ClearImagesCmd(v.out, v.mode)()
		v.cover = ""
	}
}

// View implements View
func (v *DetailsView) View() string {
	if v.book == nil {
		return styles.ErrorStyle.Render("No book selected")
	}

	var b strings.Builder
	b.WriteString(styles.TitleBar.Render(" Book Details ") + "\n\n")

	var fields strings.Builder
	fields.WriteString(styles.BookTitle.Render(styles.TruncateText(v.book.Title, max(10, v.width-coverCols-8))) + "\n")
	fields.WriteString(styles.BookAuthor.Render("by "+v.book.Author) + "\n\n")
	fields.WriteString(v.renderField("ID", v.book.ID))

	lib := v.store.Library()
	if lib.SelectedBook != nil && lib.SelectedBook.ID == v.book.ID {
		fields.WriteString(v.renderField("Chapters", fmt.Sprintf("%d", len(lib.TOC))))
		if item, ok := lib.CurrentTocItem(); ok {
			fields.WriteString(v.renderField("Reading", fmt.Sprintf("%d. %s", lib.CurrentChapterIdx+1, item.Title)))
		}
		if lib.CurrentChapter != nil {
			fields.WriteString(v.renderField("Page", fmt.Sprintf("%d of %d", lib.CurrentPage, lib.TotalPages)))
		}
	}

	switch {
	case v.book.Cover == "":
		fields.WriteString(v.renderField("Cover", "none"))
	case v.mode == terminal.TermModeNone:
		fields.WriteString(v.renderField("Cover", "not supported by this terminal"))
	case v.loading:
		fields.WriteString(v.renderField("Cover", "loading..."))
	case v.coverErr != nil:
		fields.WriteString(v.renderField("Cover", styles.ErrorStyle.Render(v.coverErr.Error())))
	}

	if v.cover != "" {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, v.cover, "  ", fields.String()))
	} else {
		b.WriteString(fields.String())
	}

	b.WriteString("\n\n" + v.renderFooter())
	return b.String()
}

func (v *DetailsView) renderField(label, value string) string {
	return styles.MutedText.Render(fmt.Sprintf("%-10s", label+":")) + " " + value + "\n"
}

func (v *DetailsView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("enter") + styles.Help.Render(" read"),
		styles.HelpKey.Render("esc") + styles.Help.Render(" back"),
	}
	return strings.Join(help, "  ")
}

// SetSize implements View
func (v *DetailsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}
