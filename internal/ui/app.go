package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/justyntemme/novel-t/internal/config"
	"github.com/justyntemme/novel-t/internal/prefs"
	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/internal/ui/styles"
	"github.com/justyntemme/novel-t/internal/ui/terminal"
	"github.com/justyntemme/novel-t/internal/ui/views"
	"github.com/justyntemme/novel-t/pkg/models"
)

// Options configure an App
type Options struct {
	Store   *store.Store
	Catalog Catalog
	Config  *config.Config

	// PrefsPath is where preference changes are saved. Empty disables saving.
	PrefsPath string

	Logger    *zap.Logger
	Context   context.Context
	ImageMode terminal.TermImageMode
}

// App is the main application model
type App struct {
	store     *store.Store
	catalog   Catalog
	config    *config.Config
	prefsPath string
	log       *zap.Logger
	ctx       context.Context
	keys      KeyMap
	help      help.Model

	// Current view state
	currentView views.ViewType
	prevView    views.ViewType

	// Window dimensions
	width  int
	height int

	// View models
	libraryView  *views.LibraryView
	contentsView *views.ContentsView
	readerView   *views.ReaderView
	settingsView *views.SettingsView
	detailsView  *views.DetailsView

	// Error that is not a fetch failure, such as a failed save
	err error
}

// NewApp creates a new application instance
func NewApp(opts Options) *App {
	if opts.Store == nil {
		opts.Store = store.New(store.Options{})
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	app := &App{
		store:       opts.Store,
		catalog:     opts.Catalog,
		config:      opts.Config,
		prefsPath:   opts.PrefsPath,
		log:         opts.Logger,
		ctx:         opts.Context,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		currentView: views.ViewLibrary,
		prevView:    views.ViewLibrary,
		width:       80,
		height:      24,
	}

	// Initialize views
	app.libraryView = views.NewLibraryView(app.store, app.config.RecentlyReadIDs)
	app.contentsView = views.NewContentsView(app.store)
	app.readerView = views.NewReaderView(app.store)
	app.settingsView = views.NewSettingsView(app.store, views.Palette{
		FontFamilies: app.config.FontFamilies,
		Backgrounds:  app.config.BackgroundColors(),
		TextColors:   app.config.TextColors(),
	})
	app.detailsView = views.NewDetailsView(app.store, app.loadCover, opts.ImageMode)

	styles.ApplyTheme(styles.ThemeFor(app.store.Preferences().BackgroundColor))
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadBooks(),
		tea.SetWindowTitle("novel-t"),
	)
}

// CurrentView returns the screen being shown
func (a *App) CurrentView() views.ViewType {
	return a.currentView
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		// Propagate to all views
		for _, v := range a.allViews() {
			v.SetSize(msg.Width, msg.Height)
		}
		a.store.Dispatch(store.Repaginated{Geometry: a.geometry()})
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case store.ChapterLoaded:
		msg.Geometry = a.geometry()
		a.store.Dispatch(msg)
		return a, nil

	case store.TocLoaded:
		a.store.Dispatch(msg)
		lib := a.store.Library()
		if lib.CurrentChapter == nil && len(lib.TOC) > 0 {
			return a, a.openChapter(lib.CurrentChapterIdx)
		}
		return a, nil

	case store.Event:
		a.store.Dispatch(msg)
		return a, nil

	case views.OpenBookMsg:
		return a.openBook(msg.Book)

	case views.ShowDetailsMsg:
		a.detailsView.SetBook(msg.Book)
		return a.switchView(views.ViewDetails)

	case views.ReloadBooksMsg:
		return a, a.loadBooks()

	case views.OpenChapterMsg:
		app, cmd := a.switchView(views.ViewReader)
		return app, tea.Batch(cmd, a.openChapter(msg.Index))

	case views.StepChapterMsg:
		step := a.store.StepChapter(msg.Direction)
		if !step.OK() {
			a.readerView.SetNotice(string(step.Notice))
			return a, nil
		}
		return a, a.openChapter(step.Index)

	case views.PageTurnMsg:
		// Out of range pages are ignored by the store
		a.store.Dispatch(store.PageSet{Page: a.store.Library().CurrentPage + msg.Delta})
		return a, nil

	case views.PreferenceMsg:
		a.applyPreference(msg.Event)
		return a, nil

	case views.CoverLoadedMsg:
		_, cmd := a.detailsView.Update(msg)
		return a, cmd

	case views.SwitchViewMsg:
		return a.switchView(msg.View)

	case views.BackMsg:
		return a.switchView(a.prevView)

	case views.QuitMsg:
		return a, tea.Quit
	}

	// Delegate to current view
	_, cmd := a.getCurrentView().Update(msg)
	return a, cmd
}

// handleKey applies the global bindings and passes the rest to the view.
// While the shortcuts overlay is open only Escape and ? are honored.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Force) {
		return a, tea.Quit
	}

	p := a.store.Preferences()
	if p.ShowKeyboardShortcuts {
		if key.Matches(msg, a.keys.Help, a.keys.Escape) {
			a.store.Dispatch(store.ShortcutsOverlayToggled{})
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.store.Dispatch(store.ShortcutsOverlayToggled{})
		return a, nil
	case key.Matches(msg, a.keys.Escape) && p.IsFullscreen:
		a.applyPreference(store.FullscreenToggled{})
		return a, nil
	}

	a.err = nil
	_, cmd := a.getCurrentView().Update(msg)
	return a, cmd
}

// loadBooks starts a catalog fetch
func (a *App) loadBooks() tea.Cmd {
	if a.catalog == nil {
		return nil
	}
	a.store.Dispatch(store.BooksRequested{})
	return a.fetchBooks()
}

// openBook selects book and shows the reader. Reopening the selected
// book keeps its position.
func (a *App) openBook(book models.Book) (tea.Model, tea.Cmd) {
	lib := a.store.Library()
	resume := lib.SelectedBook != nil && lib.SelectedBook.ID == book.ID && len(lib.TOC) > 0
	if lib.SelectedBook != nil && lib.SelectedBook.ID != book.ID {
		a.store.Dispatch(store.BookDeselected{})
	}
	a.store.Dispatch(store.BookSelected{Book: book})

	// Track recently read
	if err := a.config.AddRecentlyRead(book.ID, book.Title); err != nil {
		a.log.Warn("Failed to save recently read", zap.Error(err))
	}

	app, cmd := a.switchView(views.ViewReader)
	if resume || a.catalog == nil {
		return app, cmd
	}
	a.store.Dispatch(store.TocRequested{})
	return app, tea.Batch(cmd, a.fetchTOC(book.ID))
}

// openChapter moves to the TOC entry at idx and fetches its body
func (a *App) openChapter(idx int) tea.Cmd {
	lib := a.store.Library()
	if lib.SelectedBook == nil || idx < 0 || idx >= len(lib.TOC) || a.catalog == nil {
		return nil
	}
	item := lib.TOC[idx]
	a.store.Dispatch(store.ChapterIndexSet{Index: idx})
	a.store.Dispatch(store.ChapterRequested{ChapterID: item.ID})
	return a.fetchChapter(lib.SelectedBook.ID, item.ID)
}

// applyPreference dispatches ev and keeps the layout, the theme and the
// preferences file in step with it
func (a *App) applyPreference(ev store.PreferencesEvent) {
	a.store.Dispatch(ev)
	p := a.store.Preferences()

	switch ev.(type) {
	case store.FontSizeSet, store.FullscreenToggled:
		a.store.Dispatch(store.Repaginated{Geometry: a.geometry()})
	case store.BackgroundColorSet:
		styles.ApplyTheme(styles.ThemeFor(p.BackgroundColor))
	}

	switch ev.(type) {
	case store.FontSizeSet, store.FontFamilySet, store.BackgroundColorSet, store.TextColorSet:
		a.savePreferences(p)
	}
}

func (a *App) savePreferences(p store.PreferencesState) {
	if a.prefsPath == "" {
		return
	}
	if err := prefs.Save(a.prefsPath, prefs.FromState(p)); err != nil {
		a.log.Warn("Failed to save preferences", zap.String("path", a.prefsPath), zap.Error(err))
		a.err = err
	}
}

// geometry returns the page layout for the current window
func (a *App) geometry() store.PageGeometry {
	return views.PageGeometry(a.width, a.height, a.store.Preferences())
}

// View implements tea.Model
func (a *App) View() string {
	snap := a.store.Snapshot()

	// Add help overlay if shown
	if snap.Preferences.ShowKeyboardShortcuts {
		return a.renderHelp()
	}

	content := a.getCurrentView().View()

	// Add error bar if there's an error the view does not show itself
	switch {
	case a.err != nil:
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.ErrorStyle.Render("Error: "+a.err.Error()))
	case snap.LastFailure != nil && a.currentView == views.ViewLibrary:
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.ErrorStyle.Render("Error: "+snap.LastFailure.Error()))
	}

	return content
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) (*App, tea.Cmd) {
	if view != a.currentView {
		a.prevView = a.currentView
	}
	a.currentView = view
	a.err = nil

	return a, a.getCurrentView().Init()
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewContents:
		return a.contentsView
	case views.ViewReader:
		return a.readerView
	case views.ViewSettings:
		return a.settingsView
	case views.ViewDetails:
		return a.detailsView
	default:
		return a.libraryView
	}
}

func (a *App) allViews() []views.View {
	return []views.View{a.libraryView, a.contentsView, a.readerView, a.settingsView, a.detailsView}
}

// renderHelp renders the shortcuts overlay
func (a *App) renderHelp() string {
	a.help.ShowAll = true
	dialog := styles.Dialog.Render(
		styles.DialogTitle.Render("Keyboard Shortcuts") + "\n" +
			a.help.FullHelpView(a.keys.FullHelp()) + "\n\n" +
			styles.MutedText.Render("Press ? or Esc to close"),
	)

	// Center the help dialog
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
	)
}
