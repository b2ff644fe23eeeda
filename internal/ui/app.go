package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/logging"
	"github.com/abelbrown/hncli/internal/page"
)

// State is the navigation state.
type State int

const (
	// StateLoading waits for the ranked id list.
	StateLoading State = iota
	// StateTransitioning has a page fetch in flight; the previous page stays visible.
	StateTransitioning
	// StateReady shows a page and accepts navigation.
	StateReady
	// StateFatal is entered when the id list cannot be fetched. Only quit works.
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateTransitioning:
		return "transitioning"
	case StateReady:
		return "ready"
	case StateFatal:
		return "fatal"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AppConfig holds the commands App uses to reach the outside world.
// Any of them may be nil, in which case that action does nothing.
type AppConfig struct {
	// List is the ranked list name, used in the title.
	List string

	// LoadTopStories fetches the id list and answers with TopStoriesLoaded.
	LoadTopStories func() tea.Cmd

	// ResolvePage fetches one page and answers with PageResolved carrying
	// the given page and generation.
	ResolvePage func(ids []hn.StoryID, pageNum, generation int) tea.Cmd

	// OpenURL launches the browser and answers with LinkOpened.
	OpenURL func(url string) tea.Cmd

	// RecentLogs feeds the debug overlay.
	RecentLogs func(n int) []string
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT fetch anything itself. It asks for pages through
// AppConfig commands and receives them as messages.
type App struct {
	loadTopStories func() tea.Cmd
	resolvePage    func(ids []hn.StoryID, pageNum, generation int) tea.Cmd
	openURL        func(url string) tea.Cmd
	recentLogs     func(n int) []string
	list           string

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	state State
	ids   []hn.StoryID
	items []hn.Item

	currentPage int // page whose items are shown
	targetPage  int // most recently requested page
	lastPage    int
	generation  int // bumped on every page request
	failedPage  int // page whose last fetch failed, 0 when none
	focus       int // index into items, -1 when nothing is focusable

	status    string // transient message, cleared by the next key
	err       error
	showDebug bool
	width     int
	height    int
}

// NewAppWithConfig creates an App in the Loading state.
func NewAppWithConfig(cfg AppConfig) App {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	list := cfg.List
	if list == "" {
		list = hn.DefaultList
	}

	return App{
		loadTopStories: cfg.LoadTopStories,
		resolvePage:    cfg.ResolvePage,
		openURL:        cfg.OpenURL,
		recentLogs:     cfg.RecentLogs,
		list:           list,
		keys:           keys,
		help:           help.New(),
		spinner:        s,
		state:          StateLoading,
		focus:          -1,
	}
}

// Init starts the id list download.
func (a App) Init() tea.Cmd {
	if a.loadTopStories == nil {
		return nil
	}
	return tea.Batch(a.loadTopStories(), a.spinner.Tick)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		if !a.Busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case TopStoriesLoaded:
		return a.handleTopStories(msg)

	case PageResolved:
		return a.handlePage(msg)

	case LinkOpened:
		if msg.Err != nil {
			logging.Warn("failed to open url", "url", msg.URL, "err", msg.Err)
			a.status = "could not open " + msg.URL
		} else {
			logging.Info("opened url", "url", msg.URL)
		}
		return a, nil
	}

	return a, nil
}

func (a App) handleTopStories(msg TopStoriesLoaded) (tea.Model, tea.Cmd) {
	if a.state != StateLoading {
		return a, nil
	}
	if msg.Err != nil {
		logging.Error("failed to fetch story ids", "list", a.list, "err", msg.Err)
		a.state = StateFatal
		a.err = msg.Err
		return a, nil
	}

	a.ids = msg.IDs
	a.lastPage = page.LastPage(len(a.ids), page.Size)
	if a.lastPage < 1 {
		// An empty list still gets one (empty) page.
		a.lastPage = 1
	}
	a.currentPage = 1
	logging.Info("top story ids fetched", "count", len(a.ids), "pages", a.lastPage)
	return a, a.requestPage(1)
}

func (a App) handlePage(msg PageResolved) (tea.Model, tea.Cmd) {
	if msg.Generation != a.generation {
		logging.Debug("discarding stale page", "page", msg.Page, "generation", msg.Generation, "current", a.generation)
		return a, nil
	}

	if msg.Err != nil {
		logging.Error("failed to load page", "page", msg.Page, "err", msg.Err)
		a.err = msg.Err
		a.status = fmt.Sprintf("failed to load page %d (r to retry)", msg.Page)
		a.failedPage = msg.Page
		a.targetPage = a.currentPage
		a.state = StateReady
		return a, nil
	}

	a.items = msg.Items
	a.currentPage = msg.Page
	a.targetPage = msg.Page
	a.focus = 0
	if len(a.items) == 0 {
		a.focus = -1
	}
	a.failedPage = 0
	a.err = nil
	a.status = ""
	a.state = StateReady
	logging.Debug("page shown", "page", msg.Page, "items", len(msg.Items))
	return a, nil
}

// requestPage starts resolving pageNum. Any result still in flight for an
// earlier request will be discarded when it arrives.
func (a *App) requestPage(pageNum int) tea.Cmd {
	a.generation++
	a.targetPage = pageNum
	a.failedPage = 0
	a.state = StateTransitioning
	logging.Debug("requesting page", "page", pageNum, "generation", a.generation)

	if a.resolvePage == nil {
		return nil
	}
	return tea.Batch(a.resolvePage(a.ids, pageNum, a.generation), a.spinner.Tick)
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		logging.Info("quit requested")
		return a, tea.Quit
	}

	// Any key dismisses the last transient message.
	a.status = ""
	if a.state == StateReady {
		a.err = nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case key.Matches(msg, a.keys.Debug):
		a.showDebug = !a.showDebug
		return a, nil
	}

	if a.state == StateLoading || a.state == StateFatal {
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Down):
		if a.focus < len(a.items)-1 {
			a.focus++
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		if a.focus > 0 {
			a.focus--
		}
		return a, nil

	case key.Matches(msg, a.keys.PrevPage):
		if a.targetPage > 1 {
			return a, a.requestPage(a.targetPage - 1)
		}
		return a, nil

	case key.Matches(msg, a.keys.NextPage):
		if a.targetPage < a.lastPage {
			return a, a.requestPage(a.targetPage + 1)
		}
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		if a.failedPage != 0 {
			return a, a.requestPage(a.failedPage)
		}
		return a, a.requestPage(a.targetPage)

	case key.Matches(msg, a.keys.Open):
		return a, a.open(hn.Item.Link)

	case key.Matches(msg, a.keys.Comments):
		return a, a.open(hn.Item.DiscussionURL)
	}

	return a, nil
}

// open launches the URL that link picks for the focused item. Placeholders
// have no URL and are skipped.
func (a App) open(link func(hn.Item) string) tea.Cmd {
	it, ok := a.Focused()
	if !ok || it.IsPlaceholder() || a.openURL == nil {
		return nil
	}
	url := link(it)
	if url == "" {
		return nil
	}
	return a.openURL(url)
}

// Busy reports whether a fetch is in flight.
func (a App) Busy() bool {
	return a.state == StateLoading || a.state == StateTransitioning
}

// State returns the navigation state (for testing).
func (a App) State() State {
	return a.state
}

// CurrentPage returns the page on screen.
func (a App) CurrentPage() int {
	return a.currentPage
}

// TargetPage returns the most recently requested page.
func (a App) TargetPage() int {
	return a.targetPage
}

// LastPage returns the number of pages.
func (a App) LastPage() int {
	return a.lastPage
}

// Generation returns the current request generation.
func (a App) Generation() int {
	return a.generation
}

// Items returns the items on screen (for testing).
func (a App) Items() []hn.Item {
	return a.items
}

// Cursor returns the focus index, or -1 (for testing).
func (a App) Cursor() int {
	return a.focus
}

// Focused returns the focused item.
func (a App) Focused() (hn.Item, bool) {
	if a.focus < 0 || a.focus >= len(a.items) {
		return hn.Item{}, false
	}
	return a.items[a.focus], true
}

// Err returns the last fetch error still on screen.
func (a App) Err() error {
	return a.err
}

// pageStart is the global offset of the first item on the current page.
func (a App) pageStart() int {
	start, _ := page.Bounds(a.currentPage, page.Size, len(a.ids))
	return start
}

// View renders the title, the page menu, the focused item's details and
// the status line.
func (a App) View() string {
	if a.showDebug {
		return debugOverlay(a.recentLogs, a.width, a.height) + "\n" + debugStatusBar(a.width)
	}

	var b strings.Builder
	b.WriteString(RenderTitle(a.list, a.currentPage, a.titleSpinner(), a.width))
	b.WriteString("\n")

	switch a.state {
	case StateLoading:
		b.WriteString(HelpStyle.Render("Fetching " + hn.ListTitle(a.list) + "..."))
		b.WriteString("\n")
	case StateFatal:
		b.WriteString(HelpStyle.Render("Could not load " + hn.ListTitle(a.list) + ". Press q to quit."))
		b.WriteString("\n")
	default:
		b.WriteString(RenderMenu(a.items, a.pageStart(), a.focus, a.width))
	}

	b.WriteString("\n")
	it, ok := a.Focused()
	if ok {
		b.WriteString(RenderMeta(it, time.Now(), a.width))
	}
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	return b.String()
}

func (a App) titleSpinner() string {
	if a.Busy() {
		return a.spinner.View()
	}
	return ""
}

// statusLine shows, in order of precedence: the transient status, the last
// error, "downloading..." while busy, or the key help.
func (a App) statusLine() string {
	switch {
	case a.status != "":
		return RenderStatusBar(a.status, a.width)
	case a.err != nil:
		return ErrorStyle.Render("Error: " + a.err.Error())
	case a.Busy():
		return RenderStatusBar("downloading...", a.width)
	default:
		return RenderStatusBar(a.help.View(a.keys), a.width)
	}
}
