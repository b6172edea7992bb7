package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabdeck/internal/config"
	"tabdeck/internal/content"
	"tabdeck/internal/event"
	"tabdeck/internal/nav"
	"tabdeck/internal/session"
	"tabdeck/internal/telemetry"
	"tabdeck/internal/ui/textutil"
	"tabdeck/internal/watch"
)

// SaveSessionMsg is sent when the user requests an immediate session flush (SPC s).
type SaveSessionMsg struct{}

// ReloadConfigMsg is sent when the user requests a config reload (SPC r).
type ReloadConfigMsg struct{}

// JumpToTabMsg is sent when the user jumps to a tab by position (SPC 1..9).
type JumpToTabMsg struct {
	Index int // 1-based position in traversal order
}

// ToggleHelpMsg toggles the full help overlay (?).
type ToggleHelpMsg struct{}

// Options wires the application model to its collaborators. Bus and Manager
// are required; Tracker and Visits may be nil.
type Options struct {
	Config  config.Config
	Bus     event.Bus
	Manager *nav.Manager
	Pages   []content.Page
	Tracker *session.Tracker
	Visits  *telemetry.Recorder
}

// AppModel is the root model: the tab bar above a glamour-rendered page
// viewport, with a status line and key help underneath.
type AppModel struct {
	cfg  config.Config
	bus  event.Bus
	tabs *nav.Manager

	KeyHandler *KeyHandler
	container  *nav.Container
	pages      *pageCache
	tracker    *session.Tracker
	visits     *telemetry.Recorder

	viewport  viewport.Model
	helpModel help.Model
	bridge    *busBridge

	width, height int
	ready         bool
	showHelp      bool
	currentPage   string
	status        string
	err           error
}

// Four rows of chrome around the page viewport: tab bar, blank, status, footer.
const chromeRows = 4

// NewAppModel creates the root application model and mounts the tab bar.
func NewAppModel(opts Options) (*AppModel, error) {
	if opts.Bus == nil || opts.Manager == nil {
		return nil, fmt.Errorf("ui: Options.Bus and Options.Manager are required")
	}

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC s", func() tea.Msg { return SaveSessionMsg{} }, "Save session")
	reg.BindWithDesc("SPC r", func() tea.Msg { return ReloadConfigMsg{} }, "Reload config")
	for i := 1; i <= 9; i++ {
		n := i
		reg.BindWithDesc(fmt.Sprintf("SPC %d", n),
			func() tea.Msg { return JumpToTabMsg{Index: n} },
			fmt.Sprintf("Tab %d", n))
	}
	reg.BindWithDesc("?", func() tea.Msg { return ToggleHelpMsg{} }, "Help")

	a := &AppModel{
		cfg:        opts.Config,
		bus:        opts.Bus,
		tabs:       opts.Manager,
		KeyHandler: NewKeyHandler(reg),
		pages:      newPageCache(opts.Pages, opts.Config.UI.Theme),
		tracker:    opts.Tracker,
		visits:     opts.Visits,
		viewport:   viewport.New(0, 0),
		helpModel:  help.New(),
		status:     "press SPC for commands",
	}
	a.viewport.Style = lipgloss.NewStyle().Padding(0, 1)
	a.bridge = newBusBridge(opts.Bus,
		nav.TopicTabAdded,
		nav.TopicActivated,
		nav.TopicBadgeUpdated,
		nav.TopicLayoutChanged,
		watch.TopicConfigChanged,
	)

	container, err := opts.Manager.Mount(a)
	if err != nil {
		a.bridge.close()
		return nil, err
	}
	a.container = container
	return a, nil
}

// Size implements nav.Host.
func (a *AppModel) Size() (int, int) { return a.width, a.height }

// Close cancels the app's bus subscriptions. Call after the program exits.
func (a *AppModel) Close() {
	a.bridge.close()
}

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

var _ tea.Model = (*appModelAdapter)(nil)

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.bridge.wait()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		a.bus.Publish(nav.TopicResize, nav.Resize{Width: msg.Width, Height: msg.Height})
		a.refreshContent()
		return a, nil

	case busMsg:
		a.onBusEvent(msg.Event)
		return a, a.bridge.wait()

	case SaveSessionMsg:
		a.saveSession()
		return a, nil

	case ReloadConfigMsg:
		a.reloadConfig()
		return a, nil

	case JumpToTabMsg:
		a.jumpToTab(msg.Index)
		return a, nil

	case ToggleHelpMsg:
		a.showHelp = !a.showHelp
		return a, nil

	case tea.KeyMsg:
		if a.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				a.showHelp = false
			}
			return a, nil
		}
		// Keybind system (leader key, SPC-prefixed commands)
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
		// Tab traversal
		if consumed, err := a.tabs.HandleKey(msg, ""); consumed {
			if err != nil {
				a.err = err
			} else {
				a.refreshContent()
			}
			return a, nil
		}
		// Unclaimed keys scroll the page.
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if !a.ready {
		return ""
	}
	if a.showHelp {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.helpOverlay())
	}

	var b strings.Builder
	b.WriteString(a.container.View() + "\n\n")
	b.WriteString(a.viewport.View() + "\n")
	b.WriteString(a.statusLine() + "\n")
	b.WriteString(a.footer())

	base := b.String()
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler)
	}
	return base
}

// onBusEvent mirrors bus traffic into the status line and refreshes the
// page when the active tab moved. Events arrive here via the bridge, so
// watcher-originated ones included.
func (a *AppModel) onBusEvent(ev event.Event) {
	switch p := ev.Payload.(type) {
	case nav.Activated:
		a.err = nil
		a.status = "tab " + p.TabID
		a.refreshContent()
	case nav.BadgeUpdated:
		if p.Value == "" {
			a.status = "badge cleared on " + p.TabID
		} else {
			a.status = "badge " + p.TabID + "=" + p.Value
		}
	case nav.LayoutChanged:
		a.status = "layout " + p.Mode.String()
	case nav.TabAdded:
		a.status = "added tab " + p.TabID
	case watch.ConfigChanged:
		a.reloadConfig()
	}
}

func (a *AppModel) saveSession() {
	if a.tracker == nil {
		a.status = "session persistence disabled"
		return
	}
	if err := a.tracker.Flush(); err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.status = "session saved"
}

// reloadConfig re-reads the config file and applies everything that can
// change at runtime: traversal keys, breakpoint, page theme.
func (a *AppModel) reloadConfig() {
	cfg, err := config.Load()
	if err != nil {
		a.err = err
		return
	}
	a.cfg = cfg
	a.tabs.SetKeyMap(cfg.NavKeyMap())
	a.tabs.SetBreakpoint(cfg.Nav.Breakpoint)
	a.pages.invalidate(cfg.UI.Theme, a.contentWidth())
	a.refreshContent()
	a.err = nil
	a.status = "config reloaded"
}

func (a *AppModel) jumpToTab(n int) {
	ids := a.tabs.IDs()
	if n < 1 || n > len(ids) {
		a.status = fmt.Sprintf("no tab %d", n)
		return
	}
	if err := a.tabs.Activate(ids[n-1]); err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.refreshContent()
}

func (a *AppModel) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width = width
	a.height = height
	a.ready = true
	a.helpModel.Width = width
	a.viewport.Width = width
	a.viewport.Height = max(height-chromeRows, 1)
	a.pages.invalidate(a.cfg.UI.Theme, a.contentWidth())
}

func (a *AppModel) contentWidth() int {
	return max(a.viewport.Width-a.viewport.Style.GetHorizontalFrameSize(), 0)
}

func (a *AppModel) refreshContent() {
	if !a.ready {
		return
	}
	id := a.tabs.Active()
	if id == "" {
		a.viewport.SetContent(Styles.Empty.Render("no active tab"))
		return
	}
	a.viewport.SetContent(a.pages.render(id))
	if id != a.currentPage {
		a.viewport.GotoTop()
		a.currentPage = id
	}
}

func (a *AppModel) statusLine() string {
	var left string
	if a.err != nil {
		left = Styles.ErrText.Render(a.err.Error())
	} else {
		left = Styles.Status.Render(a.status)
	}
	right := ""
	if a.visits != nil {
		right = Styles.Muted.Render(fmt.Sprintf("%d visits", len(a.visits.Recent())))
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *AppModel) footer() string {
	return Styles.Title.Render("tabdeck") + " " + a.helpModel.View(a.helpKeys())
}

// helpKeys merges the traversal bindings with the app chords for bubbles/help.
type helpKeys struct {
	tabs nav.KeyMap
	app  []key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.tabs.ShortHelp(), h.app...)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.tabs.FullHelp(), h.app)
}

func (a *AppModel) helpKeys() helpKeys {
	return helpKeys{
		tabs: a.tabs.KeyMap(),
		app: []key.Binding{
			key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "commands")),
			key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		},
	}
}

// helpOverlay lists every binding: traversal keys from bubbles/help plus
// the sorted registry sequences.
func (a *AppModel) helpOverlay() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("tabdeck keys") + "\n\n")
	b.WriteString(a.helpModel.FullHelpView(a.helpKeys().FullHelp()))
	b.WriteString("\n\n")

	hints := a.KeyHandler.Registry.Hints()
	seqs := make([]string, 0, len(hints))
	for s := range hints {
		seqs = append(seqs, s)
	}
	sort.Strings(seqs)
	for _, s := range seqs {
		b.WriteString(Styles.Selected.Render(textutil.PadRight(s, 10)) + Styles.Muted.Render(hints[s]) + "\n")
	}
	b.WriteString("\n" + Styles.Empty.Render("press ? or esc to close"))
	return Styles.HelpBox.Render(b.String())
}
