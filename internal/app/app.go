// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/dbug/internal/clock"
	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/jsonview"
	"github.com/zjrosen/dbug/internal/keys"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/pubsub"
	"github.com/zjrosen/dbug/internal/ui/clipboard"
	"github.com/zjrosen/dbug/internal/ui/help"
	"github.com/zjrosen/dbug/internal/ui/logview"
	"github.com/zjrosen/dbug/internal/ui/payloadlist"
	"github.com/zjrosen/dbug/internal/ui/styles"
	"github.com/zjrosen/dbug/internal/ui/toaster"
	"github.com/zjrosen/dbug/internal/watcher"
)

const (
	zonePrefix  = "dbug"
	ageInterval = 30 * time.Second
	title       = "dbug"
)

// Config wires the model to its collaborators.
type Config struct {
	// Service stores payloads (required).
	Service *payload.Service
	// Watcher reports writes by other processes. Optional.
	Watcher pubsub.Subscriber[watcher.Notice]
	// Logs feeds the debug log panel. Optional.
	Logs pubsub.Subscriber[string]
	// Renderer memoizes outline colorization. Optional.
	Renderer  *jsonview.Renderer
	Clipboard clipboard.Clipboard
	Clock     clock.Clock

	UI    config.UIConfig
	Theme config.ThemeConfig
	// ConfigPath receives theme changes. Empty disables persistence.
	ConfigPath string
	// Endpoint is the ingestion URL shown in the title and help.
	Endpoint string
	// Mouse enables click handling. bubblezone's global manager must be
	// initialized by the caller.
	Mouse bool
}

// Model is the root application state.
type Model struct {
	svc        *payload.Service
	clip       clipboard.Clipboard
	ui         config.UIConfig
	overrides  map[string]string
	configPath string
	endpoint   string
	mouse      bool

	keys    keys.KeyMap
	list    payloadlist.Model
	toaster toaster.Model
	help    help.Model
	logs    logview.Model

	showHelp     bool
	pendingClear bool
	themePreset  string
	newestAt     time.Time
	loaded       bool

	width  int
	height int

	ctx             context.Context
	cancel          context.CancelFunc
	payloadListener *pubsub.ContinuousListener[payload.Change]
	watcherListener *pubsub.ContinuousListener[watcher.Notice]
	logListener     *pubsub.ContinuousListener[string]
}

// New creates the root model and subscribes to payload and watcher events.
// Close releases the subscriptions.
func New(cfg Config) Model {
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.System{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	var watcherListener *pubsub.ContinuousListener[watcher.Notice]
	if cfg.Watcher != nil {
		watcherListener = pubsub.NewContinuousListener(ctx, cfg.Watcher)
	}
	var logListener *pubsub.ContinuousListener[string]
	if cfg.Logs != nil {
		logListener = pubsub.NewContinuousListener(ctx, cfg.Logs)
	}

	opts := payloadlist.Options{
		IndentSize:  cfg.UI.IndentSize,
		LineNumbers: cfg.UI.LineNumbers,
		Renderer:    cfg.Renderer,
		Clock:       cfg.Clock,
		Theme:       styles.CurrentPalette(),
	}
	if cfg.Mouse {
		opts.ZonePrefix = zonePrefix
	}

	km := keys.DefaultKeyMap()
	preset := cfg.Theme.Preset
	if preset == "" {
		preset = styles.DefaultPreset.Name
	}

	return Model{
		svc:             cfg.Service,
		clip:            cfg.Clipboard,
		ui:              cfg.UI,
		overrides:       cfg.Theme.FlattenedColors(),
		configPath:      cfg.ConfigPath,
		endpoint:        cfg.Endpoint,
		mouse:           cfg.Mouse,
		keys:            km,
		list:            payloadlist.New(opts),
		toaster:         toaster.New(),
		help:            help.New(km, cfg.Endpoint, cfg.UI.MarkdownStyle),
		logs:            logview.New(),
		themePreset:     preset,
		ctx:             ctx,
		cancel:          cancel,
		payloadListener: pubsub.NewContinuousListener[payload.Change](ctx, cfg.Service),
		watcherListener: watcherListener,
		logListener:     logListener,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadPayloads(m.ctx, m.svc, m.ui.ListLimit),
		m.payloadListener.Listen(),
		ageTick(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list = m.list.SetSize(max(msg.Width-2, 1), max(msg.Height-2, 1))
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp || m.logs.Visible() {
			return m, nil
		}
		m.list, _ = m.list.HandleMouse(msg)
		return m, nil

	case payloadsLoadedMsg:
		return m.handleLoaded(msg)

	case pubsub.Event[payload.Change]:
		return m.handleChange(msg)

	case pubsub.Event[watcher.Notice]:
		cmds := []tea.Cmd{m.watcherListener.Listen()}
		switch msg.Payload.Kind {
		case watcher.DBChanged:
			log.Debug(log.CatUI, "Database changed on disk, reloading")
			cmds = append(cmds, loadPayloads(m.ctx, m.svc, m.ui.ListLimit))
		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Err)
		}
		return m, tea.Batch(cmds...)

	case pubsub.Event[string]:
		m.logs = m.logs.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case deletedMsg:
		if msg.err != nil {
			return m.showError("Delete failed", msg.err)
		}
		return m.showToast("Deleted payload", toaster.StyleSuccess)

	case clearedMsg:
		if msg.err != nil {
			return m.showError("Clear failed", msg.err)
		}
		return m.showToast(fmt.Sprintf("Cleared %d payloads", msg.removed), toaster.StyleSuccess)

	case themeSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save theme", msg.err, "preset", msg.preset)
			return m.showToast("Theme not saved: "+msg.err.Error(), toaster.StyleWarn)
		}
		return m, nil

	case ageTickMsg:
		// Relative timestamps are computed in View; returning re-renders.
		return m, ageTick()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Close) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	confirming := m.pendingClear
	m.pendingClear = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Logs):
		m.logs = m.logs.Toggle()
	case key.Matches(msg, m.keys.Up):
		m.list = m.list.MoveUp(1)
	case key.Matches(msg, m.keys.Down):
		m.list = m.list.MoveDown(1)
	case key.Matches(msg, m.keys.Top):
		m.list = m.list.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.list = m.list.Bottom()
	case key.Matches(msg, m.keys.PageUp):
		m.list = m.list.MoveUp(m.list.PageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.list = m.list.MoveDown(m.list.PageSize())
	case key.Matches(msg, m.keys.Toggle):
		m.list = m.list.Activate()
	case key.Matches(msg, m.keys.Fold):
		m.list, _ = m.list.ToggleFoldAtCursor()
	case key.Matches(msg, m.keys.FoldAll):
		m.list = m.list.FoldAll()
	case key.Matches(msg, m.keys.UnfoldAll):
		m.list = m.list.UnfoldAll()
	case key.Matches(msg, m.keys.Close):
		m.list = m.list.Close()
	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.list.Selected(); ok {
			return m, deletePayload(m.ctx, m.svc, p.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		if m.list.Len() == 0 {
			return m, nil
		}
		if confirming {
			return m, clearPayloads(m.ctx, m.svc)
		}
		m.pendingClear = true
		return m.showToast(fmt.Sprintf("Press D again to delete all %d payloads", m.list.Len()), toaster.StyleWarn)
	case key.Matches(msg, m.keys.Yank):
		return m.copySelected()
	case key.Matches(msg, m.keys.Theme):
		return m.nextTheme()
	}
	return m, nil
}

func (m Model) handleLoaded(msg payloadsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.showError("Failed to load payloads", msg.err)
	}

	m.list = m.list.SetPayloads(msg.payloads)

	// Only the first load or a payload newer than any seen before takes
	// over the expansion. Deletes and clears leave the open payload alone.
	if len(msg.payloads) > 0 {
		newest := msg.payloads[0]
		arrived := !m.loaded || newest.ReceivedAt.After(m.newestAt)
		if m.ui.AutoExpandNewest && arrived {
			m.list = m.list.Expand(newest.ID)
		}
		if newest.ReceivedAt.After(m.newestAt) {
			m.newestAt = newest.ReceivedAt
		}
	}
	m.loaded = true
	return m, nil
}

func (m Model) handleChange(evt pubsub.Event[payload.Change]) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.payloadListener.Listen(), loadPayloads(m.ctx, m.svc, m.ui.ListLimit)}

	if evt.Type == pubsub.CreatedEvent && evt.Payload.Payload != nil {
		p := evt.Payload.Payload
		var toastCmd tea.Cmd
		m.toaster, toastCmd = m.toaster.Show(
			fmt.Sprintf("Received %s on %s", styles.FormatBytes(p.Size()), p.Path),
			toaster.StyleInfo,
		)
		cmds = append(cmds, toastCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	p, ok := m.list.Selected()
	if !ok {
		return m, nil
	}
	text := p.Pretty()
	if err := m.clip.Copy(text); err != nil {
		return m.showError("Copy failed", err)
	}
	return m.showToast(fmt.Sprintf("Copied %s to clipboard", styles.FormatBytes(len(text))), toaster.StyleSuccess)
}

func (m Model) nextTheme() (tea.Model, tea.Cmd) {
	next := styles.NextPreset(m.themePreset)
	if err := styles.ApplyTheme(styles.ThemeConfig{Preset: next, Colors: m.overrides}); err != nil {
		return m.showError("Theme failed", err)
	}
	m.themePreset = next
	m.list = m.list.SetTheme(styles.CurrentPalette())
	log.Info(log.CatUI, "Theme changed", "preset", next)

	model, toastCmd := m.showToast("Theme: "+next, toaster.StyleInfo)
	if m.configPath == "" {
		return model, toastCmd
	}
	return model, tea.Batch(toastCmd, saveTheme(m.configPath, next))
}

func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style)
	return m, cmd
}

func (m Model) showError(message string, err error) (tea.Model, tea.Cmd) {
	log.ErrorErr(log.CatUI, message, err)
	return m.showToast(message+": "+err.Error(), toaster.StyleError)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	frameTitle := title
	if m.endpoint != "" {
		frameTitle = title + " · " + m.endpoint
	}
	view := styles.Frame{
		Title:   frameTitle,
		Hint:    m.hint(),
		Width:   m.width,
		Height:  m.height,
		Focused: true,
	}.Render(m.list.View())

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	view = m.logs.Overlay(view)
	if m.mouse {
		view = zone.Scan(view)
	}
	return view
}

func (m Model) hint() string {
	switch n := m.list.Len(); {
	case !m.loaded:
		return "loading · ? help"
	case n == 1:
		return "1 payload · ? help"
	default:
		return fmt.Sprintf("%d payloads · ? help", n)
	}
}

// Theme returns the active preset name.
func (m Model) Theme() string {
	return m.themePreset
}

// List exposes the payload list state.
func (m Model) List() payloadlist.Model {
	return m.list
}

// HelpVisible reports whether the help overlay is showing.
func (m Model) HelpVisible() bool {
	return m.showHelp
}

// LogsVisible reports whether the debug log panel is showing.
func (m Model) LogsVisible() bool {
	return m.logs.Visible()
}

// Close releases the event subscriptions.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
