// Package logview is an overlay showing recent debug log entries without
// leaving the viewer. Entries arrive through Append; the panel keeps the
// newest MaxEntries of them.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/ui/overlay"
	"github.com/zjrosen/dbug/internal/ui/styles"
)

const (
	MaxEntries = 500

	viewportMaxHeight = 25
	viewportMinHeight = 5
	boxMaxWidth       = 160
	boxMinWidth       = 40
	// header, footer and border rows around the viewport
	chromeHeight = 6
)

// Model is the log panel state.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New returns a hidden panel showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records entry, dropping the oldest beyond MaxEntries. A visible
// panel follows the tail.
func (m Model) Append(entry string) Model {
	entry = strings.TrimSuffix(entry, "\n")
	if entry == "" {
		return m
	}
	m.entries = append(m.entries, entry)
	if n := len(m.entries); n > MaxEntries {
		m.entries = append([]string(nil), m.entries[n-MaxEntries:]...)
	}
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// Update handles keys while the panel is open. ctrl+x or esc closes it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.entries = nil
			return m.refresh(), nil
		case "d":
			m.minLevel = log.LevelDebug
			return m.refresh(), nil
		case "i":
			m.minLevel = log.LevelInfo
			return m.refresh(), nil
		case "w":
			m.minLevel = log.LevelWarn
			return m.refresh(), nil
		case "e":
			m.minLevel = log.LevelError
			return m.refresh(), nil
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x", "esc":
			m.visible = false
		}

	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	}

	return m, nil
}

// Toggle opens or closes the panel. Opening scrolls to the newest entry.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.refresh()
}

// Visible reports whether the panel is open.
func (m Model) Visible() bool {
	return m.visible
}

// Len is the number of buffered entries, regardless of the level filter.
func (m Model) Len() int {
	return len(m.entries)
}

// MinLevel is the current filter.
func (m Model) MinLevel() log.Level {
	return m.minLevel
}

// View renders the panel box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	body := strings.Join([]string{
		titleStyle.Render("Debug log"),
		divider,
		m.viewport.View(),
		divider,
		m.filterHint(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(body)
}

// Overlay draws the panel centered over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

func (m Model) refresh() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	height := max(min(viewportMaxHeight, m.height-chromeHeight), viewportMinHeight)
	width := m.boxWidth() - 2

	offset := m.viewport.YOffset
	m.viewport = viewport.New(width, height)
	m.viewport.SetContent(m.content(width))
	m.viewport.SetYOffset(offset)
	return m
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) content(width int) string {
	var lines []string
	for _, entry := range m.entries {
		if levelOf(entry) >= m.minLevel {
			lines = append(lines, colorize(entry, width))
		}
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true).
			Render("No log entries")
	}
	return strings.Join(lines, "\n")
}

// levelOf reads the "[LEVEL]" tag written by the log package. Untagged
// lines count as errors so no filter hides them.
func levelOf(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	default:
		return log.LevelError
	}
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width-1, "…")
	}

	var color lipgloss.TerminalColor
	switch levelOf(entry) {
	case log.LevelDebug:
		color = styles.TextMutedColor
	case log.LevelInfo:
		color = styles.ToastBorderInfoColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	default:
		color = styles.StatusErrorColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	filters := []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	}

	parts := []string{hint.Render("[c] Clear")}
	for _, f := range filters {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}
