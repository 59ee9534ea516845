// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/dbug/internal/keys"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/ui/markdown"
	"github.com/zjrosen/dbug/internal/ui/overlay"
	"github.com/zjrosen/dbug/internal/ui/styles"
)

const usageTemplate = `## Sending payloads

POST any JSON body to the inspector:

    curl -X POST %s -d '{"hello": "world"}'

Every path is accepted. The newest payload opens automatically.

## Folding

Lines ending in **{** or **[** fold. A folded block shows how many lines it
hides followed by the closing bracket.`

// Model holds the help view state.
type Model struct {
	keys          keys.KeyMap
	endpoint      string
	markdownStyle string
	width         int
	height        int
}

// New creates a help view. endpoint is the URL shown in the usage section;
// empty when the ingestion server is not running.
func New(km keys.KeyMap, endpoint, markdownStyle string) Model {
	return Model{keys: km, endpoint: endpoint, markdownStyle: markdownStyle}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box centered in an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderContent())
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.renderContent(), background)
}

func (m Model) renderContent() string {
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	groups := m.keys.FullHelp()
	cols := make([]string, 0, len(groups))
	for i, group := range groups {
		var col strings.Builder
		col.WriteString(sectionStyle.Render(keys.HelpSections[i]))
		col.WriteString("\n")
		for _, b := range group {
			col.WriteString(renderBinding(b))
		}
		if i < len(groups)-1 {
			cols = append(cols, columnStyle.Render(col.String()))
		} else {
			cols = append(cols, col.String())
		}
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	width := lipgloss.Width(columns)

	body := columns
	if usage := m.renderUsage(width); usage != "" {
		body += "\n\n" + usage
	}
	body += "\n" + lipgloss.NewStyle().Foreground(styles.TextMutedColor).MarginTop(1).Render("Press ? or Esc to close")

	boxWidth := width + 4
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(styles.TitleStyle.PaddingLeft(2).Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(body))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(content.String())
}

// renderUsage draws the markdown usage notes. Rendering failures only
// drop the section.
func (m Model) renderUsage(width int) string {
	if m.endpoint == "" {
		return ""
	}
	r, err := markdown.New(width, m.markdownStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "help markdown renderer", err)
		return ""
	}
	out, err := r.Render(fmt.Sprintf(usageTemplate, m.endpoint))
	if err != nil {
		log.ErrorErr(log.CatUI, "help markdown render", err)
		return ""
	}
	return strings.TrimRight(out, "\n")
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	keyStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Width(9)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
