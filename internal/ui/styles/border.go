// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Frame draws a rounded box with the title embedded in the top border and
// an optional hint right-aligned in the bottom border:
//
//	╭─ Title ──────────╮
//	│content           │
//	╰──────── hint ────╯
type Frame struct {
	Title   string
	Hint    string
	Width   int
	Height  int
	Focused bool
}

// Render lays content out inside the frame. Content is clipped and padded
// to the inner area so the right border always lines up.
func (f Frame) Render(content string) string {
	borderColor := BorderDefaultColor
	if f.Focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(f.Width-2, 1)
	innerHeight := max(f.Height-2, 1)

	body := lipgloss.NewStyle().
		Width(innerWidth).
		Height(innerHeight).
		MaxWidth(innerWidth).
		MaxHeight(innerHeight).
		Render(content)

	var b strings.Builder
	b.WriteString(f.edge(borderTopLeft, borderTopRight, f.Title, innerWidth, borderStyle, TitleStyle, false))
	for i, line := range strings.Split(body, "\n") {
		if i == innerHeight {
			break
		}
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString("\n")
		b.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(f.edge(borderBottomLeft, borderBottomRight, f.Hint, innerWidth, borderStyle, TimestampStyle, true))
	return b.String()
}

// edge builds one horizontal border with an embedded label. A label that
// does not fit is truncated; below four columns it is dropped entirely.
func (f Frame) edge(left, right, label string, innerWidth int, borderStyle, labelStyle lipgloss.Style, alignRight bool) string {
	if label == "" || innerWidth < 4 {
		return borderStyle.Render(left + strings.Repeat(borderHorizontal, innerWidth) + right)
	}

	label = TruncateString(label, innerWidth-4)
	rest := max(innerWidth-3-lipgloss.Width(label), 0)

	if alignRight {
		// ╰──── hint ─╯
		lead := max(rest-1, 0)
		return borderStyle.Render(left+strings.Repeat(borderHorizontal, lead)+" ") +
			labelStyle.Render(label) +
			borderStyle.Render(" "+strings.Repeat(borderHorizontal, innerWidth-lead-2-lipgloss.Width(label))+right)
	}

	// ╭─ Title ────╮
	return borderStyle.Render(left+borderHorizontal+" ") +
		labelStyle.Render(label) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, rest)+right)
}
