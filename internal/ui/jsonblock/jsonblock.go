// Package jsonblock draws a jsonview render plan as styled terminal lines:
// a fold caret, a line number gutter, indentation, colored tokens and the
// summary shown after a folded opener.
package jsonblock

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/dbug/internal/jsonview"
	"github.com/zjrosen/dbug/internal/ui/styles"
)

// Fold carets. A line that cannot fold gets blank padding of the same width.
const (
	CaretExpanded  = "▾ "
	CaretCollapsed = "▸ "
	caretBlank     = "  "

	foldEllipsis = " ⋯"
)

// Options controls the layout of each line.
type Options struct {
	// IndentSize is the number of spaces per nesting level.
	IndentSize int
	// LineNumbers shows the 1-based source line number before the content.
	LineNumbers bool
	// Width truncates every line to this many cells. Zero disables it.
	Width int
	// ZonePrefix, when set, marks each caret as a bubblezone so mouse
	// clicks can be mapped back to the source line with FoldZoneID.
	ZonePrefix string
	// Theme colors the closing delimiter of a fold summary. Nil uses the
	// active palette.
	Theme jsonview.Theme
}

// FoldZoneID is the bubblezone id of the caret on source line index.
func FoldZoneID(prefix string, index int) string {
	return fmt.Sprintf("%s:fold:%d", prefix, index)
}

// GutterWidth is the number of cells taken by caret and line number
// before any indentation.
func GutterWidth(lines []jsonview.RenderLine, opts Options) int {
	w := ansi.StringWidth(caretBlank)
	if opts.LineNumbers {
		w += numberWidth(lines) + 1
	}
	return w
}

// numberWidth is at least three cells, wider only for documents with
// more than 999 lines.
func numberWidth(lines []jsonview.RenderLine) int {
	last := 0
	if n := len(lines); n > 0 {
		last = lines[n-1].Index + 1
	}
	return max(3, len(fmt.Sprint(last)))
}

// Render draws every line of the plan.
func Render(lines []jsonview.RenderLine, opts Options) []string {
	if opts.Theme == nil {
		opts.Theme = styles.CurrentPalette()
	}
	out := make([]string, len(lines))
	digits := numberWidth(lines)
	for i, l := range lines {
		out[i] = renderLine(l, opts, digits)
	}
	return out
}

// RenderString is Render joined with newlines.
func RenderString(lines []jsonview.RenderLine, opts Options) string {
	return strings.Join(Render(lines, opts), "\n")
}

func renderLine(l jsonview.RenderLine, opts Options, digits int) string {
	caret := caretBlank
	if l.Collapsible {
		caret = CaretExpanded
		if l.Collapsed {
			caret = CaretCollapsed
		}
		caret = styles.CaretStyle.Render(caret)
		if opts.ZonePrefix != "" {
			caret = zone.Mark(FoldZoneID(opts.ZonePrefix, l.Index), caret)
		}
	}

	var b strings.Builder
	if opts.LineNumbers {
		b.WriteString(styles.GutterStyle.Render(fmt.Sprintf("%*d", digits, l.Index+1)))
		b.WriteByte(' ')
	}
	b.WriteString(strings.Repeat(" ", l.Indent*max(opts.IndentSize, 0)))
	for _, tok := range l.Tokens {
		b.WriteString(styles.Foreground(tok.Color).Render(jsonview.PlainToken(tok.Token)))
	}
	if l.Fold != nil {
		b.WriteString(styles.FoldMarkerStyle.Render(foldEllipsis + l.Fold.Count()))
		b.WriteByte(' ')
		b.WriteString(closerStyle(l.Fold.Closing, opts.Theme).Render(l.Fold.Closing))
	}

	body := b.String()
	if opts.Width > 0 {
		body = ansi.Truncate(body, max(opts.Width-ansi.StringWidth(caretBlank), 0), "…")
	}
	return caret + body
}

// closerStyle colors a fold's closing delimiter like the brackets around it.
func closerStyle(closing string, theme jsonview.Theme) lipgloss.Style {
	return styles.Foreground(jsonview.ColorFor(closing, false, false, theme))
}
