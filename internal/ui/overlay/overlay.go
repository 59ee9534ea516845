// Package overlay draws one block of terminal content on top of another
// without clearing what is underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the viewport.
	Center Position = iota
	// Top places the overlay at the top center.
	Top
	// Bottom places the overlay at the bottom center.
	Bottom
	// BottomRight places the overlay in the bottom right corner.
	BottomRight
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadX is the gap to the right edge for BottomRight.
	PadX int
	// PadY is the gap to the top or bottom edge.
	PadY int
}

// Place renders fg on top of bg. Both may contain ANSI styling; cells of
// bg outside the foreground's rows and columns are kept as they are.
func Place(cfg Config, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < cfg.Height {
		rows = append(rows, strings.Repeat(" ", cfg.Width))
	}

	fgRows := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(fgRows))

	for i, fgRow := range fgRows {
		if y+i >= len(rows) {
			break
		}
		rows[y+i] = splice(rows[y+i], fgRow, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of row starting at column x with insert.
func splice(row, insert string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(insert)
	var right string
	if end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + insert + right
}

// origin returns the top-left cell of the foreground, clamped to the
// viewport.
func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	case BottomRight:
		x = cfg.Width - fgWidth - cfg.PadX
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
