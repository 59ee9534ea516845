package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dots(width, height int) string {
	row := strings.Repeat(".", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Center(t *testing.T) {
	got := Place(Config{Width: 10, Height: 5}, "XX\nXX", dots(10, 5))

	require.Equal(t, strings.Join([]string{
		"..........",
		"....XX....",
		"....XX....",
		"..........",
		"..........",
	}, "\n"), got)
}

func TestPlace_Top(t *testing.T) {
	got := Place(Config{Width: 6, Height: 3, Position: Top, PadY: 1}, "ab", dots(6, 3))

	assert.Equal(t, "......\n..ab..\n......", got)
}

func TestPlace_Bottom(t *testing.T) {
	got := Place(Config{Width: 6, Height: 3, Position: Bottom}, "ab", dots(6, 3))

	assert.Equal(t, "......\n......\n..ab..", got)
}

func TestPlace_BottomRight(t *testing.T) {
	got := Place(Config{Width: 6, Height: 3, Position: BottomRight, PadX: 1, PadY: 1}, "ab", dots(6, 3))

	assert.Equal(t, "......\n...ab.\n......", got)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	got := Place(Config{Width: 4, Height: 3}, "x", "..")

	rows := strings.Split(got, "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, " x  ", rows[1])
}

func TestPlace_ForegroundLargerThanViewport(t *testing.T) {
	fg := strings.Repeat("#", 8) + "\n" + strings.Repeat("#", 8)
	got := Place(Config{Width: 4, Height: 1}, fg, "....")

	rows := strings.Split(got, "\n")
	require.Len(t, rows, 1)
	assert.Equal(t, "########", rows[0])
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	styled := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("abcdef")
	got := Place(Config{Width: 6, Height: 1}, "XX", styled)

	assert.Equal(t, "abXXef", ansi.Strip(got))
	assert.Equal(t, 6, ansi.StringWidth(got))
}
