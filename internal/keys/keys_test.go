package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up", km.Up, []string{"k", "up"}},
		{"Down", km.Down, []string{"j", "down"}},
		{"Top", km.Top, []string{"g", "home"}},
		{"Bottom", km.Bottom, []string{"G", "end"}},
		{"PageUp", km.PageUp, []string{"ctrl+u", "pgup"}},
		{"PageDown", km.PageDown, []string{"ctrl+d", "pgdown"}},
		{"Toggle", km.Toggle, []string{"enter", " "}},
		{"Fold", km.Fold, []string{"z"}},
		{"FoldAll", km.FoldAll, []string{"Z"}},
		{"UnfoldAll", km.UnfoldAll, []string{"E"}},
		{"Close", km.Close, []string{"esc"}},
		{"Delete", km.Delete, []string{"d"}},
		{"Clear", km.Clear, []string{"D"}},
		{"Yank", km.Yank, []string{"y"}},
		{"Theme", km.Theme, []string{"t"}},
		{"Logs", km.Logs, []string{"ctrl+x"}},
		{"Help", km.Help, []string{"?"}},
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Z")}, km.FoldAll))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, km.FoldAll))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEnter}, km.Toggle))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlD}, km.PageDown))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, km.Close))
}

func TestFullHelp_CoversEveryBinding(t *testing.T) {
	km := DefaultKeyMap()
	groups := km.FullHelp()
	require.Len(t, groups, len(HelpSections))

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	require.Equal(t, 18, total)
	require.Len(t, km.ShortHelp(), 4)
}
