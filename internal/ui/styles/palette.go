package styles

import (
	"fmt"
	"hash/fnv"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/dbug/internal/jsonview"
)

// Palette is a resolved set of theme colors. It satisfies jsonview.Theme so
// the outline renderer can color tokens straight from the active theme.
type Palette struct {
	name   string
	colors map[ColorToken]string
}

var toneTokens = map[jsonview.Tone][4]ColorToken{
	jsonview.ToneBackground: {TokenBackgroundBase, TokenBackgroundWeak, TokenBackgroundStrong, TokenBackgroundText},
	jsonview.TonePrimary:    {TokenPrimaryBase, TokenPrimaryWeak, TokenPrimaryStrong, TokenPrimaryText},
	jsonview.ToneSecondary:  {TokenSecondaryBase, TokenSecondaryWeak, TokenSecondaryStrong, TokenSecondaryText},
	jsonview.ToneSuccess:    {TokenSuccessBase, TokenSuccessWeak, TokenSuccessStrong, TokenSuccessText},
}

// newPalette names the palette after its preset. Overrides change the
// colors, so they are folded into the name as a short hash.
func newPalette(preset string, colors map[ColorToken]string, overrides map[string]string) Palette {
	name := preset
	if len(overrides) > 0 {
		h := fnv.New32a()
		for _, key := range slices.Sorted(maps.Keys(overrides)) {
			fmt.Fprintf(h, "%s=%s;", key, overrides[key])
		}
		name = fmt.Sprintf("%s+%08x", preset, h.Sum32())
	}
	return Palette{name: name, colors: colors}
}

// Name identifies the palette. Two palettes with the same name have the
// same colors.
func (p Palette) Name() string {
	if p.name == "" {
		return DefaultPreset.Name
	}
	return p.name
}

// Hex returns the configured color for token, falling back to the default
// preset.
func (p Palette) Hex(token ColorToken) string {
	if c, ok := p.colors[token]; ok {
		return c
	}
	return DefaultPreset.Colors[token]
}

// Color implements jsonview.Theme.
func (p Palette) Color(tone jsonview.Tone, intensity jsonview.Intensity) jsonview.Color {
	tokens, ok := toneTokens[tone]
	if !ok || intensity < jsonview.IntensityBase || intensity > jsonview.IntensityStrong {
		return jsonview.Color(p.Hex(TokenTextPrimary))
	}
	return jsonview.Color(p.Hex(tokens[intensity]))
}

// Text implements jsonview.Theme.
func (p Palette) Text(tone jsonview.Tone) jsonview.Color {
	tokens, ok := toneTokens[tone]
	if !ok {
		return jsonview.Color(p.Hex(TokenTextPrimary))
	}
	return jsonview.Color(p.Hex(tokens[3]))
}

// Foreground returns a style drawing text in c.
func Foreground(c jsonview.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
}
