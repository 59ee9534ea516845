// Package styles contains Lip Gloss style definitions.
package styles

import (
	"slices"
	"sort"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the dbug color scheme used when no preset is configured.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default dbug theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator:  "#FFFFFF",
		TokenSelectionBackground: "#2D3436",

		TokenGutter:     "#696969",
		TokenCaret:      "#BBBBBB",
		TokenFoldMarker: "#999999",
		TokenPath:       "#54A0FF",
		TokenTimestamp:  "#777777",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		TokenBackgroundBase:   "#1E1E1E",
		TokenBackgroundWeak:   "#8C8C8C", // brackets
		TokenBackgroundStrong: "#5C5C5C", // commas
		TokenBackgroundText:   "#CCCCCC",
		TokenPrimaryBase:      "#54A0FF",
		TokenPrimaryWeak:      "#FF9F43", // true, false, null
		TokenPrimaryStrong:    "#73F59F", // string values
		TokenPrimaryText:      "#1E1E1E",
		TokenSecondaryBase:    "#BBBBBB", // colons
		TokenSecondaryWeak:    "#7D56F4",
		TokenSecondaryStrong:  "#B4BEFE",
		TokenSecondaryText:    "#54A0FF", // keys
		TokenSuccessBase:      "#43BF6D",
		TokenSuccessWeak:      "#FECA57", // numbers
		TokenSuccessStrong:    "#73F59F",
		TokenSuccessText:      "#1E1E1E",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextSecondary: "#BAC2DE", // subtext1
		TokenTextMuted:     "#6C7086", // overlay0

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#B4BEFE", // lavender

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenSelectionIndicator:  "#CDD6F4", // text
		TokenSelectionBackground: "#313244", // surface0

		TokenGutter:     "#585B70", // surface2
		TokenCaret:      "#BAC2DE", // subtext1
		TokenFoldMarker: "#7F849C", // overlay1
		TokenPath:       "#89B4FA", // blue
		TokenTimestamp:  "#6C7086", // overlay0

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
		TokenToastInfo:    "#89B4FA", // blue
		TokenToastWarn:    "#F9E2AF", // yellow

		TokenBackgroundBase:   "#1E1E2E", // base
		TokenBackgroundWeak:   "#9399B2", // overlay2
		TokenBackgroundStrong: "#585B70", // surface2
		TokenBackgroundText:   "#CDD6F4", // text
		TokenPrimaryBase:      "#89B4FA", // blue
		TokenPrimaryWeak:      "#CBA6F7", // mauve
		TokenPrimaryStrong:    "#A6E3A1", // green
		TokenPrimaryText:      "#1E1E2E", // base
		TokenSecondaryBase:    "#94E2D5", // teal
		TokenSecondaryWeak:    "#74C7EC", // sapphire
		TokenSecondaryStrong:  "#B4BEFE", // lavender
		TokenSecondaryText:    "#89B4FA", // blue
		TokenSuccessBase:      "#A6E3A1", // green
		TokenSuccessWeak:      "#FAB387", // peach
		TokenSuccessStrong:    "#F9E2AF", // yellow
		TokenSuccessText:      "#1E1E2E", // base
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - soft, pastel light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#4C4F69", // text
		TokenTextSecondary: "#5C5F77", // subtext1
		TokenTextMuted:     "#9CA0B0", // overlay0

		TokenBorderDefault: "#9CA0B0", // overlay0
		TokenBorderFocus:   "#7287FD", // lavender

		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		TokenSelectionIndicator:  "#4C4F69", // text
		TokenSelectionBackground: "#CCD0DA", // surface0

		TokenGutter:     "#ACB0BE", // surface2
		TokenCaret:      "#5C5F77", // subtext1
		TokenFoldMarker: "#7C7F93", // overlay2
		TokenPath:       "#1E66F5", // blue
		TokenTimestamp:  "#9CA0B0", // overlay0

		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0

		TokenToastSuccess: "#40A02B", // green
		TokenToastError:   "#D20F39", // red
		TokenToastInfo:    "#1E66F5", // blue
		TokenToastWarn:    "#DF8E1D", // yellow

		TokenBackgroundBase:   "#EFF1F5", // base
		TokenBackgroundWeak:   "#7C7F93", // overlay2
		TokenBackgroundStrong: "#ACB0BE", // surface2
		TokenBackgroundText:   "#4C4F69", // text
		TokenPrimaryBase:      "#1E66F5", // blue
		TokenPrimaryWeak:      "#8839EF", // mauve
		TokenPrimaryStrong:    "#40A02B", // green
		TokenPrimaryText:      "#EFF1F5", // base
		TokenSecondaryBase:    "#179299", // teal
		TokenSecondaryWeak:    "#209FB5", // sapphire
		TokenSecondaryStrong:  "#7287FD", // lavender
		TokenSecondaryText:    "#1E66F5", // blue
		TokenSuccessBase:      "#40A02B", // green
		TokenSuccessWeak:      "#FE640B", // peach
		TokenSuccessStrong:    "#DF8E1D", // yellow
		TokenSuccessText:      "#EFF1F5", // base
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#F8F8F2", // foreground
		TokenTextSecondary: "#F8F8F2", // foreground
		TokenTextMuted:     "#6272A4", // comment

		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#BD93F9", // purple

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenSelectionIndicator:  "#FF79C6", // pink
		TokenSelectionBackground: "#44475A", // current line

		TokenGutter:     "#6272A4", // comment
		TokenCaret:      "#F8F8F2", // foreground
		TokenFoldMarker: "#6272A4", // comment
		TokenPath:       "#8BE9FD", // cyan
		TokenTimestamp:  "#6272A4", // comment

		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#BD93F9", // purple

		TokenToastSuccess: "#50FA7B", // green
		TokenToastError:   "#FF5555", // red
		TokenToastInfo:    "#8BE9FD", // cyan
		TokenToastWarn:    "#F1FA8C", // yellow

		TokenBackgroundBase:   "#282A36", // background
		TokenBackgroundWeak:   "#BFBFBF",
		TokenBackgroundStrong: "#6272A4", // comment
		TokenBackgroundText:   "#F8F8F2", // foreground
		TokenPrimaryBase:      "#BD93F9", // purple
		TokenPrimaryWeak:      "#BD93F9", // purple
		TokenPrimaryStrong:    "#F1FA8C", // yellow
		TokenPrimaryText:      "#282A36", // background
		TokenSecondaryBase:    "#FF79C6", // pink
		TokenSecondaryWeak:    "#FFB86C", // orange
		TokenSecondaryStrong:  "#FF79C6", // pink
		TokenSecondaryText:    "#8BE9FD", // cyan
		TokenSuccessBase:      "#50FA7B", // green
		TokenSuccessWeak:      "#FFB86C", // orange
		TokenSuccessStrong:    "#50FA7B", // green
		TokenSuccessText:      "#282A36", // background
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish color palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#ECEFF4", // nord6
		TokenTextSecondary: "#E5E9F0", // nord5
		TokenTextMuted:     "#4C566A", // nord3

		TokenBorderDefault: "#4C566A", // nord3
		TokenBorderFocus:   "#88C0D0", // nord8

		TokenStatusSuccess: "#A3BE8C", // nord14
		TokenStatusWarning: "#EBCB8B", // nord13
		TokenStatusError:   "#BF616A", // nord11

		TokenSelectionIndicator:  "#88C0D0", // nord8
		TokenSelectionBackground: "#3B4252", // nord1

		TokenGutter:     "#4C566A", // nord3
		TokenCaret:      "#D8DEE9", // nord4
		TokenFoldMarker: "#616E88",
		TokenPath:       "#81A1C1", // nord9
		TokenTimestamp:  "#4C566A", // nord3

		TokenOverlayTitle:  "#ECEFF4", // nord6
		TokenOverlayBorder: "#81A1C1", // nord9

		TokenToastSuccess: "#A3BE8C", // nord14
		TokenToastError:   "#BF616A", // nord11
		TokenToastInfo:    "#5E81AC", // nord10
		TokenToastWarn:    "#EBCB8B", // nord13

		TokenBackgroundBase:   "#2E3440", // nord0
		TokenBackgroundWeak:   "#D8DEE9", // nord4
		TokenBackgroundStrong: "#4C566A", // nord3
		TokenBackgroundText:   "#ECEFF4", // nord6
		TokenPrimaryBase:      "#88C0D0", // nord8
		TokenPrimaryWeak:      "#81A1C1", // nord9
		TokenPrimaryStrong:    "#A3BE8C", // nord14
		TokenPrimaryText:      "#2E3440", // nord0
		TokenSecondaryBase:    "#ECEFF4", // nord6
		TokenSecondaryWeak:    "#8FBCBB", // nord7
		TokenSecondaryStrong:  "#5E81AC", // nord10
		TokenSecondaryText:    "#8FBCBB", // nord7
		TokenSuccessBase:      "#A3BE8C", // nord14
		TokenSuccessWeak:      "#B48EAD", // nord15
		TokenSuccessStrong:    "#D08770", // nord12
		TokenSuccessText:      "#2E3440", // nord0
	},
}

// HighContrastPreset is a high-contrast theme for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#AAAAAA",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator:  "#FFFF00",
		TokenSelectionBackground: "#333333",

		TokenGutter:     "#AAAAAA",
		TokenCaret:      "#FFFFFF",
		TokenFoldMarker: "#FFFF00",
		TokenPath:       "#00FFFF",
		TokenTimestamp:  "#AAAAAA",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",

		TokenBackgroundBase:   "#000000",
		TokenBackgroundWeak:   "#FFFFFF",
		TokenBackgroundStrong: "#AAAAAA",
		TokenBackgroundText:   "#FFFFFF",
		TokenPrimaryBase:      "#00FFFF",
		TokenPrimaryWeak:      "#FF00FF",
		TokenPrimaryStrong:    "#00FF00",
		TokenPrimaryText:      "#000000",
		TokenSecondaryBase:    "#FFFFFF",
		TokenSecondaryWeak:    "#00FFFF",
		TokenSecondaryStrong:  "#FFFF00",
		TokenSecondaryText:    "#00FFFF",
		TokenSuccessBase:      "#00FF00",
		TokenSuccessWeak:      "#FFFF00",
		TokenSuccessStrong:    "#00FF00",
		TokenSuccessText:      "#000000",
	},
}

// PresetNames returns the preset names with "default" first and the rest
// in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		if name != DefaultPreset.Name {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultPreset.Name}, names...)
}

// NextPreset returns the preset after current in PresetNames order,
// wrapping around. Unknown names restart the cycle at the first preset.
func NextPreset(current string) string {
	if current == "" {
		current = DefaultPreset.Name
	}
	names := PresetNames()
	i := slices.Index(names, current)
	if i < 0 {
		return names[0]
	}
	return names[(i+1)%len(names)]
}
