// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

var current Palette

// CurrentPalette returns the palette installed by the last successful
// ApplyTheme call.
func CurrentPalette() Palette {
	return current
}

// ResolvePalette builds the palette described by cfg without installing it.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
func ResolvePalette(cfg ThemeConfig) (Palette, error) {
	colors := maps.Clone(DefaultPreset.Colors)

	name := DefaultPreset.Name
	if cfg.Preset != "" && cfg.Preset != DefaultPreset.Name {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return Palette{}, fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
		name = preset.Name
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return Palette{}, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return Palette{}, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	return newPalette(name, colors, cfg.Colors), nil
}

// ApplyTheme resolves cfg, assigns the semantic color variables and
// rebuilds every derived style. On error nothing changes.
func ApplyTheme(cfg ThemeConfig) error {
	palette, err := ResolvePalette(cfg)
	if err != nil {
		return err
	}
	applyColors(palette.colors)
	rebuildStyles()
	current = palette
	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same hex for light and dark; presets choose a background instead.
	makeColor := func(token ColorToken) lipgloss.AdaptiveColor {
		hex := colors[token]
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	TextPrimaryColor = makeColor(TokenTextPrimary)
	TextSecondaryColor = makeColor(TokenTextSecondary)
	TextMutedColor = makeColor(TokenTextMuted)

	BorderDefaultColor = makeColor(TokenBorderDefault)
	BorderFocusColor = makeColor(TokenBorderFocus)

	StatusSuccessColor = makeColor(TokenStatusSuccess)
	StatusWarningColor = makeColor(TokenStatusWarning)
	StatusErrorColor = makeColor(TokenStatusError)

	SelectionIndicatorColor = makeColor(TokenSelectionIndicator)
	SelectionBackgroundColor = makeColor(TokenSelectionBackground)

	GutterColor = makeColor(TokenGutter)
	CaretColor = makeColor(TokenCaret)
	FoldMarkerColor = makeColor(TokenFoldMarker)
	PathColor = makeColor(TokenPath)
	TimestampColor = makeColor(TokenTimestamp)

	OverlayTitleColor = makeColor(TokenOverlayTitle)
	OverlayBorderColor = makeColor(TokenOverlayBorder)

	ToastBorderSuccessColor = makeColor(TokenToastSuccess)
	ToastBorderErrorColor = makeColor(TokenToastError)
	ToastBorderInfoColor = makeColor(TokenToastInfo)
	ToastBorderWarnColor = makeColor(TokenToastWarn)
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)
	SelectedRowStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor)

	GutterStyle = lipgloss.NewStyle().Foreground(GutterColor)
	CaretStyle = lipgloss.NewStyle().Foreground(CaretColor)
	FoldMarkerStyle = lipgloss.NewStyle().Foreground(FoldMarkerColor).Italic(true)
	PreviewStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	PathStyle = lipgloss.NewStyle().Foreground(PathColor)
	TimestampStyle = lipgloss.NewStyle().Foreground(TimestampColor)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Padding(0, 1)

	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(TextMutedColor).
		Italic(true).
		Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
