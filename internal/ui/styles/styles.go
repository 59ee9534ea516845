// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Semantic colors. They are assigned from the active preset by ApplyTheme;
// init applies the default preset so the zero configuration renders.
var (
	// Text hierarchy
	TextPrimaryColor   lipgloss.AdaptiveColor
	TextSecondaryColor lipgloss.AdaptiveColor
	TextMutedColor     lipgloss.AdaptiveColor

	// Borders
	BorderDefaultColor lipgloss.AdaptiveColor
	BorderFocusColor   lipgloss.AdaptiveColor

	// Status
	StatusSuccessColor lipgloss.AdaptiveColor
	StatusWarningColor lipgloss.AdaptiveColor
	StatusErrorColor   lipgloss.AdaptiveColor

	// Selection (">" prefix and the highlighted payload header)
	SelectionIndicatorColor  lipgloss.AdaptiveColor
	SelectionBackgroundColor lipgloss.AdaptiveColor

	// Payload list chrome
	GutterColor     lipgloss.AdaptiveColor
	CaretColor      lipgloss.AdaptiveColor
	FoldMarkerColor lipgloss.AdaptiveColor
	PathColor       lipgloss.AdaptiveColor
	TimestampColor  lipgloss.AdaptiveColor

	// Overlays
	OverlayTitleColor  lipgloss.AdaptiveColor
	OverlayBorderColor lipgloss.AdaptiveColor

	// Toast notification borders
	ToastBorderSuccessColor lipgloss.AdaptiveColor
	ToastBorderErrorColor   lipgloss.AdaptiveColor
	ToastBorderInfoColor    lipgloss.AdaptiveColor
	ToastBorderWarnColor    lipgloss.AdaptiveColor
)

// Styles derived from the colors above. rebuildStyles recreates them
// whenever the theme changes.
var (
	SelectionIndicatorStyle lipgloss.Style
	SelectedRowStyle        lipgloss.Style

	GutterStyle     lipgloss.Style
	CaretStyle      lipgloss.Style
	FoldMarkerStyle lipgloss.Style
	PreviewStyle    lipgloss.Style
	PathStyle       lipgloss.Style
	TimestampStyle  lipgloss.Style

	TitleStyle      lipgloss.Style
	StatusBarStyle  lipgloss.Style
	EmptyStateStyle lipgloss.Style
	ErrorStyle      lipgloss.Style
)

func init() {
	// The default preset contains only valid tokens and colors.
	_ = ApplyTheme(ThemeConfig{})
}
