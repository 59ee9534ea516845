// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator  ColorToken = "selection.indicator"
	TokenSelectionBackground ColorToken = "selection.background"

	// Payload list
	TokenGutter     ColorToken = "gutter"
	TokenCaret      ColorToken = "caret"
	TokenFoldMarker ColorToken = "fold.marker"
	TokenPath       ColorToken = "payload.path"
	TokenTimestamp  ColorToken = "payload.time"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// JSON palette. Each tone has three intensities plus the text color
	// drawn on top of it; the outline renderer picks from this grid.
	TokenBackgroundBase   ColorToken = "palette.background.base"
	TokenBackgroundWeak   ColorToken = "palette.background.weak"
	TokenBackgroundStrong ColorToken = "palette.background.strong"
	TokenBackgroundText   ColorToken = "palette.background.text"
	TokenPrimaryBase      ColorToken = "palette.primary.base"
	TokenPrimaryWeak      ColorToken = "palette.primary.weak"
	TokenPrimaryStrong    ColorToken = "palette.primary.strong"
	TokenPrimaryText      ColorToken = "palette.primary.text"
	TokenSecondaryBase    ColorToken = "palette.secondary.base"
	TokenSecondaryWeak    ColorToken = "palette.secondary.weak"
	TokenSecondaryStrong  ColorToken = "palette.secondary.strong"
	TokenSecondaryText    ColorToken = "palette.secondary.text"
	TokenSuccessBase      ColorToken = "palette.success.base"
	TokenSuccessWeak      ColorToken = "palette.success.weak"
	TokenSuccessStrong    ColorToken = "palette.success.strong"
	TokenSuccessText      ColorToken = "palette.success.text"
)

// AllTokens returns all valid color tokens.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenSelectionIndicator,
		TokenSelectionBackground,

		TokenGutter,
		TokenCaret,
		TokenFoldMarker,
		TokenPath,
		TokenTimestamp,

		TokenOverlayTitle,
		TokenOverlayBorder,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		TokenBackgroundBase,
		TokenBackgroundWeak,
		TokenBackgroundStrong,
		TokenBackgroundText,
		TokenPrimaryBase,
		TokenPrimaryWeak,
		TokenPrimaryStrong,
		TokenPrimaryText,
		TokenSecondaryBase,
		TokenSecondaryWeak,
		TokenSecondaryStrong,
		TokenSecondaryText,
		TokenSuccessBase,
		TokenSuccessWeak,
		TokenSuccessStrong,
		TokenSuccessText,
	}
}
