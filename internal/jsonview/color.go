package jsonview

import (
	"errors"
	"strconv"
	"strings"
)

// Color is a display color, normally a "#RRGGBB" hex string.
type Color string

// Tone selects a palette family.
type Tone int

const (
	ToneBackground Tone = iota
	TonePrimary
	ToneSecondary
	ToneSuccess
)

// Intensity selects a shade within a tone.
type Intensity int

const (
	IntensityBase Intensity = iota
	IntensityWeak
	IntensityStrong
)

// Theme is the palette the renderer colors tokens from. Name identifies
// the palette for memoization and must change whenever colors do.
type Theme interface {
	Name() string
	Color(tone Tone, intensity Intensity) Color
	// Text is the foreground meant for text drawn on the tone's base color.
	Text(tone Tone) Color
}

// ColorFor resolves the color of one token. The precedence is fixed:
// keys, then string values, then brackets, colon, comma, numbers and
// finally every other bare word.
func ColorFor(text string, isKey, inString bool, theme Theme) Color {
	if inString {
		if isKey {
			return theme.Text(ToneSecondary)
		}
		return theme.Color(TonePrimary, IntensityStrong)
	}
	switch text {
	case "{", "}", "[", "]":
		return theme.Color(ToneBackground, IntensityWeak)
	case ":":
		return theme.Color(ToneSecondary, IntensityBase)
	case ",":
		return theme.Color(ToneBackground, IntensityStrong)
	}
	if isNumeric(text) {
		return theme.Color(ToneSuccess, IntensityWeak)
	}
	return theme.Color(TonePrimary, IntensityWeak)
}

// ColorOf is ColorFor driven by a token's role.
func ColorOf(tok Token, theme Theme) Color {
	return ColorFor(tok.Text, tok.Role == RoleKey, tok.Role.InString(), theme)
}

// isNumeric accepts decimal floats, including inf and nan spellings and
// values too large for float64. Hex and underscore forms are rejected.
func isNumeric(text string) bool {
	s := strings.TrimSpace(text)
	if s == "" || strings.ContainsAny(s, "_xXpP") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
