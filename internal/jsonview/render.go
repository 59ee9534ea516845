package jsonview

import (
	"fmt"
	"strings"
)

// ColoredToken is a token paired with its resolved color.
type ColoredToken struct {
	Token
	Color Color
}

// FoldMarker summarizes a folded block on its opening line.
type FoldMarker struct {
	Hidden  int
	Closing string
}

// Summary is the text shown after a folded opener, e.g. " 3 lines }".
func (f FoldMarker) Summary() string {
	return f.Count() + " " + f.Closing
}

// Count is the hidden line count part of the summary, e.g. " 3 lines".
func (f FoldMarker) Count() string {
	return fmt.Sprintf(" %d lines", f.Hidden)
}

// RenderLine is one visible source line.
type RenderLine struct {
	// Index is the zero-based source line this was rendered from.
	Index int
	// Indent is the nesting depth before the line's own closing bracket.
	Indent      int
	Tokens      []ColoredToken
	Collapsible bool
	Collapsed   bool
	Fold        *FoldMarker
}

// Render produces the visible lines of doc with the blocks in collapsed
// folded away. Interior lines of a folded block are omitted; the block's
// closing line stays visible. Render never mutates its inputs and returns
// fresh slices on every call.
func Render(doc Document, collapsed *CollapsedSet, theme Theme) []RenderLine {
	return render(doc, collapsed, func(trimmed string) []ColoredToken {
		return colorize(Tokenize(trimmed), theme)
	})
}

func colorize(tokens []Token, theme Theme) []ColoredToken {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]ColoredToken, len(tokens))
	for i, tok := range tokens {
		out[i] = ColoredToken{Token: tok, Color: ColorOf(tok, theme)}
	}
	return out
}

func render(doc Document, collapsed *CollapsedSet, lineTokens func(string) []ColoredToken) []RenderLine {
	counts := CollapseCounts(doc)
	lines := make([]RenderLine, 0, len(doc))

	indent := 0
	skipping := false
	skipDepth := 0

	for idx, raw := range doc {
		trimmed := strings.TrimSpace(raw)
		closes := closesBlock(trimmed)
		opens := opensBlock(trimmed)

		if skipping {
			after := indent
			if closes {
				after = dedent(indent)
			}
			switch {
			case closes && after <= skipDepth:
				skipping = false
			case indent > skipDepth:
				indent = after
				if opens {
					indent++
				}
				continue
			default:
				skipping = false
			}
		}

		current := indent
		if closes {
			indent = dedent(indent)
		}

		collapsible := opens && idx != 0
		line := RenderLine{
			Index:       idx,
			Indent:      current,
			Tokens:      lineTokens(trimmed),
			Collapsible: collapsible,
			Collapsed:   collapsible && collapsed.Contains(idx),
		}
		if line.Collapsed {
			line.Fold = &FoldMarker{Hidden: counts[idx], Closing: closerFor(trimmed)}
			skipping = true
			skipDepth = current
		}
		if opens {
			indent++
		}
		lines = append(lines, line)
	}
	return lines
}

// Plain writes lines as uncolored text, indenting each level by
// indentSize spaces. String tokens are re-quoted.
func Plain(lines []RenderLine, indentSize int) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(" ", l.Indent*max(indentSize, 0)))
		for _, tok := range l.Tokens {
			b.WriteString(PlainToken(tok.Token))
		}
		if l.Fold != nil {
			b.WriteString(l.Fold.Summary())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PlainToken renders a single token the way it would appear in JSON text,
// with a space after colons.
func PlainToken(tok Token) string {
	switch {
	case tok.Role.InString():
		return `"` + strings.ReplaceAll(tok.Text, `"`, `\"`) + `"`
	case tok.Role == RoleStructural && tok.Text == ":":
		return ": "
	default:
		return tok.Text
	}
}
