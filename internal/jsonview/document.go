// Package jsonview turns pretty-printed JSON text into a foldable,
// colorized outline. It never parses the JSON: lines are scanned one at a
// time and block structure is inferred from opening and closing brackets
// at line edges. Every function here is pure and total over all inputs.
package jsonview

import "strings"

// Document is the ordered list of source lines for one render.
type Document []string

// NewDocument splits text into lines. A trailing newline does not produce
// an extra empty line and a trailing "\r" is dropped from each line.
func NewDocument(text string) Document {
	if text == "" {
		return Document{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return Document(lines)
}

// Len returns the number of source lines.
func (d Document) Len() int { return len(d) }

func opensBlock(trimmed string) bool {
	return strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, "[")
}

func closesBlock(trimmed string) bool {
	return strings.HasPrefix(trimmed, "}") || strings.HasPrefix(trimmed, "]")
}

// closerFor returns the delimiter that ends the block opened by trimmed.
func closerFor(trimmed string) string {
	if strings.HasSuffix(trimmed, "{") {
		return "}"
	}
	return "]"
}

func dedent(level int) int {
	if level > 0 {
		return level - 1
	}
	return 0
}
