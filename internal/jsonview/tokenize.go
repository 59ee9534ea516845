package jsonview

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Role classifies a token for coloring.
type Role int

const (
	// RoleLiteral is any bare run outside a string: numbers, true, false,
	// null or junk. Numeric detection happens when the token is colored.
	RoleLiteral Role = iota
	RoleKey
	RoleString
	RoleStructural
)

func (r Role) String() string {
	switch r {
	case RoleKey:
		return "key"
	case RoleString:
		return "string"
	case RoleStructural:
		return "structural"
	default:
		return "literal"
	}
}

// InString reports whether tokens of this role came from a quoted string.
func (r Role) InString() bool { return r == RoleKey || r == RoleString }

// Token is one classified piece of a line. String tokens hold the text
// between the quotes with \" already unescaped; every other escape is
// left as written.
type Token struct {
	Text string
	Role Role
}

func isStructural(r rune) bool {
	switch r {
	case '{', '}', '[', ']', ':', ',':
		return true
	}
	return false
}

// Tokenize scans one line left to right. Whitespace outside strings is
// dropped. A line that is not valid UTF-8 yields no tokens.
func Tokenize(line string) []Token {
	if !utf8.ValidString(line) {
		return nil
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var (
		tokens   []Token
		buf      strings.Builder
		inString bool
		escaped  bool
		isKey    = true
	)

	stringRole := func() Role {
		if isKey {
			return RoleKey
		}
		return RoleString
	}
	flushBare := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, Token{Text: buf.String(), Role: RoleLiteral})
			buf.Reset()
		}
	}

	for _, c := range line {
		if inString {
			switch {
			case c == '"' && escaped:
				s := buf.String()
				buf.Reset()
				buf.WriteString(s[:len(s)-1])
				buf.WriteRune('"')
				escaped = false
			case c == '"':
				tokens = append(tokens, Token{Text: buf.String(), Role: stringRole()})
				buf.Reset()
				inString = false
			case c == '\\':
				buf.WriteRune(c)
				escaped = !escaped
			default:
				buf.WriteRune(c)
				escaped = false
			}
			continue
		}

		switch {
		case c == '"':
			flushBare()
			inString = true
			escaped = false
		case isStructural(c):
			flushBare()
			tokens = append(tokens, Token{Text: string(c), Role: RoleStructural})
			switch c {
			case ',', '{', '[':
				isKey = true
			case ':':
				isKey = false
			}
		case unicode.IsSpace(c):
			flushBare()
		default:
			buf.WriteRune(c)
		}
	}

	if inString {
		tokens = append(tokens, Token{Text: buf.String(), Role: stringRole()})
	} else {
		flushBare()
	}
	return tokens
}
