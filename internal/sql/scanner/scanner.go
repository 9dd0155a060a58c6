// Package scanner turns a line of DSL text into tokens.
//
// Words start with an alphabetic rune and continue with alphabetic or
// numeric runes. A word that exactly matches a keyword becomes that
// keyword, otherwise it is an identifier. '{', '}' and ',' are
// punctuation. Anything else, whitespace included, is skipped without an
// error.
package scanner

import (
	"unicode"

	"github.com/tuannm99/mlinql/internal/sql/cursor"
)

// Scanner is reusable: every Scan starts from a fresh cursor.
type Scanner struct {
	cur *cursor.Cursor[rune]
	buf []rune
}

func New() *Scanner {
	return &Scanner{cur: cursor.New[rune](nil)}
}

// Scan is a shortcut for New().Scan(input).
func Scan(input string) []Token {
	return New().Scan(input)
}

func (s *Scanner) Scan(input string) []Token {
	s.cur.Reset([]rune(input))

	var tokens []Token
	for {
		c, ok := s.cur.Peek(0)
		if !ok {
			break
		}

		switch {
		case isAlphabetic(c):
			tokens = append(tokens, s.word())
		case c == '{':
			s.cur.Next()
			tokens = append(tokens, Token{Kind: LBrace})
		case c == '}':
			s.cur.Next()
			tokens = append(tokens, Token{Kind: RBrace})
		case c == ',':
			s.cur.Next()
			tokens = append(tokens, Token{Kind: Comma})
		default:
			s.cur.Next()
		}
	}
	return tokens
}

func (s *Scanner) word() Token {
	s.buf = s.buf[:0]
	for {
		c, ok := s.cur.Peek(0)
		if !ok || !isAlphanumeric(c) {
			break
		}
		s.cur.Next()
		s.buf = append(s.buf, c)
	}

	text := string(s.buf)
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind}
	}
	return Ident(text)
}

// isAlphabetic reports the Unicode Alphabetic property: letters, letter
// numbers such as Roman numerals, and Other_Alphabetic marks.
func isAlphabetic(c rune) bool {
	return unicode.IsLetter(c) || unicode.In(c, unicode.Nl, unicode.Other_Alphabetic)
}

// isAlphanumeric widens isAlphabetic with every numeric category, so
// fractions and superscripts continue a word.
func isAlphanumeric(c rune) bool {
	return isAlphabetic(c) || unicode.IsNumber(c)
}
