package styler

import (
	"unicode"
	"unicode/utf8"
)

// scanner splits text into tokens. At each position it takes, in order, a
// run of whitespace, a run of word characters, or a single other character.
type scanner struct {
	input        string
	pos          int
	lineComments bool
}

// Tokenize splits text into whitespace runs, word runs and single other
// characters. Concatenating the result reproduces text exactly.
func Tokenize(text string) []string {
	return tokenize(text, false)
}

func tokenize(text string, lineComments bool) []string {
	if text == "" {
		return nil
	}

	s := &scanner{input: text, lineComments: lineComments}
	var tokens []string
	for s.pos < len(s.input) {
		start := s.pos
		s.next()
		tokens = append(tokens, s.input[start:s.pos])
	}
	return tokens
}

// next advances pos past one token.
func (s *scanner) next() {
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	switch {
	case isSpace(r):
		s.readWhile(isSpace)
	case isWord(r):
		s.readWhile(isWord)
	case s.lineComments && r == '#':
		s.readComment()
	default:
		// Invalid bytes decode as RuneError with size 1, so they become
		// single-byte tokens and the partition stays intact.
		s.pos += size
	}
}

func (s *scanner) readWhile(accept func(rune) bool) {
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if (r == utf8.RuneError && size == 1) || !accept(r) {
			return
		}
		s.pos += size
	}
}

// readComment reads '#' through the end of the line, newline excluded.
func (s *scanner) readComment() {
	for s.pos < len(s.input) && s.input[s.pos] != '\n' {
		s.pos++
	}
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// isWord matches identifier characters: letters, numbers and underscore.
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
