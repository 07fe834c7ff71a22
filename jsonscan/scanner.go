// Package jsonscan implements the single-pass character reader the
// Parser scans JSON text through: one rune of lookahead, with line and
// column tracking for error positions.
package jsonscan

import (
	"io"
	"strings"
)

// EOF is the sentinel rune Peek returns once the source is exhausted.
// It is a legitimate peek result, not a failure.
const EOF = rune(-1)

// Scanner exposes the next rune of a source and tracks its position.
// It never buffers beyond one rune of lookahead.
type Scanner struct {
	src     io.RuneReader
	current rune
	atEOF   bool
	line    int
	col     int
}

// New wraps src, priming the first rune so Peek is immediately valid.
func New(src io.RuneReader) *Scanner {
	s := &Scanner{src: src, line: 1, col: 0}
	s.Advance()
	return s
}

// NewFromString wraps a string source.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Peek returns the current rune, or EOF if the source is exhausted.
func (s *Scanner) Peek() rune {
	if s.atEOF {
		return EOF
	}
	return s.current
}

// Advance reads the next rune from the source. On a newline it
// increments Line and resets Col to 1; otherwise it increments Col.
// Col keeps advancing on every call even once the source is
// exhausted, since EOF is not a newline: the first EOF position is one
// column past the last rune, and each further Advance past the end of
// input moves Col one more column.
func (s *Scanner) Advance() {
	r, _, err := s.src.ReadRune()
	if err != nil {
		s.atEOF = true
		s.current = EOF
		s.col++
		return
	}
	s.current = r
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

// Line returns the 1-based line of the current rune.
func (s *Scanner) Line() int { return s.line }

// Col returns the 1-based column of the current rune.
func (s *Scanner) Col() int { return s.col }

// AtEOF reports whether the source is exhausted.
func (s *Scanner) AtEOF() bool { return s.atEOF }
