// Package source tracks positions inside named source buffers and carries
// the diagnostic errors every pipeline phase reports against them.
package source

import "fmt"

// Location is a position inside a named source buffer.
type Location struct {
	File string

	// Offset is a byte offset; Line and Column are 0-based.
	Offset, Line, Column int
}

// Advance moves the location past r.
func (l *Location) Advance(r rune, size int) {
	l.Offset += size
	l.Column++

	if r == '\n' {
		l.Line++
		l.Column = 0
	}
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line+1, l.Column+1)
}

// Span is a half-open region of a source buffer.
type Span struct {
	Start, End Location
}

// At builds a zero-width span.
func At(loc Location) Span {
	return Span{Start: loc, End: loc}
}

func Between(start, end Location) Span {
	return Span{Start: start, End: end}
}
