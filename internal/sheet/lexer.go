// Package sheet implements the GemSheet stylesheet language: a lexer, a
// recursive-descent parser and the ordered rule set the cascade resolver
// consumes.
package sheet

import (
	"unicode/utf8"

	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

type Lexer struct {
	file []byte

	loc source.Location
	str []rune
}

func NewLexer(file []byte, fileName string) *Lexer {
	return &Lexer{
		file: file,
		loc:  source.Location{File: fileName},
	}
}

// Lex tokenizes the stylesheet, ending with an EOF sentinel. Whether an
// identifier is a selector name or a property is decided here by looking
// ahead for '{': `rect {` lexes as TAG, `color:` as PROPERTY followed by
// its raw VALUE run.
func (l *Lexer) Lex() ([]Token, error) {
	var tokens []Token

	for {
		r, ok := l.peek()
		if !ok {
			break
		}

		start := l.loc

		switch {
		case isWhitespace(r):
			l.take()
			l.discard()

		case r == '{':
			l.take()
			tokens = append(tokens, Token{Type: TokenBraceOpen, Start: start, End: l.loc})
			l.discard()

		case r == '}':
			l.take()
			tokens = append(tokens, Token{Type: TokenBraceClose, Start: start, End: l.loc})
			l.discard()

		case r == '#':
			l.take()
			tokens = append(tokens, Token{Type: TokenHash, Start: start, End: l.loc})
			l.discard()

		case r == '.':
			l.take()
			tokens = append(tokens, Token{Type: TokenDot, Start: start, End: l.loc})
			l.discard()

		case isLetter(r):
			name, nameEnd := l.takeIdentifier()
			l.takeWhitespace()

			if r, ok := l.peek(); ok && r == '{' {
				tokens = append(tokens, Token{Type: TokenTag, Start: start, End: nameEnd, Contents: name})
				l.discard()
				continue
			}

			if r, ok := l.peek(); !ok || r != ':' {
				return nil, source.Errorf(source.ExpectedCharacter, source.At(l.loc), "Expected ':' after property name.")
			}
			tokens = append(tokens, Token{Type: TokenProperty, Start: start, End: nameEnd, Contents: name})
			l.take() // ':'
			l.takeInlineWhitespace()
			l.discard()

			valueStart := l.loc
			var r rune
			var ok bool
			for {
				r, ok = l.peek()
				if !ok || r == ';' || r == '\n' {
					break
				}
				l.take()
			}

			if !ok || r != ';' {
				return nil, source.Errorf(source.ExpectedCharacter, source.At(l.loc), "Expected ';' after value.")
			}

			tokens = append(tokens, Token{Type: TokenValue, Start: valueStart, End: l.loc, Contents: string(l.str)})
			l.take() // ';'
			l.discard()

		default:
			return nil, source.Errorf(source.UnexpectedCharacter, source.At(l.loc), "'%c'", r)
		}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Start: l.loc, End: l.loc})
	return tokens, nil
}

func (l *Lexer) take() (r rune, ok bool) {
	if l.loc.Offset >= len(l.file) {
		return 0, false
	}

	r, size := utf8.DecodeRune(l.file[l.loc.Offset:])
	l.str = append(l.str, r)
	l.loc.Advance(r, size)

	return r, true
}

func (l *Lexer) peek() (r rune, ok bool) {
	if l.loc.Offset >= len(l.file) {
		return 0, false
	}

	r, _ = utf8.DecodeRune(l.file[l.loc.Offset:])
	return r, true
}

func (l *Lexer) discard() {
	l.str = l.str[:0]
}

// takeIdentifier consumes a letter-led identifier run and reports its
// contents along with the location just past it.
func (l *Lexer) takeIdentifier() (string, source.Location) {
	l.discard()

	for {
		r, ok := l.peek()
		if !ok || !isIdentRune(r) {
			break
		}
		l.take()
	}

	name := string(l.str)
	end := l.loc
	l.discard()

	return name, end
}

func (l *Lexer) takeWhitespace() {
	for {
		r, ok := l.peek()
		if !ok || !isWhitespace(r) {
			return
		}
		l.take()
	}
}

func (l *Lexer) takeInlineWhitespace() {
	for {
		r, ok := l.peek()
		if !ok || (r != ' ' && r != '\t') {
			return
		}
		l.take()
	}
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentRune(r rune) bool {
	return isLetter(r) || (r >= '0' && r <= '9') || r == '-' || r == '_'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
