// Package lexer tokenizes GemXML markup. Markdown-style shorthand (`#`
// headings and `*` emphasis) is expanded here, at the token level, by
// running a nested lexer over the shorthand's content and splicing its
// tokens between synthesized tag/close pairs.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/creeperdoesredstone/gemmarkups/internal/source"
	"golang.org/x/exp/slices"
)

// ValidTags is the closed set of element names the markup accepts. The
// check is lexical: an unknown name fails before any token is emitted.
var ValidTags = []string{
	"window",
	"text",
	"rect",
	"circle",
	"line",
	"include",
	"div",
	"h1",
	"h2",
	"h3",
	"b",
	"i",
	"bi",
	"u",
}

// emphasisTags maps an asterisk run length (1..3) to the synthesized tag.
var emphasisTags = []string{"i", "b", "bi"}

const shorthandBuffer = "<md-content>"

type stateFunc func() stateFunc

type Lexer struct {
	file []byte

	loc      source.Location
	str      []rune
	strStart source.Location

	tokens []Token
	err    *source.Error
}

func New(file []byte, fileName string) *Lexer {
	return &Lexer{
		file: file,
		loc:  source.Location{File: fileName},
	}
}

// Lex tokenizes the whole buffer, ending with an EOF sentinel. The first
// failure aborts and is returned as-is.
func (l *Lexer) Lex() ([]Token, error) {
	state := l.lexContent
	for state != nil {
		state = state()

		if l.err != nil {
			return nil, l.err
		}
	}

	l.append(Token{Type: TokenEOF, Start: l.loc, End: l.loc})
	return l.tokens, nil
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

func (l *Lexer) discard() {
	l.strStart = l.loc
	l.str = l.str[:0]
}

func (l *Lexer) isEmpty() bool {
	return len(l.str) == 0
}

func (l *Lexer) emit(typ TokenType) {
	l.append(Token{
		Type:     typ,
		Start:    l.strStart,
		End:      l.loc,
		Contents: string(l.str),
	})

	l.discard()
}

func (l *Lexer) append(tok Token) {
	l.tokens = append(l.tokens, tok)
}

func (l *Lexer) lexError(kind source.Kind, span source.Span, format string, args ...any) stateFunc {
	l.err = source.Errorf(kind, span, format, args...)
	return nil
}

func (l *Lexer) lexContent() stateFunc {
	r, ok := l.peek()
	if !ok {
		return nil
	}

	switch {
	case isWhitespace(r):
		l.take()
		l.discard()
		return l.lexContent

	case r == '<':
		return l.lexTag

	case r == '"':
		return l.lexQuoted

	case r == '#':
		return l.lexHeading

	case r == '*':
		return l.lexEmphasis
	}

	return l.lexText
}

func (l *Lexer) lexTag() stateFunc {
	start := l.loc

	l.take() // '<'
	l.takeWhitespace()

	isClosing := false
	if r, ok := l.peek(); ok && r == '/' {
		isClosing = true
		l.take()
	}
	l.discard()

	if r, ok := l.peek(); !ok || !isLetter(r) {
		open := "<"
		if isClosing {
			open = "</"
		}
		return l.lexError(source.ExpectedCharacter, source.At(l.loc), "Expected a letter after '%s'", open)
	}

	l.take()
	for {
		r, ok := l.peek()
		if !ok || !isLetterOrDigit(r) {
			break
		}
		l.take()
	}

	name := string(l.str)
	if !slices.Contains(ValidTags, name) {
		return l.lexError(source.UnknownTag, source.Between(start, l.loc), "%s", name)
	}

	type attribute struct {
		name, value string
	}
	var attributes []attribute

	if r, ok := l.peek(); !ok || r != '>' {
		if !ok || !isWhitespace(r) {
			return l.lexError(source.ExpectedCharacter, source.At(l.loc), "Expected '>' or a whitespace after tag name.")
		}

		l.takeWhitespace()

		for {
			r, ok := l.peek()
			if !ok || r == '>' {
				break
			}

			l.discard()
			for {
				r, ok := l.peek()
				if !ok || !isLetter(r) {
					break
				}
				l.take()
			}
			attrName := string(l.str)

			l.takeWhitespace()
			if r, ok = l.peek(); !ok || r != '=' {
				return l.lexError(source.ExpectedCharacter, source.At(l.loc), "Expected '=' after attribute, found %s instead.", describeRune(r, ok))
			}
			l.take()
			l.takeWhitespace()

			if r, ok = l.peek(); !ok || r != '"' {
				return l.lexError(source.ExpectedCharacter, source.At(l.loc), `Expected '"' after '='.`)
			}
			l.take()
			l.discard()

			for {
				r, ok = l.peek()
				if !ok || r == '"' || r == '\n' {
					break
				}
				l.take()
			}

			if !ok || r != '"' {
				return l.lexError(source.ExpectedCharacter, source.At(l.loc), `Expected terminating '"' character.`)
			}

			attributes = append(attributes, attribute{name: attrName, value: string(l.str)})
			l.take() // closing quote
			l.takeWhitespace()
		}
	}

	typ := TokenTag
	if isClosing {
		typ = TokenClose
	}

	span := source.Between(start, l.loc)
	l.append(Token{Type: typ, Start: span.Start, End: span.End, Contents: name})

	for _, attr := range attributes {
		l.append(Token{Type: TokenAttribute, Start: span.Start, End: span.End, Contents: attr.name})
		l.append(Token{Type: TokenData, Start: span.Start, End: span.End, Contents: attr.value})
	}

	if r, ok := l.peek(); ok && r == '>' {
		l.take()
	}
	l.discard()

	return l.lexContent
}

// lexQuoted lexes a double-quoted run outside a tag, used for leaf string
// content such as an include path.
func (l *Lexer) lexQuoted() stateFunc {
	start := l.loc

	l.take() // opening quote
	l.discard()

	var r rune
	var ok bool
	for {
		r, ok = l.peek()
		if !ok || r == '"' || r == '\n' {
			break
		}
		l.take()
	}

	if !ok || r != '"' {
		return l.lexError(source.ExpectedCharacter, source.At(l.loc), `Expected terminating '"' character.`)
	}

	l.append(Token{Type: TokenData, Start: start, End: l.loc, Contents: string(l.str)})
	l.take() // closing quote
	l.discard()

	return l.lexContent
}

func (l *Lexer) lexText() stateFunc {
	start := l.loc
	l.discard()

	for {
		r, ok := l.peek()
		if !ok || strings.ContainsRune("\n<>\"'", r) {
			break
		}
		l.take()
	}

	if l.isEmpty() {
		r, _ := l.peek()
		return l.lexError(source.UnexpectedCharacter, source.At(l.loc), "Unexpected Character: '%c'", r)
	}

	l.append(Token{Type: TokenText, Start: start, End: l.loc, Contents: string(l.str)})
	l.discard()

	return l.lexContent
}

func (l *Lexer) lexHeading() stateFunc {
	start := l.loc

	count := 0
	for {
		r, ok := l.peek()
		if !ok || r != '#' {
			break
		}
		l.take()
		count++
	}
	l.takeInlineWhitespace()

	if count > 3 {
		return l.lexError(source.InvalidSyntax, source.Between(start, l.loc), "Expected a max of 3 '#' characters.")
	}

	contentStart := l.loc
	l.discard()

	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			break
		}
		l.take()
	}

	content := string(l.str)
	if content == "" {
		return l.lexError(source.InvalidSyntax, source.Between(contentStart, l.loc), "Expected content after '%s'.", strings.Repeat("#", count))
	}

	tag := "h" + strconv.Itoa(count)
	if !l.splice(tag, content, start, contentStart) {
		return nil
	}

	l.discard()
	return l.lexContent
}

func (l *Lexer) lexEmphasis() stateFunc {
	start := l.loc

	count := 0
	for {
		r, ok := l.peek()
		if !ok || r != '*' {
			break
		}
		l.take()
		count++
	}
	l.takeInlineWhitespace()

	if count > 3 {
		return l.lexError(source.InvalidSyntax, source.Between(start, l.loc), "Expected a max of 3 '*' characters.")
	}

	contentStart := l.loc
	l.discard()

	for {
		r, ok := l.peek()
		if !ok || r == '*' || r == '\n' {
			break
		}
		l.take()
	}

	content := string(l.str)
	if content == "" {
		return l.lexError(source.InvalidSyntax, source.Between(contentStart, l.loc), "Expected content after '%s'.", strings.Repeat("*", count))
	}

	if r, ok := l.peek(); !ok || r == '\n' {
		return l.lexError(source.InvalidSyntax, source.At(l.loc), "Reached EOL when parsing Markdown tag.")
	}

	endCount := 0
	for {
		r, ok := l.peek()
		if !ok || r != '*' {
			break
		}
		l.take()
		endCount++
	}

	if endCount != count {
		return l.lexError(source.InvalidSyntax, source.At(l.loc), "Expected %d '*' characters, got %d '*' characters instead.", count, endCount)
	}

	if !l.splice(emphasisTags[count-1], content, start, contentStart) {
		return nil
	}

	l.discard()
	return l.lexContent
}

// splice runs a fresh lexer over shorthand content and splices its tokens
// (minus the EOF sentinel) into the outer stream between a synthesized
// tag/close pair. The nested lex operates over a virtual buffer, so every
// spliced token's span is pinned to the shorthand's span in the outer
// source.
func (l *Lexer) splice(tag, content string, start, contentStart source.Location) bool {
	sub := New([]byte(content), shorthandBuffer)

	subTokens, err := sub.Lex()
	if err != nil {
		l.err = err.(*source.Error)
		return false
	}
	subTokens = subTokens[:len(subTokens)-1]

	for i := range subTokens {
		subTokens[i].Start = contentStart
		subTokens[i].End = l.loc
	}

	l.append(Token{Type: TokenTag, Start: start, End: contentStart, Contents: tag})
	l.tokens = append(l.tokens, subTokens...)
	l.append(Token{Type: TokenClose, Start: l.loc, End: l.loc, Contents: tag})

	return true
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isLetterOrDigit(r rune) bool {
	return isLetter(r) || (r >= '0' && r <= '9')
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func describeRune(r rune, ok bool) string {
	if !ok {
		return "end of file"
	}

	return strconv.QuoteRune(r)
}
