package lexer

import (
	"fmt"

	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

type TokenType int

const (
	TokenTag TokenType = iota
	TokenClose
	TokenText
	TokenData
	TokenAttribute

	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenTag:
		return "TAG"
	case TokenClose:
		return "CLOSE"
	case TokenText:
		return "TEXT"
	case TokenData:
		return "DATA"
	case TokenAttribute:
		return "ATTRIBUTE"
	case TokenEOF:
		return "EOF"
	}

	return "<unknown>"
}

type Token struct {
	Type       TokenType
	Start, End source.Location
	Contents   string
}

// Is compares type and contents only; spans never take part in token
// equality.
func (t *Token) Is(typ TokenType, contents string) bool {
	return t.Type == typ && t.Contents == contents
}

func (t *Token) String() string {
	if t.Contents == "" {
		return t.Type.String()
	}

	return fmt.Sprintf("%s:'%s'", t.Type, t.Contents)
}
