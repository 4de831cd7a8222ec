package sheet

import (
	"fmt"

	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

type TokenType int

const (
	TokenTag TokenType = iota
	TokenProperty
	TokenValue
	TokenHash
	TokenDot
	TokenBraceOpen
	TokenBraceClose

	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenTag:
		return "TAG"
	case TokenProperty:
		return "PROPERTY"
	case TokenValue:
		return "VALUE"
	case TokenHash:
		return "ID"
	case TokenDot:
		return "CLASS"
	case TokenBraceOpen:
		return "LBRACE"
	case TokenBraceClose:
		return "RBRACE"
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

func (t *Token) String() string {
	if t.Contents == "" {
		return t.Type.String()
	}

	return fmt.Sprintf("%s:'%s'", t.Type, t.Contents)
}
