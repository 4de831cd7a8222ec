package sheet

import (
	"errors"

	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

var ErrLastTokenEOF = errors.New("last token must be EOF")

type parser struct {
	tokens []Token
	index  int
}

// Parse consumes the token stream into an ordered rule set. Anything other
// than a property/value pair inside a block is a hard error; there is no
// skipping of unexpected tokens.
func Parse(tokens []Token) (*Stylesheet, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		return nil, ErrLastTokenEOF
	}

	p := parser{tokens: tokens}
	rules := NewStylesheet()

	for p.peek().Type != TokenEOF {
		selector, err := p.parseSelector()
		if err != nil {
			return nil, err
		}

		decls, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		rules.Set(selector, decls)
	}

	return rules, nil
}

func (p *parser) take() *Token {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1] // Last token is EOF
	}

	tk := &p.tokens[p.index]
	p.index++

	return tk
}

func (p *parser) peek() *Token {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1]
	}

	return &p.tokens[p.index]
}

// parseSelector accepts a bare element name, or an id/class marker whose
// name arrives as the following TAG token.
func (p *parser) parseSelector() (string, error) {
	tk := p.take()

	switch tk.Type {
	case TokenTag:
		return tk.Contents, nil

	case TokenHash, TokenDot:
		prefix := "#"
		if tk.Type == TokenDot {
			prefix = "."
		}

		name := p.take()
		if name.Type != TokenTag {
			return "", source.Errorf(source.InvalidSyntax, source.Between(name.Start, name.End), "Expected a selector name after '%s'.", prefix)
		}

		return prefix + name.Contents, nil
	}

	return "", source.Errorf(source.InvalidSyntax, source.Between(tk.Start, tk.End), "Expected a selector (a tag, ID, or class) before '{'.")
}

func (p *parser) parseBlock() (Declarations, error) {
	if tk := p.take(); tk.Type != TokenBraceOpen {
		return nil, source.Errorf(source.InvalidSyntax, source.Between(tk.Start, tk.End), "Expected '{' after selector.")
	}

	decls := Declarations{}

	for {
		tk := p.peek()
		if tk.Type == TokenBraceClose || tk.Type == TokenEOF {
			break
		}

		if tk.Type != TokenProperty {
			return nil, source.Errorf(source.InvalidSyntax, source.Between(tk.Start, tk.End), "Expected a property.")
		}
		prop := p.take()

		value := p.take()
		if value.Type != TokenValue {
			return nil, source.Errorf(source.InvalidSyntax, source.Between(value.Start, value.End), "Expected a value after property '%s'.", prop.Contents)
		}

		decls[prop.Contents] = value.Contents
	}

	if tk := p.take(); tk.Type != TokenBraceClose {
		return nil, source.Errorf(source.InvalidSyntax, source.Between(tk.Start, tk.End), "Expected '}' after block.")
	}

	return decls, nil
}
