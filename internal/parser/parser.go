// Package parser builds a GemXML syntax tree from lexer tokens by
// recursive descent. The first error aborts the parse; there is no
// recovery.
package parser

import (
	"errors"

	"github.com/creeperdoesredstone/gemmarkups/internal/lexer"
	"github.com/creeperdoesredstone/gemmarkups/internal/parser/ast"
	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

var ErrLastTokenEOF = errors.New("last token must be EOF")

type parser struct {
	tokens []lexer.Token
	index  int
}

// Parse consumes the whole token stream into a single top-level NodeList.
// Leftover tokens after the top-level run (such as a stray close tag with no
// matching open) fail with InvalidSyntax.
func Parse(tokens []lexer.Token) (*ast.NodeList, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		return nil, ErrLastTokenEOF
	}

	p := parser{tokens: tokens}

	body, err := p.parseTags()
	if err != nil {
		return nil, err
	}

	if tk := p.peek(); tk.Type != lexer.TokenEOF {
		return nil, source.Errorf(source.InvalidSyntax, source.Between(tk.Start, tk.End), "Cannot fully parse the file.")
	}

	return body, nil
}

func (p *parser) take() *lexer.Token {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1] // Last token is EOF
	}

	tk := &p.tokens[p.index]
	p.index++

	return tk
}

func (p *parser) peek() *lexer.Token {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1]
	}

	return &p.tokens[p.index]
}

// parseTags consumes a maximal run of sibling tag/text nodes, stopping at
// the first close tag or EOF. Validating which close tag it stopped on is
// the caller's job; that is what makes mismatched-tag diagnostics precise.
func (p *parser) parseTags() (*ast.NodeList, error) {
	first := p.peek()

	list := ast.NodeList{
		Pos: ast.Pos(source.Between(first.Start, first.End)),
	}

	for {
		tk := p.peek()
		if tk.Type == lexer.TokenClose || tk.Type == lexer.TokenEOF {
			break
		}

		node, err := p.parseTag()
		if err != nil {
			return nil, err
		}

		list.End = node.Span().End
		list.Body = append(list.Body, node)
	}

	return &list, nil
}

func (p *parser) parseTag() (ast.Node, error) {
	tk := p.take()

	if tk.Type == lexer.TokenText {
		return &ast.TextNode{
			Pos:     ast.Pos(source.Between(tk.Start, tk.End)),
			Content: tk.Contents,
		}, nil
	}

	if tk.Type != lexer.TokenTag {
		return nil, source.Errorf(source.InvalidSyntax, source.Between(tk.Start, tk.End), "Expected a tag, found token (%s) instead.", tk)
	}

	start := tk.Start
	name := tk.Contents

	attributes := map[string]string{}
	for p.peek().Type == lexer.TokenAttribute {
		attr := p.take()
		data := p.take()

		attributes[attr.Contents] = data.Contents
	}

	content, err := p.parseTags()
	if err != nil {
		return nil, err
	}

	closing := p.take()
	if !closing.Is(lexer.TokenClose, name) {
		return nil, source.Errorf(source.InvalidSyntax, source.Between(closing.Start, closing.End), "Expected </%s>, found token %s instead.", name, closing)
	}

	return &ast.TagNode{
		Pos:        ast.Pos(source.Between(start, closing.End)),
		Name:       name,
		Attributes: attributes,
		Content:    content,
	}, nil
}
