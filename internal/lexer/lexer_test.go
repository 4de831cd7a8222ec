package lexer

import (
	"errors"
	"testing"

	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func lex(t *testing.T, src string) []Token {
	t.Helper()

	tokens, err := New([]byte(src), "test.gxml").Lex()
	if err != nil {
		t.Fatalf("failed to lex %q: %s", src, err)
	}

	return tokens
}

func assertTokens(t *testing.T, tokens []Token, want []Token) {
	t.Helper()

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}

	for i := range want {
		if !tokens[i].Is(want[i].Type, want[i].Contents) {
			t.Fatalf("token %d: expected %s, got %s", i, &want[i], &tokens[i])
		}
	}
}

func TestLexer(t *testing.T) {
	type testCase struct {
		name string
		src  string
		want []Token
	}

	cases := []testCase{
		{
			name: "empty window",
			src:  `<window></window>`,
			want: []Token{
				{Type: TokenTag, Contents: "window"},
				{Type: TokenClose, Contents: "window"},
				{Type: TokenEOF},
			},
		},
		{
			name: "tag with attributes",
			src:  `<rect x="5" y="6"></rect>`,
			want: []Token{
				{Type: TokenTag, Contents: "rect"},
				{Type: TokenAttribute, Contents: "x"},
				{Type: TokenData, Contents: "5"},
				{Type: TokenAttribute, Contents: "y"},
				{Type: TokenData, Contents: "6"},
				{Type: TokenClose, Contents: "rect"},
				{Type: TokenEOF},
			},
		},
		{
			name: "text content",
			src:  "<text>Hello world</text>",
			want: []Token{
				{Type: TokenTag, Contents: "text"},
				{Type: TokenText, Contents: "Hello world"},
				{Type: TokenClose, Contents: "text"},
				{Type: TokenEOF},
			},
		},
		{
			name: "quoted data",
			src:  `"theme.gms"`,
			want: []Token{
				{Type: TokenData, Contents: "theme.gms"},
				{Type: TokenEOF},
			},
		},
		{
			name: "heading shorthand",
			src:  "# Hello",
			want: []Token{
				{Type: TokenTag, Contents: "h1"},
				{Type: TokenText, Contents: "Hello"},
				{Type: TokenClose, Contents: "h1"},
				{Type: TokenEOF},
			},
		},
		{
			name: "level three heading",
			src:  "### Deep",
			want: []Token{
				{Type: TokenTag, Contents: "h3"},
				{Type: TokenText, Contents: "Deep"},
				{Type: TokenClose, Contents: "h3"},
				{Type: TokenEOF},
			},
		},
		{
			name: "bold shorthand",
			src:  "**bold**",
			want: []Token{
				{Type: TokenTag, Contents: "b"},
				{Type: TokenText, Contents: "bold"},
				{Type: TokenClose, Contents: "b"},
				{Type: TokenEOF},
			},
		},
		{
			name: "italic shorthand",
			src:  "*lean*",
			want: []Token{
				{Type: TokenTag, Contents: "i"},
				{Type: TokenText, Contents: "lean"},
				{Type: TokenClose, Contents: "i"},
				{Type: TokenEOF},
			},
		},
		{
			name: "bold italic shorthand",
			src:  "***both***",
			want: []Token{
				{Type: TokenTag, Contents: "bi"},
				{Type: TokenText, Contents: "both"},
				{Type: TokenClose, Contents: "bi"},
				{Type: TokenEOF},
			},
		},
		{
			name: "heading inside window",
			src:  "<window>\n# Hello\n</window>",
			want: []Token{
				{Type: TokenTag, Contents: "window"},
				{Type: TokenTag, Contents: "h1"},
				{Type: TokenText, Contents: "Hello"},
				{Type: TokenClose, Contents: "h1"},
				{Type: TokenClose, Contents: "window"},
				{Type: TokenEOF},
			},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			assertTokens(t, lex(t, c.src), c.want)
		})
	}
}

// Shorthand is sugar, not a separate language: the token stream it expands
// to must be indistinguishable from the explicit tag form.
func TestShorthandEquivalence(t *testing.T) {
	type testCase struct {
		shorthand, explicit string
	}

	cases := []testCase{
		{"# Hello", "<h1>Hello</h1>"},
		{"## Hello", "<h2>Hello</h2>"},
		{"*word*", "<i>word</i>"},
		{"**word**", "<b>word</b>"},
		{"***word***", "<bi>word</bi>"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.shorthand, func(t *testing.T) {
			short := lex(t, c.shorthand)
			long := lex(t, c.explicit)

			if len(short) != len(long) {
				t.Fatalf("expected %d tokens, got %d", len(long), len(short))
			}

			for i := range long {
				if !short[i].Is(long[i].Type, long[i].Contents) {
					t.Fatalf("token %d: expected %s, got %s", i, &long[i], &short[i])
				}
			}
		})
	}
}

// Spliced tokens must report positions in the outer file, not in the
// virtual buffer the nested lexer ran over.
func TestShorthandSpans(t *testing.T) {
	tokens := lex(t, "# Hello")

	assert(t, 0, tokens[0].Start.Offset, "tag start")
	assert(t, 2, tokens[0].End.Offset, "tag end")
	assert(t, 2, tokens[1].Start.Offset, "text start")
	assert(t, 7, tokens[1].End.Offset, "text end")
	assert(t, 7, tokens[2].Start.Offset, "close start")

	for _, tk := range tokens {
		assert(t, "test.gxml", tk.Start.File, "token file")
	}
}

func TestLexerErrors(t *testing.T) {
	type testCase struct {
		name    string
		src     string
		kind    source.Kind
		details string
	}

	cases := []testCase{
		{
			name: "unknown tag",
			src:  "<foo>",
			kind: source.UnknownTag,
		},
		{
			name:    "too many heading markers",
			src:     "#### Hello",
			kind:    source.InvalidSyntax,
			details: "Expected a max of 3 '#' characters.",
		},
		{
			name:    "empty heading",
			src:     "##",
			kind:    source.InvalidSyntax,
			details: "Expected content after '##'.",
		},
		{
			name:    "unbalanced emphasis",
			src:     "**bold*",
			kind:    source.InvalidSyntax,
			details: "Expected 2 '*' characters, got 1 '*' characters instead.",
		},
		{
			name:    "emphasis hits end of line",
			src:     "**bold\n",
			kind:    source.InvalidSyntax,
			details: "Reached EOL when parsing Markdown tag.",
		},
		{
			name: "empty emphasis",
			src:  "**",
			kind: source.InvalidSyntax,
		},
		{
			name:    "unterminated quote",
			src:     `"theme.gms`,
			kind:    source.ExpectedCharacter,
			details: `Expected terminating '"' character.`,
		},
		{
			name:    "unterminated attribute value",
			src:     `<rect x="5`,
			kind:    source.ExpectedCharacter,
			details: `Expected terminating '"' character.`,
		},
		{
			name:    "missing equals after attribute",
			src:     `<rect x "5">`,
			kind:    source.ExpectedCharacter,
			details: `Expected '=' after attribute, found '"' instead.`,
		},
		{
			name: "missing quote after equals",
			src:  `<rect x=5>`,
			kind: source.ExpectedCharacter,
		},
		{
			name: "tag without name",
			src:  "<>",
			kind: source.ExpectedCharacter,
		},
		{
			name: "stray apostrophe",
			src:  "'",
			kind: source.UnexpectedCharacter,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			_, err := New([]byte(c.src), "test.gxml").Lex()
			if err == nil {
				t.Fatalf("expected an error lexing %q", c.src)
			}

			var serr *source.Error
			if !errors.As(err, &serr) {
				t.Fatalf("expected a source error, got %T: %s", err, err)
			}

			assert(t, c.kind, serr.Kind, "error kind")
			if c.details != "" {
				assert(t, c.details, serr.Details, "error details")
			}
		})
	}
}
