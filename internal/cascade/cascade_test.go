package cascade

import (
	"testing"

	"github.com/creeperdoesredstone/gemmarkups/internal/compiler"
	"github.com/creeperdoesredstone/gemmarkups/internal/lexer"
	"github.com/creeperdoesredstone/gemmarkups/internal/parser"
	"github.com/creeperdoesredstone/gemmarkups/internal/scene"
	"github.com/creeperdoesredstone/gemmarkups/internal/sheet"
)

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func compile(t *testing.T, src string) (*scene.Window, *compiler.Registry) {
	t.Helper()

	tokens, err := lexer.New([]byte(src), "test.gxml").Lex()
	if err != nil {
		t.Fatalf("failed to lex %q: %s", src, err)
	}

	doc, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("failed to parse %q: %s", src, err)
	}

	comp := compiler.New(func(string) bool { return true })

	window, err := comp.Compile(doc)
	if err != nil {
		t.Fatalf("failed to compile %q: %s", src, err)
	}

	return window, comp.Registry()
}

func parseSheet(t *testing.T, src string) *sheet.Stylesheet {
	t.Helper()

	tokens, err := sheet.NewLexer([]byte(src), "test.gms").Lex()
	if err != nil {
		t.Fatalf("failed to lex %q: %s", src, err)
	}

	styles, err := sheet.Parse(tokens)
	if err != nil {
		t.Fatalf("failed to parse %q: %s", src, err)
	}

	return styles
}

func TestSelectors(t *testing.T) {
	window, registry := compile(t, `<window><rect id="main" class="box"></rect><circle class="box"></circle><line startx="0" starty="0" endx="1" endy="1"></line></window>`)

	Apply(parseSheet(t, `
window { color: white; }
rect { fill: red; }
#main { border: thick; }
.box { margin: 2; }
`), window, registry)

	rect := window.Contents[0]
	circle := window.Contents[1]
	line := window.Contents[2]

	assert(t, "white", window.Styles()["color"], "window color")

	assert(t, "red", rect.Styles()["fill"], "rect fill")
	assert(t, "thick", rect.Styles()["border"], "rect border")
	assert(t, "2", rect.Styles()["margin"], "rect margin")

	_, hasFill := circle.Styles()["fill"]
	assert(t, false, hasFill, "circle fill absent")
	assert(t, "2", circle.Styles()["margin"], "circle margin")

	_, hasMargin := line.Styles()["margin"]
	assert(t, false, hasMargin, "line margin absent")
	assert(t, "white", line.Styles()["color"], "line inherits window color")
}

// Children start from their parent's resolved style mapping, so a property
// set high in the tree reaches every descendant that nothing overrides.
func TestInheritance(t *testing.T) {
	window, registry := compile(t, `<window><div class="box"><text>hi</text></div></window>`)

	Apply(parseSheet(t, ".box { color: green; }"), window, registry)

	div := window.Contents[0]
	text := div.Children()[0]

	assert(t, "green", div.Styles()["color"], "div color")
	assert(t, "green", text.Styles()["color"], "inherited text color")

	_, windowHas := window.Styles()["color"]
	assert(t, false, windowHas, "window unaffected")
}

func TestRuleOrder(t *testing.T) {
	window, registry := compile(t, `<window><rect id="main"></rect></window>`)

	Apply(parseSheet(t, "rect { fill: red; }\n#main { fill: green; }"), window, registry)

	assert(t, "green", window.Contents[0].Styles()["fill"], "later rule wins")
}

// Stylesheets cascade one after another in include order, so a later
// sheet's rules dominate an earlier one's.
func TestSheetOrder(t *testing.T) {
	window, registry := compile(t, `<window><rect></rect></window>`)

	Apply(parseSheet(t, "rect { fill: red; width: 12; }"), window, registry)
	Apply(parseSheet(t, "rect { fill: blue; }"), window, registry)

	rect := window.Contents[0]
	assert(t, "blue", rect.Styles()["fill"], "later sheet wins")
	assert(t, "12", rect.Styles()["width"], "unrelated property survives")
}

// A selector with several whitespace-separated names matches a node when
// any one of them does.
func TestSelectorAlternatives(t *testing.T) {
	window, registry := compile(t, `<window><rect></rect><circle></circle><text>hi</text></window>`)

	styles := sheet.NewStylesheet()
	styles.Set("rect circle", sheet.Declarations{"fill": "red"})

	Apply(styles, window, registry)

	assert(t, "red", window.Contents[0].Styles()["fill"], "rect matched")
	assert(t, "red", window.Contents[1].Styles()["fill"], "circle matched")

	_, ok := window.Contents[2].Styles()["fill"]
	assert(t, false, ok, "text unmatched")
}

func TestStyledContentKinds(t *testing.T) {
	window, registry := compile(t, "<window><h2>Title</h2><b>bold</b></window>")

	Apply(parseSheet(t, "header { color: navy; }\nstyledcontent { color: gray; }"), window, registry)

	assert(t, "navy", window.Contents[0].Styles()["color"], "header color")
	assert(t, "gray", window.Contents[1].Styles()["color"], "styled content color")
}
