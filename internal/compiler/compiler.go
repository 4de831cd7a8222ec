// Package compiler turns a parsed GemXML tree into a scene graph. It
// validates document shape, builds the Window and its content tree,
// maintains the class/id registry and records pending style includes for
// the cascade step.
package compiler

import (
	"strconv"
	"strings"

	"github.com/creeperdoesredstone/gemmarkups/internal/parser/ast"
	"github.com/creeperdoesredstone/gemmarkups/internal/scene"
	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

// FileChecker reports whether an included path exists. The compiler never
// reads files itself; existence is the only storage capability it needs.
type FileChecker func(path string) bool

type Compiler struct {
	window     *scene.Window
	registry   *Registry
	fileExists FileChecker

	styleIncludes []string
}

// New creates a compiler for a single compile. Registries start empty and
// are not shared with any other compile.
func New(fileExists FileChecker) *Compiler {
	return &Compiler{
		registry:   NewRegistry(),
		fileExists: fileExists,
	}
}

// Compile validates the document and builds its scene graph. Compilation is
// fully non-recoverable: the first failure aborts and is returned as-is.
func (c *Compiler) Compile(doc *ast.NodeList) (*scene.Window, error) {
	if err := c.validate(doc); err != nil {
		return nil, err
	}

	if _, err := c.compileTag(doc.Body[0].(*ast.TagNode)); err != nil {
		return nil, err
	}

	return c.window, nil
}

// Registry exposes this compile's class/id indexes to the cascade step.
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// StyleIncludes lists the stylesheet paths recorded by include tags, in
// document order. The driving pipeline resolves them into text and feeds
// them through the GemSheet pipeline.
func (c *Compiler) StyleIncludes() []string {
	return c.styleIncludes
}

func (c *Compiler) validate(doc *ast.NodeList) error {
	if len(doc.Body) != 1 {
		return source.Errorf(source.WindowError, doc.Span(), "A GemXML file can only support one window at a time.")
	}

	if tag, ok := doc.Body[0].(*ast.TagNode); !ok || tag.Name != "window" {
		return source.Errorf(source.WindowError, doc.Span(), "Expected <window> tag at the start of the file.")
	}

	return nil
}

// compileNodes compiles a sibling list into content nodes. Include tags
// produce no content and are skipped.
func (c *Compiler) compileNodes(list *ast.NodeList) ([]scene.Content, error) {
	var contents []scene.Content

	for _, n := range list.Body {
		node, err := c.compileNode(n)
		if err != nil {
			return nil, err
		}

		if node != nil {
			contents = append(contents, node)
		}
	}

	return contents, nil
}

func (c *Compiler) compileNode(n ast.Node) (scene.Content, error) {
	switch n := n.(type) {
	case *ast.TextNode:
		return scene.NewText(n.Content), nil

	case *ast.TagNode:
		return c.compileTag(n)
	}

	return nil, source.Errorf(source.InvalidSyntax, n.Span(), "Unexpected node in document body.")
}

func (c *Compiler) compileTag(n *ast.TagNode) (scene.Content, error) {
	switch n.Name {
	case "window":
		if c.window != nil {
			return nil, source.Errorf(source.WindowError, n.Span(), "There can only be one.")
		}

		x, err := c.intAttr(n, "x", 45)
		if err != nil {
			return nil, err
		}
		y, err := c.intAttr(n, "y", 35)
		if err != nil {
			return nil, err
		}
		width, err := c.intAttr(n, "width", 30)
		if err != nil {
			return nil, err
		}
		height, err := c.intAttr(n, "height", 20)
		if err != nil {
			return nil, err
		}

		title, ok := n.Attributes["title"]
		if !ok {
			title = "Title"
		}

		c.window = scene.NewWindow(x, y, width, height, title)

		contents, err := c.compileNodes(n.Content)
		if err != nil {
			return nil, err
		}
		c.window.Contents = contents

		return nil, nil

	case "text":
		text, err := literalContent(n)
		if err != nil {
			return nil, err
		}

		node := scene.NewText(text)
		return node, c.register(n, node)

	case "rect":
		x, err := c.intAttr(n, "x", c.window.Width/2-5)
		if err != nil {
			return nil, err
		}
		y, err := c.intAttr(n, "y", c.window.Height/2-3)
		if err != nil {
			return nil, err
		}
		width, err := c.intAttr(n, "width", 10)
		if err != nil {
			return nil, err
		}
		height, err := c.intAttr(n, "height", 6)
		if err != nil {
			return nil, err
		}

		node := scene.NewRect(x, y, width, height)
		return node, c.register(n, node)

	case "circle":
		x, err := c.intAttr(n, "x", c.window.Width/2)
		if err != nil {
			return nil, err
		}
		y, err := c.intAttr(n, "y", c.window.Height/2)
		if err != nil {
			return nil, err
		}
		radius, err := c.intAttr(n, "radius", 4)
		if err != nil {
			return nil, err
		}

		node := scene.NewCircle(x, y, radius)
		return node, c.register(n, node)

	case "line":
		coords := make([]int, 4)
		for i, attr := range []string{"startx", "starty", "endx", "endy"} {
			if _, ok := n.Attributes[attr]; !ok {
				return nil, source.Errorf(source.MissingAttribute, n.Span(), "Missing attribute: '%s'", attr)
			}

			value, err := c.intAttr(n, attr, 0)
			if err != nil {
				return nil, err
			}
			coords[i] = value
		}

		node := scene.NewLine(coords[0], coords[1], coords[2], coords[3])
		return node, c.register(n, node)

	case "div":
		contents, err := c.compileNodes(n.Content)
		if err != nil {
			return nil, err
		}

		node := scene.NewDiv(contents)
		return node, c.register(n, node)

	case "h1", "h2", "h3":
		contents, err := c.compileNodes(n.Content)
		if err != nil {
			return nil, err
		}

		node := scene.NewHeader(int(n.Name[1]-'0'), contents)
		return node, c.register(n, node)

	case "b", "i", "bi", "u":
		contents, err := c.compileNodes(n.Content)
		if err != nil {
			return nil, err
		}

		node := scene.NewStyledContent(n.Name, contents)
		return node, c.register(n, node)

	case "include":
		return nil, c.compileInclude(n)
	}

	return nil, source.Errorf(source.UnknownTag, n.Span(), "<%s> (when compiling)", n.Name)
}

func (c *Compiler) compileInclude(n *ast.TagNode) error {
	as, ok := n.Attributes["as"]
	if !ok {
		return source.Errorf(source.MissingAttribute, n.Span(), "Missing attribute: 'as'")
	}
	if as != "style" && as != "md" {
		return source.Errorf(source.AttributeError, n.Span(), "Expected one of the following for 'as' attribute: style, md.")
	}

	var path string
	if len(n.Content.Body) == 1 {
		if text, ok := n.Content.Body[0].(*ast.TextNode); ok {
			path = text.Content
		}
	}
	if path == "" {
		return source.Errorf(source.MissingAttribute, n.Span(), "File path cannot be empty.")
	}

	if !c.fileExists(path) {
		return source.Errorf(source.FileError, n.Span(), "Cannot find file %s.", path)
	}

	switch as {
	case "style":
		if !strings.HasSuffix(path, ".gms") {
			return source.Errorf(source.FileError, n.Span(), "Stylesheet must end in '.gms'.")
		}

		c.styleIncludes = append(c.styleIncludes, path)

	case "md":
		// Markdown expansion is an external collaborator's job; only the
		// extension is validated here.
		if !strings.HasSuffix(path, ".md") {
			return source.Errorf(source.FileError, n.Span(), "Markdown file must end in '.md'.")
		}
	}

	return nil
}

// register applies class/id bookkeeping to a freshly built content node.
func (c *Compiler) register(n *ast.TagNode, node scene.Content) error {
	if class, ok := n.Attributes["class"]; ok {
		c.registry.AddClass(class, node)
	}

	if id, ok := n.Attributes["id"]; ok {
		if existing, ok := c.registry.RegisterID(id, node); !ok {
			return source.Errorf(source.IdCollision, n.Span(), "ID '%s' is already used by a %s node.", id, existing.Kind())
		}
	}

	return nil
}

func (c *Compiler) intAttr(n *ast.TagNode, name string, fallback int) (int, error) {
	raw, ok := n.Attributes[name]
	if !ok {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, source.Errorf(source.AttributeError, n.Span(), "Invalid integer value '%s' for attribute '%s'.", raw, name)
	}

	return value, nil
}

// literalContent flattens a text element's children. Only literal text is
// allowed inside <text>.
func literalContent(n *ast.TagNode) (string, error) {
	var sb strings.Builder

	for _, child := range n.Content.Body {
		text, ok := child.(*ast.TextNode)
		if !ok {
			return "", source.Errorf(source.InvalidSyntax, child.Span(), "A <text> element can only contain literal text.")
		}

		sb.WriteString(text.Content)
	}

	return sb.String(), nil
}
