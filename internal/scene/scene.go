// Package scene defines the compiled scene graph: a Window root owning an
// ordered tree of content nodes. The compiler creates the nodes; afterwards
// only their style mappings change, and only through the cascade resolver.
package scene

import (
	"fmt"
	"strings"
)

// Node is anything the cascade resolver walks: the window root or any
// content node. Kind reports the lowercase type name selectors match
// against.
type Node interface {
	Kind() string
	Styles() map[string]string
	Children() []Content
}

// Content is the closed union of nodes that can appear inside a window.
// Only the types in this package implement it.
type Content interface {
	Node
	fmt.Stringer

	content()
}

// Window is the unique root of one compiled document.
type Window struct {
	X, Y          int
	Width, Height int
	Title         string

	Contents []Content

	styles map[string]string
}

func NewWindow(x, y, width, height int, title string) *Window {
	return &Window{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Title:  title,
		styles: map[string]string{},
	}
}

func (w *Window) Kind() string { return "window" }
func (w *Window) Styles() map[string]string { return w.styles }
func (w *Window) Children() []Content { return w.Contents }

func (w *Window) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Window %s(%d, %d, %d, %d) [\n", w.Title, w.X, w.Y, w.Width, w.Height)
	for _, content := range w.Contents {
		for _, line := range strings.Split(content.String(), "\n") {
			sb.WriteString("    " + line + "\n")
		}
	}
	sb.WriteString("]")

	return sb.String()
}

// Text is a literal text leaf.
type Text struct {
	Text string

	styles map[string]string
}

func NewText(text string) *Text {
	return &Text{Text: text, styles: map[string]string{}}
}

func (t *Text) Kind() string { return "text" }
func (t *Text) Styles() map[string]string { return t.styles }
func (t *Text) Children() []Content { return nil }
func (t *Text) String() string { return fmt.Sprintf("Text('%s')", t.Text) }
func (*Text) content() {}

type Rect struct {
	X, Y          int
	Width, Height int

	styles map[string]string
}

func NewRect(x, y, width, height int) *Rect {
	return &Rect{X: x, Y: y, Width: width, Height: height, styles: map[string]string{}}
}

func (r *Rect) Kind() string { return "rect" }
func (r *Rect) Styles() map[string]string { return r.styles }
func (r *Rect) Children() []Content { return nil }
func (r *Rect) String() string {
	return fmt.Sprintf("Rect(%d, %d, %d, %d)", r.X, r.Y, r.Width, r.Height)
}
func (*Rect) content() {}

type Circle struct {
	X, Y   int
	Radius int

	styles map[string]string
}

func NewCircle(x, y, radius int) *Circle {
	return &Circle{X: x, Y: y, Radius: radius, styles: map[string]string{}}
}

func (c *Circle) Kind() string { return "circle" }
func (c *Circle) Styles() map[string]string { return c.styles }
func (c *Circle) Children() []Content { return nil }
func (c *Circle) String() string {
	return fmt.Sprintf("Circle(%d, %d, %d)", c.X, c.Y, c.Radius)
}
func (*Circle) content() {}

// Line has no positional defaults: all four coordinates are always
// explicit.
type Line struct {
	StartX, StartY int
	EndX, EndY     int

	styles map[string]string
}

func NewLine(startX, startY, endX, endY int) *Line {
	return &Line{StartX: startX, StartY: startY, EndX: endX, EndY: endY, styles: map[string]string{}}
}

func (l *Line) Kind() string { return "line" }
func (l *Line) Styles() map[string]string { return l.styles }
func (l *Line) Children() []Content { return nil }
func (l *Line) String() string {
	return fmt.Sprintf("Line(%d, %d, %d, %d)", l.StartX, l.StartY, l.EndX, l.EndY)
}
func (*Line) content() {}

// Div is a plain grouping construct.
type Div struct {
	Contents []Content

	styles map[string]string
}

func NewDiv(contents []Content) *Div {
	return &Div{Contents: contents, styles: map[string]string{}}
}

func (d *Div) Kind() string { return "div" }
func (d *Div) Styles() map[string]string { return d.styles }
func (d *Div) Children() []Content { return d.Contents }
func (d *Div) String() string { return "Div " + formatContents(d.Contents) }
func (*Div) content() {}

// Header groups content under a heading level 1..3.
type Header struct {
	Level    int
	Contents []Content

	styles map[string]string
}

func NewHeader(level int, contents []Content) *Header {
	return &Header{Level: level, Contents: contents, styles: map[string]string{}}
}

func (h *Header) Kind() string { return "header" }
func (h *Header) Styles() map[string]string { return h.styles }
func (h *Header) Children() []Content { return h.Contents }
func (h *Header) String() string {
	return fmt.Sprintf("H%d %s", h.Level, formatContents(h.Contents))
}
func (*Header) content() {}

// StyledContent groups content under an inline style marker: one of "b",
// "i", "bi" or "u".
type StyledContent struct {
	Format   string
	Contents []Content

	styles map[string]string
}

func NewStyledContent(format string, contents []Content) *StyledContent {
	return &StyledContent{Format: format, Contents: contents, styles: map[string]string{}}
}

func (s *StyledContent) Kind() string { return "styledcontent" }
func (s *StyledContent) Styles() map[string]string { return s.styles }
func (s *StyledContent) Children() []Content { return s.Contents }
func (s *StyledContent) String() string {
	return fmt.Sprintf("%s %s", strings.ToUpper(s.Format), formatContents(s.Contents))
}
func (*StyledContent) content() {}

func formatContents(contents []Content) string {
	parts := make([]string, len(contents))
	for i, content := range contents {
		parts[i] = content.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
