// Package workspace is the I/O collaborator around the core pipeline: it
// reads document text, runs lex → parse → compile, resolves style includes
// against an assets root and cascades each included stylesheet over the
// compiled window.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creeperdoesredstone/gemmarkups/internal/cascade"
	"github.com/creeperdoesredstone/gemmarkups/internal/compiler"
	"github.com/creeperdoesredstone/gemmarkups/internal/lexer"
	"github.com/creeperdoesredstone/gemmarkups/internal/parser"
	"github.com/creeperdoesredstone/gemmarkups/internal/scene"
	"github.com/creeperdoesredstone/gemmarkups/internal/sheet"
)

// Workspace resolves include paths relative to a fixed assets root.
type Workspace struct {
	rootPath string
}

func New(rootPath string) *Workspace {
	return &Workspace{rootPath: rootPath}
}

// Load reads and compiles the document at relPath under the assets root.
func (w *Workspace) Load(relPath string) (*scene.Window, error) {
	contents, err := os.ReadFile(filepath.Join(w.rootPath, relPath))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return w.LoadWithContents(relPath, contents)
}

// LoadWithContents compiles already-read document text, then resolves and
// cascades its style includes in include order.
func (w *Workspace) LoadWithContents(name string, contents []byte) (*scene.Window, error) {
	tokens, err := lexer.New(contents, name).Lex()
	if err != nil {
		return nil, fmt.Errorf("lex file: %w", err)
	}

	doc, err := parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	comp := compiler.New(w.fileExists)

	window, err := comp.Compile(doc)
	if err != nil {
		return nil, fmt.Errorf("compile file: %w", err)
	}

	for _, include := range comp.StyleIncludes() {
		styles, err := w.loadStylesheet(include)
		if err != nil {
			return nil, err
		}

		cascade.Apply(styles, window, comp.Registry())
	}

	return window, nil
}

func (w *Workspace) loadStylesheet(relPath string) (*sheet.Stylesheet, error) {
	contents, err := os.ReadFile(filepath.Join(w.rootPath, relPath))
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}

	tokens, err := sheet.NewLexer(contents, relPath).Lex()
	if err != nil {
		return nil, fmt.Errorf("lex stylesheet: %w", err)
	}

	styles, err := sheet.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}

	return styles, nil
}

func (w *Workspace) fileExists(relPath string) bool {
	_, err := os.Stat(filepath.Join(w.rootPath, relPath))
	return err == nil
}
