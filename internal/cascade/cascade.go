// Package cascade applies parsed stylesheet rules to a compiled scene
// graph. Resolution is depth-first, parent before child: a node first
// inherits every property of its parent's already resolved style mapping,
// then every matching rule overwrites in declaration order. Rule order
// alone decides precedence; there is no specificity weighting.
package cascade

import (
	"strings"

	"github.com/creeperdoesredstone/gemmarkups/internal/compiler"
	"github.com/creeperdoesredstone/gemmarkups/internal/scene"
	"github.com/creeperdoesredstone/gemmarkups/internal/sheet"
	"golang.org/x/exp/slices"
)

// Apply cascades one stylesheet over the whole window tree. Stylesheets are
// applied one at a time in include order, so a later stylesheet's rules
// always dominate an earlier one's for the same node and property.
func Apply(styles *sheet.Stylesheet, window *scene.Window, registry *compiler.Registry) {
	apply(styles, window, nil, registry)
}

func apply(styles *sheet.Stylesheet, node, parent scene.Node, registry *compiler.Registry) {
	if parent != nil {
		for prop, value := range parent.Styles() {
			node.Styles()[prop] = value
		}
	}

	for _, selector := range styles.Selectors() {
		if !matches(selector, node, registry) {
			continue
		}

		decls, _ := styles.Get(selector)
		for prop, value := range decls {
			node.Styles()[prop] = value
		}
	}

	for _, child := range node.Children() {
		apply(styles, child, node, registry)
	}
}

// matches splits the selector on whitespace into independent simple
// alternatives; the rule is selected if any alternative names the node's
// kind, its id, or one of its classes. There are no compound selectors.
func matches(selector string, node scene.Node, registry *compiler.Registry) bool {
	alternatives := strings.Split(selector, " ")

	if slices.Contains(alternatives, node.Kind()) {
		return true
	}

	content, ok := node.(scene.Content)
	if !ok {
		return false
	}

	if id, ok := registry.IDOf(content); ok && slices.Contains(alternatives, "#"+id) {
		return true
	}

	for _, class := range registry.ClassesOf(content) {
		if slices.Contains(alternatives, "."+class) {
			return true
		}
	}

	return false
}
