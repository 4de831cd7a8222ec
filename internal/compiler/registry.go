package compiler

import "github.com/creeperdoesredstone/gemmarkups/internal/scene"

// Registry holds one compile's class and id indexes. It is created empty by
// the compiler and discarded with it; nothing is shared across compiles.
type Registry struct {
	classOrder []string
	classes    map[string][]scene.Content

	ids     map[string]scene.Content
	nodeIDs map[scene.Content]string
}

func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string][]scene.Content),
		ids:     make(map[string]scene.Content),
		nodeIDs: make(map[scene.Content]string),
	}
}

// AddClass appends node to the class's member list, creating the class on
// first use. A node may belong to many classes and a class to many nodes.
func (r *Registry) AddClass(name string, node scene.Content) {
	if _, ok := r.classes[name]; !ok {
		r.classOrder = append(r.classOrder, name)
	}

	r.classes[name] = append(r.classes[name], node)
}

// RegisterID claims an id name for node. If the name already belongs to a
// different node, the existing owner is returned and the claim fails.
func (r *Registry) RegisterID(name string, node scene.Content) (existing scene.Content, ok bool) {
	if existing, taken := r.ids[name]; taken && existing != node {
		return existing, false
	}

	r.ids[name] = node
	r.nodeIDs[node] = name

	return nil, true
}

// Class returns the class's members in insertion order.
func (r *Registry) Class(name string) []scene.Content {
	return r.classes[name]
}

// Lookup resolves an id name to its node.
func (r *Registry) Lookup(id string) (scene.Content, bool) {
	node, ok := r.ids[id]
	return node, ok
}

// IDOf reports the id registered for node, if any.
func (r *Registry) IDOf(node scene.Content) (string, bool) {
	id, ok := r.nodeIDs[node]
	return id, ok
}

// ClassesOf reports every class node belongs to, in class creation order.
func (r *Registry) ClassesOf(node scene.Content) []string {
	var names []string

	for _, name := range r.classOrder {
		for _, member := range r.classes[name] {
			if member == node {
				names = append(names, name)
				break
			}
		}
	}

	return names
}
