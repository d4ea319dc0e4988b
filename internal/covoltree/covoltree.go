// Package covoltree models a parsed Covol XML document as a generic
// ordered tree, with namespace prefixes stripped and attributes dropped.
package covoltree

import (
	"strings"
)

// Kind discriminates the node variants.
type Kind int

const (
	// Scalar is a leaf holding only character data.
	Scalar Kind = iota
	// Object is an element with child elements, in document order.
	Object
	// Sequence groups repeated same-name siblings, in document order.
	Sequence
)

// Node is one element of the parsed document.
//
// Exactly one of Text, Fields, or Items is meaningful for Scalar, Object,
// and Sequence respectively, except that an Object with mixed content also
// keeps its character data in Text.
type Node struct {
	Kind   Kind
	Text   string
	Fields []Field
	Items  []*Node
}

// Field is a named child of an Object node.
type Field struct {
	Name string
	Node *Node
}

// Child returns the first field with the given name, or nil.
// Names are case-sensitive and carry no namespace prefix.
func (n *Node) Child(name string) *Node {
	if n == nil || n.Kind != Object {
		return nil
	}
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Node
		}
	}
	return nil
}

// Value returns the trimmed text content of a node regardless of variant:
// the scalar text, an object's own character data, or the first item of a
// sequence. Returns "" for nil nodes and pure container objects.
func (n *Node) Value() string {
	switch {
	case n == nil:
		return ""
	case n.Kind == Sequence:
		if len(n.Items) == 0 {
			return ""
		}
		return n.Items[0].Value()
	default:
		return strings.TrimSpace(n.Text)
	}
}

// Walk visits n and every descendant in document order. The visit function
// receives the field name under which each node appears ("" for the root
// and for sequence items, which keep their parent's name). Returning false
// stops the walk.
func (n *Node) Walk(visit func(name string, node *Node) bool) {
	n.walk("", visit)
}

func (n *Node) walk(name string, visit func(string, *Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(name, n) {
		return false
	}
	switch n.Kind {
	case Object:
		for _, f := range n.Fields {
			if !f.Node.walk(f.Name, visit) {
				return false
			}
		}
	case Sequence:
		for _, item := range n.Items {
			if !item.walk(name, visit) {
				return false
			}
		}
	}
	return true
}

// Lookup resolves a dotted path of field names against n, descending one
// object level per segment. Sequence nodes are transparent: the path is
// tried against each item in order and the first hit wins.
func (n *Node) Lookup(path string) *Node {
	if n == nil || path == "" {
		return nil
	}
	name, rest, more := strings.Cut(path, ".")
	if n.Kind == Sequence {
		for _, item := range n.Items {
			if found := item.Lookup(path); found != nil {
				return found
			}
		}
		return nil
	}
	child := n.Child(name)
	if child == nil {
		return nil
	}
	if !more {
		return child
	}
	return child.Lookup(rest)
}

// LookupValue resolves a dotted path like Lookup, but returns the first
// non-empty trimmed value in document order, trying every sequence
// alternative along the way. Empty and whitespace-only leaves are treated
// as absent. Returns "" when nothing non-empty is reachable.
func (n *Node) LookupValue(path string) string {
	if n == nil || path == "" {
		return ""
	}
	if n.Kind == Sequence {
		for _, item := range n.Items {
			if v := item.LookupValue(path); v != "" {
				return v
			}
		}
		return ""
	}
	name, rest, more := strings.Cut(path, ".")
	child := n.Child(name)
	if child == nil {
		return ""
	}
	if more {
		return child.LookupValue(rest)
	}
	if child.Kind == Sequence {
		for _, item := range child.Items {
			if v := item.Value(); v != "" {
				return v
			}
		}
		return ""
	}
	return child.Value()
}

// addField appends a child, collapsing repeated names into a Sequence in
// the slot of the first occurrence, mirroring how the upstream documents
// repeat sibling elements.
func (n *Node) addField(name string, child *Node) {
	for i, f := range n.Fields {
		if f.Name != name {
			continue
		}
		if f.Node.Kind == Sequence {
			f.Node.Items = append(f.Node.Items, child)
			return
		}
		n.Fields[i].Node = &Node{Kind: Sequence, Items: []*Node{f.Node, child}}
		return
	}
	n.Fields = append(n.Fields, Field{Name: name, Node: child})
}
