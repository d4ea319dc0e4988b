package extract

import (
	"strings"

	"github.com/dgallion1/covolex/internal/covoltree"
)

// resolution is the engine state threaded through the recursive walk:
// the requested fields still unresolved and the values found so far.
// First match in document order wins; a resolved field is never
// overwritten by a later occurrence.
type resolution struct {
	requested []string
	remaining map[string]bool
	values    map[string]string
}

func newResolution(fields []string) resolution {
	st := resolution{
		requested: fields,
		remaining: make(map[string]bool, len(fields)),
		values:    make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		st.remaining[f] = true
	}
	return st
}

func (st resolution) done() bool { return len(st.remaining) == 0 }

// ResolveValues performs the brand-scoped, category-scoped search for the
// requested fields and returns one entry per requested field, mapped to the
// first value found in document order or to Absent when the scoped search
// misses. Zero resolved fields is a normal outcome, not an error; the only
// error is a category outside the fixed enumeration.
//
// Scope rules: a node that declares BrandField opens (or, for a different
// value, closes) the brand scope for its own subtree; the flag follows the
// root-to-node path, so a match deep in one branch never leaks into a
// cousin branch. Within the scope, any child keyed by the category is a
// candidate category node. Empty or whitespace-only leaves count as not
// found and the search continues.
func ResolveValues(tree *covoltree.Node, brand string, cat Category, fields []string) (map[string]string, error) {
	if !ValidCategory(cat) {
		return nil, &UnsupportedCategoryError{Category: string(cat)}
	}

	st := newResolution(fields)
	st = resolveNode(tree, strings.TrimSpace(brand), cat, false, st)

	for _, f := range fields {
		if _, ok := st.values[f]; !ok {
			st.values[f] = Absent
		}
	}
	return st.values, nil
}

func resolveNode(node *covoltree.Node, brand string, cat Category, inBrand bool, st resolution) resolution {
	if node == nil || st.done() {
		return st
	}

	switch node.Kind {
	case covoltree.Object:
		// A brand declaration on this node rescopes its whole subtree,
		// including when it switches to a different brand.
		if b := node.Child(BrandField); b != nil {
			inBrand = strings.TrimSpace(b.Value()) == brand
		}

		if inBrand {
			if catNode := node.Child(string(cat)); catNode != nil {
				st = resolveAt(catNode, cat, st)
			}
		}

		for _, f := range node.Fields {
			st = resolveNode(f.Node, brand, cat, inBrand, st)
			if st.done() {
				return st
			}
		}

	case covoltree.Sequence:
		for _, item := range node.Items {
			st = resolveNode(item, brand, cat, inBrand, st)
			if st.done() {
				return st
			}
		}
	}
	return st
}

// resolveAt attempts every still-unresolved field against one category
// node: direct child lookup first, then, for the ambiguous field only,
// the per-category alternate paths in table order.
func resolveAt(catNode *covoltree.Node, cat Category, st resolution) resolution {
	for _, field := range st.requested {
		if !st.remaining[field] {
			continue
		}

		if v := catNode.LookupValue(field); v != "" {
			st.values[field] = v
			delete(st.remaining, field)
			continue
		}

		if field != AmbiguousField {
			continue
		}
		for _, path := range fallbackPaths[cat] {
			if v := catNode.LookupValue(path); v != "" {
				st.values[field] = v
				delete(st.remaining, field)
				break
			}
		}
	}
	return st
}

// Resolved counts the entries of a ResolveValues result that carry a real
// value. Zero means the (brand, category) pair was a complete miss.
func Resolved(values map[string]string) int {
	n := 0
	for _, v := range values {
		if v != Absent {
			n++
		}
	}
	return n
}

// AvailableSubtags reports which canonical subtags of the category can be
// resolved for the brand, in canonical order. Presence follows the same
// scope and fallback rules as ResolveValues.
func AvailableSubtags(tree *covoltree.Node, brand string, cat Category) ([]string, error) {
	order, err := SubtagsForCategory(cat)
	if err != nil {
		return nil, err
	}
	values, err := ResolveValues(tree, brand, cat, order)
	if err != nil {
		return nil, err
	}
	var present []string
	for _, field := range order {
		if values[field] != Absent {
			present = append(present, field)
		}
	}
	return present, nil
}
