package extract

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/dgallion1/covolex/internal/covoltree"
)

// Brands collects every distinct commercial brand declared anywhere in the
// tree. Values are trimmed, blanks dropped, duplicates collapsed, and the
// result sorted for stable output. Brands may recur at any depth, so the
// walk never stops early.
func Brands(tree *covoltree.Node) []string {
	var brands []string
	tree.Walk(func(name string, node *covoltree.Node) bool {
		if name == BrandField {
			if v := strings.TrimSpace(node.Value()); v != "" {
				brands = append(brands, v)
			}
		}
		return true
	})
	brands = lo.Uniq(brands)
	sort.Strings(brands)
	return brands
}
