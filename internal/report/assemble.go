package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/dgallion1/covolex/internal/extract"
)

// BrandGroup is one brand's slice of the report, categories nested inside.
type BrandGroup struct {
	Brand      string
	Categories []CategoryGroup
}

// CategoryGroup holds one category's selected fields for a brand.
type CategoryGroup struct {
	Category extract.Category
	Items    []Item
}

// Assemble groups the selection by brand, then by category. Brands keep
// first-seen order; categories follow the fixed enumeration order, with
// any category outside it appended in first-seen order; fields within a
// category follow the canonical per-category order, and fields outside
// the canonical table keep insertion order after the known ones.
func Assemble(items []Item) []BrandGroup {
	brands := lo.Uniq(lo.Map(items, func(it Item, _ int) string { return it.Brand }))

	groups := make([]BrandGroup, 0, len(brands))
	for _, brand := range brands {
		mine := lo.Filter(items, func(it Item, _ int) bool { return it.Brand == brand })

		var cats []CategoryGroup
		seen := map[extract.Category]bool{}
		for _, cat := range extract.AllCategories {
			if cg := categoryGroup(mine, cat); len(cg.Items) > 0 {
				cats = append(cats, cg)
				seen[cat] = true
			}
		}
		for _, it := range mine {
			if !seen[it.Category] {
				cats = append(cats, categoryGroup(mine, it.Category))
				seen[it.Category] = true
			}
		}

		groups = append(groups, BrandGroup{Brand: brand, Categories: cats})
	}
	return groups
}

func categoryGroup(items []Item, cat extract.Category) CategoryGroup {
	mine := lo.Filter(items, func(it Item, _ int) bool { return it.Category == cat })

	sort.SliceStable(mine, func(i, j int) bool {
		ri := extract.SubtagRank(cat, mine[i].Field)
		rj := extract.SubtagRank(cat, mine[j].Field)
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		default:
			return false
		}
	})

	return CategoryGroup{Category: cat, Items: mine}
}

// BrandList returns the distinct brands of the groups, in group order.
func BrandList(groups []BrandGroup) []string {
	return lo.Map(groups, func(g BrandGroup, _ int) string { return g.Brand })
}
