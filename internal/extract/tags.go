// Package extract locates brand-scoped, category-scoped fields inside a
// parsed Covol volumetric-control document.
package extract

import "fmt"

// BrandField is the element that declares a commercial brand. Every
// descendant of the declaring element belongs to that brand's scope until
// a later element redeclares a different value.
const BrandField = "MarcaComercial"

// AmbiguousField is the one field whose nesting varies by category and
// document variant; resolution falls back to fallbackPaths when a direct
// lookup under the category node fails.
const AmbiguousField = "ValorNumerico"

// Absent marks a requested field that could not be resolved. Result maps
// always carry every requested field, mapped to Absent on a miss.
const Absent = "N/D"

// Category is one of the closed set of top-level report classifications.
type Category string

const (
	Recepciones          Category = "RECEPCIONES"
	Entregas             Category = "ENTREGAS"
	ControlDeExistencias Category = "CONTROLDEEXISTENCIAS"
)

// AllCategories lists the recognized categories. Order matters: the first
// entry is the fallback when a document yields no category tokens, and
// report assembly emits categories in this order.
var AllCategories = []Category{Recepciones, Entregas, ControlDeExistencias}

// subtagOrder is the canonical field order per category, used both for
// subtag listings and for report assembly.
var subtagOrder = map[Category][]string{
	Recepciones: {
		"TotalRecepcionesMes",
		"ValorNumerico",
		"TotalDocumentosMes",
		"ImporteTotalRecepcionesMensual",
	},
	Entregas: {
		"TotalEntregasMes",
		"ValorNumerico",
		"TotalDocumentosMes",
		"ImporteTotalEntregasMes",
	},
	ControlDeExistencias: {
		"ValorNumerico",
	},
}

// fallbackPaths holds the alternate dotted paths tried, in order, when the
// ambiguous field has no direct child under the category node. The bare
// field name is always the last entry. Only AmbiguousField consults this
// table; every other field resolves by direct lookup alone.
var fallbackPaths = map[Category][]string{
	Recepciones: {
		"SumatorioRecepcionesMes.ValorNumerico",
		"ValorNumerico",
	},
	Entregas: {
		"SumatorioEntregasMes.ValorNumerico",
		"ValorNumerico",
	},
	ControlDeExistencias: {
		"VolumenExistenciasMes.ValorNumerico",
		"ValorNumerico",
	},
}

// UnsupportedCategoryError reports a lookup against a category outside the
// fixed enumeration.
type UnsupportedCategoryError struct {
	Category string
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("category not recognized: %q", e.Category)
}

// ValidCategory reports whether cat is in the fixed enumeration.
func ValidCategory(cat Category) bool {
	_, ok := subtagOrder[cat]
	return ok
}

// SubtagsForCategory returns the canonical subtag order for a category.
// The returned slice is a copy the caller may reorder freely.
func SubtagsForCategory(cat Category) ([]string, error) {
	order, ok := subtagOrder[cat]
	if !ok {
		return nil, &UnsupportedCategoryError{Category: string(cat)}
	}
	out := make([]string, len(order))
	copy(out, order)
	return out, nil
}

// SubtagRank returns the position of field in cat's canonical order, or -1
// when the field is not in the table.
func SubtagRank(cat Category, field string) int {
	for i, name := range subtagOrder[cat] {
		if name == field {
			return i
		}
	}
	return -1
}
