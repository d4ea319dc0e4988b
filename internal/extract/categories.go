package extract

import (
	"bytes"
	"fmt"
)

// Categories scans the raw serialized document for recognized category
// elements and returns them in canonical order. The scan is deliberately
// textual so a document the structural parser cannot fully resolve still
// yields a selectable category; when no token matches, the first category
// in the enumeration is returned as a fallback. The result is never empty.
func Categories(raw []byte) []Category {
	var found []Category
	for _, cat := range AllCategories {
		// Match the opening tag with or without a namespace prefix.
		if bytes.Contains(raw, fmt.Appendf(nil, "<%s>", cat)) ||
			bytes.Contains(raw, fmt.Appendf(nil, ":%s>", cat)) {
			found = append(found, cat)
		}
	}
	if len(found) == 0 {
		return []Category{AllCategories[0]}
	}
	return found
}
