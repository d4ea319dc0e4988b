package extract

import (
	"strings"

	"github.com/dgallion1/covolex/internal/covoltree"
)

// Placeholder fills metadata fields that are absent from the document.
// Report headers always render all three fields, so they are never empty.
const Placeholder = "No especificado"

// Metadata field names, document-global (no brand or category scoping).
const (
	installationField = "DescripcionInstalacion"
	permitField       = "NumPermiso"
	measuredAtField   = "FechaYHoraEstaMedicionMes"
)

// Record holds the session-level descriptive fields of a document.
type Record struct {
	Installation string `json:"descripcionInstalacion"`
	Permit       string `json:"numPermiso"`
	MeasuredAt   string `json:"fechaMedicion"`
}

// Present reports whether the field carries a real value rather than the
// absent placeholder.
func Present(v string) bool {
	return v != "" && v != Placeholder
}

// Metadata scans the whole tree for the three descriptive fields. First
// match in document order wins per field; missing fields are filled with
// Placeholder.
func Metadata(tree *covoltree.Node) Record {
	found := map[string]string{}
	wanted := map[string]bool{
		installationField: true,
		permitField:       true,
		measuredAtField:   true,
	}

	tree.Walk(func(name string, node *covoltree.Node) bool {
		if wanted[name] {
			if v := strings.TrimSpace(node.Value()); v != "" {
				found[name] = v
				delete(wanted, name)
			}
		}
		return len(wanted) > 0
	})

	rec := Record{
		Installation: found[installationField],
		Permit:       found[permitField],
		MeasuredAt:   found[measuredAtField],
	}
	if rec.Installation == "" {
		rec.Installation = Placeholder
	}
	if rec.Permit == "" {
		rec.Permit = Placeholder
	}
	if rec.MeasuredAt == "" {
		rec.MeasuredAt = Placeholder
	}
	return rec
}
