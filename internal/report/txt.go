package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/covolex/internal/extract"
)

const (
	txtRule    = "============================================"
	txtDivider = "--------------------------------------------"
)

// renderTXT produces the delimited plain-text report: fixed header block,
// then one detail line per selected field, grouped the same way as the
// other encodings.
func renderTXT(groups []BrandGroup, meta extract.Record, now time.Time) ([]byte, error) {
	var b strings.Builder

	b.WriteString(txtRule + "\n")
	b.WriteString("REPORTE DE COMBUSTIBLES\n")
	b.WriteString(txtRule + "\n")
	fmt.Fprintf(&b, "Instalación: %s\n", meta.Installation)
	fmt.Fprintf(&b, "Permiso CRE: %s\n", meta.Permit)
	fmt.Fprintf(&b, "Fecha: %s\n", now.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Marcas: %s\n", strings.Join(BrandList(groups), ", "))
	b.WriteString(txtDivider + "\n")
	b.WriteString("DETALLES:\n")

	for _, g := range groups {
		for _, cg := range g.Categories {
			for _, it := range cg.Items {
				fmt.Fprintf(&b, "[%s] %s - %s: %s\n", g.Brand, cg.Category, it.Field, it.Value)
			}
		}
	}

	b.WriteString(txtRule + "\n")
	return []byte(b.String()), nil
}
