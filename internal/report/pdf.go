package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/dgallion1/covolex/internal/extract"
)

// Column layout for the detail table, in mm on A4 portrait.
var pdfCols = []struct {
	title string
	width float64
}{
	{"Marca", 40},
	{"Categoría", 52},
	{"Campo", 58},
	{"Valor", 40},
}

// renderPDF builds the paginated report: header block with the document
// metadata and brand list, one grouped detail table, and a page-numbered
// footer. Core fonts are cp1252, so all text goes through the unicode
// translator.
func renderPDF(groups []BrandGroup, meta extract.Record, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Reporte de Combustibles", true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Header block.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr("Reporte de Combustibles"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	headerLine(pdf, tr, "Instalación", meta.Installation)
	headerLine(pdf, tr, "Permiso CRE", meta.Permit)
	headerLine(pdf, tr, "Fecha de medición", meta.MeasuredAt)
	headerLine(pdf, tr, "Fecha de generación", now.Format("02/01/2006 15:04"))
	headerLine(pdf, tr, "Marcas", strings.Join(BrandList(groups), ", "))
	pdf.Ln(4)

	// Detail table header.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfCols {
		pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	// Detail rows, grouped by brand then category.
	pdf.SetFont("Helvetica", "", 9)
	fill := false
	pdf.SetFillColor(245, 245, 245)
	for _, g := range groups {
		for _, cg := range g.Categories {
			for _, it := range cg.Items {
				cells := []string{g.Brand, string(cg.Category), it.Field, it.Value}
				for i, col := range pdfCols {
					pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, "L", fill, 0, "")
				}
				pdf.Ln(-1)
				fill = !fill
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headerLine(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}
