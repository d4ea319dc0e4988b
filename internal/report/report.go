// Package report turns the operator's accumulated selection into a
// rendered output document: namespace-qualified XML, paginated PDF, or a
// delimited plain-text block.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/covolex/internal/extract"
)

// Format selects the output encoding.
type Format string

const (
	FormatXML Format = "xml"
	FormatPDF Format = "pdf"
	FormatTXT Format = "txt"
)

// ParseFormat validates a caller-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXML:
		return FormatXML, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatTXT:
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported report format: %q", s)
	}
}

// Item is one operator-selected (brand, category, field, value) tuple.
type Item struct {
	Brand    string           `json:"brand"`
	Category extract.Category `json:"category"`
	Field    string           `json:"field"`
	Value    string           `json:"value"`
}

// Generate validates the selection, assembles it into brand/category
// groups, and renders it in the requested format. It returns the payload
// and a suggested file name. The caller supplies the generation time so
// output is reproducible under test.
func Generate(items []Item, meta extract.Record, format Format, now time.Time) ([]byte, string, error) {
	if err := Validate(items, meta); err != nil {
		return nil, "", err
	}

	groups := Assemble(items)

	var payload []byte
	var err error
	switch format {
	case FormatXML:
		payload, err = renderXML(groups, meta, now)
	case FormatPDF:
		payload, err = renderPDF(groups, meta, now)
	case FormatTXT:
		payload, err = renderTXT(groups, meta, now)
	default:
		return nil, "", fmt.Errorf("unsupported report format: %q", format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("render %s report: %w", format, err)
	}

	return payload, suggestedName(groups, format, now), nil
}

// suggestedName follows the reporte_<brand|multiples>_<date>.<ext>
// convention. A single-brand selection names the brand; anything else is
// "multiples".
func suggestedName(groups []BrandGroup, format Format, now time.Time) string {
	brand := "multiples"
	if len(groups) == 1 {
		brand = strings.ReplaceAll(groups[0].Brand, " ", "_")
	}
	return fmt.Sprintf("reporte_%s_%s.%s", brand, now.Format("2006-01-02"), format)
}
