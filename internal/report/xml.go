package report

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/dgallion1/covolex/internal/extract"
)

// Namespace is the Covol reporting namespace; output elements carry the
// Covol prefix bound to it, mirroring the input schema.
const Namespace = "http://tusistema.com/covol"

// renderXML builds the namespace-qualified report document: a fixed header
// block (installation, permit, generation timestamp, brand list) followed
// by one Producto element per brand with its category blocks nested.
func renderXML(groups []BrandGroup, meta extract.Record, now time.Time) ([]byte, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, "<Covol:Reporte xmlns:Covol=%q>\n", Namespace)

	writeElem(&b, 1, "DescripcionInstalacion", meta.Installation)
	writeElem(&b, 1, "NumPermiso", meta.Permit)
	writeElem(&b, 1, "FechaGeneracion", now.Format(time.RFC3339))

	b.WriteString("    <Covol:Marcas>\n")
	for _, brand := range BrandList(groups) {
		writeElem(&b, 2, extract.BrandField, brand)
	}
	b.WriteString("    </Covol:Marcas>\n")

	for _, g := range groups {
		b.WriteString("    <Covol:Producto>\n")
		writeElem(&b, 2, extract.BrandField, g.Brand)
		for _, cg := range g.Categories {
			fmt.Fprintf(&b, "        <Covol:%s>\n", cg.Category)
			for _, it := range cg.Items {
				writeElem(&b, 3, it.Field, it.Value)
			}
			fmt.Fprintf(&b, "        </Covol:%s>\n", cg.Category)
		}
		b.WriteString("    </Covol:Producto>\n")
	}

	b.WriteString("</Covol:Reporte>\n")
	return []byte(b.String()), nil
}

func writeElem(b *strings.Builder, depth int, name, value string) {
	fmt.Fprintf(b, "%s<Covol:%s>%s</Covol:%s>\n",
		strings.Repeat("    ", depth), name, escape(value), name)
}

func escape(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never does.
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
