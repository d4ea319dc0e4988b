package report

import (
	"reflect"
	"testing"

	"github.com/dgallion1/covolex/internal/extract"
)

func sel(brand string, cat extract.Category, field, value string) Item {
	return Item{Brand: brand, Category: cat, Field: field, Value: value}
}

func TestAssemble_CanonicalFieldOrder(t *testing.T) {
	// Inserted out of canonical order on purpose.
	items := []Item{
		sel("ACME", extract.Recepciones, "TotalDocumentosMes", "4"),
		sel("ACME", extract.Recepciones, "TotalRecepcionesMes", "10"),
		sel("ACME", extract.Recepciones, "ValorNumerico", "500.0"),
	}

	groups := Assemble(items)
	if len(groups) != 1 || len(groups[0].Categories) != 1 {
		t.Fatalf("unexpected grouping: %+v", groups)
	}

	var fields []string
	for _, it := range groups[0].Categories[0].Items {
		fields = append(fields, it.Field)
	}
	want := []string{"TotalRecepcionesMes", "ValorNumerico", "TotalDocumentosMes"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("expected canonical order %v, got %v", want, fields)
	}
}

func TestAssemble_UnknownFieldsKeepInsertionOrder(t *testing.T) {
	items := []Item{
		sel("ACME", extract.Recepciones, "CampoExtraB", "b"),
		sel("ACME", extract.Recepciones, "ValorNumerico", "1"),
		sel("ACME", extract.Recepciones, "CampoExtraA", "a"),
	}

	groups := Assemble(items)
	var fields []string
	for _, it := range groups[0].Categories[0].Items {
		fields = append(fields, it.Field)
	}
	// Canonical field first, then the unknown ones in insertion order.
	want := []string{"ValorNumerico", "CampoExtraB", "CampoExtraA"}
	if !reflect.DeepEqual(fields, want) {
		t.Errorf("expected %v, got %v", want, fields)
	}
}

func TestAssemble_BrandsKeepFirstSeenOrder(t *testing.T) {
	items := []Item{
		sel("GLOBEX", extract.Entregas, "TotalEntregasMes", "5"),
		sel("ACME", extract.Recepciones, "TotalRecepcionesMes", "10"),
		sel("GLOBEX", extract.Recepciones, "TotalRecepcionesMes", "7"),
	}

	groups := Assemble(items)
	if got := BrandList(groups); !reflect.DeepEqual(got, []string{"GLOBEX", "ACME"}) {
		t.Errorf("expected first-seen brand order, got %v", got)
	}
}

func TestAssemble_CategoriesFollowEnumerationOrder(t *testing.T) {
	items := []Item{
		sel("ACME", extract.ControlDeExistencias, "ValorNumerico", "3"),
		sel("ACME", extract.Recepciones, "TotalRecepcionesMes", "10"),
		sel("ACME", extract.Entregas, "TotalEntregasMes", "5"),
	}

	groups := Assemble(items)
	var cats []extract.Category
	for _, cg := range groups[0].Categories {
		cats = append(cats, cg.Category)
	}
	want := []extract.Category{extract.Recepciones, extract.Entregas, extract.ControlDeExistencias}
	if !reflect.DeepEqual(cats, want) {
		t.Errorf("expected enumeration order %v, got %v", want, cats)
	}
}
