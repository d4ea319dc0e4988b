package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/covolex/internal/covoltree"
)

func parseDoc(t *testing.T, doc string) *covoltree.Node {
	t.Helper()
	tree, err := covoltree.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return tree
}

const twoBrandDoc = `<Covol:Reporte xmlns:Covol="http://tusistema.com/covol">
	<Covol:DescripcionInstalacion>Estación Central</Covol:DescripcionInstalacion>
	<Covol:NumPermiso>PL/12345/EXP/ES/2015</Covol:NumPermiso>
	<Covol:Producto>
		<Covol:MarcaComercial>Alpha</Covol:MarcaComercial>
		<Covol:RECEPCIONES>
			<Covol:TotalRecepcionesMes>10</Covol:TotalRecepcionesMes>
			<Covol:TotalDocumentosMes>4</Covol:TotalDocumentosMes>
		</Covol:RECEPCIONES>
	</Covol:Producto>
	<Covol:Producto>
		<Covol:MarcaComercial>Beta</Covol:MarcaComercial>
		<Covol:RECEPCIONES>
			<Covol:TotalRecepcionesMes>99</Covol:TotalRecepcionesMes>
		</Covol:RECEPCIONES>
	</Covol:Producto>
</Covol:Reporte>`

func TestResolveValues_DirectLookup(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)

	values, err := ResolveValues(tree, "Alpha", Recepciones,
		[]string{"TotalRecepcionesMes", "TotalDocumentosMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if values["TotalRecepcionesMes"] != "10" {
		t.Errorf("expected 10, got %q", values["TotalRecepcionesMes"])
	}
	if values["TotalDocumentosMes"] != "4" {
		t.Errorf("expected 4, got %q", values["TotalDocumentosMes"])
	}
}

func TestResolveValues_BrandScoping(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)

	alpha, err := ResolveValues(tree, "Alpha", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	beta, err := ResolveValues(tree, "Beta", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}

	if alpha["TotalRecepcionesMes"] != "10" {
		t.Errorf("Alpha resolved %q, want 10", alpha["TotalRecepcionesMes"])
	}
	if beta["TotalRecepcionesMes"] != "99" {
		t.Errorf("Beta resolved %q, want 99", beta["TotalRecepcionesMes"])
	}

	// A field that only exists under Beta never leaks into Alpha's scope.
	leak, err := ResolveValues(tree, "Alpha", Recepciones, []string{"TotalDocumentosMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if leak["TotalDocumentosMes"] != "4" {
		t.Errorf("expected Alpha's own value 4, got %q", leak["TotalDocumentosMes"])
	}
}

func TestResolveValues_Idempotent(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)
	fields := []string{"TotalRecepcionesMes", "ValorNumerico", "TotalDocumentosMes"}

	first, err := ResolveValues(tree, "Alpha", Recepciones, fields)
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	second, err := ResolveValues(tree, "Alpha", Recepciones, fields)
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution not idempotent: %v vs %v", first, second)
	}
}

func TestResolveValues_OutputKeysComplete(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)
	fields := []string{"TotalRecepcionesMes", "NoExisteEsteCampo", "ValorNumerico"}

	values, err := ResolveValues(tree, "Alpha", Recepciones, fields)
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if len(values) != len(fields) {
		t.Fatalf("expected %d keys, got %d: %v", len(fields), len(values), values)
	}
	for _, f := range fields {
		if _, ok := values[f]; !ok {
			t.Errorf("missing key %s in result", f)
		}
	}
	if values["NoExisteEsteCampo"] != Absent {
		t.Errorf("expected absent marker for missing field, got %q", values["NoExisteEsteCampo"])
	}
}

func TestResolveValues_FirstMatchWins(t *testing.T) {
	doc := `<Reporte>
		<Producto>
			<MarcaComercial>Alpha</MarcaComercial>
			<RECEPCIONES>
				<TotalRecepcionesMes>primero</TotalRecepcionesMes>
			</RECEPCIONES>
			<RECEPCIONES>
				<TotalRecepcionesMes>segundo</TotalRecepcionesMes>
			</RECEPCIONES>
		</Producto>
	</Reporte>`
	tree := parseDoc(t, doc)

	values, err := ResolveValues(tree, "Alpha", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if values["TotalRecepcionesMes"] != "primero" {
		t.Errorf("expected earlier occurrence to win, got %q", values["TotalRecepcionesMes"])
	}
}

func TestResolveValues_AmbiguousFieldFallbackPath(t *testing.T) {
	doc := `<Reporte>
		<Producto>
			<MarcaComercial>ACME</MarcaComercial>
			<RECEPCIONES>
				<TotalRecepcionesMes>10</TotalRecepcionesMes>
				<SumatorioRecepcionesMes>
					<ValorNumerico>500.0</ValorNumerico>
				</SumatorioRecepcionesMes>
			</RECEPCIONES>
		</Producto>
	</Reporte>`
	tree := parseDoc(t, doc)

	values, err := ResolveValues(tree, "ACME", Recepciones,
		[]string{"TotalRecepcionesMes", "ValorNumerico"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if values["TotalRecepcionesMes"] != "10" {
		t.Errorf("expected 10, got %q", values["TotalRecepcionesMes"])
	}
	if values["ValorNumerico"] != "500.0" {
		t.Errorf("expected fallback path to yield 500.0, got %q", values["ValorNumerico"])
	}
}

func TestResolveValues_EmptyLeafTriggersFallback(t *testing.T) {
	doc := `<Reporte>
		<Producto>
			<MarcaComercial>ACME</MarcaComercial>
			<ENTREGAS>
				<ValorNumerico>   </ValorNumerico>
				<SumatorioEntregasMes>
					<ValorNumerico>123.45</ValorNumerico>
				</SumatorioEntregasMes>
			</ENTREGAS>
		</Producto>
	</Reporte>`
	tree := parseDoc(t, doc)

	values, err := ResolveValues(tree, "ACME", Entregas, []string{"ValorNumerico"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if values["ValorNumerico"] != "123.45" {
		t.Errorf("expected whitespace leaf to be skipped in favor of 123.45, got %q",
			values["ValorNumerico"])
	}
}

func TestResolveValues_FallbackOnlyForAmbiguousField(t *testing.T) {
	// TotalRecepcionesMes nested one level deeper must NOT be found: only
	// ValorNumerico consults the alternate-path table.
	doc := `<Reporte>
		<Producto>
			<MarcaComercial>ACME</MarcaComercial>
			<RECEPCIONES>
				<SumatorioRecepcionesMes>
					<TotalRecepcionesMes>10</TotalRecepcionesMes>
				</SumatorioRecepcionesMes>
			</RECEPCIONES>
		</Producto>
	</Reporte>`
	tree := parseDoc(t, doc)

	values, err := ResolveValues(tree, "ACME", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if values["TotalRecepcionesMes"] != Absent {
		t.Errorf("expected absent marker, got %q", values["TotalRecepcionesMes"])
	}
}

func TestResolveValues_MissingCategoryIsAllAbsent(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)

	values, err := ResolveValues(tree, "Alpha", ControlDeExistencias, []string{"ValorNumerico"})
	if err != nil {
		t.Fatalf("expected no error for absent category, got %v", err)
	}
	if values["ValorNumerico"] != Absent {
		t.Errorf("expected absent marker, got %q", values["ValorNumerico"])
	}
	if Resolved(values) != 0 {
		t.Errorf("expected zero resolved fields, got %d", Resolved(values))
	}
}

func TestResolveValues_UnknownBrandIsAllAbsent(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)

	values, err := ResolveValues(tree, "NoSuchBrand", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("expected no error for unknown brand, got %v", err)
	}
	if Resolved(values) != 0 {
		t.Errorf("expected complete miss, got %v", values)
	}
}

func TestResolveValues_UnsupportedCategory(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)

	_, err := ResolveValues(tree, "Alpha", Category("DEVOLUCIONES"), []string{"ValorNumerico"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	var catErr *UnsupportedCategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected *UnsupportedCategoryError, got %T", err)
	}
	if catErr.Category != "DEVOLUCIONES" {
		t.Errorf("expected offending category in error, got %q", catErr.Category)
	}
}

func TestResolveValues_BrandRedeclarationClosesScope(t *testing.T) {
	// A later sibling redeclaring a different brand must close Alpha's
	// scope before its category node.
	doc := `<Reporte>
		<Grupo>
			<MarcaComercial>Alpha</MarcaComercial>
			<Detalle>
				<MarcaComercial>Beta</MarcaComercial>
				<RECEPCIONES>
					<TotalRecepcionesMes>55</TotalRecepcionesMes>
				</RECEPCIONES>
			</Detalle>
		</Grupo>
	</Reporte>`
	tree := parseDoc(t, doc)

	alpha, err := ResolveValues(tree, "Alpha", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if alpha["TotalRecepcionesMes"] != Absent {
		t.Errorf("expected Beta's subtree to be out of Alpha's scope, got %q",
			alpha["TotalRecepcionesMes"])
	}

	beta, err := ResolveValues(tree, "Beta", Recepciones, []string{"TotalRecepcionesMes"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if beta["TotalRecepcionesMes"] != "55" {
		t.Errorf("expected 55 for Beta, got %q", beta["TotalRecepcionesMes"])
	}
}

func TestResolveValues_BrandWhitespaceNormalized(t *testing.T) {
	doc := `<Reporte>
		<Producto>
			<MarcaComercial>  ACME  </MarcaComercial>
			<CONTROLDEEXISTENCIAS>
				<ValorNumerico>7.5</ValorNumerico>
			</CONTROLDEEXISTENCIAS>
		</Producto>
	</Reporte>`
	tree := parseDoc(t, doc)

	values, err := ResolveValues(tree, " ACME ", ControlDeExistencias, []string{"ValorNumerico"})
	if err != nil {
		t.Fatalf("ResolveValues failed: %v", err)
	}
	if values["ValorNumerico"] != "7.5" {
		t.Errorf("expected trimmed brand comparison to match, got %q", values["ValorNumerico"])
	}
}

func TestAvailableSubtags_CanonicalOrderAndFallback(t *testing.T) {
	doc := `<Reporte>
		<Producto>
			<MarcaComercial>ACME</MarcaComercial>
			<RECEPCIONES>
				<TotalDocumentosMes>4</TotalDocumentosMes>
				<SumatorioRecepcionesMes>
					<ValorNumerico>500.0</ValorNumerico>
				</SumatorioRecepcionesMes>
				<TotalRecepcionesMes>10</TotalRecepcionesMes>
			</RECEPCIONES>
		</Producto>
	</Reporte>`
	tree := parseDoc(t, doc)

	subtags, err := AvailableSubtags(tree, "ACME", Recepciones)
	if err != nil {
		t.Fatalf("AvailableSubtags failed: %v", err)
	}
	want := []string{"TotalRecepcionesMes", "ValorNumerico", "TotalDocumentosMes"}
	if !reflect.DeepEqual(subtags, want) {
		t.Errorf("expected %v in canonical order, got %v", want, subtags)
	}
}

func TestAvailableSubtags_UnsupportedCategory(t *testing.T) {
	tree := parseDoc(t, twoBrandDoc)
	if _, err := AvailableSubtags(tree, "Alpha", Category("OTRA")); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestSubtagsForCategory(t *testing.T) {
	subtags, err := SubtagsForCategory(ControlDeExistencias)
	if err != nil {
		t.Fatalf("SubtagsForCategory failed: %v", err)
	}
	if !reflect.DeepEqual(subtags, []string{"ValorNumerico"}) {
		t.Errorf("unexpected subtags: %v", subtags)
	}

	if _, err := SubtagsForCategory(Category("X")); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
