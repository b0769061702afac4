package dom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldmask/pkg/mask"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

const clientForm = `<form id="cliente">
  <input name="nome" id="id_nome">
  <input name="cpf" id="id_cpf" value="12345678901">
  <div class="row">
    <input name="contato" type="tel" id="id_contato">
    <input name="cep" id="id_cep" placeholder="00000-000">
  </div>
</form>`

type recorder struct {
	batches [][]matcher.Element
}

func (r *recorder) OnElementsAdded(batch []matcher.Element) {
	r.batches = append(r.batches, batch)
}

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestParse_ScanFormatsPrefilledAndTypedValues(t *testing.T) {
	doc := mustParse(t, clientForm)
	m := matcher.New(nil)

	if got := m.Scan(doc.Root()); got != 3 {
		t.Fatalf("want 3 bound inputs, got %d", got)
	}

	if got := doc.ElementByID("id_cpf").Value(); got != "123.456.789-01" {
		t.Fatalf("prefilled cpf: got %q", got)
	}

	phone := doc.ElementByID("id_contato")
	phone.Type("11987654321")
	if got := phone.Value(); got != "(11) 98765-4321" {
		t.Fatalf("phone: got %q", got)
	}
	if phone.Caret() != len("(11) 98765-4321") {
		t.Fatalf("phone caret: got %d", phone.Caret())
	}

	if doc.ElementByID("id_nome").ListenerCount() != 0 {
		t.Fatalf("unmatched input must stay unbound")
	}
}

func TestElement_KeystrokesMoveCaretPastSeparators(t *testing.T) {
	doc := New()
	m := matcher.New(nil)
	doc.Subscribe(m)

	field := NewElement("input", map[string]string{"name": "cpf"})
	doc.Body().AppendChild(field)

	var carets []int
	for _, r := range "1234" {
		field.Type(string(r))
		carets = append(carets, field.Caret())
	}
	if field.Value() != "123.4" {
		t.Fatalf("value: got %q", field.Value())
	}
	if diff := cmp.Diff([]int{1, 2, 3, 5}, carets); diff != "" {
		t.Fatalf("caret trail mismatch (-want +got):\n%s", diff)
	}

	field.Backspace()
	if field.Value() != "123" || field.Caret() != 3 {
		t.Fatalf("after backspace: value %q caret %d", field.Value(), field.Caret())
	}
}

func TestAppend_DeliversOneBatchWithNestedInputs(t *testing.T) {
	doc := New()
	rec := &recorder{}
	doc.Subscribe(rec)

	row := NewElement("div", nil)
	plate := NewElement("input", map[string]string{"id": "id_placa"})
	row.AppendChild(plate)
	if len(rec.batches) != 0 {
		t.Fatalf("detached appends must not notify")
	}

	cep := NewElement("input", map[string]string{"name": "cep"})
	doc.Body().Append(row, cep)

	if len(rec.batches) != 1 || len(rec.batches[0]) != 2 {
		t.Fatalf("want one batch of two, got %+v", rec.batches)
	}
	if !plate.Attached() {
		t.Fatalf("nested element not adopted")
	}

	m := matcher.New(nil)
	m.OnElementsAdded(rec.batches[0])
	plate.Type("abc1234")
	if plate.Value() != "ABC-1234" {
		t.Fatalf("nested plate: got %q", plate.Value())
	}
}

func TestAppend_SkipsAncestors(t *testing.T) {
	doc := New()
	rec := &recorder{}
	doc.Subscribe(rec)

	outer := NewElement("div", nil)
	inner := NewElement("div", nil)
	outer.AppendChild(inner)
	doc.Body().AppendChild(outer)
	rec.batches = nil

	inner.AppendChild(outer)
	inner.AppendChild(inner)

	if outer.Parent() != doc.Body() || !outer.Attached() {
		t.Fatalf("ancestor was moved: parent %v attached %v", outer.Parent(), outer.Attached())
	}
	if len(inner.Children()) != 0 {
		t.Fatalf("cycle created: inner has %d children", len(inner.Children()))
	}
	if len(rec.batches) != 0 {
		t.Fatalf("skipped appends must not notify, got %d batches", len(rec.batches))
	}

	visited := 0
	doc.Root().Walk(func(*Element) { visited++ })
	if visited != 4 {
		t.Fatalf("want head, body, outer, inner; visited %d", visited)
	}
}

func TestRemove_DetachesSubtree(t *testing.T) {
	doc := mustParse(t, clientForm)
	form := doc.ElementByID("cliente")
	form.Remove()

	if form.Attached() || form.Parent() != nil {
		t.Fatalf("form still attached")
	}
	if len(doc.Inputs()) != 0 {
		t.Fatalf("removed inputs still reachable")
	}
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "id_cpf") {
		t.Fatalf("removed form rendered: %s", buf.String())
	}
}

func TestAnnotate_RendersMaskAttributes(t *testing.T) {
	doc := mustParse(t, clientForm)
	m := matcher.New(nil)
	m.Scan(doc.Root())

	if got := doc.Annotate(m.Binder()); got != 3 {
		t.Fatalf("want 3 annotated inputs, got %d", got)
	}

	cep := doc.ElementByID("id_cep")
	want := map[string]string{
		"data-mask": string(mask.KindPostalCode),
		"maxlength": "9",
	}
	got := map[string]string{
		"data-mask": cep.Attr("data-mask"),
		"maxlength": cep.Attr("maxlength"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cep attributes mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `value="123.456.789-01"`) {
		t.Fatalf("formatted value not rendered: %s", buf.String())
	}
}

func TestSetCaret_Clamps(t *testing.T) {
	el := NewElement("input", map[string]string{"value": "abc"})
	el.SetCaret(10)
	if el.Caret() != 3 {
		t.Fatalf("want 3, got %d", el.Caret())
	}
	el.SetCaret(-1)
	if el.Caret() != 0 {
		t.Fatalf("want 0, got %d", el.Caret())
	}
}

func TestParseSanitized_StripsScriptsKeepsMaskAttributes(t *testing.T) {
	markup := `<form><input name="cpf" data-mask="cpf" onfocus="steal()"><script>alert(1)</script></form>`
	doc, err := ParseSanitized(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	inputs := doc.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("want one input, got %d", len(inputs))
	}
	if inputs[0].Attr("data-mask") != "cpf" || inputs[0].Attr("name") != "cpf" {
		t.Fatalf("mask attributes dropped")
	}
	if inputs[0].Attr("onfocus") != "" {
		t.Fatalf("event handler kept")
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "alert") {
		t.Fatalf("script survived sanitizing: %s", buf.String())
	}
}
