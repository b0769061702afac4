package openapi

import (
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldmask/pkg/matcher"
	"github.com/goliatone/go-fieldmask/pkg/model"
	"github.com/goliatone/go-fieldmask/pkg/testsupport"
)

func loadFixture(t *testing.T) Document {
	t.Helper()
	doc, err := NewLoader().Load(context.Background(), SourceFromFile("testdata/oficina.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestParser_Operations(t *testing.T) {
	ops, err := NewParser().Operations(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	got := map[string]string{}
	for id, op := range ops {
		got[id] = op.Method + " " + op.Path
	}
	want := map[string]string{
		"createCliente":  "POST /clientes",
		"post:/veiculos": "POST /veiculos",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestParser_OperationNotFound(t *testing.T) {
	_, err := NewParser().Operation(context.Background(), loadFixture(t), "deleteCliente")
	if !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("want ErrOperationNotFound, got %v", err)
	}
}

func TestFormFromOperation_BuildsFields(t *testing.T) {
	op, err := NewParser().Operation(context.Background(), loadFixture(t), "createCliente")
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	form, err := FormFromOperation(op)
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	want := []model.Field{
		{Name: "contato", Type: model.FieldTypeString, Format: "tel", Label: "Contato",
			UIHints: map[string]string{model.KeyInputType: "tel"}},
		{Name: "cpf", Type: model.FieldTypeString, Required: true, Label: "Cpf", Placeholder: "000.000.000-00"},
		{Name: "documento", Type: model.FieldTypeString, Label: "Documento",
			Metadata: map[string]string{model.KeyMask: "cpf_cnpj"}},
		{Name: "endereco", Type: model.FieldTypeObject, Label: "Endereco", Nested: []model.Field{
			{Name: "cep", Type: model.FieldTypeString, Label: "Cep", UIHints: map[string]string{"maxlength": "9"}},
			{Name: "numero", Type: model.FieldTypeInteger, Label: "Numero"},
		}},
		{Name: "nome", Type: model.FieldTypeString, Required: true, Label: "Nome"},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if form.Method != "POST" || form.Endpoint != "/clientes" || form.Summary != "Cadastrar cliente" {
		t.Fatalf("form header: %+v", form)
	}
}

func TestLoadForm_DecoratesMasks(t *testing.T) {
	files := fstest.MapFS{}
	raw, err := os.ReadFile("testdata/oficina.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	files["specs/oficina.yaml"] = &fstest.MapFile{Data: raw}

	loader := NewLoader(WithFileSystem(files))
	registry := matcher.NewRegistry()

	cliente, err := LoadForm(context.Background(), loader, SourceFromFS("specs/oficina.yaml"), "createCliente", registry)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	got := map[string]string{}
	for _, field := range cliente.Fields {
		got[field.Name] = field.Mask()
	}
	got["endereco.cep"] = cliente.Fields[3].Nested[0].Mask()
	want := map[string]string{
		"contato":      "telefone",
		"cpf":          "cpf",
		"documento":    "cpf_cnpj",
		"endereco":     "",
		"endereco.cep": "cep",
		"nome":         "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("masks mismatch (-want +got):\n%s", diff)
	}

	veiculo, err := LoadForm(context.Background(), loader, SourceFromFS("specs/oficina.yaml"), "post:/veiculos", registry)
	if err != nil {
		t.Fatalf("load veiculo form: %v", err)
	}
	items := veiculo.Fields[0].Items
	if items == nil || items.Mask() != "placa" {
		t.Fatalf("array items should be masked as placa: %+v", items)
	}
}

func TestLoader_Errors(t *testing.T) {
	if _, err := NewLoader().Load(context.Background(), SourceFromFS("x.yaml")); err == nil {
		t.Fatalf("fs source without filesystem should fail")
	}
	if _, err := NewLoader().Load(context.Background(), SourceFromFile("testdata/missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want not-exist error, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader().Load(ctx, SourceFromFile("testdata/oficina.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestLoadForm_MatchesGolden(t *testing.T) {
	form, err := LoadForm(context.Background(), nil, SourceFromFile("testdata/oficina.yaml"), "createCliente", matcher.NewRegistry())
	if err != nil {
		t.Fatalf("load form: %v", err)
	}

	golden := "testdata/create_cliente.golden.json"
	testsupport.WriteFormModel(t, golden, form)
	want := testsupport.MustLoadFormModel(t, golden)
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}
