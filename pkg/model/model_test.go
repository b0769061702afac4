package model

import (
	"errors"
	"testing"
)

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"cpf_cnpj":      "Cpf Cnpj",
		"zipCode":       "Zip Code",
		"veiculo-placa": "Veiculo Placa",
		"telefone":      "Telefone",
		"":              "",
		"__":            "",
	}
	for input, want := range cases {
		if got := Label(input); got != want {
			t.Fatalf("Label(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestField_Mask(t *testing.T) {
	if got := (Field{Metadata: map[string]string{KeyMask: "cpf"}}).Mask(); got != "cpf" {
		t.Fatalf("metadata mask: got %q", got)
	}
	if got := (Field{UIHints: map[string]string{KeyMask: "cep"}}).Mask(); got != "cep" {
		t.Fatalf("ui hint mask: got %q", got)
	}
	if got := (Field{}).Mask(); got != "" {
		t.Fatalf("no mask expected, got %q", got)
	}
}

func TestApply_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Apply(&FormModel{},
		DecoratorFunc(func(*FormModel) error { calls++; return boom }),
		nil,
		DecoratorFunc(func(*FormModel) error { calls++; return nil }),
	)
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("decorators after an error must not run, calls=%d", calls)
	}
}
