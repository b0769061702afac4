package mask

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("  CPF_CNPJ ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if kind != KindNationalOrTaxID {
		t.Fatalf("want %q, got %q", KindNationalOrTaxID, kind)
	}

	if _, err := ParseKind("rg"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestKinds_AllResolvable(t *testing.T) {
	var names []string
	for _, kind := range Kinds() {
		if !kind.Valid() {
			t.Fatalf("kind %q not registered", kind)
		}
		if _, ok := kind.Formatter(); !ok {
			t.Fatalf("kind %q has no formatter", kind)
		}
		names = append(names, string(kind))
	}
	want := []string{"cpf", "cnpj", "cpf_cnpj", "telefone", "cep", "placa"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestKind_MaxLengthMatchesFormattedWidth(t *testing.T) {
	samples := map[Kind]string{
		KindNationalID:      "99999999999",
		KindTaxID:           "99999999999999",
		KindNationalOrTaxID: "99999999999999",
		KindPhone:           "99999999999",
		KindPostalCode:      "99999999",
		KindPlate:           "ABC9999",
	}
	for kind, sample := range samples {
		if got := len(kind.Format(sample)); got != kind.MaxLength() {
			t.Fatalf("%s: formatted width %d, MaxLength %d", kind, got, kind.MaxLength())
		}
	}
}

func TestKind_FormatUnknownPassesThrough(t *testing.T) {
	if got := Kind("rg").Format("12.345"); got != "12.345" {
		t.Fatalf("unknown kind should not alter input, got %q", got)
	}
}

func TestComplete(t *testing.T) {
	cases := []struct {
		kind  Kind
		input string
		want  bool
	}{
		{KindNationalID, "123.456.789-01", true},
		{KindNationalID, "123.456.789-0", false},
		{KindTaxID, "12.345.678/0001-95", true},
		{KindNationalOrTaxID, "12345678901", true},
		{KindNationalOrTaxID, "123456789012", false},
		{KindNationalOrTaxID, "12345678000195", true},
		{KindPhone, "(11) 3456-7890", true},
		{KindPhone, "(11) 98765-4321", true},
		{KindPhone, "(11) 9876", false},
		{KindPostalCode, "01310-100", true},
		{KindPlate, "ABC-1234", true},
		{KindPlate, "ABC1D23", true},
		{KindPlate, "ABC-12", false},
		{Kind("rg"), "123", false},
	}
	for _, tc := range cases {
		if got := Complete(tc.kind, tc.input); got != tc.want {
			t.Fatalf("Complete(%s, %q): want %v, got %v", tc.kind, tc.input, tc.want, got)
		}
	}
}
