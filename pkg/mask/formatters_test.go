package mask

import (
	"strings"
	"testing"
)

func TestFormatters(t *testing.T) {
	cases := []struct {
		name   string
		format Func
		input  string
		want   string
	}{
		{name: "cpf empty", format: NationalID, input: "", want: ""},
		{name: "cpf no digits", format: NationalID, input: "abc", want: ""},
		{name: "cpf first group", format: NationalID, input: "123", want: "123"},
		{name: "cpf second group", format: NationalID, input: "1234", want: "123.4"},
		{name: "cpf check digit started", format: NationalID, input: "1234567890", want: "123.456.789-0"},
		{name: "cpf complete", format: NationalID, input: "12345678901", want: "123.456.789-01"},
		{name: "cpf overflow", format: NationalID, input: "123.456.789-0123", want: "123.456.789-01"},
		{name: "cnpj partial", format: TaxID, input: "123", want: "12.3"},
		{name: "cnpj branch", format: TaxID, input: "123456789", want: "12.345.678/9"},
		{name: "cnpj without dash", format: TaxID, input: "123456780001", want: "12.345.678/0001"},
		{name: "cnpj complete", format: TaxID, input: "12345678000195", want: "12.345.678/0001-95"},
		{name: "cnpj overflow", format: TaxID, input: "12.345.678/0001-9599", want: "12.345.678/0001-95"},
		{name: "combined as cpf", format: NationalOrTaxID, input: "12345678901", want: "123.456.789-01"},
		{name: "combined switches on 12th digit", format: NationalOrTaxID, input: "123.456.789-012", want: "12.345.678/9012"},
		{name: "phone single digit", format: Phone, input: "1", want: "1"},
		{name: "phone area code", format: Phone, input: "11", want: "11"},
		{name: "phone area code overflow", format: Phone, input: "119", want: "(11) 9"},
		{name: "phone landline partial", format: Phone, input: "113456", want: "(11) 3456"},
		{name: "phone landline dash", format: Phone, input: "1134567", want: "(11) 3456-7"},
		{name: "phone landline", format: Phone, input: "1134567890", want: "(11) 3456-7890"},
		{name: "phone mobile", format: Phone, input: "11987654321", want: "(11) 98765-4321"},
		{name: "phone reformat mobile", format: Phone, input: "(11) 9876-54321", want: "(11) 98765-4321"},
		{name: "phone overflow", format: Phone, input: "119876543210", want: "(11) 98765-4321"},
		{name: "cep partial", format: PostalCode, input: "01310", want: "01310"},
		{name: "cep dash", format: PostalCode, input: "013101", want: "01310-1"},
		{name: "cep complete", format: PostalCode, input: "01310100", want: "01310-100"},
		{name: "cep overflow", format: PostalCode, input: "0131010099", want: "01310-100"},
		{name: "plate legacy", format: Plate, input: "abc1234", want: "ABC-1234"},
		{name: "plate legacy already separated", format: Plate, input: "abc-1234", want: "ABC-1234"},
		{name: "plate legacy partial", format: Plate, input: "abc1", want: "ABC-1"},
		{name: "plate letters only", format: Plate, input: "ab", want: "AB"},
		{name: "plate three letters", format: Plate, input: "abc", want: "ABC"},
		{name: "plate strips punctuation", format: Plate, input: "a b-c 1 2", want: "ABC-12"},
		{name: "plate mercosul", format: Plate, input: "abc1d23", want: "ABC1D23"},
		{name: "plate mercosul overflow", format: Plate, input: "abc1d234", want: "ABC1D23"},
		{name: "plate legacy overflow", format: Plate, input: "abc12345", want: "ABC1234"},
		{name: "plate digits first", format: Plate, input: "1234abc", want: "1234ABC"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.format(tc.input); got != tc.want {
				t.Fatalf("format(%q): want %q, got %q", tc.input, tc.want, got)
			}
		})
	}
}

// A seven character Mercosul plate reaches the legacy branch and is only left
// unseparated because the legacy pattern rejects the letter in position five.
func TestPlate_MercosulBoundaryUsesLegacyBranch(t *testing.T) {
	value := "ABC1D23"
	if len(alphanumeric(value)) != plateLength {
		t.Fatalf("fixture must sit on the %d character boundary", plateLength)
	}
	if isLegacyPlate(value) {
		t.Fatalf("legacy pattern must reject %q", value)
	}
	if got := Plate(value); got != value {
		t.Fatalf("Plate(%q): want unchanged, got %q", value, got)
	}
}

func TestFormatters_Idempotent(t *testing.T) {
	inputs := []string{"12345678901", "12345678000195", "11987654321", "1134567890", "01310100", "abc1234", "abc1d23"}
	formatters := map[string]Func{
		"cpf":      NationalID,
		"cnpj":     TaxID,
		"cpf_cnpj": NationalOrTaxID,
		"telefone": Phone,
		"cep":      PostalCode,
		"placa":    Plate,
	}
	for name, format := range formatters {
		for _, input := range inputs {
			once := format(input)
			if twice := format(once); twice != once {
				t.Fatalf("%s not idempotent for %q: %q then %q", name, input, once, twice)
			}
		}
	}
}

func TestNationalOrTaxID_Dispatch(t *testing.T) {
	for n := 0; n <= 16; n++ {
		input := strings.Repeat("7", n)
		got := NationalOrTaxID(input)
		want := NationalID(input)
		if n > 11 {
			want = TaxID(input)
		}
		if got != want {
			t.Fatalf("%d digits: want %q, got %q", n, want, got)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("(11) 9८7-65a4"); got != "1197654" {
		t.Fatalf("Digits: want %q, got %q", "1197654", got)
	}
}

func FuzzDigitStreamInvariant(f *testing.F) {
	for _, seed := range []string{"", "123.456.789-01", "12345678000195999", "(11) 98765-4321", "abc1d23", "०१२"} {
		f.Add(seed)
	}
	layouts := []struct {
		format Func
		max    int
	}{
		{NationalID, 11},
		{TaxID, 14},
		{Phone, 11},
		{PostalCode, 8},
	}
	f.Fuzz(func(t *testing.T, input string) {
		digits := Digits(input)
		for _, layout := range layouts {
			want := digits
			if len(want) > layout.max {
				want = want[:layout.max]
			}
			if got := Digits(layout.format(input)); got != want {
				t.Fatalf("digits of formatted %q: want %q, got %q", input, want, got)
			}
		}
		if plate := Plate(input); len(plate) > plateSeparatedLength {
			t.Fatalf("plate %q exceeds %d characters", plate, plateSeparatedLength)
		}
	})
}
