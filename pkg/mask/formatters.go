package mask

// Func formats raw field input into its masked representation. Every Func in
// this package is total: any input yields a (possibly empty) string.
type Func func(string) string

var (
	nationalIDLayout = Layout{
		Groups:     []int{3, 3, 3, 2},
		Separators: []string{".", ".", "-"},
	}
	taxIDLayout = Layout{
		Groups:     []int{2, 3, 3, 4, 2},
		Separators: []string{".", ".", "/", "-"},
	}
	landlineLayout = Layout{
		Groups:     []int{2, 4, 4},
		Separators: []string{") ", "-"},
		Prefix:     "(",
	}
	mobileLayout = Layout{
		Groups:     []int{2, 5, 4},
		Separators: []string{") ", "-"},
		Prefix:     "(",
	}
	postalCodeLayout = Layout{
		Groups:     []int{5, 3},
		Separators: []string{"-"},
	}
)

const (
	plateLength          = 7
	plateLetters         = 3
	plateSeparatedLength = plateLength + 1
)

// NationalID formats a CPF: 000.000.000-00.
func NationalID(s string) string {
	return nationalIDLayout.Apply(Digits(s))
}

// TaxID formats a CNPJ: 00.000.000/0000-00.
func TaxID(s string) string {
	return taxIDLayout.Apply(Digits(s))
}

// NationalOrTaxID formats as CPF up to 11 digits and as CNPJ past that, so a
// value switches family when the 12th digit arrives.
func NationalOrTaxID(s string) string {
	if len(Digits(s)) <= nationalIDLayout.MaxDigits() {
		return NationalID(s)
	}
	return TaxID(s)
}

// Phone formats landlines as (00) 0000-0000 and mobiles as (00) 00000-0000,
// picking the layout from the current digit count.
func Phone(s string) string {
	digits := Digits(s)
	if len(digits) <= landlineLayout.MaxDigits() {
		return landlineLayout.Apply(digits)
	}
	return mobileLayout.Apply(digits)
}

// PostalCode formats a CEP: 00000-000.
func PostalCode(s string) string {
	return postalCodeLayout.Apply(Digits(s))
}

// Plate formats vehicle plates. Up to seven characters the legacy ABC-1234
// layout is applied when the whole value is three letters followed by one to
// four digits; anything else is returned as typed. Longer input is cut to the
// first seven characters without a separator (Mercosul, ABC1D23).
//
// A seven character Mercosul plate goes through the legacy branch and comes
// back unseparated because the legacy pattern does not match it.
func Plate(s string) string {
	value := alphanumeric(s)
	if len(value) > plateLength {
		return value[:plateLength]
	}
	if isLegacyPlate(value) {
		value = value[:plateLetters] + "-" + value[plateLetters:]
	}
	if len(value) > plateSeparatedLength {
		value = value[:plateSeparatedLength]
	}
	return value
}

// isLegacyPlate matches ^[A-Z]{3}[0-9]{1,4}$ on an upper-cased alphanumeric
// value.
func isLegacyPlate(value string) bool {
	if len(value) <= plateLetters || len(value) > plateLength {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if i < plateLetters {
			if c < 'A' || c > 'Z' {
				return false
			}
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
