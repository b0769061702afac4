package mask

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a mask. The values double as the `data-mask` attribute values
// and the field names the masks were designed for.
type Kind string

const (
	KindNationalID      Kind = "cpf"
	KindTaxID           Kind = "cnpj"
	KindNationalOrTaxID Kind = "cpf_cnpj"
	KindPhone           Kind = "telefone"
	KindPostalCode      Kind = "cep"
	KindPlate           Kind = "placa"
)

// ErrUnknownKind is returned when a mask name does not match any Kind.
var ErrUnknownKind = errors.New("mask: unknown kind")

type kindSpec struct {
	format    Func
	maxLength int
	complete  []int
}

var kinds = map[Kind]kindSpec{
	KindNationalID:      {format: NationalID, maxLength: 14, complete: []int{11}},
	KindTaxID:           {format: TaxID, maxLength: 18, complete: []int{14}},
	KindNationalOrTaxID: {format: NationalOrTaxID, maxLength: 18, complete: []int{11, 14}},
	KindPhone:           {format: Phone, maxLength: 15, complete: []int{10, 11}},
	KindPostalCode:      {format: PostalCode, maxLength: 9, complete: []int{8}},
	KindPlate:           {format: Plate, maxLength: 8, complete: []int{plateLength}},
}

// Kinds lists the known kinds in matcher precedence order.
func Kinds() []Kind {
	return []Kind{
		KindNationalID,
		KindTaxID,
		KindNationalOrTaxID,
		KindPhone,
		KindPostalCode,
		KindPlate,
	}
}

// ParseKind resolves a mask name, ignoring case and surrounding whitespace.
func ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := kinds[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return kind, nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Formatter returns the formatting function for k.
func (k Kind) Formatter() (Func, bool) {
	entry, ok := kinds[k]
	if !ok {
		return nil, false
	}
	return entry.format, true
}

// Format applies the kind's formatter. Unknown kinds return s unchanged.
func (k Kind) Format(s string) string {
	if fn, ok := k.Formatter(); ok {
		return fn(s)
	}
	return s
}

// MaxLength is the length of a fully formatted value, suitable for a
// maxlength attribute.
func (k Kind) MaxLength() int {
	return kinds[k].maxLength
}

// Complete reports whether s holds an accepted number of significant
// characters for the kind: digits for numeric masks, alphanumerics for
// plates. Check digits are not verified.
func Complete(kind Kind, s string) bool {
	entry, ok := kinds[kind]
	if !ok {
		return false
	}
	var count int
	if kind == KindPlate {
		count = len(alphanumeric(s))
	} else {
		count = len(Digits(s))
	}
	for _, accepted := range entry.complete {
		if count == accepted {
			return true
		}
	}
	return false
}
