// Package mask implements the input masks applied to Brazilian form fields:
// CPF (NationalID), CNPJ (TaxID), a combined CPF/CNPJ field, phone numbers,
// CEP postal codes and vehicle plates.
//
// Numeric masks share one algorithm: the input is reduced to its digit
// stream and re-punctuated by a Layout of group lengths and separators. The
// output therefore depends only on the digits currently present, never on
// how the value was typed. Check digits are not validated.
package mask
