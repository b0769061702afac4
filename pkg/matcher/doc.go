// Package matcher decides which mask a field receives and binds it.
//
// The Registry resolves a mask kind from a field's name, id, placeholder and
// type attributes using priority-ordered rules; the built-in rules are, in
// order: CPF, CNPJ, combined CPF/CNPJ, phone, CEP and plate. An explicit
// data-mask attribute naming a kind overrides them. The Registry also
// implements model.Decorator so form models carry the resolved kind.
//
// The Matcher applies the Registry to a live document. Scan runs once when
// the document is ready; OnElementsAdded receives every inserted subtree,
// recursing into its descendants. Both skip fields that are already bound.
package matcher
