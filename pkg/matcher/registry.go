package matcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-fieldmask/pkg/mask"
	"github.com/goliatone/go-fieldmask/pkg/model"
)

// Built-in rule priorities. Higher wins, so the order below is the
// precedence in which the heuristics are tried.
const (
	PriorityNationalID      = 60
	PriorityTaxID           = 50
	PriorityNationalOrTaxID = 40
	PriorityPhone           = 30
	PriorityPostalCode      = 20
	PriorityPlate           = 10
)

// Placeholder templates recognised by the built-in rules, lower-cased.
const (
	PlaceholderNationalID = "000.000.000-00"
	PlaceholderTaxID      = "00.000.000/0001-00"
	PlaceholderPostalCode = "00000-000"
	PlaceholderPlate      = "abc-1234"
)

// PlaceholdersPhone lists the phone placeholder fragments.
var PlaceholdersPhone = []string{"(00)", "0000-0000", "00000-0000"}

// Rule decides whether a mask applies to a field. Name, ID and Placeholder
// arrive lower-cased; Type is passed through untouched.
type Rule func(attrs Attributes) bool

type rule struct {
	kind     mask.Kind
	priority int
	match    Rule
	order    int
}

// Registry selects a mask kind for a field from its attributes. An explicit
// mask attribute naming a known kind wins; otherwise rules are tried by
// descending priority, ties falling back to registration order. A zero
// Registry has no rules and only honours explicit masks.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in heuristics registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a rule for kind. Unknown kinds and nil rules are ignored.
func (r *Registry) Register(kind mask.Kind, priority int, match Rule) {
	if r == nil || match == nil || !kind.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    match,
		order:    len(r.rules),
	})
}

// Resolve returns the mask kind for a field's attributes.
func (r *Registry) Resolve(attrs Attributes) (mask.Kind, bool) {
	if explicit, err := mask.ParseKind(attrs.Mask); err == nil {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})

	normalized := attrs.normalized()
	for _, entry := range rules {
		if entry.match(normalized) {
			return entry.kind, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Every field that resolves to a mask
// gets the kind under Metadata and UIHints, keeping values already present.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if field.Type == "" || field.Type == model.FieldTypeString {
		if kind, ok := r.Resolve(FieldAttributes(field)); ok {
			if field.Metadata == nil {
				field.Metadata = make(map[string]string)
			}
			if field.Metadata[model.KeyMask] == "" {
				field.Metadata[model.KeyMask] = string(kind)
			}
			if field.UIHints == nil {
				field.UIHints = make(map[string]string)
			}
			if field.UIHints[model.KeyMask] == "" {
				field.UIHints[model.KeyMask] = string(kind)
			}
		}
	}

	if field.Items != nil {
		item := r.decorateField(*field.Items)
		field.Items = &item
	}
	if len(field.Nested) > 0 {
		field.Nested = r.decorateFields(field.Nested)
	}
	return field
}

// TokenRule matches when the name or id contains any token, or the
// placeholder contains any placeholder fragment. Inputs are compared
// lower-cased.
func TokenRule(tokens, placeholders []string) Rule {
	tokens = lowerAll(tokens)
	placeholders = lowerAll(placeholders)
	return func(attrs Attributes) bool {
		for _, token := range tokens {
			if attrs.nameOrIDContains(token) {
				return true
			}
		}
		for _, fragment := range placeholders {
			if strings.Contains(attrs.Placeholder, fragment) {
				return true
			}
		}
		return false
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.ToLower(strings.TrimSpace(value)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (r *Registry) registerBuiltins() {
	r.Register(mask.KindNationalID, PriorityNationalID, func(attrs Attributes) bool {
		nameCPF := strings.Contains(attrs.Name, "cpf") && !strings.Contains(attrs.Name, "cnpj")
		idCPF := strings.Contains(attrs.ID, "cpf") && !strings.Contains(attrs.ID, "cnpj")
		return nameCPF || idCPF || strings.Contains(attrs.Placeholder, PlaceholderNationalID)
	})

	r.Register(mask.KindTaxID, PriorityTaxID, TokenRule(
		[]string{"cnpj"},
		[]string{PlaceholderTaxID},
	))

	r.Register(mask.KindNationalOrTaxID, PriorityNationalOrTaxID, TokenRule(
		[]string{"cpf_cnpj"},
		nil,
	))

	phone := TokenRule([]string{"telefone"}, PlaceholdersPhone)
	r.Register(mask.KindPhone, PriorityPhone, func(attrs Attributes) bool {
		return attrs.Type == "tel" || phone(attrs)
	})

	r.Register(mask.KindPostalCode, PriorityPostalCode, TokenRule(
		[]string{"cep"},
		[]string{PlaceholderPostalCode},
	))

	r.Register(mask.KindPlate, PriorityPlate, TokenRule(
		[]string{"placa"},
		[]string{PlaceholderPlate},
	))
}
