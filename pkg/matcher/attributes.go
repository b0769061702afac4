package matcher

import (
	"strings"

	"github.com/goliatone/go-fieldmask/pkg/model"
)

// Attribute names read from host elements.
const (
	AttrName        = "name"
	AttrID          = "id"
	AttrPlaceholder = "placeholder"
	AttrType        = "type"
	AttrMask        = "data-mask"
)

// Attributes are the field properties the heuristics inspect.
type Attributes struct {
	Name        string
	ID          string
	Placeholder string
	Type        string
	// Mask is an explicit mask kind, taken from the data-mask attribute or
	// model metadata. It bypasses the heuristics when it names a known kind.
	Mask string
}

// AttributesOf reads the matcher attributes from a host element.
func AttributesOf(el Element) Attributes {
	if el == nil {
		return Attributes{}
	}
	return Attributes{
		Name:        el.Attr(AttrName),
		ID:          el.Attr(AttrID),
		Placeholder: el.Attr(AttrPlaceholder),
		Type:        el.Attr(AttrType),
		Mask:        el.Attr(AttrMask),
	}
}

// FieldAttributes maps a model field onto matcher attributes. The id and
// input type come from metadata or UI hints; the placeholder falls back to
// the placeholder UI hint.
func FieldAttributes(field model.Field) Attributes {
	placeholder := field.Placeholder
	if placeholder == "" {
		placeholder = lookup(field, "placeholder")
	}
	return Attributes{
		Name:        field.Name,
		ID:          lookup(field, model.KeyID),
		Placeholder: placeholder,
		Type:        lookup(field, model.KeyInputType),
		Mask:        field.Mask(),
	}
}

func lookup(field model.Field, key string) string {
	if value := strings.TrimSpace(field.Metadata[key]); value != "" {
		return value
	}
	return strings.TrimSpace(field.UIHints[key])
}

func (a Attributes) normalized() Attributes {
	return Attributes{
		Name:        strings.ToLower(a.Name),
		ID:          strings.ToLower(a.ID),
		Placeholder: strings.ToLower(a.Placeholder),
		Type:        a.Type,
		Mask:        strings.ToLower(strings.TrimSpace(a.Mask)),
	}
}

func (a Attributes) nameOrIDContains(token string) bool {
	return strings.Contains(a.Name, token) || strings.Contains(a.ID, token)
}
