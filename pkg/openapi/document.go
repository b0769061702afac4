package openapi

import (
	"errors"
	"fmt"
)

// Document wraps the raw OpenAPI payload and its origin so callers never
// handle kin-openapi types directly.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of an OpenAPI operation a form needs.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// Schema is a request body or property schema.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Description string
	Default     any
	Example     any
	Enum        []any
	Required    []string
	MaxLength   *int
	Properties  map[string]Schema
	Items       *Schema
	Extensions  map[string]any
}

// Validate performs basic sanity checks before building a form.
func (s Schema) Validate() error {
	if s.Type == "" && s.Ref == "" && len(s.Properties) == 0 {
		return errors.New("openapi: schema requires a type, a ref or properties")
	}
	if s.Type == "array" && s.Items == nil {
		return errors.New("openapi: array schema must define items")
	}
	return nil
}

// DebugString summarises the schema for logs.
func (s Schema) DebugString() string {
	summary := fmt.Sprintf("type=%s", s.Type)
	if s.Ref != "" {
		summary += fmt.Sprintf(",ref=%s", s.Ref)
	}
	if len(s.Required) > 0 {
		summary += fmt.Sprintf(",required=%d", len(s.Required))
	}
	if len(s.Properties) > 0 {
		summary += fmt.Sprintf(",properties=%d", len(s.Properties))
	}
	if s.Items != nil {
		summary += ",items=true"
	}
	return summary
}
