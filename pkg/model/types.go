package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Metadata and UI hint keys shared by decorators and renderers.
const (
	// KeyMask holds the mask kind resolved for a field.
	KeyMask = "mask"
	// KeyID carries the DOM id a field renders with.
	KeyID = "id"
	// KeyInputType carries the HTML input type (for example "tel").
	KeyInputType = "inputType"
)

// Field models an individual input inside a form. Struct fields are annotated
// so definitions can be loaded from JSON or YAML files.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Nested      []Field           `json:"nested,omitempty" yaml:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty" yaml:"items,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// Mask returns the mask kind attached to the field, if any.
func (f Field) Mask() string {
	if f.Metadata != nil {
		if kind := f.Metadata[KeyMask]; kind != "" {
			return kind
		}
	}
	if f.UIHints != nil {
		return f.UIHints[KeyMask]
	}
	return ""
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId" yaml:"operationId"`
	Endpoint    string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Summary     string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
