package openapi

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldmask/pkg/model"
)

// LoadForm loads src, picks the operation with the given id and returns its
// form after running decorators.
func LoadForm(ctx context.Context, loader *Loader, src Source, operationID string, decorators ...model.Decorator) (model.FormModel, error) {
	if loader == nil {
		loader = NewLoader()
	}
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return model.FormModel{}, err
	}
	op, err := NewParser().Operation(ctx, doc, operationID)
	if err != nil {
		return model.FormModel{}, err
	}
	form, err := FormFromOperation(op)
	if err != nil {
		return model.FormModel{}, err
	}
	if err := model.Apply(&form, decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("openapi: decorate %q: %w", operationID, err)
	}
	return form, nil
}

// FormFromOperation converts the operation's request body into a form model.
// Properties are emitted in name order.
func FormFromOperation(op Operation) (model.FormModel, error) {
	form := model.FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
	}
	body := op.RequestBody
	if body.Type == "" && body.Ref == "" && len(body.Properties) == 0 {
		return form, nil
	}
	if err := body.Validate(); err != nil {
		return model.FormModel{}, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
	}
	form.Fields = fieldsFromObject(body)
	return form, nil
}

func fieldsFromObject(schema Schema) []model.Field {
	if len(schema.Properties) == 0 {
		return nil
	}
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, fieldFromSchema(name, schema.Properties[name], required[name]))
	}
	return fields
}

func fieldFromSchema(name string, schema Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Type:        fieldType(schema),
		Format:      schema.Format,
		Required:    required,
		Label:       model.Label(name),
		Description: schema.Description,
		Default:     schema.Default,
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	if example, ok := schema.Example.(string); ok {
		field.Placeholder = example
	}

	switch field.Type {
	case model.FieldTypeObject:
		field.Nested = fieldsFromObject(schema)
	case model.FieldTypeArray:
		if schema.Items != nil {
			item := fieldFromSchema(name, *schema.Items, false)
			field.Items = &item
		}
	}

	if schema.MaxLength != nil {
		setHint(&field, "maxlength", strconv.Itoa(*schema.MaxLength))
	}
	switch strings.ToLower(schema.Format) {
	case "tel", "phone":
		setHint(&field, model.KeyInputType, "tel")
	}
	applyExtensions(&field, schema.Extensions)
	return field
}

func fieldType(schema Schema) model.FieldType {
	switch schema.Type {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "boolean":
		return model.FieldTypeBoolean
	case "array":
		return model.FieldTypeArray
	case "object":
		return model.FieldTypeObject
	case "":
		if len(schema.Properties) > 0 {
			return model.FieldTypeObject
		}
	}
	return model.FieldTypeString
}

func applyExtensions(field *model.Field, ext map[string]any) {
	if len(ext) == 0 {
		return
	}
	if kind, ok := ext["mask"].(string); ok && kind != "" {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string, 1)
		}
		field.Metadata[model.KeyMask] = kind
	}
	if placeholder, ok := ext["placeholder"].(string); ok && placeholder != "" {
		field.Placeholder = placeholder
	}
	if inputType, ok := ext["inputType"].(string); ok && inputType != "" {
		setHint(field, model.KeyInputType, inputType)
	}
	if id, ok := ext["id"].(string); ok && id != "" {
		setHint(field, model.KeyID, id)
	}
}

func setHint(field *model.Field, key, value string) {
	if field.UIHints == nil {
		field.UIHints = make(map[string]string, 1)
	}
	field.UIHints[key] = value
}
