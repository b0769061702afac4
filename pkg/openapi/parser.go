package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when no operation carries the requested id.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Parser turns raw documents into operations using kin-openapi.
type Parser struct {
	validate bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithValidation toggles document validation after loading. It is on by
// default.
func WithValidation(enabled bool) ParserOption {
	return func(p *Parser) {
		p.validate = enabled
	}
}

// NewParser constructs a Parser.
func NewParser(options ...ParserOption) *Parser {
	p := &Parser{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Operations converts a Document into a map keyed by operationId. Operations
// without an id are keyed "method:path".
func (p *Parser) Operations(ctx context.Context, doc Document) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collectOperation(operations, "GET", path, item.Get)
		collectOperation(operations, "PUT", path, item.Put)
		collectOperation(operations, "POST", path, item.Post)
		collectOperation(operations, "PATCH", path, item.Patch)
		collectOperation(operations, "DELETE", path, item.Delete)
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

// Operation returns the operation with the given id.
func (p *Parser) Operation(ctx context.Context, doc Document, id string) (Operation, error) {
	operations, err := p.Operations(ctx, doc)
	if err != nil {
		return Operation{}, err
	}
	op, ok := operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q in %s", ErrOperationNotFound, id, doc.Location())
	}
	return op, nil
}

func collectOperation(target map[string]Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		RequestBody: requestSchema(operation.RequestBody),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) Schema {
	if body == nil {
		return Schema{}
	}
	if body.Value == nil {
		return Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) Schema {
	if ref == nil {
		return Schema{}
	}
	if ref.Value == nil {
		return Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Default:     src.Default,
		Example:     src.Example,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items)
		schema.Items = &items
	}
	schema.Extensions = extractExtensions(src.Extensions)
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// ExtensionKey is the vendor extension carrying mask hints on a property:
//
//	x-fieldmask:
//	  mask: cpf
//	  placeholder: 000.000.000-00
//	  inputType: tel
const ExtensionKey = "x-fieldmask"

func extractExtensions(raw map[string]any) map[string]any {
	value, ok := raw[ExtensionKey]
	if !ok {
		return nil
	}
	mapped, ok := value.(map[string]any)
	if !ok || len(mapped) == 0 {
		return nil
	}
	out := make(map[string]any, len(mapped))
	for key, item := range mapped {
		out[key] = item
	}
	return out
}
