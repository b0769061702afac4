package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-fieldmask/pkg/mask"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
	"github.com/goliatone/go-fieldmask/pkg/model"
)

// Renderer collects a form's values from a terminal session. String fields
// with a mask are formatted as the answer is accepted and re-prompted while
// incomplete.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	registry          *matcher.Registry
	submitTransformer SubmitTransformer
	logger            *zap.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// built-in mask rules).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		registry:     matcher.NewRegistry(),
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts every field of form, seeding answers from prefill, and
// returns the serialized values.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, prefill map[string]any) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(prefill)
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, field.Name, state); err != nil {
			return nil, err
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	r.logger.Debug("form collected", zap.String("operation", form.OperationID), zap.Int("fields", len(form.Fields)))
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, path string, state *State) error {
	switch field.Type {
	case model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, path, state)
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return r.promptNumber(ctx, field, path, state)
	case model.FieldTypeArray:
		return r.promptArray(ctx, field, path, state)
	case model.FieldTypeObject:
		return r.promptObject(ctx, field, path, state)
	default:
		if len(field.Enum) > 0 {
			return r.promptEnum(ctx, field, path, state)
		}
		return r.promptString(ctx, field, path, state)
	}
}

// maskFor returns the kind stored on the field, falling back to the
// registry.
func (r *Renderer) maskFor(field model.Field) (mask.Kind, bool) {
	if kind, err := mask.ParseKind(field.Mask()); err == nil {
		return kind, true
	}
	if r.registry == nil {
		return "", false
	}
	return r.registry.Resolve(matcher.FieldAttributes(field))
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, path string, state *State) error {
	kind, masked := r.maskFor(field)
	format := func(s string) string { return s }
	if masked {
		format = kind.Format
	}

	cfg := InputConfig{
		Message: displayLabel(field),
		Default: format(defaultStringValue(state, path, field.Default)),
		Help:    displayHelp(field, kind),
	}
	if masked {
		cfg.Transform = format
	}

	for {
		response, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		value := format(response)

		if strings.TrimSpace(value) == "" {
			if field.Required {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: required", path))
				continue
			}
			return state.SetValue(path, value)
		}
		if masked && !mask.Complete(kind, value) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: incomplete %s %q", path, kind, value))
			cfg.Default = value
			continue
		}
		return state.SetValue(path, value)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, path string, state *State) error {
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultBoolValue(state, path, field.Default),
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	return state.SetValue(path, answer)
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, path string, state *State) error {
	integer := field.Type == model.FieldTypeInteger
	defaultStr := ""
	if current, ok := state.GetValue(path); ok && current != nil {
		defaultStr = fmt.Sprint(current)
	} else if field.Default != nil {
		defaultStr = fmt.Sprint(field.Default)
	}

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultStr,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			if field.Required {
				_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: required", path))
				continue
			}
			return state.SetValue(path, nil)
		}

		var parsed any
		if integer {
			parsed, err = strconv.ParseInt(input, 10, 64)
		} else {
			parsed, err = strconv.ParseFloat(input, 64)
		}
		if err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", path, err))
			continue
		}
		return state.SetValue(path, parsed)
	}
}

func (r *Renderer) promptEnum(ctx context.Context, field model.Field, path string, state *State) error {
	options := make([]string, 0, len(field.Enum))
	for _, value := range field.Enum {
		options = append(options, fmt.Sprint(value))
	}
	defaultIdx := indexOf(options, defaultStringValue(state, path, field.Default))

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", path))
			continue
		}
		return state.SetValue(path, options[idx])
	}
}

func (r *Renderer) promptArray(ctx context.Context, field model.Field, path string, state *State) error {
	if field.Items == nil {
		return fmt.Errorf("tui: array field %s missing items schema", path)
	}

	var items []any
	if existing, ok := state.GetValue(path); ok {
		if list, ok := existing.([]any); ok {
			items = append(items, list...)
		}
	}

	if len(items) == 0 && !field.Required {
		add, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Add " + displayLabel(field) + "?"})
		if err != nil {
			return err
		}
		if !add {
			return state.SetValue(path, []any{})
		}
	}

	for {
		itemPath := fmt.Sprintf("%s.%d", path, len(items))
		if err := r.promptField(ctx, *field.Items, itemPath, state); err != nil {
			return err
		}
		value, _ := state.GetValue(itemPath)
		items = append(items, value)

		more, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Add another?"})
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return state.SetValue(path, items)
}

func (r *Renderer) promptObject(ctx context.Context, field model.Field, path string, state *State) error {
	for _, child := range field.Nested {
		if err := r.promptField(ctx, child, path+"."+child.Name, state); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	case OutputFormatJSON, "":
		return json.Marshal(values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, r.outputFormat)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field, kind mask.Kind) string {
	if field.Description != "" || kind == "" {
		return field.Description
	}
	if field.Placeholder != "" {
		return "Format: " + field.Placeholder
	}
	return "Mask: " + string(kind)
}

func defaultStringValue(state *State, path string, def any) string {
	if v, ok := state.GetValue(path); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if s, ok := def.(string); ok {
		return s
	}
	return ""
}

func defaultBoolValue(state *State, path string, def any) bool {
	if v, ok := state.GetValue(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	b, _ := def.(bool)
	return b
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	case nil:
		out.Set(prefix, "")
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
