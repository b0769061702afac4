package tui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one path=value line per answer.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat maps a flag or config value onto an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, nil
	case "":
		return OutputFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithRegistry resolves masks for fields that carry no explicit kind.
func WithRegistry(registry *matcher.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
