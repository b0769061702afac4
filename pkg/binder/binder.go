package binder

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldmask/pkg/mask"
)

// Field is a live, text-bearing input. Implementations must be comparable
// (typically pointers) because bindings are keyed by field identity.
type Field interface {
	Value() string
	SetValue(string)
	// Caret is the cursor offset, in runes.
	Caret() int
	SetCaret(int)
	// OnInput subscribes fn to content-change notifications.
	OnInput(fn func())
}

// Binding records the formatter wired to a field.
type Binding struct {
	ID     string
	Kind   mask.Kind
	Format mask.Func
}

// Binder wires formatters to fields. Each field is bound at most once; the
// registry of bound fields lives here rather than on the fields themselves.
type Binder struct {
	mu       sync.Mutex
	bindings map[Field]Binding
	logger   *zap.Logger
	signals  *capitan.Capitan
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger used for binding diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSignals routes binding signals to c instead of the default capitan
// instance.
func WithSignals(c *capitan.Capitan) Option {
	return func(b *Binder) {
		if c != nil {
			b.signals = c
		}
	}
}

// New constructs an empty Binder.
func New(options ...Option) *Binder {
	b := &Binder{
		bindings: make(map[Field]Binding),
		logger:   zap.NewNop(),
		signals:  capitan.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Bind wires format to field and reports whether a new binding was created.
// Binding an already bound field is a no-op, whatever the formatter.
func (b *Binder) Bind(field Field, format mask.Func) bool {
	return b.bind(field, "", format)
}

// BindKind binds the formatter registered for kind. Unknown kinds are not
// bound.
func (b *Binder) BindKind(field Field, kind mask.Kind) bool {
	format, ok := kind.Formatter()
	if !ok {
		return false
	}
	return b.bind(field, kind, format)
}

func (b *Binder) bind(field Field, kind mask.Kind, format mask.Func) bool {
	if b == nil || field == nil || format == nil {
		return false
	}

	b.mu.Lock()
	if _, exists := b.bindings[field]; exists {
		b.mu.Unlock()
		return false
	}
	binding := Binding{ID: uuid.NewString(), Kind: kind, Format: format}
	b.bindings[field] = binding
	b.mu.Unlock()

	field.OnInput(func() {
		b.apply(field, binding)
	})

	if current := field.Value(); current != "" {
		field.SetValue(format(current))
	}

	b.logger.Debug("field bound",
		zap.String("binding", binding.ID),
		zap.String("kind", string(kind)),
	)
	b.emitFieldBound(context.Background(), binding)
	return true
}

// apply runs one formatting pass and keeps the caret at the same position
// relative to the separators that were added or removed.
func (b *Binder) apply(field Field, binding Binding) {
	caret := field.Caret()
	before := field.Value()
	after := binding.Format(before)
	field.SetValue(after)

	oldLen := utf8.RuneCountInString(before)
	newLen := utf8.RuneCountInString(after)
	next := caret + newLen - oldLen
	if next < 0 {
		next = 0
	}
	if next > newLen {
		next = newLen
	}
	field.SetCaret(next)

	b.emitFieldFormatted(context.Background(), binding, oldLen, newLen)
}

// Bound reports whether field has a binding.
func (b *Binder) Bound(field Field) bool {
	_, ok := b.Lookup(field)
	return ok
}

// Lookup returns the binding for field.
func (b *Binder) Lookup(field Field) (Binding, bool) {
	if b == nil || field == nil {
		return Binding{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	binding, ok := b.bindings[field]
	return binding, ok
}

// Len reports how many fields are bound.
func (b *Binder) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bindings)
}
