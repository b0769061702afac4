package matcher

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-fieldmask/pkg/binder"
)

// Element is a node of the host document. Text inputs must also implement
// binder.Field to be bound.
type Element interface {
	Attr(name string) string
	// IsInput reports whether the element is a text-bearing input.
	IsInput() bool
	// EachDescendant visits every element below this one, depth first.
	EachDescendant(visit func(Element))
}

// Subscriber receives batches of elements inserted into a document after it
// was first scanned.
type Subscriber interface {
	OnElementsAdded(batch []Element)
}

// Matcher binds masks to the inputs of a document: once for the whole tree
// when the document is ready, then for every inserted subtree.
type Matcher struct {
	registry *Registry
	binder   *binder.Binder
	logger   *zap.Logger
}

var _ Subscriber = (*Matcher)(nil)

// Option configures a Matcher.
type Option func(*Matcher)

// WithRegistry replaces the built-in registry.
func WithRegistry(registry *Registry) Option {
	return func(m *Matcher) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithLogger sets the logger used for match diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New constructs a Matcher that records bindings in b. A nil binder gets a
// fresh one.
func New(b *binder.Binder, options ...Option) *Matcher {
	m := &Matcher{
		registry: NewRegistry(),
		binder:   b,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	if m.binder == nil {
		m.binder = binder.New(binder.WithLogger(m.logger))
	}
	return m
}

// Binder exposes the binder holding this matcher's bindings.
func (m *Matcher) Binder() *binder.Binder {
	return m.binder
}

// Registry exposes the rule registry.
func (m *Matcher) Registry() *Registry {
	return m.registry
}

// Scan is the document-ready pass: root and every descendant are checked.
// It returns the number of fields newly bound.
func (m *Matcher) Scan(root Element) int {
	if root == nil {
		return 0
	}
	bound := m.visit(root)
	m.logger.Debug("document scanned", zap.Int("bound", bound))
	return bound
}

// OnElementsAdded handles a batch of inserted elements, including inputs
// nested anywhere inside them.
func (m *Matcher) OnElementsAdded(batch []Element) {
	bound := 0
	for _, el := range batch {
		if el == nil {
			continue
		}
		bound += m.visit(el)
	}
	if bound > 0 {
		m.logger.Debug("inserted elements bound", zap.Int("batch", len(batch)), zap.Int("bound", bound))
	}
}

func (m *Matcher) visit(root Element) int {
	bound := 0
	if m.Check(root) {
		bound++
	}
	root.EachDescendant(func(el Element) {
		if m.Check(el) {
			bound++
		}
	})
	return bound
}

// Check binds a single element when it is an unbound input whose attributes
// resolve to a mask. Bound fields are never re-evaluated.
func (m *Matcher) Check(el Element) bool {
	if el == nil || !el.IsInput() {
		return false
	}
	field, ok := el.(binder.Field)
	if !ok || m.binder.Bound(field) {
		return false
	}
	attrs := AttributesOf(el)
	kind, ok := m.registry.Resolve(attrs)
	if !ok {
		return false
	}
	if !m.binder.BindKind(field, kind) {
		return false
	}
	m.logger.Debug("mask bound",
		zap.String("kind", string(kind)),
		zap.String("name", attrs.Name),
		zap.String("id", attrs.ID),
	)
	return true
}
