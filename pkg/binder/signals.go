package binder

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Signals emitted while binding and formatting fields.
var (
	SignalFieldBound     = capitan.NewSignal("fieldmask.field.bound", "Formatter wired to a field")
	SignalFieldFormatted = capitan.NewSignal("fieldmask.field.formatted", "Field value reformatted after input")
)

// Keys for typed event data.
var (
	KeyBindingID = capitan.NewStringKey("binding_id")
	KeyKind      = capitan.NewStringKey("kind")
	// Lengths are counted in runes, like the caret.
	KeyBefore = capitan.NewIntKey("length_before")
	KeyAfter  = capitan.NewIntKey("length_after")
)

func (b *Binder) emitFieldBound(ctx context.Context, binding Binding) {
	b.signals.Emit(ctx, SignalFieldBound,
		KeyBindingID.Field(binding.ID),
		KeyKind.Field(string(binding.Kind)),
	)
}

func (b *Binder) emitFieldFormatted(ctx context.Context, binding Binding, before, after int) {
	b.signals.Emit(ctx, SignalFieldFormatted,
		KeyBindingID.Field(binding.ID),
		KeyKind.Field(string(binding.Kind)),
		KeyBefore.Field(before),
		KeyAfter.Field(after),
	)
}
