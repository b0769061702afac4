package model

// Decorator enriches a form model with additional metadata after it has been
// loaded.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Apply runs decorators in order, stopping at the first error.
func Apply(form *FormModel, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
