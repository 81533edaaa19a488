package berth

// Decorator wraps a service instance in another instance satisfying the same
// contract. Build decorators with NewDecorator or NewDecoratorE so the
// contract is enforced with a typed check instead of a blind cast.
type Decorator struct {
	name  string
	apply func(inner any) (any, error)
}

// Name returns the decorator's name, used in contract violation errors.
func (d Decorator) Name() string {
	return d.name
}

// NewDecorator creates a decorator from a constructor that cannot fail.
// T is the service contract: the constructor only ever sees an inner layer
// satisfying T, and its output satisfies T by construction.
func NewDecorator[T any](name string, construct func(inner T) T) Decorator {
	return NewDecoratorE(name, func(inner T) (T, error) {
		return construct(inner), nil
	})
}

// NewDecoratorE creates a decorator from a constructor that may fail.
func NewDecoratorE[T any](name string, construct func(inner T) (T, error)) Decorator {
	return Decorator{
		name: name,
		apply: func(inner any) (any, error) {
			typed, ok := inner.(T)
			if !ok {
				return nil, ErrDecoratorContract(name, inner)
			}

			return construct(typed)
		},
	}
}

// Compose wraps base with the decorator chain. Decorators are applied in
// reverse declaration order, so the first decorator in the list ends up as
// the outermost layer: a caller invoking the result hits decorators[0] first.
//
// If any layer fails its contract check or returns an error, Compose returns
// that error and no partial chain; the base instance is unchanged either way.
// Composition carries no identity of its own: calling it twice builds two
// independent chains, and caching is the caller's concern.
func Compose(base any, decorators []Decorator) (any, error) {
	wrapped := base
	for i := len(decorators) - 1; i >= 0; i-- {
		out, err := decorators[i].apply(wrapped)
		if err != nil {
			return nil, err
		}

		wrapped = out
	}

	return wrapped, nil
}
