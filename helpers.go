package berth

import "fmt"

// Resolve with type safety.
func Resolve[T any](c Container, name string) (T, error) {
	var zero T

	instance, err := c.Resolve(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(name, instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c Container, name string) T {
	instance, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", name, err))
	}

	return instance
}

// ResolveSession resolves a session-scoped service for an explicit session
// identifier, with type safety.
func ResolveSession[T any](c Container, sessionID, name string) (T, error) {
	var zero T

	instance, err := c.ResolveSession(sessionID, name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(name, instance)
	}

	return typed, nil
}

// RegisterSingleton is a convenience wrapper for singleton services.
func RegisterSingleton[T any](c Container, name string, factory func(Container) (T, error)) error {
	return c.Register(name, func(c Container) (any, error) {
		return factory(c)
	}, Singleton())
}

// RegisterTransient is a convenience wrapper for transient services.
func RegisterTransient[T any](c Container, name string, factory func(Container) (T, error)) error {
	return c.Register(name, func(c Container) (any, error) {
		return factory(c)
	}, Transient())
}

// RegisterScoped is a convenience wrapper for scope-lived services.
func RegisterScoped[T any](c Container, name string, factory func(Container) (T, error)) error {
	return c.Register(name, func(c Container) (any, error) {
		return factory(c)
	}, Scoped())
}

// RegisterSessionScoped is a convenience wrapper for session-scoped services.
// Extra options (decorators, groups) are applied on top of the lifetime.
func RegisterSessionScoped[T any](c Container, name string, factory func(Container) (T, error), opts ...RegisterOption) error {
	merged := append([]RegisterOption{SessionScoped()}, opts...)

	return c.Register(name, func(c Container) (any, error) {
		return factory(c)
	}, merged...)
}

// RegisterInterface registers an implementation under an interface contract.
// Supports all lifetime options.
func RegisterInterface[I, T any](c Container, name string, factory func(Container) (T, error), opts ...RegisterOption) error {
	return c.Register(name, func(c Container) (any, error) {
		impl, err := factory(c)
		if err != nil {
			return nil, err
		}

		contract, ok := any(impl).(I)
		if !ok {
			return nil, ErrTypeMismatch(name, impl)
		}

		return contract, nil
	}, opts...)
}

// RegisterValue registers a pre-built instance (always singleton).
func RegisterValue[T any](c Container, name string, instance T) error {
	return c.Register(name, func(c Container) (any, error) {
		return instance, nil
	}, Singleton())
}

// ResolveScope is a helper for resolving from a scope.
func ResolveScope[T any](s Scope, name string) (T, error) {
	var zero T

	instance, err := s.Resolve(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(name, instance)
	}

	return typed, nil
}

// MustScope resolves from scope or panics.
func MustScope[T any](s Scope, name string) T {
	instance, err := ResolveScope[T](s, name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s from scope: %v", name, err))
	}

	return instance
}
