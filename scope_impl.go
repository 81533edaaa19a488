package berth

import (
	"sync"

	"go.uber.org/multierr"
)

// scope implements Scope.
type scope struct {
	parent    *containerImpl
	instances map[string]any
	mu        sync.Mutex
	ended     bool
}

// newScope creates a new scope.
func newScope(parent *containerImpl) *scope {
	return &scope{
		parent:    parent,
		instances: make(map[string]any),
	}
}

// Resolve returns a service by name from this scope. Scoped services are
// cached per scope; every other lifetime is delegated to the parent
// container, so session-scoped identity is unaffected by scope boundaries.
func (s *scope) Resolve(name string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil, ErrScopeEnded
	}

	reg, ok := s.parent.table.lookup(name)
	if !ok {
		return nil, ErrUnknownService(name)
	}

	if reg.lifetime != LifetimeScoped {
		return s.parent.Resolve(name)
	}

	if instance, ok := s.instances[name]; ok {
		return instance, nil
	}

	instance, err := s.parent.build(reg)
	if err != nil {
		return nil, err
	}

	s.instances[name] = instance

	return instance, nil
}

// End disposes all scoped instances created in this scope.
func (s *scope) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return ErrScopeEnded
	}

	var errs error

	for name, instance := range s.instances {
		if disposable, ok := instance.(Disposable); ok {
			if err := disposable.Dispose(); err != nil {
				errs = multierr.Append(errs, NewServiceError(name, "dispose", err))
			}
		}
	}

	s.instances = nil
	s.ended = true

	return errs
}
