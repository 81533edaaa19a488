package berth

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// containerImpl implements Container.
type containerImpl struct {
	table      *policyTable
	sessions   *SessionCache
	middleware *middlewareChain
	logger     *zap.Logger

	// sessionID is the consumed current-session accessor; it returns the
	// empty string when no session is active.
	sessionID func() string

	hookMu     sync.RWMutex
	errorHooks []func(name string, err error)

	mu     sync.RWMutex
	closed bool
}

// newContainer creates a new DI container implementation.
func newContainer(opts ...Option) *containerImpl {
	c := &containerImpl{
		sessions:   NewSessionCache(),
		middleware: newMiddlewareChain(),
		logger:     zap.NewNop(),
		sessionID:  func() string { return "" },
	}

	for _, opt := range opts {
		opt(c)
	}

	c.table = newPolicyTable(c.logger)

	return c
}

// Register adds a service factory to the container.
func (c *containerImpl) Register(name string, factory Factory, opts ...RegisterOption) error {
	if name == "" {
		return fmt.Errorf("service name cannot be empty")
	}

	if factory == nil {
		return ErrInvalidFactory
	}

	merged := mergeOptions(opts)

	reg := &serviceRegistration{
		name:       name,
		lifetime:   merged.lifetime,
		factory:    factory,
		decorators: merged.decorators,
		groups:     merged.groups,
		metadata:   merged.metadata,
	}

	return c.table.register(reg, merged.duplicate)
}

// Resolve returns a service by name, using the container's session provider
// when the service is session-scoped.
func (c *containerImpl) Resolve(name string) (any, error) {
	return c.resolve(name, "")
}

// ResolveSession resolves a service for an explicit session identifier.
func (c *containerImpl) ResolveSession(sessionID, name string) (any, error) {
	return c.resolve(name, sessionID)
}

// resolve runs middleware and failure hooks around the actual resolution.
func (c *containerImpl) resolve(name, sessionID string) (any, error) {
	ctx := context.Background()

	if err := c.middleware.beforeResolve(ctx, name); err != nil {
		c.fireErrorHooks(name, err)

		return nil, err
	}

	service, err := c.resolveInternal(name, sessionID)

	if mwErr := c.middleware.afterResolve(ctx, name, service, err); mwErr != nil {
		err = mwErr
		service = nil
	}

	if err != nil {
		c.fireErrorHooks(name, err)
	}

	return service, err
}

// resolveInternal dispatches on the declared lifetime.
func (c *containerImpl) resolveInternal(name, sessionID string) (any, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return nil, ErrContainerClosed
	}

	reg, ok := c.table.lookup(name)
	if !ok {
		return nil, ErrUnknownService(name)
	}

	switch reg.lifetime {
	case LifetimeSingleton:
		return c.resolveSingleton(reg)

	case LifetimeScoped:
		return nil, ErrScopeRequired(name)

	case LifetimeSession:
		if sessionID == "" {
			sessionID = c.sessionID()
		}

		return c.sessions.GetOrCreate(sessionID, name, func() (any, error) {
			return c.build(reg)
		})

	default: // LifetimeTransient
		return c.build(reg)
	}
}

// resolveSingleton returns the singleton instance, building it at most once.
func (c *containerImpl) resolveSingleton(reg *serviceRegistration) (any, error) {
	// Fast path: already built (read lock).
	reg.mu.RLock()
	if reg.built {
		instance := reg.instance
		reg.mu.RUnlock()

		return instance, nil
	}
	reg.mu.RUnlock()

	// Slow path: build under the registration's write lock. The container
	// lock is separate, so the factory may resolve its own dependencies.
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.built {
		return reg.instance, nil
	}

	instance, err := c.build(reg)
	if err != nil {
		return nil, err
	}

	reg.instance = instance
	reg.built = true

	return instance, nil
}

// build runs the factory and wraps the result in the registered decorator
// chain. Nothing is installed when either step fails.
func (c *containerImpl) build(reg *serviceRegistration) (any, error) {
	base, err := reg.factory(c)
	if err != nil {
		return nil, NewServiceError(reg.name, "resolve", err)
	}

	if len(reg.decorators) == 0 {
		return base, nil
	}

	return Compose(base, reg.decorators)
}

// CleanUpSession disposes every session-scoped instance held for the session.
func (c *containerImpl) CleanUpSession(sessionID string) error {
	ctx := context.Background()

	c.middleware.beforeCleanup(ctx, sessionID)
	err := c.sessions.CleanUp(sessionID)
	c.middleware.afterCleanup(ctx, sessionID, err)

	return err
}

// Use adds middleware to the container.
// Middleware is called in the order they are added.
func (c *containerImpl) Use(mw Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middleware.add(mw)
}

// OnResolveError adds a hook invoked with the service name and error whenever
// a resolution fails.
func (c *containerImpl) OnResolveError(hook func(name string, err error)) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.errorHooks = append(c.errorHooks, hook)
}

func (c *containerImpl) fireErrorHooks(name string, err error) {
	c.hookMu.RLock()
	hooks := c.errorHooks
	c.hookMu.RUnlock()

	for _, hook := range hooks {
		hook(name, err)
	}
}

// Has checks if a service is registered.
func (c *containerImpl) Has(name string) bool {
	_, ok := c.table.lookup(name)

	return ok
}

// Services returns all registered service names.
func (c *containerImpl) Services() []string {
	return c.table.names()
}

// SessionIDs returns the sessions that currently hold cached instances.
func (c *containerImpl) SessionIDs() []string {
	return c.sessions.SessionIDs()
}

// Inspect returns diagnostic information about a service.
func (c *containerImpl) Inspect(name string) ServiceInfo {
	reg, ok := c.table.lookup(name)
	if !ok {
		return ServiceInfo{Name: name}
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	decorators := make([]string, len(reg.decorators))
	for i, d := range reg.decorators {
		decorators[i] = d.Name()
	}

	metadata := make(map[string]string, len(reg.metadata))
	for k, v := range reg.metadata {
		metadata[k] = v
	}

	return ServiceInfo{
		Name:       name,
		Lifetime:   reg.lifetime,
		Decorators: decorators,
		Groups:     append([]string(nil), reg.groups...),
		Metadata:   metadata,
		Built:      reg.built,
	}
}

// BeginScope creates a new scope for scoped services.
func (c *containerImpl) BeginScope() Scope {
	return newScope(c)
}

// Close cleans up every live session and disposes singleton instances.
// Further resolutions fail with ErrContainerClosed. Close is idempotent.
func (c *containerImpl) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return nil
	}
	c.closed = true
	c.mu.Unlock()

	errs := c.sessions.CleanUpAll()

	for _, name := range c.table.names() {
		reg, ok := c.table.lookup(name)
		if !ok {
			continue
		}

		reg.mu.Lock()
		if reg.built {
			if disposable, ok := reg.instance.(Disposable); ok {
				if err := disposable.Dispose(); err != nil {
					errs = multierr.Append(errs, NewServiceError(name, "dispose", err))
				}
			}

			reg.instance = nil
			reg.built = false
		}
		reg.mu.Unlock()
	}

	if errs != nil {
		c.logger.Error("container close finished with disposal errors", zap.Error(errs))
	}

	return errs
}
