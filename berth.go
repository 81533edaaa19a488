// Package berth is a dependency injection container with four service
// lifetimes: transient, scoped, singleton, and session-scoped.
//
// The session-scoped lifetime is the reason berth exists. A session-scoped
// service is pinned to one session identifier: concurrent resolutions for the
// same (session, service) pair share a single instance built exactly once,
// and every instance cached for a session is disposed exactly once when that
// session ends, no matter how the teardown interleaves with in-flight
// resolutions.
//
// Services may also declare decorator chains at registration time. Decorators
// wrap the base instance in declaration order (first declared is outermost)
// and are type-checked at composition time, so a decorator that breaks the
// service contract is rejected before anything is cached.
package berth

import (
	"context"
)

// Factory creates a service instance. It receives the container so the
// factory can resolve its own dependencies.
type Factory func(c Container) (any, error)

// Disposable is the release capability a session-scoped instance must expose.
// Scoped and singleton instances that implement it are disposed on scope end
// and container close respectively.
type Disposable interface {
	Dispose() error
}

// Container resolves services according to their registered lifetime.
type Container interface {
	// Register adds a service factory under a unique name.
	Register(name string, factory Factory, opts ...RegisterOption) error

	// Resolve returns an instance of the named service. Session-scoped
	// services use the container's session provider for the current
	// session identifier.
	Resolve(name string) (any, error)

	// ResolveSession resolves a service for an explicit session identifier.
	// For non-session lifetimes it behaves exactly like Resolve.
	ResolveSession(sessionID, name string) (any, error)

	// CleanUpSession disposes every session-scoped instance cached for the
	// session and forgets the session. Calling it again for the same
	// session is a no-op.
	CleanUpSession(sessionID string) error

	// Has reports whether a service is registered.
	Has(name string) bool

	// Services returns all registered service names.
	Services() []string

	// Inspect returns diagnostic information about a service.
	Inspect(name string) ServiceInfo

	// BeginScope creates a new scope for scoped services.
	BeginScope() Scope

	// Use adds middleware, called in the order added.
	Use(mw Middleware)

	// OnResolveError adds a hook invoked whenever a resolution fails.
	OnResolveError(hook func(name string, err error))

	// SessionIDs returns the identifiers of sessions that currently hold
	// cached instances.
	SessionIDs() []string

	// Close disposes all singleton instances and cleans up every live
	// session. The container rejects further resolutions afterwards.
	Close(ctx context.Context) error
}

// Scope is a caller-defined lifetime boundary for scoped services,
// typically one per request or unit of work.
type Scope interface {
	// Resolve returns a service from this scope. Scoped services are
	// cached per scope; other lifetimes behave as they do on the container.
	Resolve(name string) (any, error)

	// End disposes all scoped instances created in this scope.
	End() error
}

// New creates a new container.
func New(opts ...Option) Container {
	return newContainer(opts...)
}
