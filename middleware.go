package berth

import "context"

// Middleware provides hooks for intercepting container operations.
// Middleware can be used for logging, metrics, security, testing, etc.
type Middleware interface {
	// BeforeResolve is called before resolving a service.
	// Return error to abort resolution.
	BeforeResolve(ctx context.Context, name string) error

	// AfterResolve is called after resolving a service.
	// Called even if resolution failed (service and err may both be set).
	AfterResolve(ctx context.Context, name string, service any, err error) error

	// BeforeCleanup is called before a session's instances are disposed.
	BeforeCleanup(ctx context.Context, sessionID string)

	// AfterCleanup is called after a session cleanup finished.
	AfterCleanup(ctx context.Context, sessionID string, err error)
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(ctx context.Context, name string) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(ctx context.Context, name string, service any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, name, service, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// beforeCleanup calls BeforeCleanup on all middleware.
func (m *middlewareChain) beforeCleanup(ctx context.Context, sessionID string) {
	for _, mw := range m.middleware {
		mw.BeforeCleanup(ctx, sessionID)
	}
}

// afterCleanup calls AfterCleanup on all middleware.
func (m *middlewareChain) afterCleanup(ctx context.Context, sessionID string, err error) {
	for _, mw := range m.middleware {
		mw.AfterCleanup(ctx, sessionID, err)
	}
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, name string) error
	AfterResolveFunc  func(ctx context.Context, name string, service any, err error) error
	BeforeCleanupFunc func(ctx context.Context, sessionID string)
	AfterCleanupFunc  func(ctx context.Context, sessionID string, err error)
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, name string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(ctx, name)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, name string, service any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, name, service, err)
	}
	return nil
}

// BeforeCleanup implements Middleware.
func (f *FuncMiddleware) BeforeCleanup(ctx context.Context, sessionID string) {
	if f.BeforeCleanupFunc != nil {
		f.BeforeCleanupFunc(ctx, sessionID)
	}
}

// AfterCleanup implements Middleware.
func (f *FuncMiddleware) AfterCleanup(ctx context.Context, sessionID string, err error) {
	if f.AfterCleanupFunc != nil {
		f.AfterCleanupFunc(ctx, sessionID, err)
	}
}
