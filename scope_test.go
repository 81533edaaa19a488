package berth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_ResolveSingleton(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("singleton", disposableFactory("singleton"), Singleton()))

	scope := c.BeginScope()
	defer func() { _ = scope.End() }()

	val, err := scope.Resolve("singleton")
	require.NoError(t, err)

	// Same instance as the container's.
	containerVal, err := c.Resolve("singleton")
	require.NoError(t, err)
	assert.Same(t, containerVal, val)
}

func TestScope_ResolveScoped(t *testing.T) {
	c := New()
	callCount := 0

	require.NoError(t, c.Register("scoped", func(c Container) (any, error) {
		callCount++

		return &testDisposable{name: "scoped"}, nil
	}, Scoped()))

	scope := c.BeginScope()
	defer func() { _ = scope.End() }()

	val1, err := scope.Resolve("scoped")
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)

	// Cached within the scope.
	val2, err := scope.Resolve("scoped")
	require.NoError(t, err)
	assert.Same(t, val1, val2)
	assert.Equal(t, 1, callCount)
}

func TestScope_ResolveScoped_DifferentScopes(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("scoped", disposableFactory("scoped"), Scoped()))

	scope1 := c.BeginScope()
	defer func() { _ = scope1.End() }()

	scope2 := c.BeginScope()
	defer func() { _ = scope2.End() }()

	val1, err := scope1.Resolve("scoped")
	require.NoError(t, err)

	val2, err := scope2.Resolve("scoped")
	require.NoError(t, err)

	assert.NotSame(t, val1, val2)
}

func TestScope_ResolveTransient(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("transient", disposableFactory("transient"), Transient()))

	scope := c.BeginScope()
	defer func() { _ = scope.End() }()

	val1, err := scope.Resolve("transient")
	require.NoError(t, err)

	val2, err := scope.Resolve("transient")
	require.NoError(t, err)

	assert.NotSame(t, val1, val2)
}

func TestScope_ResolveSessionScoped(t *testing.T) {
	c := New(WithSessionProvider(func() string { return "s1" }))

	require.NoError(t, c.Register("svc", disposableFactory("svc"), SessionScoped()))

	scope := c.BeginScope()
	defer func() { _ = scope.End() }()

	// Session identity is orthogonal to scopes: both paths share the
	// session's instance.
	fromScope, err := scope.Resolve("svc")
	require.NoError(t, err)

	fromContainer, err := c.Resolve("svc")
	require.NoError(t, err)
	assert.Same(t, fromContainer, fromScope)
}

func TestScope_ResolveUnknown(t *testing.T) {
	c := New()

	scope := c.BeginScope()
	defer func() { _ = scope.End() }()

	_, err := scope.Resolve("missing")
	assert.ErrorIs(t, err, ErrUnknownServiceSentinel)
}

func TestScope_EndDisposes(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("scoped", disposableFactory("scoped"), Scoped()))

	scope := c.BeginScope()

	val, err := scope.Resolve("scoped")
	require.NoError(t, err)

	require.NoError(t, scope.End())
	assert.Equal(t, int32(1), val.(*testDisposable).disposeCount.Load())
}

func TestScope_EndedScopeRejectsUse(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("scoped", disposableFactory("scoped"), Scoped()))

	scope := c.BeginScope()
	require.NoError(t, scope.End())

	_, err := scope.Resolve("scoped")
	assert.ErrorIs(t, err, ErrScopeEnded)

	assert.ErrorIs(t, scope.End(), ErrScopeEnded)
}

func TestScope_EndAggregatesDisposeErrors(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("bad", func(c Container) (any, error) {
		return &testDisposable{name: "bad", disposeErr: assert.AnError}, nil
	}, Scoped()))

	scope := c.BeginScope()

	_, err := scope.Resolve("bad")
	require.NoError(t, err)

	assert.ErrorIs(t, scope.End(), assert.AnError)
}
