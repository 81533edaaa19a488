package berth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_ResolvesOnce(t *testing.T) {
	c := New()
	callCount := 0

	require.NoError(t, c.Register("svc", func(c Container) (any, error) {
		callCount++

		return &testDisposable{name: "svc"}, nil
	}, Transient()))

	lazy := NewLazy[*testDisposable](c, "svc")
	assert.False(t, lazy.IsResolved())
	assert.Equal(t, 0, callCount)

	first, err := lazy.Get()
	require.NoError(t, err)
	assert.True(t, lazy.IsResolved())

	// Even for a transient service, the lazy caches its first resolution.
	second, err := lazy.Get()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, callCount)
}

func TestLazy_Error(t *testing.T) {
	c := New()

	lazy := NewLazy[*testDisposable](c, "missing")

	_, err := lazy.Get()
	assert.ErrorIs(t, err, ErrUnknownServiceSentinel)
	assert.False(t, lazy.IsResolved())

	assert.Panics(t, func() { lazy.MustGet() })
	assert.Equal(t, "missing", lazy.Name())
}

func TestProvider_FreshInstances(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("svc", disposableFactory("svc"), Transient()))

	provider := NewProvider[*testDisposable](c, "svc")

	first, err := provider.Provide()
	require.NoError(t, err)

	second, err := provider.Provide()
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	assert.NotNil(t, provider.MustProvide())
	assert.Equal(t, "svc", provider.Name())
}

func TestProvider_Error(t *testing.T) {
	c := New()

	provider := NewProvider[*testDisposable](c, "missing")

	_, err := provider.Provide()
	assert.ErrorIs(t, err, ErrUnknownServiceSentinel)

	assert.Panics(t, func() { provider.MustProvide() })
}
