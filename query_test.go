package berth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryFixture(t *testing.T) Container {
	t.Helper()

	c := New()

	require.NoError(t, c.Register("db", disposableFactory("db"),
		SessionScoped(), WithGroup("storage"), WithMetadata("tier", "hot")))
	require.NoError(t, c.Register("cache", disposableFactory("cache"),
		SessionScoped(), WithGroup("storage")))
	require.NoError(t, c.Register("audit", disposableFactory("audit"), Singleton()))
	require.NoError(t, c.Register("mailer", disposableFactory("mailer"), Transient()))

	return c
}

func TestQuery_ByLifetime(t *testing.T) {
	c := newQueryFixture(t)

	results := FindByLifetime(c, LifetimeSession)
	assert.Len(t, results, 2)

	names := QueryNames(c, ServiceQuery{Lifetime: lifetimePtr(LifetimeSingleton)})
	assert.Equal(t, []string{"audit"}, names)
}

func TestQuery_ByGroup(t *testing.T) {
	c := newQueryFixture(t)

	results := FindByGroup(c, "storage")
	assert.Len(t, results, 2)

	assert.Empty(t, FindByGroup(c, "missing"))
}

func TestQuery_ByMetadata(t *testing.T) {
	c := newQueryFixture(t)

	names := QueryNames(c, ServiceQuery{Metadata: map[string]string{"tier": "hot"}})
	assert.Equal(t, []string{"db"}, names)

	assert.Empty(t, QueryNames(c, ServiceQuery{Metadata: map[string]string{"tier": "cold"}}))
}

func TestQuery_Combined(t *testing.T) {
	c := newQueryFixture(t)

	names := QueryNames(c, ServiceQuery{
		Lifetime: lifetimePtr(LifetimeSession),
		Group:    "storage",
		Metadata: map[string]string{"tier": "hot"},
	})
	assert.Equal(t, []string{"db"}, names)
}

func lifetimePtr(l Lifetime) *Lifetime {
	return &l
}
