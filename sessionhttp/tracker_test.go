package sessionhttp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endRecorder collects session-end notifications.
type endRecorder struct {
	mu    sync.Mutex
	ended []string
}

func (r *endRecorder) handler(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = append(r.ended, sessionID)
}

func (r *endRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.ended...)
}

func TestTracker_EndEmitsOnce(t *testing.T) {
	tracker := NewTracker(testConfig())
	recorder := &endRecorder{}
	tracker.OnSessionEnd(recorder.handler)

	tracker.Touch("s1")
	assert.Contains(t, tracker.Active(), "s1")

	tracker.End("s1")
	tracker.End("s1") // unknown now, ignored

	assert.Equal(t, []string{"s1"}, recorder.snapshot())
	assert.Empty(t, tracker.Active())
}

func TestTracker_EndUnknownSession(t *testing.T) {
	tracker := NewTracker(testConfig())
	recorder := &endRecorder{}
	tracker.OnSessionEnd(recorder.handler)

	tracker.End("never-seen")

	assert.Empty(t, recorder.snapshot())
}

func TestTracker_TouchEmptyIgnored(t *testing.T) {
	tracker := NewTracker(testConfig())

	tracker.Touch("")

	assert.Empty(t, tracker.Active())
}

func TestTracker_SweepExpiresIdleSessions(t *testing.T) {
	tracker := NewTracker(testConfig())
	recorder := &endRecorder{}
	tracker.OnSessionEnd(recorder.handler)

	tracker.Touch("stale")
	tracker.Touch("fresh")

	// Age the stale session past the TTL by hand.
	tracker.mu.Lock()
	tracker.lastSeen["stale"] = time.Now().Add(-2 * tracker.ttl)
	tracker.mu.Unlock()

	tracker.sweep(time.Now())

	assert.Equal(t, []string{"stale"}, recorder.snapshot())
	assert.Equal(t, []string{"fresh"}, tracker.Active())
}

func TestTracker_StopEndsRemainingSessions(t *testing.T) {
	tracker := NewTracker(testConfig())
	recorder := &endRecorder{}
	tracker.OnSessionEnd(recorder.handler)

	tracker.Start()
	tracker.Touch("s1")
	tracker.Touch("s2")

	tracker.Stop()

	assert.ElementsMatch(t, []string{"s1", "s2"}, recorder.snapshot())
	assert.Empty(t, tracker.Active())
}

func TestTracker_StopWithoutStart(t *testing.T) {
	tracker := NewTracker(testConfig())

	// Must not hang.
	tracker.Stop()
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "X-Session-ID", cfg.Header)
	assert.Equal(t, "berth_session", cfg.Cookie)
	assert.Equal(t, 30*time.Minute, cfg.IdleTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SESSION_HEADER", "X-Custom")
	t.Setenv("SESSION_IDLE_TTL", "5m")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "X-Custom", cfg.Header)
	assert.Equal(t, 5*time.Minute, cfg.IdleTTL)
}
