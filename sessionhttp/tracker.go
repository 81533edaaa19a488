package sessionhttp

import (
	"sync"
	"time"
)

// Tracker records which sessions are alive and emits an end event when a
// session goes idle past its TTL or is ended explicitly. It implements
// berth.SessionEndSource, so a CleanupCoordinator can subscribe directly.
type Tracker struct {
	ttl      time.Duration
	interval time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time
	handlers []func(sessionID string)

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewTracker creates a tracker with the config's idle TTL and sweep interval.
// Call Start to begin expiring idle sessions.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		ttl:      cfg.IdleTTL,
		interval: cfg.SweepInterval,
		lastSeen: make(map[string]time.Time),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// OnSessionEnd registers a handler called once per ended session.
func (t *Tracker) OnSessionEnd(handler func(sessionID string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, handler)
}

// Touch marks the session as recently active, creating it if unknown.
func (t *Tracker) Touch(sessionID string) {
	if sessionID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[sessionID] = time.Now()
}

// End ends a session immediately. Unknown sessions are ignored.
func (t *Tracker) End(sessionID string) {
	t.mu.Lock()
	_, known := t.lastSeen[sessionID]
	delete(t.lastSeen, sessionID)
	handlers := t.handlers
	t.mu.Unlock()

	if !known {
		return
	}

	for _, handler := range handlers {
		handler(sessionID)
	}
}

// Active returns the identifiers of sessions the tracker considers alive.
func (t *Tracker) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.lastSeen))
	for id := range t.lastSeen {
		ids = append(ids, id)
	}

	return ids
}

// Start launches the sweep loop that ends idle sessions.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()

		return
	}
	t.started = true
	t.mu.Unlock()

	go t.sweepLoop()
}

// Stop halts the sweep loop and ends every remaining session.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})

	t.mu.Lock()
	started := t.started
	t.mu.Unlock()

	if started {
		<-t.done
	}

	for _, id := range t.Active() {
		t.End(id)
	}
}

func (t *Tracker) sweepLoop() {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sweep(time.Now())
		case <-t.stop:
			return
		}
	}
}

// sweep ends sessions idle longer than the TTL.
func (t *Tracker) sweep(now time.Time) {
	t.mu.Lock()
	var expired []string
	for id, seen := range t.lastSeen {
		if now.Sub(seen) > t.ttl {
			expired = append(expired, id)
			delete(t.lastSeen, id)
		}
	}
	handlers := t.handlers
	t.mu.Unlock()

	for _, id := range expired {
		for _, handler := range handlers {
			handler(id)
		}
	}
}
