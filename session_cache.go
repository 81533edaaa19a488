package berth

import (
	"sync"

	"go.uber.org/multierr"
)

// SessionCache is a concurrency-safe registry of session-scoped instances.
// It guarantees at most one live instance per (session, service) pair,
// single-flighted construction under concurrent resolution, and exactly-once
// disposal when a session is cleaned up, even when cleanup races in-flight
// GetOrCreate calls.
//
// The cache holds no lock across a factory call except the one slot being
// built, so construction for one service never blocks unrelated sessions or
// unrelated services in the same session.
type SessionCache struct {
	// sessions maps sessionID -> *sessionEntry. LoadOrStore creates entries
	// under resolution pressure; LoadAndDelete hands each entry to exactly
	// one cleaner.
	sessions sync.Map
}

// sessionEntry holds the instances cached for one session.
type sessionEntry struct {
	// mu guards disposed and slot map membership. It is never held across
	// a factory call.
	mu       sync.Mutex
	disposed bool
	slots    map[string]*sessionSlot
}

// sessionSlot is the single-flight unit for one (session, service) pair.
// The slot mutex is held for the full duration of construction, so losers of
// a construction race block here and then observe the winner's instance.
type sessionSlot struct {
	mu       sync.Mutex
	instance Disposable
	built    bool
}

// NewSessionCache creates an empty session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{}
}

// GetOrCreate returns the instance cached for (sessionID, service), building
// it with factory if absent. Concurrent callers for the same pair run factory
// at most once; all of them receive the same instance.
//
// The built instance must implement Disposable; otherwise GetOrCreate returns
// a NOT_DISPOSABLE error and caches nothing, so the failure surfaces again on
// the next resolution instead of leaking an uncleanable instance.
//
// A GetOrCreate racing CleanUp for the same session ends in one of two
// consistent states: the fresh instance joins the session in time to be
// disposed by that cleanup, or it is created under a brand-new session entry
// and stays live for subsequent calls.
func (c *SessionCache) GetOrCreate(sessionID, service string, factory func() (any, error)) (any, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	for {
		entry := c.entryFor(sessionID)

		entry.mu.Lock()
		if entry.disposed {
			// Teardown won the race for this entry; it is already gone
			// from the map, so the next iteration gets a fresh one.
			entry.mu.Unlock()

			continue
		}

		slot, ok := entry.slots[service]
		if !ok {
			slot = &sessionSlot{}
			entry.slots[service] = slot
		}
		entry.mu.Unlock()

		slot.mu.Lock()
		if slot.built {
			instance := slot.instance
			slot.mu.Unlock()

			return instance, nil
		}

		// Re-check teardown before building. The check is ordered by
		// entry.mu against CleanUp's disposed write: if we see false here,
		// our slot is in cleanup's snapshot and cleanup will wait on the
		// slot mutex we hold, disposing whatever we build. If we see true,
		// nothing was built and we retry against a fresh entry.
		entry.mu.Lock()
		disposed := entry.disposed
		entry.mu.Unlock()

		if disposed {
			slot.mu.Unlock()

			continue
		}

		instance, err := factory()
		if err != nil {
			slot.mu.Unlock()

			return nil, err
		}

		disposable, ok := instance.(Disposable)
		if !ok {
			slot.mu.Unlock()

			return nil, ErrNotDisposable(service, instance)
		}

		slot.instance = disposable
		slot.built = true
		slot.mu.Unlock()

		return instance, nil
	}
}

// CleanUp disposes every instance cached for the session and forgets the
// session. Each instance is disposed at most once, ever: the session entry is
// claimed atomically, so concurrent or repeated CleanUp calls for the same
// session find nothing and return nil.
func (c *SessionCache) CleanUp(sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	value, ok := c.sessions.LoadAndDelete(sessionID)
	if !ok {
		return nil
	}

	entry := value.(*sessionEntry)

	// Mark the entry terminal and snapshot its slots. No slot can be added
	// after disposed is set, so the snapshot is complete.
	entry.mu.Lock()
	entry.disposed = true
	slots := make(map[string]*sessionSlot, len(entry.slots))
	for name, slot := range entry.slots {
		slots[name] = slot
	}
	entry.mu.Unlock()

	var errs error

	for name, slot := range slots {
		// Waits out any in-flight construction for this slot, then
		// disposes what it built.
		slot.mu.Lock()
		if slot.built {
			if err := slot.instance.Dispose(); err != nil {
				errs = multierr.Append(errs, NewServiceError(name, "dispose", err))
			}

			slot.instance = nil
			slot.built = false
		}
		slot.mu.Unlock()
	}

	return errs
}

// Has reports whether a live instance exists for (sessionID, service).
func (c *SessionCache) Has(sessionID, service string) bool {
	value, ok := c.sessions.Load(sessionID)
	if !ok {
		return false
	}

	entry := value.(*sessionEntry)

	entry.mu.Lock()
	slot, ok := entry.slots[service]
	disposed := entry.disposed
	entry.mu.Unlock()

	if disposed || !ok {
		return false
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	return slot.built
}

// Len returns how many instances are cached for the session.
func (c *SessionCache) Len(sessionID string) int {
	value, ok := c.sessions.Load(sessionID)
	if !ok {
		return 0
	}

	entry := value.(*sessionEntry)

	entry.mu.Lock()
	slots := make([]*sessionSlot, 0, len(entry.slots))
	for _, slot := range entry.slots {
		slots = append(slots, slot)
	}
	entry.mu.Unlock()

	count := 0

	for _, slot := range slots {
		slot.mu.Lock()
		if slot.built {
			count++
		}
		slot.mu.Unlock()
	}

	return count
}

// SessionIDs returns the identifiers of sessions currently holding entries.
func (c *SessionCache) SessionIDs() []string {
	var ids []string

	c.sessions.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))

		return true
	})

	return ids
}

// CleanUpAll cleans up every live session, aggregating disposal errors.
func (c *SessionCache) CleanUpAll() error {
	var errs error

	for _, id := range c.SessionIDs() {
		errs = multierr.Append(errs, c.CleanUp(id))
	}

	return errs
}

// entryFor returns the live entry for sessionID, creating it if needed.
func (c *SessionCache) entryFor(sessionID string) *sessionEntry {
	if value, ok := c.sessions.Load(sessionID); ok {
		return value.(*sessionEntry)
	}

	fresh := &sessionEntry{slots: make(map[string]*sessionSlot)}
	value, _ := c.sessions.LoadOrStore(sessionID, fresh)

	return value.(*sessionEntry)
}
