package berth

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// SessionEndSource is the consumed session-end event feed. Implementations
// call the registered handler once per ended session; duplicate notifications
// for the same session are tolerated downstream.
type SessionEndSource interface {
	OnSessionEnd(handler func(sessionID string))
}

// SessionCleaner disposes everything cached for a session. *SessionCache and
// Container both satisfy it (Container via CleanUpSession).
type SessionCleaner interface {
	CleanUp(sessionID string) error
}

// cleanerFunc adapts a function to SessionCleaner.
type cleanerFunc func(sessionID string) error

func (f cleanerFunc) CleanUp(sessionID string) error {
	return f(sessionID)
}

// ContainerCleaner adapts a Container to SessionCleaner.
func ContainerCleaner(c Container) SessionCleaner {
	return cleanerFunc(c.CleanUpSession)
}

// CleanupCoordinator connects a SessionEndSource to a SessionCleaner. End
// notifications are queued and handled on the coordinator's own goroutine, so
// the event source is never blocked by disposal work; if the queue is full
// the cleanup is handed to a one-off goroutine instead of being dropped.
//
// Duplicate notifications are harmless: cleanup of an already-forgotten
// session is a no-op by the cache's contract.
type CleanupCoordinator struct {
	cleaner SessionCleaner
	logger  *zap.Logger
	queue   chan string

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   chan struct{}
	wg        sync.WaitGroup
}

// CoordinatorOption configures a CleanupCoordinator.
type CoordinatorOption func(*CleanupCoordinator)

// WithCoordinatorLogger sets the coordinator's logger.
func WithCoordinatorLogger(logger *zap.Logger) CoordinatorOption {
	return func(cc *CleanupCoordinator) {
		if logger != nil {
			cc.logger = logger
		}
	}
}

// WithQueueSize sets the notification queue capacity (default 64).
func WithQueueSize(size int) CoordinatorOption {
	return func(cc *CleanupCoordinator) {
		if size > 0 {
			cc.queue = make(chan string, size)
		}
	}
}

// NewCleanupCoordinator creates a coordinator draining source into cleaner.
// Call Start to subscribe and begin processing.
func NewCleanupCoordinator(source SessionEndSource, cleaner SessionCleaner, opts ...CoordinatorOption) *CleanupCoordinator {
	cc := &CleanupCoordinator{
		cleaner: cleaner,
		logger:  zap.NewNop(),
		queue:   make(chan string, 64),
		stopped: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cc)
	}

	source.OnSessionEnd(cc.notify)

	return cc
}

// Start launches the worker goroutine. Calling Start twice is a no-op.
func (cc *CleanupCoordinator) Start() {
	cc.startOnce.Do(func() {
		cc.wg.Add(1)
		go cc.run()
	})
}

// Stop drains pending notifications and stops the worker. It returns when
// in-flight cleanups finish or ctx expires, whichever comes first.
func (cc *CleanupCoordinator) Stop(ctx context.Context) error {
	cc.stopOnce.Do(func() {
		close(cc.stopped)
	})

	done := make(chan struct{})
	go func() {
		cc.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notify is the handler registered with the event source. It must not block:
// the queue absorbs bursts and overflow falls through to a goroutine.
func (cc *CleanupCoordinator) notify(sessionID string) {
	select {
	case <-cc.stopped:
		return
	default:
	}

	select {
	case cc.queue <- sessionID:
	default:
		cc.wg.Add(1)
		go func() {
			defer cc.wg.Done()
			cc.clean(sessionID)
		}()
	}
}

func (cc *CleanupCoordinator) run() {
	defer cc.wg.Done()

	for {
		select {
		case sessionID := <-cc.queue:
			cc.clean(sessionID)
		case <-cc.stopped:
			// Drain what is already queued before exiting.
			for {
				select {
				case sessionID := <-cc.queue:
					cc.clean(sessionID)
				default:
					return
				}
			}
		}
	}
}

func (cc *CleanupCoordinator) clean(sessionID string) {
	if err := cc.cleaner.CleanUp(sessionID); err != nil {
		cc.logger.Error("session cleanup failed",
			zap.String("session_id", sessionID),
			zap.Error(err))

		return
	}

	cc.logger.Debug("session cleaned up", zap.String("session_id", sessionID))
}
