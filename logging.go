package berth

import (
	"context"

	"go.uber.org/zap"
)

// LoggingMiddleware returns middleware that logs resolutions and session
// cleanups through the given zap logger. Successful operations log at debug,
// failures at error.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return &FuncMiddleware{
		AfterResolveFunc: func(_ context.Context, name string, _ any, err error) error {
			if err != nil {
				logger.Error("resolve failed", zap.String("service", name), zap.Error(err))

				return nil
			}

			logger.Debug("resolved", zap.String("service", name))

			return nil
		},
		AfterCleanupFunc: func(_ context.Context, sessionID string, err error) {
			if err != nil {
				logger.Error("session cleanup failed",
					zap.String("session_id", sessionID),
					zap.Error(err))

				return
			}

			logger.Debug("session cleaned up", zap.String("session_id", sessionID))
		},
	}
}
