package berth

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_CodeMatching(t *testing.T) {
	err := ErrUnknownService("svc")

	assert.ErrorIs(t, err, ErrUnknownServiceSentinel)
	assert.NotErrorIs(t, err, ErrInvalidSession)
	assert.Contains(t, err.Error(), "UNKNOWN_SERVICE")
	assert.Contains(t, err.Error(), "svc")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewServiceError("svc", "dispose", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "dispose")
}

func TestError_WrappedCodeMatching(t *testing.T) {
	wrapped := fmt.Errorf("while resolving: %w", ErrNotDisposable("svc", &plainService{}))

	assert.ErrorIs(t, wrapped, ErrNotDisposableSentinel)
}
