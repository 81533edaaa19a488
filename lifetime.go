package berth

import "fmt"

// Lifetime governs how many instances of a service may exist and how long
// each one lives.
type Lifetime uint8

const (
	// LifetimeSingleton keeps one instance for the life of the container.
	LifetimeSingleton Lifetime = iota

	// LifetimeTransient creates a new instance on every resolution.
	LifetimeTransient

	// LifetimeScoped keeps one instance per Scope.
	LifetimeScoped

	// LifetimeSession keeps one instance per session identifier, disposed
	// when the session ends.
	LifetimeSession
)

// String returns the lifetime's name.
func (l Lifetime) String() string {
	switch l {
	case LifetimeSingleton:
		return "singleton"
	case LifetimeTransient:
		return "transient"
	case LifetimeScoped:
		return "scoped"
	case LifetimeSession:
		return "session"
	default:
		return fmt.Sprintf("lifetime(%d)", uint8(l))
	}
}

// ParseLifetime converts a lifetime name back to its value.
func ParseLifetime(s string) (Lifetime, error) {
	switch s {
	case "singleton":
		return LifetimeSingleton, nil
	case "transient":
		return LifetimeTransient, nil
	case "scoped":
		return LifetimeScoped, nil
	case "session":
		return LifetimeSession, nil
	default:
		return 0, fmt.Errorf("unknown lifetime %q", s)
	}
}
