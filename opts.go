package berth

import "go.uber.org/zap"

// Option configures a container at construction time.
type Option func(*containerImpl)

// WithLogger sets the container's logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *containerImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSessionProvider sets the accessor for the current session identifier,
// consulted by Resolve for session-scoped services. The provider returns the
// empty string when no session is active.
func WithSessionProvider(provider func() string) Option {
	return func(c *containerImpl) {
		if provider != nil {
			c.sessionID = provider
		}
	}
}

// DuplicateMode selects what Register does when the name is already taken.
type DuplicateMode uint8

const (
	// DuplicateReject keeps the existing registration, logs a warning, and
	// returns ErrDuplicateRegistration. This is the default: silently
	// changing resolution semantics mid-process is almost never intended.
	DuplicateReject DuplicateMode = iota

	// DuplicateKeep keeps the existing registration and reports success.
	DuplicateKeep

	// DuplicateReplace overwrites the existing registration.
	DuplicateReplace
)

// registerOptions is the merged result of RegisterOption values.
type registerOptions struct {
	lifetime   Lifetime
	decorators []Decorator
	groups     []string
	metadata   map[string]string
	duplicate  DuplicateMode
}

// RegisterOption is a configuration option for service registration.
type RegisterOption func(*registerOptions)

// Singleton keeps one instance for the life of the container (default).
func Singleton() RegisterOption {
	return func(o *registerOptions) {
		o.lifetime = LifetimeSingleton
	}
}

// Transient makes the service created on each resolve.
func Transient() RegisterOption {
	return func(o *registerOptions) {
		o.lifetime = LifetimeTransient
	}
}

// Scoped makes the service live for the duration of a Scope.
func Scoped() RegisterOption {
	return func(o *registerOptions) {
		o.lifetime = LifetimeScoped
	}
}

// SessionScoped pins one instance to each session identifier. Instances must
// implement Disposable and are disposed when the session ends.
func SessionScoped() RegisterOption {
	return func(o *registerOptions) {
		o.lifetime = LifetimeSession
	}
}

// WithDecorators declares the service's decorator chain. Decorators wrap the
// factory's instance in declaration order: the first decorator listed becomes
// the outermost layer.
func WithDecorators(decorators ...Decorator) RegisterOption {
	return func(o *registerOptions) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithGroup adds the service to a named group for querying.
func WithGroup(group string) RegisterOption {
	return func(o *registerOptions) {
		o.groups = append(o.groups, group)
	}
}

// WithMetadata attaches diagnostic metadata to the registration.
func WithMetadata(key, value string) RegisterOption {
	return func(o *registerOptions) {
		if o.metadata == nil {
			o.metadata = make(map[string]string)
		}

		o.metadata[key] = value
	}
}

// KeepExisting makes duplicate registration a silent no-op.
func KeepExisting() RegisterOption {
	return func(o *registerOptions) {
		o.duplicate = DuplicateKeep
	}
}

// ReplaceExisting makes duplicate registration overwrite the previous one.
func ReplaceExisting() RegisterOption {
	return func(o *registerOptions) {
		o.duplicate = DuplicateReplace
	}
}

// mergeOptions combines register options over the defaults.
func mergeOptions(opts []RegisterOption) registerOptions {
	merged := registerOptions{lifetime: LifetimeSingleton}
	for _, opt := range opts {
		opt(&merged)
	}

	return merged
}
