package berth

// ServiceKey provides type-safe service identification.
// Use NewServiceKey to create typed keys for your services.
type ServiceKey[T any] struct {
	name string
}

// NewServiceKey creates a new typed service key.
//
// Example:
//
//	var ConnKey = berth.NewServiceKey[*Conn]("conn")
func NewServiceKey[T any](name string) ServiceKey[T] {
	return ServiceKey[T]{name: name}
}

// Name returns the string name of the service key.
func (k ServiceKey[T]) Name() string {
	return k.name
}

// RegisterWithKey registers a service using a typed service key.
func RegisterWithKey[T any](c Container, key ServiceKey[T], factory func(Container) (T, error), opts ...RegisterOption) error {
	return c.Register(key.name, func(c Container) (any, error) {
		return factory(c)
	}, opts...)
}

// ResolveWithKey resolves a service using a typed service key.
func ResolveWithKey[T any](c Container, key ServiceKey[T]) (T, error) {
	return Resolve[T](c, key.name)
}

// ResolveSessionWithKey resolves a session-scoped service for an explicit
// session identifier using a typed service key.
func ResolveSessionWithKey[T any](c Container, sessionID string, key ServiceKey[T]) (T, error) {
	return ResolveSession[T](c, sessionID, key.name)
}

// MustWithKey resolves a service using a typed service key and panics on error.
func MustWithKey[T any](c Container, key ServiceKey[T]) T {
	return Must[T](c, key.name)
}

// HasKey checks if a service is registered using a typed service key.
func HasKey[T any](c Container, key ServiceKey[T]) bool {
	return c.Has(key.name)
}

// InspectKey returns diagnostic information about a service using a typed
// service key.
func InspectKey[T any](c Container, key ServiceKey[T]) ServiceInfo {
	return c.Inspect(key.name)
}
