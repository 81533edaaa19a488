package berth

// ServiceRegistration holds configuration for a service to be registered.
// A slice of these is the explicit, statically-built registration table that
// replaces any attribute or reflection driven assembly scanning: declare the
// table once at startup and feed it to RegisterServices.
type ServiceRegistration struct {
	Name    string
	Factory Factory
	Options []RegisterOption
}

// Service creates a ServiceRegistration for batch registration.
//
// Example:
//
//	berth.RegisterServices(c,
//	    berth.Service("conn", NewConn, berth.SessionScoped()),
//	    berth.Service("audit", NewAudit, berth.Singleton()),
//	)
func Service(name string, factory Factory, opts ...RegisterOption) ServiceRegistration {
	return ServiceRegistration{
		Name:    name,
		Factory: factory,
		Options: opts,
	}
}

// RegisterServices registers multiple services in a single call.
// Returns error if any service registration fails; earlier entries in the
// table stay registered.
func RegisterServices(c Container, services ...ServiceRegistration) error {
	for _, svc := range services {
		if err := c.Register(svc.Name, svc.Factory, svc.Options...); err != nil {
			return err
		}
	}
	return nil
}
