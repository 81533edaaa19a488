package berth

// ServiceInfo contains diagnostic information about a registration.
type ServiceInfo struct {
	// Name is the registered service name.
	Name string

	// Lifetime is the declared lifetime.
	Lifetime Lifetime

	// Decorators lists the names of the declared decorator chain, outermost
	// first.
	Decorators []string

	// Groups lists the service's group memberships.
	Groups []string

	// Metadata holds registration metadata.
	Metadata map[string]string

	// Built reports whether the singleton instance has been constructed.
	// Always false for other lifetimes.
	Built bool
}

// ServiceQuery defines criteria for querying services.
type ServiceQuery struct {
	// Lifetime filters by service lifetime. nil matches all lifetimes.
	Lifetime *Lifetime

	// Group filters by service group.
	// Empty string matches all groups.
	Group string

	// Metadata filters by metadata key-value pairs.
	// All specified metadata must match for a service to be included.
	Metadata map[string]string
}

// Query returns detailed information about services matching the criteria.
//
// Example:
//
//	// Find every session-scoped service in the "db" group
//	lt := berth.LifetimeSession
//	results := berth.Query(c, berth.ServiceQuery{Lifetime: &lt, Group: "db"})
func Query(c Container, query ServiceQuery) []ServiceInfo {
	var results []ServiceInfo

	for _, name := range c.Services() {
		info := c.Inspect(name)

		if query.Lifetime != nil && info.Lifetime != *query.Lifetime {
			continue
		}

		if query.Group != "" {
			hasGroup := false
			for _, group := range info.Groups {
				if group == query.Group {
					hasGroup = true
					break
				}
			}
			if !hasGroup {
				continue
			}
		}

		if len(query.Metadata) > 0 {
			allMatch := true
			for key, value := range query.Metadata {
				if info.Metadata[key] != value {
					allMatch = false
					break
				}
			}
			if !allMatch {
				continue
			}
		}

		results = append(results, info)
	}

	return results
}

// QueryNames returns the names of services matching the query criteria.
func QueryNames(c Container, query ServiceQuery) []string {
	results := Query(c, query)
	names := make([]string, len(results))
	for i, info := range results {
		names[i] = info.Name
	}
	return names
}

// FindByLifetime returns all services with a specific lifetime.
func FindByLifetime(c Container, lifetime Lifetime) []ServiceInfo {
	return Query(c, ServiceQuery{Lifetime: &lifetime})
}

// FindByGroup returns all services in a specific group.
func FindByGroup(c Container, group string) []ServiceInfo {
	return Query(c, ServiceQuery{Group: group})
}
