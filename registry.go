package berth

import (
	"sync"

	"go.uber.org/zap"
)

// serviceRegistration is the immutable descriptor for one service: its name,
// declared lifetime, factory, and decorator chain. The singleton slot is the
// only mutable part and has its own lock.
type serviceRegistration struct {
	name       string
	lifetime   Lifetime
	factory    Factory
	decorators []Decorator
	groups     []string
	metadata   map[string]string

	// singleton instance slot, double-checked under mu
	mu       sync.RWMutex
	instance any
	built    bool
}

// policyTable maps service names to their registrations. It is built during
// startup and read-mostly afterwards, so a single RWMutex over the map is
// enough; per-instance synchronization lives in the registrations and the
// session cache.
type policyTable struct {
	mu       sync.RWMutex
	services map[string]*serviceRegistration
	logger   *zap.Logger
}

func newPolicyTable(logger *zap.Logger) *policyTable {
	return &policyTable{
		services: make(map[string]*serviceRegistration),
		logger:   logger,
	}
}

// register adds a registration, applying the duplicate mode when the name is
// already taken.
func (t *policyTable) register(reg *serviceRegistration, mode DuplicateMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.services[reg.name]; exists {
		switch mode {
		case DuplicateKeep:
			return nil
		case DuplicateReplace:
			t.logger.Info("replacing service registration",
				zap.String("service", reg.name),
				zap.Stringer("lifetime", reg.lifetime))
		default:
			t.logger.Warn("duplicate service registration rejected",
				zap.String("service", reg.name))

			return ErrDuplicateRegistration(reg.name)
		}
	}

	t.services[reg.name] = reg

	return nil
}

// lookup returns the registration for name.
func (t *policyTable) lookup(name string) (*serviceRegistration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reg, ok := t.services[name]

	return reg, ok
}

// names returns all registered service names.
func (t *policyTable) names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.services))
	for name := range t.services {
		names = append(names, name)
	}

	return names
}
