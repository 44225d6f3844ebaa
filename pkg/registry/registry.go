package registry

import (
	"sync"

	"github.com/martinsuchenak/minerscan/pkg/discovery"
)

// Registry manages discovery factory providers.
// Probing backends register themselves by name so the scanner core stays
// independent of any concrete device protocol.
type Registry struct {
	mu sync.RWMutex

	// Provider factories
	factoryProviders map[string]discovery.FactoryFunc
	defaultProvider  string
}

var (
	registryInstance *Registry
	registryOnce     sync.Once
)

// GetRegistry returns the singleton registry instance
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		registryInstance = &Registry{
			factoryProviders: make(map[string]discovery.FactoryFunc),
		}
	})
	return registryInstance
}

// RegisterFactoryProvider registers a discovery factory provider.
// The first provider registered becomes the default.
func (r *Registry) RegisterFactoryProvider(name string, factory discovery.FactoryFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.factoryProviders) == 0 {
		r.defaultProvider = name
	}
	r.factoryProviders[name] = factory
}

// GetFactoryProvider returns a discovery factory provider by name
func (r *Registry) GetFactoryProvider(name string) (discovery.FactoryFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, exists := r.factoryProviders[name]
	return factory, exists
}

// SetDefaultProvider sets the provider returned by DefaultProvider.
// Returns false if no provider with that name is registered.
func (r *Registry) SetDefaultProvider(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factoryProviders[name]; !exists {
		return false
	}
	r.defaultProvider = name
	return true
}

// DefaultProvider returns the default discovery factory provider
func (r *Registry) DefaultProvider() (discovery.FactoryFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, exists := r.factoryProviders[r.defaultProvider]
	return factory, exists
}

// ListFactoryProviders returns all registered provider names
func (r *Registry) ListFactoryProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factoryProviders))
	for name := range r.factoryProviders {
		names = append(names, name)
	}
	return names
}
