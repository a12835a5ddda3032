package feature

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotRegistered is returned by Create for unknown (backend, type) pairs.
var ErrNotRegistered = errors.New("feature: not registered")

// ErrBadOptions is returned by factories given options of the wrong type.
var ErrBadOptions = errors.New("feature: bad options")

// Factory constructs a renderer-specific feature. opts is the feature type's
// options struct, or nil for defaults.
type Factory func(layer Layer, opts any) (Feature, error)

type key struct {
	backend     string
	featureType string
}

var (
	registryMu sync.RWMutex
	factories  = make(map[key]Factory)
)

// Register registers a factory for a backend and feature type. It is
// typically called from init() in backend packages. A later registration
// for the same pair replaces the earlier one.
func Register(backend, featureType string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[key{backend, featureType}] = factory
}

// Unregister removes a registration. This is useful for testing.
func Unregister(backend, featureType string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, key{backend, featureType})
}

// Registered returns the sorted feature types registered for backend.
func Registered(backend string) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var types []string
	for k := range factories {
		if k.backend == backend {
			types = append(types, k.featureType)
		}
	}
	sort.Strings(types)
	return types
}

// Create constructs a feature through the registered factory.
func Create(backend, featureType string, layer Layer, opts any) (Feature, error) {
	registryMu.RLock()
	factory, ok := factories[key{backend, featureType}]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotRegistered, backend, featureType)
	}
	return factory(layer, opts)
}
