package plot

import (
	"fmt"
	"sort"
	"sync"
)

type backendEntry struct {
	desc     Descriptor
	factory  Factory
	bindings bindingTable
}

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]*backendEntry)
)

// Register adds a backend to the registry. The descriptor is copied and is
// never mutated afterwards.
//
// One driver is created from factory to resolve the dispatch table: every
// operation must be implemented by the driver or listed in desc.Delegate,
// never both.
//
// Register fails if:
//   - factory is nil or returns nil
//   - the descriptor leaves a capability, scaling class or other field unset
//   - a backend with the same name is already registered
//   - an operation is unbound or bound twice
func Register(desc Descriptor, factory Factory) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("%w: %s: nil factory", ErrInvalidDescriptor, desc.Name)
	}
	drv := factory()
	if drv == nil {
		return fmt.Errorf("%w: %s: factory returned nil driver", ErrInvalidDescriptor, desc.Name)
	}
	table, err := bind(desc.Name, drv, desc.Delegate)
	if err != nil {
		return err
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := backends[desc.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateBackend, desc.Name)
	}
	backends[desc.Name] = &backendEntry{desc: desc, factory: factory, bindings: table}
	return nil
}

// MustRegister is like Register but panics on error.
// It is typically called from init() in backend packages, following the
// database/sql driver pattern:
//
//	func init() {
//	    plot.MustRegister(descriptor, func() plot.Driver { return new(driver) })
//	}
func MustRegister(desc Descriptor, factory Factory) {
	if err := Register(desc, factory); err != nil {
		panic(err)
	}
}

// Unregister removes a backend from the registry.
// This is primarily useful for testing to clean up between tests.
// If the backend is not registered, this is a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Lookup returns the descriptor of a registered backend.
func Lookup(name string) (Descriptor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := backends[name]
	if !ok {
		return Descriptor{}, false
	}
	return e.desc, true
}

// Bindings reports, for every operation, whether the backend implements it
// or delegates it to the generic implementation.
func Bindings(name string) (map[Op]Binding, error) {
	e, err := lookupEntry(name)
	if err != nil {
		return nil, err
	}
	m := make(map[Op]Binding, numOps)
	for op, b := range e.bindings {
		m[Op(op)] = b
	}
	return m, nil
}

// Backends returns a sorted list of registered backend names.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupEntry(name string) (*backendEntry, error) {
	registryMu.RLock()
	e, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return e, nil
}
