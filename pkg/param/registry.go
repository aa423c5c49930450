package param

import (
	"fmt"
	"sync"
)

// Registry is the generic named-parameter lookup the core depends on.
// Implementations must serialize access if shared with other subsystems.
type Registry interface {
	// Get returns the parameter with the given name.
	Get(name string) (*Parameter, bool)

	// Add registers a new parameter. Names must be unique.
	Add(p *Parameter) error

	// Set writes a value on behalf of the host. Read-only parameters are
	// rejected.
	Set(name string, value any) error

	// SetRaw applies a value from device telemetry, bypassing the
	// read-only check.
	SetRaw(name string, value any) error

	// Names returns all parameter names in definition order.
	Names() []string

	// Rules returns the definition's exclusion rules.
	Rules() []ExclusionRule

	// AllLoaded reports whether every parameter has received a value.
	AllLoaded() bool

	// ResetLoaded marks every parameter unloaded, for reconnects.
	ResetLoaded()

	// OnChange registers a callback invoked after a value change.
	OnChange(fn func(p *Parameter))
}

// MemoryRegistry is the in-memory Registry implementation.
type MemoryRegistry struct {
	mu sync.RWMutex

	params map[string]*Parameter
	order  []string
	rules  []ExclusionRule

	onChange []func(p *Parameter)
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		params: make(map[string]*Parameter),
	}
}

// Add registers a parameter. Names must be unique.
func (r *MemoryRegistry) Add(p *Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.params[p.Name()]; exists {
		return fmt.Errorf("duplicate parameter %q", p.Name())
	}
	r.params[p.Name()] = p
	r.order = append(r.order, p.Name())
	return nil
}

// Get returns the parameter with the given name.
func (r *MemoryRegistry) Get(name string) (*Parameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.params[name]
	return p, ok
}

// Set writes a value on behalf of the host.
func (r *MemoryRegistry) Set(name string, value any) error {
	r.mu.RLock()
	p, ok := r.params[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if p.ReadOnly() {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if p.setValue(value) {
		r.notify(p)
	}
	return nil
}

// SetRaw applies a value from device telemetry.
func (r *MemoryRegistry) SetRaw(name string, value any) error {
	r.mu.RLock()
	p, ok := r.params[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if p.setValue(value) {
		r.notify(p)
	}
	return nil
}

// Names returns all parameter names in definition order.
func (r *MemoryRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SetRules installs the definition's exclusion rules.
func (r *MemoryRegistry) SetRules(rules []ExclusionRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = rules
}

// Rules returns the definition's exclusion rules.
func (r *MemoryRegistry) Rules() []ExclusionRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules
}

// OnChange registers a change callback.
func (r *MemoryRegistry) OnChange(fn func(p *Parameter)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// AllLoaded reports whether every parameter has received a value.
func (r *MemoryRegistry) AllLoaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		if !r.params[name].Loaded() {
			return false
		}
	}
	return len(r.order) > 0
}

// ResetLoaded marks every parameter unloaded. Values stay in place for
// display until the device reports fresh ones.
func (r *MemoryRegistry) ResetLoaded() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.params {
		p.resetLoaded()
	}
}

// notify invokes change callbacks outside the registry lock.
func (r *MemoryRegistry) notify(p *Parameter) {
	r.mu.RLock()
	callbacks := make([]func(*Parameter), len(r.onChange))
	copy(callbacks, r.onChange)
	r.mu.RUnlock()

	for _, fn := range callbacks {
		fn(p)
	}
}

// Compile-time interface satisfaction check.
var _ Registry = (*MemoryRegistry)(nil)
