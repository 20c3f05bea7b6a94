// Package registry implements the process-wide ordered instance table
// of spec §4.8: a list of [processor.Instance]s built once at init, with
// linear name lookup, index-based id lookup, and a short-circuiting
// ForEach. Per spec §9's design note it is an explicit, constructible
// value — never a process-global singleton — so tests can build an
// empty Registry of their own.
package registry

import (
	"fmt"
	"sync"

	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
)

// Registry is an ordered, append-only list of instances, safe for
// concurrent use: the registry itself is mutated only at init (spec
// §5), but lookups may run from any goroutine once built.
type Registry struct {
	mu        sync.Mutex
	instances []*processor.Instance
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Add appends inst to the registry, assigning it the next numeric id
// (its index). Add is intended for init-time use only.
func (reg *Registry) Add(inst *processor.Instance) (id int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.instances = append(reg.instances, inst)

	return len(reg.instances) - 1
}

// Len returns the number of registered instances.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.instances)
}

// ByName resolves name to its instance via a linear scan (names are
// short and the count small, per spec §4.8).
func (reg *Registry) ByName(name string) (*processor.Instance, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, inst := range reg.instances {
		if inst.Name() == name {
			return inst, true
		}
	}

	return nil, false
}

// ByID resolves a numeric id (its registration index) to an instance.
func (reg *Registry) ByID(id int) (*processor.Instance, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if id < 0 || id >= len(reg.instances) {
		return nil, false
	}

	return reg.instances[id], true
}

// ForEach calls fn for every registered instance, in registration
// order, stopping at the first call that returns a non-nil error (the
// short-circuiting behavior spec §4.8 names).
func (reg *Registry) ForEach(fn func(id int, inst *processor.Instance) error) error {
	reg.mu.Lock()
	snapshot := make([]*processor.Instance, len(reg.instances))
	copy(snapshot, reg.instances)
	reg.mu.Unlock()

	for id, inst := range snapshot {
		if err := fn(id, inst); err != nil {
			return fmt.Errorf("registry: ForEach stopped at id %d: %w", id, err)
		}
	}

	return nil
}
