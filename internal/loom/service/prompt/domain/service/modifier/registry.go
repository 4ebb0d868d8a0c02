package modifier

import (
	"fmt"
	"sync"

	"github.com/kiosk404/promptloom/internal/loom/service/prompt/domain/service/hook"
	"github.com/kiosk404/promptloom/internal/loom/service/prompt/pkg/errno"
	"github.com/kiosk404/promptloom/pkg/logger"
)

// Registry maps modifier ids to their definitions.
//
// It is filled once at startup and read by every pipeline run afterwards.
// Thread-safe: all mutations are guarded by a mutex.
type Registry struct {
	mu sync.RWMutex

	modifiers map[string]Modifier

	// order preserves registration order, which is also tap order.
	order []string
}

// NewRegistry creates an empty modifier registry.
func NewRegistry() *Registry {
	return &Registry{
		modifiers: make(map[string]Modifier),
	}
}

// Register adds m. Ids are unique; a second registration is an error.
func (r *Registry) Register(m Modifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := m.ModifierID()
	if id == "" {
		return fmt.Errorf("%w: empty modifier id", errno.ErrInvalidModifierConfig)
	}
	if _, exists := r.modifiers[id]; exists {
		return fmt.Errorf("%w: %q", errno.ErrModifierAlreadyRegistered, id)
	}
	r.modifiers[id] = m
	r.order = append(r.order, id)
	logger.Debug("[Modifier] registered modifier %q", id)
	return nil
}

// MustRegister is Register for startup code; it panics on error.
func (r *Registry) MustRegister(m Modifier) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Get returns the modifier registered under id.
func (r *Registry) Get(id string) (Modifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modifiers[id]
	return m, ok
}

// List describes all modifiers in registration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.modifiers[id].Describe())
	}
	return result
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Len returns the number of registered modifiers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modifiers)
}

// ApplyTo installs every modifier on hooks in registration order.
func (r *Registry) ApplyTo(hooks *hook.Hooks) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		r.modifiers[id].Install(hooks)
	}
}

// NewHooks builds a fresh pair of phases carrying every registered modifier.
func (r *Registry) NewHooks() *hook.Hooks {
	hooks := hook.NewHooks()
	r.ApplyTo(hooks)
	return hooks
}
