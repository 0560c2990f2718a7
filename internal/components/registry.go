package components

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Registry is the thread-safe in-memory implementation of interfaces.ComponentRegistry.
// After Freeze is called the catalogue is closed: later registrations fail so
// rendering only ever resolves against the set fixed at bootstrap.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]interfaces.ComponentDefinition
	validator   DefinitionValidator
	frozen      bool
}

// DefinitionValidator abstracts definition validation so callers can customise behaviour in tests.
type DefinitionValidator interface {
	ValidateDefinition(def interfaces.ComponentDefinition) error
}

// NewRegistry constructs a registry using the supplied validator.
func NewRegistry(validator DefinitionValidator) *Registry {
	return &Registry{
		definitions: make(map[string]interfaces.ComponentDefinition),
		validator:   validator,
	}
}

// Register stores a definition if it passes validation, the registry is still
// open, and the name is not taken.
func (r *Registry) Register(def interfaces.ComponentDefinition) error {
	name := strings.TrimSpace(strings.ToLower(def.Name))
	if name == "" {
		return ErrInvalidDefinition
	}

	if r.validator != nil {
		if err := r.validator.ValidateDefinition(def); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}

	if _, exists := r.definitions[name]; exists {
		return ErrDuplicateDefinition
	}

	r.definitions[name] = def
	return nil
}

// Get returns the stored definition.
func (r *Registry) Get(name string) (interfaces.ComponentDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[strings.ToLower(name)]
	return def, ok
}

// List returns all registered definitions in name order.
func (r *Registry) List() []interfaces.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]interfaces.ComponentDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Freeze seals the registry. Registration after Freeze returns ErrRegistryFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Ensure Registry implements interfaces.ComponentRegistry.
var _ interfaces.ComponentRegistry = (*Registry)(nil)
