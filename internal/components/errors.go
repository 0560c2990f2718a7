package components

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateDefinition indicates an attempt to register a component name twice.
	ErrDuplicateDefinition = errors.New("component: duplicate definition")
	// ErrInvalidDefinition occurs when a definition fails schema validation.
	ErrInvalidDefinition = errors.New("component: invalid definition")
	// ErrRegistryFrozen indicates a registration attempt after the registry was sealed.
	ErrRegistryFrozen = errors.New("component: registry is frozen")
	// ErrUnresolvedComponent indicates content referenced a component the registry does not know.
	ErrUnresolvedComponent = errors.New("component: unresolved component")
)

// UnresolvedComponentError carries the offending tag name so error boundaries
// can report which component the author misspelled or never registered.
type UnresolvedComponentError struct {
	Name string
}

func (e *UnresolvedComponentError) Error() string {
	return fmt.Sprintf("component: unresolved component %q", e.Name)
}

// Is lets errors.Is treat every UnresolvedComponentError as ErrUnresolvedComponent.
func (e *UnresolvedComponentError) Is(target error) bool {
	return target == ErrUnresolvedComponent
}
