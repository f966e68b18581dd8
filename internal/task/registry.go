package task

import (
	"sort"

	spinerrors "github.com/maxkimambo/spin/internal/errors"
)

// GroupSeparator joins task names that run as one sequence inside a parallel group.
const GroupSeparator = "+"

// Registry maps task names to their definitions.
type Registry map[string]Definition

// Names returns the registered task names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the definition registered under name, if it is runnable.
func (r Registry) Lookup(name string) (Definition, bool) {
	def, ok := r[name]
	if !ok || def == nil || !def.valid() {
		return nil, false
	}
	return def, true
}

// Resolve builds a fresh Runnable for name. A name that is missing from the
// registry, or registered with a nil function, yields a TaskNotFound error.
func Resolve(name string, registry Registry) (*Runnable, error) {
	def, ok := registry.Lookup(name)
	if !ok {
		return nil, spinerrors.NewTaskNotFoundError(name)
	}
	return &Runnable{name: name, def: def}, nil
}
