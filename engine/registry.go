package engine

import (
	"fmt"

	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
)

// Factory constructs one component for an entity from its parameter block.
// The factory may look up siblings already attached to the entity; siblings
// declared later in the document are not built yet and resolve to nil.
type Factory func(e core.Entity, w *World, cfg *config.Config) (Component, error)

// Registry is the closed table of component types the kernel can construct.
// It is populated once at startup and never mutated afterwards, so archetype
// documents can be validated against it at load time rather than failing on
// first use.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a factory under a component type name. Registering the same
// name twice is a programming error and panics.
func (r *Registry) Register(name string, f Factory) {
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("component type %q registered twice", name))
	}
	r.factories[name] = f
}

// Lookup returns the factory for a component type name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// Validate checks that every component name in an archetype document is
// registered. Run over all content at startup so that a typo in a document
// surfaces before the first spawn.
func (r *Registry) Validate(cfg *config.Config) error {
	for _, entry := range cfg.Components() {
		if _, ok := r.factories[entry.Name]; !ok {
			return &config.Error{
				File:   cfg.File(),
				Key:    entry.Name,
				Detail: "unknown component type",
			}
		}
	}
	return nil
}
