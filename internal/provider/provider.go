// Package provider hosts the palette providers that feed colours into
// irodori. Built-in providers are compiled into the binary; external
// providers are standalone executables speaking the protocol defined in
// pkg/plugin.
package provider

import (
	"context"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/plugin"
)

// Provider is a source of colour palettes.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string

	// Description returns a short human-readable description.
	Description() string

	// RegisterFlags registers provider-specific flags on the command.
	// Built-in providers bind flags directly to their own fields;
	// external providers receive their arguments through the request
	// instead and register nothing.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks that the provider is ready to run with its
	// current configuration.
	Validate() error

	// Palette produces colours for the request.
	Palette(ctx context.Context, req plugin.Request) ([]plugin.Colour, error)

	// FlagHelp describes the provider's flags for help output.
	FlagHelp() []plugin.FlagHelp
}

// Registry holds providers by name. Registration happens during startup;
// the registry is not safe for concurrent mutation.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry. A provider with the same
// name replaces the previous registration.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// List returns the names of all registered providers, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of the provider map.
func (r *Registry) All() map[string]Provider {
	all := make(map[string]Provider, len(r.providers))
	for name, p := range r.providers {
		all[name] = p
	}
	return all
}
