// Package plugin is the public API for irodori palette providers.
// External providers import this package, implement Provider and hand it
// to Serve; they never need the host's internal packages.
package plugin

import (
	"context"
	"fmt"
)

// Provider is implemented by palette providers. A provider produces a set
// of colours from its own inputs (a file, a remote service, a generative
// model) which the host then converts, matches and scores.
type Provider interface {
	// Palette produces colours for the given request.
	Palette(ctx context.Context, req Request) ([]Colour, error)

	// Info returns provider metadata.
	Info() Info

	// Flags describes the provider-specific arguments accepted via
	// Request.Args, for help output on the host side.
	Flags() []FlagHelp
}

// Request holds the host's parameters for a palette generation.
type Request struct {
	// Prompt is free-form guidance for generative providers, for example
	// "a rainy Tokyo evening". Providers without a text model ignore it.
	Prompt string `json:"prompt,omitempty"`

	// Count is the number of colours the host would like. Providers may
	// return fewer when their source cannot supply that many.
	Count int `json:"count"`

	// Seed makes generation reproducible for providers that randomise.
	// Zero means the provider chooses its own seed.
	Seed uint64 `json:"seed,omitempty"`

	// Verbose asks the provider to log progress to stderr.
	Verbose bool `json:"verbose"`

	// Args carries provider-specific arguments as primitive values.
	Args map[string]any `json:"args,omitempty"`
}

// Colour is one palette entry on the wire.
type Colour struct {
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`
	Name string `json:"name,omitempty"`
}

// Hex renders the colour as an uppercase hex string.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Info contains metadata about a provider.
type Info struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	ProtocolVersion string   `json:"protocol_version"`
	Description     string   `json:"description"`
	Protocol        Protocol `json:"protocol"`
}

// FlagHelp documents a single provider argument.
type FlagHelp struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand"`
	Type        string `json:"type"`
	Default     string `json:"default"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}
