// irodori-provider-mood - Mood Palette Provider (Irodori External Provider)
//
// Maps a mood word to a base palette and varies further colours around
// it. This is the reference external provider: it answers the
// --plugin-info probe with its metadata and serves palettes over the
// go-plugin RPC protocol, using only the public pkg/plugin SDK.
//
// Build:
//   go build -o irodori-provider-mood
//
// Usage:
//   export IRODORI_PROVIDER_PATH=$PWD
//   irodori providers list
//   irodori suggest -p mood --arg mood=dusk
//
// Provider Args:
//   mood: Palette mood: calm, vivid, dusk, forest (default: calm)
//
// Author: Irodori Contributors
// License: MIT

package main

import (
	"context"
	"fmt"
	"hash/fnv"
	mathrand "math/rand/v2"
	"sort"
	"strings"

	"github.com/jmylchreest/irodori/pkg/plugin"
)

const version = "0.1.0"

// moodPalettes holds the base colours each mood grows from.
var moodPalettes = map[string][]plugin.Colour{
	"calm": {
		{R: 0x88, G: 0xA8, B: 0xC3, Name: "calm-sky"},
		{R: 0xB5, G: 0xC9, B: 0xB7, Name: "calm-sage"},
		{R: 0xE8, G: 0xE4, B: 0xD8, Name: "calm-sand"},
		{R: 0x6E, G: 0x85, B: 0x98, Name: "calm-slate"},
	},
	"vivid": {
		{R: 0xE6, G: 0x25, B: 0x3D, Name: "vivid-red"},
		{R: 0xFF, G: 0xB3, B: 0x00, Name: "vivid-amber"},
		{R: 0x00, G: 0xA8, B: 0x6B, Name: "vivid-green"},
		{R: 0x14, G: 0x60, B: 0xC8, Name: "vivid-blue"},
	},
	"dusk": {
		{R: 0x3B, G: 0x2E, B: 0x5A, Name: "dusk-violet"},
		{R: 0x8A, G: 0x4F, B: 0x7D, Name: "dusk-plum"},
		{R: 0xE0, G: 0x7A, B: 0x5F, Name: "dusk-ember"},
		{R: 0x1B, G: 0x26, B: 0x3A, Name: "dusk-night"},
	},
	"forest": {
		{R: 0x2F, G: 0x4A, B: 0x2C, Name: "forest-pine"},
		{R: 0x6B, G: 0x8F, B: 0x4E, Name: "forest-moss"},
		{R: 0xA8, G: 0x7C, B: 0x4F, Name: "forest-bark"},
		{R: 0xD9, G: 0xC9, B: 0x9E, Name: "forest-straw"},
	},
}

// MoodProvider implements the plugin.Provider interface.
type MoodProvider struct{}

// Palette returns the base palette for the requested mood, topped up
// with seeded variations when the host asks for more colours.
func (p *MoodProvider) Palette(_ context.Context, req plugin.Request) ([]plugin.Colour, error) {
	mood := "calm"
	if v, ok := req.Args["mood"].(string); ok && v != "" {
		mood = strings.ToLower(v)
	}

	base, ok := moodPalettes[mood]
	if !ok {
		return nil, fmt.Errorf("unknown mood %q (valid: %s)", mood, strings.Join(moodNames(), ", "))
	}

	count := req.Count
	if count <= 0 {
		count = len(base)
	}
	if count <= len(base) {
		return base[:count], nil
	}

	seed := req.Seed
	if seed == 0 {
		h := fnv.New64a()
		h.Write([]byte(mood))
		seed = h.Sum64()
	}
	rng := mathrand.New(mathrand.NewPCG(seed, seed))

	colours := make([]plugin.Colour, len(base), count)
	copy(colours, base)
	for i := len(base); i < count; i++ {
		parent := base[i%len(base)]
		colours = append(colours, plugin.Colour{
			R:    jitter(rng, parent.R),
			G:    jitter(rng, parent.G),
			B:    jitter(rng, parent.B),
			Name: fmt.Sprintf("%s-%d", mood, i+1),
		})
	}
	return colours, nil
}

// jitter moves a channel up to 24 steps in either direction.
func jitter(rng *mathrand.Rand, v uint8) uint8 {
	delta := rng.IntN(49) - 24
	moved := int(v) + delta
	if moved < 0 {
		return 0
	}
	if moved > 255 {
		return 255
	}
	return uint8(moved)
}

func moodNames() []string {
	names := make([]string, 0, len(moodPalettes))
	for name := range moodPalettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Info returns provider metadata for the --plugin-info probe.
func (p *MoodProvider) Info() plugin.Info {
	return plugin.Info{
		Name:            "mood",
		Version:         version,
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Palette built around a mood word (calm, vivid, dusk, forest)",
		Protocol:        plugin.ProtocolGoPlugin,
	}
}

// Flags documents the provider arguments for the host's help output.
func (p *MoodProvider) Flags() []plugin.FlagHelp {
	return []plugin.FlagHelp{
		{Name: "mood", Type: "string", Default: "calm", Description: "Palette mood: " + strings.Join(moodNames(), ", "), Required: false},
	}
}

func main() {
	plugin.Serve(&MoodProvider{})
}
