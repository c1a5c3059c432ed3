package provider

import (
	"context"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

// defaultRandomCount is how many colours the random provider generates
// when the request does not ask for a specific number.
const defaultRandomCount = 8

// RandomProvider generates random colours. A non-zero request seed
// makes the output reproducible.
type RandomProvider struct {
	vivid bool
}

// NewRandomProvider creates the built-in random provider.
func NewRandomProvider() *RandomProvider {
	return &RandomProvider{}
}

// Name returns the provider name.
func (p *RandomProvider) Name() string {
	return "random"
}

// Description returns the provider description.
func (p *RandomProvider) Description() string {
	return "Generate random colours, reproducible with a seed"
}

// RegisterFlags registers the random provider's flags.
func (p *RandomProvider) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.vivid, "random.vivid", false, "Constrain saturation and lightness to vivid ranges")
}

// Validate always succeeds; the random provider has no required inputs.
func (p *RandomProvider) Validate() error {
	return nil
}

// FlagHelp describes the random provider's flags.
func (p *RandomProvider) FlagHelp() []plugin.FlagHelp {
	return FlagHelpFor(NewRandomProvider())
}

// Palette generates req.Count random colours (or defaultRandomCount when
// the request does not specify one). Colours are drawn in HSL so the
// vivid constraint maps directly onto saturation and lightness.
func (p *RandomProvider) Palette(_ context.Context, req plugin.Request) ([]plugin.Colour, error) {
	count := req.Count
	if count <= 0 {
		count = defaultRandomCount
	}

	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	colours := make([]plugin.Colour, count)
	for i := range colours {
		hsl := colour.HSL{H: rng.Float64() * 360}
		if p.vivid {
			hsl.S = 55 + rng.Float64()*45
			hsl.L = 35 + rng.Float64()*30
		} else {
			hsl.S = rng.Float64() * 100
			hsl.L = rng.Float64() * 100
		}
		rgb := colour.HSLToRGB(hsl)
		colours[i] = plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B}
	}
	return colours, nil
}
