package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/catalogue"
	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
	"github.com/jmylchreest/irodori/pkg/harmony"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

var (
	// Suggest command flags
	suggestProvider string
	suggestCount    int
	suggestSeed     uint64
	suggestArgs     []string
	suggestJSON     bool
)

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest [prompt]",
	Short: "Suggest a palette from a provider",
	Long: `Ask a palette provider for colours, then score their harmony and name
each one from the catalogue.

Built-in providers: random (seeded random colours), file (palette from
disk), image (k-means extraction from an image) and gemini (a Google
Gemini model designs the palette from your prompt). External providers
discovered on the provider path appear alongside them; see
"irodori providers list".

Examples:
  # Eight random colours
  irodori suggest

  # A reproducible random palette
  irodori suggest --count 5 --seed 42

  # Vivid random colours
  irodori suggest --random.vivid

  # Let Gemini design a palette (needs GEMINI_API_KEY)
  irodori suggest -p gemini a rainy Tokyo evening

  # Score a palette file through the file provider
  irodori suggest -p file --file.path palette.txt

  # Name and score the dominant colours of a wallpaper
  irodori suggest -p image --image.path wall.png

  # Pass arguments to an external provider
  irodori suggest -p mood --arg mood=calm`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestProvider, "provider", "p", "random", "palette provider to use")
	suggestCmd.Flags().IntVarP(&suggestCount, "count", "c", 0, "number of colours (0 = provider default)")
	suggestCmd.Flags().Uint64Var(&suggestSeed, "seed", 0, "seed for deterministic providers (0 = random)")
	suggestCmd.Flags().StringArrayVar(&suggestArgs, "arg", []string{}, "provider argument as key=value (repeatable)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output as JSON")
}

// runSuggest executes the suggest command.
func runSuggest(cmd *cobra.Command, args []string) error {
	discoverProviders()

	p, ok := sharedManager.Get(suggestProvider)
	if !ok {
		return fmt.Errorf("unknown provider %q (available: %s)",
			suggestProvider, strings.Join(sharedManager.List(), ", "))
	}
	if !sharedManager.IsEnabled(suggestProvider) {
		return fmt.Errorf("provider %q is disabled", suggestProvider)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	extraArgs, err := parseProviderArgs(suggestArgs)
	if err != nil {
		return err
	}

	req := plugin.Request{
		Prompt:  strings.Join(args, " "),
		Count:   suggestCount,
		Seed:    suggestSeed,
		Verbose: flagVerbose,
		Args:    extraArgs,
	}

	verbosef("Requesting palette from %s\n", p.Name())
	raw, err := p.Palette(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("provider %s: %w", suggestProvider, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("provider %s returned no colours", suggestProvider)
	}

	bundles := make([]colour.Bundle, len(raw))
	labs := make([]colour.LAB, len(raw))
	for i, c := range raw {
		bundles[i] = colour.FromRGB(colour.RGB{R: c.R, G: c.G, B: c.B})
		labs[i] = bundles[i].Lab
	}

	score, err := harmony.Score(sharedDeltaE(), labs)
	if err != nil {
		return err
	}

	matcher, err := buildMatcher("")
	if err != nil {
		return err
	}
	nearest := make([]catalogue.Match, len(raw))
	for i := range labs {
		nearest[i], err = matcher.Closest(labs[i], deltae.CIEDE2000)
		if err != nil {
			return err
		}
	}

	if suggestJSON {
		type suggested struct {
			Hex     string          `json:"hex"`
			Name    string          `json:"name,omitempty"`
			Nearest catalogue.Match `json:"nearest"`
		}
		out := make([]suggested, len(raw))
		for i, c := range raw {
			out[i] = suggested{Hex: bundles[i].Hex, Name: c.Name, Nearest: nearest[i]}
		}
		return printJSON(struct {
			Provider string         `json:"provider"`
			Prompt   string         `json:"prompt,omitempty"`
			Colours  []suggested    `json:"colours"`
			Harmony  harmony.Result `json:"harmony"`
		}{suggestProvider, req.Prompt, out, score})
	}

	for i, c := range raw {
		var b strings.Builder
		if colourEnabled() {
			b.WriteString(colour.Swatch(bundles[i].RGB, 6))
			b.WriteString("  ")
		}
		name := c.Name
		if name == "" {
			name = nearest[i].Entry.Name
		}
		fmt.Fprintf(&b, "%s  %-20s nearest: %s (%.2f)",
			bundles[i].Hex, name, nearest[i].Entry.String(), nearest[i].Distance)
		fmt.Println(b.String())
	}
	fmt.Println()
	fmt.Printf("Harmony: %.1f/100 (%s)\n", score.Score, score.Classification)
	fmt.Println(score.Description)

	return nil
}

// parseProviderArgs parses repeated key=value pairs for the request.
func parseProviderArgs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q, want key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}
