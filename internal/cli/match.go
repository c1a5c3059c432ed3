package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/catalogue"
	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

var (
	// Match command flags
	matchCount     int
	matchMetric    string
	matchCatalogue string
	matchJSON      bool
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <colour>",
	Short: "Find the closest catalogue colours",
	Long: `Find the catalogue entries closest to a colour, ranked by perceptual
distance. The built-in catalogue holds traditional Japanese colour
names; point IRODORI_CATALOGUE or --catalogue at a JSON file to use
your own.

Examples:
  # The five closest catalogue colours
  irodori match "#DE3163"

  # A single best match
  irodori match --count 1 crimson

  # Match against your own catalogue with CIE94
  irodori match --catalogue mycolours.json --metric cie94 "#1E50A2"

  # Machine-readable output
  irodori match --json "#DE3163"`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().IntVarP(&matchCount, "count", "c", 5, "number of matches to show")
	matchCmd.Flags().StringVarP(&matchMetric, "metric", "m", "ciede2000", "distance metric (cie76, cie94, ciede2000)")
	matchCmd.Flags().StringVar(&matchCatalogue, "catalogue", "", "catalogue file (default: built-in)")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output as JSON")
}

// runMatch executes the match command.
func runMatch(cmd *cobra.Command, args []string) error {
	bundle, err := colour.Normalize(colour.ParseInput(args[0]))
	if err != nil {
		return err
	}

	metric, err := resolveMetric(cmd, matchMetric)
	if err != nil {
		return err
	}

	matcher, err := buildMatcher(matchCatalogue)
	if err != nil {
		return err
	}
	verbosef("Matching against %d catalogue entries\n", matcher.Len())

	count := matchCount
	if count > matcher.Len() {
		count = matcher.Len()
	}
	if count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	matches, err := matcher.ClosestK(bundle.Lab, count, metric)
	if err != nil {
		return err
	}

	if matchJSON {
		return printJSON(struct {
			Query   string            `json:"query"`
			Metric  deltae.Metric     `json:"metric"`
			Matches []catalogue.Match `json:"matches"`
		}{bundle.Hex, metric, matches})
	}

	if colourEnabled() {
		fmt.Printf("Query: %s %s (%s)\n\n", colour.Swatch(bundle.RGB, 4), bundle.Hex, metric)
	} else {
		fmt.Printf("Query: %s (%s)\n\n", bundle.Hex, metric)
	}
	fmt.Print(renderMatches(matches))
	return nil
}

// renderMatches lays matches out as a table, with a swatch appended to
// each row when the terminal can show colour. The swatch goes after the
// aligned columns so its escape codes cannot disturb the layout.
func renderMatches(matches []catalogue.Match) string {
	table := NewTable("NAME", "NATIVE", "HEX", "DISTANCE", "CATEGORY")
	for _, m := range matches {
		table.AddRow(m.Entry.Name, m.Entry.Native, m.Entry.Hex,
			fmt.Sprintf("%.4f", m.Distance), string(m.Entry.Category))
	}

	rendered := table.Render()
	if !colourEnabled() {
		return rendered
	}

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	var out strings.Builder
	for i, line := range lines {
		out.WriteString(line)
		// Lines 0 and 1 are the header and separator.
		if i >= 2 && i-2 < len(matches) {
			if rgb, err := colour.ParseHex(matches[i-2].Entry.Hex); err == nil {
				out.WriteString("  ")
				out.WriteString(colour.Swatch(rgb, 4))
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}
