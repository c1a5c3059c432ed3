package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

var (
	// Distance command flags
	distanceMetric string
	distanceAll    bool
	distanceStats  bool
	distanceJSON   bool
)

// distanceCmd represents the distance command
var distanceCmd = &cobra.Command{
	Use:   "distance <colour1> <colour2>",
	Short: "Measure the perceptual distance between two colours",
	Long: `Measure how different two colours look, as a delta E value in CIE LAB
space. Roughly: below 1 is imperceptible, 1-2 needs a trained eye,
2-10 is visible at a glance and 50+ means the colours are clearly
different.

The metric defaults to CIEDE2000 and can also be set through the
IRODORI_METRIC environment variable; the flag wins when both are given.

Examples:
  # Distance with the default metric
  irodori distance "#FF0000" "#FE0000"

  # Pick a specific formula
  irodori distance --metric cie76 "#DE3163" "#1E50A2"

  # Compare all three formulae at once
  irodori distance --all crimson navy

  # Include engine statistics
  irodori distance --all --stats "#112233" "#445566"`,
	Args: cobra.ExactArgs(2),
	RunE: runDistance,
}

func init() {
	distanceCmd.Flags().StringVarP(&distanceMetric, "metric", "m", "ciede2000", "distance metric (cie76, cie94, ciede2000)")
	distanceCmd.Flags().BoolVar(&distanceAll, "all", false, "show all metrics")
	distanceCmd.Flags().BoolVar(&distanceStats, "stats", false, "show engine statistics")
	distanceCmd.Flags().BoolVar(&distanceJSON, "json", false, "output as JSON")
}

// runDistance executes the distance command.
func runDistance(cmd *cobra.Command, args []string) error {
	b1, err := colour.Normalize(colour.ParseInput(args[0]))
	if err != nil {
		return err
	}
	b2, err := colour.Normalize(colour.ParseInput(args[1]))
	if err != nil {
		return err
	}

	eng := sharedDeltaE()

	metrics := []deltae.Metric{}
	if distanceAll {
		metrics = deltae.Metrics()
	} else {
		m, err := resolveMetric(cmd, distanceMetric)
		if err != nil {
			return err
		}
		metrics = append(metrics, m)
	}

	distances := make(map[deltae.Metric]float64, len(metrics))
	for _, m := range metrics {
		d, err := eng.Distance(b1.Lab, b2.Lab, m)
		if err != nil {
			return err
		}
		distances[m] = d
	}

	if distanceJSON {
		out := struct {
			Colour1   string                    `json:"colour1"`
			Colour2   string                    `json:"colour2"`
			Distances map[deltae.Metric]float64 `json:"distances"`
			Stats     *deltae.Stats             `json:"stats,omitempty"`
		}{
			Colour1:   b1.Hex,
			Colour2:   b2.Hex,
			Distances: distances,
		}
		if distanceStats {
			stats := eng.Stats()
			out.Stats = &stats
		}
		return printJSON(out)
	}

	if colourEnabled() {
		fmt.Printf("%s %s  %s %s\n", colour.Swatch(b1.RGB, 4), b1.Hex, colour.Swatch(b2.RGB, 4), b2.Hex)
	} else {
		fmt.Printf("%s  %s\n", b1.Hex, b2.Hex)
	}
	for _, m := range metrics {
		fmt.Printf("%-10s %.4f\n", m.String()+":", distances[m])
	}

	if distanceStats {
		printEngineStats(eng.Stats())
	}
	return nil
}

// printEngineStats renders engine counters for terminal output.
func printEngineStats(s deltae.Stats) {
	fmt.Println()
	fmt.Println("Engine statistics:")
	fmt.Printf("  calculations: %d\n", s.Calculations)
	fmt.Printf("  average time: %s\n", s.AverageTime)
	fmt.Printf("  cache:        %d hits, %d misses (%.1f%% hit rate)\n",
		s.CacheHits, s.CacheMisses, s.CacheHitRate*100)
	fmt.Printf("  cache size:   %d/%d\n", s.CacheSize, s.CacheCapacity)
}
