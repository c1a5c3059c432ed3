package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/internal/provider"
	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/harmony"
)

// watchDebounce coalesces the burst of filesystem events an editor save
// produces into one re-score.
const watchDebounce = 100 * time.Millisecond

var (
	// Harmony command flags
	harmonyFile  string
	harmonyWatch bool
	harmonyJSON  bool
)

// harmonyCmd represents the harmony command
var harmonyCmd = &cobra.Command{
	Use:   "harmony [colour]...",
	Short: "Score how well a set of colours works together",
	Long: `Score a palette's harmony from the spread of its pairwise perceptual
distances, classifying it as monochromatic, analogous, triadic or
complementary.

Colours can be given as arguments or read from a palette file (JSON
array or one hex colour per line). With --watch the file is re-scored
every time it changes, which makes palette tuning interactive.

Examples:
  # Score three colours
  irodori harmony "#DE3163" "#E6B422" "#1E50A2"

  # Score a palette file
  irodori harmony --file palette.txt

  # Re-score on every save
  irodori harmony --file palette.txt --watch`,
	RunE: runHarmony,
}

func init() {
	harmonyCmd.Flags().StringVarP(&harmonyFile, "file", "f", "", "read the palette from a file instead of arguments")
	harmonyCmd.Flags().BoolVarP(&harmonyWatch, "watch", "w", false, "re-score whenever the palette file changes")
	harmonyCmd.Flags().BoolVar(&harmonyJSON, "json", false, "output as JSON")
}

// runHarmony executes the harmony command.
func runHarmony(cmd *cobra.Command, args []string) error {
	if harmonyFile == "" && len(args) == 0 {
		return fmt.Errorf("give colours as arguments or use --file")
	}
	if harmonyFile != "" && len(args) > 0 {
		return fmt.Errorf("give colours as arguments or --file, not both")
	}
	if harmonyWatch && harmonyFile == "" {
		return fmt.Errorf("--watch requires --file")
	}

	if err := scoreHarmony(args); err != nil {
		return err
	}
	if !harmonyWatch {
		return nil
	}
	return watchHarmony(cmd.Context(), harmonyFile, args)
}

// scoreHarmony loads the palette, scores it and prints the result.
func scoreHarmony(args []string) error {
	bundles, err := loadHarmonyPalette(args)
	if err != nil {
		return err
	}

	labs := make([]colour.LAB, len(bundles))
	for i, b := range bundles {
		labs[i] = b.Lab
	}

	result, err := harmony.Score(sharedDeltaE(), labs)
	if err != nil {
		return err
	}
	return printHarmony(bundles, result)
}

// loadHarmonyPalette resolves the palette from --file or the arguments.
func loadHarmonyPalette(args []string) ([]colour.Bundle, error) {
	if harmonyFile != "" {
		colours, err := provider.ParsePaletteFile(harmonyFile)
		if err != nil {
			return nil, err
		}
		bundles := make([]colour.Bundle, len(colours))
		for i, c := range colours {
			bundles[i] = colour.FromRGB(colour.RGB{R: c.R, G: c.G, B: c.B})
		}
		return bundles, nil
	}

	bundles := make([]colour.Bundle, len(args))
	for i, arg := range args {
		b, err := colour.Normalize(colour.ParseInput(arg))
		if err != nil {
			return nil, err
		}
		bundles[i] = b
	}
	return bundles, nil
}

// printHarmony renders a scored palette.
func printHarmony(bundles []colour.Bundle, result harmony.Result) error {
	if harmonyJSON {
		hexes := make([]string, len(bundles))
		for i, b := range bundles {
			hexes[i] = b.Hex
		}
		return printJSON(struct {
			Colours []string       `json:"colours"`
			Result  harmony.Result `json:"result"`
		}{hexes, result})
	}

	if colourEnabled() {
		var strip strings.Builder
		for _, b := range bundles {
			strip.WriteString(colour.Swatch(b.RGB, 6))
		}
		fmt.Println(strip.String())
	}

	hexes := make([]string, len(bundles))
	for i, b := range bundles {
		hexes[i] = b.Hex
	}
	fmt.Println(strings.Join(hexes, " "))
	fmt.Println()
	fmt.Printf("Score:            %.1f / 100\n", result.Score)
	fmt.Printf("Classification:   %s\n", result.Classification)
	fmt.Printf("Description:      %s\n", result.Description)
	fmt.Printf("Average distance: %.2f\n", result.AverageDistance)
	fmt.Printf("Variance:         %.2f\n", result.Variance)

	return nil
}

// watchHarmony re-scores the palette file on every change until ctx is
// cancelled. The parent directory is watched rather than the file
// itself, because editors that save via rename would otherwise detach
// the watch.
func watchHarmony(ctx context.Context, path string, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	fmt.Fprintf(os.Stderr, "Watching %s for changes (interrupt to stop)\n", path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if pending == nil {
				pending = time.After(watchDebounce)
			}

		case <-pending:
			pending = nil
			fmt.Println()
			if err := scoreHarmony(args); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}
