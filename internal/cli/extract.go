package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/internal/extract"
	"github.com/jmylchreest/irodori/internal/image"
	"github.com/jmylchreest/irodori/pkg/catalogue"
	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

var (
	// Extract command flags
	extractCount  int
	extractFormat string
	extractSeed   uint64
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a colour palette from an image",
	Long: `Extract the dominant colours of an image by k-means clustering in CIE
LAB space. Each extracted colour carries its share of the image and the
closest catalogue name.

The argument can be an image file, a directory (a random image inside
is picked) or an HTTPS URL.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 8 colours (default) from an image
  irodori extract wallpaper.jpg

  # Extract 4 colours from a random image in a directory
  irodori extract --count 4 ~/Pictures/wallpapers

  # Extract from a URL
  irodori extract https://example.com/sunset.png

  # Reproducible clustering
  irodori extract --seed 42 wallpaper.jpg

  # Plain hex output, one colour per line
  irodori extract --format hex wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractCount, "count", "c", 8, "number of colours to extract (1-256)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "text", "output format (text, hex, json)")
	extractCmd.Flags().Uint64Var(&extractSeed, "seed", 0, "clustering seed (0 = random)")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	resolved, err := image.ResolveImagePath(imagePath)
	if err != nil {
		return err
	}
	verbosef("Loading image: %s\n", resolved)

	img, err := image.NewSmartLoader().Load(cmd.Context(), resolved)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	verbosef("Image loaded: %dx%d\n", bounds.Dx(), bounds.Dy())
	verbosef("Extracting %d colours...\n", extractCount)

	extractor := extract.New(extract.Options{
		Seed:   extractSeed,
		Engine: sharedDeltaE(),
	})
	swatches, err := extractor.Extract(cmd.Context(), img, extractCount)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	verbosef("Extracted %d colours\n", len(swatches))

	matcher, err := buildMatcher("")
	if err != nil {
		return err
	}

	nearest := make([]catalogue.Match, len(swatches))
	for i, s := range swatches {
		nearest[i], err = matcher.Closest(s.Colour.Lab, deltae.CIEDE2000)
		if err != nil {
			return err
		}
	}

	switch extractFormat {
	case "hex":
		for _, s := range swatches {
			fmt.Println(s.Colour.Hex)
		}
		return nil

	case "json":
		type extracted struct {
			extract.Swatch
			Nearest catalogue.Match `json:"nearest"`
		}
		out := make([]extracted, len(swatches))
		for i, s := range swatches {
			out[i] = extracted{Swatch: s, Nearest: nearest[i]}
		}
		return printJSON(struct {
			Source   string      `json:"source"`
			Swatches []extracted `json:"swatches"`
		}{resolved, out})

	case "text":
		for i, s := range swatches {
			fmt.Println(formatSwatchLine(s, nearest[i]))
		}
		return nil

	default:
		return fmt.Errorf("unsupported format: %s (supported: text, hex, json)", extractFormat)
	}
}

// formatSwatchLine renders one extracted colour with its image share and
// nearest catalogue name.
func formatSwatchLine(s extract.Swatch, near catalogue.Match) string {
	var b strings.Builder
	if colourEnabled() {
		b.WriteString(colour.Swatch(s.Colour.RGB, 6))
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "%s  %5.1f%%  %s (distance %.2f)",
		s.Colour.Hex, s.Weight*100, near.Entry.String(), near.Distance)
	return b.String()
}
