package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/colour"
)

var (
	// Convert command flags
	convertFormat string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <colour>",
	Short: "Show a colour in every representation",
	Long: `Convert a colour to hex, RGB, HSL, CIE XYZ and CIE LAB, with its
temperature and category.

Colours can be given as hex (with or without the leading '#') or as a
well-known name.

Examples:
  # Convert a hex colour
  irodori convert "#DE3163"

  # The leading '#' is optional
  irodori convert 1E50A2

  # Convert a named colour
  irodori convert crimson

  # Machine-readable output
  irodori convert --format json teal`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "text", "output format (text, json)")
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, args []string) error {
	bundle, err := colour.Normalize(colour.ParseInput(args[0]))
	if err != nil {
		return err
	}

	xyz := colour.RGBToXYZ(bundle.RGB)
	category := colour.Categorise(bundle.RGB)

	switch convertFormat {
	case "json":
		return printJSON(struct {
			colour.Bundle
			XYZ      colour.XYZ      `json:"xyz"`
			Category colour.Category `json:"category"`
		}{bundle, xyz, category})
	case "text":
		// Fall through to the text rendering below.
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", convertFormat)
	}

	if colourEnabled() {
		fmt.Println(colour.Swatch(bundle.RGB, 16))
	}
	fmt.Printf("Hex:         %s\n", bundle.Hex)
	fmt.Printf("RGB:         %s\n", bundle.RGB)
	fmt.Printf("HSL:         %s\n", bundle.HSL)
	fmt.Printf("XYZ:         xyz(%.3f, %.3f, %.3f)\n", xyz.X, xyz.Y, xyz.Z)
	fmt.Printf("LAB:         %s\n", bundle.Lab)
	fmt.Printf("Temperature: %s (warmth %+.2f)\n", bundle.Temperature.Class, bundle.Temperature.Warmth)
	fmt.Printf("Category:    %s\n", category)

	return nil
}
