package provider

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

// FileProvider loads a palette from a file on disk. JSON files hold an
// array of hex strings or colour objects; anything else is treated as
// the plain text format, one hex colour per line.
type FileProvider struct {
	path    string
	colours []string
}

// NewFileProvider creates the built-in file provider.
func NewFileProvider() *FileProvider {
	return &FileProvider{
		colours: []string{},
	}
}

// Name returns the provider name.
func (p *FileProvider) Name() string {
	return "file"
}

// Description returns the provider description.
func (p *FileProvider) Description() string {
	return "Load a palette from a JSON or plain text file"
}

// RegisterFlags registers the file provider's flags.
func (p *FileProvider) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.path, "file.path", "", "Path to the palette file (JSON array or one hex colour per line)")
	cmd.Flags().StringArrayVar(&p.colours, "file.colour", []string{}, "Extra colour to append (hex, repeatable)")
}

// Validate checks that the provider has something to load.
func (p *FileProvider) Validate() error {
	if p.path == "" && len(p.colours) == 0 {
		return fmt.Errorf("the file provider requires --file.path or at least one --file.colour")
	}
	for _, hex := range p.colours {
		if _, err := colour.ParseHex(hex); err != nil {
			return err
		}
	}
	return nil
}

// FlagHelp describes the file provider's flags.
func (p *FileProvider) FlagHelp() []plugin.FlagHelp {
	return FlagHelpFor(NewFileProvider())
}

// Palette reads the palette file and appends any manually specified
// colours. When the request carries a positive count the palette is
// truncated to it.
func (p *FileProvider) Palette(_ context.Context, req plugin.Request) ([]plugin.Colour, error) {
	var colours []plugin.Colour

	if p.path != "" {
		var err error
		colours, err = ParsePaletteFile(p.path)
		if err != nil {
			return nil, err
		}
	}

	for _, hex := range p.colours {
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		colours = append(colours, plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B})
	}

	if len(colours) == 0 {
		return nil, fmt.Errorf("palette file %s holds no colours", p.path)
	}
	if req.Count > 0 && len(colours) > req.Count {
		colours = colours[:req.Count]
	}
	return colours, nil
}
