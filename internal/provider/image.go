package provider

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	stdimage "image"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/irodori/internal/extract"
	"github.com/jmylchreest/irodori/internal/image"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

// defaultImageColours is how many colours the image provider extracts
// when the request does not say otherwise.
const defaultImageColours = 8

// ImageProvider extracts a palette from an image by k-means clustering.
// The source can be a file, a directory (one image is picked at random)
// or an HTTP(S) URL.
type ImageProvider struct {
	path string
}

// NewImageProvider creates the built-in image provider.
func NewImageProvider() *ImageProvider {
	return &ImageProvider{}
}

// Name returns the provider name.
func (p *ImageProvider) Name() string {
	return "image"
}

// Description returns the provider description.
func (p *ImageProvider) Description() string {
	return "Extract a palette from an image file, directory or HTTP(S) URL"
}

// RegisterFlags registers the image provider's flags.
func (p *ImageProvider) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.path, "image.path", "", "Path to an image file, a directory of images or an HTTP(S) URL")
}

// Validate checks that the image path is usable.
func (p *ImageProvider) Validate() error {
	if p.path == "" {
		return fmt.Errorf("the image provider requires --image.path")
	}
	return image.ValidateImagePath(p.path)
}

// FlagHelp describes the image provider's flags.
func (p *ImageProvider) FlagHelp() []plugin.FlagHelp {
	return FlagHelpFor(NewImageProvider(), "image.path")
}

// Palette loads the image and clusters its pixels. Without an explicit
// seed the extraction seeds itself from the image content, so the same
// image always yields the same palette.
func (p *ImageProvider) Palette(ctx context.Context, req plugin.Request) ([]plugin.Colour, error) {
	resolved, err := image.ResolveImagePath(p.path)
	if err != nil {
		return nil, err
	}

	img, err := image.NewSmartLoader().Load(ctx, resolved)
	if err != nil {
		return nil, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = contentSeed(img)
	}

	count := req.Count
	if count <= 0 {
		count = defaultImageColours
	}

	extractor := extract.New(extract.Options{Seed: seed})
	swatches, err := extractor.Extract(ctx, img, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette: %w", err)
	}

	colours := make([]plugin.Colour, len(swatches))
	for i, s := range swatches {
		rgb := s.Colour.RGB
		colours[i] = plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B}
	}
	return colours, nil
}

// contentSeed derives a deterministic seed from the image by hashing
// its dimensions and a grid sample of pixels. The same image content
// always maps to the same seed, regardless of filename or location.
func contentSeed(img stdimage.Image) uint64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx()))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy()))
	hasher.Write(dims)

	// A grid sample is enough to tell images apart; hashing every pixel
	// of a wallpaper-sized image would dominate the extraction time.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixel := make([]byte, 4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixel[0] = byte(r >> 8)
			pixel[1] = byte(g >> 8)
			pixel[2] = byte(b >> 8)
			pixel[3] = byte(a >> 8)
			hasher.Write(pixel)
		}
	}

	sum := hasher.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}
