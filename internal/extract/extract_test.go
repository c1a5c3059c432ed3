package extract

import (
	"context"
	"image"
	"image/color"
	"testing"
)

// twoToneImage builds an 8x8 image whose top three quarters are red and
// bottom quarter blue.
func twoToneImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if y < 6 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

// clusterImage builds a 16x16 image with a noisy red half and a noisy blue
// half, giving more distinct colours than any small k.
func clusterImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.Set(x, y, color.RGBA{R: 255, G: uint8(x % 4), B: uint8(y % 4), A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: uint8(x % 4), G: uint8(y % 4), B: 255, A: 255})
			}
		}
	}
	return img
}

// TestExtractExactColours verifies that an image with fewer distinct
// colours than requested returns them exactly, weighted by frequency.
func TestExtractExactColours(t *testing.T) {
	e := New(Options{Seed: 1})

	swatches, err := e.Extract(context.Background(), twoToneImage(), 4)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(swatches) != 2 {
		t.Fatalf("Extract() returned %d swatches, want 2", len(swatches))
	}
	if swatches[0].Colour.Hex != "#FF0000" {
		t.Errorf("heaviest swatch = %s, want #FF0000", swatches[0].Colour.Hex)
	}
	if swatches[1].Colour.Hex != "#0000FF" {
		t.Errorf("second swatch = %s, want #0000FF", swatches[1].Colour.Hex)
	}
	if swatches[0].Weight != 0.75 || swatches[1].Weight != 0.25 {
		t.Errorf("weights = %v, %v; want 0.75, 0.25", swatches[0].Weight, swatches[1].Weight)
	}
}

// TestExtractClusters verifies the clustering path finds the two dominant
// colour families in a noisy image.
func TestExtractClusters(t *testing.T) {
	e := New(Options{Seed: 1})

	swatches, err := e.Extract(context.Background(), clusterImage(), 2)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(swatches) != 2 {
		t.Fatalf("Extract() returned %d swatches, want 2", len(swatches))
	}

	var sawRed, sawBlue bool
	for _, s := range swatches {
		rgb := s.Colour.RGB
		if rgb.R > 200 && rgb.B < 100 {
			sawRed = true
		}
		if rgb.B > 200 && rgb.R < 100 {
			sawBlue = true
		}
		if s.Weight < 0.4 || s.Weight > 0.6 {
			t.Errorf("swatch %s weight = %v, want about 0.5", s.Colour.Hex, s.Weight)
		}
	}
	if !sawRed || !sawBlue {
		t.Errorf("swatches = %v, want one red and one blue family", swatches)
	}
}

// TestExtractReproducible verifies the same seed gives identical swatches.
func TestExtractReproducible(t *testing.T) {
	img := clusterImage()

	first, err := New(Options{Seed: 42}).Extract(context.Background(), img, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := New(Options{Seed: 42}).Extract(context.Background(), img, 3)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("swatch counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Colour.Hex != second[i].Colour.Hex || first[i].Weight != second[i].Weight {
			t.Errorf("swatch %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestExtractValidation covers the argument checks.
func TestExtractValidation(t *testing.T) {
	e := New(Options{})
	ctx := context.Background()
	img := twoToneImage()

	if _, err := e.Extract(ctx, nil, 4); err == nil {
		t.Error("Extract(nil image) expected error, got nil")
	}
	if _, err := e.Extract(ctx, img, 0); err == nil {
		t.Error("Extract(k=0) expected error, got nil")
	}
	if _, err := e.Extract(ctx, img, 300); err == nil {
		t.Error("Extract(k=300) expected error, got nil")
	}
}

// TestExtractEmptyImage verifies a pixel-free image errors.
func TestExtractEmptyImage(t *testing.T) {
	e := New(Options{})

	if _, err := e.Extract(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)), 2); err == nil {
		t.Error("Extract() on empty image expected error, got nil")
	}
}

// TestExtractTransparentImage verifies fully transparent pixels are not
// counted as colours.
func TestExtractTransparentImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	if _, err := New(Options{}).Extract(context.Background(), img, 2); err == nil {
		t.Error("Extract() on transparent image expected error, got nil")
	}
}

// TestExtractContextCancelled verifies cancellation aborts extraction.
func TestExtractContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(Options{Seed: 1}).Extract(ctx, clusterImage(), 2); err == nil {
		t.Error("Extract() with cancelled context expected error, got nil")
	}
}

// TestSamplePixelsSubsampling verifies large images are capped at the
// sample limit.
func TestSamplePixelsSubsampling(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	pixels := samplePixels(img, 5000)
	if len(pixels) == 0 || len(pixels) > 5000 {
		t.Errorf("samplePixels() returned %d pixels, want 1..5000", len(pixels))
	}
}

// TestSortSwatches verifies weight-descending order with a hex tie break.
func TestSortSwatches(t *testing.T) {
	swatches := []Swatch{
		{Weight: 0.2},
		{Weight: 0.5},
		{Weight: 0.3},
	}
	swatches[0].Colour.Hex = "#BBBBBB"
	swatches[1].Colour.Hex = "#CCCCCC"
	swatches[2].Colour.Hex = "#AAAAAA"

	sortSwatches(swatches)

	if swatches[0].Weight != 0.5 || swatches[1].Weight != 0.3 || swatches[2].Weight != 0.2 {
		t.Errorf("sortSwatches() weights = %v, want descending", swatches)
	}

	tied := []Swatch{{Weight: 0.5}, {Weight: 0.5}}
	tied[0].Colour.Hex = "#FF0000"
	tied[1].Colour.Hex = "#00FF00"

	sortSwatches(tied)

	if tied[0].Colour.Hex != "#00FF00" {
		t.Errorf("sortSwatches() tie break = %s first, want #00FF00", tied[0].Colour.Hex)
	}
}
