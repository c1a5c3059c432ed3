// Test image generator for trying out palette extraction by hand:
//
//	go run testdata/generate_test_image.go
//	irodori extract testdata/sample.png
package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

func main() {
	const width, height = 400, 400

	// Blocks of traditional colours, one per grid cell.
	colours := []color.RGBA{
		{R: 0xDC, G: 0x14, B: 0x3C, A: 255}, // crimson
		{R: 0x2A, G: 0x40, B: 0x73, A: 255}, // lapis
		{R: 0xF8, G: 0xB5, B: 0x00, A: 255}, // tamago
		{R: 0x6B, G: 0x8F, B: 0x4E, A: 255}, // moss
		{R: 0xE0, G: 0x7A, B: 0x5F, A: 255}, // ember
		{R: 0x3B, G: 0x2E, B: 0x5A, A: 255}, // violet
		{R: 0xE8, G: 0xE4, B: 0xD8, A: 255}, // sand
		{R: 0x1B, G: 0x26, B: 0x3A, A: 255}, // night
	}

	const cols, rows = 2, 4
	cellW, cellH := width/cols, height/rows

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range colours {
		x0 := (i % cols) * cellW
		y0 := (i / cols) * cellH
		cell := image.Rect(x0, y0, x0+cellW, y0+cellH)
		draw.Draw(img, cell, &image.Uniform{C: c}, image.Point{}, draw.Src)
	}

	out, err := os.Create("testdata/sample.png")
	if err != nil {
		panic(err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		panic(err)
	}

	println("wrote testdata/sample.png")
}
