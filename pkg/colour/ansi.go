package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for truecolour terminal output.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"

	defaultSwatchWidth = 8
)

// Swatch returns an ANSI truecolour block of the given width for terminal
// preview. Callers decide whether the terminal can render it; this function
// only formats.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultSwatchWidth
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// SwatchText returns a swatch with text overlaid, choosing black or white
// text for contrast against the background colour.
func SwatchText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultSwatchWidth
	}

	// Light background takes dark text and vice versa.
	var fg RGB
	if Luminance(c) <= 0.5 {
		fg = RGB{R: 255, G: 255, B: 255}
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	fgSeq := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	// Pad or truncate text to fit width.
	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		pad := (width - len(text)) / 2
		display = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	return bg + fgSeq + display + ansiReset
}

// ColourText returns text rendered in the given foreground colour.
func ColourText(c RGB, text string) string {
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
	return fg + text + ansiReset
}
