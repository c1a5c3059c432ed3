package colour

import "math"

// Luminance returns the WCAG 2.0 relative luminance of a colour, from 0
// (black) to 1 (white). See w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	rf := wcagCorrect(float64(c.R) / 255.0)
	gf := wcagCorrect(float64(c.G) / 255.0)
	bf := wcagCorrect(float64(c.B) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// wcagCorrect applies the WCAG gamma correction to a colour component.
// The threshold differs slightly from the sRGB decode curve (0.03928 vs
// 0.04045); WCAG 2.0 specifies the former.
func wcagCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG 2.0 contrast ratio between two colours,
// from 1 (identical) to 21 (black on white). The AA threshold is 4.5:1 for
// normal text and 3:1 for large text. Argument order does not matter.
// See w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	lighter := Luminance(c1)
	darker := Luminance(c2)
	if lighter < darker {
		lighter, darker = darker, lighter
	}
	return (lighter + 0.05) / (darker + 0.05)
}

// HueDistance returns the angular distance between two hues, taking the
// short way around the wheel, so the result is at most 180 degrees.
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > 180 {
		return 360 - diff
	}
	return diff
}
