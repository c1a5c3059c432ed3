// Package colour provides colour value types and conversions between the
// sRGB, HSL, CIE XYZ and CIE LAB colour spaces.
//
// LAB (D65 illuminant) is the canonical space for perceptual distance work:
// it is designed to be approximately perceptually uniform, so Euclidean-ish
// distances in it correspond to visible difference. All conversions here are
// pure functions over small value types.
package colour

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by parsing and normalisation.
var (
	// ErrInvalidHex is returned for anything other than a 6-hex-digit colour
	// (an optional leading '#' is allowed).
	ErrInvalidHex = errors.New("invalid hex colour")

	// ErrUnknownName is returned when a named colour is not in the table.
	ErrUnknownName = errors.New("unknown colour name")
)

// RGB represents a colour in 8-bit sRGB. Channels are always in [0,255] by
// construction; conversions clamp rather than wrap.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the canonical hex form of the colour: uppercase, '#'-prefixed
// (e.g. "#1A2B3C"). ParseHex(c.Hex()) always round-trips.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HSL represents a colour as hue, saturation and lightness.
// H is degrees in [0,360); S and L are percentages in [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the HSL colour as a string in the format "hsl(h, s%, l%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H, c.S, c.L)
}

// XYZ represents a colour in CIE XYZ tristimulus space, scaled so that the
// D65 reference white is (95.047, 100.0, 108.883).
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LAB represents a colour in CIE L*a*b* space (D65). L is nominally in
// [0,100]; A and B are unbounded but stay within roughly [-128,127] for
// colours inside the sRGB gamut.
type LAB struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// String returns the LAB colour as a string in the format "lab(l, a, b)".
func (c LAB) String() string {
	return fmt.Sprintf("lab(%.2f, %.2f, %.2f)", c.L, c.A, c.B)
}

// ParseHex parses a 6-hex-digit colour string into RGB. A leading '#' is
// optional and case is ignored. Anything else (shorthand, alpha, garbage)
// returns an error wrapping ErrInvalidHex; ParseHex never panics.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	var out [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(h[2*i])
		lo, ok2 := hexDigit(h[2*i+1])
		if !ok1 || !ok2 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		out[i] = hi<<4 | lo
	}

	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// hexDigit decodes a single hex digit.
func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
