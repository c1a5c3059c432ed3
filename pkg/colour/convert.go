package colour

import "math"

// D65 reference white point, the standard daylight illuminant for sRGB.
// These exact constants are required for LAB values to match reference
// implementations.
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

// LAB f(t) piecewise constants from the CIE definition.
const (
	labEpsilon = 0.008856
	labKappa   = 7.787
	labOffset  = 16.0 / 116.0
)

// RGBToXYZ converts sRGB to CIE XYZ (D65). Channels are gamma-decoded with
// the standard sRGB piecewise curve (linear below 0.04045 normalised, power
// 2.4 above) before the linear transform.
func RGBToXYZ(c RGB) XYZ {
	r := srgbDecode(float64(c.R) / 255.0)
	g := srgbDecode(float64(c.G) / 255.0)
	b := srgbDecode(float64(c.B) / 255.0)

	r *= 100.0
	g *= 100.0
	b *= 100.0

	return XYZ{
		X: r*0.4124 + g*0.3576 + b*0.1805,
		Y: r*0.2126 + g*0.7152 + b*0.0722,
		Z: r*0.0193 + g*0.1192 + b*0.9505,
	}
}

// XYZToRGB converts CIE XYZ (D65) back to sRGB, clamping out-of-gamut values
// to the representable [0,255] range.
func XYZToRGB(c XYZ) RGB {
	x := c.X / 100.0
	y := c.Y / 100.0
	z := c.Z / 100.0

	r := x*3.2406 + y*-1.5372 + z*-0.4986
	g := x*-0.9689 + y*1.8758 + z*0.0415
	b := x*0.0557 + y*-0.2040 + z*1.0570

	return RGB{
		R: clampChannel(srgbEncode(r) * 255.0),
		G: clampChannel(srgbEncode(g) * 255.0),
		B: clampChannel(srgbEncode(b) * 255.0),
	}
}

// XYZToLAB converts CIE XYZ (D65) to CIE L*a*b*.
func XYZToLAB(c XYZ) LAB {
	fx := labF(c.X / refX)
	fy := labF(c.Y / refY)
	fz := labF(c.Z / refZ)

	return LAB{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// LABToXYZ converts CIE L*a*b* back to CIE XYZ (D65).
func LABToXYZ(c LAB) XYZ {
	fy := (c.L + 16.0) / 116.0
	fx := fy + c.A/500.0
	fz := fy - c.B/200.0

	return XYZ{
		X: refX * labFInv(fx),
		Y: refY * labFInv(fy),
		Z: refZ * labFInv(fz),
	}
}

// RGBToLAB converts sRGB to CIE L*a*b* via XYZ.
func RGBToLAB(c RGB) LAB {
	return XYZToLAB(RGBToXYZ(c))
}

// LABToRGB converts CIE L*a*b* back to sRGB via XYZ. For LAB values that
// came from an sRGB colour the round-trip is exact to within one channel
// unit; out-of-gamut values are clamped.
func LABToRGB(c LAB) RGB {
	return XYZToRGB(LABToXYZ(c))
}

// HexToLAB parses a hex colour string and converts it to CIE L*a*b*.
func HexToLAB(s string) (LAB, error) {
	rgb, err := ParseHex(s)
	if err != nil {
		return LAB{}, err
	}
	return RGBToLAB(rgb), nil
}

// RGBToHSL converts sRGB to HSL. Hue is degrees in [0,360); saturation and
// lightness are percentages in [0,100].
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l := (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l * 100.0}
	}

	// Saturation.
	var s float64
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	// Hue.
	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}
	h *= 60

	return HSL{H: h, S: s * 100.0, L: l * 100.0}
}

// HSLToRGB converts HSL back to sRGB. Inputs outside the valid ranges are
// clamped (hue wraps modulo 360).
func HSLToRGB(c HSL) RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(c.S / 100.0)
	l := clamp01(c.L / 100.0)

	if s == 0 {
		// Achromatic (grey).
		v := clampChannel(l * 255.0)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: clampChannel(hueToRGB(p, q, h+120) * 255.0),
		G: clampChannel(hueToRGB(p, q, h) * 255.0),
		B: clampChannel(hueToRGB(p, q, h-120) * 255.0),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	// Normalise t to 0-360 range.
	for t < 0 {
		t += 360
	}
	for t >= 360 {
		t -= 360
	}

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// srgbDecode applies the sRGB gamma decoding curve to a normalised channel.
func srgbDecode(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// srgbEncode applies the sRGB gamma encoding curve to a linear channel.
func srgbEncode(v float64) float64 {
	if v > 0.0031308 {
		return 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	return 12.92 * v
}

// labF is the CIE f(t) forward function.
func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + labOffset
}

// labFInv is the inverse of labF.
func labFInv(t float64) float64 {
	if t3 := t * t * t; t3 > labEpsilon {
		return t3
	}
	return (t - labOffset) / labKappa
}

// clamp01 clamps v to [0,1].
func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

// clampChannel rounds v to the nearest integer and clamps to [0,255].
func clampChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
