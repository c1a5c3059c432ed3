package deltae

import (
	"math"
	"testing"

	"github.com/jmylchreest/irodori/pkg/colour"
)

// ciede2000Cases are the published verification pairs from Sharma, Wu &
// Dalal, "The CIEDE2000 Color-Difference Formula: Implementation Notes,
// Supplementary Test Data, and Mathematical Observations" (2005). They
// exercise every branch: hue wraparound, the neutral axis, the mean-hue
// discontinuity and the rotation term. Tolerance absorbs the bounded
// lookup-table interpolation error.
var ciede2000Cases = []struct {
	l1, a1, b1 float64
	l2, a2, b2 float64
	want       float64
}{
	{50.0000, 2.6772, -79.7751, 50.0000, 0.0000, -82.7485, 2.0425},
	{50.0000, 3.1571, -77.2803, 50.0000, 0.0000, -82.7485, 2.8615},
	{50.0000, 2.8361, -74.0200, 50.0000, 0.0000, -82.7485, 3.4412},
	{50.0000, -1.3802, -84.2814, 50.0000, 0.0000, -82.7485, 1.0000},
	{50.0000, -1.1848, -84.8006, 50.0000, 0.0000, -82.7485, 1.0000},
	{50.0000, -0.9009, -85.5211, 50.0000, 0.0000, -82.7485, 1.0000},
	{50.0000, 0.0000, 0.0000, 50.0000, -1.0000, 2.0000, 2.3669},
	{50.0000, -1.0000, 2.0000, 50.0000, 0.0000, 0.0000, 2.3669},
	{50.0000, 2.4900, -0.0010, 50.0000, -2.4900, 0.0009, 7.1792},
	{50.0000, 2.4900, -0.0010, 50.0000, -2.4900, 0.0010, 7.1792},
	{50.0000, 2.4900, -0.0010, 50.0000, -2.4900, 0.0011, 7.2195},
	{50.0000, 2.4900, -0.0010, 50.0000, -2.4900, 0.0012, 7.2195},
	{50.0000, -0.0010, 2.4900, 50.0000, 0.0009, -2.4900, 4.8045},
	{50.0000, -0.0010, 2.4900, 50.0000, 0.0010, -2.4900, 4.8045},
	{50.0000, -0.0010, 2.4900, 50.0000, 0.0011, -2.4900, 4.7461},
	{50.0000, 2.5000, 0.0000, 50.0000, 0.0000, -2.5000, 4.3065},
	{50.0000, 2.5000, 0.0000, 73.0000, 25.0000, -18.0000, 27.1492},
	{50.0000, 2.5000, 0.0000, 61.0000, -5.0000, 29.0000, 22.8977},
	{50.0000, 2.5000, 0.0000, 56.0000, -27.0000, -3.0000, 31.9030},
	{50.0000, 2.5000, 0.0000, 58.0000, 24.0000, 15.0000, 19.4535},
	{50.0000, 2.5000, 0.0000, 50.0000, 3.1736, 0.5854, 1.0000},
	{50.0000, 2.5000, 0.0000, 50.0000, 3.2972, 0.0000, 1.0000},
	{50.0000, 2.5000, 0.0000, 50.0000, 1.8634, 0.5757, 1.0000},
	{50.0000, 2.5000, 0.0000, 50.0000, 3.2592, 0.3350, 1.0000},
	{60.2574, -34.0099, 36.2677, 60.4626, -34.1751, 39.4387, 1.2644},
	{63.0109, -31.0961, -5.8663, 62.8187, -29.7946, -4.0864, 1.2630},
	{61.2901, 3.7196, -5.3901, 61.4292, 2.2480, -4.9620, 1.8731},
	{35.0831, -44.1164, 3.7933, 35.0232, -40.0716, 1.5901, 1.8645},
	{22.7233, 20.0904, -46.6940, 23.0331, 14.9730, -42.5619, 2.0373},
	{36.4612, 47.8580, 18.3852, 36.2715, 50.5065, 21.2231, 1.4146},
	{90.8027, -2.0831, 1.4410, 91.1528, -1.6435, 0.0447, 1.4441},
	{90.9257, -0.5406, -0.9208, 88.6381, -0.8985, -0.7239, 1.5381},
	{6.7747, -0.2908, -2.4247, 5.8714, -0.0985, -2.2286, 0.6377},
	{2.0776, 0.0795, -1.1350, 0.9033, -0.0636, -0.5514, 0.9082},
}

func TestCIEDE2000VerificationPairs(t *testing.T) {
	tables := NewTables()

	for i, tc := range ciede2000Cases {
		c1 := colour.LAB{L: tc.l1, A: tc.a1, B: tc.b1}
		c2 := colour.LAB{L: tc.l2, A: tc.a2, B: tc.b2}

		got := ciede2000(c1, c2, tables)
		if math.Abs(got-tc.want) > 0.02 {
			t.Errorf("pair %d: ciede2000(%v, %v) = %.4f, want %.4f", i+1, c1, c2, got, tc.want)
		}
	}
}

func TestCIEDE2000Symmetry(t *testing.T) {
	tables := NewTables()

	for i, tc := range ciede2000Cases {
		c1 := colour.LAB{L: tc.l1, A: tc.a1, B: tc.b1}
		c2 := colour.LAB{L: tc.l2, A: tc.a2, B: tc.b2}

		ab := ciede2000(c1, c2, tables)
		ba := ciede2000(c2, c1, tables)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("pair %d: asymmetric: %v vs %v", i+1, ab, ba)
		}
	}
}

func TestCIE76(t *testing.T) {
	tables := NewTables()

	tests := []struct {
		name   string
		c1, c2 colour.LAB
		want   float64
	}{
		{
			name: "identical",
			c1:   colour.LAB{L: 50, A: 10, B: -10},
			c2:   colour.LAB{L: 50, A: 10, B: -10},
			want: 0,
		},
		{
			name: "lightness only",
			c1:   colour.LAB{L: 40, A: 0, B: 0},
			c2:   colour.LAB{L: 70, A: 0, B: 0},
			want: 30,
		},
		{
			name: "pythagorean triple",
			c1:   colour.LAB{L: 0, A: 3, B: 0},
			c2:   colour.LAB{L: 0, A: 0, B: 4},
			want: 5,
		},
		{
			name: "reference pair one",
			c1:   colour.LAB{L: 50, A: 2.6772, B: -79.7751},
			c2:   colour.LAB{L: 50, A: 0, B: -82.7485},
			want: 4.0011,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cie76(tt.c1, tt.c2, tables)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("cie76 = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestCIE94(t *testing.T) {
	tables := NewTables()

	neutral := colour.LAB{L: 50, A: 0, B: 0}
	chromatic := colour.LAB{L: 50, A: 10, B: 0}

	// First colour neutral: Sc and Sh are 1, so the chroma difference
	// passes through unweighted.
	if got := cie94(neutral, chromatic, CIE94Params{}, tables); math.Abs(got-10.0) > 1e-4 {
		t.Errorf("cie94(neutral, chromatic) = %v, want 10", got)
	}

	// Swapped, the first colour's chroma of 10 weights Sc to 1.45.
	want := 10.0 / 1.45
	if got := cie94(chromatic, neutral, CIE94Params{}, tables); math.Abs(got-want) > 1e-4 {
		t.Errorf("cie94(chromatic, neutral) = %v, want %v", got, want)
	}
}

func TestCIE94CustomParams(t *testing.T) {
	tables := NewTables()

	c1 := colour.LAB{L: 50, A: 10, B: 0}
	c2 := colour.LAB{L: 60, A: 10, B: 0}

	// Pure lightness difference scaled by kL.
	unity := cie94(c1, c2, CIE94Params{}, tables)
	textiles := cie94(c1, c2, CIE94Params{KL: 2, KC: 1, KH: 1}, tables)

	if math.Abs(unity-10.0) > 1e-4 {
		t.Errorf("unity kL = %v, want 10", unity)
	}
	if math.Abs(textiles-5.0) > 1e-4 {
		t.Errorf("kL=2 = %v, want 5", textiles)
	}
}

func TestHueAngle(t *testing.T) {
	tests := []struct {
		name string
		b, a float64
		want float64
	}{
		{name: "neutral axis", b: 0, a: 0, want: 0},
		{name: "positive a", b: 0, a: 10, want: 0},
		{name: "positive b", b: 10, a: 0, want: 90},
		{name: "negative a", b: 0, a: -10, want: 180},
		{name: "negative b wraps", b: -10, a: 0, want: 270},
		{name: "first quadrant", b: 10, a: 10, want: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hueAngle(tt.b, tt.a); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("hueAngle(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestZeroChromaProducesNoNaN(t *testing.T) {
	tables := NewTables()

	// Greys on the neutral axis have undefined hue; the formula defines
	// the hue difference to be zero there.
	grey1 := colour.LAB{L: 20, A: 0, B: 0}
	grey2 := colour.LAB{L: 80, A: 0, B: 0}
	chromatic := colour.LAB{L: 50, A: 30, B: -20}

	for _, pair := range [][2]colour.LAB{
		{grey1, grey2},
		{grey1, chromatic},
		{chromatic, grey2},
	} {
		got := ciede2000(pair[0], pair[1], tables)
		if math.IsNaN(got) || got < 0 {
			t.Errorf("ciede2000(%v, %v) = %v, want non-negative number", pair[0], pair[1], got)
		}
	}
}
