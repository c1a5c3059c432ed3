// Package deltae implements perceptual colour-difference (Delta E) metrics
// over CIE LAB: CIE76, CIE94 and CIEDE2000.
//
// The Engine owns precomputed trigonometric and square-root lookup tables
// and a bounded result cache; CIEDE2000 evaluates several trig and square
// root operations per pair, and table lookup with linear interpolation
// trades a small bounded error for less CPU on hot paths (batch distance
// matrices, spatial search). There is no package-level state: tables and
// cache are constructed with the engine that uses them.
package deltae

import "math"

// Table resolutions.
const (
	trigSteps      = 3600  // 0.1 degree resolution over [0,360)
	trigResolution = 0.1   // degrees per entry
	sqrtSteps      = 40000 // 0.01 resolution over [0,400)
	sqrtResolution = 0.01
	sqrtLimit      = 400.0 // inputs at or above this use math.Sqrt
)

// Tables holds the precomputed cosine, sine and square-root tables. Built
// once by NewTables and never mutated, so concurrent readers need no
// synchronisation.
type Tables struct {
	cos  []float64
	sin  []float64
	sqrt []float64
}

// NewTables precomputes the lookup tables.
func NewTables() *Tables {
	t := &Tables{
		cos: make([]float64, trigSteps),
		sin: make([]float64, trigSteps),
		// One extra entry so interpolation at the top edge has a right
		// neighbour.
		sqrt: make([]float64, sqrtSteps+1),
	}

	for i := 0; i < trigSteps; i++ {
		rad := float64(i) * trigResolution * math.Pi / 180.0
		t.cos[i] = math.Cos(rad)
		t.sin[i] = math.Sin(rad)
	}

	for i := 0; i <= sqrtSteps; i++ {
		t.sqrt[i] = math.Sqrt(float64(i) * sqrtResolution)
	}

	return t
}

// Cos returns the cosine of an angle in degrees, interpolated linearly
// between adjacent table entries. The angle is wrapped modulo 360 first.
func (t *Tables) Cos(deg float64) float64 {
	return t.trig(t.cos, deg)
}

// Sin returns the sine of an angle in degrees, interpolated linearly
// between adjacent table entries. The angle is wrapped modulo 360 first.
func (t *Tables) Sin(deg float64) float64 {
	return t.trig(t.sin, deg)
}

func (t *Tables) trig(table []float64, deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	pos := deg / trigResolution
	i := int(pos)
	if i >= trigSteps {
		i = trigSteps - 1
	}
	frac := pos - float64(i)

	// The entry after 359.9 degrees wraps to 0.
	next := table[(i+1)%trigSteps]
	return table[i] + (next-table[i])*frac
}

// Sqrt returns the square root of x, interpolated linearly from the table
// for x in [0,400); values at or above 400 fall back to the exact
// math.Sqrt, and negative inputs return 0.
func (t *Tables) Sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= sqrtLimit {
		return math.Sqrt(x)
	}

	pos := x / sqrtResolution
	i := int(pos)
	frac := pos - float64(i)

	return t.sqrt[i] + (t.sqrt[i+1]-t.sqrt[i])*frac
}
