package deltae

import (
	"math"

	"github.com/jmylchreest/irodori/pkg/colour"
)

// CIE94 application constants (graphic arts values).
const (
	cie94K1 = 0.045
	cie94K2 = 0.015
)

// pow25To7 is 25^7, the chroma normalisation constant shared by the
// CIEDE2000 G-factor and rotation term.
const pow25To7 = 6103515625.0

// CIE94Params are the parametric weighting factors for CIE94. The zero
// value means unity weights.
type CIE94Params struct {
	KL float64
	KC float64
	KH float64
}

// orUnity fills zero fields with 1.
func (p CIE94Params) orUnity() CIE94Params {
	if p.KL == 0 {
		p.KL = 1
	}
	if p.KC == 0 {
		p.KC = 1
	}
	if p.KH == 0 {
		p.KH = 1
	}
	return p
}

// cie76 is Euclidean distance in LAB.
func cie76(c1, c2 colour.LAB, t *Tables) float64 {
	dL := c1.L - c2.L
	dA := c1.A - c2.A
	dB := c1.B - c2.B
	return t.Sqrt(dL*dL + dA*dA + dB*dB)
}

// cie94 weights chroma and hue differences by the first colour's chroma.
// Asymmetric in its arguments per the published formula: swapping the
// colours changes Sc and Sh.
func cie94(c1, c2 colour.LAB, p CIE94Params, t *Tables) float64 {
	p = p.orUnity()

	chroma1 := t.Sqrt(c1.A*c1.A + c1.B*c1.B)
	chroma2 := t.Sqrt(c2.A*c2.A + c2.B*c2.B)

	dL := c1.L - c2.L
	dC := chroma1 - chroma2
	dA := c1.A - c2.A
	dB := c1.B - c2.B

	// Hue difference squared, clamped: rounding can push it fractionally
	// negative for near-identical colours.
	dH2 := dA*dA + dB*dB - dC*dC
	if dH2 < 0 {
		dH2 = 0
	}

	sl := 1.0
	sc := 1.0 + cie94K1*chroma1
	sh := 1.0 + cie94K2*chroma1

	lTerm := dL / (p.KL * sl)
	cTerm := dC / (p.KC * sc)
	hTerm := t.Sqrt(dH2) / (p.KH * sh)

	return t.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm)
}

// ciede2000 is the full reference algorithm (Sharma, Wu & Dalal 2005
// formulation) with parametric factors at unity. Angles are kept in degrees
// throughout so the trigonometric lookups go through the tables.
func ciede2000(c1, c2 colour.LAB, t *Tables) float64 {
	// Step 1: hue-corrected a', C', h'.
	chroma1 := t.Sqrt(c1.A*c1.A + c1.B*c1.B)
	chroma2 := t.Sqrt(c2.A*c2.A + c2.B*c2.B)
	barC := (chroma1 + chroma2) / 2.0

	g := 0.5 * (1.0 - t.Sqrt(pow7(barC)/(pow7(barC)+pow25To7)))

	a1p := (1.0 + g) * c1.A
	a2p := (1.0 + g) * c2.A

	c1p := t.Sqrt(a1p*a1p + c1.B*c1.B)
	c2p := t.Sqrt(a2p*a2p + c2.B*c2.B)

	h1p := hueAngle(c1.B, a1p)
	h2p := hueAngle(c2.B, a2p)

	// Step 2: differences. When either chroma is zero the hue difference
	// is undefined and defined to be zero; nothing here may produce NaN.
	dLp := c2.L - c1.L
	dCp := c2p - c1p

	var dhp float64
	cProduct := c1p * c2p
	if cProduct != 0 {
		dhp = h2p - h1p
		if dhp > 180 {
			dhp -= 360
		} else if dhp < -180 {
			dhp += 360
		}
	}
	dHp := 2.0 * t.Sqrt(cProduct) * t.Sin(dhp/2.0)

	// Step 3: weighted combination.
	barLp := (c1.L + c2.L) / 2.0
	barCp := (c1p + c2p) / 2.0

	var barhp float64
	hSum := h1p + h2p
	switch {
	case cProduct == 0:
		barhp = hSum
	case math.Abs(h1p-h2p) <= 180:
		barhp = hSum / 2.0
	case hSum < 360:
		barhp = (hSum + 360) / 2.0
	default:
		barhp = (hSum - 360) / 2.0
	}

	tWeight := 1.0 -
		0.17*t.Cos(barhp-30.0) +
		0.24*t.Cos(2.0*barhp) +
		0.32*t.Cos(3.0*barhp+6.0) -
		0.20*t.Cos(4.0*barhp-63.0)

	dTheta := 30.0 * math.Exp(-sq((barhp-275.0)/25.0))
	rc := 2.0 * t.Sqrt(pow7(barCp)/(pow7(barCp)+pow25To7))
	rt := -t.Sin(2.0*dTheta) * rc

	sl := 1.0 + (0.015*sq(barLp-50.0))/t.Sqrt(20.0+sq(barLp-50.0))
	sc := 1.0 + 0.045*barCp
	sh := 1.0 + 0.015*barCp*tWeight

	lTerm := dLp / sl
	cTerm := dCp / sc
	hTerm := dHp / sh

	return t.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rt*cTerm*hTerm)
}

// hueAngle returns atan2(b, a) as degrees in [0,360); zero when both
// components are zero (the neutral axis has no hue).
func hueAngle(b, a float64) float64 {
	if b == 0 && a == 0 {
		return 0
	}
	deg := math.Atan2(b, a) * (180.0 / math.Pi)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func sq(x float64) float64 {
	return x * x
}

func pow7(x float64) float64 {
	x3 := x * x * x
	return x3 * x3 * x
}
