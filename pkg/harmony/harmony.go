// Package harmony scores how well a set of colours works together, based
// on the spread of their pairwise perceptual distances.
package harmony

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

// ErrNoColours is returned when asked to score an empty set.
var ErrNoColours = errors.New("no colours to score")

// Classification names the palette relationship inferred from average
// pairwise distance.
type Classification string

const (
	Monochromatic Classification = "monochromatic"
	Analogous     Classification = "analogous"
	Triadic       Classification = "triadic"
	Complementary Classification = "complementary"
)

// Result is a scored palette: an overall score in [0,100], the inferred
// classification, a human-readable description and the distance statistics
// the score was derived from.
type Result struct {
	Score           float64        `json:"score"`
	Classification  Classification `json:"classification"`
	Description     string         `json:"description"`
	AverageDistance float64        `json:"average_distance"`
	Variance        float64        `json:"variance"`
}

// Classification boundaries and score weights. Tuned by eye, not derived
// from colour-appearance literature; keep as-is rather than generalising.
const (
	analogousBound     = 5.0
	complementaryBound = 40.0
	consistencyBonus   = 20.0
)

// Score rates a palette of LAB colours. Pairwise distances are measured
// with CIEDE2000 through the given engine, so repeated scoring shares its
// cache. A single colour is trivially harmonious and scores a fixed
// monochromatic 100; an empty set is an error.
func Score(eng *deltae.Engine, colours []colour.LAB) (Result, error) {
	switch len(colours) {
	case 0:
		return Result{}, ErrNoColours
	case 1:
		return Result{
			Score:          100,
			Classification: Monochromatic,
			Description:    "a single colour is perfectly consistent with itself",
		}, nil
	}

	matrix, err := eng.Batch(colours, deltae.CIEDE2000)
	if err != nil {
		return Result{}, err
	}
	mean, variance := pairStats(matrix)

	var class Classification
	var base float64
	switch {
	case mean < analogousBound:
		class = Analogous
		base = 100 - 10*mean
	case mean > complementaryBound:
		class = Complementary
		base = 100 - 2*math.Abs(mean-50)
	default:
		class = Triadic
		base = 100 - 3*math.Abs(mean-25)
	}
	base = math.Max(0, base)

	score := base + math.Max(0, consistencyBonus-variance)
	score = math.Min(100, math.Max(0, score))

	return Result{
		Score:           score,
		Classification:  class,
		Description:     describe(class, mean),
		AverageDistance: mean,
		Variance:        variance,
	}, nil
}

// pairStats reduces a symmetric distance matrix to the mean and population
// variance of its upper triangle.
func pairStats(matrix [][]float64) (mean, variance float64) {
	n := len(matrix)
	count := float64(n*(n-1)) / 2

	var sum float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += matrix[i][j]
		}
	}
	mean = sum / count

	var sq float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := matrix[i][j] - mean
			sq += d * d
		}
	}
	variance = sq / count
	return mean, variance
}

func describe(class Classification, mean float64) string {
	switch class {
	case Analogous:
		return fmt.Sprintf("colours are close neighbours in perceptual space (average distance %.1f)", mean)
	case Complementary:
		return fmt.Sprintf("colours sit far apart, giving strong contrast (average distance %.1f)", mean)
	default:
		return fmt.Sprintf("colours are moderately spaced for a balanced scheme (average distance %.1f)", mean)
	}
}
