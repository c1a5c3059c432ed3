// Package extract derives dominant-colour palettes from images using
// k-means clustering in LAB space.
package extract

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/jmylchreest/irodori/internal/security"
	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

const (
	defaultMaxIterations = 20
	defaultConvergence   = 2.0
	defaultMaxSamples    = 5000

	// maxColours bounds how many clusters one extraction may request.
	maxColours = 256
)

// Options configures an Extractor. The zero value gives the defaults.
type Options struct {
	// MaxSamples bounds how many pixels feed the clustering; larger images
	// are grid-subsampled down to it.
	MaxSamples int

	// MaxIterations caps the clustering loop.
	MaxIterations int

	// Convergence stops iteration once the mean centroid shift, measured
	// as CIE76 distance, falls below it.
	Convergence float64

	// Seed makes extraction reproducible. Zero picks a random seed.
	Seed uint64

	// Engine computes the colour distances. Nil gets a private engine
	// with caching disabled; clustering pairs almost never repeat.
	Engine *deltae.Engine
}

// Swatch is one extracted palette entry: the colour in every
// representation, plus the share of sampled pixels its cluster holds.
type Swatch struct {
	Colour colour.Bundle `json:"colour"`
	Weight float64       `json:"weight"`
}

// Extractor runs k-means palette extraction over images.
type Extractor struct {
	opts Options
	dist func(c1, c2 colour.LAB) float64
	rng  *rand.Rand
}

// New constructs an Extractor, filling zero options with the defaults.
func New(opts Options) *Extractor {
	if opts.MaxSamples <= 0 {
		opts.MaxSamples = defaultMaxSamples
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}
	if opts.Convergence <= 0 {
		opts.Convergence = defaultConvergence
	}

	eng := opts.Engine
	if eng == nil {
		eng = deltae.New(deltae.Options{CacheCapacity: -1})
	}
	dist, _ := eng.MetricFunc(deltae.CIE76)

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Extractor{
		opts: opts,
		dist: dist,
		rng:  rand.New(rand.NewPCG(seed, seed)),
	}
}

// Extract clusters the image's pixels and returns up to k swatches sorted
// by weight, heaviest first. When the image holds no more distinct colours
// than asked for, the exact colours come back with their true frequencies
// and no clustering runs.
func (e *Extractor) Extract(ctx context.Context, img image.Image, k int) ([]Swatch, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", k)
	}
	if k > maxColours {
		return nil, fmt.Errorf("colour count too large: %d (maximum: %d)", k, maxColours)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pixels := samplePixels(img, e.opts.MaxSamples)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no opaque pixels found in image")
	}

	counts := make(map[colour.RGB]int, len(pixels))
	for _, p := range pixels {
		counts[p]++
	}
	if k >= len(counts) {
		return swatchesFromCounts(counts, len(pixels)), nil
	}

	points := make([]colour.LAB, len(pixels))
	for i, p := range pixels {
		points[i] = colour.RGBToLAB(p)
	}

	centroids, weights, err := e.cluster(ctx, points, k)
	if err != nil {
		return nil, err
	}

	swatches := make([]Swatch, len(centroids))
	for i, c := range centroids {
		swatches[i] = Swatch{
			Colour: colour.FromRGB(colour.LABToRGB(c)),
			Weight: weights[i],
		}
	}
	sortSwatches(swatches)
	return swatches, nil
}

// samplePixels walks the image on a grid chosen so that at most maxSamples
// pixels are collected. Fully transparent pixels carry no colour and are
// skipped.
func samplePixels(img image.Image, maxSamples int) []colour.RGB {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	step := 1
	if total > maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(maxSamples))), 1)
	}

	pixels := make([]colour.RGB, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			pixels = append(pixels, colour.RGB{
				R: security.SafeUint8FromUint32(r >> 8),
				G: security.SafeUint8FromUint32(g >> 8),
				B: security.SafeUint8FromUint32(b >> 8),
			})
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}

	return pixels
}

// swatchesFromCounts turns exact colour frequencies into swatches.
func swatchesFromCounts(counts map[colour.RGB]int, total int) []Swatch {
	swatches := make([]Swatch, 0, len(counts))
	for rgb, n := range counts {
		swatches = append(swatches, Swatch{
			Colour: colour.FromRGB(rgb),
			Weight: float64(n) / float64(total),
		})
	}
	sortSwatches(swatches)
	return swatches
}

// sortSwatches orders by weight, heaviest first, with hex as a
// deterministic tie break.
func sortSwatches(swatches []Swatch) {
	sort.Slice(swatches, func(i, j int) bool {
		if swatches[i].Weight != swatches[j].Weight {
			return swatches[i].Weight > swatches[j].Weight
		}
		return swatches[i].Colour.Hex < swatches[j].Colour.Hex
	})
}

// cluster runs k-means over the sampled points and returns k centroids
// with their normalised cluster shares.
func (e *Extractor) cluster(ctx context.Context, points []colour.LAB, k int) ([]colour.LAB, []float64, error) {
	centroids, err := e.seedCentroids(ctx, points, k)
	if err != nil {
		return nil, nil, err
	}

	assignments := make([]int, len(points))

	for iter := 0; iter < e.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		changed := 0
		for i, p := range points {
			nearest := e.nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Under 1% of points moving counts as settled.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := e.recomputeCentroids(points, assignments, k)

		shift := 0.0
		for i := range centroids {
			shift += e.dist(centroids[i], next[i])
		}
		centroids = next

		if shift/float64(k) < e.opts.Convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}

	return centroids, weights, nil
}

// seedCentroids picks initial centroids with k-means++: the first at
// random, each next with probability proportional to squared distance
// from its nearest existing centroid.
func (e *Extractor) seedCentroids(ctx context.Context, points []colour.LAB, k int) ([]colour.LAB, error) {
	centroids := make([]colour.LAB, 0, k)
	centroids = append(centroids, points[e.rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		total := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := e.dist(p, c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			total += distances[i]
		}

		if total == 0 {
			// Every remaining point sits on an existing centroid; nudge a
			// duplicate apart instead of spinning.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, colour.LAB{L: last.L + 0.1, A: last.A + 0.1, B: last.B + 0.1})
			continue
		}

		target := e.rng.Float64() * total
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids, nil
}

// nearestCentroid returns the index of the centroid closest to p.
func (e *Extractor) nearestCentroid(p colour.LAB, centroids []colour.LAB) int {
	nearest := 0
	minDist := math.MaxFloat64

	for i, c := range centroids {
		if d := e.dist(p, c); d < minDist {
			minDist = d
			nearest = i
		}
	}

	return nearest
}

// recomputeCentroids averages each cluster's members; an emptied cluster
// is reseeded from a random point.
func (e *Extractor) recomputeCentroids(points []colour.LAB, assignments []int, k int) []colour.LAB {
	sums := make([]colour.LAB, k)
	ns := make([]int, k)

	for i, p := range points {
		c := assignments[i]
		sums[c].L += p.L
		sums[c].A += p.A
		sums[c].B += p.B
		ns[c]++
	}

	centroids := make([]colour.LAB, k)
	for i := range k {
		if ns[i] > 0 {
			centroids[i] = colour.LAB{
				L: sums[i].L / float64(ns[i]),
				A: sums[i].A / float64(ns[i]),
				B: sums[i].B / float64(ns[i]),
			}
		} else {
			centroids[i] = points[e.rng.IntN(len(points))]
		}
	}

	return centroids
}
