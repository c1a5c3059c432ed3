package spatial

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
)

// metricFunc builds a DistanceFunc from an uncached engine so every call
// evaluates the formula directly.
func metricFunc(t *testing.T, metric deltae.Metric) DistanceFunc {
	t.Helper()
	eng := deltae.New(deltae.Options{CacheCapacity: -1})
	fn, err := eng.MetricFunc(metric)
	if err != nil {
		t.Fatalf("MetricFunc(%s): %v", metric, err)
	}
	return DistanceFunc(fn)
}

func randomLAB(rng *rand.Rand) colour.LAB {
	return colour.LAB{
		L: rng.Float64() * 100,
		A: rng.Float64()*255 - 128,
		B: rng.Float64()*255 - 128,
	}
}

func randomPoints(rng *rand.Rand, n int) []colour.LAB {
	points := make([]colour.LAB, n)
	for i := range points {
		points[i] = randomLAB(rng)
	}
	return points
}

func bruteNearest(points []colour.LAB, target colour.LAB, dist DistanceFunc) Match {
	best := Match{Index: -1, Distance: math.Inf(1)}
	for i, p := range points {
		if d := dist(target, p); d < best.Distance {
			best = Match{Index: i, Distance: d}
		}
	}
	return best
}

func bruteKNearest(points []colour.LAB, target colour.LAB, k int, dist DistanceFunc) []Match {
	all := make([]Match, len(points))
	for i, p := range points {
		all[i] = Match{Index: i, Distance: dist(target, p)}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Distance < all[j].Distance })
	return all[:k]
}

func TestEmptyIndex(t *testing.T) {
	ix := Build(nil)
	if ix.Built() {
		t.Error("Built() = true for empty index")
	}
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}

	dist := metricFunc(t, deltae.CIE76)
	if _, err := ix.Nearest(colour.LAB{L: 50}, dist); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("Nearest on empty index: err = %v, want ErrEmptyIndex", err)
	}
	if _, err := ix.KNearest(colour.LAB{L: 50}, 1, dist); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("KNearest on empty index: err = %v, want ErrEmptyIndex", err)
	}
}

func TestSingletonIndex(t *testing.T) {
	point := colour.LAB{L: 53.24, A: 80.09, B: 67.20}
	ix := Build([]colour.LAB{point})
	if ix.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ix.Len())
	}

	dist := metricFunc(t, deltae.CIE76)
	m, err := ix.Nearest(colour.LAB{L: 50, A: 70, B: 60}, dist)
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
	want := dist(colour.LAB{L: 50, A: 70, B: 60}, point)
	if m.Distance != want {
		t.Errorf("Distance = %v, want %v", m.Distance, want)
	}
}

// Every query must return exactly the distance a full linear scan finds.
// Indices are not compared because distinct points can tie.
func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	points := randomPoints(rng, 300)
	ix := Build(points)
	dist := metricFunc(t, deltae.CIE76)

	for trial := 0; trial < 1000; trial++ {
		target := randomLAB(rng)
		got, err := ix.Nearest(target, dist)
		if err != nil {
			t.Fatalf("trial %d: Nearest: %v", trial, err)
		}
		want := bruteNearest(points, target, dist)
		if math.Abs(got.Distance-want.Distance) > 1e-9 {
			t.Fatalf("trial %d: Nearest distance = %v, brute force = %v (target %v)",
				trial, got.Distance, want.Distance, target)
		}
	}
}

func TestKNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))
	points := randomPoints(rng, 200)
	ix := Build(points)
	dist := metricFunc(t, deltae.CIE76)

	for trial := 0; trial < 200; trial++ {
		target := randomLAB(rng)
		k := 1 + rng.IntN(10)

		got, err := ix.KNearest(target, k, dist)
		if err != nil {
			t.Fatalf("trial %d: KNearest(k=%d): %v", trial, k, err)
		}
		if len(got) != k {
			t.Fatalf("trial %d: len = %d, want %d", trial, len(got), k)
		}
		for i := 1; i < len(got); i++ {
			if got[i].Distance < got[i-1].Distance {
				t.Fatalf("trial %d: results not sorted: %v then %v",
					trial, got[i-1].Distance, got[i].Distance)
			}
		}

		want := bruteKNearest(points, target, k, dist)
		for i := range got {
			if math.Abs(got[i].Distance-want[i].Distance) > 1e-9 {
				t.Fatalf("trial %d: rank %d distance = %v, brute force = %v",
					trial, i, got[i].Distance, want[i].Distance)
			}
		}
	}
}

func TestKNearestBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(19, 23))
	points := randomPoints(rng, 5)
	ix := Build(points)
	dist := metricFunc(t, deltae.CIE76)
	target := randomLAB(rng)

	if _, err := ix.KNearest(target, 0, dist); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("k=0: err = %v, want ErrInsufficientPoints", err)
	}
	if _, err := ix.KNearest(target, -3, dist); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("k=-3: err = %v, want ErrInsufficientPoints", err)
	}
	if _, err := ix.KNearest(target, 6, dist); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("k=6 over 5 points: err = %v, want ErrInsufficientPoints", err)
	}

	got, err := ix.KNearest(target, 5, dist)
	if err != nil {
		t.Fatalf("k=Len: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("k=Len: len = %d, want 5", len(got))
	}
}

func TestKNearestOneMatchesNearest(t *testing.T) {
	rng := rand.New(rand.NewPCG(29, 31))
	points := randomPoints(rng, 100)
	ix := Build(points)
	dist := metricFunc(t, deltae.CIE76)

	for trial := 0; trial < 50; trial++ {
		target := randomLAB(rng)
		single, err := ix.Nearest(target, dist)
		if err != nil {
			t.Fatalf("Nearest: %v", err)
		}
		list, err := ix.KNearest(target, 1, dist)
		if err != nil {
			t.Fatalf("KNearest: %v", err)
		}
		if list[0].Distance != single.Distance {
			t.Fatalf("trial %d: KNearest(1) = %v, Nearest = %v",
				trial, list[0].Distance, single.Distance)
		}
	}
}

func TestDuplicatePointsRetained(t *testing.T) {
	dup := colour.LAB{L: 40, A: 10, B: -20}
	points := []colour.LAB{
		{L: 10, A: 0, B: 0},
		dup,
		{L: 90, A: -5, B: 5},
		dup,
	}
	ix := Build(points)
	if ix.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", ix.Len())
	}

	dist := metricFunc(t, deltae.CIE76)
	got, err := ix.KNearest(dup, 2, dist)
	if err != nil {
		t.Fatalf("KNearest: %v", err)
	}
	for i, m := range got {
		if m.Distance != 0 {
			t.Errorf("rank %d: Distance = %v, want 0", i, m.Distance)
		}
		if m.Index != 1 && m.Index != 3 {
			t.Errorf("rank %d: Index = %d, want 1 or 3", i, m.Index)
		}
	}
	if got[0].Index == got[1].Index {
		t.Errorf("duplicate entries collapsed: both results have index %d", got[0].Index)
	}
}

// An indexed point queried against itself must come back at distance zero
// under CIEDE2000, which is not axis-aligned but still satisfies identity.
func TestExactMemberUnderCIEDE2000(t *testing.T) {
	rng := rand.New(rand.NewPCG(37, 41))
	points := randomPoints(rng, 50)
	ix := Build(points)
	dist := metricFunc(t, deltae.CIEDE2000)

	for i, p := range points {
		m, err := ix.Nearest(p, dist)
		if err != nil {
			t.Fatalf("point %d: Nearest: %v", i, err)
		}
		if m.Distance != 0 {
			t.Errorf("point %d: Distance = %v, want 0", i, m.Distance)
		}
		if points[m.Index] != p {
			t.Errorf("point %d: matched index %d holds %v, want %v",
				i, m.Index, points[m.Index], p)
		}
	}
}

func TestBuildCopiesInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(43, 47))
	points := randomPoints(rng, 64)
	original := make([]colour.LAB, len(points))
	copy(original, points)

	_ = Build(points)

	for i := range points {
		if points[i] != original[i] {
			t.Fatalf("Build mutated caller slice at %d: %v != %v",
				i, points[i], original[i])
		}
	}
}
