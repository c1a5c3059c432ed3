// Package spatial provides a KD-tree over CIE LAB space for exact nearest
// and k-nearest colour lookup.
//
// The tree is arena-backed: nodes live in one flat slice and children are
// integer indices, so a built Index is a pair of allocations regardless of
// size and needs no pointer chasing. An Index is immutable once built;
// rebuilding means building a new one and swapping it in.
package spatial

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jmylchreest/irodori/pkg/colour"
)

// Errors signalled by queries. Both are preconditions, distinct from "no
// result": an empty index and an unsatisfiable k are caller mistakes.
var (
	ErrEmptyIndex         = errors.New("spatial index is empty")
	ErrInsufficientPoints = errors.New("not enough points in index")
)

// DistanceFunc measures the distance between two LAB colours. The Delta E
// engine's MetricFunc returns one; any non-negative symmetric-enough
// function works, but only axis-consistent metrics (Euclidean CIE76) make
// the KD pruning bound exact.
type DistanceFunc func(a, b colour.LAB) float64

// Match is one query result: the index of the matched point in the slice
// given to Build, and its distance from the target.
type Match struct {
	Index    int     `json:"index"`
	Distance float64 `json:"distance"`
}

// noChild marks an absent subtree.
const noChild = -1

// node is one arena entry. Axis is implied by depth (L, a, b cycling), so
// it is not stored.
type node struct {
	point colour.LAB
	ref   int
	left  int
	right int
}

// Index is a KD-tree over LAB points. Build once, query from any number of
// goroutines; there is no internal locking because nothing mutates.
type Index struct {
	nodes []node
	root  int
}

// item pairs a point with its position in the caller's slice during build.
type buildItem struct {
	point colour.LAB
	ref   int
}

// Build constructs an index over the given points by recursive median
// partition on axis = depth mod 3 (L, then a, then b). The input slice is
// copied, not retained. Duplicate coordinates are all kept as distinct
// entries. An empty input yields an empty index whose queries fail with
// ErrEmptyIndex.
func Build(points []colour.LAB) *Index {
	ix := &Index{root: noChild}
	if len(points) == 0 {
		return ix
	}

	items := make([]buildItem, len(points))
	for i, p := range points {
		items[i] = buildItem{point: p, ref: i}
	}

	ix.nodes = make([]node, 0, len(points))
	ix.root = ix.build(items, 0)
	return ix
}

func (ix *Index) build(items []buildItem, depth int) int {
	if len(items) == 0 {
		return noChild
	}

	axis := depth % 3
	sort.Slice(items, func(i, j int) bool {
		return axisValue(items[i].point, axis) < axisValue(items[j].point, axis)
	})

	median := len(items) / 2
	idx := len(ix.nodes)
	ix.nodes = append(ix.nodes, node{
		point: items[median].point,
		ref:   items[median].ref,
		left:  noChild,
		right: noChild,
	})

	left := ix.build(items[:median], depth+1)
	right := ix.build(items[median+1:], depth+1)
	ix.nodes[idx].left = left
	ix.nodes[idx].right = right
	return idx
}

// Built reports whether the index holds any points.
func (ix *Index) Built() bool {
	return len(ix.nodes) > 0
}

// Len returns the number of indexed points.
func (ix *Index) Len() int {
	return len(ix.nodes)
}

// Nearest returns the single closest indexed point to target under dist.
// Querying an empty index returns ErrEmptyIndex.
func (ix *Index) Nearest(target colour.LAB, dist DistanceFunc) (Match, error) {
	if !ix.Built() {
		return Match{}, ErrEmptyIndex
	}

	best := Match{Index: noChild, Distance: math.Inf(1)}
	ix.search(ix.root, target, 0, dist, &best)
	return best, nil
}

// search walks the tree depth-first, descending the side of the splitting
// plane the target lies on first. The far side is visited only when the
// axis gap at this node is smaller than the current best distance; that
// bound is what makes the result exact rather than approximate.
func (ix *Index) search(n int, target colour.LAB, depth int, dist DistanceFunc, best *Match) {
	if n == noChild {
		return
	}
	nd := &ix.nodes[n]

	if d := dist(target, nd.point); d < best.Distance {
		*best = Match{Index: nd.ref, Distance: d}
	}

	axis := depth % 3
	gap := axisValue(target, axis) - axisValue(nd.point, axis)

	near, far := nd.left, nd.right
	if gap >= 0 {
		near, far = nd.right, nd.left
	}

	ix.search(near, target, depth+1, dist, best)
	if math.Abs(gap) < best.Distance {
		ix.search(far, target, depth+1, dist, best)
	}
}

// KNearest returns the k closest indexed points to target, sorted ascending
// by distance. k must be between 1 and Len(); anything else is signalled
// with ErrInsufficientPoints (distinctly from an empty index).
func (ix *Index) KNearest(target colour.LAB, k int, dist DistanceFunc) ([]Match, error) {
	if !ix.Built() {
		return nil, ErrEmptyIndex
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d must be at least 1", ErrInsufficientPoints, k)
	}
	if k > ix.Len() {
		return nil, fmt.Errorf("%w: k=%d exceeds %d indexed points", ErrInsufficientPoints, k, ix.Len())
	}

	cl := candidateList{k: k, matches: make([]Match, 0, k)}
	ix.kSearch(ix.root, target, 0, dist, &cl)
	return cl.matches, nil
}

func (ix *Index) kSearch(n int, target colour.LAB, depth int, dist DistanceFunc, cl *candidateList) {
	if n == noChild {
		return
	}
	nd := &ix.nodes[n]

	cl.offer(Match{Index: nd.ref, Distance: dist(target, nd.point)})

	axis := depth % 3
	gap := axisValue(target, axis) - axisValue(nd.point, axis)

	near, far := nd.left, nd.right
	if gap >= 0 {
		near, far = nd.right, nd.left
	}

	ix.kSearch(near, target, depth+1, dist, cl)
	if math.Abs(gap) < cl.bound() {
		ix.kSearch(far, target, depth+1, dist, cl)
	}
}

// candidateList keeps the k best matches seen so far, sorted ascending.
type candidateList struct {
	matches []Match
	k       int
}

// offer inserts m if it beats the current k-th best.
func (cl *candidateList) offer(m Match) {
	pos := sort.Search(len(cl.matches), func(i int) bool {
		return cl.matches[i].Distance > m.Distance
	})

	if len(cl.matches) < cl.k {
		cl.matches = append(cl.matches, Match{})
		copy(cl.matches[pos+1:], cl.matches[pos:])
		cl.matches[pos] = m
		return
	}
	if pos >= cl.k {
		return
	}
	copy(cl.matches[pos+1:], cl.matches[pos:cl.k-1])
	cl.matches[pos] = m
}

// bound is the pruning radius: the k-th best distance once the list is
// full, unbounded before that.
func (cl *candidateList) bound() float64 {
	if len(cl.matches) < cl.k {
		return math.Inf(1)
	}
	return cl.matches[len(cl.matches)-1].Distance
}

// axisValue returns the coordinate of p on the cycling axis: 0 is L, 1 is
// a, 2 is b.
func axisValue(p colour.LAB, axis int) float64 {
	switch axis {
	case 0:
		return p.L
	case 1:
		return p.A
	default:
		return p.B
	}
}
