package deltae

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/jmylchreest/irodori/pkg/colour"
)

// Options configures an Engine.
type Options struct {
	// CacheCapacity bounds the result cache. Zero means
	// DefaultCacheCapacity; negative disables caching entirely.
	CacheCapacity int
}

// Engine computes Delta E distances. It owns its lookup tables and result
// cache; two engines share nothing. All methods are safe for concurrent
// use.
type Engine struct {
	tables *Tables
	cache  *resultCache // nil when caching is disabled

	calculations atomic.Uint64
	elapsedNanos atomic.Int64
}

// Stats is a snapshot of engine telemetry. It is read by external
// monitoring; the engine itself never logs or reports.
type Stats struct {
	Calculations  uint64        `json:"calculations"`
	TotalTime     time.Duration `json:"total_time"`
	AverageTime   time.Duration `json:"average_time"`
	CacheHits     uint64        `json:"cache_hits"`
	CacheMisses   uint64        `json:"cache_misses"`
	CacheHitRate  float64       `json:"cache_hit_rate"`
	CacheSize     int           `json:"cache_size"`
	CacheCapacity int           `json:"cache_capacity"`
}

// New constructs an Engine. The zero Options value gives the default cache
// capacity.
func New(opts Options) *Engine {
	e := &Engine{tables: NewTables()}

	capacity := opts.CacheCapacity
	if capacity == 0 {
		capacity = DefaultCacheCapacity
	}
	if capacity > 0 {
		e.cache = newResultCache(capacity)
	}

	return e
}

// Distance computes the Delta E between two LAB colours under the given
// metric. Results for single pairs are cached (keyed by the LAB values
// rounded to two decimals plus the metric); identical colours always give
// exactly zero. An unknown metric is an error. NaN components are a
// programming error and panic rather than propagating through the maths.
func (e *Engine) Distance(c1, c2 colour.LAB, m Metric) (float64, error) {
	if !m.valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
	}
	return e.pairDistance(c1, c2, m), nil
}

// DistanceCIE94 computes CIE94 with explicit parametric factors. Custom
// factors bypass the cache, whose keys do not carry them.
func (e *Engine) DistanceCIE94(c1, c2 colour.LAB, p CIE94Params) float64 {
	checkLAB(c1)
	checkLAB(c2)

	start := time.Now()
	d := cie94(c1, c2, p, e.tables)
	e.record(start)
	return d
}

// MetricFunc returns a plain distance function for the given metric,
// suitable for handing to a spatial index. The returned function goes
// through the same cache and counters as Distance.
func (e *Engine) MetricFunc(m Metric) (func(c1, c2 colour.LAB) float64, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
	}
	return func(c1, c2 colour.LAB) float64 {
		return e.pairDistance(c1, c2, m)
	}, nil
}

// Batch computes the full symmetric pairwise distance matrix for the given
// colours: result[i][j] == Distance(labs[i], labs[j], m). The diagonal is
// zero and the upper triangle is mirrored, so a batch of N colours costs
// N(N-1)/2 metric evaluations.
func (e *Engine) Batch(labs []colour.LAB, m Metric) ([][]float64, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
	}

	n := len(labs)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := e.pairDistance(labs[i], labs[j], m)
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix, nil
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Calculations: e.calculations.Load(),
		TotalTime:    time.Duration(e.elapsedNanos.Load()),
	}
	if s.Calculations > 0 {
		s.AverageTime = s.TotalTime / time.Duration(s.Calculations)
	}

	if e.cache != nil {
		s.CacheHits, s.CacheMisses = e.cache.counters()
		if total := s.CacheHits + s.CacheMisses; total > 0 {
			s.CacheHitRate = float64(s.CacheHits) / float64(total)
		}
		s.CacheSize = e.cache.size()
		s.CacheCapacity = e.cache.capacity
	}

	return s
}

// pairDistance is the cache-checked computation path. The metric has been
// validated by the caller.
func (e *Engine) pairDistance(c1, c2 colour.LAB, m Metric) float64 {
	checkLAB(c1)
	checkLAB(c2)

	// Identical colours are exactly zero under every metric; skip the
	// cache and the formula.
	if c1 == c2 {
		return 0
	}

	var key cacheKey
	if e.cache != nil {
		key = makeKey(c1, c2, m)
		if d, ok := e.cache.get(key); ok {
			return d
		}
	}

	start := time.Now()
	var d float64
	switch m {
	case CIE76:
		d = cie76(c1, c2, e.tables)
	case CIE94:
		d = cie94(c1, c2, CIE94Params{}, e.tables)
	case CIEDE2000:
		d = ciede2000(c1, c2, e.tables)
	}
	e.record(start)

	if e.cache != nil {
		e.cache.put(key, d)
	}
	return d
}

// record accumulates calculation count and elapsed time.
func (e *Engine) record(start time.Time) {
	e.calculations.Add(1)
	e.elapsedNanos.Add(time.Since(start).Nanoseconds())
}

// checkLAB panics on NaN components: malformed LAB input is a programming
// error, and failing fast beats silently returning NaN distances.
func checkLAB(c colour.LAB) {
	if math.IsNaN(c.L) || math.IsNaN(c.A) || math.IsNaN(c.B) {
		panic(fmt.Sprintf("deltae: LAB input contains NaN: %+v", c))
	}
}
