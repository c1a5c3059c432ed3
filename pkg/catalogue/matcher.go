package catalogue

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/deltae"
	"github.com/jmylchreest/irodori/pkg/spatial"
)

// Match pairs a catalogue entry with its perceptual distance from the
// queried colour.
type Match struct {
	Entry    Entry   `json:"entry"`
	Distance float64 `json:"distance"`
}

// Stats describes a matcher's current state, including the counters of the
// engine it measures distances with.
type Stats struct {
	Entries    int          `json:"entries"`
	IndexBuilt bool         `json:"index_built"`
	IndexSize  int          `json:"index_size"`
	Engine     deltae.Stats `json:"engine"`
}

// Matcher answers closest-colour queries against a catalogue. The entry
// list and its spatial index are replaced atomically on Reload, so queries
// and reloads may run concurrently; a query sees either the old collection
// or the new one, never a mix.
type Matcher struct {
	eng *deltae.Engine
	log hclog.Logger

	mu      sync.RWMutex
	entries []Entry
	index   *spatial.Index
}

// NewMatcher indexes the given entries. A nil engine gets a default one
// and a nil logger is silenced.
func NewMatcher(entries []Entry, eng *deltae.Engine, log hclog.Logger) (*Matcher, error) {
	if eng == nil {
		eng = deltae.New(deltae.Options{})
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}

	m := &Matcher{eng: eng, log: log}
	if err := m.Reload(entries); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload replaces the catalogue. The new entry list is validated and
// indexed before the swap, so a bad reload leaves the previous collection
// in place and queries never observe a half-built index.
func (m *Matcher) Reload(entries []Entry) error {
	if err := validate(entries); err != nil {
		return err
	}

	own := make([]Entry, len(entries))
	copy(own, entries)

	labs := make([]colour.LAB, len(own))
	for i := range own {
		lab, err := own[i].Lab()
		if err != nil {
			return fmt.Errorf("entry %q: %w", own[i].ID, err)
		}
		labs[i] = lab

		if own[i].Category == "" {
			rgb, err := colour.ParseHex(own[i].Hex)
			if err != nil {
				return fmt.Errorf("entry %q: %w", own[i].ID, err)
			}
			own[i].Category = colour.Categorise(rgb)
		}
	}

	index := spatial.Build(labs)

	m.mu.Lock()
	m.entries = own
	m.index = index
	m.mu.Unlock()

	m.log.Debug("catalogue indexed", "entries", len(own))
	return nil
}

// Closest returns the single nearest catalogue entry to target under the
// given metric.
func (m *Matcher) Closest(target colour.LAB, metric deltae.Metric) (Match, error) {
	dist, err := m.eng.MetricFunc(metric)
	if err != nil {
		return Match{}, err
	}

	index, entries := m.snapshot()
	found, err := index.Nearest(target, spatial.DistanceFunc(dist))
	if err != nil {
		return Match{}, err
	}
	return Match{Entry: entries[found.Index], Distance: found.Distance}, nil
}

// ClosestK returns the k nearest catalogue entries to target, closest
// first. Asking for more entries than the catalogue holds fails with
// spatial.ErrInsufficientPoints.
func (m *Matcher) ClosestK(target colour.LAB, k int, metric deltae.Metric) ([]Match, error) {
	dist, err := m.eng.MetricFunc(metric)
	if err != nil {
		return nil, err
	}

	index, entries := m.snapshot()
	found, err := index.KNearest(target, k, spatial.DistanceFunc(dist))
	if err != nil {
		return nil, err
	}

	matches := make([]Match, len(found))
	for i, f := range found {
		matches[i] = Match{Entry: entries[f.Index], Distance: f.Distance}
	}
	return matches, nil
}

// Find looks an entry up by its id.
func (m *Matcher) Find(id string) (Entry, bool) {
	_, entries := m.snapshot()
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// ByCategory returns the entries whose derived category matches.
func (m *Matcher) ByCategory(category colour.Category) []Entry {
	_, entries := m.snapshot()

	var out []Entry
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns a copy of the current entry list.
func (m *Matcher) Entries() []Entry {
	_, entries := m.snapshot()
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of catalogue entries.
func (m *Matcher) Len() int {
	_, entries := m.snapshot()
	return len(entries)
}

// Stats returns a snapshot of the matcher and its engine.
func (m *Matcher) Stats() Stats {
	index, entries := m.snapshot()
	return Stats{
		Entries:    len(entries),
		IndexBuilt: index.Built(),
		IndexSize:  index.Len(),
		Engine:     m.eng.Stats(),
	}
}

// snapshot grabs the current index and entry slice under the read lock.
// Both are immutable once published, so callers can use them lock-free.
func (m *Matcher) snapshot() (*spatial.Index, []Entry) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index, m.entries
}
