package deltae

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMetric is returned when a metric name is not recognised.
var ErrUnknownMetric = errors.New("unknown delta E metric")

// Metric identifies a colour-difference formula.
type Metric string

// The three supported metrics, in increasing order of accuracy and cost.
const (
	// CIE76 is plain Euclidean distance in LAB.
	CIE76 Metric = "cie76"

	// CIE94 weights chroma and hue differences relative to the first
	// colour's chroma. Note that this makes it asymmetric in its
	// arguments, per the published formula.
	CIE94 Metric = "cie94"

	// CIEDE2000 is the full reference algorithm with hue rotation and
	// neutral-region corrections.
	CIEDE2000 Metric = "ciede2000"
)

// Metrics returns all supported metrics.
func Metrics() []Metric {
	return []Metric{CIE76, CIE94, CIEDE2000}
}

// String returns the metric name.
func (m Metric) String() string {
	return string(m)
}

// valid reports whether m is a supported metric.
func (m Metric) valid() bool {
	switch m {
	case CIE76, CIE94, CIEDE2000:
		return true
	}
	return false
}

// ParseMetric parses a metric name, accepting a few common spellings
// ("76", "de2000", ...). The empty string is not a metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cie76", "de76", "76":
		return CIE76, nil
	case "cie94", "de94", "94":
		return CIE94, nil
	case "ciede2000", "de2000", "2000", "cie2000":
		return CIEDE2000, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}
