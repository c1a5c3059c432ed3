package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ProtocolVersion is the provider API version this SDK speaks, as
	// MAJOR.MINOR.PATCH. The major number moves on breaking changes,
	// the minor on compatible additions, the patch on fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this host can
	// work with.
	MinCompatibleVersion = "0.1.0"
)

// Version is a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a "MAJOR.MINOR.PATCH" string.
func ParseVersion(version string) (Version, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version format: %s (%q is not a number)", version, part)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// less orders versions field by field.
func (v Version) less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// IsCompatible reports whether a provider speaking providerVersion can work
// with this host: the major version must match the host's exactly, and the
// version must not predate MinCompatibleVersion. A newer minor or patch on
// the provider side is fine.
func IsCompatible(providerVersion string) (bool, error) {
	pv, err := ParseVersion(providerVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse provider version: %w", err)
	}

	host := CurrentVersion()
	if pv.Major != host.Major {
		return false, fmt.Errorf("incompatible major version: provider is %s, host requires %d.x.x",
			pv, host.Major)
	}

	minimum, err := ParseVersion(MinCompatibleVersion)
	if err != nil {
		return false, fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}
	if pv.less(minimum) {
		return false, fmt.Errorf("provider version %s is too old, minimum required is %s",
			pv, MinCompatibleVersion)
	}
	return true, nil
}

// CurrentVersion returns ProtocolVersion in parsed form.
func CurrentVersion() Version {
	v, err := ParseVersion(ProtocolVersion)
	if err != nil {
		// Unreachable while ProtocolVersion is a well-formed constant.
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}
