package plugin

import (
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
		want    Version
	}{
		{"zero minor", "0.1.0", false, Version{0, 1, 0}},
		{"plain", "1.0.0", false, Version{1, 0, 0}},
		{"all fields", "2.5.3", false, Version{2, 5, 3}},
		{"multi digit", "10.99.42", false, Version{10, 99, 42}},
		{"word", "invalid", true, Version{}},
		{"one field", "1", true, Version{}},
		{"two fields", "1.2", true, Version{}},
		{"non-numeric patch", "1.2.x", true, Version{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.version)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
			if !tt.wantErr && v != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.version, v, tt.want)
			}
		})
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name          string
		version       string
		compatible    bool
		errorContains string
	}{
		{"exact match", "0.1.0", true, ""},
		{"newer minor", "0.2.0", true, ""},
		{"much newer minor", "0.5.2", true, ""},
		{"newer patch", "0.1.1", true, ""},
		{"double digit patch", "0.1.10", true, ""},
		{"below minimum", "0.0.9", false, "too old"},
		{"major ahead", "1.0.0", false, "incompatible major version"},
		{"major far ahead", "2.0.0", false, "incompatible major version"},
		{"garbage", "invalid", false, "failed to parse"},
		{"one field", "1", false, "invalid version format"},
		{"two fields", "1.2", false, "invalid version format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compatible, err := IsCompatible(tt.version)
			if compatible != tt.compatible {
				t.Errorf("IsCompatible(%q) = %v, want %v", tt.version, compatible, tt.compatible)
			}
			if tt.errorContains != "" {
				if err == nil {
					t.Fatalf("IsCompatible(%q) expected error, got nil", tt.version)
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("IsCompatible(%q) error = %q, want it to mention %q",
						tt.version, err, tt.errorContains)
				}
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	if got := (Version{Major: 0, Minor: 1, Patch: 0}).String(); got != "0.1.0" {
		t.Errorf("String() = %q, want %q", got, "0.1.0")
	}
	if got := (Version{Major: 1, Minor: 5, Patch: 3}).String(); got != "1.5.3" {
		t.Errorf("String() = %q, want %q", got, "1.5.3")
	}
}

func TestCurrentVersionMatchesConstant(t *testing.T) {
	if got := CurrentVersion().String(); got != ProtocolVersion {
		t.Errorf("CurrentVersion() = %s, want %s", got, ProtocolVersion)
	}
}
