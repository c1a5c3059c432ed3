// Package catalogue ships a curated collection of traditional Japanese
// colours and matches arbitrary colours against it using perceptual
// distance. The built-in data set is embedded xz-compressed; callers can
// load their own collections from JSON files instead.
package catalogue

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/irodori/internal/security"
	"github.com/jmylchreest/irodori/pkg/colour"
)

// maxDecompressedSize caps how large a catalogue may grow when
// decompressed, so a corrupt or hostile .xz file cannot exhaust memory.
const maxDecompressedSize = 8 << 20

//go:embed data/colours.json.xz
var embeddedData []byte

// Entry is one named colour in a catalogue. Category is derived from the
// hex value at load time when the source data does not set it.
type Entry struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Native   string          `json:"native,omitempty"`
	Meaning  string          `json:"meaning,omitempty"`
	Hex      string          `json:"hex"`
	Category colour.Category `json:"category,omitempty"`
}

// Lab converts the entry's hex value to CIE LAB.
func (e Entry) Lab() (colour.LAB, error) {
	return colour.HexToLAB(e.Hex)
}

// String renders the entry for terminal display.
func (e Entry) String() string {
	if e.Native != "" {
		return fmt.Sprintf("%s (%s) %s", e.Name, e.Native, e.Hex)
	}
	return fmt.Sprintf("%s %s", e.Name, e.Hex)
}

// Load returns the embedded colour collection.
func Load() ([]Entry, error) {
	entries, err := decodeXZ(bytes.NewReader(embeddedData))
	if err != nil {
		return nil, fmt.Errorf("embedded catalogue: %w", err)
	}
	return entries, nil
}

// LoadFile reads a catalogue from disk. Files ending in .xz are
// decompressed first; anything else is treated as plain JSON.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	if strings.HasSuffix(path, ".xz") {
		entries, err = decodeXZ(f)
	} else {
		entries, err = decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("catalogue %s: %w", path, err)
	}
	return entries, nil
}

func decodeXZ(r io.Reader) ([]Entry, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz: %w", err)
	}
	return decode(security.NewLimitedReader(xr, maxDecompressedSize))
}

func decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(entries); err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Category != "" {
			continue
		}
		rgb, err := colour.ParseHex(entries[i].Hex)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entries[i].ID, err)
		}
		entries[i].Category = colour.Categorise(rgb)
	}
	return entries, nil
}

func validate(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("catalogue holds no entries")
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("entry %d has no id", i)
		}
		if e.Name == "" {
			return fmt.Errorf("entry %q has no name", e.ID)
		}
		if _, err := colour.ParseHex(e.Hex); err != nil {
			return fmt.Errorf("entry %q: %w", e.ID, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
