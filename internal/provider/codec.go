package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/jmylchreest/irodori/pkg/colour"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

// looksLikeJSON reports whether data starts with a JSON array.
func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ParsePaletteFile reads a palette file in either supported format: a JSON
// array, or plain text with one hex colour per line.
func ParsePaletteFile(path string) ([]plugin.Colour, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified palette file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	var colours []plugin.Colour
	if looksLikeJSON(data) {
		colours, err = parsePaletteJSON(data)
	} else {
		colours, err = parsePaletteText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("palette file %s: %w", path, err)
	}
	return colours, nil
}

// parsePaletteJSON parses a JSON palette: an array whose elements are hex
// strings, {"hex": ..., "name": ...} objects or {"r": .., "g": ..,
// "b": .., "name": ...} objects. The forms can be mixed.
func parsePaletteJSON(data []byte) ([]plugin.Colour, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid palette JSON: %w", err)
	}

	colours := make([]plugin.Colour, 0, len(raw))
	for i, elem := range raw {
		c, err := parsePaletteElement(elem)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		colours = append(colours, c)
	}
	return colours, nil
}

func parsePaletteElement(elem json.RawMessage) (plugin.Colour, error) {
	if trimmed := bytes.TrimLeftFunc(elem, unicode.IsSpace); len(trimmed) > 0 && trimmed[0] == '"' {
		var hex string
		if err := json.Unmarshal(elem, &hex); err != nil {
			return plugin.Colour{}, err
		}
		rgb, err := colour.ParseHex(hex)
		if err != nil {
			return plugin.Colour{}, err
		}
		return plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B}, nil
	}

	var obj struct {
		Hex  string `json:"hex"`
		Name string `json:"name"`
		R    uint8  `json:"r"`
		G    uint8  `json:"g"`
		B    uint8  `json:"b"`
	}
	if err := json.Unmarshal(elem, &obj); err != nil {
		return plugin.Colour{}, err
	}
	if obj.Hex != "" {
		rgb, err := colour.ParseHex(obj.Hex)
		if err != nil {
			return plugin.Colour{}, err
		}
		return plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B, Name: obj.Name}, nil
	}
	return plugin.Colour{R: obj.R, G: obj.G, B: obj.B, Name: obj.Name}, nil
}

// parsePaletteText parses the plain text palette format: one colour per
// line as a hex value, optionally followed by a name. Blank lines are
// skipped. A line whose first token does not parse as a colour and
// starts with '#' is a comment.
func parsePaletteText(data []byte) ([]plugin.Colour, error) {
	var colours []plugin.Colour
	for lineNum, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		rgb, err := colour.ParseHex(fields[0])
		if err != nil {
			if strings.HasPrefix(line, "#") {
				continue
			}
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}

		c := plugin.Colour{R: rgb.R, G: rgb.G, B: rgb.B}
		if len(fields) > 1 {
			c.Name = strings.Join(fields[1:], " ")
		}
		colours = append(colours, c)
	}
	return colours, nil
}
