package colour

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNilInput is returned when Normalize is given a nil Input.
var ErrNilInput = errors.New("nil colour input")

// Input is a closed sum type over the ways a colour can enter the system:
// a hex string, explicit RGB channels, or a well-known name. Consumers
// resolve it with Normalize; there is no other way to unwrap one.
type Input interface {
	isInput()
}

// HexInput is a colour given as a hex string (e.g. "#DE3163").
type HexInput string

func (HexInput) isInput() {}

// RGBInput is a colour given as explicit 8-bit channels.
type RGBInput struct {
	R, G, B uint8
}

func (RGBInput) isInput() {}

// NamedInput is a colour given by name (e.g. "cerise"); names are matched
// case-insensitively against a small built-in table.
type NamedInput string

func (NamedInput) isInput() {}

// Bundle is the normalised form of a colour: every representation the rest
// of the system needs, computed once at the entry point.
type Bundle struct {
	Hex         string      `json:"hex"`
	RGB         RGB         `json:"rgb"`
	HSL         HSL         `json:"hsl"`
	Lab         LAB         `json:"lab"`
	Temperature Temperature `json:"temperature"`
}

// FromRGB builds a Bundle from an RGB value. It cannot fail: RGB is valid by
// construction.
func FromRGB(c RGB) Bundle {
	return Bundle{
		Hex:         c.Hex(),
		RGB:         c,
		HSL:         RGBToHSL(c),
		Lab:         RGBToLAB(c),
		Temperature: TemperatureOf(c),
	}
}

// Normalize validates an Input and resolves it to a Bundle. It is the single
// entry point through which arbitrary colour input reaches the engine;
// invalid input is an error, never a silently substituted default colour.
func Normalize(in Input) (Bundle, error) {
	switch v := in.(type) {
	case HexInput:
		rgb, err := ParseHex(string(v))
		if err != nil {
			return Bundle{}, err
		}
		return FromRGB(rgb), nil

	case RGBInput:
		return FromRGB(RGB{R: v.R, G: v.G, B: v.B}), nil

	case NamedInput:
		name := strings.ToLower(strings.TrimSpace(string(v)))
		hex, ok := namedColours[name]
		if !ok {
			return Bundle{}, fmt.Errorf("%w: %q", ErrUnknownName, string(v))
		}
		rgb, err := ParseHex(hex)
		if err != nil {
			// The table is static; a bad entry is a bug, not user error.
			panic(fmt.Sprintf("colour: bad named colour table entry %q: %v", name, err))
		}
		return FromRGB(rgb), nil

	case nil:
		return Bundle{}, ErrNilInput

	default:
		return Bundle{}, fmt.Errorf("unsupported colour input type %T", in)
	}
}

// ParseInput interprets a free-form command-line string as an Input: hex if
// it looks like hex, otherwise a name lookup.
func ParseInput(s string) Input {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "#") {
		return HexInput(t)
	}
	if len(t) == 6 && isHexString(t) {
		return HexInput(t)
	}
	return NamedInput(t)
}

// isHexString reports whether s consists only of hex digits.
func isHexString(s string) bool {
	for i := 0; i < len(s); i++ {
		if _, ok := hexDigit(s[i]); !ok {
			return false
		}
	}
	return len(s) > 0
}

// namedColours maps lowercase colour names to hex values. Deliberately
// small: this is a convenience for CLI input, not a colour dictionary
// (the catalogue handles that).
var namedColours = map[string]string{
	"black":   "#000000",
	"white":   "#FFFFFF",
	"red":     "#FF0000",
	"green":   "#008000",
	"lime":    "#00FF00",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"pink":    "#FFC0CB",
	"brown":   "#A52A2A",
	"grey":    "#808080",
	"gray":    "#808080",
	"silver":  "#C0C0C0",
	"maroon":  "#800000",
	"olive":   "#808000",
	"navy":    "#000080",
	"teal":    "#008080",
	"indigo":  "#4B0082",
	"violet":  "#EE82EE",
	"gold":    "#FFD700",
	"beige":   "#F5F5DC",
	"ivory":   "#FFFFF0",
	"coral":   "#FF7F50",
	"salmon":  "#FA8072",
	"crimson": "#DC143C",
}

// Names returns the sorted list of recognised colour names.
func Names() []string {
	out := make([]string, 0, len(namedColours))
	for name := range namedColours {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
