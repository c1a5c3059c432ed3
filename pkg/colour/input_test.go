package colour

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantHex string
		wantErr error
	}{
		{name: "hex input", input: HexInput("#DE3163"), wantHex: "#DE3163"},
		{name: "hex without hash", input: HexInput("de3163"), wantHex: "#DE3163"},
		{name: "rgb input", input: RGBInput{R: 255, G: 0, B: 0}, wantHex: "#FF0000"},
		{name: "named input", input: NamedInput("crimson"), wantHex: "#DC143C"},
		{name: "named case-insensitive", input: NamedInput("  Teal "), wantHex: "#008080"},
		{name: "bad hex", input: HexInput("#ZZZZZZ"), wantErr: ErrInvalidHex},
		{name: "unknown name", input: NamedInput("heliotrope"), wantErr: ErrUnknownName},
		{name: "nil input", input: nil, wantErr: ErrNilInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if got.Hex != tt.wantHex {
				t.Errorf("Normalize().Hex = %v, want %v", got.Hex, tt.wantHex)
			}
		})
	}
}

func TestNormalizeBundleConsistency(t *testing.T) {
	b, err := Normalize(HexInput("#336699"))
	if err != nil {
		t.Fatalf("Normalize unexpected error: %v", err)
	}

	if b.RGB != (RGB{0x33, 0x66, 0x99}) {
		t.Errorf("Bundle.RGB = %v, want rgb(51, 102, 153)", b.RGB)
	}
	if b.Lab != RGBToLAB(b.RGB) {
		t.Errorf("Bundle.Lab = %v inconsistent with RGBToLAB(%v)", b.Lab, b.RGB)
	}
	if b.HSL != RGBToHSL(b.RGB) {
		t.Errorf("Bundle.HSL = %v inconsistent with RGBToHSL(%v)", b.HSL, b.RGB)
	}
	if b.Temperature != TemperatureOf(b.RGB) {
		t.Errorf("Bundle.Temperature = %v inconsistent with TemperatureOf(%v)", b.Temperature, b.RGB)
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Input
	}{
		{name: "hash hex", input: "#FF0000", want: HexInput("#FF0000")},
		{name: "bare hex", input: "ff0000", want: HexInput("ff0000")},
		{name: "name", input: "crimson", want: NamedInput("crimson")},
		{name: "six letter name stays a name", input: "salmon", want: NamedInput("salmon")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseInput(tt.input); got != tt.want {
				t.Errorf("ParseInput(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTemperatureOf(t *testing.T) {
	tests := []struct {
		name      string
		rgb       RGB
		wantClass TemperatureClass
	}{
		{name: "red is warm", rgb: RGB{255, 0, 0}, wantClass: Warm},
		{name: "orange is warm", rgb: RGB{255, 165, 0}, wantClass: Warm},
		{name: "blue is cool", rgb: RGB{0, 0, 255}, wantClass: Cool},
		{name: "grey is neutral", rgb: RGB{128, 128, 128}, wantClass: Neutral},
		{name: "pure green is neutral", rgb: RGB{0, 255, 0}, wantClass: Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TemperatureOf(tt.rgb)
			if got.Class != tt.wantClass {
				t.Errorf("TemperatureOf(%v).Class = %v, want %v", tt.rgb, got.Class, tt.wantClass)
			}
			if got.Warmth < -1 || got.Warmth > 1 {
				t.Errorf("TemperatureOf(%v).Warmth = %v outside [-1,1]", tt.rgb, got.Warmth)
			}
		})
	}
}

func TestTemperatureWarmthSign(t *testing.T) {
	if w := TemperatureOf(RGB{200, 0, 50}).Warmth; w <= 0 {
		t.Errorf("red-leaning warmth = %v, want > 0", w)
	}
	if w := TemperatureOf(RGB{50, 0, 200}).Warmth; w >= 0 {
		t.Errorf("blue-leaning warmth = %v, want < 0", w)
	}
}

func TestCategorise(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Category
	}{
		{name: "pure red", hex: "#FF0000", want: CategoryRed},
		{name: "orange", hex: "#FFA500", want: CategoryOrange},
		{name: "saddle brown", hex: "#8B4513", want: CategoryBrown},
		{name: "yellow", hex: "#FFFF00", want: CategoryYellow},
		{name: "dark green", hex: "#008000", want: CategoryGreen},
		{name: "cyan", hex: "#00FFFF", want: CategoryCyan},
		{name: "blue", hex: "#0000FF", want: CategoryBlue},
		{name: "indigo", hex: "#4B0082", want: CategoryPurple},
		{name: "pink", hex: "#FFC0CB", want: CategoryPink},
		{name: "grey", hex: "#808080", want: CategoryNeutral},
		{name: "near white", hex: "#FAFAFA", want: CategoryNeutral},
		{name: "near black", hex: "#0A0A0A", want: CategoryNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rgb, err := ParseHex(tt.hex)
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.hex, err)
			}
			if got := Categorise(rgb); got != tt.want {
				t.Errorf("Categorise(%s) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}
