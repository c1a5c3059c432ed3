package colour

// Category is a coarse hue-family bucket used to group catalogue entries and
// extracted swatches.
type Category string

// Hue family categories.
const (
	CategoryRed     Category = "red"
	CategoryOrange  Category = "orange"
	CategoryYellow  Category = "yellow"
	CategoryGreen   Category = "green"
	CategoryCyan    Category = "cyan"
	CategoryBlue    Category = "blue"
	CategoryPurple  Category = "purple"
	CategoryPink    Category = "pink"
	CategoryBrown   Category = "brown"
	CategoryNeutral Category = "neutral"
)

// Categorise assigns a colour to a hue-family category. The hue boundaries
// are conventional colour-wheel ranges; low-saturation and extreme-lightness
// colours are neutral regardless of hue, and dark oranges read as brown.
func Categorise(c RGB) Category {
	hsl := RGBToHSL(c)

	// Too grey or too close to black/white to carry a hue identity.
	if hsl.S < 10 || hsl.L < 8 || hsl.L > 95 {
		return CategoryNeutral
	}

	h := hsl.H
	switch {
	case h < 15 || h >= 345:
		if hsl.L > 75 {
			return CategoryPink
		}
		return CategoryRed
	case h < 45:
		if hsl.L < 40 {
			return CategoryBrown
		}
		return CategoryOrange
	case h < 70:
		return CategoryYellow
	case h < 160:
		return CategoryGreen
	case h < 200:
		return CategoryCyan
	case h < 260:
		return CategoryBlue
	case h < 315:
		return CategoryPurple
	default:
		return CategoryPink
	}
}
