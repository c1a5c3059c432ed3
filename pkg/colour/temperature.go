package colour

// TemperatureClass is a coarse warm/cool/neutral classification.
type TemperatureClass string

// Temperature classes.
const (
	Warm    TemperatureClass = "warm"
	Cool    TemperatureClass = "cool"
	Neutral TemperatureClass = "neutral"
)

// Temperature describes the perceived warmth of a colour: a class plus a
// signed warmth score in [-1,1], positive towards red and negative towards
// blue.
type Temperature struct {
	Class  TemperatureClass `json:"class"`
	Warmth float64          `json:"warmth"`
}

// neutralBand is the warmth magnitude below which a colour is classed
// neutral rather than warm or cool.
const neutralBand = 0.12

// TemperatureOf derives a Temperature from the red/blue channel imbalance of
// an RGB colour. Green is treated as temperature-neutral.
func TemperatureOf(c RGB) Temperature {
	warmth := (float64(c.R) - float64(c.B)) / 255.0

	class := Neutral
	switch {
	case warmth > neutralBand:
		class = Warm
	case warmth < -neutralBand:
		class = Cool
	}

	return Temperature{Class: class, Warmth: warmth}
}
