package cube

import "image/color"

// Facelet is the packed value of one cell: a base colour, optionally OR'd
// with Bright.
type Facelet uint8

const (
	Black  Facelet = 0
	White  Facelet = 1 // Top when solved
	Red    Facelet = 2 // Front when solved
	Blue   Facelet = 3 // Right when solved
	Orange Facelet = 4 // Back when solved
	Green  Facelet = 5 // Left when solved
	Yellow Facelet = 6 // Bottom when solved
	Unused Facelet = 7

	// Bright is an additive flag, independent of the colour.
	Bright Facelet = 8

	colorMask Facelet = 7
)

// Color returns the facelet without its Bright flag.
func (f Facelet) Color() Facelet {
	return f & colorMask
}

// IsBright reports whether the Bright flag is set.
func (f Facelet) IsBright() bool {
	return f&Bright != 0
}

// Letter returns a one-letter colour code.
func (f Facelet) Letter() string {
	switch f.Color() {
	case White:
		return "W"
	case Red:
		return "R"
	case Blue:
		return "B"
	case Orange:
		return "O"
	case Green:
		return "G"
	case Yellow:
		return "Y"
	case Black:
		return "."
	default:
		return "?"
	}
}

func (f Facelet) String() string {
	if f.IsBright() {
		return f.Letter() + "+"
	}
	return f.Letter()
}

// Palette maps every packed facelet value (colour | Bright) to the RGB triplet
// sent to the LED strip. Dim entries are roughly an eighth of the bright ones.
var Palette = [15]color.RGBA{
	Black:  rgb(0, 0, 0),
	White:  rgb(24, 24, 24),
	Red:    rgb(32, 0, 0),
	Blue:   rgb(0, 0, 32),
	Orange: rgb(32, 10, 0),
	Green:  rgb(0, 32, 0),
	Yellow: rgb(24, 20, 0),
	Unused: rgb(0, 0, 0),

	Bright | Black:  rgb(0, 0, 0),
	Bright | White:  rgb(192, 192, 192),
	Bright | Red:    rgb(255, 0, 0),
	Bright | Blue:   rgb(0, 0, 255),
	Bright | Orange: rgb(255, 80, 0),
	Bright | Green:  rgb(0, 255, 0),
	Bright | Yellow: rgb(192, 160, 0),
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RGB returns the LED colour for the facelet.
func (f Facelet) RGB() color.RGBA {
	if int(f) >= len(Palette) {
		return Palette[Unused]
	}
	return Palette[f]
}
