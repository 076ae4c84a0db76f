package core

import "image/color"

// Color identifies a solid fill color for a game element.
// Renderers map it to ANSI codes (terminal) or RGBA (window).
type Color uint8

// Palette used by the jumper.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBrown
	ColorBlue
	ColorYellow
	ColorWhite
	ColorGray
)

// String returns the CSS-style name of the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBrown:
		return "brown"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}

// RGBA returns the color with the given opacity applied as alpha.
// Opacity is clamped to [0, 1].
func (c Color) RGBA(opacity float64) color.RGBA {
	var base color.RGBA
	switch c {
	case ColorRed:
		base = color.RGBA{R: 0xff, A: 0xff}
	case ColorGreen:
		base = color.RGBA{G: 0x80, A: 0xff}
	case ColorBrown:
		base = color.RGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}
	case ColorBlue:
		base = color.RGBA{B: 0xff, A: 0xff}
	case ColorYellow:
		base = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	case ColorGray:
		base = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	default:
		base = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}

	// Premultiplied alpha, as image/color expects
	a := ClampF(opacity, 0, 1)
	return color.RGBA{
		R: uint8(float64(base.R) * a),
		G: uint8(float64(base.G) * a),
		B: uint8(float64(base.B) * a),
		A: uint8(float64(base.A) * a),
	}
}
