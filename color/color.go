package color

import (
	col "image/color"

	"github.com/mazznoer/csscolorparser"
)

// Parse resolves a CSS color value (named, hex, rgb(), hsl()) to an image
// color. The second result is false for values the parser rejects.
func Parse(value string) (col.Color, bool) {
	if value == "" {
		return nil, false
	}
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return nil, false
	}
	r, g, b, a := c.RGBA255()
	return col.RGBA{R: r, G: g, B: b, A: a}, true
}
