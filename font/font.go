package font

import (
	"fmt"
	"math"
	"sync"

	"github.com/adrg/sysfont"
	"github.com/fogleman/gg"
	fnt "golang.org/x/image/font"
)

type key struct {
	Size   float64
	Weight string
	Style  string
}

var (
	mu     sync.Mutex
	cache  = map[key]fnt.Face{}
	finder *sysfont.Finder
)

// Get returns a cached font face for the given size, weight ("normal" or
// "bold") and style ("normal" or "italic"), matched from the system fonts.
func Get(size float64, weight, style string) (fnt.Face, error) {
	mu.Lock()
	defer mu.Unlock()

	k := key{Size: size, Weight: weight, Style: style}
	if face, exists := cache[k]; exists {
		return face, nil
	}

	if finder == nil {
		finder = sysfont.NewFinder(nil)
	}
	match := finder.Match(weight + " " + style)
	if match == nil {
		return nil, fmt.Errorf("no system font for %s %s", weight, style)
	}
	face, err := gg.LoadFontFace(match.Filename, size)
	if err != nil {
		return nil, fmt.Errorf("loading font %s: %w", match.Filename, err)
	}
	cache[k] = face
	return face, nil
}

// Measure returns the advance width of text in pixels.
func Measure(face fnt.Face, text string) float64 {
	return math.Ceil(float64(fnt.MeasureString(face, text)) / 64.0)
}

// Linespace returns the line height in pixels.
func Linespace(face fnt.Face) float64 {
	// note: without the scaling factor, the lines are too narrow
	return math.Ceil(float64(face.Metrics().Height) / 64.0 * 96 / 72)
}

// Ascent returns the ascent above the baseline in pixels.
func Ascent(face fnt.Face) float64 {
	return float64(face.Metrics().Ascent) / 64.0
}
