package render

import (
	"fmt"
	"image/color"
)

// Palette holds the colors of a scene.
type Palette struct {
	Background    color.RGBA
	Edge          color.RGBA
	EdgeHighlight color.RGBA
	Seller        color.RGBA // sold more than bought
	Buyer         color.RGBA // bought more than sold
	Balanced      color.RGBA
	NodeStroke    color.RGBA
	NodeHighlight color.RGBA
	Label         color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background:    color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
		Edge:          color.RGBA{0x6b, 0x80, 0xbf, 0xff},
		EdgeHighlight: color.RGBA{0xff, 0xd7, 0x00, 0xff},
		Seller:        color.RGBA{0x4c, 0xaf, 0x50, 0xff},
		Buyer:         color.RGBA{0xff, 0x98, 0x00, 0xff},
		Balanced:      color.RGBA{0x9e, 0x9e, 0x9e, 0xff},
		NodeStroke:    color.RGBA{0x22, 0x22, 0x22, 0xff},
		NodeHighlight: color.RGBA{0xff, 0xff, 0xff, 0xff},
		Label:         color.RGBA{0xe0, 0xe0, 0xe0, 0xff},
	}
}

// Style sizes are in pixels.
type Style struct {
	Stroke         StrokeMapping
	NodeRadius     float64
	ArrowSize      float64
	Padding        float64
	ParallelOffset float64
	Labels         bool
	Palette        Palette
}

func DefaultStyle() Style {
	return Style{
		Stroke:         DefaultStroke(),
		NodeRadius:     6,
		ArrowSize:      6,
		Padding:        24,
		ParallelOffset: 4,
		Labels:         true,
		Palette:        DefaultPalette(),
	}
}

// loopRadius is the radius of a self-loop in pixels.
func (s Style) loopRadius() float64 { return s.NodeRadius * 0.9 }

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// BrailleStyle sizes shapes for a braille canvas, where one pixel is one dot.
func BrailleStyle() Style {
	return Style{
		Stroke:         StrokeMapping{Base: 1, Scale: 0.6, Max: 3},
		NodeRadius:     2,
		ArrowSize:      3,
		Padding:        6,
		ParallelOffset: 2,
		Labels:         true,
		Palette:        DefaultPalette(),
	}
}
