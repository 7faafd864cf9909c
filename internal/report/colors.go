package report

import (
	"fmt"
	"image/color"
	"math"
)

// Trail colours share saturation and lightness; only the hue changes.
const (
	trailSaturation = 0.7
	trailLightness  = 0.5
)

// palette assigns one colour per vehicle, with hues spread evenly around the
// wheel so that the lead and its followers stay distinguishable.
type palette []color.RGBA

func newPalette(vehicles int) palette {
	p := make(palette, max(vehicles, 0))
	for i := range p {
		p[i] = hsl(float64(i)/float64(len(p)), trailSaturation, trailLightness)
	}
	return p
}

// at returns the colour of vehicle i.
func (p palette) at(i int) color.RGBA { return p[i] }

// hex returns the colour of vehicle i as #rrggbb for HTML charts.
func (p palette) hex(i int) string {
	c := p[i]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// hsl converts a hue in [0, 1) with saturation and lightness to RGB using
// the chroma construction.
func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	sector := h * 6
	x := c * (1 - math.Abs(math.Mod(sector, 2)-1))

	var r, g, b float64
	switch int(sector) % 6 {
	case 0:
		r, g = c, x
	case 1:
		r, g = x, c
	case 2:
		g, b = c, x
	case 3:
		g, b = x, c
	case 4:
		r, b = x, c
	default:
		r, b = c, x
	}

	m := l - c/2
	channel := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}
