package render

import (
	"github.com/gogpu/gg"
	"github.com/npillmayer/cycloid/animate"
)

// Style determines how a drawable is painted.
type Style struct {
	Color        gg.RGBA
	LineWidth    float64 // for polylines, in pixels
	MarkerRadius float64 // for markers, in pixels
}

// Styles maps kinds of drawables to their style.
type Styles map[animate.Kind]Style

// Colors of the default styles.
var (
	Black = gg.RGB(0, 0, 0)
	Blue  = gg.RGB(0, 0, 1)
	Green = gg.RGB(0, 0.5, 0)
	Red   = gg.RGB(1, 0, 0)
)

// DefaultStyles returns thin black rolling circles and connectors, a blue
// fixed circle, a green hypocycloid, a red epicycloid and black dots.
func DefaultStyles() Styles {
	thin := func(col gg.RGBA) Style {
		return Style{Color: col, LineWidth: 1.5}
	}
	dot := Style{Color: Black, MarkerRadius: 3}
	return Styles{
		animate.BigCircle:   thin(Blue),
		animate.InnerCircle: thin(Black),
		animate.OuterCircle: thin(Black),
		animate.Hypocycloid: thin(Green),
		animate.Epicycloid:  thin(Red),
		animate.Line1:       thin(Black),
		animate.Line2:       thin(Black),
		animate.Dot1:        dot,
		animate.Dot2:        dot,
	}
}

// Palette returns the distinct colors of styles plus background, as used
// for building a color palette for indexed image formats.
func (styles Styles) Palette(background gg.RGBA) []gg.RGBA {
	seen := map[gg.RGBA]bool{background: true}
	pal := []gg.RGBA{background}
	for k := animate.BigCircle; k <= animate.Dot2; k++ {
		s, ok := styles[k]
		if !ok || seen[s.Color] {
			continue
		}
		seen[s.Color] = true
		pal = append(pal, s.Color)
	}
	return pal
}
