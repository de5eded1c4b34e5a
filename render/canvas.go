// Package render rasterizes the drawables of a figure.
//
// A Canvas wraps a gg drawing context of fixed pixel size. The figure's
// coordinate space is the square [-3,3]×[-3,3], centered in the image with
// equal aspect ratio and y pointing upwards. Each kind of drawable is
// painted with a Style; markers (the tracking dots) are filled discs, every
// other drawable is stroked as an open polyline.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/cycloid"
	"github.com/npillmayer/cycloid/animate"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// ViewExtent is the half-width of the visible square in figure coordinates.
const ViewExtent = 3.0

// ErrCanvasSize indicates a canvas without pixels.
var ErrCanvasSize = errors.New("canvas dimensions must be positive")

// Canvas renders frames onto an in-memory raster.
type Canvas struct {
	dc         *gg.Context
	view       cycloid.AT // figure coordinates → pixel coordinates
	styles     Styles
	background gg.RGBA
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithStyles replaces the default styles. Kinds missing from styles are
// not drawn.
func WithStyles(styles Styles) Option {
	return func(c *Canvas) {
		c.styles = styles
	}
}

// WithBackground sets the color every frame is cleared with.
func WithBackground(col gg.RGBA) Option {
	return func(c *Canvas) {
		c.background = col
	}
}

// NewCanvas creates a canvas of width × height pixels.
func NewCanvas(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w, have %d×%d", ErrCanvasSize, width, height)
	}
	c := &Canvas{
		dc:         gg.NewContext(width, height),
		view:       viewTransform(width, height),
		styles:     DefaultStyles(),
		background: gg.RGB(1, 1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	tracer().Debugf("canvas %d×%d, view %s", width, height, c.view)
	return c, nil
}

// viewTransform maps [-ViewExtent,ViewExtent]² onto the largest centered
// square of the image, flipping the y-axis.
func viewTransform(width, height int) cycloid.AT {
	s := math.Min(float64(width), float64(height)) / (2 * ViewExtent)
	center := cycloid.P(float64(width)/2, float64(height)/2)
	return cycloid.Scaling(s, -s).Combine(cycloid.Translation(center))
}

// toPixel maps a point in figure coordinates to pixel coordinates.
func (c *Canvas) toPixel(p cycloid.Pair) cycloid.Pair {
	return c.view.Transform(p)
}

// Draw clears the canvas, paints the static drawables, then the moving
// ones, and returns a copy of the resulting image.
func (c *Canvas) Draw(static []animate.Drawable, d animate.Drawables) (image.Image, error) {
	c.dc.ClearWithColor(c.background)
	for _, drw := range static {
		if err := c.paint(drw); err != nil {
			return nil, err
		}
	}
	for _, drw := range d.All() {
		if err := c.paint(drw); err != nil {
			return nil, err
		}
	}
	return c.dc.Image(), nil
}

func (c *Canvas) paint(drw animate.Drawable) error {
	style, ok := c.styles[drw.Kind]
	if !ok || drw.Points.N() == 0 {
		return nil
	}
	col := style.Color
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	if drw.Kind.IsMarker() {
		for _, p := range drw.Points {
			x, y := c.toPixel(p).F()
			c.dc.DrawCircle(x, y, style.MarkerRadius)
			if err := c.dc.Fill(); err != nil {
				return fmt.Errorf("fill %s: %w", drw.Kind, err)
			}
		}
		return nil
	}
	pts := c.view.TransformAll(drw.Points)
	if pts.N() < 2 {
		return nil
	}
	c.dc.SetLineWidth(style.LineWidth)
	c.dc.MoveTo(pts[0].X(), pts[0].Y())
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X(), p.Y())
	}
	if err := c.dc.Stroke(); err != nil {
		return fmt.Errorf("stroke %s: %w", drw.Kind, err)
	}
	return nil
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
