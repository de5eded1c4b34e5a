package render

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gg"
	"github.com/npillmayer/cycloid"
	"github.com/npillmayer/cycloid/animate"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCanvas(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func rgb(img image.Image, p cycloid.Pair) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(int(p.X()), int(p.Y())).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestNewCanvasRejectsEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewCanvas(0, 100)
	assert.True(t, errors.Is(err, ErrCanvasSize))
	_, err = NewCanvas(100, -1)
	assert.True(t, errors.Is(err, ErrCanvasSize))
}

func TestViewTransform(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := mustCanvas(t, 600, 400)
	center := c.toPixel(cycloid.Origin)
	assert.InDelta(t, 300, center.X(), 1e-9)
	assert.InDelta(t, 200, center.Y(), 1e-9)
	topLeft := c.toPixel(cycloid.P(-3, 3))
	assert.InDelta(t, 100, topLeft.X(), 1e-9)
	assert.InDelta(t, 0, topLeft.Y(), 1e-9)
}

func TestDrawFrame(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig, err := animate.New(animate.Config{Ratio: 4, Frames: 40, NCycles: 1})
	require.NoError(t, err)
	c := mustCanvas(t, 300, 300)
	d, err := fig.Animate(0)
	require.NoError(t, err)
	img, err := c.Draw(fig.Static(), d)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 300, 300), img.Bounds())

	r, g, b := rgb(img, cycloid.P(2, 2))
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b}, "background")

	r, g, b = rgb(img, c.toPixel(d.Dot1[0]))
	assert.Less(t, int(r)+int(g)+int(b), 3*80, "dot center should be dark, is (%d,%d,%d)", r, g, b)

	r, g, b = rgb(img, c.toPixel(cycloid.P(0, -1)))
	assert.Greater(t, b, r, "big circle should be blue at (0,-1), is (%d,%d,%d)", r, g, b)
	assert.Greater(t, b, g)
}

func TestDrawClearsPreviousFrame(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig, err := animate.New(animate.Config{Ratio: 4, Frames: 8, NCycles: 1})
	require.NoError(t, err)
	c := mustCanvas(t, 200, 200, WithStyles(Styles{animate.Dot1: {Color: Black, MarkerRadius: 4}}))
	d0, err := fig.Animate(0)
	require.NoError(t, err)
	img0, err := c.Draw(nil, d0)
	require.NoError(t, err)
	d4, err := fig.Animate(4)
	require.NoError(t, err)
	img4, err := c.Draw(nil, d4)
	require.NoError(t, err)

	at0 := c.toPixel(d0.Dot1[0])
	r, _, _ := rgb(img0, at0)
	assert.Less(t, r, uint8(80))
	r, g, b := rgb(img4, at0)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b}, "old dot must be gone")
	r, _, _ = rgb(img0, at0)
	assert.Less(t, r, uint8(80), "earlier images are copies")
}

func TestBackgroundOption(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := mustCanvas(t, 50, 50, WithBackground(gg.RGB(0, 0, 0)), WithStyles(Styles{}))
	img, err := c.Draw(nil, animate.Drawables{})
	require.NoError(t, err)
	r, g, b := rgb(img, cycloid.P(25, 25))
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestPalette(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pal := DefaultStyles().Palette(gg.RGB(1, 1, 1))
	assert.Equal(t, []gg.RGBA{gg.RGB(1, 1, 1), Blue, Black, Green, Red}, pal)
}
