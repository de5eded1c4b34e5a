package animate

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/cycloid"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFigure(t *testing.T, ratio float64, frames, ncycles int) *Figure {
	t.Helper()
	fig, err := New(Config{Ratio: ratio, Frames: frames, NCycles: ncycles})
	require.NoError(t, err)
	return fig
}

func TestNewRejectsDegenerateParameters(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cases := []struct {
		config Config
		err    error
	}{
		{Config{Ratio: 1, Frames: 10, NCycles: 1}, ErrInvalidRatio},
		{Config{Ratio: 0.5, Frames: 10, NCycles: 1}, ErrInvalidRatio},
		{Config{Ratio: -3, Frames: 10, NCycles: 1}, ErrInvalidRatio},
		{Config{Ratio: math.NaN(), Frames: 10, NCycles: 1}, ErrInvalidRatio},
		{Config{Ratio: math.Inf(1), Frames: 10, NCycles: 1}, ErrInvalidRatio},
		{Config{Ratio: 3, Frames: 0, NCycles: 1}, ErrInvalidFrames},
		{Config{Ratio: 3, Frames: -4, NCycles: 1}, ErrInvalidFrames},
		{Config{Ratio: 3, Frames: 10, NCycles: 0}, ErrInvalidCycles},
		{Config{Ratio: 3, Frames: math.MaxInt / 2, NCycles: 3}, ErrTooManyFrames},
		{Config{Ratio: 3, Frames: 2, NCycles: math.MaxInt}, ErrTooManyFrames},
	}
	for _, c := range cases {
		fig, err := New(c.config)
		assert.Nil(t, fig, "%s", c.config)
		assert.True(t, errors.Is(err, c.err), "%s: expected %v, got %v", c.config, c.err, err)
	}
	fig, err := New(Config{Ratio: 3, Frames: math.MaxInt / 4, NCycles: 4})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt/4*4, fig.FrameCount())
	fig, err = New(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), fig.Config())
}

func TestStaticGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 4, 10, 1)
	assert.Equal(t, 0.25, fig.r)
	static := fig.Static()
	require.Len(t, static, 1)
	assert.Equal(t, BigCircle, static[0].Kind)
	require.Equal(t, bigCircleSamples, static[0].Points.N())
	for _, p := range static[0].Points {
		assert.InDelta(t, 1.0, math.Hypot(p.X(), p.Y()), 1e-9)
	}
	home := fig.Initial()
	assert.Equal(t, -1, home.Frame)
	require.Equal(t, homeCircleSamples, home.InnerCircle.N())
	require.Equal(t, homeCircleSamples, home.OuterCircle.N())
	// home circles touch the unit circle at (1,0)
	assert.True(t, home.InnerCircle[0].Equal(cycloid.P(1, 0)), "inner home starts at %v", home.InnerCircle[0])
	for _, p := range home.OuterCircle {
		assert.InDelta(t, 0.25, math.Hypot(p.X()-1.25, p.Y()), 1e-9)
	}
	assert.Empty(t, home.Hypocycloid)
	assert.Empty(t, home.Epicycloid)
}

func TestPhase(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 3.25, 80, 5)
	prev := math.Inf(-1)
	for frame := 0; frame < fig.FrameCount(); frame++ {
		phi := fig.Phase(frame)
		assert.InDelta(t, 2*math.Pi*float64(frame+1)/80, phi, 1e-9)
		assert.Greater(t, phi, prev, "phase not increasing at frame %d", frame)
		prev = phi
	}
	assert.InDelta(t, 2*math.Pi*5, fig.Phase(fig.FrameCount()-1), 1e-9)
}

func TestSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 3.25, 80, 1)
	assert.Equal(t, []float64{0}, fig.Samples(0))
	phis := fig.Samples(41)
	require.Len(t, phis, 42)
	assert.Equal(t, 0.0, phis[0])
	assert.Equal(t, fig.Phase(41), phis[41])
}

func TestAnimateEndToEnd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 4, 4, 1)
	d, err := fig.Animate(3)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Frame)
	assert.InDelta(t, 2*math.Pi, d.Phi, 1e-9)
	require.Equal(t, 4, d.Hypocycloid.N())
	require.Equal(t, 4, d.Epicycloid.N())
	end := d.Hypocycloid.Last()
	assert.InDelta(t, 1.0, end.X(), 1e-9)
	assert.InDelta(t, 0.0, end.Y(), 1e-9)
	assert.Equal(t, rollingCircleSamples, d.InnerCircle.N())
	assert.Equal(t, rollingCircleSamples, d.OuterCircle.N())
	// connector runs from the rolling circle's center to the curve's end
	require.Len(t, d.Line1, 2)
	require.Len(t, d.Dot1, 1)
	assert.True(t, d.Line1[0].Equal(cycloid.P(0.75, 0)), "line1 starts at %v", d.Line1[0])
	assert.Equal(t, end, d.Line1[1])
	assert.Equal(t, d.Line1[0], d.Dot1[0])
	require.Len(t, d.Line2, 2)
	assert.True(t, d.Line2[0].Equal(cycloid.P(1.25, 0)), "line2 starts at %v", d.Line2[0])
	assert.Equal(t, d.Epicycloid.Last(), d.Line2[1])
	assert.Equal(t, d.Line2[0], d.Dot2[0])
	assert.Len(t, d.All(), 8)
}

func TestAnimateFirstFrameIsSinglePoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 3.4, 80, 5)
	d, err := fig.Animate(0)
	require.NoError(t, err)
	require.Equal(t, 1, d.Hypocycloid.N())
	assert.True(t, d.Hypocycloid[0].Equal(cycloid.P(1, 0)))
	assert.True(t, d.Epicycloid[0].Equal(cycloid.P(1, 0)))
	// the dot sits at the center for t = 0, not at phi
	assert.True(t, d.Dot1[0].Equal(cycloid.P(1-fig.r, 0)))
}

func TestAnimateIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 3.25, 80, 2)
	for _, frame := range []int{0, 17, 79, 80, 159} {
		d1, err := fig.Animate(frame)
		require.NoError(t, err)
		d1.Hypocycloid[0] = cycloid.P(42, 42) // snapshots own their buffers
		d2, err := fig.Animate(frame)
		require.NoError(t, err)
		d3, err := fig.Animate(frame)
		require.NoError(t, err)
		assert.Equal(t, d2, d3)
		assert.NotEqual(t, d1.Hypocycloid[0], d2.Hypocycloid[0])
	}
}

func TestAnimateOutOfRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 3.25, 10, 2)
	for _, frame := range []int{-1, 20, 1000} {
		_, err := fig.Animate(frame)
		assert.True(t, errors.Is(err, ErrFrameOutOfRange), "frame %d: got %v", frame, err)
	}
	_, err := fig.Animate(19)
	assert.NoError(t, err)
}

func TestPhaseIsNotWrapped(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	fig := mustFigure(t, 3.25, 10, 3)
	d, err := fig.Animate(25)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi*2.6, d.Phi, 1e-9)
	assert.Equal(t, 26, d.Epicycloid.N())
}

func TestKindNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "hypocycloid", Hypocycloid.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.True(t, Dot2.IsMarker())
	assert.False(t, Line2.IsMarker())
}
