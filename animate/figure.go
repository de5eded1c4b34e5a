// Package animate computes the per-frame geometry of the hypocycloid /
// epicycloid animation.
//
// A Figure owns the immutable parameters and the static geometry. Calling
// Animate with a frame index returns a fresh snapshot of everything that
// moves: the two rolling circles, the two traced curves, and for each curve
// a connector from the rolling circle's center to the tracing point plus a
// dot at that center. Animate is a pure function of the frame index; the
// traced curves are recomputed from scratch on every call.
//
//	fig, err := animate.New(animate.DefaultConfig())
//	...
//	for frame := 0; frame < fig.FrameCount(); frame++ {
//	    d, _ := fig.Animate(frame)
//	    draw(fig.Static(), d)
//	}
package animate

import (
	"fmt"
	"math"

	"github.com/npillmayer/cycloid"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cycloid'
func tracer() tracing.Trace {
	return tracing.Select("cycloid")
}

const (
	bigCircleSamples     = 100 // samples of the fixed unit circle
	homeCircleSamples    = 150 // samples of the rolling circles at rest
	rollingCircleSamples = 100 // samples of the rolling circles per frame
)

// Figure is the animation state: parameters plus static geometry.
// A Figure is not changed by Animate and may be shared between callers.
type Figure struct {
	config    Config
	r         float64          // radius of the rolling circle, 1/ratio
	bigCircle cycloid.Polyline // the fixed unit circle
	innerHome cycloid.Polyline // rolling circle inside, at phi = 0
	outerHome cycloid.Polyline // rolling circle outside, at phi = 0
}

// New validates config and computes the static geometry.
func New(config Config) (*Figure, error) {
	if err := config.Validate(); err != nil {
		tracer().Errorf("cannot create figure: %v", err)
		return nil, err
	}
	r := 1.0 / config.Ratio
	fig := &Figure{
		config:    config,
		r:         r,
		bigCircle: cycloid.CirclePoints(cycloid.Origin, 1, bigCircleSamples),
		innerHome: cycloid.CirclePoints(cycloid.P(1-r, 0), r, homeCircleSamples),
		outerHome: cycloid.CirclePoints(cycloid.P(1+r, 0), r, homeCircleSamples),
	}
	tracer().P("r", r).Infof("new figure, %s", config)
	return fig, nil
}

// Config returns the parameters of the figure.
func (fig *Figure) Config() Config {
	return fig.config
}

// FrameCount is the number of frames of the whole animation, frames·ncycles.
func (fig *Figure) FrameCount() int {
	return fig.config.Frames * fig.config.NCycles
}

// Phase returns the angle the rolling circles' centers have travelled at
// frame, 2π·(frame+1)/frames. The phase is not reduced modulo 2π, it keeps
// growing across cycles.
func (fig *Figure) Phase(frame int) float64 {
	return 2 * math.Pi * float64(frame+1) / float64(fig.config.Frames)
}

// Samples returns the curve parameters traced up to frame: frame+1 evenly
// spaced angles over [0, Phase(frame)].
func (fig *Figure) Samples(frame int) []float64 {
	return cycloid.Linspace(0, fig.Phase(frame), frame+1)
}

// Static returns the drawables which do not change between frames.
func (fig *Figure) Static() []Drawable {
	return []Drawable{
		{Kind: BigCircle, Points: clone(fig.bigCircle)},
	}
}

// Initial returns the picture before the first frame: both rolling circles
// at their home position, no curves traced yet.
func (fig *Figure) Initial() Drawables {
	return Drawables{
		Frame:       -1,
		InnerCircle: clone(fig.innerHome),
		OuterCircle: clone(fig.outerHome),
	}
}

// Animate computes the moving geometry for frame, which must be in
// [0, FrameCount()). Calling it twice with the same frame yields identical
// coordinates.
func (fig *Figure) Animate(frame int) (Drawables, error) {
	if frame < 0 || frame >= fig.FrameCount() {
		return Drawables{}, fmt.Errorf("%w: %d not in [0,%d)", ErrFrameOutOfRange,
			frame, fig.FrameCount())
	}
	phi := fig.Phase(frame)
	phis := fig.Samples(frame)
	d := Drawables{Frame: frame, Phi: phi}
	d.InnerCircle = fig.rollingCircle(cycloid.HypoCenter(fig.r, phi))
	d.Hypocycloid, d.Line1, d.Dot1 = fig.trace(cycloid.Hypocycloid, cycloid.HypoCenter, phis)
	d.OuterCircle = fig.rollingCircle(cycloid.EpiCenter(fig.r, phi))
	d.Epicycloid, d.Line2, d.Dot2 = fig.trace(cycloid.Epicycloid, cycloid.EpiCenter, phis)
	tracer().P("frame", frame).Debugf("phi = %.6f, %d samples, hypo at %s, epi at %s",
		phi, len(phis), d.Hypocycloid.Last(), d.Epicycloid.Last())
	tracer().P("frame", frame).Debugf("connectors %s and %s", d.Line1, d.Line2)
	return d, nil
}

func (fig *Figure) rollingCircle(center cycloid.Pair) cycloid.Polyline {
	return cycloid.CirclePoints(center, fig.r, rollingCircleSamples)
}

// trace evaluates a curve at phis and connects the rolling circle's center
// at the last sample with the curve's end point.
func (fig *Figure) trace(curve, center func(r, t float64) cycloid.Pair, phis []float64) (
	cycloid.Polyline, cycloid.Polyline, cycloid.Polyline) {
	pl := cycloid.Trace(curve, fig.r, phis)
	c := center(fig.r, phis[len(phis)-1])
	return pl, cycloid.Polyline{c, pl.Last()}, cycloid.Polyline{c}
}

func clone(pl cycloid.Polyline) cycloid.Polyline {
	return append(cycloid.Polyline(nil), pl...)
}
