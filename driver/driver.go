// Package driver runs an animation: it steps a figure through all of its
// frames, renders each frame and hands the image to a set of sinks, like a
// GIF recorder or a live display.
package driver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/npillmayer/cycloid/animate"
	"github.com/npillmayer/cycloid/display"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cycloid'
func tracer() tracing.Trace {
	return tracing.Select("cycloid")
}

// DefaultInterval is the nominal time between two frames (20 fps).
const DefaultInterval = 50 * time.Millisecond

// DefaultRepeatDelay is the pause between two runs in Loop.
const DefaultRepeatDelay = 2 * time.Second

// Sink receives rendered frames, in order.
type Sink interface {
	Frame(index int, img image.Image) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(index int, img image.Image) error

// Frame calls f(index, img).
func (f SinkFunc) Frame(index int, img image.Image) error {
	return f(index, img)
}

// Quitter is implemented by live sinks which track a quit request of their
// own, outside of the frames they are handed.
type Quitter interface {
	Quit() bool
}

// Renderer turns the geometry of a frame into an image.
type Renderer interface {
	Draw(static []animate.Drawable, d animate.Drawables) (image.Image, error)
}

// Driver sequences the frames of a figure.
type Driver struct {
	fig      *animate.Figure
	renderer Renderer
	interval time.Duration
	paced    bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithInterval sets the time between frames in paced mode.
func WithInterval(d time.Duration) Option {
	return func(drv *Driver) {
		if d > 0 {
			drv.interval = d
		}
	}
}

// Paced makes the driver wait for the frame interval between frames.
// Unpaced drivers run as fast as rendering allows, as wanted for export.
func Paced(on bool) Option {
	return func(drv *Driver) {
		drv.paced = on
	}
}

// New creates a driver for fig, rendering with renderer.
func New(fig *animate.Figure, renderer Renderer, opts ...Option) *Driver {
	drv := &Driver{
		fig:      fig,
		renderer: renderer,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(drv)
	}
	return drv
}

// Run renders frames 0 … FrameCount()-1 and passes each to every sink.
// A sink returning display.ErrQuit stops the run without error; any other
// error aborts the run and is returned. Run checks ctx between frames.
func (drv *Driver) Run(ctx context.Context, sinks ...Sink) error {
	_, err := drv.run(ctx, sinks)
	return err
}

// Loop shows the animation over and over, with the figure's initial picture
// up front and a pause of repeatDelay between runs, until a sink returns
// display.ErrQuit or ctx is done. Loop is meant for live sinks.
func (drv *Driver) Loop(ctx context.Context, repeatDelay time.Duration, sinks ...Sink) error {
	if err := drv.emit(-1, drv.fig.Static(), drv.fig.Initial(), sinks); err != nil {
		if errors.Is(err, display.ErrQuit) {
			return nil
		}
		return err
	}
	for round := 1; ; round++ {
		quit, err := drv.run(ctx, sinks)
		if err != nil || quit {
			return err
		}
		tracer().P("round", round).Debugf("pausing for %s", repeatDelay)
		if quit, err := drv.pause(ctx, repeatDelay, sinks); err != nil || quit {
			return err
		}
	}
}

// pause waits for d, checking every frame interval whether one of the
// sinks has been asked to quit.
func (drv *Driver) pause(ctx context.Context, d time.Duration, sinks []Sink) (bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	poll := time.NewTicker(drv.interval)
	defer poll.Stop()
	for {
		if quitRequested(sinks) {
			tracer().Infof("animation stopped by user during pause")
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
			return false, nil
		case <-poll.C:
		}
	}
}

func quitRequested(sinks []Sink) bool {
	for _, s := range sinks {
		if q, ok := s.(Quitter); ok && q.Quit() {
			return true
		}
	}
	return false
}

func (drv *Driver) run(ctx context.Context, sinks []Sink) (bool, error) {
	var tick <-chan time.Time
	if drv.paced {
		ticker := time.NewTicker(drv.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	n := drv.fig.FrameCount()
	tracer().P("frames", n).Infof("starting animation, paced=%v", drv.paced)
	static := drv.fig.Static()
	for frame := 0; frame < n; frame++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		d, err := drv.fig.Animate(frame)
		if err != nil {
			return false, err
		}
		if err := drv.emit(frame, static, d, sinks); err != nil {
			if errors.Is(err, display.ErrQuit) {
				tracer().P("frame", frame).Infof("animation stopped by user")
				return true, nil
			}
			tracer().P("frame", frame).Errorf("animation aborted: %v", err)
			return false, err
		}
		if tick != nil && frame < n-1 {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-tick:
			}
		}
	}
	tracer().Infof("animation finished")
	return false, nil
}

func (drv *Driver) emit(frame int, static []animate.Drawable, d animate.Drawables, sinks []Sink) error {
	img, err := drv.renderer.Draw(static, d)
	if err != nil {
		return fmt.Errorf("rendering frame %d: %w", frame, err)
	}
	for _, s := range sinks {
		if err := s.Frame(frame, img); err != nil {
			if errors.Is(err, display.ErrQuit) {
				return err
			}
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return nil
}
