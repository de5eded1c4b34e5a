// Package gifexport collects rendered frames and writes them as a looping
// animated GIF.
//
// Frames are converted to paletted images as they arrive, so a Recorder
// holds one indexed image per frame. Encoding happens once, after the last
// frame has been recorded.
package gifexport

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// DefaultFPS is the frame rate of exported animations.
const DefaultFPS = 20

// ErrNoFrames indicates an attempt to encode an empty animation.
var ErrNoFrames = errors.New("animation has no frames")

// Recorder accumulates frames for an animated GIF.
type Recorder struct {
	palette color.Palette
	delay   int // per frame, in 100ths of a second
	dither  bool
	frames  []*image.Paletted
	delays  []int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithPalette sets the color palette of the GIF. At most 256 colors are used.
func WithPalette(p color.Palette) Option {
	return func(rec *Recorder) {
		if len(p) > 256 {
			p = p[:256]
		}
		rec.palette = p
	}
}

// WithFPS sets the frame rate. GIF delays have a resolution of 10ms.
func WithFPS(fps int) Option {
	return func(rec *Recorder) {
		if fps > 0 {
			rec.delay = int((time.Second / time.Duration(fps)) / (10 * time.Millisecond))
		}
	}
}

// WithDithering switches Floyd-Steinberg error diffusion on or off.
func WithDithering(on bool) Option {
	return func(rec *Recorder) {
		rec.dither = on
	}
}

// NewRecorder creates an empty recorder, by default with the Plan9 palette,
// dithering and DefaultFPS.
func NewRecorder(opts ...Option) *Recorder {
	rec := &Recorder{
		palette: palette.Plan9,
		dither:  true,
	}
	WithFPS(DefaultFPS)(rec)
	for _, opt := range opts {
		opt(rec)
	}
	return rec
}

// Frame converts img to a paletted image and appends it to the animation.
// Frames are stored in call order; index is used for tracing only.
func (rec *Recorder) Frame(index int, img image.Image) error {
	b := img.Bounds()
	pimg := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), rec.palette)
	if rec.dither {
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), img, b.Min)
	} else {
		draw.Draw(pimg, pimg.Bounds(), img, b.Min, draw.Src)
	}
	rec.frames = append(rec.frames, pimg)
	rec.delays = append(rec.delays, rec.delay)
	tracer().P("frame", index).Debugf("recorded %d×%d frame", b.Dx(), b.Dy())
	return nil
}

// Len returns the number of recorded frames.
func (rec *Recorder) Len() int {
	return len(rec.frames)
}

// Encode writes the animation to w, looping forever.
func (rec *Recorder) Encode(w io.Writer) error {
	if len(rec.frames) == 0 {
		return ErrNoFrames
	}
	anim := &gif.GIF{
		Image:     rec.frames,
		Delay:     rec.delays,
		LoopCount: 0,
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	return nil
}

// Save writes the animation to the file at path, replacing an existing file.
func (rec *Recorder) Save(path string) (err error) {
	if len(rec.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = rec.Encode(f); err != nil {
		return err
	}
	tracer().P("file", path).Infof("saved %d frames", len(rec.frames))
	return nil
}

// BlendPalette builds a palette with background first, followed for every
// color of cols by steps shades fading from background to the color. The
// shades cover anti-aliased edges.
func BlendPalette(background color.Color, cols []color.Color, steps int) color.Palette {
	if steps < 1 {
		steps = 1
	}
	pal := color.Palette{background}
	br, bg, bb, _ := background.RGBA()
	for _, c := range cols {
		cr, cg, cb, _ := c.RGBA()
		for i := 1; i <= steps; i++ {
			if len(pal) == 256 {
				return pal
			}
			pal = append(pal, color.RGBA{
				R: mix(br, cr, i, steps),
				G: mix(bg, cg, i, steps),
				B: mix(bb, cb, i, steps),
				A: 0xff,
			})
		}
	}
	return pal
}

func mix(from, to uint32, i, steps int) uint8 {
	f, t := float64(from>>8), float64(to>>8)
	return uint8(f + (t-f)*float64(i)/float64(steps) + 0.5)
}
