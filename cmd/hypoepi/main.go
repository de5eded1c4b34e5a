// Command hypoepi animates a hypocycloid and an epicycloid, traced by a
// small circle rolling inside and outside of a fixed unit circle.
//
// By default it renders 5 revolutions of a circle with radius ratio 3.4 in 80
// frames each and writes them to hypo_epi.gif. With -display the animation
// is shown live in the terminal afterwards, repeating until Esc or q is
// pressed.
//
//	hypoepi -ratio 3.25 -frames 800 -ncycles 1 -o hypo.gif
//	hypoepi -o "" -display
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"
	"github.com/npillmayer/cycloid/animate"
	"github.com/npillmayer/cycloid/display"
	"github.com/npillmayer/cycloid/driver"
	"github.com/npillmayer/cycloid/gifexport"
	"github.com/npillmayer/cycloid/render"
	"github.com/npillmayer/schuko/tracing"
)

func main() {
	defaults := animate.DefaultConfig()
	var (
		ratio   = flag.Float64("ratio", defaults.Ratio, "radius ratio of fixed and rolling circle (> 1)")
		frames  = flag.Int("frames", defaults.Frames, "frames per revolution")
		ncycles = flag.Int("ncycles", defaults.NCycles, "number of revolutions")
		output  = flag.String("o", "hypo_epi.gif", "animated GIF to write, empty for none")
		size    = flag.Int("size", 480, "image width and height in pixels")
		live    = flag.Bool("display", false, "show the animation in the terminal")
		level   = flag.String("trace", "error", "trace level: error, info or debug")
	)
	flag.Parse()

	if err := setupTracing(*level); err != nil {
		log.Fatal(err)
	}
	config := animate.Config{Ratio: *ratio, Frames: *frames, NCycles: *ncycles}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, config, *size, *output, *live); err != nil {
		log.Fatalf("hypoepi: %v", err)
	}
}

func run(ctx context.Context, config animate.Config, size int, output string, live bool) error {
	fig, err := animate.New(config)
	if err != nil {
		return err
	}
	background := gg.RGB(1, 1, 1)
	styles := render.DefaultStyles()
	canvas, err := render.NewCanvas(size, size, render.WithStyles(styles), render.WithBackground(background))
	if err != nil {
		return err
	}
	defer canvas.Close()

	if output != "" {
		rec := gifexport.NewRecorder(
			gifexport.WithPalette(gifPalette(styles, background)),
			gifexport.WithDithering(false),
			gifexport.WithFPS(gifexport.DefaultFPS),
		)
		if err := driver.New(fig, canvas).Run(ctx, rec); err != nil {
			return err
		}
		if err := rec.Save(output); err != nil {
			return fmt.Errorf("saving %s: %w", output, err)
		}
		fmt.Printf("wrote %d frames (%s) to %s\n", rec.Len(), fig.Config(), output)
	}
	if !live {
		return nil
	}
	term, err := display.Open()
	if err != nil {
		return err
	}
	defer term.Close()
	drv := driver.New(fig, canvas, driver.Paced(true), driver.WithInterval(driver.DefaultInterval))
	if err := drv.Loop(ctx, driver.DefaultRepeatDelay, term); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// gifPalette holds the background plus shades of every style color, for
// anti-aliased edges.
func gifPalette(styles render.Styles, background gg.RGBA) color.Palette {
	var cols []color.Color
	for _, c := range styles.Palette(background)[1:] {
		cols = append(cols, c.Color())
	}
	return gifexport.BlendPalette(background.Color(), cols, 16)
}

func setupTracing(level string) error {
	var l tracing.TraceLevel
	switch level {
	case "error":
		l = tracing.LevelError
	case "info":
		l = tracing.LevelInfo
	case "debug":
		l = tracing.LevelDebug
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	for _, key := range []string{"cycloid", "graphics"} {
		tracing.Select(key).SetTraceLevel(l)
	}
	return nil
}
