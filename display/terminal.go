// Package display shows rendered frames live in a terminal.
//
// Every terminal cell shows two vertically stacked pixels, using the upper
// half block rune with the upper pixel as foreground and the lower pixel as
// background color. Frames are scaled down to the screen size, keeping the
// aspect ratio.
package display

import (
	"errors"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
)

// tracer writes to trace with key 'graphics'
func tracer() tracing.Trace {
	return tracing.Select("graphics")
}

// ErrQuit is returned from Frame after the user asked to stop the display.
var ErrQuit = errors.New("display closed by user")

const upperHalf = '▀'

// Terminal is a frame sink painting onto a tcell screen.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{} // closed by Close
	pumped chan struct{} // closed when pump returns
	once   sync.Once
	quit   bool
	buf    *image.RGBA // scaled frame, 1 pixel per half cell
}

// Open initializes the user's terminal and returns a Terminal on it.
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminal(screen)
}

// NewTerminal initializes screen and starts listening for its events.
// The caller must call Close to restore the terminal.
func NewTerminal(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()
	term := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
		pumped: make(chan struct{}),
	}
	go term.pump()
	tracer().Infof("terminal display opened")
	return term, nil
}

// pump forwards screen events until the screen is finalized or the
// terminal is closed. Nobody reads events after Close.
func (term *Terminal) pump() {
	defer close(term.pumped)
	for {
		ev := term.screen.PollEvent()
		if ev == nil {
			close(term.events)
			return
		}
		select {
		case term.events <- ev:
		case <-term.done:
			return
		}
	}
}

// Frame shows img. It returns ErrQuit once the user pressed Esc, Ctrl-C or q.
func (term *Terminal) Frame(index int, img image.Image) error {
	if term.drainEvents() {
		return ErrQuit
	}
	w, h := term.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := fit(img.Bounds(), w, 2*h)
	if term.buf == nil || term.buf.Bounds() != image.Rect(0, 0, w, 2*h) {
		term.buf = image.NewRGBA(image.Rect(0, 0, w, 2*h))
	}
	draw.Draw(term.buf, term.buf.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(term.buf, dst, img, img.Bounds(), draw.Src, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(term.buf, x, 2*y)).
				Background(cellColor(term.buf, x, 2*y+1))
			term.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	term.screen.Show()
	tracer().P("frame", index).Debugf("showing frame on %d×%d cells", w, h)
	return nil
}

// Quit reports whether the user asked to stop the display.
func (term *Terminal) Quit() bool {
	return term.drainEvents()
}

// Close restores the terminal. It is safe to call Close more than once.
func (term *Terminal) Close() error {
	term.once.Do(func() {
		close(term.done)
		term.screen.Fini()
		tracer().Infof("terminal display closed")
	})
	return nil
}

func (term *Terminal) drainEvents() bool {
	for !term.quit {
		select {
		case ev, ok := <-term.events:
			if !ok {
				term.quit = true
				break
			}
			term.handleEvent(ev)
		default:
			return false
		}
	}
	return true
}

func (term *Terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			term.quit = true
		}
	case *tcell.EventResize:
		term.screen.Sync()
	}
}

// fit returns the largest rectangle with the aspect ratio of src, centered
// in a w × h area.
func fit(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}
	dw, dh := w, sh*w/sw
	if dh > h {
		dw, dh = sw*h/sh, h
	}
	x0, y0 := (w-dw)/2, (h-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
