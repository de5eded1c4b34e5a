package animate

import "github.com/npillmayer/cycloid"

// Kind identifies a drawable of the figure, so renderers can style it.
type Kind int

// Kinds of drawables. The moving ones are listed in the order Drawables.All
// returns them.
const (
	BigCircle Kind = iota
	InnerCircle
	Hypocycloid
	OuterCircle
	Epicycloid
	Line1
	Dot1
	Line2
	Dot2
)

var kindNames = [...]string{
	"big-circle", "inner-circle", "hypocycloid", "outer-circle", "epicycloid",
	"line1", "dot1", "line2", "dot2",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsMarker is true for drawables rendered as single dots.
func (k Kind) IsMarker() bool {
	return k == Dot1 || k == Dot2
}

// Drawable is a polyline (or, for markers, a single point) tagged with its kind.
type Drawable struct {
	Kind   Kind
	Points cycloid.Polyline
}

// Drawables is the snapshot of everything which moves, for one frame.
// Each snapshot owns its coordinate buffers.
type Drawables struct {
	Frame       int     // frame index, -1 for the initial picture
	Phi         float64 // phase at Frame
	InnerCircle cycloid.Polyline
	Hypocycloid cycloid.Polyline
	OuterCircle cycloid.Polyline
	Epicycloid  cycloid.Polyline
	Line1, Dot1 cycloid.Polyline // connector and center dot of the inner circle
	Line2, Dot2 cycloid.Polyline // connector and center dot of the outer circle
}

// All returns the eight moving drawables. Empty ones are included.
func (d Drawables) All() []Drawable {
	return []Drawable{
		{InnerCircle, d.InnerCircle},
		{Hypocycloid, d.Hypocycloid},
		{OuterCircle, d.OuterCircle},
		{Epicycloid, d.Epicycloid},
		{Line1, d.Line1},
		{Dot1, d.Dot1},
		{Line2, d.Line2},
		{Dot2, d.Dot2},
	}
}
