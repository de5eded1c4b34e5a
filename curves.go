package cycloid

import (
	"fmt"
	"math"
)

// Polyline is an ordered sequence of points, drawn by connecting
// consecutive points with straight lines.
type Polyline []Pair

// N returns the number of points in pl.
func (pl Polyline) N() int {
	return len(pl)
}

// Last returns the final point of pl, or Origin for an empty polyline.
func (pl Polyline) Last() Pair {
	if len(pl) == 0 {
		return Origin
	}
	return pl[len(pl)-1]
}

// String returns the knots of pl in a MetaPost-like notation, joined by "--".
func (pl Polyline) String() string {
	var s string
	for i, p := range pl {
		if i > 0 {
			s += " -- "
		}
		s += fmt.Sprintf("(%.4g,%.4g)", round(p.X()), round(p.Y()))
	}
	return s
}

func round(x float64) float64 {
	return Zap(math.Round(x*10000.0) / 10000.0)
}

// Linspace returns n evenly spaced values over the closed interval [start, stop].
// For n = 1 the result is [start]; for n ≤ 0 it is empty.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	v := make([]float64, n)
	if n == 1 {
		v[0] = start
		return v
	}
	step := (stop - start) / float64(n-1)
	for i := range v {
		v[i] = start + float64(i)*step
	}
	v[n-1] = stop
	return v
}

// CirclePoints samples a circle of radius r around center with n points
// over [0,2π], the first and last point coinciding.
func CirclePoints(center Pair, r float64, n int) Polyline {
	if n < 2 {
		tracer().Debugf("circle around %s sampled with %d point(s)", center, n)
	}
	pl := make(Polyline, 0, n)
	for _, theta := range Linspace(0, 2*math.Pi, n) {
		pl = append(pl, Polar(r, theta).Shifted(center))
	}
	return pl
}

// === Rolling circles =======================================================

// HypoCenter is the center of a circle of radius r rolling inside the unit
// circle, after its center has travelled the angle t.
func HypoCenter(r, t float64) Pair {
	return P(1-r, 0).Rotated(t)
}

// EpiCenter is the center of a circle of radius r rolling outside the unit
// circle, after its center has travelled the angle t.
func EpiCenter(r, t float64) Pair {
	return P(1+r, 0).Rotated(t)
}

// Hypocycloid evaluates
//
//	x(t) = (1−r)⋅cos t + r⋅cos((1−r)/r⋅t)
//	y(t) = (1−r)⋅sin t − r⋅sin((1−r)/r⋅t)
func Hypocycloid(r, t float64) Pair {
	k := (1 - r) / r
	return P((1-r)*math.Cos(t)+r*math.Cos(k*t), (1-r)*math.Sin(t)-r*math.Sin(k*t))
}

// Epicycloid evaluates
//
//	x(t) = (1+r)⋅cos t − r⋅cos((1+r)/r⋅t)
//	y(t) = (1+r)⋅sin t − r⋅sin((1+r)/r⋅t)
func Epicycloid(r, t float64) Pair {
	k := (1 + r) / r
	return P((1+r)*math.Cos(t)-r*math.Cos(k*t), (1+r)*math.Sin(t)-r*math.Sin(k*t))
}

// Trace evaluates curve f at every angle of ts.
func Trace(f func(r, t float64) Pair, r float64, ts []float64) Polyline {
	pl := make(Polyline, len(ts))
	for i, t := range ts {
		pl[i] = f(r, t)
	}
	return pl
}
