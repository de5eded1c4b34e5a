package animate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRatio indicates a radius ratio which does not place a small
	// circle of radius 1/ratio strictly inside the unit circle.
	ErrInvalidRatio = errors.New("radius ratio must be a finite number > 1")
	// ErrInvalidFrames indicates a non-positive frame count per revolution.
	ErrInvalidFrames = errors.New("frames per revolution must be > 0")
	// ErrInvalidCycles indicates a non-positive number of revolutions.
	ErrInvalidCycles = errors.New("number of cycles must be > 0")
	// ErrTooManyFrames indicates a total frame count frames·ncycles which
	// does not fit into an int.
	ErrTooManyFrames = errors.New("total number of frames overflows")
	// ErrFrameOutOfRange indicates a frame index outside [0, frames·ncycles).
	ErrFrameOutOfRange = errors.New("frame index out of range")
)

// Config holds the construction-time parameters of an animation.
type Config struct {
	Ratio   float64 // radius of the fixed circle / radius of the rolling circle
	Frames  int     // frames per full revolution of the phase
	NCycles int     // number of full revolutions to animate
}

// DefaultConfig returns the parameters of the stock hypo/epi animation.
func DefaultConfig() Config {
	return Config{
		Ratio:   3.4,
		Frames:  80,
		NCycles: 5,
	}
}

// Validate checks the parameters, returning one of ErrInvalidRatio,
// ErrInvalidFrames, ErrInvalidCycles or ErrTooManyFrames (wrapped) for
// unusable values.
func (c Config) Validate() error {
	if math.IsNaN(c.Ratio) || math.IsInf(c.Ratio, 0) || c.Ratio <= 1 {
		return fmt.Errorf("%w, have %g", ErrInvalidRatio, c.Ratio)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w, have %d", ErrInvalidFrames, c.Frames)
	}
	if c.NCycles <= 0 {
		return fmt.Errorf("%w, have %d", ErrInvalidCycles, c.NCycles)
	}
	if c.NCycles > math.MaxInt/c.Frames {
		return fmt.Errorf("%w, have %d·%d", ErrTooManyFrames, c.Frames, c.NCycles)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("ratio=%g frames=%d ncycles=%d", c.Ratio, c.Frames, c.NCycles)
}
