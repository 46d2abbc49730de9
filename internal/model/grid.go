package model

import (
	"fmt"
	"math"
)

// TimeGrid is the set of times a path is sampled at.
//
// It is either a single scalar time t >= 0 (At) or a strictly increasing
// sequence of positive times (Grid). A sequence is always implicitly
// prefixed with t=0, so a grid of m times yields m+1 path columns.
type TimeGrid struct {
	times  []float64
	scalar bool
}

func At(t float64) TimeGrid {
	return TimeGrid{times: []float64{t}, scalar: true}
}

func Grid(times ...float64) TimeGrid {
	cp := make([]float64, len(times))
	copy(cp, times)
	return TimeGrid{times: cp}
}

// UniformGrid splits (0, horizon] into steps equal intervals.
func UniformGrid(horizon float64, steps int) (TimeGrid, error) {
	if steps <= 0 {
		return TimeGrid{}, fmt.Errorf("%w: steps must be > 0", ErrInvalidParameter)
	}
	if !finite(horizon) || horizon <= 0 {
		return TimeGrid{}, fmt.Errorf("%w: horizon must be > 0", ErrInvalidParameter)
	}
	times := make([]float64, steps)
	for i := range times {
		times[i] = horizon * float64(i+1) / float64(steps)
	}
	// Avoid accumulating rounding error in the final point.
	times[steps-1] = horizon
	return TimeGrid{times: times}, nil
}

func (g TimeGrid) IsScalar() bool { return g.scalar }

// Scalar returns the single time of a scalar grid, or the last time of a sequence.
func (g TimeGrid) Scalar() float64 {
	if len(g.times) == 0 {
		return 0
	}
	return g.times[len(g.times)-1]
}

// Times returns a copy of the requested times, without the implicit origin.
func (g TimeGrid) Times() []float64 {
	cp := make([]float64, len(g.times))
	copy(cp, g.times)
	return cp
}

// WithOrigin returns the sequence times prefixed with 0. For a scalar grid it
// returns just the scalar.
func (g TimeGrid) WithOrigin() []float64 {
	if g.scalar {
		return g.Times()
	}
	out := make([]float64, 0, len(g.times)+1)
	out = append(out, 0)
	return append(out, g.times...)
}

// Columns is the number of columns a path matrix over g has.
func (g TimeGrid) Columns() int {
	if g.scalar {
		return 1
	}
	return len(g.times) + 1
}

func (g TimeGrid) Validate() error {
	if g.scalar {
		t := g.Scalar()
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
			return fmt.Errorf("%w: time must be finite and >= 0, got %v", ErrInvalidParameter, t)
		}
		return nil
	}
	if len(g.times) == 0 {
		return fmt.Errorf("%w: time grid is empty", ErrInvalidParameter)
	}
	prev := 0.0
	for i, t := range g.times {
		if !finite(t) {
			return fmt.Errorf("%w: time[%d] is not finite", ErrInvalidParameter, i)
		}
		if t <= prev {
			return fmt.Errorf("%w: times must be positive and strictly increasing (time[%d]=%v)", ErrInvalidParameter, i, t)
		}
		prev = t
	}
	return nil
}
