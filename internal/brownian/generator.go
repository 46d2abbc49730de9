package brownian

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"option-pricer/internal/model"
)

// Generate samples W over grid for n independent paths.
// A scalar grid yields an n x 1 matrix; a sequence of m times yields n x (m+1)
// with column 0 fixed at W(0)=0.
func Generate(n int, grid model.TimeGrid, src rand.Source) (*mat.Dense, error) {
	if grid.IsScalar() {
		v, err := Terminal(n, grid.Scalar(), src)
		if err != nil {
			return nil, err
		}
		return mat.NewDense(n, 1, v.RawVector().Data), nil
	}
	return Paths(n, grid.Times(), src)
}

// Terminal draws n independent samples of W(t) ~ N(0, t).
func Terminal(n int, t float64, src rand.Source) (*mat.VecDense, error) {
	if err := checkArgs(n, src); err != nil {
		return nil, err
	}
	if err := model.At(t).Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	// W(0) is exactly 0; no draw is needed.
	if sd := math.Sqrt(t); sd > 0 {
		rng := rand.New(src)
		for i := range out {
			out[i] = rng.NormFloat64() * sd
		}
	}
	return mat.NewVecDense(n, out), nil
}

// Paths draws n discretised Wiener paths over the strictly increasing positive
// times t1 < ... < tm. Row p is (0, W_p(t1), ..., W_p(tm)); the increment
// W(ti) - W(ti-1) has variance exactly ti - ti-1 and is independent of every
// other increment in every path.
func Paths(n int, times []float64, src rand.Source) (*mat.Dense, error) {
	if err := checkArgs(n, src); err != nil {
		return nil, err
	}
	grid := model.Grid(times...)
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	ts := grid.WithOrigin()
	steps := len(ts) - 1
	cols := steps + 1

	sd := make([]float64, steps)
	for i := range sd {
		sd[i] = math.Sqrt(ts[i+1] - ts[i])
	}

	rng := rand.New(src)
	data := make([]float64, n*cols)
	inc := make([]float64, steps)
	for p := 0; p < n; p++ {
		for i := range inc {
			inc[i] = rng.NormFloat64() * sd[i]
		}
		row := data[p*cols : (p+1)*cols]
		floats.CumSum(row[1:], inc)
	}
	return mat.NewDense(n, cols, data), nil
}

func checkArgs(n int, src rand.Source) error {
	if n <= 0 {
		return fmt.Errorf("%w: path count must be > 0, got %d", model.ErrInvalidParameter, n)
	}
	if src == nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidParameter, errNilSource)
	}
	return nil
}

var errNilSource = errors.New("random source is nil")
