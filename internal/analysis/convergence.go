package analysis

import (
	"fmt"
	"math"

	"option-pricer/internal/brownian"
	"option-pricer/internal/market"
	"option-pricer/internal/model"
	"option-pricer/internal/pricing"
)

// ConvergencePoint is one Monte Carlo run in a convergence study.
type ConvergencePoint struct {
	PathCount  int
	Price      float64
	StdErr     float64
	ClosedForm float64
	AbsError   float64
	// ZScore is (Price - ClosedForm) / StdErr; 0 when StdErr is 0.
	ZScore float64
}

// Convergence prices opt by Monte Carlo once per entry of pathCounts and
// compares each estimate with the closed form. Run i draws from seed+i.
func Convergence(opt pricing.Option, m *market.GBM, pathCounts []int, seed uint64) ([]ConvergencePoint, error) {
	if opt == nil || m == nil {
		return nil, fmt.Errorf("%w: option and model are required", model.ErrInvalidParameter)
	}
	if len(pathCounts) == 0 {
		return nil, fmt.Errorf("%w: no path counts", model.ErrInvalidParameter)
	}
	bs, err := opt.PriceByClosedForm(0, m)
	if err != nil {
		return nil, err
	}

	out := make([]ConvergencePoint, 0, len(pathCounts))
	for i, n := range pathCounts {
		mn, err := m.WithPathCount(n)
		if err != nil {
			return nil, fmt.Errorf("path count %d: %w", n, err)
		}
		est, err := opt.PriceByMonteCarlo(mn, brownian.NewSource(seed+uint64(i)))
		if err != nil {
			return nil, fmt.Errorf("path count %d: %w", n, err)
		}
		p := ConvergencePoint{
			PathCount:  n,
			Price:      est.Price,
			StdErr:     est.StdErr,
			ClosedForm: bs,
			AbsError:   math.Abs(est.Price - bs),
		}
		if est.StdErr > 0 {
			p.ZScore = (est.Price - bs) / est.StdErr
		}
		out = append(out, p)
	}
	return out, nil
}

// GeometricSchedule returns steps path counts start, start*factor, ...
func GeometricSchedule(start, factor, steps int) ([]int, error) {
	if start <= 0 || factor < 2 || steps <= 0 {
		return nil, fmt.Errorf("%w: need start > 0, factor >= 2, steps > 0", model.ErrInvalidParameter)
	}
	out := make([]int, steps)
	n := start
	for i := range out {
		out[i] = n
		if n > math.MaxInt/factor {
			return nil, fmt.Errorf("%w: schedule overflows int", model.ErrInvalidParameter)
		}
		n *= factor
	}
	return out, nil
}
