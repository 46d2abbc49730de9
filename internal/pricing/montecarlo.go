package pricing

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"option-pricer/internal/market"
	"option-pricer/internal/model"
)

// Estimate is a Monte Carlo price together with the sample it came from.
type Estimate struct {
	// Price is exp(-rT) * mean(Payoffs).
	Price float64
	// StdErr is exp(-rT) * std(Payoffs) / sqrt(n). It is 0 for a single path,
	// where the sample deviation is undefined.
	StdErr    float64
	PathCount int
	// Discount is the factor exp(-rT) applied to the sample mean.
	Discount float64
	// Payoffs holds the raw, undiscounted payoff of every path.
	Payoffs []float64
}

// ConfidenceInterval returns the two-sided normal interval at level (e.g. 0.95).
func (e Estimate) ConfidenceInterval(level float64) (lo, hi float64, err error) {
	if math.IsNaN(level) || level <= 0 || level >= 1 {
		return 0, 0, fmt.Errorf("%w: confidence level must be in (0,1), got %v", model.ErrInvalidParameter, level)
	}
	z := distuv.UnitNormal.Quantile(0.5 + level/2)
	return e.Price - z*e.StdErr, e.Price + z*e.StdErr, nil
}

func monteCarlo(c model.OptionContract, payoff func(float64) float64, m market.MarketModel, src rand.Source) (Estimate, error) {
	if err := c.Validate(); err != nil {
		return Estimate{}, err
	}
	if m == nil {
		return Estimate{}, fmt.Errorf("%w: market model is nil", model.ErrInvalidParameter)
	}
	if err := c.CheckHorizon(m.Horizon()); err != nil {
		return Estimate{}, err
	}

	st, err := m.Terminal(c.Maturity, src)
	if err != nil {
		return Estimate{}, fmt.Errorf("simulate terminal prices: %w", err)
	}

	// The terminal price buffer is owned by this call; reuse it for payoffs.
	payoffs := st.RawVector().Data
	for i, s := range payoffs {
		payoffs[i] = payoff(s)
	}

	n := len(payoffs)
	disc := math.Exp(-m.RiskFreeRate() * c.Maturity)
	est := Estimate{
		PathCount: n,
		Discount:  disc,
		Payoffs:   payoffs,
	}
	if n > 1 {
		mean, sd := stat.MeanStdDev(payoffs, nil)
		est.Price = disc * mean
		est.StdErr = disc * sd / math.Sqrt(float64(n))
	} else {
		est.Price = disc * payoffs[0]
	}
	return est, nil
}
