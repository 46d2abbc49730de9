package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"option-pricer/internal/market"
	"option-pricer/internal/model"
)

// terms holds the pieces shared by the Black-Scholes price and Greeks.
type terms struct {
	spot, strike, rate, vol float64
	maturity, sqrtT         float64
	discount                float64 // exp(-rT)
	d1, d2                  float64
}

// newTerms computes d1 and d2 for c on m.
//
// currentTime is validated but does not shorten the time to maturity: the
// contract's full Maturity is treated as remaining, matching PriceByMonteCarlo,
// which always simulates from t=0 to Maturity.
func newTerms(c model.OptionContract, currentTime float64, m *market.GBM) (terms, error) {
	if err := c.Validate(); err != nil {
		return terms{}, err
	}
	if m == nil {
		return terms{}, fmt.Errorf("%w: market model is nil", model.ErrInvalidParameter)
	}
	if err := c.CheckHorizon(m.Horizon()); err != nil {
		return terms{}, err
	}
	if math.IsNaN(currentTime) || math.IsInf(currentTime, 0) || currentTime < 0 {
		return terms{}, fmt.Errorf("%w: current time must be finite and >= 0, got %v", model.ErrInvalidParameter, currentTime)
	}

	T := c.Maturity
	s, k, r, sig := m.InitialPrice(), c.Strike, m.RiskFreeRate(), m.Volatility()
	sqrtT := math.Sqrt(T)
	d1 := (math.Log(s/k) + (r+0.5*sig*sig)*T) / (sig * sqrtT)
	return terms{
		spot:     s,
		strike:   k,
		rate:     r,
		vol:      sig,
		maturity: T,
		sqrtT:    sqrtT,
		discount: math.Exp(-r * T),
		d1:       d1,
		d2:       d1 - sig*sqrtT,
	}, nil
}

func cdf(x float64) float64 { return distuv.UnitNormal.CDF(x) }
func pdf(x float64) float64 { return distuv.UnitNormal.Prob(x) }

// Greeks are the closed-form sensitivities of a Black-Scholes price.
// Vega and Rho are per unit (1.00 = 100%) change; Theta is per year.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
	Rho   float64
}

// ClosedFormGreeks returns the Black-Scholes Greeks of o on m.
func ClosedFormGreeks(o Option, m *market.GBM) (Greeks, error) {
	if o == nil {
		return Greeks{}, fmt.Errorf("%w: option is nil", model.ErrInvalidParameter)
	}
	c := o.Contract()
	d, err := newTerms(c, 0, m)
	if err != nil {
		return Greeks{}, err
	}

	g := Greeks{
		Gamma: pdf(d.d1) / (d.spot * d.vol * d.sqrtT),
		Vega:  d.spot * pdf(d.d1) * d.sqrtT,
	}
	decay := -d.spot * pdf(d.d1) * d.vol / (2 * d.sqrtT)
	switch c.Kind {
	case model.Call:
		g.Delta = cdf(d.d1)
		g.Theta = decay - d.rate*d.strike*d.discount*cdf(d.d2)
		g.Rho = d.strike * d.maturity * d.discount * cdf(d.d2)
	case model.Put:
		g.Delta = cdf(d.d1) - 1
		g.Theta = decay + d.rate*d.strike*d.discount*cdf(-d.d2)
		g.Rho = -d.strike * d.maturity * d.discount * cdf(-d.d2)
	}
	return g, nil
}

// ParityGap returns C - P - (S0 - K exp(-rT)) for the closed-form prices of a
// call and put sharing strike and maturity. It is zero up to rounding.
func ParityGap(strike, maturity float64, m *market.GBM) (float64, error) {
	call, err := NewCall(strike, maturity).PriceByClosedForm(0, m)
	if err != nil {
		return 0, err
	}
	put, err := NewPut(strike, maturity).PriceByClosedForm(0, m)
	if err != nil {
		return 0, err
	}
	return call - put - (m.InitialPrice() - strike*math.Exp(-m.RiskFreeRate()*maturity)), nil
}
