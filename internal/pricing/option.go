// Package pricing values European options on a market model, either by Monte
// Carlo expectation over simulated terminal prices or by the Black-Scholes
// closed form.
package pricing

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"option-pricer/internal/market"
	"option-pricer/internal/model"
)

// Option is the capability set shared by every European contract.
type Option interface {
	Contract() model.OptionContract
	// Payoff maps terminal prices to payoffs elementwise.
	Payoff(prices []float64) []float64
	// PayoffMatrix maps a matrix of prices (e.g. a path matrix) to payoffs.
	PayoffMatrix(prices mat.Matrix) *mat.Dense
	PriceByMonteCarlo(m market.MarketModel, src rand.Source) (Estimate, error)
	PriceByClosedForm(currentTime float64, m *market.GBM) (float64, error)
}

// New returns the Option for c.Kind.
func New(c model.OptionContract) (Option, error) {
	switch c.Kind {
	case model.Call:
		return &CallOption{contract: c}, nil
	case model.Put:
		return &PutOption{contract: c}, nil
	default:
		return nil, fmt.Errorf("%w: unknown option kind %q", model.ErrInvalidParameter, c.Kind)
	}
}

// CallOption pays max(S-K, 0) at maturity.
type CallOption struct {
	contract model.OptionContract
}

func NewCall(strike, maturity float64) *CallOption {
	return &CallOption{contract: model.OptionContract{Strike: strike, Maturity: maturity, Kind: model.Call}}
}

func (o *CallOption) Contract() model.OptionContract { return o.contract }

func (o *CallOption) payoff(s float64) float64 {
	return math.Max(s-o.contract.Strike, 0)
}

func (o *CallOption) Payoff(prices []float64) []float64 {
	return payoffSlice(prices, o.payoff)
}

func (o *CallOption) PayoffMatrix(prices mat.Matrix) *mat.Dense {
	return payoffMatrix(prices, o.payoff)
}

func (o *CallOption) PriceByMonteCarlo(m market.MarketModel, src rand.Source) (Estimate, error) {
	return monteCarlo(o.contract, o.payoff, m, src)
}

func (o *CallOption) PriceByClosedForm(currentTime float64, m *market.GBM) (float64, error) {
	d, err := newTerms(o.contract, currentTime, m)
	if err != nil {
		return 0, err
	}
	return d.spot*cdf(d.d1) - d.strike*d.discount*cdf(d.d2), nil
}

// PutOption pays max(K-S, 0) at maturity.
type PutOption struct {
	contract model.OptionContract
}

func NewPut(strike, maturity float64) *PutOption {
	return &PutOption{contract: model.OptionContract{Strike: strike, Maturity: maturity, Kind: model.Put}}
}

func (o *PutOption) Contract() model.OptionContract { return o.contract }

func (o *PutOption) payoff(s float64) float64 {
	return math.Max(o.contract.Strike-s, 0)
}

func (o *PutOption) Payoff(prices []float64) []float64 {
	return payoffSlice(prices, o.payoff)
}

func (o *PutOption) PayoffMatrix(prices mat.Matrix) *mat.Dense {
	return payoffMatrix(prices, o.payoff)
}

func (o *PutOption) PriceByMonteCarlo(m market.MarketModel, src rand.Source) (Estimate, error) {
	return monteCarlo(o.contract, o.payoff, m, src)
}

func (o *PutOption) PriceByClosedForm(currentTime float64, m *market.GBM) (float64, error) {
	d, err := newTerms(o.contract, currentTime, m)
	if err != nil {
		return 0, err
	}
	return d.strike*d.discount*cdf(-d.d2) - d.spot*cdf(-d.d1), nil
}

func payoffSlice(prices []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(prices))
	for i, s := range prices {
		out[i] = f(s)
	}
	return out
}

func payoffMatrix(prices mat.Matrix, f func(float64) float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, s float64) float64 { return f(s) }, prices)
	return &out
}
