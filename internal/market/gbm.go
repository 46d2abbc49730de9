// Package market maps Brownian paths onto simulated risk-neutral asset prices.
package market

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"option-pricer/internal/brownian"
	"option-pricer/internal/model"
)

// MarketModel is anything that can simulate risk-neutral prices for the pricer.
type MarketModel interface {
	// SimulatePaths returns PathCount() rows of prices over grid.
	SimulatePaths(grid model.TimeGrid, src rand.Source) (*mat.Dense, error)
	// Terminal returns PathCount() prices at a single time t.
	Terminal(t float64, src rand.Source) (*mat.VecDense, error)
	RiskFreeRate() float64
	Horizon() float64
	PathCount() int
}

// GBM is the Black-Scholes model: S(t) = S0 * exp((r - sigma^2/2) t + sigma W(t)).
type GBM struct {
	cfg model.SimulationConfig
}

func NewGBM(cfg model.SimulationConfig) (*GBM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GBM{cfg: cfg}, nil
}

// Config returns a copy of the model's configuration.
func (g *GBM) Config() model.SimulationConfig { return g.cfg }

func (g *GBM) RiskFreeRate() float64 { return g.cfg.RiskFreeRate }
func (g *GBM) Volatility() float64   { return g.cfg.Volatility }
func (g *GBM) InitialPrice() float64 { return g.cfg.InitialPrice }
func (g *GBM) Horizon() float64      { return g.cfg.Horizon }
func (g *GBM) PathCount() int        { return g.cfg.PathCount }

// WithPathCount returns a new model with the same market and n paths.
func (g *GBM) WithPathCount(n int) (*GBM, error) {
	cfg, err := g.cfg.WithPathCount(n)
	if err != nil {
		return nil, err
	}
	return &GBM{cfg: cfg}, nil
}

func (g *GBM) Terminal(t float64, src rand.Source) (*mat.VecDense, error) {
	w, err := brownian.Terminal(g.cfg.PathCount, t, src)
	if err != nil {
		return nil, err
	}
	data := w.RawVector().Data
	for i, wi := range data {
		data[i] = g.price(t, wi)
	}
	return w, nil
}

// SimulatePaths prices every grid point in place of the Brownian sample.
// For a sequence grid column 0 is t=0 and equals S0 exactly.
func (g *GBM) SimulatePaths(grid model.TimeGrid, src rand.Source) (*mat.Dense, error) {
	w, err := brownian.Generate(g.cfg.PathCount, grid, src)
	if err != nil {
		return nil, err
	}
	ts := grid.WithOrigin()
	w.Apply(func(_, j int, wij float64) float64 {
		return g.price(ts[j], wij)
	}, w)
	return w, nil
}

func (g *GBM) price(t, w float64) float64 {
	if t == 0 {
		return g.cfg.InitialPrice
	}
	return g.cfg.InitialPrice * math.Exp(g.cfg.Drift()*t+g.cfg.Volatility*w)
}
