package model

import (
	"fmt"
	"math"
)

// SimulationConfig defines the Black-Scholes market and the Monte Carlo sample size.
// Units:
// - RiskFreeRate: annual, continuously compounded
// - Volatility: annual, as a decimal (0.2 = 20%)
// - InitialPrice: spot at t=0
// - Horizon: years
// - PathCount: number of independent simulated paths
//
// A SimulationConfig is a value; nothing in this module mutates one after construction.
type SimulationConfig struct {
	RiskFreeRate float64
	Volatility   float64
	InitialPrice float64
	Horizon      float64
	PathCount    int
}

func NewSimulationConfig(r, sigma, s0, horizon float64, pathCount int) (SimulationConfig, error) {
	c := SimulationConfig{
		RiskFreeRate: r,
		Volatility:   sigma,
		InitialPrice: s0,
		Horizon:      horizon,
		PathCount:    pathCount,
	}
	if err := c.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return c, nil
}

func (c SimulationConfig) Validate() error {
	if !finite(c.RiskFreeRate) {
		return fmt.Errorf("%w: RiskFreeRate must be finite", ErrInvalidParameter)
	}
	if !finite(c.Volatility) || c.Volatility <= 0 {
		return fmt.Errorf("%w: Volatility must be > 0", ErrInvalidParameter)
	}
	if !finite(c.InitialPrice) || c.InitialPrice <= 0 {
		return fmt.Errorf("%w: InitialPrice must be > 0", ErrInvalidParameter)
	}
	if !finite(c.Horizon) || c.Horizon <= 0 {
		return fmt.Errorf("%w: Horizon must be > 0", ErrInvalidParameter)
	}
	if c.PathCount <= 0 {
		return fmt.Errorf("%w: PathCount must be > 0", ErrInvalidParameter)
	}
	return nil
}

// WithPathCount returns a copy of c sized for n paths.
func (c SimulationConfig) WithPathCount(n int) (SimulationConfig, error) {
	out := c
	out.PathCount = n
	if err := out.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return out, nil
}

// Drift is the risk-neutral log drift r - sigma^2/2.
func (c SimulationConfig) Drift() float64 {
	return c.RiskFreeRate - 0.5*c.Volatility*c.Volatility
}

// DiscountFactor is exp(-r*t).
func (c SimulationConfig) DiscountFactor(t float64) float64 {
	return math.Exp(-c.RiskFreeRate * t)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// WithHorizon returns a copy of c simulated out to horizon.
func (c SimulationConfig) WithHorizon(horizon float64) (SimulationConfig, error) {
	out := c
	out.Horizon = horizon
	if err := out.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return out, nil
}
