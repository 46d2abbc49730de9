package model

import (
	"fmt"
	"math"
)

// OptionContract is a European option: the right to buy (Call) or sell (Put)
// at Strike, exercisable only at Maturity (years from now).
type OptionContract struct {
	Strike   float64
	Maturity float64
	Kind     OptionKind
}

// Validate checks maturity first so that T <= 0 always reports ErrInvalidMaturity.
func (c OptionContract) Validate() error {
	if math.IsNaN(c.Maturity) || c.Maturity <= 0 {
		return fmt.Errorf("%w: got T=%v", ErrInvalidMaturity, c.Maturity)
	}
	if math.IsInf(c.Maturity, 1) {
		return fmt.Errorf("%w: Maturity must be finite", ErrInvalidParameter)
	}
	if !finite(c.Strike) || c.Strike <= 0 {
		return fmt.Errorf("%w: Strike must be > 0", ErrInvalidParameter)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: unknown option kind %q", ErrInvalidParameter, c.Kind)
	}
	return nil
}

// CheckHorizon reports ErrMaturityMismatch when the contract cannot be priced
// on paths simulated out to horizon.
func (c OptionContract) CheckHorizon(horizon float64) error {
	if c.Maturity != horizon {
		return fmt.Errorf("%w: maturity %v, horizon %v", ErrMaturityMismatch, c.Maturity, horizon)
	}
	return nil
}
