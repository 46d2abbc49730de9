package model

import "errors"

var (
	// ErrInvalidMaturity is returned when an option with maturity <= 0 is priced.
	ErrInvalidMaturity = errors.New("invalid maturity: time to maturity must be > 0")

	// ErrInvalidParameter covers inputs that would otherwise propagate NaN/Inf:
	// non-positive path counts, volatilities, prices or strikes, and malformed time grids.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMaturityMismatch is returned when an option is priced against a model
	// simulated over a different horizon.
	ErrMaturityMismatch = errors.New("option maturity does not match model horizon")
)
