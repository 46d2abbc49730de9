package engine

import (
	"time"

	"option-pricer/internal/model"
	"option-pricer/internal/pricing"
)

// Method selects a pricing estimator.
type Method string

const (
	MethodClosedForm Method = "closed_form"
	MethodMonteCarlo Method = "monte_carlo"
)

// QuoteRow is one priced contract.
// This is the primary artifact for "what did each method say" in a run.
type QuoteRow struct {
	Index int

	Kind     model.OptionKind
	Strike   float64
	Maturity float64

	HasClosedForm bool
	ClosedForm    float64
	Greeks        pricing.Greeks

	HasMonteCarlo bool
	MonteCarlo    float64
	StdErr        float64
	CILow         float64
	CIHigh        float64
	PathCount     int
	Seed          *uint64

	// AbsDiff is |MonteCarlo - ClosedForm| when both ran.
	AbsDiff float64
}

type Result struct {
	Model   model.SimulationConfig
	Rows    []QuoteRow
	Elapsed time.Duration
}
