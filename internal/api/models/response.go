package models

import "github.com/shopspring/decimal"

// PriceScale is the number of decimal places kept in API prices.
const PriceScale = 8

// Round converts x to a decimal with PriceScale places.
func Round(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(PriceScale)
}

// PriceResponse represents the response from POST /api/v1/price
type PriceResponse struct {
	Quotes    []Quote `json:"quotes"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

// Quote is one priced contract.
type Quote struct {
	Index      int              `json:"index"`
	Kind       string           `json:"kind"`
	Strike     decimal.Decimal  `json:"strike"`
	Maturity   float64          `json:"maturity"`
	ClosedForm *ClosedFormQuote `json:"closed_form,omitempty"`
	MonteCarlo *MonteCarloQuote `json:"monte_carlo,omitempty"`
	// AbsDiff is set when both methods ran.
	AbsDiff *decimal.Decimal `json:"abs_diff,omitempty"`
}

type ClosedFormQuote struct {
	Price  decimal.Decimal `json:"price"`
	Greeks Greeks          `json:"greeks"`
}

type Greeks struct {
	Delta decimal.Decimal `json:"delta"`
	Gamma decimal.Decimal `json:"gamma"`
	Vega  decimal.Decimal `json:"vega"`
	Theta decimal.Decimal `json:"theta"`
	Rho   decimal.Decimal `json:"rho"`
}

type MonteCarloQuote struct {
	Price     decimal.Decimal `json:"price"`
	StdErr    decimal.Decimal `json:"std_err"`
	CILow     decimal.Decimal `json:"ci_low"`
	CIHigh    decimal.Decimal `json:"ci_high"`
	PathCount int             `json:"path_count"`
	Seed      *uint64         `json:"seed,omitempty"`
}

// SimulateResponse represents the response from POST /api/v1/simulate
type SimulateResponse struct {
	Times     []float64       `json:"times"`
	PathCount int             `json:"path_count"`
	Columns   []ColumnSummary `json:"columns"`
	Paths     [][]float64     `json:"paths,omitempty"`
}

// ColumnSummary describes the simulated prices at one grid time.
type ColumnSummary struct {
	Time   float64 `json:"time"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P05    float64 `json:"p05"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	// Forward is S0*exp(r*t), the risk-neutral expectation of Mean.
	Forward float64 `json:"forward"`
}

// ConvergenceResponse represents the response from POST /api/v1/convergence
type ConvergenceResponse struct {
	ClosedForm decimal.Decimal    `json:"closed_form"`
	Points     []ConvergencePoint `json:"points"`
}

type ConvergencePoint struct {
	PathCount int             `json:"path_count"`
	Price     decimal.Decimal `json:"price"`
	StdErr    decimal.Decimal `json:"std_err"`
	AbsError  decimal.Decimal `json:"abs_error"`
	ZScore    float64         `json:"z_score"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
