package engine

import (
	"fmt"
	"math"
	"time"

	"option-pricer/internal/brownian"
	"option-pricer/internal/logger"
	"option-pricer/internal/market"
	"option-pricer/internal/metrics"
	"option-pricer/internal/model"
	"option-pricer/internal/pricing"
)

const defaultConfidence = 0.95

// Request is a batch of contracts priced against one market.
type Request struct {
	Model     model.SimulationConfig
	Contracts []model.OptionContract

	// Methods defaults to both estimators when empty.
	Methods []Method

	// Seed makes Monte Carlo reproducible. Contract i draws from seed+i so rows
	// are independent of each other and of batch order. Nil means entropy.
	Seed *uint64

	// CurrentTime is forwarded to the closed form.
	CurrentTime float64

	// ConfidenceLevel for the Monte Carlo interval; 0 means 0.95.
	ConfidenceLevel float64
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run prices every contract in order. A contract whose maturity differs from
// the model horizon is priced on a copy of the model re-horizoned to its
// maturity. The first failing contract aborts the run.
func (e *Engine) Run(req Request) (*Result, error) {
	if err := req.Model.Validate(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	if len(req.Contracts) == 0 {
		return nil, fmt.Errorf("%w: no contracts", model.ErrInvalidParameter)
	}
	methods, err := normalizeMethods(req.Methods)
	if err != nil {
		return nil, err
	}
	level := req.ConfidenceLevel
	if level == 0 {
		level = defaultConfidence
	}

	start := time.Now()
	rows := make([]QuoteRow, 0, len(req.Contracts))
	for idx, c := range req.Contracts {
		row, err := e.priceOne(idx, c, req, methods, level)
		if err != nil {
			return nil, fmt.Errorf("contract %d: %w", idx, err)
		}
		rows = append(rows, row)
	}

	res := &Result{
		Model:   req.Model,
		Rows:    rows,
		Elapsed: time.Since(start),
	}
	logger.Debugf("priced %d contracts in %v", len(rows), res.Elapsed)
	return res, nil
}

func (e *Engine) priceOne(idx int, c model.OptionContract, req Request, methods map[Method]bool, level float64) (QuoteRow, error) {
	if err := c.Validate(); err != nil {
		return QuoteRow{}, err
	}
	cfg, err := req.Model.WithHorizon(c.Maturity)
	if err != nil {
		return QuoteRow{}, err
	}
	m, err := market.NewGBM(cfg)
	if err != nil {
		return QuoteRow{}, err
	}
	opt, err := pricing.New(c)
	if err != nil {
		return QuoteRow{}, err
	}

	row := QuoteRow{
		Index:    idx,
		Kind:     c.Kind,
		Strike:   c.Strike,
		Maturity: c.Maturity,
	}

	if methods[MethodClosedForm] {
		t0 := time.Now()
		price, err := opt.PriceByClosedForm(req.CurrentTime, m)
		metrics.ObservePricing(string(MethodClosedForm), string(c.Kind), time.Since(t0), err)
		if err != nil {
			return QuoteRow{}, fmt.Errorf("closed form: %w", err)
		}
		greeks, err := pricing.ClosedFormGreeks(opt, m)
		if err != nil {
			return QuoteRow{}, fmt.Errorf("greeks: %w", err)
		}
		row.HasClosedForm = true
		row.ClosedForm = price
		row.Greeks = greeks
	}

	if methods[MethodMonteCarlo] {
		var seed *uint64
		if req.Seed != nil {
			s := *req.Seed + uint64(idx)
			seed = &s
		}
		t0 := time.Now()
		est, err := opt.PriceByMonteCarlo(m, brownian.SourceFor(seed))
		metrics.ObservePricing(string(MethodMonteCarlo), string(c.Kind), time.Since(t0), err)
		if err != nil {
			return QuoteRow{}, fmt.Errorf("monte carlo: %w", err)
		}
		metrics.AddSimulatedPaths(est.PathCount)
		lo, hi, err := est.ConfidenceInterval(level)
		if err != nil {
			return QuoteRow{}, err
		}
		row.HasMonteCarlo = true
		row.MonteCarlo = est.Price
		row.StdErr = est.StdErr
		row.CILow, row.CIHigh = lo, hi
		row.PathCount = est.PathCount
		row.Seed = seed
	}

	if row.HasClosedForm && row.HasMonteCarlo {
		row.AbsDiff = math.Abs(row.MonteCarlo - row.ClosedForm)
	}
	logger.Debugf("contract %d %s K=%v T=%v closed=%v mc=%v", idx, c.Kind, c.Strike, c.Maturity, row.ClosedForm, row.MonteCarlo)
	return row, nil
}

func normalizeMethods(in []Method) (map[Method]bool, error) {
	out := map[Method]bool{}
	if len(in) == 0 {
		out[MethodClosedForm] = true
		out[MethodMonteCarlo] = true
		return out, nil
	}
	for _, m := range in {
		switch m {
		case MethodClosedForm, MethodMonteCarlo:
			out[m] = true
		default:
			return nil, fmt.Errorf("%w: unknown method %q", model.ErrInvalidParameter, m)
		}
	}
	return out, nil
}

// ParseMethod accepts the canonical names plus the short forms "bs"/"cf" and "mc".
func ParseMethod(s string) (Method, error) {
	switch s {
	case string(MethodClosedForm), "bs", "cf", "closed-form":
		return MethodClosedForm, nil
	case string(MethodMonteCarlo), "mc", "monte-carlo":
		return MethodMonteCarlo, nil
	default:
		return "", fmt.Errorf("%w: unknown method %q", model.ErrInvalidParameter, s)
	}
}
