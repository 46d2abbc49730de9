package handlers

import (
	"net/http"

	"option-pricer/internal/api/models"
	"option-pricer/internal/cache"
	"option-pricer/internal/engine"
	"option-pricer/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PricingHandler handles pricing requests
type PricingHandler struct {
	engine *engine.Engine
	limits Limits
	cache  *cache.TTLCache[models.PriceResponse]
}

// NewPricingHandler creates a new pricing handler. A nil cache disables caching.
func NewPricingHandler(limits Limits, quotes *cache.TTLCache[models.PriceResponse]) *PricingHandler {
	return &PricingHandler{engine: engine.New(), limits: limits, cache: quotes}
}

// Price handles POST /api/v1/price
func (h *PricingHandler) Price(c *gin.Context) {
	var req models.PriceRequest
	if !bindJSON(c, &req) {
		return
	}

	engReq, err := h.buildRequest(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var key string
	if h.cache != nil && deterministic(engReq) {
		key, _ = cache.Key(req)
		if resp, ok := h.cache.Get(key); ok && key != "" {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	res, err := h.engine.Run(engReq)
	if err != nil {
		abortWithError(c, err)
		return
	}
	logger.Debugf("PricingHandler: priced %d contracts in %v", len(res.Rows), res.Elapsed)

	resp := buildPriceResponse(res)
	if key != "" {
		h.cache.Set(key, resp)
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, resp)
}

// deterministic reports whether req always produces the same quotes.
func deterministic(req engine.Request) bool {
	if req.Seed != nil {
		return true
	}
	if len(req.Methods) == 0 {
		return false
	}
	for _, m := range req.Methods {
		if m != engine.MethodClosedForm {
			return false
		}
	}
	return true
}

func (h *PricingHandler) buildRequest(req models.PriceRequest) (engine.Request, error) {
	sim, err := h.limits.simulationConfig(req.Model)
	if err != nil {
		return engine.Request{}, err
	}
	out := engine.Request{
		Model:           sim,
		Seed:            req.Seed,
		CurrentTime:     req.CurrentTime,
		ConfidenceLevel: req.ConfidenceLevel,
	}
	for _, cp := range req.Contracts {
		oc, err := toContract(cp, sim.Horizon)
		if err != nil {
			return engine.Request{}, err
		}
		out.Contracts = append(out.Contracts, oc)
	}
	for _, s := range req.Methods {
		m, err := engine.ParseMethod(s)
		if err != nil {
			return engine.Request{}, err
		}
		out.Methods = append(out.Methods, m)
	}
	return out, nil
}

func buildPriceResponse(res *engine.Result) models.PriceResponse {
	out := models.PriceResponse{
		Quotes:    make([]models.Quote, 0, len(res.Rows)),
		ElapsedMS: res.Elapsed.Milliseconds(),
	}
	for _, r := range res.Rows {
		q := models.Quote{
			Index:    r.Index,
			Kind:     string(r.Kind),
			Strike:   decimal.NewFromFloat(r.Strike),
			Maturity: r.Maturity,
		}
		if r.HasClosedForm {
			q.ClosedForm = &models.ClosedFormQuote{
				Price: models.Round(r.ClosedForm),
				Greeks: models.Greeks{
					Delta: models.Round(r.Greeks.Delta),
					Gamma: models.Round(r.Greeks.Gamma),
					Vega:  models.Round(r.Greeks.Vega),
					Theta: models.Round(r.Greeks.Theta),
					Rho:   models.Round(r.Greeks.Rho),
				},
			}
		}
		if r.HasMonteCarlo {
			q.MonteCarlo = &models.MonteCarloQuote{
				Price:     models.Round(r.MonteCarlo),
				StdErr:    models.Round(r.StdErr),
				CILow:     models.Round(r.CILow),
				CIHigh:    models.Round(r.CIHigh),
				PathCount: r.PathCount,
				Seed:      r.Seed,
			}
		}
		if r.HasClosedForm && r.HasMonteCarlo {
			d := models.Round(r.AbsDiff)
			q.AbsDiff = &d
		}
		out.Quotes = append(out.Quotes, q)
	}
	return out
}
