package handlers

import (
	"fmt"
	"net/http"

	"option-pricer/internal/analysis"
	"option-pricer/internal/api/models"
	"option-pricer/internal/market"
	"option-pricer/internal/pricing"

	"github.com/gin-gonic/gin"
)

// ConvergenceHandler handles Monte Carlo convergence studies
type ConvergenceHandler struct {
	limits Limits
}

// NewConvergenceHandler creates a new convergence handler
func NewConvergenceHandler(limits Limits) *ConvergenceHandler {
	return &ConvergenceHandler{limits: limits}
}

// Run handles POST /api/v1/convergence
func (h *ConvergenceHandler) Run(c *gin.Context) {
	var req models.ConvergenceRequest
	if !bindJSON(c, &req) {
		return
	}
	factor := req.Factor
	if factor == 0 {
		factor = 4
	}

	counts, err := analysis.GeometricSchedule(req.Start, factor, req.Steps)
	if err != nil {
		abortWithError(c, err)
		return
	}
	// The largest run must fit the same budget as a single pricing.
	if last := counts[len(counts)-1]; h.limits.MaxPaths > 0 && last > h.limits.MaxPaths {
		abortWithError(c, fmt.Errorf("%w: schedule reaches %d paths, limit %d", errPathLimit, last, h.limits.MaxPaths))
		return
	}

	req.Model.PathCount = counts[0]
	sim, err := h.limits.simulationConfig(req.Model)
	if err != nil {
		abortWithError(c, err)
		return
	}
	contract, err := toContract(req.Contract, sim.Horizon)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if sim, err = sim.WithHorizon(contract.Maturity); err != nil {
		abortWithError(c, err)
		return
	}
	gbm, err := market.NewGBM(sim)
	if err != nil {
		abortWithError(c, err)
		return
	}
	opt, err := pricing.New(contract)
	if err != nil {
		abortWithError(c, err)
		return
	}

	pts, err := analysis.Convergence(opt, gbm, counts, req.Seed)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildConvergenceResponse(pts))
}

func buildConvergenceResponse(pts []analysis.ConvergencePoint) models.ConvergenceResponse {
	var out models.ConvergenceResponse
	if len(pts) > 0 {
		out.ClosedForm = models.Round(pts[0].ClosedForm)
	}
	for _, p := range pts {
		out.Points = append(out.Points, models.ConvergencePoint{
			PathCount: p.PathCount,
			Price:     models.Round(p.Price),
			StdErr:    models.Round(p.StdErr),
			AbsError:  models.Round(p.AbsError),
			ZScore:    p.ZScore,
		})
	}
	return out
}
