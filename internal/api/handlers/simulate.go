package handlers

import (
	"fmt"
	"math"
	"net/http"

	"option-pricer/internal/analysis"
	"option-pricer/internal/api/models"
	"option-pricer/internal/brownian"
	"option-pricer/internal/market"
	"option-pricer/internal/metrics"
	"option-pricer/internal/model"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/mat"
)

// SimulateHandler handles path simulation requests
type SimulateHandler struct {
	limits Limits
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(limits Limits) *SimulateHandler {
	return &SimulateHandler{limits: limits}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if !bindJSON(c, &req) {
		return
	}

	sim, err := h.limits.simulationConfig(req.Model)
	if err != nil {
		abortWithError(c, err)
		return
	}
	gbm, err := market.NewGBM(sim)
	if err != nil {
		abortWithError(c, err)
		return
	}
	grid, err := requestGrid(req, sim.Horizon)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.limits.checkCells(sim.PathCount, grid.Columns(), req.IncludePaths); err != nil {
		abortWithError(c, err)
		return
	}

	paths, err := gbm.SimulatePaths(grid, brownian.SourceFor(req.Seed))
	if err != nil {
		abortWithError(c, err)
		return
	}
	metrics.AddSimulatedPaths(sim.PathCount)

	c.JSON(http.StatusOK, buildSimulateResponse(gbm, grid.WithOrigin(), paths, req.IncludePaths))
}

func requestGrid(req models.SimulateRequest, horizon float64) (model.TimeGrid, error) {
	var grid model.TimeGrid
	switch {
	case len(req.Times) > 0 && req.Steps > 0:
		return grid, fmt.Errorf("%w: give either times or steps, not both", model.ErrInvalidParameter)
	case len(req.Times) > 0:
		grid = model.Grid(req.Times...)
	case req.Steps > 0:
		var err error
		if grid, err = model.UniformGrid(horizon, req.Steps); err != nil {
			return grid, err
		}
	default:
		return grid, fmt.Errorf("%w: times or steps is required", model.ErrInvalidParameter)
	}
	return grid, grid.Validate()
}

func buildSimulateResponse(gbm *market.GBM, times []float64, paths *mat.Dense, includePaths bool) models.SimulateResponse {
	rows, cols := paths.Dims()
	out := models.SimulateResponse{
		Times:     times,
		PathCount: rows,
		Columns:   make([]models.ColumnSummary, 0, cols),
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, paths)
		s := analysis.Summarize(col)
		out.Columns = append(out.Columns, models.ColumnSummary{
			Time:    times[j],
			Mean:    s.Mean,
			StdDev:  s.StdDev,
			Min:     s.Min,
			Max:     s.Max,
			P05:     s.P05,
			P50:     s.P50,
			P95:     s.P95,
			Forward: gbm.InitialPrice() * math.Exp(gbm.RiskFreeRate()*times[j]),
		})
	}
	if includePaths {
		out.Paths = make([][]float64, rows)
		for i := range out.Paths {
			out.Paths[i] = mat.Row(nil, i, paths)
		}
	}
	return out
}
