package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"option-pricer/internal/api/models"
	"option-pricer/internal/config"
	"option-pricer/internal/model"

	"github.com/gin-gonic/gin"
)

// Limits bounds the work a single request may ask for.
type Limits struct {
	DefaultPaths int
	MaxPaths     int
	// MaxCells caps paths x grid columns of one simulated matrix.
	MaxCells int
	// MaxReturnedCells caps the matrix size echoed back by include_paths.
	MaxReturnedCells int
}

// DefaultLimits matches the CLI default path count.
var DefaultLimits = Limits{
	DefaultPaths:     config.DefaultPathCount,
	MaxPaths:         2_000_000,
	MaxCells:         20_000_000,
	MaxReturnedCells: 100_000,
}

func (l Limits) simulationConfig(p models.ModelParams) (model.SimulationConfig, error) {
	n := p.PathCount
	if n == 0 {
		n = l.DefaultPaths
	}
	if l.MaxPaths > 0 && n > l.MaxPaths {
		return model.SimulationConfig{}, fmt.Errorf("%w: path_count %d exceeds limit %d", errPathLimit, n, l.MaxPaths)
	}
	return model.NewSimulationConfig(p.RiskFreeRate, p.Volatility, p.InitialPrice, p.Horizon, n)
}

// checkCells rejects a paths x columns matrix over budget.
func (l Limits) checkCells(paths, columns int, returned bool) error {
	cells := paths * columns
	if l.MaxCells > 0 && cells > l.MaxCells {
		return fmt.Errorf("%w: %d paths x %d columns exceeds limit %d", errPathLimit, paths, columns, l.MaxCells)
	}
	if returned && l.MaxReturnedCells > 0 && cells > l.MaxReturnedCells {
		return fmt.Errorf("%w: include_paths with %d cells exceeds limit %d", errPathLimit, cells, l.MaxReturnedCells)
	}
	return nil
}

func toContract(p models.ContractParams, horizon float64) (model.OptionContract, error) {
	kind, err := model.ParseOptionKind(p.Kind)
	if err != nil {
		return model.OptionContract{}, err
	}
	maturity := horizon
	if p.Maturity != nil {
		maturity = *p.Maturity
	}
	c := model.OptionContract{Strike: p.Strike, Maturity: maturity, Kind: kind}
	if err := c.Validate(); err != nil {
		return model.OptionContract{}, err
	}
	return c, nil
}

var errPathLimit = errors.New("path limit exceeded")

// errorStatus maps domain errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errPathLimit):
		return http.StatusRequestEntityTooLarge, "PATH_LIMIT"
	case errors.Is(err, model.ErrInvalidMaturity):
		return http.StatusBadRequest, "INVALID_MATURITY"
	case errors.Is(err, model.ErrMaturityMismatch):
		return http.StatusBadRequest, "MATURITY_MISMATCH"
	case errors.Is(err, model.ErrInvalidParameter):
		return http.StatusBadRequest, "INVALID_PARAMETER"
	default:
		return http.StatusInternalServerError, "PRICING_ERROR"
	}
}

func abortWithError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	writeError(c, status, code, err.Error())
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: msg,
		},
	})
}

// bindJSON binds the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return false
	}
	return true
}
