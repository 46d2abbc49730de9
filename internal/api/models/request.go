package models

// ModelParams describes the GBM market shared by every contract in a request.
type ModelParams struct {
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility" binding:"required,gt=0"`
	InitialPrice float64 `json:"initial_price" binding:"required,gt=0"`
	Horizon      float64 `json:"horizon" binding:"required,gt=0"`
	PathCount    int     `json:"path_count,omitempty" binding:"omitempty,gt=0"` // default: server default
}

// ContractParams is one European option.
type ContractParams struct {
	Kind     string  `json:"kind" binding:"required"` // "call" or "put"
	Strike   float64 `json:"strike" binding:"required,gt=0"`
	Maturity *float64 `json:"maturity,omitempty"` // default: model horizon; 0 is rejected
}

// PriceRequest represents the request body for POST /api/v1/price
type PriceRequest struct {
	Model     ModelParams      `json:"model" binding:"required"`
	Contracts []ContractParams `json:"contracts" binding:"required,min=1,dive"`
	Methods   []string         `json:"methods,omitempty"` // default: both
	Seed      *uint64          `json:"seed,omitempty"`
	// CurrentTime is accepted for the closed form but does not shorten maturity.
	CurrentTime     float64 `json:"current_time,omitempty"`
	ConfidenceLevel float64 `json:"confidence_level,omitempty" binding:"omitempty,gt=0,lt=1"`
}

// SimulateRequest represents the request body for POST /api/v1/simulate.
// Either Times or Steps must be given; Steps builds a uniform grid over the horizon.
type SimulateRequest struct {
	Model        ModelParams `json:"model" binding:"required"`
	Times        []float64   `json:"times,omitempty" binding:"omitempty,max=1000"`
	Steps        int         `json:"steps,omitempty" binding:"omitempty,gt=0,lte=1000"`
	Seed         *uint64     `json:"seed,omitempty"`
	IncludePaths bool        `json:"include_paths,omitempty"` // default: summaries only
}

// ConvergenceRequest represents the request body for POST /api/v1/convergence
type ConvergenceRequest struct {
	Model    ModelParams    `json:"model" binding:"required"`
	Contract ContractParams `json:"contract" binding:"required"`
	Start    int            `json:"start" binding:"required,gt=0"`
	Factor   int            `json:"factor,omitempty"` // default: 4
	Steps    int            `json:"steps" binding:"required,gt=0,lte=12"`
	Seed     uint64         `json:"seed,omitempty"`
}
