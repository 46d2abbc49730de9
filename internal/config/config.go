package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"option-pricer/internal/engine"
	"option-pricer/internal/model"

	"gopkg.in/yaml.v3"
)

// DefaultPathCount is used when model.path_count is omitted.
const DefaultPathCount = 100_000

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Model ModelConfig `yaml:"model"`
	// Optional: load contracts from a separate YAML (a top-level `contracts:` list).
	// Contracts from the file come first, followed by any inline Contracts.
	ContractsFile string           `yaml:"contracts_file"`
	Contracts     []ContractConfig `yaml:"contracts"`
	Run           RunConfig        `yaml:"run"`
}

type ModelConfig struct {
	RiskFreeRate float64 `yaml:"risk_free_rate"`
	Volatility   float64 `yaml:"volatility"`
	InitialPrice float64 `yaml:"initial_price"`
	Horizon      float64 `yaml:"horizon"`
	PathCount    int     `yaml:"path_count"`
}

type ContractConfig struct {
	Kind   string  `yaml:"kind"`
	Strike float64 `yaml:"strike"`
	// Maturity defaults to model.horizon when omitted. An explicit 0 is
	// kept and rejected as an invalid maturity.
	Maturity *float64 `yaml:"maturity"`
}

// Years returns a maturity for ContractConfig.
func Years(t float64) *float64 { return &t }

type RunConfig struct {
	Seed            *uint64  `yaml:"seed"`
	Methods         []string `yaml:"methods"`
	CurrentTime     float64  `yaml:"current_time"`
	ConfidenceLevel float64  `yaml:"confidence_level"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ContractsFile != "" {
		contractsPath := c.ContractsFile
		if !filepath.IsAbs(contractsPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), contractsPath)
			if _, err := os.Stat(cand); err == nil {
				contractsPath = cand
			}
		}
		loaded, err := loadContractsFile(contractsPath)
		if err != nil {
			return nil, err
		}
		c.Contracts = append(loaded, c.Contracts...)
	}
	return &c, nil
}

// ApplyDefaults fills the fields that configs commonly omit.
func (c *Config) ApplyDefaults() {
	if c.Model.PathCount == 0 {
		c.Model.PathCount = DefaultPathCount
	}
	for i := range c.Contracts {
		if c.Contracts[i].Maturity == nil {
			c.Contracts[i].Maturity = Years(c.Model.Horizon)
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Contracts) == 0 {
		return errors.New("at least one contract is required")
	}
	if _, err := c.ToRequest(); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

func (m ModelConfig) ToSimulationConfig() (model.SimulationConfig, error) {
	return model.NewSimulationConfig(m.RiskFreeRate, m.Volatility, m.InitialPrice, m.Horizon, m.PathCount)
}

func (cc ContractConfig) ToContract() (model.OptionContract, error) {
	kind, err := model.ParseOptionKind(cc.Kind)
	if err != nil {
		return model.OptionContract{}, err
	}
	var maturity float64
	if cc.Maturity != nil {
		maturity = *cc.Maturity
	}
	c := model.OptionContract{Strike: cc.Strike, Maturity: maturity, Kind: kind}
	if err := c.Validate(); err != nil {
		return model.OptionContract{}, err
	}
	return c, nil
}

// ToRequest converts a config into an engine request, validating every part.
func (c *Config) ToRequest() (engine.Request, error) {
	sim, err := c.Model.ToSimulationConfig()
	if err != nil {
		return engine.Request{}, fmt.Errorf("model: %w", err)
	}
	contracts := make([]model.OptionContract, 0, len(c.Contracts))
	for i, cc := range c.Contracts {
		oc, err := cc.ToContract()
		if err != nil {
			return engine.Request{}, fmt.Errorf("contracts[%d]: %w", i, err)
		}
		contracts = append(contracts, oc)
	}
	methods := make([]engine.Method, 0, len(c.Run.Methods))
	for _, s := range c.Run.Methods {
		m, err := engine.ParseMethod(s)
		if err != nil {
			return engine.Request{}, fmt.Errorf("run.methods: %w", err)
		}
		methods = append(methods, m)
	}
	if lvl := c.Run.ConfidenceLevel; lvl < 0 || lvl >= 1 {
		return engine.Request{}, fmt.Errorf("%w: run.confidence_level must be in (0,1)", model.ErrInvalidParameter)
	}
	return engine.Request{
		Model:           sim,
		Contracts:       contracts,
		Methods:         methods,
		Seed:            c.Run.Seed,
		CurrentTime:     c.Run.CurrentTime,
		ConfidenceLevel: c.Run.ConfidenceLevel,
	}, nil
}

type contractsFileWrapper struct {
	Contracts []ContractConfig `yaml:"contracts"`
}

func loadContractsFile(path string) ([]ContractConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w contractsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Contracts, nil
}

// MergeModel overlays non-zero fields from override onto base.
// This is used to apply command-line flags on top of a loaded config.
func MergeModel(base, override ModelConfig) ModelConfig {
	out := base
	// Note: a zero rate cannot be expressed as an override; set it in the file instead.
	if override.RiskFreeRate != 0 {
		out.RiskFreeRate = override.RiskFreeRate
	}
	if override.Volatility != 0 {
		out.Volatility = override.Volatility
	}
	if override.InitialPrice != 0 {
		out.InitialPrice = override.InitialPrice
	}
	if override.Horizon != 0 {
		out.Horizon = override.Horizon
	}
	if override.PathCount != 0 {
		out.PathCount = override.PathCount
	}
	return out
}
