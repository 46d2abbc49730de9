package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"option-pricer/internal/engine"
	"option-pricer/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const reference = `
model:
  risk_free_rate: 0.02
  volatility: 0.2
  initial_price: 1
  horizon: 5
contracts:
  - kind: call
    strike: 1
  - kind: put
    strike: 1
    maturity: 2
run:
  seed: 7
  methods: [bs, mc]
`

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", reference)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Model.PathCount != DefaultPathCount {
		t.Fatalf("path_count = %d", c.Model.PathCount)
	}
	if *c.Contracts[0].Maturity != 5 || *c.Contracts[1].Maturity != 2 {
		t.Fatalf("maturities = %v, %v", *c.Contracts[0].Maturity, *c.Contracts[1].Maturity)
	}

	req, err := c.ToRequest()
	if err != nil {
		t.Fatalf("to request: %v", err)
	}
	if req.Seed == nil || *req.Seed != 7 {
		t.Fatalf("seed = %v", req.Seed)
	}
	if len(req.Methods) != 2 || req.Methods[0] != engine.MethodClosedForm || req.Methods[1] != engine.MethodMonteCarlo {
		t.Fatalf("methods = %v", req.Methods)
	}
	if req.Contracts[1].Kind != model.Put {
		t.Fatalf("kind = %v", req.Contracts[1].Kind)
	}
}

func TestLoad_ContractsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "book.yaml", `
contracts:
  - kind: put
    strike: 0.9
  - kind: call
    strike: 1.1
`)
	path := writeFile(t, dir, "run.yaml", `
model:
  risk_free_rate: 0.01
  volatility: 0.3
  initial_price: 1
  horizon: 1
  path_count: 500
contracts_file: book.yaml
contracts:
  - kind: call
    strike: 1
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Contracts) != 3 {
		t.Fatalf("contracts = %d", len(c.Contracts))
	}
	if c.Contracts[0].Strike != 0.9 || c.Contracts[2].Strike != 1 {
		t.Fatalf("merge order wrong: %+v", c.Contracts)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero vol": `
model: {risk_free_rate: 0.02, volatility: 0, initial_price: 1, horizon: 5}
contracts: [{kind: call, strike: 1}]`,
		"bad kind": `
model: {risk_free_rate: 0.02, volatility: 0.2, initial_price: 1, horizon: 5}
contracts: [{kind: straddle, strike: 1}]`,
		"bad method": `
model: {risk_free_rate: 0.02, volatility: 0.2, initial_price: 1, horizon: 5}
contracts: [{kind: call, strike: 1}]
run: {methods: [lattice]}`,
		"bad level": `
model: {risk_free_rate: 0.02, volatility: 0.2, initial_price: 1, horizon: 5}
contracts: [{kind: call, strike: 1}]
run: {confidence_level: 1.5}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "run.yaml", body)
			if _, err := Load(path); !errors.Is(err, model.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestLoad_NonPositiveMaturity(t *testing.T) {
	for _, m := range []string{"-1", "0", "0.0"} {
		path := writeFile(t, t.TempDir(), "run.yaml", `
model: {risk_free_rate: 0.02, volatility: 0.2, initial_price: 1, horizon: 5}
contracts: [{kind: call, strike: 1, maturity: `+m+`}]`)
		if _, err := Load(path); !errors.Is(err, model.ErrInvalidMaturity) {
			t.Fatalf("maturity %s: expected ErrInvalidMaturity, got %v", m, err)
		}
	}
}

func TestLoad_NoContracts(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", `
model: {risk_free_rate: 0.02, volatility: 0.2, initial_price: 1, horizon: 5}`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "contract") {
		t.Fatalf("expected missing contract error, got %v", err)
	}
}

func TestLoadUnchecked_MalformedYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "run.yaml", "model: [unclosed")
	if _, err := LoadUnchecked(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMergeModel(t *testing.T) {
	base := ModelConfig{RiskFreeRate: 0.02, Volatility: 0.2, InitialPrice: 1, Horizon: 5, PathCount: 10}
	got := MergeModel(base, ModelConfig{Volatility: 0.3, PathCount: 99})
	want := ModelConfig{RiskFreeRate: 0.02, Volatility: 0.3, InitialPrice: 1, Horizon: 5, PathCount: 99}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}
