package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"option-pricer/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPrice_ClosedForm(t *testing.T) {
	out, err := run(t, "price", "--strike", "1", "--method", "closed_form")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if !strings.Contains(out, "0.220221") {
		t.Fatalf("output missing reference price:\n%s", out)
	}
}

func TestPrice_FromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")
	yml := `model:
  risk_free_rate: 0.02
  volatility: 0.2
  initial_price: 1
  horizon: 5
  path_count: 2000
contracts:
  - kind: put
    strike: 1
run:
  seed: 9
`
	if err := os.WriteFile(cfgPath, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(dir, "out", "quotes.csv")
	out, err := run(t, "price", "--config", cfgPath, "--out", csvPath)
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	if !strings.Contains(out, "0.125058") || !strings.Contains(out, "PUT") {
		t.Fatalf("output:\n%s", out)
	}
	if _, err := os.Stat(csvPath); err != nil {
		t.Fatalf("csv not written: %v", err)
	}
}

func TestPrice_InvalidMaturity(t *testing.T) {
	for _, m := range []string{"-1", "0"} {
		if _, err := run(t, "price", "--strike", "1", "--method", "closed_form", "--maturity", m); !errors.Is(err, model.ErrInvalidMaturity) {
			t.Fatalf("maturity %s: expected ErrInvalidMaturity, got %v", m, err)
		}
	}
	_, err := run(t, "price", "--strike", "1", "--maturity", "-1")
	if msg := describe(err); !strings.Contains(msg, "positive number of years") {
		t.Fatalf("describe = %q", msg)
	}
}

func TestSimulate(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "paths.csv")
	out, err := run(t, "simulate", "-n", "50", "--steps", "4", "--seed", "1", "--out", csvPath)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	// header, origin and four steps
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("output:\n%s", out)
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(raw), "\n"); got != 51 {
		t.Fatalf("csv lines = %d", got)
	}
}

func TestConverge(t *testing.T) {
	out, err := run(t, "converge", "--start", "200", "--factor", "2", "--steps", "3")
	if err != nil {
		t.Fatalf("converge: %v", err)
	}
	if !strings.Contains(out, "closed form=0.220221") || !strings.Contains(out, "800") {
		t.Fatalf("output:\n%s", out)
	}
}
