package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"option-pricer/internal/model"
)

func request(seed uint64) Request {
	return Request{
		Model: model.SimulationConfig{RiskFreeRate: 0.02, Volatility: 0.2, InitialPrice: 1, Horizon: 5, PathCount: 200_000},
		Contracts: []model.OptionContract{
			{Strike: 1, Maturity: 5, Kind: model.Call},
			{Strike: 1, Maturity: 5, Kind: model.Put},
			{Strike: 1.2, Maturity: 2, Kind: model.Call},
		},
		Seed: &seed,
	}
}

func TestRun_BothMethods(t *testing.T) {
	res, err := New().Run(request(1))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("rows = %d", len(res.Rows))
	}
	for _, r := range res.Rows {
		if !r.HasClosedForm || !r.HasMonteCarlo {
			t.Fatalf("row %d missing a method: %+v", r.Index, r)
		}
		if r.AbsDiff > 5*r.StdErr {
			t.Fatalf("row %d: |mc-bs|=%v exceeds 5 std errs (%v)", r.Index, r.AbsDiff, r.StdErr)
		}
		if !(r.CILow < r.MonteCarlo && r.MonteCarlo < r.CIHigh) {
			t.Fatalf("row %d: price outside its interval", r.Index)
		}
		if r.PathCount != 200_000 {
			t.Fatalf("row %d: paths = %d", r.Index, r.PathCount)
		}
		if r.Seed == nil || *r.Seed != 1+uint64(r.Index) {
			t.Fatalf("row %d: seed = %v", r.Index, r.Seed)
		}
	}
	if math.Abs(res.Rows[0].ClosedForm-0.22022086797273166) > 1e-9 {
		t.Fatalf("call closed form = %v", res.Rows[0].ClosedForm)
	}
	if res.Model.Horizon != 5 {
		t.Fatalf("engine mutated the request model: %+v", res.Model)
	}
}

func TestRun_Reproducible(t *testing.T) {
	a, err := New().Run(request(42))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, _ := New().Run(request(42))
	for i := range a.Rows {
		if a.Rows[i].MonteCarlo != b.Rows[i].MonteCarlo {
			t.Fatalf("row %d not reproducible", i)
		}
	}
}

func TestRun_MethodSelection(t *testing.T) {
	req := request(3)
	req.Methods = []Method{MethodClosedForm}
	res, err := New().Run(req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, r := range res.Rows {
		if r.HasMonteCarlo || !r.HasClosedForm {
			t.Fatalf("unexpected methods in row %d", r.Index)
		}
	}

	req.Methods = []Method{"binomial"}
	if _, err := New().Run(req); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	req := request(1)
	req.Contracts = append(req.Contracts, model.OptionContract{Strike: 1, Maturity: 0, Kind: model.Call})
	if _, err := New().Run(req); !errors.Is(err, model.ErrInvalidMaturity) {
		t.Fatalf("expected ErrInvalidMaturity, got %v", err)
	}

	req = request(1)
	req.Contracts = nil
	if _, err := New().Run(req); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}

	req = request(1)
	req.Model.Volatility = 0
	if _, err := New().Run(req); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"mc": MethodMonteCarlo, "bs": MethodClosedForm, "closed_form": MethodClosedForm} {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParseMethod(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMethod("tree"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWriteQuotesCSV(t *testing.T) {
	req := request(5)
	req.Model.PathCount = 1000
	res, err := New().Run(req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	path := filepath.Join(t.TempDir(), "quotes.csv")
	if err := WriteQuotesCSV(path, res.Rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	recs, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 4 || recs[0][0] != "index" || recs[1][1] != "CALL" || recs[2][1] != "PUT" {
		t.Fatalf("unexpected csv: %v", recs)
	}
	if recs[1][15] != "5" {
		t.Fatalf("seed column = %q", recs[1][15])
	}
}

func TestEncodeQuotesCSV_OmitsMissingMethods(t *testing.T) {
	var buf bytes.Buffer
	rows := []QuoteRow{{Index: 0, Kind: model.Call, Strike: 1, Maturity: 1, HasClosedForm: true, ClosedForm: 0.1}}
	if err := EncodeQuotesCSV(&buf, rows); err != nil {
		t.Fatalf("encode: %v", err)
	}
	recs, _ := csv.NewReader(&buf).ReadAll()
	if recs[1][4] != "0.100000" || recs[1][10] != "" || recs[1][16] != "" {
		t.Fatalf("unexpected row: %v", recs[1])
	}
}
