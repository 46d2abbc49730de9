package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"option-pricer/internal/engine"
	"option-pricer/internal/model"
)

func TestEncodePathsCSV(t *testing.T) {
	paths := mat.NewDense(2, 3, []float64{1, 1.1, 1.2, 1, 0.9, 0.8})
	var buf bytes.Buffer
	if err := EncodePathsCSV(&buf, []float64{0, 0.5, 1}, paths); err != nil {
		t.Fatalf("encode: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("records = %d", len(recs))
	}
	if strings.Join(recs[0], ",") != "path,t=0,t=0.5,t=1" {
		t.Fatalf("header = %v", recs[0])
	}
	if recs[2][3] != "0.800000" {
		t.Fatalf("cell = %q", recs[2][3])
	}
}

func TestEncodePathsCSV_ColumnMismatch(t *testing.T) {
	paths := mat.NewDense(1, 2, []float64{1, 2})
	if err := EncodePathsCSV(&bytes.Buffer{}, []float64{0}, paths); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWritePathsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paths.csv")
	if err := WritePathsCSV(path, []float64{2}, mat.NewDense(1, 1, []float64{1.5})); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "1.500000") {
		t.Fatalf("file = %q", raw)
	}
}

func TestPrintQuotes(t *testing.T) {
	rows := []engine.QuoteRow{
		{Index: 0, Kind: model.Call, Strike: 1, Maturity: 5, HasClosedForm: true, ClosedForm: 0.220221},
	}
	var buf bytes.Buffer
	if err := PrintQuotes(&buf, rows); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "0.220221") || !strings.Contains(out, "CALL") {
		t.Fatalf("table = %q", out)
	}
	if !strings.Contains(out, "-") {
		t.Fatalf("missing placeholder for monte carlo: %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	res := &engine.Result{Rows: []engine.QuoteRow{{Index: 0, Kind: model.Put, Strike: 1}}}
	path := filepath.Join(t.TempDir(), "quotes.json")
	if err := WriteJSON(res, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	var back engine.Result
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Rows) != 1 || back.Rows[0].Kind != model.Put {
		t.Fatalf("round trip = %+v", back)
	}
}
