package engine

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteQuotesCSV(path string, rows []QuoteRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeQuotesCSV(f, rows)
}

func EncodeQuotesCSV(out io.Writer, rows []QuoteRow) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"kind",
		"strike",
		"maturity",
		"closed_form",
		"delta",
		"gamma",
		"vega",
		"theta",
		"rho",
		"monte_carlo",
		"std_err",
		"ci_low",
		"ci_high",
		"paths",
		"seed",
		"abs_diff",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			string(r.Kind),
			fmtFloat(r.Strike),
			fmtFloat(r.Maturity),
			optFloat(r.HasClosedForm, r.ClosedForm),
			optFloat(r.HasClosedForm, r.Greeks.Delta),
			optFloat(r.HasClosedForm, r.Greeks.Gamma),
			optFloat(r.HasClosedForm, r.Greeks.Vega),
			optFloat(r.HasClosedForm, r.Greeks.Theta),
			optFloat(r.HasClosedForm, r.Greeks.Rho),
			optFloat(r.HasMonteCarlo, r.MonteCarlo),
			optFloat(r.HasMonteCarlo, r.StdErr),
			optFloat(r.HasMonteCarlo, r.CILow),
			optFloat(r.HasMonteCarlo, r.CIHigh),
			optInt(r.HasMonteCarlo, r.PathCount),
			fmtSeed(r.Seed),
			optFloat(r.HasClosedForm && r.HasMonteCarlo, r.AbsDiff),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func optFloat(ok bool, x float64) string {
	if !ok {
		return ""
	}
	return fmtFloat(x)
}

func optInt(ok bool, x int) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(x)
}

func fmtSeed(s *uint64) string {
	if s == nil {
		return ""
	}
	return strconv.FormatUint(*s, 10)
}
