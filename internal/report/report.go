package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"option-pricer/internal/engine"
)

// WritePathsCSV writes one row per path with a column per time in times.
func WritePathsCSV(path string, times []float64, paths mat.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodePathsCSV(f, times, paths)
}

func EncodePathsCSV(out io.Writer, times []float64, paths mat.Matrix) error {
	r, c := paths.Dims()
	if c != len(times) {
		return fmt.Errorf("paths have %d columns but %d times given", c, len(times))
	}
	w := csv.NewWriter(out)

	header := make([]string, 0, c+1)
	header = append(header, "path")
	for _, t := range times {
		header = append(header, "t="+strconv.FormatFloat(t, 'g', -1, 64))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, c+1)
	for i := 0; i < r; i++ {
		row[0] = strconv.Itoa(i)
		for j := 0; j < c; j++ {
			row[j+1] = strconv.FormatFloat(paths.At(i, j), 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes res as indented JSON to path.
func WriteJSON(res *engine.Result, path string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// PrintQuotes renders rows as an aligned table.
func PrintQuotes(out io.Writer, rows []engine.QuoteRow) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tkind\tstrike\tT\tclosed form\tmonte carlo\tstd err\t|diff|\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%s\t%s\t%s\t%s\t\n",
			r.Index, r.Kind, r.Strike, r.Maturity,
			cell(r.HasClosedForm, r.ClosedForm),
			cell(r.HasMonteCarlo, r.MonteCarlo),
			cell(r.HasMonteCarlo, r.StdErr),
			cell(r.HasClosedForm && r.HasMonteCarlo, r.AbsDiff),
		)
	}
	return tw.Flush()
}

func cell(ok bool, x float64) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
