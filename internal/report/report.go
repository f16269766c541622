// Package report prints experiment results as tab separated text, like the
// classic console output, or as rounded go-pretty tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/born-ml/xorresilient/internal/experiment"
)

// Format selects the output layout.
type Format string

const (
	// FormatTable renders boxed tables.
	FormatTable Format = "table"
	// FormatTSV renders tab separated lines.
	FormatTSV Format = "tsv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatTSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %q or %q)", s, FormatTable, FormatTSV)
	}
}

// Reporter writes results to an io.Writer.
type Reporter struct {
	Format Format
	// Pad fills the tsv training log with blank lines up to MaxEpochs so
	// every experiment occupies the same number of lines.
	Pad   bool
	Color bool
}

// NewDefaultTableStyle is the rounded style used for every table.
func NewDefaultTableStyle(colored bool) *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
	}
	if colored {
		style.Color = table.ColorOptionsYellowWhiteOnBlack
		style.Color.Row = text.Colors{text.FgHiYellow, text.BgHiBlack}
		style.Color.RowAlternate = text.Colors{text.FgYellow, text.BgBlack}
	}
	return &style
}

func (r *Reporter) title(w io.Writer, s string) {
	if r.Color {
		s = color.New(color.Bold).Sprint(s)
	}
	fmt.Fprintln(w, s)
	fmt.Fprintln(w)
}

func (r *Reporter) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*NewDefaultTableStyle(r.Color))
	return t
}

// Training writes the per-epoch log of res.
func (r *Reporter) Training(w io.Writer, res *experiment.Result) {
	r.title(w, res.Title+" Neural Network Training:")

	if r.Format == FormatTSV {
		fmt.Fprintln(w, "Time\tEpoch\tError")
		for _, e := range res.Epochs {
			fmt.Fprintf(w, "%d\t%d\t%s\n", e.Elapsed.Milliseconds(), e.Index, formatFloat(e.Error))
		}
		if r.Pad {
			for i := len(res.Epochs) + 1; i < res.MaxEpochs; i++ {
				fmt.Fprintln(w)
			}
		}
		fmt.Fprintln(w)
		return
	}

	t := r.newTable(w)
	t.AppendHeader(table.Row{"Time", "Epoch", "Error"})
	for _, e := range res.Epochs {
		t.AppendRow(table.Row{e.Elapsed.Milliseconds(), e.Index, formatFloat(e.Error)})
	}
	t.AppendFooter(table.Row{"", "stop", res.Stop.String()})
	t.Render()
	fmt.Fprintln(w)
}

// Results writes one line per training pair: inputs, ideal and actual outputs.
func (r *Reporter) Results(w io.Writer, res *experiment.Result) {
	r.title(w, res.Title+" Neural Network Results:")

	header := resultHeader(res)
	if r.Format == FormatTSV {
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, p := range res.Predictions {
			fmt.Fprintln(w, strings.Join(predictionCells(p), "\t"))
		}
		fmt.Fprintln(w)
		return
	}

	t := r.newTable(w)
	t.AppendHeader(toRow(header))
	for _, p := range res.Predictions {
		t.AppendRow(toRow(predictionCells(p)))
	}
	t.Render()
	fmt.Fprintln(w)
}

// Summary writes one row per experiment.
func (r *Reporter) Summary(w io.Writer, results []*experiment.Result) {
	header := []string{"Experiment", "Activation", "Optimizer", "Epochs", "Error", "Stop", "Duration"}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}
		rows = append(rows, []string{
			res.Title,
			res.Activation,
			res.Optimizer,
			strconv.Itoa(len(res.Epochs)),
			formatFloat(res.FinalError),
			res.Stop.String(),
			res.Duration.Round(time.Microsecond).String(),
		})
	}
	stats := experiment.Summarize(results)

	r.title(w, "Summary:")
	if r.Format == FormatTSV {
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		fmt.Fprintf(w, "converged %d/%d, mean epochs %.1f ± %.1f\n", stats.Converged, stats.Runs, stats.MeanEpochs, stats.StdEpochs)
		return
	}

	t := r.newTable(w)
	t.AppendHeader(toRow(header))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	t.AppendFooter(table.Row{
		"", "", "converged",
		fmt.Sprintf("%.1f ± %.1f", stats.MeanEpochs, stats.StdEpochs),
		formatFloat(stats.MeanError),
		fmt.Sprintf("%d/%d", stats.Converged, stats.Runs),
		"",
	})
	t.Render()
}

func resultHeader(res *experiment.Result) []string {
	inputs, ideals := 0, 0
	if len(res.Predictions) > 0 {
		inputs = len(res.Predictions[0].Input)
		ideals = len(res.Predictions[0].Ideal)
	}
	header := make([]string, 0, inputs+2*ideals)
	for i := 1; i <= inputs; i++ {
		header = append(header, fmt.Sprintf("Input %d", i))
	}
	header = append(header, numbered("Ideal", ideals)...)
	return append(header, numbered("Actual", ideals)...)
}

func numbered(name string, n int) []string {
	if n == 1 {
		return []string{name}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", name, i+1)
	}
	return out
}

func predictionCells(p experiment.Prediction) []string {
	cells := make([]string, 0, len(p.Input)+len(p.Ideal)+len(p.Actual))
	for _, vs := range [][]float64{p.Input, p.Ideal, p.Actual} {
		for _, v := range vs {
			cells = append(cells, formatFloat(v))
		}
	}
	return cells
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
