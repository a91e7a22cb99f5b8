package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"razor/internal/score"
)

// FloatList renders xs as a bracketed list, e.g. "[0.12, 1.0]".
func FloatList(xs []float64) string {
	ss := make([]string, len(xs))
	for i, v := range xs {
		ss[i] = Float(v)
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// IntList renders a as a bracketed list, e.g. "[1, 0]".
func IntList(a []int) string {
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(ss, ", ") + "]"
}

// Float uses the shortest representation and always keeps a decimal point
// for integral values.
func Float(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// FormatRowTSV returns the table columns of r (no trailing newline).
func FormatRowTSV(r score.Result) string {
	return strings.Join([]string{
		r.Accession, r.Sequence,
		FloatList(r.YScores), IntList(r.SPPrediction), FloatList(r.MaxC),
		IntList(r.ProbableCleavage), strconv.Itoa(r.Cleavage), Float(r.SPScore),
		FloatList(r.FungiScores), IntList(r.FungiPrediction), Float(r.FungiMedian),
		FloatList(r.ToxinScores), IntList(r.ToxinPrediction), Float(r.ToxinMedian),
	}, "\t")
}

// StreamTSV writes results from a channel as a tab-delimited table.
func StreamTSV(w io.Writer, in <-chan score.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for r := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(r)); err != nil {
			return err
		}
	}
	return nil
}
