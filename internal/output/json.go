package output

import (
	"encoding/json"
	"io"

	"razor/internal/score"
	"razor/pkg/api"
)

// ToAPIResult converts a domain Result to the stable wire schema (v1).
func ToAPIResult(r score.Result) api.ResultV1 {
	return api.ResultV1{
		Accession:        r.Accession,
		Sequence:         r.Sequence,
		YScore:           copyFloats(r.YScores),
		SPPrediction:     append([]int(nil), r.SPPrediction...),
		SPScore:          r.SPScore,
		MaxC:             copyFloats(r.MaxC),
		ProbableCleavage: append([]int(nil), r.ProbableCleavage...),
		Cleavage:         r.Cleavage,
		CCurves:          r.CCurves,
		FungiScores:      copyFloats(r.FungiScores),
		FungiPrediction:  append([]int(nil), r.FungiPrediction...),
		FungiMedian:      r.FungiMedian,
		ToxinScores:      copyFloats(r.ToxinScores),
		ToxinPrediction:  append([]int(nil), r.ToxinPrediction...),
		ToxinMedian:      r.ToxinMedian,
		Warnings:         append([]string(nil), r.Warnings...),
	}
}

func copyFloats(xs []float64) []float64 { return append([]float64(nil), xs...) }

// WriteJSON writes a single JSON array of v1 results (pretty-indented).
func WriteJSON(w io.Writer, list []score.Result) error {
	out := make([]api.ResultV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPIResult(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
