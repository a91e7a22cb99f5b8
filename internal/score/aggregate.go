// Package score runs the per-sequence pipeline and folds the ensemble
// outputs into one Result.
package score

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"razor/internal/cleavage"
)

// Threshold separates positive from negative model calls.
const Threshold = 0.5

// Result is the scored record of one sequence.
type Result struct {
	Accession string
	Sequence  string

	YScores      []float64 // S probabilities, 2 decimals
	SPPrediction []int     // per S model label
	SPScore      float64   // median S probability, 2 decimals

	MaxC             []float64   // max C probability per pair
	ProbableCleavage []int       // cleavage position per pair
	Cleavage         int         // chosen position, 0 when none
	CCurves          [][]float64 // full probability curve per pair

	FungiScores     []float64
	FungiPrediction []int
	FungiMedian     float64

	ToxinScores     []float64
	ToxinPrediction []int
	ToxinMedian     float64

	Warnings []string
	Err      error // set when the pipeline failed for this sequence
}

// Failed reports whether the sequence could not be scored.
func (r Result) Failed() bool { return r.Err != nil }

// Aggregate combines raw ensemble outputs into a Result. Inputs are not
// modified.
func Aggregate(s []float64, scan cleavage.Result, fungi, toxin []float64) Result {
	r := Result{
		YScores:          roundAll(s, 2),
		SPPrediction:     Labels(s),
		SPScore:          Round(Median(s), 2),
		MaxC:             append([]float64(nil), scan.Scores...),
		ProbableCleavage: append([]int(nil), scan.Sites...),
		CCurves:          scan.Curves,
		Cleavage:         BestCleavage(scan),
		FungiScores:      append([]float64(nil), fungi...),
		FungiPrediction:  Labels(fungi),
		FungiMedian:      Median(fungi),
		ToxinScores:      append([]float64(nil), toxin...),
		ToxinPrediction:  Labels(toxin),
		ToxinMedian:      Median(toxin),
		Warnings:         scan.Warnings,
	}
	return r
}

// BestCleavage returns the site of the pair holding the highest probability
// over all pairs and windows, or 0 when that probability is below
// Threshold or nothing was scanned.
func BestCleavage(scan cleavage.Result) int {
	if scan.Windows == 0 || len(scan.Scores) == 0 {
		return 0
	}
	best := 0
	for i, v := range scan.Scores {
		if v > scan.Scores[best] {
			best = i
		}
	}
	if scan.Scores[best] < Threshold {
		return 0
	}
	return scan.Sites[best]
}

// Labels thresholds each probability into 0/1.
func Labels(p []float64) []int {
	out := make([]int, len(p))
	for i, v := range p {
		if v > Threshold {
			out[i] = 1
		}
	}
	return out
}

// Median returns the middle value of xs, averaging the two middle values
// for even lengths. It returns 0 for an empty slice.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return stat.Mean(sorted[n/2-1:n/2+1], nil)
}

// Round rounds half to even at the given number of decimals.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

func roundAll(xs []float64, places int) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = Round(v, places)
	}
	return out
}
