// Package cleavage scans the N-terminal region for signal peptidase
// cleavage sites using paired weight matrices and classifiers.
package cleavage

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"razor/internal/model"
	"razor/internal/sequence"
)

const (
	MinMaxScan      = 16 // smallest max_scan accepted as is
	FallbackMaxScan = 45 // replaces a max_scan below MinMaxScan
	Offset          = sequence.Flank
)

// ValidateMaxScan corrects maxScan for a sequence of length seqLen and
// returns the warnings describing each correction.
//   - below MinMaxScan → FallbackMaxScan
//   - above seqLen     → seqLen
func ValidateMaxScan(maxScan, seqLen int) (int, []string) {
	var warns []string
	if maxScan < MinMaxScan {
		warns = append(warns, fmt.Sprintf(
			"warning: max_scan must be at least %d but received %d; correcting it to %d",
			MinMaxScan, maxScan, FallbackMaxScan))
		maxScan = FallbackMaxScan
	}
	if maxScan > seqLen {
		warns = append(warns, fmt.Sprintf(
			"warning: max_scan %d is greater than the sequence length %d; correcting it to %d",
			maxScan, seqLen, seqLen))
		maxScan = seqLen
	}
	return maxScan, warns
}

// Pair is a weight matrix and the classifier trained on its window scores.
type Pair struct {
	Matrix     *model.WeightMatrix
	Classifier model.Classifier
}

// Result holds the raw per-pair output of one scan. Index i of every slice
// belongs to pair i.
type Result struct {
	MaxScan  int
	Windows  int
	Curves   [][]float64 // P(cleavage) per window offset
	Totals   [][]float64 // summed matrix score per window offset
	Scores   []float64   // max of each curve
	Sites    []int       // argmax of each curve + Offset
	Warnings []string
}

// Scanner is safe for concurrent use; it only reads its pairs.
type Scanner struct {
	pairs []Pair
}

// NewScanner pairs weights[i] with c.Models[i].
func NewScanner(weights []model.WeightMatrix, c model.Ensemble) (*Scanner, error) {
	if len(weights) != c.Len() {
		return nil, fmt.Errorf("cleavage: %d weight matrices for %d classifiers", len(weights), c.Len())
	}
	s := &Scanner{pairs: make([]Pair, len(weights))}
	for i := range weights {
		if d := c.Models[i].InputDim(); d != model.WindowLen {
			return nil, &model.DimensionMismatchError{Model: c.Models[i].Name(), Want: model.WindowLen, Got: d}
		}
		s.pairs[i] = Pair{Matrix: &weights[i], Classifier: c.Models[i]}
	}
	return s, nil
}

// Pairs returns the number of matrix/classifier pairs.
func (s *Scanner) Pairs() int { return len(s.pairs) }

// Windows returns the max_scan-15 overlapping 30-residue windows of seq,
// padding the tail with the filler residue when seq is too short.
func Windows(seq string, maxScan int) []string {
	n := maxScan - Offset
	if n <= 0 {
		return nil
	}
	seq = sequence.Pad(seq, maxScan+Offset)
	out := make([]string, n)
	for i := range out {
		out[i] = seq[i : i+model.WindowLen]
	}
	return out
}

// Scan scores every window of a normalized sequence with every pair.
func (s *Scanner) Scan(seq string, maxScan int) (Result, error) {
	if err := sequence.Check(seq); err != nil {
		return Result{}, err
	}
	ms, warns := ValidateMaxScan(maxScan, len(seq))
	wins := Windows(seq, ms)
	res := Result{
		MaxScan:  ms,
		Windows:  len(wins),
		Curves:   make([][]float64, len(s.pairs)),
		Totals:   make([][]float64, len(s.pairs)),
		Scores:   make([]float64, len(s.pairs)),
		Sites:    make([]int, len(s.pairs)),
		Warnings: warns,
	}
	if len(wins) == 0 {
		return res, nil
	}
	scored := make([]float64, model.WindowLen)
	for pi, p := range s.pairs {
		curve := make([]float64, len(wins))
		totals := make([]float64, len(wins))
		for wi, w := range wins {
			totals[wi] = p.Matrix.ScoreWindow(w, scored)
			prob, err := p.Classifier.Probability(scored)
			if err != nil {
				return Result{}, fmt.Errorf("cleavage pair %d (%s): %w", pi, p.Matrix.Name, err)
			}
			curve[wi] = prob
		}
		best := floats.MaxIdx(curve)
		res.Curves[pi] = curve
		res.Totals[pi] = totals
		res.Scores[pi] = curve[best]
		res.Sites[pi] = best + Offset
	}
	return res, nil
}
