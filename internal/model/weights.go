package model

import (
	"fmt"

	"razor/internal/sequence"
)

// WindowLen is the width of a cleavage-site candidate window.
const WindowLen = 30

// WeightMatrix scores a residue at a window position.
type WeightMatrix struct {
	Name   string
	scores [WindowLen][len(sequence.Alphabet)]float64
}

// Score returns the weight of residue r at window position pos (0-based).
// r must be canonical.
func (w *WeightMatrix) Score(pos int, r byte) float64 {
	return w.scores[pos][sequence.Index(r)]
}

// ScoreWindow writes the per-position scores of a 30-residue window into dst
// and returns their sum.
func (w *WeightMatrix) ScoreWindow(window string, dst []float64) float64 {
	var total float64
	for p := 0; p < WindowLen; p++ {
		v := w.scores[p][sequence.Index(window[p])]
		dst[p] = v
		total += v
	}
	return total
}

// NewWeightMatrix builds a matrix from one residue->score map per position.
func NewWeightMatrix(name string, positions []map[string]float64) (WeightMatrix, error) {
	w := WeightMatrix{Name: name}
	if len(positions) != WindowLen {
		return w, fmt.Errorf("weight matrix %s: %d positions, want %d", name, len(positions), WindowLen)
	}
	for p, col := range positions {
		for i := 0; i < len(sequence.Alphabet); i++ {
			r := sequence.Alphabet[i : i+1]
			v, ok := col[r]
			if !ok {
				return w, fmt.Errorf("weight matrix %s: position %d lacks residue %s", name, p, r)
			}
			w.scores[p][i] = v
		}
	}
	return w, nil
}

type weightsDoc struct {
	Matrices []struct {
		Name      string               `json:"name"`
		Positions []map[string]float64 `json:"positions"`
	} `json:"matrices"`
}
