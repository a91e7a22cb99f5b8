package pipeline

import "razor/internal/score"

// Predictor is the minimal capability the pipeline needs.
// score.Predictor (and fakes in tests) satisfy it.
type Predictor interface {
	Predict(accession, seq string) (score.Result, error)
}

// Progress is notified once per finished sequence.
type Progress interface {
	Increment() int
}
