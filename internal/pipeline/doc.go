// Package pipeline fans a batch of sequences out over a worker pool and
// gathers the scored results back in input order.
//
// The only contract to implement is Predictor (Predict). This keeps the
// pipeline swappable and testable.
package pipeline
