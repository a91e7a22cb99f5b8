// Package features turns normalized sequences into the fixed-length numeric
// vectors the classifier ensembles consume.
//
// All builders are pure: they never mutate their input and allocate a fresh
// vector per call.
package features

import (
	"fmt"

	"razor/internal/sequence"
)

// Vector lengths per ensemble.
const (
	GlobalLen = 3*sequence.MinLength + len(GlobalCounted) // 104
	FungalLen = len(sequence.Alphabet)                    // 20
	ToxinLen  = 3*ToxinWindow + len(TurnResidues)         // 73
)

const (
	GlobalCounted = "RKNDCEVIYFWLQP" // composition part of the global vector
	TurnResidues  = "NPGS"

	FungalWindow = 22
	ToxinWindow  = 23
)

// Global builds the 104-length S-score vector from exactly 30 residues:
// smoothed hydrophobicity, smoothed solubility, raw flexibility and the
// GlobalCounted composition.
func Global(seq string) ([]float64, error) {
	if len(seq) != sequence.MinLength {
		return nil, &sequence.ValidationError{
			Msg: fmt.Sprintf("input sequence must be %d residues long, got %d", sequence.MinLength, len(seq)),
		}
	}
	if err := sequence.Check(seq); err != nil {
		return nil, err
	}
	hydro, flex, swi := channels(seq)
	sh, err := Smooth(hydro, SmoothWindow, SmoothOrder)
	if err != nil {
		return nil, err
	}
	ss, err := Smooth(swi, SmoothWindow, SmoothOrder)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, GlobalLen)
	out = append(out, sh...)
	out = append(out, ss...)
	out = append(out, flex...)
	out = append(out, counts(seq, GlobalCounted)...)
	return out, nil
}

// Fungal counts each canonical residue over the first 22 residues.
func Fungal(seq string) ([]float64, error) {
	norm, err := sequence.Validate(seq, sequence.DefaultMaxScan)
	if err != nil {
		return nil, err
	}
	return counts(norm[:FungalWindow], sequence.Alphabet), nil
}

// Toxin concatenates the raw hydrophobicity, solubility and flexibility
// profiles of the first 23 residues with the counts of the turn residues.
func Toxin(seq string) ([]float64, error) {
	norm, err := sequence.Validate(seq, sequence.DefaultMaxScan)
	if err != nil {
		return nil, err
	}
	head := norm[:ToxinWindow]
	hydro, flex, swi := channels(head)
	out := make([]float64, 0, ToxinLen)
	out = append(out, hydro...)
	out = append(out, swi...)
	out = append(out, flex...)
	out = append(out, counts(head, TurnResidues)...)
	return out, nil
}
