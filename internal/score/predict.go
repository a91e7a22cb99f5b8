package score

import (
	"fmt"

	"razor/internal/cleavage"
	"razor/internal/features"
	"razor/internal/model"
	"razor/internal/sequence"
)

// Predictor scores single sequences against a shared, read-only Registry.
// It is safe for concurrent use.
type Predictor struct {
	reg     *model.Registry
	scanner *cleavage.Scanner
	maxScan int
}

// NewPredictor validates reg and binds it to maxScan.
func NewPredictor(reg *model.Registry, maxScan int) (*Predictor, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	sc, err := cleavage.NewScanner(reg.Weights, reg.C)
	if err != nil {
		return nil, err
	}
	return &Predictor{reg: reg, scanner: sc, maxScan: maxScan}, nil
}

// Predict runs normalize → features → ensembles → scan → aggregate for one
// sequence.
func (p *Predictor) Predict(accession, raw string) (Result, error) {
	seq, err := sequence.Validate(raw, p.maxScan)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}

	global, err := features.Global(seq[:sequence.MinLength])
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}
	s, err := p.reg.S.Predict(global)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}

	scan, err := p.scanner.Scan(seq, p.maxScan)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}

	fv, err := features.Fungal(seq)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}
	fungi, err := p.reg.Fungi.Predict(fv)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}

	tv, err := features.Toxin(seq)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}
	toxin, err := p.reg.Toxin.Predict(tv)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", accession, err)
	}

	r := Aggregate(s, scan, fungi, toxin)
	r.Accession = accession
	r.Sequence = raw
	return r, nil
}
