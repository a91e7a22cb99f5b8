package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"razor/internal/gzio"
)

// Input sizes the ensembles are trained on.
const (
	SDim     = 104
	CDim     = WindowLen
	FungiDim = 20
	ToxinDim = 73
)

// Registry is the process-wide set of pre-trained artefacts. C[i] is paired
// with Weights[i].
type Registry struct {
	S       Ensemble
	C       Ensemble
	Fungi   Ensemble
	Toxin   Ensemble
	Weights []WeightMatrix
}

// Registry file stems inside a model directory.
const (
	FileS       = "S"
	FileC       = "C"
	FileFungi   = "Fungi"
	FileToxin   = "Toxin"
	FileWeights = "weights"
)

// Load reads a registry from dir. Every file may be plain JSON or gzip.
func Load(dir string) (*Registry, error) {
	r := &Registry{}
	for _, e := range []struct {
		stem string
		dst  *Ensemble
	}{
		{FileS, &r.S}, {FileC, &r.C}, {FileFungi, &r.Fungi}, {FileToxin, &r.Toxin},
	} {
		var doc ensembleDoc
		if err := readJSON(dir, e.stem, &doc); err != nil {
			return nil, err
		}
		ens, err := decodeEnsemble(doc, e.stem)
		if err != nil {
			return nil, err
		}
		*e.dst = ens
	}

	var wd weightsDoc
	if err := readJSON(dir, FileWeights, &wd); err != nil {
		return nil, err
	}
	for _, m := range wd.Matrices {
		w, err := NewWeightMatrix(m.Name, m.Positions)
		if err != nil {
			return nil, err
		}
		r.Weights = append(r.Weights, w)
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("model registry %s: %w", dir, err)
	}
	return r, nil
}

// Validate checks ensemble sizes, input dimensions and C/weight pairing.
func (r *Registry) Validate() error {
	if err := r.S.checkDim(SDim); err != nil {
		return err
	}
	if err := r.C.checkDim(CDim); err != nil {
		return err
	}
	if err := r.Fungi.checkDim(FungiDim); err != nil {
		return err
	}
	if err := r.Toxin.checkDim(ToxinDim); err != nil {
		return err
	}
	if len(r.Weights) != r.C.Len() {
		return fmt.Errorf("%d weight matrices for %d C models", len(r.Weights), r.C.Len())
	}
	return nil
}

func readJSON(dir, stem string, v any) error {
	path, ok := gzio.FirstExisting(filepath.Join(dir, stem), ".json", ".json.gz")
	if !ok {
		return fmt.Errorf("model registry %s: missing %s.json", dir, stem)
	}
	rc, err := gzio.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
