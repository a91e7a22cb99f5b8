package model

import (
	"encoding/json"
	"fmt"
)

// Ensemble is a fixed, ordered set of independently trained classifiers.
type Ensemble struct {
	Name   string
	Models []Classifier
}

// Predict applies every model to x and returns one probability per model,
// in model order.
func (e Ensemble) Predict(x []float64) ([]float64, error) {
	out := make([]float64, len(e.Models))
	for i, m := range e.Models {
		p, err := m.Probability(x)
		if err != nil {
			return nil, fmt.Errorf("%s ensemble: %w", e.Name, err)
		}
		out[i] = p
	}
	return out, nil
}

// Len is the number of models.
func (e Ensemble) Len() int { return len(e.Models) }

func (e Ensemble) checkDim(want int) error {
	if len(e.Models) == 0 {
		return fmt.Errorf("%s ensemble: no models", e.Name)
	}
	for _, m := range e.Models {
		if m.InputDim() != want {
			return fmt.Errorf("%s ensemble: %w", e.Name, &DimensionMismatchError{Model: m.Name(), Want: want, Got: m.InputDim()})
		}
	}
	return nil
}

type ensembleDoc struct {
	Name   string            `json:"name"`
	Models []json.RawMessage `json:"models"`
}

func decodeEnsemble(doc ensembleDoc, fallback string) (Ensemble, error) {
	e := Ensemble{Name: doc.Name}
	if e.Name == "" {
		e.Name = fallback
	}
	for i, raw := range doc.Models {
		c, err := Decode(raw)
		if err != nil {
			return Ensemble{}, fmt.Errorf("%s ensemble model %d: %w", e.Name, i, err)
		}
		e.Models = append(e.Models, c)
	}
	return e, nil
}
