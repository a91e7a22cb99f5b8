// Package model holds the pre-trained classifiers and weight matrices and
// applies them to feature vectors.
//
// Everything in a Registry is immutable once loaded and may be shared by any
// number of goroutines without locking.
package model

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Classifier maps a fixed-length feature vector to P(class 1).
type Classifier interface {
	Name() string
	InputDim() int
	Probability(x []float64) (float64, error)
}

// DimensionMismatchError is returned when a vector does not have the length
// a model was trained on.
type DimensionMismatchError struct {
	Model string
	Want  int
	Got   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("model %s: input features length is incorrect: expected %d, got %d", e.Model, e.Want, e.Got)
}

// NonNumericError flags NaN or infinite entries in a feature vector.
type NonNumericError struct {
	Index int
	Value float64
}

func (e *NonNumericError) Error() string {
	return fmt.Sprintf("non-numeric feature %v at index %d", e.Value, e.Index)
}

func checkInput(c Classifier, x []float64) error {
	if len(x) != c.InputDim() {
		return &DimensionMismatchError{Model: c.Name(), Want: c.InputDim(), Got: len(x)}
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &NonNumericError{Index: i, Value: v}
		}
	}
	return nil
}

/* ---------------- logistic ---------------- */

// Logistic is a linear model on optionally standardized inputs.
type Logistic struct {
	ID        string    `json:"name"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Mean      []float64 `json:"mean,omitempty"`
	Scale     []float64 `json:"scale,omitempty"`
}

func (l *Logistic) Name() string  { return l.ID }
func (l *Logistic) InputDim() int { return len(l.Weights) }

func (l *Logistic) Probability(x []float64) (float64, error) {
	if err := checkInput(l, x); err != nil {
		return 0, err
	}
	z := l.Intercept
	if l.Mean == nil && l.Scale == nil {
		z += floats.Dot(l.Weights, x)
	} else {
		for i, v := range x {
			if l.Mean != nil {
				v -= l.Mean[i]
			}
			if l.Scale != nil && l.Scale[i] != 0 {
				v /= l.Scale[i]
			}
			z += l.Weights[i] * v
		}
	}
	return sigmoid(z), nil
}

func (l *Logistic) validate() error {
	if len(l.Weights) == 0 {
		return fmt.Errorf("logistic %s: no weights", l.ID)
	}
	if l.Mean != nil && len(l.Mean) != len(l.Weights) {
		return fmt.Errorf("logistic %s: mean has %d entries, want %d", l.ID, len(l.Mean), len(l.Weights))
	}
	if l.Scale != nil && len(l.Scale) != len(l.Weights) {
		return fmt.Errorf("logistic %s: scale has %d entries, want %d", l.ID, len(l.Scale), len(l.Weights))
	}
	return nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

/* ---------------- forest ---------------- */

// Tree is one binary decision tree in flattened (parallel array) form.
// Node i is a leaf when Left[i] == -1; Value[i] then holds P(class 1).
type Tree struct {
	Feature   []int     `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int     `json:"left"`
	Right     []int     `json:"right"`
	Value     []float64 `json:"value"`
}

// Forest averages the leaf probabilities of its trees.
type Forest struct {
	ID       string `json:"name"`
	Features int    `json:"n_features"`
	Trees    []Tree `json:"trees"`
}

func (f *Forest) Name() string  { return f.ID }
func (f *Forest) InputDim() int { return f.Features }

func (f *Forest) Probability(x []float64) (float64, error) {
	if err := checkInput(f, x); err != nil {
		return 0, err
	}
	var sum float64
	for ti := range f.Trees {
		sum += f.Trees[ti].leaf(x)
	}
	return sum / float64(len(f.Trees)), nil
}

func (t *Tree) leaf(x []float64) float64 {
	n := 0
	for t.Left[n] != -1 {
		if x[t.Feature[n]] <= t.Threshold[n] {
			n = t.Left[n]
		} else {
			n = t.Right[n]
		}
	}
	return t.Value[n]
}

func (f *Forest) validate() error {
	if f.Features <= 0 {
		return fmt.Errorf("forest %s: n_features must be positive", f.ID)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest %s: no trees", f.ID)
	}
	for ti, t := range f.Trees {
		n := len(t.Left)
		if n == 0 || len(t.Right) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
			return fmt.Errorf("forest %s: tree %d has ragged node arrays", f.ID, ti)
		}
		for i := 0; i < n; i++ {
			if t.Left[i] == -1 {
				continue
			}
			// children must point forward so traversal always terminates
			if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
				return fmt.Errorf("forest %s: tree %d node %d has invalid children", f.ID, ti, i)
			}
			if t.Feature[i] < 0 || t.Feature[i] >= f.Features {
				return fmt.Errorf("forest %s: tree %d node %d splits on feature %d", f.ID, ti, i, t.Feature[i])
			}
		}
	}
	return nil
}

/* ---------------- decoding ---------------- */

// Decoders maps a model "kind" to its decoder. New kinds register here.
var Decoders = map[string]func(raw json.RawMessage) (Classifier, error){
	"logistic": func(raw json.RawMessage) (Classifier, error) {
		var l Logistic
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, err
		}
		return &l, l.validate()
	},
	"forest": func(raw json.RawMessage) (Classifier, error) {
		var f Forest
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, err
		}
		return &f, f.validate()
	},
}

// Decode builds a Classifier from its JSON document.
func Decode(raw json.RawMessage) (Classifier, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	dec, ok := Decoders[head.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown model kind %q", head.Kind)
	}
	return dec(raw)
}
