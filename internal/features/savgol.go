package features

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Smoothing parameters for the hydrophobicity and solubility profiles.
const (
	SmoothWindow = 15
	SmoothOrder  = 2
)

type projKey struct{ window, order int }

var projections sync.Map // projKey -> *mat.Dense

// projection returns the hat matrix H = A (AᵀA)⁻¹ Aᵀ of a least-squares
// polynomial fit over one window. Row j of H evaluates the fitted
// polynomial at sample j of the window.
func projection(window, order int) (*mat.Dense, error) {
	k := projKey{window, order}
	if h, ok := projections.Load(k); ok {
		return h.(*mat.Dense), nil
	}
	a := mat.NewDense(window, order+1, nil)
	half := window / 2
	for i := 0; i < window; i++ {
		x, v := float64(i-half), 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	var ata, inv, ainv, h mat.Dense
	ata.Mul(a.T(), a)
	if err := inv.Inverse(&ata); err != nil {
		return nil, fmt.Errorf("savgol: singular normal matrix for window %d order %d: %w", window, order, err)
	}
	ainv.Mul(a, &inv)
	h.Mul(&ainv, a.T())
	act, _ := projections.LoadOrStore(k, &h)
	return act.(*mat.Dense), nil
}

// Smooth applies a Savitzky-Golay filter to x. Interior samples take the
// value of the polynomial fitted to the window centred on them; the first
// and last window/2 samples are read off the fits of the first and last
// full windows (scipy's "interp" edge mode).
func Smooth(x []float64, window, order int) ([]float64, error) {
	if window%2 == 0 || window < 1 {
		return nil, fmt.Errorf("savgol: window %d must be a positive odd number", window)
	}
	if order >= window {
		return nil, fmt.Errorf("savgol: order %d must be less than window %d", order, window)
	}
	if len(x) < window {
		return nil, fmt.Errorf("savgol: input length %d shorter than window %d", len(x), window)
	}
	h, err := projection(window, order)
	if err != nil {
		return nil, err
	}
	half := window / 2
	last := len(x) - window
	out := make([]float64, len(x))
	for i := range x {
		start := i - half
		if start < 0 {
			start = 0
		} else if start > last {
			start = last
		}
		out[i] = floats.Dot(h.RawRowView(i-start), x[start:start+window])
	}
	return out, nil
}
