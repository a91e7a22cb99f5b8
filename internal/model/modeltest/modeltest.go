// Package modeltest writes small deterministic model registries for tests.
//
// The models are hand-built, not trained: hydrophobic N-termini score high
// on S, an A-x-A motif at the end of the hydrophobic core scores high on C.
package modeltest

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"razor/internal/model"
	"razor/internal/sequence"
)

// CModels is the number of C models / weight matrices in the fixture.
const CModels = 5

// Registry writes the fixture into a temp dir and loads it back.
func Registry(tb testing.TB) *model.Registry {
	tb.Helper()
	dir := tb.TempDir()
	WriteDir(tb, dir, false)
	r, err := model.Load(dir)
	if err != nil {
		tb.Fatalf("load fixture registry: %v", err)
	}
	return r
}

// WriteDir writes the fixture documents into dir, gzip-compressed when gz.
func WriteDir(tb testing.TB, dir string, gz bool) {
	tb.Helper()
	for stem, doc := range Docs() {
		b, err := json.Marshal(doc)
		if err != nil {
			tb.Fatal(err)
		}
		name := filepath.Join(dir, stem+".json")
		if gz {
			name += ".gz"
		}
		fh, err := os.Create(name)
		if err != nil {
			tb.Fatal(err)
		}
		if gz {
			gw := gzip.NewWriter(fh)
			_, err = gw.Write(b)
			if cerr := gw.Close(); err == nil {
				err = cerr
			}
		} else {
			_, err = fh.Write(b)
		}
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			tb.Fatal(err)
		}
	}
}

// Docs returns the registry documents keyed by file stem.
func Docs() map[string]any {
	return map[string]any{
		model.FileS:       ensemble("S", sModels()),
		model.FileC:       ensemble("C", cModels()),
		model.FileFungi:   ensemble("Fungi", fungiModels()),
		model.FileToxin:   ensemble("Toxin", toxinModels()),
		model.FileWeights: map[string]any{"matrices": weightMatrices()},
	}
}

func ensemble(name string, models []map[string]any) map[string]any {
	return map[string]any{"name": name, "models": models}
}

func logistic(name string, w []float64, b float64) map[string]any {
	return map[string]any{"kind": "logistic", "name": name, "weights": w, "intercept": b}
}

// S: mean smoothed hydrophobicity of the first 30 residues, minus charges.
func sModels() []map[string]any {
	var out []map[string]any
	for i, k := range []float64{0.10, 0.15, 0.20} {
		w := make([]float64, model.SDim)
		for j := 0; j < 30; j++ {
			w[j] = k
		}
		w[90], w[91] = -0.3, -0.3 // R, K counts
		out = append(out, logistic("S"+string(rune('1'+i)), w, -3))
	}
	return out
}

// C: sum of per-position weights, shifted so a full motif is needed.
func cModels() []map[string]any {
	var out []map[string]any
	for i := 0; i < CModels; i++ {
		w := make([]float64, model.CDim)
		for j := range w {
			w[j] = 1
		}
		out = append(out, logistic("C"+string(rune('1'+i)), w, -2-0.1*float64(i)))
	}
	return out
}

// Matrix i rewards A at window positions 12 and 14 (A-x-A before the
// cleavage point at offset 15) and charges a small positional cost.
func weightMatrices() []map[string]any {
	var out []map[string]any
	for i := 0; i < CModels; i++ {
		positions := make([]map[string]float64, model.WindowLen)
		for p := range positions {
			col := map[string]float64{}
			for a := 0; a < len(sequence.Alphabet); a++ {
				col[sequence.Alphabet[a:a+1]] = -0.01 * float64(a%3)
			}
			if p == 12 || p == 14 {
				col["A"] = 2 + 0.05*float64(i)
			}
			positions[p] = col
		}
		out = append(out, map[string]any{"name": "W" + string(rune('1'+i)), "positions": positions})
	}
	return out
}

// Fungi: one single-split forest on the S count plus one logistic on M.
func fungiModels() []map[string]any {
	sIdx := sequence.Index('S')
	forest := map[string]any{
		"kind":       "forest",
		"name":       "F1",
		"n_features": model.FungiDim,
		"trees": []map[string]any{{
			"feature":   []int{sIdx, -2, -2},
			"threshold": []float64{3.5, 0, 0},
			"left":      []int{1, -1, -1},
			"right":     []int{2, -1, -1},
			"value":     []float64{0, 0.2, 0.9},
		}},
	}
	w := make([]float64, model.FungiDim)
	w[sequence.Index('M')] = 1
	return []map[string]any{forest, logistic("F2", w, -0.5)}
}

// Toxin: hydrophobic and cysteine-poor.
func toxinModels() []map[string]any {
	var out []map[string]any
	for i, k := range []float64{0.05, 0.1} {
		w := make([]float64, model.ToxinDim)
		for j := 0; j < 23; j++ {
			w[j] = k
		}
		out = append(out, logistic("T"+string(rune('1'+i)), w, -1))
	}
	return out
}
