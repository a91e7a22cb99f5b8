package score

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"razor/internal/cleavage"
	"razor/internal/features"
	"razor/internal/model"
	"razor/internal/model/modeltest"
	"razor/internal/sequence"
)

const secreted = "MKKLLLALLAAFLAVSAQAAPAQTESNTTAAPLQ"

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{nil, 0},
		{[]float64{0.3}, 0.3},
		{[]float64{0.9, 0.1, 0.5}, 0.5},
		{[]float64{0.4, 0.1, 0.9, 0.6}, 0.5},
	}
	for _, c := range cases {
		if got := Median(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Median(%v)=%v want %v", c.in, got, c.want)
		}
	}
	in := []float64{3, 1, 2}
	Median(in)
	if !reflect.DeepEqual(in, []float64{3, 1, 2}) {
		t.Fatal("Median sorted its input")
	}
}

func TestRound_HalfEven(t *testing.T) {
	if Round(0.125, 2) != 0.12 || Round(0.135, 2) != 0.14 || Round(0.5, 0) != 0 || Round(0.987, 2) != 0.99 {
		t.Fatalf("half-even rounding broken: %v %v %v %v", Round(0.125, 2), Round(0.135, 2), Round(0.5, 0), Round(0.987, 2))
	}
}

func TestLabels(t *testing.T) {
	got := Labels([]float64{0.2, 0.5, 0.51})
	if !reflect.DeepEqual(got, []int{0, 0, 1}) {
		t.Fatalf("got %v", got)
	}
}

func TestBestCleavage(t *testing.T) {
	scan := cleavage.Result{
		Windows: 30,
		Scores:  []float64{0.6, 0.93, 0.93, 0.1, 0.7},
		Sites:   []int{18, 24, 31, 15, 20},
	}
	if got := BestCleavage(scan); got != 24 {
		t.Fatalf("global argmax: got %d want 24 (first of ties)", got)
	}
	scan.Scores = []float64{0.3, 0.49, 0.1, 0.2, 0.4}
	if got := BestCleavage(scan); got != 0 {
		t.Fatalf("below threshold: got %d", got)
	}
	if got := BestCleavage(cleavage.Result{}); got != 0 {
		t.Fatalf("degenerate scan: got %d", got)
	}
}

func TestAggregate(t *testing.T) {
	scan := cleavage.Result{Windows: 2, Scores: []float64{0.8, 0.6}, Sites: []int{16, 15},
		Curves: [][]float64{{0.1, 0.8}, {0.6, 0.2}}}
	r := Aggregate([]float64{0.876, 0.444, 0.915}, scan, []float64{0.2, 0.9}, []float64{0.1})
	if !reflect.DeepEqual(r.YScores, []float64{0.88, 0.44, 0.92}) {
		t.Fatalf("YScores=%v", r.YScores)
	}
	if !reflect.DeepEqual(r.SPPrediction, []int{1, 0, 1}) || r.SPScore != 0.88 {
		t.Fatalf("SP=%v score=%v", r.SPPrediction, r.SPScore)
	}
	if r.Cleavage != 16 || !reflect.DeepEqual(r.ProbableCleavage, []int{16, 15}) {
		t.Fatalf("cleavage=%d sites=%v", r.Cleavage, r.ProbableCleavage)
	}
	if math.Abs(r.FungiMedian-0.55) > 1e-12 || !reflect.DeepEqual(r.FungiPrediction, []int{0, 1}) {
		t.Fatalf("fungi median=%v labels=%v", r.FungiMedian, r.FungiPrediction)
	}
	if r.ToxinMedian != 0.1 || r.ToxinPrediction[0] != 0 {
		t.Fatalf("toxin %v %v", r.ToxinMedian, r.ToxinPrediction)
	}
}

func TestPredictor_EndToEnd(t *testing.T) {
	reg := modeltest.Registry(t)
	p, err := NewPredictor(reg, 80)
	if err != nil {
		t.Fatal(err)
	}
	r, err := p.Predict("sp1", secreted)
	if err != nil {
		t.Fatal(err)
	}
	if r.Accession != "sp1" || r.Sequence != secreted {
		t.Fatalf("identity fields: %q %q", r.Accession, r.Sequence)
	}
	if len(r.YScores) != reg.S.Len() || len(r.MaxC) != 5 || len(r.ProbableCleavage) != 5 {
		t.Fatalf("lengths: y=%d c=%d sites=%d", len(r.YScores), len(r.MaxC), len(r.ProbableCleavage))
	}
	for _, site := range r.ProbableCleavage {
		if site < cleavage.Offset {
			t.Fatalf("site %d < 15", site)
		}
	}
	if len(r.FungiScores) != reg.Fungi.Len() || len(r.ToxinScores) != reg.Toxin.Len() {
		t.Fatalf("fungi=%d toxin=%d", len(r.FungiScores), len(r.ToxinScores))
	}
	// 34 residues < max_scan 80 → clamp warning
	if len(r.Warnings) == 0 {
		t.Fatal("expected a max_scan clamp warning")
	}
}

func TestPredictor_Deterministic(t *testing.T) {
	p, err := NewPredictor(modeltest.Registry(t), 45)
	if err != nil {
		t.Fatal(err)
	}
	a, err := p.Predict("x", secreted+strings.Repeat("G", 30))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := p.Predict("x", secreted+strings.Repeat("G", 30))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs differ")
	}
}

func TestPredictor_InvalidResidue(t *testing.T) {
	p, err := NewPredictor(modeltest.Registry(t), 45)
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Predict("bad", "MKT*LLL")
	var ve *sequence.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestDimensionsAgree(t *testing.T) {
	if features.GlobalLen != model.SDim || features.FungalLen != model.FungiDim || features.ToxinLen != model.ToxinDim {
		t.Fatal("feature lengths and registry dimensions disagree")
	}
}
