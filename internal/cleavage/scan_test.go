package cleavage

import (
	"errors"
	"strings"
	"testing"

	"razor/internal/model"
	"razor/internal/model/modeltest"
	"razor/internal/sequence"
)

// motifSeq puts an A-x-A motif so that window offset 5 carries it at
// positions 12 and 14.
func motifSeq(n int) string {
	b := []byte(strings.Repeat("L", n))
	b[17], b[19] = 'A', 'A'
	return string(b)
}

func newScanner(t *testing.T) *Scanner {
	t.Helper()
	r := modeltest.Registry(t)
	s, err := NewScanner(r.Weights, r.C)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestValidateMaxScan(t *testing.T) {
	ms, w := ValidateMaxScan(10, 100)
	if ms != FallbackMaxScan || len(w) != 1 {
		t.Fatalf("10 → %d warns=%v", ms, w)
	}
	ms, w = ValidateMaxScan(80, 60)
	if ms != 60 || len(w) != 1 {
		t.Fatalf("80 on len 60 → %d warns=%v", ms, w)
	}
	ms, w = ValidateMaxScan(10, 30)
	if ms != 30 || len(w) != 2 {
		t.Fatalf("10 on len 30 → %d warns=%v", ms, w)
	}
	ms, w = ValidateMaxScan(16, 60)
	if ms != 16 || len(w) != 0 {
		t.Fatalf("16 should pass: %d %v", ms, w)
	}
}

func TestWindows(t *testing.T) {
	seq := motifSeq(60)
	w := Windows(seq, 45)
	if len(w) != 30 {
		t.Fatalf("windows=%d", len(w))
	}
	for i, s := range w {
		if len(s) != model.WindowLen || s != seq[i:i+30] {
			t.Fatalf("window %d=%q", i, s)
		}
	}
	// sequence shorter than max_scan+15 is padded with the filler
	w = Windows(strings.Repeat("L", 30), 30)
	if len(w) != 15 || !strings.HasSuffix(w[14], strings.Repeat(string(sequence.Filler), 14)) {
		t.Fatalf("padded windows: %d %q", len(w), w[len(w)-1])
	}
	if Windows("LLL", 15) != nil {
		t.Fatal("no window expected for max_scan=15")
	}
}

func TestScan_CorrectsMaxScan(t *testing.T) {
	s := newScanner(t)
	res, err := s.Scan(motifSeq(60), 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxScan != 45 || res.Windows != 30 || len(res.Warnings) != 1 {
		t.Fatalf("max_scan=%d windows=%d warns=%v", res.MaxScan, res.Windows, res.Warnings)
	}
	res, err = s.Scan(motifSeq(40), 80)
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxScan != 40 || res.Windows != 25 {
		t.Fatalf("clamp: max_scan=%d windows=%d", res.MaxScan, res.Windows)
	}
}

func TestScan_FindsMotif(t *testing.T) {
	s := newScanner(t)
	res, err := s.Scan(motifSeq(60), 45)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Scores) != 5 || len(res.Sites) != 5 || len(res.Curves) != 5 {
		t.Fatalf("per-pair lengths: %d %d %d", len(res.Scores), len(res.Sites), len(res.Curves))
	}
	for i := range res.Sites {
		if res.Sites[i] != 20 {
			t.Fatalf("pair %d site=%d want 20", i, res.Sites[i])
		}
		if res.Scores[i] <= 0.5 {
			t.Fatalf("pair %d score=%v", i, res.Scores[i])
		}
		if res.Scores[i] != res.Curves[i][5] {
			t.Fatalf("score is not the curve max")
		}
	}
}

func TestScan_SitesAtLeastOffset(t *testing.T) {
	s := newScanner(t)
	res, err := s.Scan(strings.Repeat("L", 60), 45)
	if err != nil {
		t.Fatal(err)
	}
	for i, site := range res.Sites {
		if site < Offset {
			t.Fatalf("pair %d site %d < %d", i, site, Offset)
		}
	}
}

func TestScan_RejectsNonCanonical(t *testing.T) {
	s := newScanner(t)
	_, err := s.Scan("MKX"+strings.Repeat("L", 40), 45)
	var ve *sequence.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestNewScanner_Pairing(t *testing.T) {
	r := modeltest.Registry(t)
	if _, err := NewScanner(r.Weights[:2], r.C); err == nil {
		t.Fatal("expected pairing error")
	}
}
