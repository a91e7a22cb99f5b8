package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"

	"razor/internal/output"
	"razor/internal/score"
	"razor/pkg/api"
)

func results() []score.Result {
	return []score.Result{
		{Accession: "one", Sequence: "MKK", YScores: []float64{0.9}, SPPrediction: []int{1},
			SPScore: 0.9, MaxC: []float64{0.7}, ProbableCleavage: []int{21}, Cleavage: 21},
		{Accession: "two", Sequence: "MAA", YScores: []float64{0.1}, SPPrediction: []int{0},
			SPScore: 0.1, MaxC: []float64{0.2}, ProbableCleavage: []int{17}},
	}
}

func write(t *testing.T, format string, header bool) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartResultWriter(&buf, format, header, 1)
	for _, r := range results() {
		in <- r
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("%s writer: %v", format, err)
	}
	return buf.String()
}

func TestStartResultWriter_TSV(t *testing.T) {
	out := write(t, output.FormatTSV, true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 || lines[0] != output.TSVHeader {
		t.Fatalf("unexpected TSV:\n%s", out)
	}
	if !strings.HasPrefix(lines[1], "one\tMKK\t[0.9]\t[1]\t[0.7]\t[21]\t21\t0.9\t") {
		t.Fatalf("row 1: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "two\t") {
		t.Fatalf("row order changed: %q", lines[2])
	}
}

func TestStartResultWriter_TSVNoHeader(t *testing.T) {
	out := write(t, output.FormatTSV, false)
	if strings.HasPrefix(out, "Accession") {
		t.Fatalf("header written: %s", out)
	}
}

func TestStartResultWriter_JSON(t *testing.T) {
	var got []api.ResultV1
	if err := json.Unmarshal([]byte(write(t, output.FormatJSON, true)), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Accession != "one" || got[0].Cleavage != 21 || got[1].Cleavage != 0 {
		t.Fatalf("decoded %+v", got)
	}
}

func TestStartResultWriter_JSONL(t *testing.T) {
	sc := bufio.NewScanner(strings.NewReader(write(t, output.FormatJSONL, true)))
	var accs []string
	for sc.Scan() {
		var r api.ResultV1
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("line %q: %v", sc.Text(), err)
		}
		accs = append(accs, r.Accession)
	}
	if strings.Join(accs, ",") != "one,two" {
		t.Fatalf("jsonl accessions = %v", accs)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, syscall.EPIPE }

func TestJSONL_BrokenPipeSuppressed(t *testing.T) {
	in, done := StartResultJSONLWriter(brokenWriter{}, 1)
	in <- results()[0]
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("broken pipe should be suppressed, got %v", err)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(syscall.EPIPE) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("pipe errors not recognised")
	}
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("disk full")) {
		t.Fatal("false positive")
	}
}
