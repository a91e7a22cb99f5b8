package output

import (
	"strings"
	"testing"
)

func TestFormats_Stable(t *testing.T) {
	if FormatTSV != "tsv" || FormatJSON != "json" || FormatJSONL != "jsonl" {
		t.Fatalf("output format constants changed")
	}
}

func TestTSVHeader_MatchesColumns(t *testing.T) {
	if TSVHeader != strings.Join(Columns, "\t") {
		t.Fatalf("TSVHeader and Columns disagree:\n%q", TSVHeader)
	}
	if len(Columns) != 14 {
		t.Fatalf("want 14 columns, got %d", len(Columns))
	}
}

func TestExtension(t *testing.T) {
	if Extension(FormatTSV) != ".csv" || Extension(FormatJSON) != ".json" || Extension(FormatJSONL) != ".jsonl" {
		t.Fatal("extensions changed")
	}
}
