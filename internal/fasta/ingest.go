package fasta

import (
	"fmt"
	"strings"

	"razor/internal/sequence"
)

// Ambiguous residues that make a record unusable.
const Ambiguous = "BJOUXZ"

// IngestError describes a record dropped before scoring.
type IngestError struct {
	Accession string
	Reason    string
}

func (e *IngestError) Error() string {
	if e.Accession == "" {
		return "fasta: " + e.Reason
	}
	return fmt.Sprintf("fasta: %s: %s", e.Accession, e.Reason)
}

// Canonicalize uppercases seq, replaces 'U' with 'C' and keeps the first
// maxScan+15 residues.
func Canonicalize(seq string, maxScan int) string {
	s := strings.ToUpper(seq)
	s = strings.ReplaceAll(s, "U", "C")
	if limit := maxScan + sequence.Flank; limit >= 0 && len(s) > limit {
		s = s[:limit]
	}
	return s
}

// Filter canonicalizes every record and drops the empty ones, those equal to
// "NONE" and those holding an ambiguous residue inside the kept prefix.
// The survivors keep their input order.
func Filter(recs []Record, maxScan int) (kept []Record, dropped []*IngestError) {
	kept = make([]Record, 0, len(recs))
	for _, r := range recs {
		s := Canonicalize(r.Seq, maxScan)
		switch {
		case s == "":
			dropped = append(dropped, &IngestError{Accession: r.ID, Reason: "empty sequence"})
		case s == "NONE":
			dropped = append(dropped, &IngestError{Accession: r.ID, Reason: "sequence is NONE"})
		case strings.ContainsAny(s, Ambiguous):
			i := strings.IndexAny(s, Ambiguous)
			dropped = append(dropped, &IngestError{
				Accession: r.ID,
				Reason:    fmt.Sprintf("ambiguous residue %q at %d", s[i], i+1),
			})
		default:
			kept = append(kept, Record{ID: r.ID, Seq: s})
		}
	}
	return kept, dropped
}
