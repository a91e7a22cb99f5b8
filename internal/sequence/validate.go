// Package sequence canonicalizes protein sequences before feature construction.
package sequence

import (
	"fmt"
	"strings"
)

// Alphabet lists the 20 canonical residues. The order is the one used for
// composition features.
const Alphabet = "RKNDQEHPYWSTGAMCFLVI"

const (
	Filler         = 'S' // pads short sequences and short scan tails
	MinLength      = 30  // length of the N-terminal region the S score reads
	Flank          = 15  // residues scanned past max_scan
	DefaultMaxScan = 45
)

var index [256]int8

func init() {
	for i := range index {
		index[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		index[Alphabet[i]] = int8(i)
	}
}

// Index returns the position of residue r in Alphabet, or -1.
func Index(r byte) int { return int(index[r]) }

// IsCanonical reports whether r is one of the 20 canonical residues.
func IsCanonical(r byte) bool { return index[r] >= 0 }

// ValidationError reports a sequence the pipeline cannot score.
type ValidationError struct {
	Residue byte // offending residue, 0 when the error is about length
	Pos     int  // 1-based position of Residue
	Msg     string
}

func (e *ValidationError) Error() string {
	if e.Residue != 0 {
		return fmt.Sprintf("unknown residue %q at %d: %s", e.Residue, e.Pos, e.Msg)
	}
	return e.Msg
}

// Validate uppercases raw, replaces 'U' with 'C', keeps the first
// maxScan+15 residues and checks them against Alphabet. Results shorter
// than MinLength are right-padded with Filler.
func Validate(raw string, maxScan int) (string, error) {
	s := strings.ToUpper(raw)
	if limit := maxScan + Flank; limit >= 0 && len(s) > limit {
		s = s[:limit]
	}
	s = strings.ReplaceAll(s, "U", "C")
	if err := Check(s); err != nil {
		return "", err
	}
	if len(s) < MinLength {
		s += strings.Repeat(string(Filler), MinLength-len(s))
	}
	return s, nil
}

// Check returns a ValidationError for the first non-canonical residue of s.
func Check(s string) error {
	for i := 0; i < len(s); i++ {
		if !IsCanonical(s[i]) {
			return &ValidationError{
				Residue: s[i],
				Pos:     i + 1,
				Msg:     "only standard amino acid codes are allowed",
			}
		}
	}
	return nil
}

// Pad right-pads s with Filler up to n residues.
func Pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(string(Filler), n-len(s))
}
