package features

import "razor/internal/sequence"

// Per-residue physicochemical channels.
//
//	hydrophobicity: Kyte & Doolittle, J. Mol. Biol. 157:105-132 (1982)
//	flexibility:    normalized B-values, Vihinen et al., Proteins 19(2):141-9 (1994)
//	solubility:     Solubility-Weighted Index, Bhandari et al., Bioinformatics (2020)
type scale struct {
	Hydro, Flex, SWI float64
}

var scales = map[byte]scale{
	'R': {-4.5, 1.008, 0.771},
	'K': {-3.9, 1.102, 0.927},
	'N': {-3.5, 1.048, 0.86},
	'D': {-3.5, 1.068, 0.908},
	'Q': {-3.5, 1.037, 0.789},
	'E': {-3.5, 1.094, 0.988},
	'H': {-3.2, 0.95, 0.895},
	'P': {-1.6, 1.049, 0.824},
	'Y': {-1.3, 0.929, 0.611},
	'W': {-0.9, 0.904, 0.637},
	'S': {-0.8, 1.046, 0.744},
	'T': {-0.7, 0.997, 0.81},
	'G': {-0.4, 1.031, 0.8},
	'A': {1.8, 0.984, 0.836},
	'M': {1.9, 0.952, 0.63},
	'C': {2.5, 0.906, 0.521},
	'F': {2.8, 0.915, 0.585},
	'L': {3.8, 0.935, 0.655},
	'V': {4.2, 0.931, 0.736},
	'I': {4.5, 0.927, 0.678},
}

// table is scales indexed by sequence.Index for the hot paths.
var table [len(sequence.Alphabet)]scale

func init() {
	for i := 0; i < len(sequence.Alphabet); i++ {
		table[i] = scales[sequence.Alphabet[i]]
	}
}

// channels splits seq into its three per-residue profiles.
// seq must already be normalized.
func channels(seq string) (hydro, flex, swi []float64) {
	hydro = make([]float64, len(seq))
	flex = make([]float64, len(seq))
	swi = make([]float64, len(seq))
	for i := 0; i < len(seq); i++ {
		s := table[sequence.Index(seq[i])]
		hydro[i], flex[i], swi[i] = s.Hydro, s.Flex, s.SWI
	}
	return hydro, flex, swi
}

// counts returns how often each residue of order occurs in seq.
func counts(seq, order string) []float64 {
	var n [256]int
	for i := 0; i < len(seq); i++ {
		n[seq[i]]++
	}
	out := make([]float64, len(order))
	for i := 0; i < len(order); i++ {
		out[i] = float64(n[order[i]])
	}
	return out
}
