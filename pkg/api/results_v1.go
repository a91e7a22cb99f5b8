// pkg/api/results_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one scored sequence.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Accession string `json:"accession"`
	Sequence  string `json:"sequence"`

	// Signal peptide
	YScore           []float64   `json:"y_score"`
	SPPrediction     []int       `json:"sp_prediction"`
	SPScore          float64     `json:"sp_score"`
	MaxC             []float64   `json:"max_c"`
	ProbableCleavage []int       `json:"probable_cleavage_after"`
	Cleavage         int         `json:"cleavage_after_residue"` // 0 = none
	CCurves          [][]float64 `json:"c_curves,omitempty"`

	// Secondary classifiers
	FungiScores     []float64 `json:"fungi_scores"`
	FungiPrediction []int     `json:"fungi_prediction"`
	FungiMedian     float64   `json:"fungi_scores_median"`
	ToxinScores     []float64 `json:"toxin_scores"`
	ToxinPrediction []int     `json:"toxin_prediction"`
	ToxinMedian     float64   `json:"toxin_scores_median"`

	Warnings []string `json:"warnings,omitempty"`
}
