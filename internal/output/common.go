package output

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Columns of the result table, in order.
var Columns = []string{
	"Accession", "Sequence",
	"Y_score", "SP_Prediction", "Max_C",
	"Probable_Cleavage_after", "Cleavage_after_residue", "SP_score",
	"Fungi_Scores", "Fungi_Prediction", "Fungi_scores_Median",
	"Toxin_Scores", "Toxin_Prediction", "Toxin_scores_Median",
}

// TSVHeader is the canonical header row for TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "Accession\tSequence\tY_score\tSP_Prediction\tMax_C\tProbable_Cleavage_after\tCleavage_after_residue\tSP_score\tFungi_Scores\tFungi_Prediction\tFungi_scores_Median\tToxin_Scores\tToxin_Prediction\tToxin_scores_Median"

// Extension returns the file extension for a format. TSV keeps the .csv
// name the result table has always had.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	case FormatJSONL:
		return ".jsonl"
	default:
		return ".csv"
	}
}
