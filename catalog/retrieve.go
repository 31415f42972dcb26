package catalog

import "math"

// Threshold is the minimum similarity for a match. Retrieval is a linear scan over the
// catalog, which is fine for tens of tools and nothing more.
const Threshold = 0.75

type Match struct {
	Tool  ToolRecord
	Score float64
}

// Retrieve returns the tool most similar to query. Ties keep the earlier tool. Records whose
// embedding cannot be compared (zero norm, wrong dimension) are skipped. ok is false when the
// best score is below threshold; the match is zero when nothing could be compared.
func Retrieve(query []float32, tools []ToolRecord, threshold float64) (Match, bool) {
	best := Match{Score: math.Inf(-1)}
	found := false
	for _, t := range tools {
		score, err := Cosine(query, t.Embedding)
		if err != nil {
			continue
		}
		if score > best.Score {
			best = Match{Tool: t, Score: score}
			found = true
		}
	}
	if !found {
		return Match{}, false
	}
	if best.Score < threshold {
		return best, false
	}
	return best, true
}
