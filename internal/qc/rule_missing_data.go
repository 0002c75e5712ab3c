package qc

// MissingDataResult is the MissingData rule's outcome: penalizes
// queries with more Ns than a dataset-calibrated threshold allows.
type MissingDataResult struct {
	Score         float64
	Status        Status
	TotalMissing  int
}

func (r *MissingDataResult) RuleScore() float64 { return r.Score }

// ruleMissingData implements spec.md §4.6's MissingData row:
// `(missing − threshold) * 100 / (threshold − bias)`, clamped ≥ 0.
func ruleMissingData(totalMissing int, config MissingDataConfig) *MissingDataResult {
	if !config.Enabled {
		return nil
	}
	denom := config.MissingDataThreshold - config.ScoreBias
	score := 0.0
	if denom != 0 {
		score = (float64(totalMissing) - config.MissingDataThreshold) * 100 / denom
	}
	if score < 0 {
		score = 0
	}
	return &MissingDataResult{Score: score, Status: StatusFromScore(score), TotalMissing: totalMissing}
}
