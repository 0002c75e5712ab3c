package qc

// MixedSitesResult is the MixedSites rule's outcome: penalizes
// queries carrying more ambiguous (non-ACGTN) sites than expected.
type MixedSitesResult struct {
	Score           float64
	Status          Status
	TotalMixedSites int
}

func (r *MixedSitesResult) RuleScore() float64 { return r.Score }

// ruleMixedSites implements spec.md §4.6's MixedSites row:
// `count * 100 / mixed_sites_threshold`, clamped ≥ 0.
func ruleMixedSites(totalNonACGTN int, config MixedSitesConfig) *MixedSitesResult {
	if !config.Enabled {
		return nil
	}
	score := 0.0
	if config.MixedSitesThreshold != 0 {
		score = float64(totalNonACGTN) * 100 / float64(config.MixedSitesThreshold)
	}
	if score < 0 {
		score = 0
	}
	return &MixedSitesResult{Score: score, Status: StatusFromScore(score), TotalMixedSites: totalNonACGTN}
}
