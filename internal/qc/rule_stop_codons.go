package qc

// StopCodonsResult is the StopCodons rule's outcome: penalizes any
// premature stop codon not on the dataset's ignore list, one fixed
// weight per occurrence (spec.md §4.6: "count × weight"). No
// retrieved source for this rule was present in the pack, authored
// directly from the spec table row and qc_config.rs's
// QcRulesConfigStopCodons shape.
type StopCodonsResult struct {
	Score                float64
	Status               Status
	UnignoredStopCodons  []StopCodon
}

func (r *StopCodonsResult) RuleScore() float64 { return r.Score }

func ruleStopCodons(stopCodons []StopCodon, config StopCodonsConfig) *StopCodonsResult {
	if !config.Enabled {
		return nil
	}
	var unignored []StopCodon
	for _, sc := range stopCodons {
		if !containsStopCodonLocation(config.IgnoredStopCodons, sc.GeneName, sc.Codon) {
			unignored = append(unignored, sc)
		}
	}
	score := float64(len(unignored)) * config.ScoreWeight
	return &StopCodonsResult{Score: score, Status: StatusFromScore(score), UnignoredStopCodons: unignored}
}
