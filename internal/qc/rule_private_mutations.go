package qc

// PrivateMutationsResult is the PrivateMutations rule's outcome:
// penalizes a query whose weighted private-mutation total exceeds the
// dataset's "typical" baseline by more than cutoff. Grounded on
// original_source/packages_rs/nextclade/src/qc/qc_rule_private_mutations.rs's
// rule_private_mutations.
type PrivateMutationsResult struct {
	Score                   float64
	Status                  Status
	NumReversionSubstitutions int
	NumLabeledSubstitutions   int
	NumUnlabeledSubstitutions int
	TotalDeletionRanges       int
	WeightedTotal             float64
	Excess                    float64
	Cutoff                    float64
}

func (r *PrivateMutationsResult) RuleScore() float64 { return r.Score }

func rulePrivateMutations(in PrivateMutationsInput, config PrivateMutationsConfig) *PrivateMutationsResult {
	if !config.Enabled {
		return nil
	}
	weightedTotal := 0.0 +
		config.WeightReversionSubstitutions*float64(in.ReversionCount) +
		config.WeightLabeledSubstitutions*float64(in.LabeledCount) +
		config.WeightUnlabeledSubstitutions*float64(in.UnlabeledCount) +
		float64(in.DeletionRangeCount)

	excess := weightedTotal - config.Typical
	clamped := excess
	if clamped < 0 {
		clamped = 0
	}
	score := 0.0
	if config.Cutoff != 0 {
		score = clamped * 100 / config.Cutoff
	}

	return &PrivateMutationsResult{
		Score:                     score,
		Status:                    StatusFromScore(score),
		NumReversionSubstitutions: in.ReversionCount,
		NumLabeledSubstitutions:   in.LabeledCount,
		NumUnlabeledSubstitutions: in.UnlabeledCount,
		TotalDeletionRanges:       in.DeletionRangeCount,
		WeightedTotal:             weightedTotal,
		Excess:                    excess,
		Cutoff:                    config.Cutoff,
	}
}
