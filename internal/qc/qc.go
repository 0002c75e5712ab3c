// Package qc implements the independent, composable quality-control
// rules of spec.md §4.6 and combines them into an overall score and
// status, grounded on
// original_source/packages_rs/nextclade/src/qc/{qc_config,qc_run}.rs.
package qc

// Status is a rule's or the overall result's quality band.
type Status int

const (
	StatusGood Status = iota
	StatusMediocre
	StatusBad
)

func (s Status) String() string {
	switch s {
	case StatusMediocre:
		return "mediocre"
	case StatusBad:
		return "bad"
	default:
		return "good"
	}
}

// StatusFromScore bands a raw rule score into good (<30),
// mediocre ([30,100)), or bad (>=100), per spec.md §4.6/§3.
func StatusFromScore(score float64) Status {
	switch {
	case score >= 100:
		return StatusBad
	case score >= 30:
		return StatusMediocre
	default:
		return StatusGood
	}
}

// RuleResult is the common shape every rule contributes to the
// overall score; a rule that is disabled contributes no RuleResult at
// all (Go's nil stands in for Rust's Option::None).
type RuleResult interface {
	RuleScore() float64
}

// Result is the complete QC outcome for one query: every enabled
// rule's typed result, plus the combined score/status.
type Result struct {
	MissingData      *MissingDataResult
	MixedSites       *MixedSitesResult
	PrivateMutations *PrivateMutationsResult
	SnpClusters      *SnpClustersResult
	FrameShifts      *FrameShiftsResult
	StopCodons       *StopCodonsResult
	OverallScore     float64
	OverallStatus    Status
}

// Combine runs every configured rule over its already-computed inputs
// and aggregates overall score (sum of each enabled rule's score²/100,
// per spec.md §3 "QC result") and status.
func Combine(inputs Inputs, config Config) Result {
	var result Result
	result.MissingData = ruleMissingData(inputs.TotalMissing, config.MissingData)
	result.MixedSites = ruleMixedSites(inputs.TotalNonACGTN, config.MixedSites)
	result.PrivateMutations = rulePrivateMutations(inputs.Private, config.PrivateMutations)
	result.SnpClusters = ruleSnpClusters(inputs.Private.Substitutions, config.SnpClusters)
	result.FrameShifts = ruleFrameShifts(inputs.FrameShifts, config.FrameShifts)
	result.StopCodons = ruleStopCodons(inputs.StopCodons, config.StopCodons)

	if result.MissingData != nil {
		result.OverallScore += addScore(result.MissingData)
	}
	if result.MixedSites != nil {
		result.OverallScore += addScore(result.MixedSites)
	}
	if result.PrivateMutations != nil {
		result.OverallScore += addScore(result.PrivateMutations)
	}
	if result.SnpClusters != nil {
		result.OverallScore += addScore(result.SnpClusters)
	}
	if result.FrameShifts != nil {
		result.OverallScore += addScore(result.FrameShifts)
	}
	if result.StopCodons != nil {
		result.OverallScore += addScore(result.StopCodons)
	}
	result.OverallStatus = StatusFromScore(result.OverallScore)
	return result
}

// addScore squares and rescales one rule's score into its contribution
// to the overall sum, per spec.md §3 "Overall score = Σ
// (rule_score² / 100)". Taking RuleResult here (rather than a nil
// pointer check inside a single shared helper) sidesteps Go's typed-
// nil-interface trap: callers only invoke this once they've already
// confirmed the concrete pointer is non-nil.
func addScore(r RuleResult) float64 {
	v := r.RuleScore()
	return v * v * 0.01
}
