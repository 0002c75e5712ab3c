package qc

import "github.com/nextstrain/nextclade-core/internal/coord"

// FrameShiftsResult is the FrameShifts rule's outcome: penalizes any
// frame shift not on the dataset's ignore list, one fixed weight per
// occurrence (spec.md §4.6: "count × weight"). No retrieved source for
// this rule was present in the pack, so it's authored directly from
// the spec table row and qc_config.rs's QcRulesConfigFrameShifts
// shape.
type FrameShiftsResult struct {
	Score               float64
	Status              Status
	UnignoredFrameShifts []GeneFrameShift
}

func (r *FrameShiftsResult) RuleScore() float64 { return r.Score }

func ruleFrameShifts(shifts []GeneFrameShift, config FrameShiftsConfig) *FrameShiftsResult {
	if !config.Enabled {
		return nil
	}
	var unignored []GeneFrameShift
	for _, fs := range shifts {
		// FrameShift.Begin/End are nucleotide-column indices into the
		// extracted CDS; the ignore list names codon ranges, so convert.
		r := coord.NewAaRefRange(fs.Shift.Begin/3, (fs.Shift.End+2)/3)
		if !containsFrameShiftLocation(config.IgnoredFrameShifts, fs.GeneName, r) {
			unignored = append(unignored, fs)
		}
	}
	score := float64(len(unignored)) * config.ScoreWeight
	return &FrameShiftsResult{Score: score, Status: StatusFromScore(score), UnignoredFrameShifts: unignored}
}
