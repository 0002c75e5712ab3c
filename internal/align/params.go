package align

import "github.com/nextstrain/nextclade-core/internal/scoring"

// GapAlignmentSide controls the tie-break direction when a match and
// a gap transition score equally (spec.md §4.2 "DP").
type GapAlignmentSide int

const (
	GapAlignLeft GapAlignmentSide = iota
	GapAlignRight
)

// Params holds every alignment tunable named in spec.md §4.2.
type Params struct {
	Nuc scoring.NucParams

	MinLength            int
	MaxBandArea           int
	MaxAlignmentAttempts int

	GapAlignmentSide       GapAlignmentSide
	LeftTerminalGapsFree   bool
	RightTerminalGapsFree  bool
	RetryReverseComplement bool
}

func DefaultParams() Params {
	return Params{
		Nuc:                    scoring.DefaultNucParams(),
		MinLength:              100,
		MaxBandArea:            500_000_000,
		MaxAlignmentAttempts:   3,
		GapAlignmentSide:       GapAlignLeft,
		LeftTerminalGapsFree:   true,
		RightTerminalGapsFree:  true,
		RetryReverseComplement: true,
	}
}
