package qc

import (
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/mutation"
	"github.com/nextstrain/nextclade-core/internal/placement"
	"github.com/nextstrain/nextclade-core/internal/translate"
)

// StopCodon is one premature (non-terminal) stop codon found during
// translation.
type StopCodon struct {
	GeneName string
	Codon    int
}

// Inputs bundles every already-computed quantity the six rules read,
// so Combine itself stays pure composition with no knowledge of how
// any of these were derived.
type Inputs struct {
	TotalMissing  int
	TotalNonACGTN int
	Private       PrivateMutationsInput
	FrameShifts   []GeneFrameShift
	StopCodons    []StopCodon
}

// GeneFrameShift pairs a frame shift with the CDS it was found in, the
// shape FrameShiftsConfig.IgnoredFrameShifts is matched against.
type GeneFrameShift struct {
	GeneName string
	Shift    translate.FrameShift
}

// PrivateMutationsInput is the subset of placement.PrivateNucMutations
// the PrivateMutations and SnpClusters rules need, split the way
// qc_rule_private_mutations.rs's counts are: reversions, labeled, and
// unlabeled counted separately, deletions counted by contiguous range.
type PrivateMutationsInput struct {
	Substitutions        []mutation.NucSub // novel+reversion, sorted, for SnpClusters
	ReversionCount        int
	LabeledCount          int
	UnlabeledCount         int
	DeletionRangeCount    int
}

// NewPrivateMutationsInput derives the rule-facing counts from a
// placement.PrivateNucMutations, per qc_rule_private_mutations.rs's
// "count individual substitutions but contiguous deletion ranges"
// convention (placement already returns deletions as ranges, so no
// further grouping is needed here).
func NewPrivateMutationsInput(p placement.PrivateNucMutations) PrivateMutationsInput {
	labeledPositions := make(map[int]bool, len(p.Labeled))
	for _, l := range p.Labeled {
		labeledPositions[l.Sub.Pos.Int()] = true
	}
	unlabeled := 0
	for _, s := range p.Novel {
		if !labeledPositions[s.Pos.Int()] {
			unlabeled++
		}
	}
	return PrivateMutationsInput{
		Substitutions:      p.AllSubstitutions(),
		ReversionCount:     len(p.Reversions),
		LabeledCount:       len(p.Labeled),
		UnlabeledCount:     unlabeled,
		DeletionRangeCount: len(p.Deletions),
	}
}

func containsFrameShiftLocation(ignored []FrameShiftLocation, gene string, r coord.AaRefRange) bool {
	for _, loc := range ignored {
		if loc.GeneName == gene && loc.CodonRange == r {
			return true
		}
	}
	return false
}

func containsStopCodonLocation(ignored []StopCodonLocation, gene string, codon int) bool {
	for _, loc := range ignored {
		if loc.GeneName == gene && loc.Codon == codon {
			return true
		}
	}
	return false
}
