// Package nextclade orchestrates the per-query analysis steps
// (internal/align, translate, mutation, placement, qc, motif) into one
// Result per query and exposes the concurrency surface
// (internal/pipeline) a caller drives a whole run through. Grounded on
// spec.md §6.3's output field list and on how the teacher's own
// top-level packages (e.g. synthesis, checks) sit above their internal
// building blocks as thin composition layers with no algorithm of
// their own.
package nextclade

import (
	"github.com/nextstrain/nextclade-core/internal/align"
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/graph"
	"github.com/nextstrain/nextclade-core/internal/motif"
	"github.com/nextstrain/nextclade-core/internal/mutation"
	"github.com/nextstrain/nextclade-core/internal/placement"
	"github.com/nextstrain/nextclade-core/internal/qc"
	"github.com/nextstrain/nextclade-core/internal/translate"
)

// Result is one query's complete analysis outcome, covering every
// field spec.md §6.3 lists. A query that failed before or during
// alignment carries only Index, Name, Desc and Err; every other field is
// left at its zero value.
type Result struct {
	Index int
	Name  string
	Desc  string

	// Err, when non-nil, is the per-query failure that stopped
	// analysis (spec.md §7's AlignmentFailure taxonomy entry); the
	// query still occupies its stream position in an ordered output.
	Err error

	AlignmentRange coord.NucRefGlobalRange
	AlignmentScore int32
	IsReverseComplement bool

	Substitutions []mutation.NucSub
	Deletions     []mutation.NucDel
	Insertions    []align.Insertion
	Missing       []mutation.NucRangeCall
	NonACGTNs     []mutation.NucRangeCall

	// CdsResults is keyed by CDS name; iteration in declaration order
	// is the caller's responsibility via the gene map, not this map,
	// per spec.md §9's insertion-ordered-map design note (the
	// orchestration result has no single winning order across CDSes,
	// so this stays a map rather than adopting internal/orderedmap
	// itself).
	CdsResults map[string]CdsResult

	AaChangeGroups []mutation.AaChangeGroup

	Clade string

	PrivateNuc placement.PrivateNucMutations
	PrivateAa  map[string]placement.PrivateAaMutations

	NearestNodeKey  graph.NodeKey
	NearestNodeName string
	Divergence      float64
	Coverage        float64

	QC qc.Result

	CladeNodeAttrs map[string]string

	Phenotypes []PhenotypeValue

	PrimerChanges []mutation.PrimerChange

	AaMotifs       map[string][]motif.Aa
	AaMotifChanges map[string]motif.Changes

	Warnings     []string
	MissingCdses []string
}

// CdsResult is one CDS's contribution to a query's Result: its
// translation, the amino-acid substitutions/deletions/insertions
// called against it, and its unsequenced codon ranges.
type CdsResult struct {
	QryPeptide        []byte
	RefPeptide        []byte
	AaSubstitutions   []mutation.AaChange
	AaDeletions       []mutation.AaChange
	AaInsertions      []align.Insertion
	UnknownAaRanges   []coord.AaRefRange
	FrameShifts       []translate.FrameShift
}

// PhenotypeValue is one computed phenotype score for a query, per
// spec.md §6.1's "phenotype definitions".
type PhenotypeValue struct {
	Name  string
	Gene  string
	Value float64
}
