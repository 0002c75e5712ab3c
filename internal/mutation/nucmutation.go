// Package mutation walks a pair of gap-stripped aligned sequences
// (nucleotide, once per query; amino acid, once per CDS) and calls
// substitutions, deletions, missing ranges, non-ACGTN ranges, and
// insertions, then groups adjacent amino-acid changes for reporting
// (spec.md §4.4 "Mutation caller").
package mutation

import "github.com/nextstrain/nextclade-core/internal/coord"

// NucSub is a single-position nucleotide substitution.
type NucSub struct {
	Pos    coord.NucRefGlobalPosition
	RefNuc byte
	QryNuc byte
}

// NucDel is a maximal run of consecutive reference positions where the
// query is gapped.
type NucDel struct {
	Range coord.NucRefGlobalRange
}

// NucRangeCall is a maximal run sharing one property, used for both
// missing (N) ranges and non-ACGTN ranges.
type NucRangeCall struct {
	Range coord.NucRefGlobalRange
}

// NucMutations is the full set of per-position nucleotide calls for
// one query, plus the alignment range they were computed over.
type NucMutations struct {
	Substitutions []NucSub
	Deletions     []NucDel
	Missing       []NucRangeCall
	NonACGTN      []NucRangeCall
	AlignRange    coord.NucRefGlobalRange
}

// columnClass classifies one column's query byte, in priority order
// (spec.md §4.4).
type columnClass int

const (
	classSubstitutable columnClass = iota // ACGT, possibly equal to ref
	classDeletion
	classMissing
	classNonACGTN
)

func classify(q byte) columnClass {
	switch {
	case isGapByte(q):
		return classDeletion
	case q == 'N':
		return classMissing
	case !isACGTByte(q):
		return classNonACGTN
	default:
		return classSubstitutable
	}
}

// CallNucMutations classifies every column of a gap-stripped aligned
// reference/query pair (as produced by align.StripInsertions: ref has
// no gaps, qry may) per spec.md §4.4. Column classification is
// mutually exclusive and prioritized: a qry gap is a deletion column;
// else qry 'N' is missing; else any other non-ACGT qry code is
// non-ACGTN; else a ref/qry mismatch is a substitution.
func CallNucMutations(refStripped, qryStripped []byte) NucMutations {
	var out NucMutations

	var delBegin, missingBegin, nonACGTNBegin = -1, -1, -1
	firstNonGap, lastNonGap := -1, -1

	closeDel := func(end int) {
		if delBegin != -1 {
			out.Deletions = append(out.Deletions, NucDel{Range: coord.NewNucRefGlobalRange(delBegin, end)})
			delBegin = -1
		}
	}
	closeMissing := func(end int) {
		if missingBegin != -1 {
			out.Missing = append(out.Missing, NucRangeCall{Range: coord.NewNucRefGlobalRange(missingBegin, end)})
			missingBegin = -1
		}
	}
	closeNonACGTN := func(end int) {
		if nonACGTNBegin != -1 {
			out.NonACGTN = append(out.NonACGTN, NucRangeCall{Range: coord.NewNucRefGlobalRange(nonACGTNBegin, end)})
			nonACGTNBegin = -1
		}
	}

	for i := 0; i < len(refStripped); i++ {
		q := normalizeUpper(qryStripped[i])
		class := classify(q)

		if class != classDeletion {
			closeDel(i)
		}
		if class != classMissing {
			closeMissing(i)
		}
		if class != classNonACGTN {
			closeNonACGTN(i)
		}

		switch class {
		case classDeletion:
			if delBegin == -1 {
				delBegin = i
			}
		case classMissing:
			if missingBegin == -1 {
				missingBegin = i
			}
		case classNonACGTN:
			if nonACGTNBegin == -1 {
				nonACGTNBegin = i
			}
		case classSubstitutable:
			r := normalizeUpper(refStripped[i])
			if r != q {
				out.Substitutions = append(out.Substitutions, NucSub{
					Pos:    coord.NewNucRefGlobalPosition(i),
					RefNuc: r,
					QryNuc: q,
				})
			}
		}

		if class != classDeletion {
			if firstNonGap == -1 {
				firstNonGap = i
			}
			lastNonGap = i
		}
	}

	closeDel(len(refStripped))
	closeMissing(len(refStripped))
	closeNonACGTN(len(refStripped))

	if firstNonGap == -1 {
		out.AlignRange = coord.NewNucRefGlobalRange(0, 0)
	} else {
		out.AlignRange = coord.NewNucRefGlobalRange(firstNonGap, lastNonGap+1)
	}

	return out
}

func isGapByte(b byte) bool { return b == '-' }

func isACGTByte(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	default:
		return false
	}
}

func normalizeUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
