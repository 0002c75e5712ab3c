package align

import "sort"

// Insertion is a run of query bases with no corresponding reference
// position. Pos is the 0-based reference position *after* which the
// insertion occurs; a leading insertion (before reference position 0)
// uses Pos -1, per spec.md §3 "Alignment outputs" and grounded on
// original_source/packages_rs/nextclade/src/align/insertions_strip.rs.
type Insertion struct {
	Pos int
	Seq []byte
}

// StripResult is the gap-free query and reference plus the extracted
// insertions.
type StripResult struct {
	QrySeq     []byte
	RefSeq     []byte
	Insertions []Insertion
}

// StripInsertions removes reference-gap columns from an aligned
// (ref, qry) pair, collecting each maximal run of consecutive
// reference gaps into an Insertion. The two inputs must have equal
// length (the output of runBacktrace always satisfies this).
func StripInsertions(alignedQry, alignedRef []byte) StripResult {
	qryStripped := make([]byte, 0, len(alignedRef))
	refStripped := make([]byte, 0, len(alignedRef))
	var insertions []Insertion

	insertionStart := -1
	refPos := -1
	var current []byte

	for i := 0; i < len(alignedRef); i++ {
		c := alignedRef[i]
		if c == '-' {
			if len(current) == 0 {
				insertionStart = refPos
			}
			current = append(current, alignedQry[i])
			continue
		}
		refStripped = append(refStripped, c)
		qryStripped = append(qryStripped, alignedQry[i])
		refPos++
		if len(current) > 0 {
			insertions = append(insertions, Insertion{Pos: insertionStart, Seq: current})
			current = nil
			insertionStart = -1
		}
	}
	if len(current) > 0 {
		insertions = append(insertions, Insertion{Pos: insertionStart, Seq: current})
	}

	sort.Slice(insertions, func(i, j int) bool {
		if insertions[i].Pos != insertions[j].Pos {
			return insertions[i].Pos < insertions[j].Pos
		}
		return len(insertions[i].Seq) < len(insertions[j].Seq)
	})

	return StripResult{QrySeq: qryStripped, RefSeq: refStripped, Insertions: insertions}
}
