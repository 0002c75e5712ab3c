package translate

import (
	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/genemap"
)

// ExtractCds pulls a CDS's nucleotides out of an aligned reference and
// aligned query (both gap-inclusive, same length, as produced by
// internal/align), honoring each segment's reference range, strand,
// and declared order, per spec.md §4.3 step 1. Segments are
// concatenated in declaration order; a reverse-strand segment's
// extracted alignment slice is reverse-complemented before
// concatenation.
func ExtractCds(cds *genemap.Cds, alignedRef, alignedQry []byte, cm *coord.CoordMap) (extractedRef, extractedQry []byte, err error) {
	for _, seg := range cds.Segments {
		alnRange := segmentAlnRange(seg, cm)
		begin, end := alnRange.Ints()
		if begin < 0 || end > len(alignedRef) || begin > end {
			return nil, nil, errutil.New(errutil.KindTranslationFailure,
				"CDS segment range falls outside the aligned sequence")
		}
		segRef := alignedRef[begin:end]
		segQry := alignedQry[begin:end]
		if seg.Strand == genemap.StrandReverse {
			segRef = alphabet.ReverseComplement(segRef)
			segQry = alphabet.ReverseComplement(segQry)
		}
		extractedRef = append(extractedRef, segRef...)
		extractedQry = append(extractedQry, segQry...)
	}
	if len(extractedRef) == 0 {
		return nil, nil, errutil.New(errutil.KindTranslationFailure, "extracted CDS is empty")
	}
	allGap := true
	for _, b := range extractedQry {
		if !alphabet.IsGap(b) {
			allGap = false
			break
		}
	}
	if allGap {
		return nil, nil, errutil.New(errutil.KindTranslationFailure, "extracted CDS query is all gaps")
	}
	return extractedRef, extractedQry, nil
}

// segmentAlnRange maps one CDS segment's reference-global range into
// alignment-space, branching on the segment's WrappingKind per
// spec.md §4.1/§4.3 step 1 (original_source's cds_segment_aln_range):
// a segment that never crosses the circular reference's origin maps
// directly; one that starts a wrap is clamped to the end of the
// alignment (its GlobalRange.End is a virtual, past-the-origin
// position that has no alignment-space counterpart); one that is
// entirely between the origin-crossing segments spans the whole
// alignment; one that ends a wrap is clamped to the start of the
// alignment (its GlobalRange.Begin, folded back to the low end, has
// no meaningful alignment-space counterpart either).
func segmentAlnRange(seg genemap.Segment, cm *coord.CoordMap) coord.NucAlnGlobalRange {
	alnLen := cm.AlnLength()
	switch seg.Wrapping.Kind {
	case genemap.WrappingStart:
		begin := cm.RefToAln(seg.GlobalRange.Begin)
		return coord.NewRange(begin, coord.NewNucAlnGlobalPosition(alnLen))
	case genemap.WrappingCentral:
		return coord.NewNucAlnGlobalRange(0, alnLen)
	case genemap.WrappingEnd:
		end := cm.RefToAln(seg.GlobalRange.End.Sub(1)).Add(1)
		return coord.NewRange(coord.NewNucAlnGlobalPosition(0), end)
	default:
		return cm.RefRangeToAln(seg.GlobalRange)
	}
}
