package mutation

import (
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/genemap"
)

// CdsCodonToNucRange maps a 0-based codon index within a CDS's
// concatenated, strand-corrected coding sequence (the same
// concatenation order internal/translate.ExtractCds builds) back to
// the 3 reference-global nucleotide positions it was spliced from.
// Used by group_adjacent_aa_subs_and_dels-equivalent grouping (§4.4)
// to attach "the underlying nucleotide substitutions/deletions" to an
// amino-acid change group.
func CdsCodonToNucRange(cds *genemap.Cds, codonIndex int) coord.NucRefGlobalRange {
	localBegin := codonIndex * 3
	localEnd := localBegin + 3

	offset := 0
	for _, seg := range cds.Segments {
		segLen := seg.Len()
		if localBegin < offset+segLen && localEnd > offset {
			// The codon falls (at least partly) within this segment;
			// for a well-formed CDS (length a multiple of 3 and every
			// segment a multiple of 3) a codon never spans a segment
			// boundary, so a single segment always covers it fully.
			localOffsetInSeg := localBegin - offset
			refBegin, refEnd := seg.GlobalRange.Ints()
			if seg.Strand == genemap.StrandReverse {
				end := refEnd - localOffsetInSeg
				begin := end - 3
				return coord.NewNucRefGlobalRange(begin, end)
			}
			begin := refBegin + localOffsetInSeg
			return coord.NewNucRefGlobalRange(begin, begin+3)
		}
		offset += segLen
	}
	return coord.NewNucRefGlobalRange(0, 0)
}
