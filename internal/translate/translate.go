package translate

import (
	"sort"

	"github.com/nextstrain/nextclade-core/internal/align"
	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/genemap"
	"github.com/nextstrain/nextclade-core/internal/scoring"
)

// Params holds translation-engine tunables named in spec.md §4.3.
type Params struct {
	Aa                 scoring.AaParams
	NoTranslatePastStop bool
}

func DefaultParams() Params {
	return Params{Aa: scoring.DefaultAaParams()}
}

// Result is one CDS's translation output (spec.md §4.3, "Output per
// CDS").
type Result struct {
	CdsName           string
	QryPeptide        []byte
	RefPeptide        []byte
	Insertions        []align.Insertion
	FrameShifts       []FrameShift
	SequencedRanges   []coord.AaRefRange
	UnsequencedRanges []coord.AaRefRange
}

// protectFirstCodon replaces any query gap within the CDS's first
// codon with N, so the gap-column-stripping step below can't shorten
// the first codon and shift every downstream reading frame (spec.md
// §4.3 step 4).
func protectFirstCodon(extractedQry []byte) {
	n := 3
	if len(extractedQry) < n {
		n = len(extractedQry)
	}
	for i := 0; i < n; i++ {
		if alphabet.IsGap(extractedQry[i]) {
			extractedQry[i] = alphabet.NucN
		}
	}
}

// maskFrameShifts replaces every query column covered by a frame
// shift with N (spec.md §4.3 step 5's "mask frame-shifted nucleotide
// columns with N").
func maskFrameShifts(extractedQry []byte, shifts []FrameShift) {
	for _, s := range shifts {
		for i := s.Begin; i < s.End && i < len(extractedQry); i++ {
			if !alphabet.IsGap(extractedQry[i]) {
				extractedQry[i] = alphabet.NucN
			}
		}
	}
}

// stripRefGapColumns removes every column where the reference is
// gapped (an insertion relative to the CDS's own reading frame),
// leaving both sequences at exactly the CDS's declared nucleotide
// length (spec.md §4.3 step 5's "strip all gap columns").
func stripRefGapColumns(extractedRef, extractedQry []byte) (ref, qry []byte) {
	ref = make([]byte, 0, len(extractedRef))
	qry = make([]byte, 0, len(extractedQry))
	for i := range extractedRef {
		if alphabet.IsGap(extractedRef[i]) {
			continue
		}
		ref = append(ref, extractedRef[i])
		qry = append(qry, extractedQry[i])
	}
	return ref, qry
}

// TranslateCds runs the full per-CDS pipeline of spec.md §4.3: extract,
// detect and mask frame shifts, strip, translate, pairwise-align the
// peptides, and strip peptide insertions. alignRange is the query's
// overall nucleotide alignment range (internal/mutation.NucMutations'
// AlignRange), used to compute which codons of the CDS the query
// actually covers.
func TranslateCds(cds *genemap.Cds, alignedRef, alignedQry []byte, cm *coord.CoordMap, alignRange coord.NucRefGlobalRange, params Params) (Result, error) {
	extractedRef, extractedQry, err := ExtractCds(cds, alignedRef, alignedQry, cm)
	if err != nil {
		return Result{}, errutil.Wrap(err, "translating CDS "+cds.Name)
	}

	shifts := DetectFrameShifts(extractedRef, extractedQry)

	qryMasked := append([]byte(nil), extractedQry...)
	protectFirstCodon(qryMasked)
	maskFrameShifts(qryMasked, shifts)

	refStripped, qryStripped := stripRefGapColumns(extractedRef, qryMasked)

	refPeptideFull := TranslateSequence(refStripped)
	qryPeptideFull := TranslateSequence(qryStripped)

	if params.NoTranslatePastStop {
		qryPeptideFull = truncateAtStop(qryPeptideFull)
	}

	alignedRefPep, alignedQryPep := alignPeptides(refPeptideFull, qryPeptideFull, params.Aa)
	stripped := align.StripInsertions(alignedQryPep, alignedRefPep)

	sequenced, unsequenced := sequencedRanges(cds, alignRange, len(stripped.RefSeq))

	return Result{
		CdsName:           cds.Name,
		QryPeptide:        stripped.QrySeq,
		RefPeptide:        stripped.RefSeq,
		Insertions:        stripped.Insertions,
		FrameShifts:       shifts,
		SequencedRanges:   sequenced,
		UnsequencedRanges: unsequenced,
	}, nil
}

// truncateAtStop cuts a peptide at (and excluding) its first stop
// codon, if any.
func truncateAtStop(pep []byte) []byte {
	for i, aa := range pep {
		if aa == alphabet.AaStop {
			return pep[:i]
		}
	}
	return pep
}

// sequencedRanges reports which codon positions of a CDS's peptide
// were actually covered by the query's own nucleotide alignment range,
// per spec.md §4.3 step 7 (original_source's
// calculate_aa_alignment_ranges_in_place/calculate_aa_unsequenced_ranges).
// Each segment's reference range is intersected with alignRange, the
// overlap is shifted into CDS-local nucleotide coordinates (segments
// are concatenated in declaration order, matching ExtractCds), and
// converted to a codon range; unsequenced is the complement of the
// merged sequenced ranges within [0, cdsLenCodon).
func sequencedRanges(cds *genemap.Cds, alignRange coord.NucRefGlobalRange, cdsLenCodon int) (sequenced, unsequenced []coord.AaRefRange) {
	prevSegmentEnd := 0
	for _, seg := range cds.Segments {
		segBegin, _ := seg.GlobalRange.Ints()
		if included, ok := coord.IntersectOrNone(alignRange, seg.GlobalRange); ok {
			b, e := included.Ints()
			localBegin := b - segBegin + prevSegmentEnd
			localEnd := e - segBegin + prevSegmentEnd
			sequenced = append(sequenced, nucLocalRangeToCodonRange(localBegin, localEnd))
		}
		prevSegmentEnd += seg.Len()
	}
	return sequenced, unsequencedComplement(sequenced, cdsLenCodon)
}

// nucLocalRangeToCodonRange maps a CDS-local nucleotide range to the
// codon range it overlaps, rounding outward so a partially-covered
// codon still counts as sequenced (original_source's
// local_to_codon_range_exclusive, referenced but not retrieved in the
// example pack, so this rounding rule is authored from spec.md §4.3
// step 7's "codon ranges actually covered by data").
func nucLocalRangeToCodonRange(begin, end int) coord.AaRefRange {
	return coord.NewAaRefRange(begin/3, (end+2)/3)
}

// unsequencedComplement returns the gaps (and trailing remainder) of
// sequenced within [0, cdsLenCodon), mirroring
// calculate_aa_unsequenced_ranges's sort-then-walk.
func unsequencedComplement(sequenced []coord.AaRefRange, cdsLenCodon int) []coord.AaRefRange {
	sorted := append([]coord.AaRefRange(nil), sequenced...)
	sort.Slice(sorted, func(i, j int) bool {
		bi, _ := sorted[i].Ints()
		bj, _ := sorted[j].Ints()
		return bi < bj
	})

	var unsequenced []coord.AaRefRange
	prevEnd := 0
	for _, r := range sorted {
		b, e := r.Ints()
		if b > prevEnd {
			unsequenced = append(unsequenced, coord.NewAaRefRange(prevEnd, b))
		}
		if e > prevEnd {
			prevEnd = e
		}
	}
	if cdsLenCodon > prevEnd {
		unsequenced = append(unsequenced, coord.NewAaRefRange(prevEnd, cdsLenCodon))
	}
	return unsequenced
}
