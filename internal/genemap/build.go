package genemap

import "github.com/nextstrain/nextclade-core/internal/coord"

// RawSegment is the pre-assembly description of a CDS segment, as
// parsed straight off a GFF3 feature before local coordinates and
// wrapping classification are computed.
type RawSegment struct {
	ID              string
	Name            string
	GlobalRange     coord.NucRefGlobalRange
	Strand          Strand
	WrapsFromOrigin bool
}

// BuildCds assembles a Cds from raw per-segment global ranges (already
// in the order they should be concatenated along the CDS, which for a
// reverse-strand CDS is reference-descending), filling in each
// segment's local range, frame and phase. refLength is the length of
// the (circular) reference sequence, used to detect origin-wrapping
// segments per spec.md §4.1: a segment whose GlobalRange extends past
// refLength is the start of a wrap; one that begins at/after refLength
// (folded back to the low end) is its central or trailing continuation.
func BuildCds(id, name string, rawSegments []RawSegment, refLength int) *Cds {
	segments := make([]Segment, len(rawSegments))
	localBegin := 0
	wrapIndex := 0
	inWrap := false
	for i, raw := range rawSegments {
		length := raw.GlobalRange.Len()

		wrapping := NonWrappingPart()
		switch {
		case raw.GlobalRange.End.Int() > refLength:
			wrapping = WrappingPart{Kind: WrappingStart, Index: wrapIndex}
			inWrap = true
		case raw.WrapsFromOrigin || inWrap:
			if i == len(rawSegments)-1 {
				wrapping = WrappingPart{Kind: WrappingEnd, Index: wrapIndex}
				inWrap = false
				wrapIndex++
			} else {
				wrapping = WrappingPart{Kind: WrappingCentral, Index: wrapIndex}
			}
		}

		segments[i] = Segment{
			ID:          raw.ID,
			Name:        raw.Name,
			GlobalRange: raw.GlobalRange,
			LocalRange:  coord.NewNucRefLocalRange(localBegin, localBegin+length),
			Strand:      raw.Strand,
			Frame:       mod3(raw.GlobalRange.Begin.Int()),
			Phase:       mod3(localBegin),
			Wrapping:    wrapping,
		}
		localBegin += length
	}
	return &Cds{ID: id, Name: name, Segments: segments}
}

func mod3(x int) int {
	m := x % 3
	if m < 0 {
		m += 3
	}
	return m
}
