package coord

// CoordMap is a bidirectional mapping between reference-space and
// alignment-space nucleotide positions, built once from an aligned
// reference sequence (the reference as it came out of the aligner,
// with '-' gaps inserted). See original_source/.../coord/range.rs for
// the range arithmetic this builds on; the map construction itself
// follows the textual contract (spec's CoordMap section) since no
// matching coord_map.rs was retrieved in the example pack.
type CoordMap struct {
	alnToRef []NucRefGlobalPosition
	refToAln []NucAlnGlobalPosition
}

// NewCoordMap builds a CoordMap from an aligned reference sequence
// (nucleotides plus '-' gaps).
func NewCoordMap(refAligned []byte) *CoordMap {
	alnToRef := make([]NucRefGlobalPosition, len(refAligned))
	refToAln := make([]NucAlnGlobalPosition, 0, len(refAligned))

	refPos := 0
	for alnPos, b := range refAligned {
		if b == '-' {
			// A gap in the reference: the alignment position maps to
			// the most recent non-gap reference position (or 0 before
			// the first reference base has been seen).
			p := refPos - 1
			if p < 0 {
				p = 0
			}
			alnToRef[alnPos] = NewPosition[nucRefGlobalSpace](p)
			continue
		}
		alnToRef[alnPos] = NewPosition[nucRefGlobalSpace](refPos)
		refToAln = append(refToAln, NewPosition[nucAlnGlobalSpace](alnPos))
		refPos++
	}

	return &CoordMap{alnToRef: alnToRef, refToAln: refToAln}
}

// RefLength returns the length of the ungapped reference sequence this
// map was built from.
func (m *CoordMap) RefLength() int { return len(m.refToAln) }

// AlnLength returns the length of the aligned (gapped) sequence this
// map was built from.
func (m *CoordMap) AlnLength() int { return len(m.alnToRef) }

// AlnToRef maps an alignment-space position to the reference-space
// position of the most recent non-gap reference base at or before it.
func (m *CoordMap) AlnToRef(p NucAlnGlobalPosition) NucRefGlobalPosition {
	i := p.Int()
	if i < 0 {
		i = 0
	}
	if i >= len(m.alnToRef) {
		i = len(m.alnToRef) - 1
	}
	if i < 0 {
		return NewPosition[nucRefGlobalSpace](0)
	}
	return m.alnToRef[i]
}

// RefToAln maps a reference-space position to its alignment-space
// position.
func (m *CoordMap) RefToAln(p NucRefGlobalPosition) NucAlnGlobalPosition {
	i := p.Int()
	if i < 0 {
		i = 0
	}
	if i >= len(m.refToAln) {
		i = len(m.refToAln) - 1
	}
	if i < 0 {
		return NewPosition[nucAlnGlobalSpace](0)
	}
	return m.refToAln[i]
}

// RefRangeToAln maps a reference-space range to an alignment-space
// range, by mapping both endpoints; End is mapped as an exclusive
// bound, so it is translated via the position immediately before it
// when that position exists.
func (m *CoordMap) RefRangeToAln(r NucRefGlobalRange) NucAlnGlobalRange {
	begin := m.RefToAln(r.Begin)
	var end NucAlnGlobalPosition
	if r.End.Int() <= 0 {
		end = begin
	} else {
		end = m.RefToAln(r.End.Sub(1)).Add(1)
	}
	return NewRange(begin, end)
}

// AlnRangeToRef maps an alignment-space range to a reference-space
// range, by mapping both endpoints through AlnToRef; End is translated
// via the position immediately before it.
func (m *CoordMap) AlnRangeToRef(r NucAlnGlobalRange) NucRefGlobalRange {
	begin := m.AlnToRef(r.Begin)
	var end NucRefGlobalPosition
	if r.End.Int() <= 0 {
		end = begin
	} else {
		end = m.AlnToRef(r.End.Sub(1)).Add(1)
	}
	return NewRange(begin, end)
}
