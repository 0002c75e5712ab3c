package translate

import "github.com/nextstrain/nextclade-core/internal/alphabet"

// FrameShift is an alignment-coordinate range, local to one CDS's
// extracted (unstripped) nucleotides, over which the reading frame was
// knocked out of register.
type FrameShift struct {
	Begin, End int // half-open, indices into the extracted alignment columns
}

// DetectFrameShifts walks the extracted (unstripped) CDS's aligned
// columns and tracks a running frame offset: a reference-gap column
// (an insertion) advances it by -1 mod 3, a query-gap column (a
// deletion) by +1 mod 3. A shift range opens the first time the
// running offset becomes nonzero and closes the column the offset
// returns to zero, per spec.md §4.3 step 2.
func DetectFrameShifts(extractedRef, extractedQry []byte) []FrameShift {
	var shifts []FrameShift
	frame := 0
	open := -1

	for i := 0; i < len(extractedRef); i++ {
		refGap := alphabet.IsGap(extractedRef[i])
		qryGap := alphabet.IsGap(extractedQry[i])
		switch {
		case refGap && !qryGap:
			frame = mod3(frame - 1)
		case qryGap && !refGap:
			frame = mod3(frame + 1)
		}

		if frame != 0 && open == -1 {
			open = i
		} else if frame == 0 && open != -1 {
			shifts = append(shifts, FrameShift{Begin: open, End: i + 1})
			open = -1
		}
	}
	if open != -1 {
		shifts = append(shifts, FrameShift{Begin: open, End: len(extractedRef)})
	}
	return shifts
}

func mod3(x int) int {
	x %= 3
	if x < 0 {
		x += 3
	}
	return x
}
