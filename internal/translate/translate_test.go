package translate

import (
	"bytes"
	"testing"

	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/scoring"
)

func TestTranslateCodonStandardTable(t *testing.T) {
	cases := []struct {
		codon string
		want  byte
	}{
		{"ATG", 'M'},
		{"TAA", '*'},
		{"TGG", 'W'},
		{"---", alphabet.AaGap},
		{"NNN", alphabet.AaUnknown},
		{"A-T", alphabet.AaUnknown},
	}
	for _, c := range cases {
		got := TranslateCodon([]byte(c.codon))
		if got != c.want {
			t.Errorf("TranslateCodon(%q) = %c, want %c", c.codon, got, c.want)
		}
	}
}

func TestTranslateSequence(t *testing.T) {
	got := TranslateSequence([]byte("ATGGGGTAA"))
	want := []byte("MG*")
	if !bytes.Equal(got, want) {
		t.Errorf("TranslateSequence = %s, want %s", got, want)
	}
}

// TestDetectFrameShiftsOpenClose mirrors spec.md §8's frame-shift
// testable property: a range is flagged iff (g_q - g_r) mod 3 != 0
// somewhere inside it, opening when the running frame goes nonzero
// and closing when it returns to zero.
func TestDetectFrameShiftsOpenClose(t *testing.T) {
	// cols: 0 A/A  1 A/A  2 -/C (ref gap)  3 A/- (qry gap)  4 T/T
	ref := []byte{'A', 'A', '-', 'A', 'T'}
	qry := []byte{'A', 'A', 'C', '-', 'T'}

	shifts := DetectFrameShifts(ref, qry)
	if len(shifts) != 1 {
		t.Fatalf("got %d frame shifts, want 1: %+v", len(shifts), shifts)
	}
	if shifts[0].Begin != 2 || shifts[0].End != 4 {
		t.Errorf("frame shift = %+v, want [2,4)", shifts[0])
	}
}

func TestDetectFrameShiftsNoneWhenInFrame(t *testing.T) {
	// A 3-nt insertion never disrupts the frame.
	ref := []byte{'A', '-', '-', '-', 'T'}
	qry := []byte{'A', 'C', 'C', 'C', 'T'}
	shifts := DetectFrameShifts(ref, qry)
	if len(shifts) != 0 {
		t.Errorf("expected no frame shifts for a 3-nt insertion, got %+v", shifts)
	}
}

func TestAlignPeptidesIdentical(t *testing.T) {
	ref := []byte("MGKT")
	qry := []byte("MGKT")
	params := scoring.DefaultAaParams()
	alignedRef, alignedQry := alignPeptides(ref, qry, params)
	if !bytes.Equal(alignedRef, ref) || !bytes.Equal(alignedQry, qry) {
		t.Errorf("identical peptides should align without gaps: ref=%s qry=%s", alignedRef, alignedQry)
	}
}

func TestAlignPeptidesSubstitution(t *testing.T) {
	ref := []byte("MGKT")
	qry := []byte("MGRT")
	params := scoring.DefaultAaParams()
	alignedRef, alignedQry := alignPeptides(ref, qry, params)
	if len(alignedRef) != len(alignedQry) {
		t.Fatalf("aligned lengths differ: %d vs %d", len(alignedRef), len(alignedQry))
	}
	diffs := 0
	for i := range alignedRef {
		if alignedRef[i] != alignedQry[i] {
			diffs++
		}
	}
	if diffs != 1 {
		t.Errorf("expected exactly one differing column, got %d (%s / %s)", diffs, alignedRef, alignedQry)
	}
}
