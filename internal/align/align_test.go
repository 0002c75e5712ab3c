package align

import (
	"bytes"
	"testing"

	"github.com/nextstrain/nextclade-core/internal/scoring"
)

func fullStripes(qryLen, refLen int) []Stripe {
	stripes := make([]Stripe, qryLen+1)
	for i := range stripes {
		stripes[i] = Stripe{Begin: 0, End: refLen + 1}
	}
	return stripes
}

func flatGapOpenClose(refLen int, params scoring.NucParams) []int {
	vec := make([]int, refLen)
	for i := range vec {
		vec[i] = params.PenaltyGapOpen
	}
	return vec
}

// TestFindsTerminalInsertions reproduces
// original_source/packages_rs/nextclade/src/align/insertions_strip.rs's
// finds_terminal_insertions scenario.
func TestFindsTerminalInsertions(t *testing.T) {
	qry := []byte("ACCACGCTCGCATCATC")
	ref := []byte("---ACGCTCGCAT----")

	result := StripInsertions(qry, ref)

	want := []Insertion{
		{Pos: -1, Seq: []byte("ACC")},
		{Pos: 9, Seq: []byte("CATC")},
	}
	if len(result.Insertions) != len(want) {
		t.Fatalf("got %d insertions, want %d: %+v", len(result.Insertions), len(want), result.Insertions)
	}
	for i, ins := range result.Insertions {
		if ins.Pos != want[i].Pos || !bytes.Equal(ins.Seq, want[i].Seq) {
			t.Errorf("insertion %d = %+v, want %+v", i, ins, want[i])
		}
	}
	if !bytes.Equal(result.QrySeq, result.RefSeq) {
		t.Errorf("qry/ref stripped mismatch: %s vs %s", result.QrySeq, result.RefSeq)
	}
}

func TestAlignSimpleSubstitution(t *testing.T) {
	ref := []byte("ACGT")
	qry := []byte("ACCT")

	params := DefaultParams()
	nucParams := scoring.DefaultNucParams()
	gapOpenClose := flatGapOpenClose(len(ref), nucParams)
	stripes := fullStripes(len(qry), len(ref))

	mat := fillScoreMatrix(qry, ref, gapOpenClose, stripes, params)
	bt := runBacktrace(qry, ref, mat)

	wantScore := int32(3*nucParams.Match + nucParams.Mismatch)
	if bt.score != wantScore {
		t.Errorf("score = %d, want %d", bt.score, wantScore)
	}
	if !bytes.Equal(bt.alignedRef, ref) {
		t.Errorf("alignedRef = %s, want %s (no gaps expected)", bt.alignedRef, ref)
	}
	if !bytes.Equal(bt.alignedQry, qry) {
		t.Errorf("alignedQry = %s, want %s (no gaps expected)", bt.alignedQry, qry)
	}

	result := StripInsertions(bt.alignedQry, bt.alignedRef)
	if len(result.Insertions) != 0 {
		t.Errorf("expected no insertions, got %+v", result.Insertions)
	}

	var subPos = -1
	for i := range result.RefSeq {
		if result.RefSeq[i] != result.QrySeq[i] {
			subPos = i
		}
	}
	if subPos != 2 {
		t.Fatalf("substitution at %d, want 2", subPos)
	}
	if result.RefSeq[subPos] != 'G' || result.QrySeq[subPos] != 'C' {
		t.Errorf("substitution ref/qry = %c/%c, want G/C", result.RefSeq[subPos], result.QrySeq[subPos])
	}
}

func TestAlignDeletionRange(t *testing.T) {
	ref := []byte("ACGTACGT")
	qry := []byte("ACCGT")

	params := DefaultParams()
	nucParams := scoring.DefaultNucParams()
	gapOpenClose := flatGapOpenClose(len(ref), nucParams)
	stripes := fullStripes(len(qry), len(ref))

	mat := fillScoreMatrix(qry, ref, gapOpenClose, stripes, params)
	bt := runBacktrace(qry, ref, mat)

	result := StripInsertions(bt.alignedQry, bt.alignedRef)
	if len(result.Insertions) != 0 {
		t.Fatalf("expected no insertions for a pure deletion, got %+v", result.Insertions)
	}
	if !bytes.Equal(result.RefSeq, ref) {
		t.Fatalf("stripped ref = %s, want unchanged %s", result.RefSeq, ref)
	}

	delBegin, delEnd := -1, -1
	for i, c := range result.QrySeq {
		if c == '-' {
			if delBegin == -1 {
				delBegin = i
			}
			delEnd = i + 1
		}
	}
	if delBegin != 2 || delEnd != 5 {
		t.Errorf("deletion range = [%d,%d), want [2,5)", delBegin, delEnd)
	}
}

func TestAlignPairwiseTooShort(t *testing.T) {
	params := DefaultParams()
	params.MinLength = 10
	ref := []byte("ACGTACGTACGTACGT")
	qry := []byte("ACGT")
	gapOpenClose := flatGapOpenClose(len(ref), scoring.DefaultNucParams())

	_, err := AlignPairwise(qry, ref, gapOpenClose, params)
	if err == nil {
		t.Fatal("expected ErrSequenceTooShort")
	}
}
