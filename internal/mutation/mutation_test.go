package mutation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextstrain/nextclade-core/internal/coord"
)

func TestCallNucMutationsBasic(t *testing.T) {
	//          0123456789
	ref := []byte("ACGTACGTAC")
	qry := []byte("ACCTA-GTNC")
	//               ^sub  ^del ^missing

	muts := CallNucMutations(ref, qry)

	require.Len(t, muts.Substitutions, 1, "substitutions = %+v, want one at pos 2", muts.Substitutions)
	assert.Equal(t, 2, muts.Substitutions[0].Pos.Int())
	assert.Equal(t, byte('G'), muts.Substitutions[0].RefNuc)
	assert.Equal(t, byte('C'), muts.Substitutions[0].QryNuc)

	require.Len(t, muts.Deletions, 1, "deletions = %+v, want one range", muts.Deletions)
	b, e := muts.Deletions[0].Range.Ints()
	assert.Equal(t, 5, b)
	assert.Equal(t, 6, e)

	require.Len(t, muts.Missing, 1, "missing = %+v, want one range", muts.Missing)
	b, e = muts.Missing[0].Range.Ints()
	assert.Equal(t, 8, b)
	assert.Equal(t, 9, e)
}

func TestCallNucMutationsAlignRangeTrimsLeadingTrailingGaps(t *testing.T) {
	ref := []byte("ACGTACGT")
	qry := []byte("--GTAC--")

	muts := CallNucMutations(ref, qry)
	b, e := muts.AlignRange.Ints()
	assert.Equal(t, 2, b)
	assert.Equal(t, 6, e)
}

func TestCallNucMutationsNonACGTN(t *testing.T) {
	ref := []byte("ACGT")
	qry := []byte("ARGT")
	muts := CallNucMutations(ref, qry)
	assert.Empty(t, muts.Substitutions, "expected no substitutions for an ambiguity code")
	require.Len(t, muts.NonACGTN, 1, "expected one non-ACGTN range, got %+v", muts.NonACGTN)
}

func TestCallAaMutationsSkipsUnknown(t *testing.T) {
	ref := []byte("MGKT")
	qry := []byte("MGXT")
	ranges := []coord.AaRefRange{coord.NewAaRefRange(0, 4)}
	changes := CallAaMutations("geneX", ref, qry, ranges)
	assert.Empty(t, changes, "an X query residue should never be reported as a change")
}

func TestCallAaMutationsSubstitution(t *testing.T) {
	ref := []byte("MGKT")
	qry := []byte("MGRT")
	ranges := []coord.AaRefRange{coord.NewAaRefRange(0, 4)}
	changes := CallAaMutations("geneX", ref, qry, ranges)
	require.Len(t, changes, 1, "changes = %+v, want one substitution at codon 2", changes)
	assert.Equal(t, 2, changes[0].Pos.Int())
}

func TestGroupAdjacentAaChangesTolerateOneCodonGap(t *testing.T) {
	changes := []AaChange{
		{Gene: "geneX", Pos: coord.NewAaRefPosition(5), RefAa: 'M', QryAa: 'L', Type: AaChangeSub},
		{Gene: "geneX", Pos: coord.NewAaRefPosition(7), RefAa: 'K', QryAa: 'R', Type: AaChangeSub},
	}
	groups := GroupAdjacentAaChanges(changes, nil, nil, nil)
	require.Len(t, groups, 1, "expected changes 2 codons apart to merge into one group, got %+v", groups)
	b, e := groups[0].CodonRange.Ints()
	assert.Equal(t, 4, b)
	assert.Equal(t, 9, e)
}

func TestGroupAdjacentAaChangesSeparatesDistantChanges(t *testing.T) {
	changes := []AaChange{
		{Gene: "geneX", Pos: coord.NewAaRefPosition(1), RefAa: 'M', QryAa: 'L', Type: AaChangeSub},
		{Gene: "geneX", Pos: coord.NewAaRefPosition(10), RefAa: 'K', QryAa: 'R', Type: AaChangeSub},
	}
	groups := GroupAdjacentAaChanges(changes, nil, nil, nil)
	assert.Len(t, groups, 2, "expected 2 groups for distant changes, got %+v", groups)
}

func TestFindPrimerChanges(t *testing.T) {
	primers := []PcrPrimer{{Name: "p1", Range: coord.NewNucRefGlobalRange(10, 20)}}
	subs := []NucSub{
		{Pos: coord.NewNucRefGlobalPosition(15), RefNuc: 'A', QryNuc: 'T'},
		{Pos: coord.NewNucRefGlobalPosition(30), RefNuc: 'A', QryNuc: 'T'},
	}
	changes := FindPrimerChanges(primers, subs)
	require.Len(t, changes, 1, "changes = %+v, want one primer with one substitution", changes)
	assert.Len(t, changes[0].Substitutions, 1)
}
