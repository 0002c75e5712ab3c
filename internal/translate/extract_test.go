package translate

import (
	"testing"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/genemap"
)

func cdsFromRanges(t *testing.T, ranges [][2]int) *genemap.Cds {
	t.Helper()
	raw := make([]genemap.RawSegment, len(ranges))
	for i, r := range ranges {
		raw[i] = genemap.RawSegment{GlobalRange: coord.NewNucRefGlobalRange(r[0], r[1]), Strand: genemap.StrandForward}
	}
	return genemap.BuildCds("cds1", "cds1", raw, 1000)
}

func TestExtractCdsNonWrapping(t *testing.T) {
	ref := []byte("TGATGCACAATCGTTTTTAAACGGGTTTGCGGTGTAAGTGCAGCCCGTCTTACA")
	cds := cdsFromRanges(t, [][2]int{{4, 21}, {20, 39}, {45, 51}})

	cm := coord.NewCoordMap(ref)
	extractedRef, _, err := ExtractCds(cds, ref, ref, cm)
	if err != nil {
		t.Fatalf("ExtractCds() error = %v", err)
	}
	want := "GCACAATCGTTTTTAAAACGGGTTTGCGGTGTAAGTCGTCTT"
	if string(extractedRef) != want {
		t.Errorf("extractedRef = %q, want %q", extractedRef, want)
	}
}

func TestExtractCdsWrappingOrigin(t *testing.T) {
	// A CDS whose origin-crossing segment is split in two by
	// genemap.BuildCds: a WrappingStart piece covering the tail of the
	// reference, and a WrappingEnd piece covering the head.
	refLength := 10
	raw := []genemap.RawSegment{
		{GlobalRange: coord.NewNucRefGlobalRange(8, 12), Strand: genemap.StrandForward},
		{GlobalRange: coord.NewNucRefGlobalRange(0, 3), Strand: genemap.StrandForward, WrapsFromOrigin: true},
	}
	cds := genemap.BuildCds("cds1", "cds1", raw, refLength)

	if cds.Segments[0].Wrapping.Kind != genemap.WrappingStart {
		t.Fatalf("segment 0 wrapping = %v, want WrappingStart", cds.Segments[0].Wrapping.Kind)
	}
	if cds.Segments[1].Wrapping.Kind != genemap.WrappingEnd {
		t.Fatalf("segment 1 wrapping = %v, want WrappingEnd", cds.Segments[1].Wrapping.Kind)
	}

	ref := []byte("ACGTACGTAC")
	cm := coord.NewCoordMap(ref)
	extractedRef, extractedQry, err := ExtractCds(cds, ref, ref, cm)
	if err != nil {
		t.Fatalf("ExtractCds() error = %v", err)
	}
	want := "ACACG"
	if string(extractedRef) != want {
		t.Errorf("extractedRef = %q, want %q (positions 8,9 then 0,1,2 across the origin)", extractedRef, want)
	}
	if string(extractedQry) != want {
		t.Errorf("extractedQry = %q, want %q", extractedQry, want)
	}
}
