package genemap

import (
	"testing"

	"github.com/nextstrain/nextclade-core/internal/coord"
)

func TestBuildCdsLocalRangesConcatenate(t *testing.T) {
	raw := []RawSegment{
		{ID: "s1", Name: "s1", GlobalRange: coord.NewNucRefGlobalRange(0, 9), Strand: StrandForward},
		{ID: "s2", Name: "s2", GlobalRange: coord.NewNucRefGlobalRange(20, 29), Strand: StrandForward},
	}
	cds := BuildCds("cds1", "ORF1", raw, 1000)

	if got := cds.Len(); got != 18 {
		t.Fatalf("Len() = %d, want 18", got)
	}
	if err := cds.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if cds.Segments[0].LocalRange.Begin.Int() != 0 || cds.Segments[0].LocalRange.End.Int() != 9 {
		t.Fatalf("segment 0 local range wrong: %v", cds.Segments[0].LocalRange)
	}
	if cds.Segments[1].LocalRange.Begin.Int() != 9 || cds.Segments[1].LocalRange.End.Int() != 18 {
		t.Fatalf("segment 1 local range wrong: %v", cds.Segments[1].LocalRange)
	}
	if cds.Segments[0].Wrapping.Kind != NonWrapping {
		t.Fatalf("expected non-wrapping segment 0")
	}
}

func TestBuildCdsWrapping(t *testing.T) {
	// reference length 100; CDS wraps the origin: one segment
	// [90,100+10) conceptually represented as extending past refLength.
	raw := []RawSegment{
		{ID: "s1", Name: "s1", GlobalRange: coord.NewNucRefGlobalRange(90, 110), Strand: StrandForward},
	}
	cds := BuildCds("cds1", "wrap", raw, 100)
	if cds.Segments[0].Wrapping.Kind != WrappingStart {
		t.Fatalf("expected WrappingStart, got %v", cds.Segments[0].Wrapping.Kind)
	}
}

func TestGeneMapOrderPreserved(t *testing.T) {
	gm := NewGeneMap()
	gm.AddGene(&Gene{Name: "B"})
	gm.AddGene(&Gene{Name: "A"})
	names := gm.GeneNames()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Fatalf("GeneNames() = %v, want insertion order [B A]", names)
	}
}
