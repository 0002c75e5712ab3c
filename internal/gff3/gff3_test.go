package gff3

import (
	"strings"
	"testing"
)

func TestPercentRoundTrip(t *testing.T) {
	cases := []string{
		"hello world",
		"a=b;c=d",
		"100%",
		"tab\there",
		"comma,separated,values",
		"",
		"already%20encoded",
	}
	for _, s := range cases {
		got := Decode(Encode(s))
		if got != s {
			t.Errorf("Decode(Encode(%q)) = %q, want %q", s, got, s)
		}
	}
}

const simpleGff = `##gff-version 3
##sequence-region seq1 1 1000
seq1	test	gene	1	300	.	+	.	ID=gene1;Name=ORF1
seq1	test	CDS	1	300	.	+	0	ID=cds1;Parent=gene1;Name=ORF1p
`

func TestParseAndBuildGeneMap(t *testing.T) {
	doc, err := Parse(strings.NewReader(simpleGff))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Features) != 2 {
		t.Fatalf("len(Features) = %d, want 2", len(doc.Features))
	}

	gm, err := BuildGeneMap(doc, 1000)
	if err != nil {
		t.Fatalf("BuildGeneMap() error = %v", err)
	}
	if len(gm.Genes()) != 1 {
		t.Fatalf("len(Genes()) = %d, want 1", len(gm.Genes()))
	}
	gene := gm.Genes()[0]
	if gene.Name != "ORF1" {
		t.Fatalf("gene.Name = %q, want ORF1", gene.Name)
	}
	if len(gene.Cdses) != 1 {
		t.Fatalf("len(Cdses) = %d, want 1", len(gene.Cdses))
	}
	if gene.Cdses[0].Len() != 300 {
		t.Fatalf("cds.Len() = %d, want 300", gene.Cdses[0].Len())
	}
}

const noGeneGff = `##gff-version 3
##sequence-region seq1 1 1000
seq1	test	CDS	1	9	.	+	0	ID=cds1;Name=ORF1p
`

func TestCompatFallbackNoGenes(t *testing.T) {
	doc, err := Parse(strings.NewReader(noGeneGff))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	gm, err := BuildGeneMap(doc, 1000)
	if err != nil {
		t.Fatalf("BuildGeneMap() error = %v", err)
	}
	if len(gm.Genes()) != 1 {
		t.Fatalf("len(Genes()) = %d, want 1", len(gm.Genes()))
	}
	if !gm.Genes()[0].CompatIsCds {
		t.Fatalf("expected CompatIsCds = true")
	}
}
