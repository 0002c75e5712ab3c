package motif

import (
	"testing"

	"github.com/nextstrain/nextclade-core/internal/translate"
)

func TestFindLocatesMotifAcrossWholeGeneByDefault(t *testing.T) {
	translations := []translate.Result{
		{CdsName: "S", QryPeptide: []byte("MNAGTNSTA")},
	}
	descs := []Desc{{Name: "sequon", Motifs: []string{"N[^P][ST]"}}}
	found, err := Find(descs, translations)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	motifs := found["sequon"]
	if len(motifs) != 1 {
		t.Fatalf("len(motifs) = %d, want 1 (got %+v)", len(motifs), motifs)
	}
	if motifs[0].Gene != "S" || motifs[0].Position != 5 || motifs[0].Seq != "NST" {
		t.Errorf("motifs[0] = %+v", motifs[0])
	}
}

func TestFindRestrictsToGeneScope(t *testing.T) {
	translations := []translate.Result{
		{CdsName: "S", QryPeptide: []byte("NST")},
		{CdsName: "M", QryPeptide: []byte("NST")},
	}
	descs := []Desc{{Name: "sequon", Motifs: []string{"NST"}, IncludeGenes: []GeneScope{{Gene: "S"}}}}
	found, err := Find(descs, translations)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(found["sequon"]) != 1 || found["sequon"][0].Gene != "S" {
		t.Errorf("found = %+v, want one occurrence in gene S", found["sequon"])
	}
}

func TestFindChangesClassifiesPreservedGainedLostMutated(t *testing.T) {
	ref := map[string][]Aa{
		"sequon": {
			{Name: "sequon", Gene: "S", Position: 1, Seq: "NST"},
			{Name: "sequon", Gene: "S", Position: 5, Seq: "NAT"},
		},
	}
	qry := map[string][]Aa{
		"sequon": {
			{Name: "sequon", Gene: "S", Position: 1, Seq: "NST"},
			{Name: "sequon", Gene: "S", Position: 5, Seq: "NGT"},
			{Name: "sequon", Gene: "S", Position: 9, Seq: "NQS"},
		},
	}
	changes := FindChanges(ref, qry)["sequon"]
	if len(changes.Preserved) != 1 || changes.Preserved[0].Position != 1 {
		t.Errorf("Preserved = %+v", changes.Preserved)
	}
	if len(changes.Gained) != 1 || changes.Gained[0].Position != 9 {
		t.Errorf("Gained = %+v", changes.Gained)
	}
	if len(changes.Lost) != 0 {
		t.Errorf("Lost = %+v, want empty", changes.Lost)
	}
	if len(changes.Mutated) != 1 || changes.Mutated[0].Position != 5 || changes.Mutated[0].RefSeq != "NAT" || changes.Mutated[0].QrySeq != "NGT" {
		t.Errorf("Mutated = %+v", changes.Mutated)
	}
}

func TestFindChangesLostWhenQueryMissingGene(t *testing.T) {
	ref := map[string][]Aa{"sequon": {{Name: "sequon", Gene: "S", Position: 1, Seq: "NST"}}}
	qry := map[string][]Aa{"sequon": {}}
	changes := FindChanges(ref, qry)["sequon"]
	if len(changes.Lost) != 1 || changes.Lost[0].Position != 1 {
		t.Errorf("Lost = %+v", changes.Lost)
	}
}
