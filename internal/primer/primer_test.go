package primer

import (
	"strings"
	"testing"
)

func TestLocateForwardPrimer(t *testing.T) {
	ref := []byte("ACGTACGTTTGGCCAATTGGACGTACGT")
	defs := []Definition{
		{Name: "F1", Sequence: []byte("TTGGCCAATT"), Direction: Forward},
	}
	primers, err := Locate(defs, ref)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(primers) != 1 {
		t.Fatalf("len(primers) = %d, want 1", len(primers))
	}
	if begin, end := primers[0].Range.Ints(); begin != 8 || end != 18 {
		t.Errorf("range = [%d, %d), want [8, 18)", begin, end)
	}
}

func TestLocateReversePrimer(t *testing.T) {
	ref := []byte("ACGTACGTTTGGCCAATTGGACGTACGT")
	// reverse complement of "TTGGCCAATT" is "AATTGGCCAA"
	defs := []Definition{
		{Name: "R1", Sequence: []byte("AATTGGCCAA"), Direction: Reverse},
	}
	primers, err := Locate(defs, ref)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if begin, end := primers[0].Range.Ints(); begin != 8 || end != 18 {
		t.Errorf("range = [%d, %d), want [8, 18)", begin, end)
	}
}

func TestLocateMissingPrimerErrors(t *testing.T) {
	ref := []byte("ACGTACGT")
	defs := []Definition{{Name: "Bad", Sequence: []byte("GGGGGGGG"), Direction: Forward}}
	if _, err := Locate(defs, ref); err == nil {
		t.Error("Locate() error = nil, want error for absent primer")
	}
}

func TestParseDefinitionsSkipsHeader(t *testing.T) {
	csv := "name,sequence,direction\nF1,ACGTACGT,fwd\nR1,TTGGCCAA,rev\n"
	defs, err := ParseDefinitions(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseDefinitions() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("len(defs) = %d, want 2", len(defs))
	}
	if defs[0].Name != "F1" || defs[0].Direction != Forward {
		t.Errorf("defs[0] = %+v", defs[0])
	}
	if defs[1].Name != "R1" || defs[1].Direction != Reverse {
		t.Errorf("defs[1] = %+v", defs[1])
	}
}

func TestParseDefinitionsInvalidDirection(t *testing.T) {
	csv := "Bad,ACGTACGT,sideways\n"
	if _, err := ParseDefinitions(strings.NewReader(csv)); err == nil {
		t.Error("ParseDefinitions() error = nil, want error for bad direction")
	}
}
