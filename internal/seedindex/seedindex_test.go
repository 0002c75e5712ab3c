package seedindex

import "testing"

func TestBuildAndFindSeedsIdentical(t *testing.T) {
	ref := []byte("ATGCGTACCTTAGCAGTCGATCCAGTTGACCGTAAGCTTGCAATGGCTAGGTCACTGAAC")
	params := DefaultParams()
	params.KmerLength = 10
	params.KmerDistance = 5
	params.MinMatchLength = 10
	params.AllowedMismatches = 2
	params.WindowSize = 10

	idx := Build(ref, params)
	seeds := FindSeeds(ref, idx, params, ref)
	if len(seeds) == 0 {
		t.Fatalf("expected seeds for identical sequence")
	}
	for _, s := range seeds {
		if s.Diagonal() != 0 {
			t.Errorf("seed %+v has non-zero diagonal on identical sequences", s)
		}
	}
}

func TestComputeStripesFailsWithTooFewSeeds(t *testing.T) {
	params := DefaultParams()
	_, err := ComputeStripes(nil, 100, 100, params)
	if err == nil {
		t.Fatal("expected error with zero seeds")
	}
}

func TestComputeStripesCoversDiagonal(t *testing.T) {
	params := DefaultParams()
	seeds := []Seed{{QryPos: 0, RefPos: 10, Length: 50}, {QryPos: 60, RefPos: 70, Length: 40}}
	stripes, err := ComputeStripes(seeds, 100, 200, params)
	if err != nil {
		t.Fatalf("ComputeStripes() error = %v", err)
	}
	if len(stripes) != 101 {
		t.Fatalf("len(stripes) = %d, want 101", len(stripes))
	}
	mid := stripes[50]
	if mid.Begin > 60 || mid.End < 60 {
		t.Errorf("stripe at row 50 = %+v, expected to cover diagonal-10 ref position around 60", mid)
	}
}
