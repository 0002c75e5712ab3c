// Package translate extracts each CDS's nucleotides from an aligned
// reference/query pair, detects and masks nucleotide frame shifts,
// translates to amino acids with the standard genetic code, and
// pairwise-aligns the resulting peptides (spec.md §4.3 "Translation
// engine").
package translate

import "github.com/nextstrain/nextclade-core/internal/alphabet"

// standardCodonTable maps every unambiguous ACGT codon to its amino
// acid under the standard genetic code (NCBI translation table 1).
// Built with the same base1/base2/base3 positional-triplet technique
// the teacher's transform/codon package uses in generateCodonTable,
// but reduced to the single table this domain needs (no start-codon
// bookkeeping or codon-usage weighting, since translation here is
// strictly "sequence in, peptide out").
var standardCodonTable = buildStandardCodonTable()

const (
	base1 = "TTTTTTTTTTTTTTTTCCCCCCCCCCCCCCCCAAAAAAAAAAAAAAAAGGGGGGGGGGGGGGGG"
	base2 = "TTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGG"
	base3 = "TCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAG"
	// aminoAcidsTable1 lists the amino acid (or '*' for stop) produced
	// by each of the 64 triplets formed by walking base1/base2/base3 in
	// lockstep, per NCBI translation table 1.
	aminoAcidsTable1 = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
)

func buildStandardCodonTable() map[string]byte {
	table := make(map[string]byte, 64)
	for i := range base1 {
		triplet := string([]byte{base1[i], base2[i], base3[i]})
		table[triplet] = aminoAcidsTable1[i]
	}
	return table
}

// TranslateCodon returns the amino acid for a single codon (a 3-byte
// slice, already uppercase): the standard-table amino acid if it is an
// exact ACGT triplet, AaGap if every position is a gap, and AaUnknown
// otherwise (ambiguity codes, masked N, or mixed gap/base), per
// spec.md §4.3 step 5.
func TranslateCodon(codon []byte) byte {
	if len(codon) != 3 {
		return alphabet.AaUnknown
	}
	allGap := true
	allACGT := true
	for _, b := range codon {
		if !alphabet.IsGap(b) {
			allGap = false
		}
		if !alphabet.IsACGT(b) {
			allACGT = false
		}
	}
	if allGap {
		return alphabet.AaGap
	}
	if allACGT {
		if aa, ok := standardCodonTable[string(codon)]; ok {
			return aa
		}
	}
	return alphabet.AaUnknown
}

// TranslateSequence translates a gap-stripped nucleotide sequence
// (length a multiple of 3) codon by codon.
func TranslateSequence(nuc []byte) []byte {
	out := make([]byte, 0, len(nuc)/3)
	for i := 0; i+3 <= len(nuc); i += 3 {
		out = append(out, TranslateCodon(nuc[i:i+3]))
	}
	return out
}
