// Package alphabet defines the fixed nucleotide and amino-acid
// alphabets the analysis core operates on, replacing the teacher's
// general-purpose string-symbol Alphabet (bebop-poly's alphabet.Alphabet,
// built around map[interface{}]uint8) with small byte-indexed tables,
// since both alphabets here are fixed and every sequence position needs
// a cheap classification (gap, ambiguous, unknown) on a hot path.
package alphabet

// Nuc is a single IUPAC nucleotide code, stored as its ASCII byte
// (always uppercase internally).
type Nuc = byte

const (
	NucA    Nuc = 'A'
	NucC    Nuc = 'C'
	NucG    Nuc = 'G'
	NucT    Nuc = 'T'
	NucGap  Nuc = '-'
	NucN    Nuc = 'N'
)

// iupacAmbiguous maps an IUPAC ambiguity code to the set of resolved
// bases it stands for.
var iupacAmbiguous = map[byte][]byte{
	'A': {'A'},
	'C': {'C'},
	'G': {'G'},
	'T': {'T'},
	'U': {'T'},
	'R': {'A', 'G'},
	'Y': {'C', 'T'},
	'S': {'G', 'C'},
	'W': {'A', 'T'},
	'K': {'G', 'T'},
	'M': {'A', 'C'},
	'B': {'C', 'G', 'T'},
	'D': {'A', 'G', 'T'},
	'H': {'A', 'C', 'T'},
	'V': {'A', 'C', 'G'},
	'N': {'A', 'C', 'G', 'T'},
}

// IsValidNuc reports whether b is a recognized nucleotide code or gap.
func IsValidNuc(b byte) bool {
	if b == NucGap {
		return true
	}
	_, ok := iupacAmbiguous[NormalizeNuc(b)]
	return ok
}

// NormalizeNuc uppercases a nucleotide byte, leaving non-letters as-is.
func NormalizeNuc(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// IsGap reports whether b represents an alignment gap.
func IsGap(b byte) bool {
	return b == NucGap
}

// IsUnknown reports whether b is the fully ambiguous 'N' code.
func IsUnknown(b byte) bool {
	return NormalizeNuc(b) == 'N'
}

// IsAmbiguous reports whether b is an IUPAC code standing for more
// than one resolved base (including N, but not a plain ACGT or gap).
func IsAmbiguous(b byte) bool {
	resolved, ok := iupacAmbiguous[NormalizeNuc(b)]
	return ok && len(resolved) > 1
}

// IsACGT reports whether b is one of the four unambiguous bases.
func IsACGT(b byte) bool {
	switch NormalizeNuc(b) {
	case 'A', 'C', 'G', 'T':
		return true
	default:
		return false
	}
}

// ResolvedBases returns the set of unambiguous bases an IUPAC code
// stands for. Returns nil for a gap or unrecognized code.
func ResolvedBases(b byte) []byte {
	return iupacAmbiguous[NormalizeNuc(b)]
}

// NucsMatch reports whether two IUPAC codes could represent the same
// underlying base, i.e. their resolved-base sets intersect. This is
// used for scoring and for deciding whether a query base disagrees
// with the reference outright or is merely ambiguous.
func NucsMatch(a, b byte) bool {
	ra, oka := iupacAmbiguous[NormalizeNuc(a)]
	rb, okb := iupacAmbiguous[NormalizeNuc(b)]
	if !oka || !okb {
		return NormalizeNuc(a) == NormalizeNuc(b)
	}
	for _, x := range ra {
		for _, y := range rb {
			if x == y {
				return true
			}
		}
	}
	return false
}

// ReverseComplement returns the reverse complement of a nucleotide
// sequence, preserving ambiguity codes and gaps.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		out[len(seq)-1-i] = ComplementBase(b)
	}
	return out
}

var complementTable = map[byte]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'U': 'A',
	'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N', '-': '-',
}

// ComplementBase returns the IUPAC complement of a single base,
// preserving case.
func ComplementBase(b byte) byte {
	upper := NormalizeNuc(b)
	c, ok := complementTable[upper]
	if !ok {
		return b
	}
	if b >= 'a' && b <= 'z' {
		return c + ('a' - 'A')
	}
	return c
}
