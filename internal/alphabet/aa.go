package alphabet

// Aa is a single amino acid one-letter code, or a gap/stop/unknown
// marker, stored as its ASCII byte.
type Aa = byte

const (
	AaGap     Aa = '-'
	AaStop    Aa = '*'
	AaUnknown Aa = 'X'
)

// aminoAcids is the 20 standard one-letter amino acid codes.
var aminoAcids = []byte("ACDEFGHIKLMNPQRSTVWY")

// IsValidAa reports whether b is one of the 20 standard amino acids,
// a gap, a stop, or the unknown marker.
func IsValidAa(b byte) bool {
	if b == AaGap || b == AaStop || b == AaUnknown {
		return true
	}
	for _, aa := range aminoAcids {
		if aa == b {
			return true
		}
	}
	return false
}

// IsAaGap reports whether b represents an alignment gap in peptide
// space.
func IsAaGap(b byte) bool {
	return b == AaGap
}

// IsAaUnknown reports whether b is the unresolved-codon marker.
func IsAaUnknown(b byte) bool {
	return b == AaUnknown
}

// IsStop reports whether b is a stop codon marker.
func IsStop(b byte) bool {
	return b == AaStop
}
