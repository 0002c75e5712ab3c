package mutation

import (
	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/coord"
)

// AaChangeType distinguishes a substitution from a deletion within an
// amino-acid change group.
type AaChangeType int

const (
	AaChangeSub AaChangeType = iota
	AaChangeDel
)

// AaChange is a single codon-position amino-acid change, before
// grouping (spec.md §4.4 "Amino-acid changes").
type AaChange struct {
	Gene   string
	Pos    coord.AaRefPosition
	RefAa  byte
	QryAa  byte
	Type   AaChangeType
}

// CallAaMutations iterates codons over the given sequenced ranges and
// emits a change whenever the reference and query amino acids differ
// and the query amino acid is not X (spec.md §4.4 "Amino-acid
// changes, per CDS").
func CallAaMutations(gene string, refPeptide, qryPeptide []byte, sequencedRanges []coord.AaRefRange) []AaChange {
	var out []AaChange
	for _, rng := range sequencedRanges {
		begin, end := rng.Ints()
		for i := begin; i < end && i < len(refPeptide) && i < len(qryPeptide); i++ {
			ref, qry := refPeptide[i], qryPeptide[i]
			if qry == alphabet.AaUnknown || ref == qry {
				continue
			}
			change := AaChange{Gene: gene, Pos: coord.NewAaRefPosition(i), RefAa: ref, QryAa: qry, Type: AaChangeSub}
			if alphabet.IsAaGap(qry) {
				change.Type = AaChangeDel
			}
			out = append(out, change)
		}
	}
	return out
}
