// Package primer loads PCR primer definitions from a dataset and
// locates each primer's binding site on the reference sequence,
// producing the mutation.PcrPrimer list internal/mutation's
// FindPrimerChanges intersects against a query's substitutions.
// Grounded on the teacher's primers/pcr package's SimulateSimple,
// generalized from full PCR amplicon simulation (melting-temperature-
// driven minimal-primer-length search, forward/reverse pairing) down
// to the narrower need spec.md §4.4 calls for: just the reference
// range each configured primer covers.
package primer

import (
	"fmt"
	"index/suffixarray"

	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/mutation"
)

// Direction is a primer's orientation relative to the reference
// strand.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Definition is one configured primer: a name, its oligo sequence (5'
// to 3', as synthesized), and its orientation.
type Definition struct {
	Name      string
	Sequence  []byte
	Direction Direction
}

// Locate finds each definition's unique binding site on ref and
// returns the resulting mutation.PcrPrimer list. A primer whose
// sequence doesn't appear on ref (or appears more than once) is
// reported as an error, since QC and primer-change reporting both
// need an unambiguous reference range per primer; grounded on the
// teacher's pcr.SimulateSimple's use of `index/suffixarray.Lookup` to
// find a primer's binding positions in a template.
func Locate(defs []Definition, ref []byte) ([]mutation.PcrPrimer, error) {
	index := suffixarray.New(ref)
	primers := make([]mutation.PcrPrimer, 0, len(defs))
	for _, d := range defs {
		needle := d.Sequence
		if d.Direction == Reverse {
			needle = alphabet.ReverseComplement(d.Sequence)
		}
		locations := index.Lookup(needle, -1)
		if len(locations) == 0 {
			return nil, errutil.New(errutil.KindInputParse, fmt.Sprintf("primer %q: binding site not found on reference", d.Name))
		}
		if len(locations) > 1 {
			return nil, errutil.New(errutil.KindInputParse, fmt.Sprintf("primer %q: binding site is ambiguous on reference (%d matches)", d.Name, len(locations)))
		}
		begin := locations[0]
		primers = append(primers, mutation.PcrPrimer{
			Name:  d.Name,
			Range: coord.NewNucRefGlobalRange(begin, begin+len(needle)),
		})
	}
	return primers, nil
}
