package mutation

import "github.com/nextstrain/nextclade-core/internal/coord"

// PcrPrimer is one configured PCR primer's binding footprint on the
// reference.
type PcrPrimer struct {
	Name  string
	Range coord.NucRefGlobalRange
}

// PrimerChange reports that at least one substitution falls within a
// primer's binding range.
type PrimerChange struct {
	Primer        PcrPrimer
	Substitutions []NucSub
}

// FindPrimerChanges intersects each configured primer's reference
// range with the query's nucleotide substitutions, emitting a record
// whenever the intersection is nonempty (spec.md §4.4 "PCR primer
// changes").
func FindPrimerChanges(primers []PcrPrimer, subs []NucSub) []PrimerChange {
	var out []PrimerChange
	for _, primer := range primers {
		var hits []NucSub
		for _, s := range subs {
			if primer.Range.Contains(s.Pos) {
				hits = append(hits, s)
			}
		}
		if len(hits) > 0 {
			out = append(out, PrimerChange{Primer: primer, Substitutions: hits})
		}
	}
	return out
}
