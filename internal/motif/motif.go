// Package motif finds configured amino-acid motifs (short regular
// expressions, e.g. glycosylation sequons) in translated peptides and
// reports how they differ between reference and query. Grounded on
// original_source/packages_rs/nextclade/src/analyze/find_aa_motifs.rs
// and find_aa_motifs_changes.rs, re-expressed idiomatically (no
// itertools-style flat_map chains; a gene/range double loop instead).
package motif

import (
	"fmt"
	"regexp"

	"golang.org/x/exp/slices"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/translate"
)

// GeneScope restricts a motif search to a gene and, optionally, a set
// of codon ranges within it; an empty Ranges list searches the whole
// peptide.
type GeneScope struct {
	Gene   string             `json:"gene"`
	Ranges []coord.AaRefRange `json:"ranges"`
}

// Desc is one configured motif search, carried in virus-properties
// data (dataset.VirusProperties.AaMotifs).
type Desc struct {
	Name         string      `json:"name"`
	Motifs       []string    `json:"motifs"`
	IncludeGenes []GeneScope `json:"includeGenes"`
}

// Aa is one located motif occurrence.
type Aa struct {
	Name     string
	Gene     string
	Position int
	Seq      string
}

// key is the position/gene/name identity used to match the same motif
// occurrence across reference and query, i.e. Aa minus its matched Seq.
type key struct {
	Name     string
	Gene     string
	Position int
}

// Find locates every occurrence of every configured motif across
// translations, grouped by descriptor name.
func Find(descs []Desc, translations []translate.Result) (map[string][]Aa, error) {
	byGene := make(map[string]translate.Result, len(translations))
	for _, tr := range translations {
		byGene[tr.CdsName] = tr
	}

	out := make(map[string][]Aa, len(descs))
	for _, desc := range descs {
		scopes := desc.IncludeGenes
		if len(scopes) == 0 {
			for _, tr := range translations {
				scopes = append(scopes, GeneScope{Gene: tr.CdsName})
			}
		}

		var found []Aa
		for _, scope := range scopes {
			tr, ok := byGene[scope.Gene]
			if !ok {
				continue
			}
			ranges := scope.Ranges
			if len(ranges) == 0 {
				ranges = []coord.AaRefRange{coord.NewAaRefRange(0, len(tr.QryPeptide))}
			}
			for _, r := range ranges {
				begin, end := r.Ints()
				if begin < 0 {
					begin = 0
				}
				if end > len(tr.QryPeptide) {
					end = len(tr.QryPeptide)
				}
				if begin >= end {
					continue
				}
				window := tr.QryPeptide[begin:end]
				for _, pattern := range desc.Motifs {
					re, err := regexp.Compile(pattern)
					if err != nil {
						return nil, errutil.New(errutil.KindInputParse, fmt.Sprintf("compiling motif pattern %q for %q: %v", pattern, desc.Name, err))
					}
					for _, loc := range re.FindAllIndex(window, -1) {
						found = append(found, Aa{
							Name:     desc.Name,
							Gene:     scope.Gene,
							Position: begin + loc[0],
							Seq:      string(window[loc[0]:loc[1]]),
						})
					}
				}
			}
		}
		out[desc.Name] = found
	}
	return out, nil
}

// Mutation reports a motif occurrence whose sequence changed between
// reference and query at the same position.
type Mutation struct {
	Name     string
	Gene     string
	Position int
	RefSeq   string
	QrySeq   string
}

// Changes splits query motif occurrences, relative to reference
// occurrences, into preserved/gained/lost/mutated per spec.md §6.3's
// "AA motifs and their changes".
type Changes struct {
	Preserved []Aa
	Gained    []Aa
	Lost      []Aa
	Mutated   []Mutation
}

// FindChanges compares ref and qry motif occurrence maps (as returned
// by Find) and reports, per descriptor name, how each occurrence
// changed.
func FindChanges(ref, qry map[string][]Aa) map[string]Changes {
	names := make(map[string]bool, len(ref)+len(qry))
	for name := range ref {
		names[name] = true
	}
	for name := range qry {
		names[name] = true
	}

	out := make(map[string]Changes, len(names))
	for name := range names {
		out[name] = changesOne(ref[name], qry[name])
	}
	return out
}

func changesOne(refMotifs, qryMotifs []Aa) Changes {
	refByKey := make(map[key]Aa, len(refMotifs))
	for _, m := range refMotifs {
		refByKey[key{m.Name, m.Gene, m.Position}] = m
	}
	qryByKey := make(map[key]Aa, len(qryMotifs))
	for _, m := range qryMotifs {
		qryByKey[key{m.Name, m.Gene, m.Position}] = m
	}

	var gained, lost, preserved []Aa
	var mutated []Mutation
	for k, qm := range qryByKey {
		if rm, ok := refByKey[k]; ok {
			if rm.Seq == qm.Seq {
				preserved = append(preserved, rm)
			} else {
				mutated = append(mutated, Mutation{Name: rm.Name, Gene: rm.Gene, Position: rm.Position, RefSeq: rm.Seq, QrySeq: qm.Seq})
			}
		} else {
			gained = append(gained, qm)
		}
	}
	for k, rm := range refByKey {
		if _, ok := qryByKey[k]; !ok {
			lost = append(lost, rm)
		}
	}

	sortAa(gained)
	sortAa(lost)
	sortAa(preserved)
	slices.SortFunc(mutated, func(a, b Mutation) bool {
		if a.Gene != b.Gene {
			return a.Gene < b.Gene
		}
		return a.Position < b.Position
	})

	return Changes{Preserved: preserved, Gained: gained, Lost: lost, Mutated: mutated}
}

func sortAa(motifs []Aa) {
	slices.SortFunc(motifs, func(a, b Aa) bool {
		if a.Gene != b.Gene {
			return a.Gene < b.Gene
		}
		return a.Position < b.Position
	})
}
