package gff3

import (
	"fmt"
	"sort"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/genemap"
)

// BuildGeneMap converts a parsed Document into a genemap.GeneMap.
// refLength is the reference sequence length, needed to detect
// origin-wrapping CDS segments (genemap.BuildCds). Per spec.md §6.1,
// if the document has no "gene" features, every CDS is promoted to a
// one-segment gene (the "HACK: COMPATIBILITY" fallback also present,
// for the non-wrapping case, in
// original_source/.../gene/gene.rs::from_cds).
func BuildGeneMap(doc *Document, refLength int) (*genemap.GeneMap, error) {
	genes := featuresOfType(doc.Features, "gene")
	cdsGroups := groupByID(featuresOfType(doc.Features, "CDS"))
	matureGroups := groupByID(featuresOfType(doc.Features, "mature_protein_region_of_CDS"))

	gm := genemap.NewGeneMap()

	if len(genes) == 0 {
		// Compatibility fallback: no gene records at all.
		for i, group := range cdsGroups {
			cds, err := buildCdsFromGroup(group, refLength)
			if err != nil {
				return nil, errutil.Wrap(err, fmt.Sprintf("building CDS %q", groupID(group)))
			}
			attachProteins(cds, matureGroups, refLength)
			g := &genemap.Gene{
				Index:       i,
				ID:          groupID(group),
				Name:        group[0].Name(),
				Range:       cds.Segments[0].GlobalRange,
				Cdses:       []*genemap.Cds{cds},
				CompatIsCds: true,
			}
			extendGeneRangeToCdses(g)
			gm.AddGene(g)
		}
		return gm, nil
	}

	for i, geneFeature := range genes {
		children := childrenOf(geneFeature, doc.Features)
		childCdsGroups := groupByID(filterType(children, "CDS"))

		var cdses []*genemap.Cds
		for _, group := range childCdsGroups {
			cds, err := buildCdsFromGroup(group, refLength)
			if err != nil {
				return nil, errutil.Wrap(err, fmt.Sprintf("building CDS %q of gene %q", groupID(group), geneFeature.Name()))
			}
			attachProteins(cds, matureGroups, refLength)
			cdses = append(cdses, cds)
		}

		if len(cdses) == 0 {
			// HACK: COMPAT: a gene with no CDS children is itself
			// promoted to a single-segment CDS.
			cds := geneAsCds(geneFeature, refLength)
			cdses = append(cdses, cds)
		}

		g := &genemap.Gene{
			Index: i,
			ID:    geneFeature.ID(),
			Name:  geneFeature.Name(),
			Range: coord.NewNucRefGlobalRange(geneFeature.Start, geneFeature.End),
			Cdses: cdses,
		}
		if g.Range.IsEmpty() {
			extendGeneRangeToCdses(g)
		}
		gm.AddGene(g)
	}

	return gm, nil
}

func extendGeneRangeToCdses(g *genemap.Gene) {
	begin, end := -1, -1
	for _, cds := range g.Cdses {
		for _, seg := range cds.Segments {
			b, e := seg.GlobalRange.Ints()
			if begin == -1 || b < begin {
				begin = b
			}
			if end == -1 || e > end {
				end = e
			}
		}
	}
	if begin == -1 {
		begin, end = 0, 0
	}
	g.Range = coord.NewNucRefGlobalRange(begin, end)
}

func geneAsCds(f *Feature, refLength int) *genemap.Cds {
	strand := genemap.StrandForward
	if f.Strand == "-" {
		strand = genemap.StrandReverse
	}
	raw := []genemap.RawSegment{{
		ID:          f.ID(),
		Name:        f.Name(),
		GlobalRange: coord.NewNucRefGlobalRange(f.Start, f.End),
		Strand:      strand,
	}}
	cds := genemap.BuildCds("cds-from-gene-"+f.ID(), f.Name(), raw, refLength)
	cds.CompatIsGene = true
	return cds
}

func buildCdsFromGroup(group []*Feature, refLength int) (*genemap.Cds, error) {
	sort.Slice(group, func(i, j int) bool { return group[i].Start < group[j].Start })
	raw := make([]genemap.RawSegment, 0, len(group))
	reverse := len(group) > 0 && group[0].Strand == "-"
	if reverse {
		// Reverse-strand CDSes concatenate segments in
		// reference-descending order.
		sort.Slice(group, func(i, j int) bool { return group[i].Start > group[j].Start })
	}
	for _, f := range group {
		strand := genemap.StrandForward
		if f.Strand == "-" {
			strand = genemap.StrandReverse
		}
		raw = append(raw, genemap.RawSegment{
			ID:          f.ID(),
			Name:        f.Name(),
			GlobalRange: coord.NewNucRefGlobalRange(f.Start, f.End),
			Strand:      strand,
		})
	}
	if len(raw) == 0 {
		return nil, errutil.New(errutil.KindInvalidReference, "CDS group has no segments")
	}
	cds := genemap.BuildCds(groupID(group), group[0].Name(), raw, refLength)
	return cds, cds.Validate()
}

func attachProteins(cds *genemap.Cds, matureGroups [][]*Feature, refLength int) {
	for _, group := range matureGroups {
		if len(group) == 0 {
			continue
		}
		if group[0].Parent() != cds.ID {
			// Only attach groups that declare this CDS as parent;
			// groups with no Parent at all can't be matched and are
			// skipped (nothing in the spec requires matching them by
			// position).
			matches := false
			for _, f := range group {
				if f.Parent() == cds.ID {
					matches = true
					break
				}
			}
			if !matches {
				continue
			}
		}
		segs := make([]genemap.ProteinSegment, 0, len(group))
		for _, f := range group {
			strand := genemap.StrandForward
			if f.Strand == "-" {
				strand = genemap.StrandReverse
			}
			segs = append(segs, genemap.ProteinSegment{
				ID:          f.ID(),
				Name:        f.Name(),
				GlobalRange: coord.NewNucRefGlobalRange(f.Start, f.End),
				Strand:      strand,
			})
		}
		cds.Proteins = append(cds.Proteins, genemap.Protein{
			ID:       groupID(group),
			Name:     group[0].Name(),
			Segments: segs,
		})
	}
}

func featuresOfType(features []*Feature, typ string) []*Feature {
	return filterType(features, typ)
}

func filterType(features []*Feature, typ string) []*Feature {
	var out []*Feature
	for _, f := range features {
		if f.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

// childrenOf returns every feature whose Parent attribute (possibly
// transitively) refers to f's ID.
func childrenOf(f *Feature, all []*Feature) []*Feature {
	ids := map[string]bool{f.ID(): true}
	var out []*Feature
	changed := true
	for changed {
		changed = false
		for _, candidate := range all {
			if out != nil {
				already := false
				for _, o := range out {
					if o == candidate {
						already = true
						break
					}
				}
				if already {
					continue
				}
			}
			if ids[candidate.Parent()] {
				out = append(out, candidate)
				if candidate.ID() != "" {
					ids[candidate.ID()] = true
				}
				changed = true
			}
		}
	}
	return out
}

// groupByID groups features sharing the same ID attribute (the GFF3
// convention for a single multi-segment feature split across several
// lines, e.g. a spliced CDS); features with no ID each form their own
// singleton group, in file order.
func groupByID(features []*Feature) [][]*Feature {
	order := make([]string, 0)
	groups := make(map[string][]*Feature)
	anon := 0
	for _, f := range features {
		key := f.ID()
		if key == "" {
			key = fmt.Sprintf("__anon_%d", anon)
			anon++
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], f)
	}
	out := make([][]*Feature, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out
}

func groupID(group []*Feature) string {
	if len(group) == 0 {
		return ""
	}
	if id := group[0].ID(); id != "" {
		return id
	}
	return group[0].Name()
}
