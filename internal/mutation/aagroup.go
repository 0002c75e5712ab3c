package mutation

import (
	"sort"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/genemap"
)

// AaChangeGroup is a run of adjacent amino-acid changes reported
// together with one flanking codon of context on each side, plus the
// underlying nucleotide calls whose positions fall in the group's
// reference range (spec.md §4.4).
type AaChangeGroup struct {
	Gene          string
	CodonRange    coord.AaRefRange // context-extended, per spec.md
	Changes       []AaChange
	NumSubs       int
	NumDels       int
	NucSubs       []NucSub
	NucDels       []NucDel
}

// GroupAdjacentAaChanges groups changes within the same gene that are
// at most one codon apart (tolerating a single-codon gap between two
// changes), then extends each group's reported codon range by one
// flanking codon on each side for context, and attaches the
// nucleotide substitutions/deletions whose reference positions fall
// within the (unextended) group's nucleotide range.
func GroupAdjacentAaChanges(changes []AaChange, cds *genemap.Cds, nucSubs []NucSub, nucDels []NucDel) []AaChangeGroup {
	sorted := append([]AaChange(nil), changes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Gene != sorted[j].Gene {
			return sorted[i].Gene < sorted[j].Gene
		}
		return sorted[i].Pos.Int() < sorted[j].Pos.Int()
	})

	if len(sorted) == 0 {
		return nil
	}

	type rawGroup struct {
		gene       string
		changes    []AaChange
		begin, end int // unextended codon range [begin, end)
	}

	var raw []rawGroup
	cur := rawGroup{gene: sorted[0].Gene, changes: []AaChange{sorted[0]}, begin: sorted[0].Pos.Int(), end: sorted[0].Pos.Int() + 1}
	for i := 1; i < len(sorted); i++ {
		c := sorted[i]
		gap := c.Pos.Int() - cur.end
		if c.Gene == cur.gene && gap <= 1 {
			cur.changes = append(cur.changes, c)
			cur.end = c.Pos.Int() + 1
		} else {
			raw = append(raw, cur)
			cur = rawGroup{gene: c.Gene, changes: []AaChange{c}, begin: c.Pos.Int(), end: c.Pos.Int() + 1}
		}
	}
	raw = append(raw, cur)

	var out []AaChangeGroup
	for _, g := range raw {
		extBegin := g.begin - 1
		if extBegin < 0 {
			extBegin = 0
		}
		extEnd := g.end + 1

		group := AaChangeGroup{
			Gene:       g.gene,
			CodonRange: coord.NewAaRefRange(extBegin, extEnd),
			Changes:    g.changes,
		}
		for _, c := range g.changes {
			switch c.Type {
			case AaChangeSub:
				group.NumSubs++
			case AaChangeDel:
				group.NumDels++
			}
		}

		if cds != nil {
			nucBegin, nucEnd := codonRangeToNuc(cds, g.begin, g.end)
			for _, s := range nucSubs {
				if p := s.Pos.Int(); p >= nucBegin && p < nucEnd {
					group.NucSubs = append(group.NucSubs, s)
				}
			}
			for _, d := range nucDels {
				db, de := d.Range.Ints()
				if db < nucEnd && de > nucBegin {
					group.NucDels = append(group.NucDels, d)
				}
			}
		}

		out = append(out, group)
	}
	return out
}

// codonRangeToNuc returns the union of nucleotide ranges covered by
// codons [begin, end) of cds, assuming contiguous codons map to a
// contiguous (possibly reverse-running) nucleotide span within a
// single segment — true for any non-wrapping, non-segment-boundary
// group, which covers the overwhelming majority of amino-acid change
// groups since segment boundaries are rare split points.
func codonRangeToNuc(cds *genemap.Cds, begin, end int) (int, int) {
	if end <= begin {
		return 0, 0
	}
	firstRange := CdsCodonToNucRange(cds, begin)
	lastRange := CdsCodonToNucRange(cds, end-1)
	fb, fe := firstRange.Ints()
	lb, le := lastRange.Ints()
	lo, hi := fb, fe
	if lb < lo {
		lo = lb
	}
	if le > hi {
		hi = le
	}
	return lo, hi
}
