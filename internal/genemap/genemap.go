// Package genemap models a genome annotation: a GeneMap owns Genes,
// each Gene owns one or more Cds, each Cds is built from one or more
// strand-oriented Segments (possibly wrapping the origin of a circular
// reference). Struct shapes are grounded on
// original_source/packages_rs/nextclade/src/gene/{gene,cds}.rs
// (Gene/Cds/CdsSegment/Protein/ProteinSegment), generalized with the
// WrappingPart and local/global range fields spec.md §3 "Gene map"
// describes, which predate a retrieved matching Rust source file (the
// newer origin-wrapping CDS model was not present in the pack) and so
// are authored from the spec's textual contract directly.
package genemap

import (
	"fmt"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/orderedmap"
)

// Strand is the orientation of a feature relative to the reference.
type Strand int

const (
	StrandForward Strand = iota
	StrandReverse
)

func (s Strand) Inverted() Strand {
	if s == StrandForward {
		return StrandReverse
	}
	return StrandForward
}

func (s Strand) String() string {
	if s == StrandReverse {
		return "-"
	}
	return "+"
}

// WrappingKind classifies how a segment relates to the circular
// origin of the reference sequence.
type WrappingKind int

const (
	NonWrapping WrappingKind = iota
	WrappingStart
	WrappingCentral
	WrappingEnd
)

// WrappingPart carries a WrappingKind plus, for the central/end
// variants, the index of the wrap (a CDS may cross the origin more
// than once only in pathological inputs, but the index is tracked
// regardless, mirroring spec.md's `WrappingCentral(i) | WrappingEnd(i)`).
type WrappingPart struct {
	Kind  WrappingKind
	Index int
}

func NonWrappingPart() WrappingPart { return WrappingPart{Kind: NonWrapping} }

// Segment is one contiguous piece of a CDS in reference-global
// coordinates, plus its position within the CDS's own local
// (spliced) coordinate space.
type Segment struct {
	ID          string
	Name        string
	GlobalRange coord.NucRefGlobalRange
	LocalRange  coord.NucRefLocalRange
	Strand      Strand
	Frame       int // global phase: GlobalRange.Begin mod 3
	Phase       int // local phase: LocalRange.Begin mod 3
	Wrapping    WrappingPart
}

// Len returns the segment's nucleotide length.
func (s Segment) Len() int { return s.GlobalRange.Len() }

// Cds is a coding sequence: one or more segments concatenated in
// order to form a single open reading frame, plus optional mature
// peptide annotations (Proteins).
type Cds struct {
	ID            string
	Name          string
	Segments      []Segment
	Proteins      []Protein
	CompatIsGene  bool // true when synthesized from a gene with no CDS children
}

// Protein is a mature peptide product of a Cds, itself possibly
// segmented (e.g. after proteolytic cleavage annotations).
type Protein struct {
	ID       string
	Name     string
	Segments []ProteinSegment
}

type ProteinSegment struct {
	ID          string
	Name        string
	GlobalRange coord.NucRefGlobalRange
	Strand      Strand
}

// Len returns the CDS's total nucleotide length across all segments.
func (c *Cds) Len() int {
	total := 0
	for _, seg := range c.Segments {
		total += seg.Len()
	}
	return total
}

// LenCodon returns the number of complete codons in the CDS.
func (c *Cds) LenCodon() int { return c.Len() / 3 }

// Validate checks the invariant that every CDS's total length is a
// multiple of 3 (spec.md §3 "Gene map").
func (c *Cds) Validate() error {
	if c.Len()%3 != 0 {
		return fmt.Errorf("CDS %q has length %d, not a multiple of 3", c.Name, c.Len())
	}
	return nil
}

// Strand returns the CDS's strand, read off its first segment; a CDS
// is assumed uniform-strand across its segments (true for every
// supported GFF3 shape).
func (c *Cds) Strand() Strand {
	if len(c.Segments) == 0 {
		return StrandForward
	}
	return c.Segments[0].Strand
}

// Gene owns one or more CDSes and carries its own reference range,
// independent of (and sometimes wider than) the union of its CDSes'
// ranges, matching GFF3 files that declare an explicit gene feature.
type Gene struct {
	Index        int
	ID           string
	Name         string
	Range        coord.NucRefGlobalRange
	Cdses        []*Cds
	CompatIsCds  bool // true when synthesized directly from a CDS with no gene parent
}

// GeneMap is an ordered collection of genes, keyed by name, iterated
// in declaration order (spec.md §9 "Dynamic per-CDS data").
type GeneMap struct {
	genes *orderedmap.Map[string, *Gene]
}

func NewGeneMap() *GeneMap {
	return &GeneMap{genes: orderedmap.New[string, *Gene]()}
}

func (gm *GeneMap) AddGene(g *Gene) { gm.genes.Set(g.Name, g) }

func (gm *GeneMap) Gene(name string) (*Gene, bool) { return gm.genes.Get(name) }

func (gm *GeneMap) Genes() []*Gene { return gm.genes.Values() }

func (gm *GeneMap) GeneNames() []string { return gm.genes.Keys() }

// Cdses returns every CDS across every gene, in gene-then-CDS
// declaration order.
func (gm *GeneMap) Cdses() []*Cds {
	var out []*Cds
	for _, g := range gm.genes.Values() {
		out = append(out, g.Cdses...)
	}
	return out
}

// Cds looks up a CDS by name across all genes.
func (gm *GeneMap) Cds(name string) (*Cds, bool) {
	for _, g := range gm.genes.Values() {
		for _, c := range g.Cdses {
			if c.Name == name {
				return c, true
			}
		}
	}
	return nil, false
}

// Validate checks every CDS invariant across the whole map.
func (gm *GeneMap) Validate() error {
	for _, c := range gm.Cdses() {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
