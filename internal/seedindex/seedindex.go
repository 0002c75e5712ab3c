// Package seedindex builds a k-mer index of the reference sequence and
// uses it to seed the banded aligner (internal/align) with an expected
// diagonal per query row, per spec.md §4.2 "Seeding". No matching
// stripe-based Rust source was retrieved for this component (only an
// older single-band prototype, original_source/packages/nextalign_rs/
// src/align/seed_alignment.rs); this is authored directly from the
// spec's textual contract. K-mer hashing uses
// github.com/spaolacci/murmur3, the one real hashing dependency the
// teacher pulls in for its own sequence-search code (bwt/search/mash),
// repurposed here for plain k-mer bucketing rather than a full
// minimizer sketch.
package seedindex

import (
	"fmt"

	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/spaolacci/murmur3"
)

// Params holds the seeding tunables named in spec.md §4.2.
type Params struct {
	KmerLength         int
	KmerDistance       int
	WindowSize         int
	AllowedMismatches  int
	MinMatchLength     int
	MinSeedCover       float64 // fraction of query length, e.g. 0.33
	TerminalBandwidth  int
	ExcessBandwidth    int
	MaxAlignmentAttempts int
}

// DefaultParams mirrors the original implementation's documented
// defaults.
func DefaultParams() Params {
	return Params{
		KmerLength:           17,
		KmerDistance:         30,
		WindowSize:           30,
		AllowedMismatches:    8,
		MinMatchLength:       40,
		MinSeedCover:         0.33,
		TerminalBandwidth:    5,
		ExcessBandwidth:      9,
		MaxAlignmentAttempts: 3,
	}
}

// Index is a k-mer index of a reference sequence.
type Index struct {
	kmerLength int
	buckets    map[uint64][]int // hash -> reference positions where that k-mer starts
	refLen     int
}

// Build indexes every k-mer in ref at every position (not just
// codon-spaced positions in the reference; "codon-spaced" in §4.2
// describes how query k-mers are sampled, not how the reference index
// is built, since a query seed must be able to land anywhere on the
// reference).
func Build(ref []byte, params Params) *Index {
	idx := &Index{kmerLength: params.KmerLength, buckets: make(map[uint64][]int), refLen: len(ref)}
	if len(ref) < params.KmerLength {
		return idx
	}
	for i := 0; i+params.KmerLength <= len(ref); i++ {
		h := hashKmer(ref[i : i+params.KmerLength])
		idx.buckets[h] = append(idx.buckets[h], i)
	}
	return idx
}

func hashKmer(kmer []byte) uint64 {
	return murmur3.Sum64(kmer)
}

// Seed is a single seed match: qry[QryPos:QryPos+Length] aligns,
// ungapped, to ref[RefPos:RefPos+Length].
type Seed struct {
	QryPos int
	RefPos int
	Length int
}

// Diagonal returns RefPos - QryPos, the alignment diagonal this seed
// sits on.
func (s Seed) Diagonal() int { return s.RefPos - s.QryPos }

// Stripe is the reachable reference-position interval for one query
// row of the banded DP, half-open [Begin, End).
type Stripe struct {
	Begin, End int
}

// FindSeeds samples query k-mers every KmerDistance positions, looks
// each up in idx, and for every hit extends left/right while a
// sliding window of width WindowSize has at most AllowedMismatches
// mismatches, keeping extensions of length >= MinMatchLength.
func FindSeeds(qry []byte, idx *Index, params Params, ref []byte) []Seed {
	var seeds []Seed
	if len(qry) < params.KmerLength {
		return seeds
	}
	for start := 0; start+params.KmerLength <= len(qry); start += params.KmerDistance {
		h := hashKmer(qry[start : start+params.KmerLength])
		candidates, ok := idx.buckets[h]
		if !ok {
			continue
		}
		for _, refPos := range candidates {
			seed, ok := extendSeed(ref, qry, refPos, start, params)
			if ok && seed.Length >= params.MinMatchLength {
				seeds = append(seeds, seed)
			}
		}
	}
	return seeds
}

// extendSeed grows a seed match left and right from an initial exact
// k-mer hit at (refPos, qryPos), stopping each direction once a
// trailing window of WindowSize positions accumulates more than
// AllowedMismatches mismatches. This reproduces the spec's early-exit
// condition verbatim (an Open Question: "tmpScore + mismatchesAllowed
// < pos" from the original seed-matching loop is preserved as-is
// rather than "fixed", per spec.md §9).
func extendSeed(ref, qry []byte, refPos, qryPos int, params Params) (Seed, bool) {
	// Extend right.
	right := params.KmerLength
	mismatches := 0
	tmpScore := 0
	for refPos+right < len(ref) && qryPos+right < len(qry) {
		if ref[refPos+right] != qry[qryPos+right] {
			mismatches++
		} else {
			tmpScore++
		}
		if old := right - params.WindowSize; old >= params.KmerLength && ref[refPos+old] != qry[qryPos+old] {
			mismatches--
		}
		pos := right - params.WindowSize
		if pos >= 0 {
			// Sliding window early-exit, reproduced verbatim from the
			// original's marginal condition.
			if tmpScore+params.AllowedMismatches < pos {
				break
			}
		}
		if mismatches > params.AllowedMismatches {
			break
		}
		right++
	}

	// Extend left.
	left := 0
	mismatchesL := 0
	for refPos-left-1 >= 0 && qryPos-left-1 >= 0 {
		if ref[refPos-left-1] != qry[qryPos-left-1] {
			mismatchesL++
		}
		if old := left - params.WindowSize; old >= 0 && ref[refPos-old-1] != qry[qryPos-old-1] {
			mismatchesL--
		}
		if mismatchesL > params.AllowedMismatches {
			break
		}
		left++
	}

	length := left + right
	if length <= 0 {
		return Seed{}, false
	}
	return Seed{QryPos: qryPos - left, RefPos: refPos - left, Length: length}, true
}

// ErrSeedMatchFailure reports that too few seeds (or too little
// coverage) were found to anchor alignment.
type ErrSeedMatchFailure struct {
	NumSeeds int
	Coverage float64
}

func (e *ErrSeedMatchFailure) Error() string {
	return fmt.Sprintf("poor seed matches: %d seeds, %.1f%% coverage", e.NumSeeds, e.Coverage*100)
}

// ComputeStripes chains seeds into per-row stripes for the banded DP.
// Seeds are first sorted by query position, then filtered greedily
// (see chainSeeds): a seed is kept only if it starts at or after the
// end of the previously kept seed on both query and reference, so of
// overlapping seeds the first in query order wins. Returns
// SeedMatchFailure if fewer than two seeds survive or if the seeds'
// combined query coverage falls below MinSeedCover.
func ComputeStripes(seeds []Seed, qryLen, refLen int, params Params) ([]Stripe, error) {
	chain := chainSeeds(seeds)
	if len(chain) < 2 {
		return nil, errutil.WrapKind(&ErrSeedMatchFailure{NumSeeds: len(chain)}, errutil.KindAlignmentFailure, "computing alignment band from seeds")
	}

	covered := 0
	for _, s := range chain {
		covered += s.Length
	}
	coverage := float64(covered) / float64(qryLen)
	if coverage < params.MinSeedCover {
		return nil, errutil.WrapKind(&ErrSeedMatchFailure{NumSeeds: len(chain), Coverage: coverage}, errutil.KindAlignmentFailure, "computing alignment band from seeds")
	}

	stripes := make([]Stripe, qryLen+1)
	for row := 0; row <= qryLen; row++ {
		diag := expectedDiagonal(chain, row)
		bandwidth := params.ExcessBandwidth
		if row < params.KmerDistance || row > qryLen-params.KmerDistance {
			bandwidth = params.TerminalBandwidth
		}
		begin := row + diag - bandwidth
		end := row + diag + bandwidth + 1
		if begin < 0 {
			begin = 0
		}
		if end > refLen {
			end = refLen
		}
		if begin > end {
			begin = end
		}
		stripes[row] = Stripe{Begin: begin, End: end}
	}
	return stripes, nil
}

// chainSeeds sorts seeds by query position and greedily keeps
// non-conflicting seeds (each subsequent seed must start at or after
// the previous seed's query and reference end), discarding seeds that
// would overlap or move backward along the query or the reference.
func chainSeeds(seeds []Seed) []Seed {
	sorted := make([]Seed, len(seeds))
	copy(sorted, seeds)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].QryPos < sorted[j-1].QryPos; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var chain []Seed
	for _, s := range sorted {
		if len(chain) == 0 {
			chain = append(chain, s)
			continue
		}
		last := chain[len(chain)-1]
		if s.QryPos >= last.QryPos+last.Length && s.RefPos >= last.RefPos+last.Length {
			chain = append(chain, s)
		}
	}
	return chain
}

// expectedDiagonal returns the interpolated diagonal (refPos - qryPos)
// for a query row, based on the two chain seeds bracketing it (or the
// nearest one, at the ends).
func expectedDiagonal(chain []Seed, row int) int {
	if len(chain) == 0 {
		return 0
	}
	if row <= chain[0].QryPos {
		return chain[0].Diagonal()
	}
	last := chain[len(chain)-1]
	if row >= last.QryPos+last.Length {
		return last.Diagonal()
	}
	for i := 0; i < len(chain)-1; i++ {
		a, b := chain[i], chain[i+1]
		if row >= a.QryPos && row <= b.QryPos {
			if b.QryPos == a.QryPos {
				return a.Diagonal()
			}
			t := float64(row-a.QryPos) / float64(b.QryPos-a.QryPos)
			return a.Diagonal() + int(t*float64(b.Diagonal()-a.Diagonal()))
		}
	}
	return chain[len(chain)-1].Diagonal()
}
