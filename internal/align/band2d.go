// Package align implements banded affine-gap pairwise nucleotide
// alignment (spec.md §4.2 "DP"/"Backtrace"/"Failure modes") and the
// insertion-stripping postprocessing step. The DP fill and backtrace
// are authored directly from spec.md's own transition formulas: the
// retrieved original_source DP
// (original_source/packages_rs/nextclade/src/align/score_matrix.rs)
// indexes its band the opposite way around (rows = reference,
// columns = query) from what spec.md §4.2 describes ("row i ...
// stripe ... over columns (reference positions)", i.e. rows = query,
// columns = reference) — since seeding (internal/seedindex) already
// produces stripes indexed by query row, this package follows the
// spec's row/column convention rather than the older Rust file's, and
// DESIGN.md records that choice. The MATCH/REF_GAP/QRY_GAP bit-flag
// names and sparse per-row-stripe storage idea (Band2d) are preserved
// from the original regardless of axis convention.
package align

import "github.com/nextstrain/nextclade-core/internal/seedindex"

// Stripe is re-exported from seedindex so callers of this package
// don't need to import both for a single concept.
type Stripe = seedindex.Stripe

// Band2d is a sparse 2-D container whose row i is only allocated over
// the column range [stripes[i].Begin, stripes[i].End), matching
// spec.md §4.2's "only cells within stripes are allocated."
type Band2d[T any] struct {
	stripes []Stripe
	offsets []int
	data    []T
}

// NewBand2d allocates a Band2d sized to the given stripes.
func NewBand2d[T any](stripes []Stripe) *Band2d[T] {
	offsets := make([]int, len(stripes)+1)
	for i, s := range stripes {
		width := s.End - s.Begin
		if width < 0 {
			width = 0
		}
		offsets[i+1] = offsets[i] + width
	}
	return &Band2d[T]{
		stripes: stripes,
		offsets: offsets,
		data:    make([]T, offsets[len(stripes)]),
	}
}

// InStripe reports whether column j is allocated for row i.
func (b *Band2d[T]) InStripe(i, j int) bool {
	if i < 0 || i >= len(b.stripes) {
		return false
	}
	s := b.stripes[i]
	return j >= s.Begin && j < s.End
}

func (b *Band2d[T]) index(i, j int) int {
	return b.offsets[i] + (j - b.stripes[i].Begin)
}

// At returns the value at (i,j); the caller must have checked
// InStripe first.
func (b *Band2d[T]) At(i, j int) T {
	return b.data[b.index(i, j)]
}

// Set stores a value at (i,j); the caller must have checked InStripe
// first.
func (b *Band2d[T]) Set(i, j int, v T) {
	b.data[b.index(i, j)] = v
}

// StripeAt returns the stripe bounds for row i.
func (b *Band2d[T]) StripeAt(i int) Stripe { return b.stripes[i] }

// NumRows returns the number of rows (including row 0).
func (b *Band2d[T]) NumRows() int { return len(b.stripes) }

// DataLen returns the total number of allocated cells.
func (b *Band2d[T]) DataLen() int { return len(b.data) }
