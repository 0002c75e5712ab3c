package align

import (
	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/seedindex"
)

// Result is the outcome of a single pairwise alignment (spec.md §3
// "Alignment outputs"): the gap-inclusive aligned reference, aligned
// query, the integer alignment score, and whether the query had to be
// reverse-complemented to achieve it.
type Result struct {
	AlignedRef       []byte
	AlignedQry       []byte
	Score            int32
	WasReverseComplemented bool
}

// ErrSequenceTooShort is returned when the query is shorter than
// Params.MinLength, before any seeding is attempted.
type ErrSequenceTooShort struct {
	Length, MinLength int
}

func (e *ErrSequenceTooShort) Error() string {
	return "sequence too short for alignment"
}

// ErrBandTooLarge is returned when the computed stripes would require
// more DP cells than Params.MaxBandArea allows.
type ErrBandTooLarge struct {
	Area, MaxArea int
}

func (e *ErrBandTooLarge) Error() string {
	return "alignment band too large"
}

// AlignPairwise aligns qry against ref under params, per spec.md §4.2
// "Failure modes": it rejects undersized queries outright, seeds with
// internal/seedindex, rejects overlarge bands, and retries seeding
// with a widened band up to Params.MaxAlignmentAttempts times when the
// DP's best terminal score never clears zero (the band was too
// narrow to find a sane path). If every attempt on the forward strand
// fails and Params.RetryReverseComplement is set, the whole attempt
// loop is repeated once against the reverse complement of qry.
func AlignPairwise(qry, ref []byte, gapOpenClose []int, params Params) (Result, error) {
	if len(qry) < params.MinLength {
		return Result{}, errutil.WrapKind(
			&ErrSequenceTooShort{Length: len(qry), MinLength: params.MinLength},
			errutil.KindAlignmentFailure, "aligning query sequence")
	}

	res, err := alignOneStrand(qry, ref, gapOpenClose, params)
	if err == nil {
		return res, nil
	}
	if !params.RetryReverseComplement {
		return Result{}, err
	}

	rc := alphabet.ReverseComplement(qry)
	res, rcErr := alignOneStrand(rc, ref, gapOpenClose, params)
	if rcErr != nil {
		return Result{}, err
	}
	res.WasReverseComplemented = true
	return res, nil
}

// alignOneStrand runs the seed → stripe → DP → backtrace pipeline for
// one orientation of qry, retrying with a widened band on a
// non-positive best score.
func alignOneStrand(qry, ref []byte, gapOpenClose []int, params Params) (Result, error) {
	seedParams := seedindex.DefaultParams()
	idx := seedindex.Build(ref, seedParams)

	maxAttempts := params.MaxAlignmentAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		widened := seedParams
		widened.ExcessBandwidth += attempt * seedParams.ExcessBandwidth
		widened.TerminalBandwidth += attempt * seedParams.TerminalBandwidth

		seeds := seedindex.FindSeeds(qry, idx, widened, ref)
		stripes, err := seedindex.ComputeStripes(seeds, len(qry), len(ref), widened)
		if err != nil {
			lastErr = err
			continue
		}

		area := 0
		for _, s := range stripes {
			if w := s.End - s.Begin; w > 0 {
				area += w
			}
		}
		if area > params.MaxBandArea {
			lastErr = errutil.WrapKind(&ErrBandTooLarge{Area: area, MaxArea: params.MaxBandArea},
				errutil.KindAlignmentFailure, "computing alignment band")
			continue
		}

		mat := fillScoreMatrix(qry, ref, gapOpenClose, stripes, params)
		if mat.scores.InStripe(len(qry), len(ref)) && mat.scores.At(len(qry), len(ref)) <= 0 && attempt+1 < maxAttempts {
			lastErr = errutil.New(errutil.KindAlignmentFailure, "alignment score non-positive, widening band")
			continue
		}

		bt := runBacktrace(qry, ref, mat)
		return Result{AlignedRef: bt.alignedRef, AlignedQry: bt.alignedQry, Score: bt.score}, nil
	}
	if lastErr == nil {
		lastErr = errutil.New(errutil.KindAlignmentFailure, "alignment failed after all attempts")
	}
	return Result{}, lastErr
}
