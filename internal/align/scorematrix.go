package align

// Path bit flags for the backtrace matrix, preserved from
// original_source/packages_rs/nextclade/src/align/score_matrix.rs.
const (
	pathMatch        int8 = 1 << 0
	pathRefGap       int8 = 1 << 1
	pathQryGap       int8 = 1 << 2
	pathRefGapExtend int8 = 1 << 3
	pathQryGapExtend int8 = 1 << 4
)

// noAlign is a very negative sentinel score for cells that cannot
// participate in a valid alignment, matching the original's NO_ALIGN.
const noAlign int32 = -1_000_000_000

// scoreMatrixResult holds the filled score and path bands.
type scoreMatrixResult struct {
	scores *Band2d[int32]
	paths  *Band2d[int8]
}

// fillScoreMatrix runs the banded affine-gap DP described in
// spec.md §4.2 "DP", with rows indexed by query position (0..len(qry))
// and columns by reference position (0..len(ref)). gapOpenClose has
// one entry per reference position (len(ref) entries) from
// internal/scoring.GapOpenCloseVector.
func fillScoreMatrix(qry, ref []byte, gapOpenClose []int, stripes []Stripe, params Params) scoreMatrixResult {
	refLen := len(ref)
	qryLen := len(qry)

	scores := NewBand2d[int32](stripes)
	paths := NewBand2d[int8](stripes)

	leftAlign := int32(0)
	if params.GapAlignmentSide == GapAlignLeft {
		leftAlign = 1
	}

	scores.Set(0, 0, 0)
	paths.Set(0, 0, 0)

	// Row 0: no query consumed yet, only the reference-advancing
	// (column) transition is possible.
	for j := stripes[0].Begin + 1; j < stripes[0].End; j++ {
		paths.Set(0, j, pathRefGapExtend|pathRefGap)
		if params.LeftTerminalGapsFree {
			scores.Set(0, j, 0)
		} else if j == 1 {
			scores.Set(0, 1, -int32(gapOpenClose[0]))
		} else {
			scores.Set(0, j, scores.At(0, j-1)-int32(params.Nuc.PenaltyGapExtend))
		}
	}

	qryGapRunning := make([]int32, refLen+1)
	for j := range qryGapRunning {
		qryGapRunning[j] = noAlign
	}

	for i := 1; i <= qryLen; i++ {
		refGapRunning := noAlign
		stripe := stripes[i]

		for j := stripe.Begin; j < stripe.End; j++ {
			var path int8
			var origin int8
			score := noAlign

			if j == 0 {
				path = pathQryGapExtend
				origin = pathQryGap
				if params.LeftTerminalGapsFree {
					score = 0
				} else if i == 1 {
					score = -int32(gapOpenClose[0])
				} else {
					score = scores.At(i-1, 0) - int32(params.Nuc.PenaltyGapExtend)
				}
				path |= origin
				paths.Set(i, j, path)
				scores.Set(i, j, score)
				continue
			}

			// Match/mismatch (diagonal).
			if scores.InStripe(i-1, j-1) {
				m := params.Nuc.NucScore(ref[j-1], qry[i-1])
				cand := scores.At(i-1, j-1) + int32(m)
				score = cand
				origin = pathMatch
			}

			// Reference-advancing transition (row fixed, column - 1).
			if j > stripe.Begin {
				var tmpScore int32
				atEnd := j == refLen
				var refGapExtend, refGapOpen int32
				if !atEnd || !params.RightTerminalGapsFree {
					refGapExtend = refGapRunning - int32(params.Nuc.PenaltyGapExtend)
					refGapOpen = scores.At(i, j-1) - int32(gapOpenClose[j-1])
				} else {
					refGapExtend = refGapRunning
					refGapOpen = scores.At(i, j-1)
				}
				if refGapExtend >= refGapOpen && j > stripe.Begin+1 {
					tmpScore = refGapExtend
					path |= pathRefGapExtend
				} else {
					tmpScore = refGapOpen
				}
				refGapRunning = tmpScore
				if score+leftAlign < tmpScore {
					score = tmpScore
					origin = pathRefGap
				}
			}

			// Query-advancing transition (column fixed, row - 1).
			if scores.InStripe(i-1, j) {
				atEnd := i == qryLen
				var qryGapExtend, qryGapOpen int32
				if !atEnd || !params.RightTerminalGapsFree {
					qryGapExtend = qryGapRunning[j] - int32(params.Nuc.PenaltyGapExtend)
					qryGapOpen = scores.At(i-1, j) - int32(gapOpenClose[j-1])
				} else {
					qryGapExtend = qryGapRunning[j]
					qryGapOpen = scores.At(i-1, j)
				}
				var tmpScore int32
				if qryGapExtend >= qryGapOpen && scores.InStripe(i-2, j) {
					tmpScore = qryGapExtend
					path |= pathQryGapExtend
				} else {
					tmpScore = qryGapOpen
				}
				qryGapRunning[j] = tmpScore
				if score+leftAlign < tmpScore {
					score = tmpScore
					origin = pathQryGap
				}
			} else {
				qryGapRunning[j] = noAlign
			}

			path |= origin
			paths.Set(i, j, path)
			scores.Set(i, j, score)
		}
	}

	return scoreMatrixResult{scores: scores, paths: paths}
}
