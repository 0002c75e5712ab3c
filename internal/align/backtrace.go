package align

// backtraceResult is the raw aligned byte sequences before insertion
// stripping, plus the alignment score.
type backtraceResult struct {
	alignedRef []byte
	alignedQry []byte
	score      int32
}

// runBacktrace selects the best terminal cell (honoring free-terminal
// settings) and walks the path matrix back to (0,0), emitting aligned
// ref/query bytes per spec.md §4.2 "Backtrace".
func runBacktrace(qry, ref []byte, mat scoreMatrixResult) backtraceResult {
	refLen := len(ref)
	qryLen := len(qry)

	bestI, bestJ, bestScore := qryLen, refLen, noAlign
	if mat.scores.InStripe(qryLen, refLen) {
		bestScore = mat.scores.At(qryLen, refLen)
	}

	// Search the last row and last column for a better terminal cell,
	// since the band may not include the exact bottom-right corner and
	// free terminal gaps make any point on those edges a valid end.
	if qryLen < mat.scores.NumRows() {
		stripe := mat.scores.StripeAt(qryLen)
		for j := stripe.Begin; j < stripe.End; j++ {
			if s := mat.scores.At(qryLen, j); s > bestScore {
				bestScore, bestI, bestJ = s, qryLen, j
			}
		}
	}
	for i := 0; i < mat.scores.NumRows(); i++ {
		if mat.scores.InStripe(i, refLen) {
			if s := mat.scores.At(i, refLen); s > bestScore {
				bestScore, bestI, bestJ = s, i, refLen
			}
		}
	}

	var alignedRef, alignedQry []byte
	i, j := bestI, bestJ

	// Any ref positions beyond bestJ (if the backtrace didn't end at
	// the true corner) are emitted as trailing query gaps; likewise for
	// query positions beyond bestI.
	for k := refLen - 1; k >= bestJ; k-- {
		alignedRef = append(alignedRef, ref[k])
		alignedQry = append(alignedQry, '-')
	}
	for k := qryLen - 1; k >= bestI; k-- {
		alignedRef = append(alignedRef, '-')
		alignedQry = append(alignedQry, qry[k])
	}

	for i > 0 || j > 0 {
		path := mat.paths.At(i, j)
		switch {
		case path&pathMatch != 0:
			alignedRef = append(alignedRef, ref[j-1])
			alignedQry = append(alignedQry, qry[i-1])
			i--
			j--
		case path&pathQryGap != 0:
			alignedRef = append(alignedRef, '-')
			alignedQry = append(alignedQry, qry[i-1])
			i--
		case path&pathRefGap != 0:
			alignedRef = append(alignedRef, ref[j-1])
			alignedQry = append(alignedQry, '-')
			j--
		default:
			// Should not happen for a well-formed band; guard against
			// an infinite loop by forcing progress.
			if j > 0 {
				alignedRef = append(alignedRef, ref[j-1])
				alignedQry = append(alignedQry, '-')
				j--
			} else {
				alignedRef = append(alignedRef, '-')
				alignedQry = append(alignedQry, qry[i-1])
				i--
			}
		}
	}

	reverseBytes(alignedRef)
	reverseBytes(alignedQry)

	return backtraceResult{alignedRef: alignedRef, alignedQry: alignedQry, score: bestScore}
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
