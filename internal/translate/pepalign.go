package translate

import "github.com/nextstrain/nextclade-core/internal/scoring"

// alignPeptides runs a full (unbanded) global affine-gap alignment of
// a query peptide against a reference peptide, using a flat (not
// codon-aware) gap-open/extend cost, per spec.md §4.3 step 6. Peptides
// are short enough (hundreds to a few thousand residues) that a full
// Gotoh matrix is cheap, unlike the nucleotide aligner which needs
// banding (internal/align) to scale to whole genomes.
func alignPeptides(ref, qry []byte, params scoring.AaParams) (alignedRef, alignedQry []byte) {
	n, m := len(qry), len(ref) // rows = query, columns = reference

	const negInf = -1 << 30

	match := make([][]int, n+1)
	insQry := make([][]int, n+1) // gap in reference (query residue unmatched against a ref gap)
	insRef := make([][]int, n+1) // gap in query (reference residue unmatched against a qry gap)
	for i := range match {
		match[i] = make([]int, m+1)
		insQry[i] = make([]int, m+1)
		insRef[i] = make([]int, m+1)
	}

	match[0][0] = 0
	insQry[0][0] = negInf
	insRef[0][0] = negInf
	for j := 1; j <= m; j++ {
		match[0][j] = negInf
		insRef[0][j] = negInf
		insQry[0][j] = params.GapOpen + (j-1)*params.GapExtend
	}
	for i := 1; i <= n; i++ {
		match[i][0] = negInf
		insQry[i][0] = negInf
		insRef[i][0] = params.GapOpen + (i-1)*params.GapExtend
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			s := params.AaScore(ref[j-1], qry[i-1])
			match[i][j] = max3(match[i-1][j-1], insQry[i-1][j-1], insRef[i-1][j-1]) + s

			openFromMatch := match[i][j-1] + params.GapOpen
			extendFromGap := insQry[i][j-1] + params.GapExtend
			insQry[i][j] = maxInt(openFromMatch, extendFromGap)

			openFromMatch2 := match[i-1][j] + params.GapOpen
			extendFromGap2 := insRef[i-1][j] + params.GapExtend
			insRef[i][j] = maxInt(openFromMatch2, extendFromGap2)
		}
	}

	// Backtrace from the best of the three matrices at (n, m).
	type state int
	const (
		stMatch state = iota
		stInsQry
		stInsRef
	)
	i, j := n, m
	cur := stMatch
	if insQry[n][m] > match[n][m] && insQry[n][m] >= insRef[n][m] {
		cur = stInsQry
	} else if insRef[n][m] > match[n][m] && insRef[n][m] > insQry[n][m] {
		cur = stInsRef
	}

	for i > 0 || j > 0 {
		switch cur {
		case stMatch:
			if i == 0 {
				cur = stInsQry
				continue
			}
			if j == 0 {
				cur = stInsRef
				continue
			}
			alignedRef = append(alignedRef, ref[j-1])
			alignedQry = append(alignedQry, qry[i-1])
			best := match[i-1][j-1]
			next := stMatch
			if insQry[i-1][j-1] > best {
				best = insQry[i-1][j-1]
				next = stInsQry
			}
			if insRef[i-1][j-1] > best {
				next = stInsRef
			}
			i--
			j--
			cur = next
		case stInsQry:
			if j == 0 {
				cur = stInsRef
				continue
			}
			alignedRef = append(alignedRef, ref[j-1])
			alignedQry = append(alignedQry, '-')
			if j > 1 && insQry[i][j-1]+params.GapExtend >= match[i][j-1]+params.GapOpen {
				cur = stInsQry
			} else {
				cur = stMatch
			}
			j--
		case stInsRef:
			if i == 0 {
				cur = stMatch
				continue
			}
			alignedRef = append(alignedRef, '-')
			alignedQry = append(alignedQry, qry[i-1])
			if i > 1 && insRef[i-1][j]+params.GapExtend >= match[i-1][j]+params.GapOpen {
				cur = stInsRef
			} else {
				cur = stMatch
			}
			i--
		}
	}

	reverseBytesSlice(alignedRef)
	reverseBytesSlice(alignedQry)
	return alignedRef, alignedQry
}

func max3(a, b, c int) int {
	return maxInt(a, maxInt(b, c))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func reverseBytesSlice(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
