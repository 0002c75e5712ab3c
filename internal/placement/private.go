package placement

import (
	"sort"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/mutation"
)

// LabeledNucSub is a novel private substitution annotated with the
// dataset-provided labels of every known mutation it matches (e.g.
// "immune escape", a named lineage-defining site).
type LabeledNucSub struct {
	Sub    mutation.NucSub
	Labels []string
}

// PrivateNucMutations is the query's mutation set relative to its
// nearest node: positions the query diverges on (Novel), positions
// where the query reverted to reference while the node had diverged
// (Reversions), and deletions handled the same way. Grounded on
// spec.md §4.5's "Private mutations" procedure.
type PrivateNucMutations struct {
	Novel      []mutation.NucSub
	Reversions []mutation.NucSub
	Labeled    []LabeledNucSub
	Deletions  []mutation.NucDel
}

// AllSubstitutions returns Novel and Reversions merged and sorted by
// position, the form used both as the new leaf's branch mutations and
// as input to QC's SnpClusters rule.
func (p PrivateNucMutations) AllSubstitutions() []mutation.NucSub {
	all := make([]mutation.NucSub, 0, len(p.Novel)+len(p.Reversions))
	all = append(all, p.Novel...)
	all = append(all, p.Reversions...)
	sort.Slice(all, func(i, j int) bool { return all[i].Pos.Less(all[j].Pos) })
	return all
}

// FindPrivateNucMutations computes the query's private mutations
// against its nearest node, per spec.md §4.5. refSeq supplies the
// reference letter at each reversion position; labeledMutations maps a
// dataset-defined labeled position+letter to its labels (only
// substitutions present in this map are reported with labels).
func FindPrivateNucMutations(
	node *NodePayload,
	querySubs []mutation.NucSub,
	queryDeletions []mutation.NucDel,
	alignRange coord.NucRefGlobalRange,
	missing []coord.NucRefGlobalRange,
	refSeq []byte,
	labeledMutations map[int]map[byte][]string,
) PrivateNucMutations {
	queryByPos := make(map[int]byte, len(querySubs))
	for _, s := range querySubs {
		queryByPos[s.Pos.Int()] = s.QryNuc
	}

	var novel []mutation.NucSub
	for _, s := range querySubs {
		pos := s.Pos.Int()
		nodeLetter, inNode := node.NucMuts[pos]
		if !inNode || nodeLetter != s.QryNuc {
			novel = append(novel, s)
		}
	}

	var reversions []mutation.NucSub
	for pos, nodeLetter := range node.NucMuts {
		if _, hasSub := queryByPos[pos]; hasSub {
			continue
		}
		if !sequenced(pos, alignRange, missing) {
			continue
		}
		if pos >= len(refSeq) {
			continue
		}
		reversions = append(reversions, mutation.NucSub{
			Pos:    coord.NewNucRefGlobalPosition(pos),
			RefNuc: nodeLetter,
			QryNuc: refSeq[pos],
		})
	}
	sort.Slice(reversions, func(i, j int) bool { return reversions[i].Pos.Less(reversions[j].Pos) })

	var labeled []LabeledNucSub
	for _, s := range novel {
		byLetter, ok := labeledMutations[s.Pos.Int()]
		if !ok {
			continue
		}
		labels, ok := byLetter[s.QryNuc]
		if !ok || len(labels) == 0 {
			continue
		}
		labeled = append(labeled, LabeledNucSub{Sub: s, Labels: labels})
	}

	// Deletions follow the same novel/reversion split at the
	// nucleotide level: a node's cumulative map never distinguishes a
	// substitution from a deletion (both are "a query letter differs
	// from reference"), so any query deletion not already reflected in
	// the node's map (as a gap) is novel, the rest are inherited.
	var novelDels []mutation.NucDel
	for _, d := range queryDeletions {
		begin, end := d.Range.Ints()
		anyNovel := false
		for pos := begin; pos < end; pos++ {
			if letter, ok := node.NucMuts[pos]; !ok || letter != '-' {
				anyNovel = true
				break
			}
		}
		if anyNovel {
			novelDels = append(novelDels, d)
		}
	}

	return PrivateNucMutations{Novel: novel, Reversions: reversions, Labeled: labeled, Deletions: novelDels}
}

// PrivateAaMutations is the per-CDS analog of PrivateNucMutations.
type PrivateAaMutations struct {
	Gene       string
	Novel      []mutation.AaChange
	Reversions []mutation.AaChange
}

// FindPrivateAaMutations computes private amino-acid mutations for one
// CDS, mirroring FindPrivateNucMutations at the amino-acid level.
func FindPrivateAaMutations(gene string, node *NodePayload, queryChanges []mutation.AaChange, sequencedRanges []coord.AaRefRange, refPeptide []byte) PrivateAaMutations {
	nodeAaMuts := node.AaMuts[gene]
	queryByPos := make(map[int]byte, len(queryChanges))

	var novel []mutation.AaChange
	for _, c := range queryChanges {
		pos := c.Pos.Int()
		queryByPos[pos] = c.QryAa
		nodeLetter, inNode := nodeAaMuts[pos]
		if !inNode || nodeLetter != c.QryAa {
			novel = append(novel, c)
		}
	}

	var reversions []mutation.AaChange
	for pos, nodeLetter := range nodeAaMuts {
		if _, hasSub := queryByPos[pos]; hasSub {
			continue
		}
		if !withinAnyAaRange(pos, sequencedRanges) {
			continue
		}
		if pos >= len(refPeptide) {
			continue
		}
		reversions = append(reversions, mutation.AaChange{
			Gene: gene, Pos: coord.NewAaRefPosition(pos),
			RefAa: nodeLetter, QryAa: refPeptide[pos], Type: mutation.AaChangeSub,
		})
	}
	sort.Slice(reversions, func(i, j int) bool { return reversions[i].Pos.Less(reversions[j].Pos) })

	return PrivateAaMutations{Gene: gene, Novel: novel, Reversions: reversions}
}

func withinAnyAaRange(pos int, ranges []coord.AaRefRange) bool {
	for _, r := range ranges {
		if r.Contains(coord.NewAaRefPosition(pos)) {
			return true
		}
	}
	return false
}
