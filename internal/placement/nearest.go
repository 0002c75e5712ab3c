package placement

import (
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/graph"
	"github.com/nextstrain/nextclade-core/internal/mutation"
)

// QuerySubs is a query's nucleotide substitutions keyed by reference
// position, the shape the nearest-node search and private-mutation
// calling both consume.
type QuerySubs map[int]byte

// NewQuerySubs builds a QuerySubs lookup from a called substitution
// list.
func NewQuerySubs(subs []mutation.NucSub) QuerySubs {
	m := make(QuerySubs, len(subs))
	for _, s := range subs {
		m[s.Pos.Int()] = s.QryNuc
	}
	return m
}

// sequenced reports whether pos is inside alignRange and not covered
// by any missing (N) range, the restriction spec.md §4.5 places on
// the nearest-node search's distance contribution.
func sequenced(pos int, alignRange coord.NucRefGlobalRange, missing []coord.NucRefGlobalRange) bool {
	if !alignRange.Contains(coord.NewNucRefGlobalPosition(pos)) {
		return false
	}
	for _, r := range missing {
		if r.Contains(coord.NewNucRefGlobalPosition(pos)) {
			return false
		}
	}
	return true
}

// branchDelta computes how much closer (negative is closer) query is
// to a node than to that node's parent, based solely on the branch
// mutations leading to node: for each branch mutation, +1 if the
// query does not carry it, -1 if it does (and the mutation is not a
// reversion, i.e. query letter differs from reference at that
// position), 0 if the position falls outside the query's sequenced
// range. Grounded on spec.md §4.5's nearest-node-search distance rule,
// translating the "reversion" check as "the branch mutation's own
// qry/ref letters differ" since a true reversion mutation (qry==ref)
// is never emitted as a branch mutation in the first place.
func branchDelta(node *NodePayload, querySubs QuerySubs, alignRange coord.NucRefGlobalRange, missing []coord.NucRefGlobalRange) int {
	delta := 0
	for _, s := range node.Node.BranchAttrs.Mutations["nuc"] {
		sub, err := mutation.ParseNucSub(s)
		if err != nil {
			continue
		}
		pos := sub.Pos.Int()
		if !sequenced(pos, alignRange, missing) {
			continue
		}
		qryNuc, hasSub := querySubs[pos]
		if hasSub && qryNuc == sub.QryNuc {
			delta--
		} else {
			delta++
		}
	}
	return delta
}

// FindNearestNode descends from root, at each step moving to the
// child minimizing branchDelta against the query, stopping once no
// child improves on the current node. Grounded on spec.md §4.5's
// nearest-node-search procedure.
func FindNearestNode(g *Graph, root graph.NodeKey, querySubs QuerySubs, alignRange coord.NucRefGlobalRange, missing []coord.NucRefGlobalRange) graph.NodeKey {
	current := root
	for {
		children := g.ChildKeys(current)
		bestChild := graph.NodeKey(-1)
		bestDelta := 0
		for _, c := range children {
			d := branchDelta(g.Payload(c), querySubs, alignRange, missing)
			if d < bestDelta {
				bestDelta = d
				bestChild = c
			}
		}
		if bestChild < 0 {
			return current
		}
		current = bestChild
	}
}
