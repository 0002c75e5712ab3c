package graph

import "sort"

// Ladderize reorders every node's outbound edges so that children
// with smaller subtrees (fewer terminal leaves) come first, the
// conventional "ladderized" tree layout. Grounded on
// original_source/packages/nextclade/src/graph/ladderize.rs's
// two-pass approach: a bottom-up pass computes a terminal-count map,
// then a separate top-down pass sorts each node's outbound edges by
// that map and sets the new order in place, without building the Rust
// version's separate HashMap-keyed order map.
func Ladderize[N any, E any](g *Graph[N, E]) error {
	root, err := g.ExactlyOneRoot()
	if err != nil {
		return err
	}
	terminalCount := make(map[NodeKey]int)
	countTerminals(g, root, terminalCount)
	reorderBySubtreeSize(g, root, terminalCount)
	return nil
}

func countTerminals[N any, E any](g *Graph[N, E], key NodeKey, counts map[NodeKey]int) int {
	children := g.ChildKeys(key)
	if len(children) == 0 {
		counts[key] = 1
		return 1
	}
	total := 0
	for _, c := range children {
		total += countTerminals(g, c, counts)
	}
	counts[key] = total
	return total
}

func reorderBySubtreeSize[N any, E any](g *Graph[N, E], key NodeKey, counts map[NodeKey]int) {
	edges := append([]EdgeKey(nil), g.Outbound(key)...)
	sort.SliceStable(edges, func(i, j int) bool {
		return counts[g.EdgeTarget(edges[i])] < counts[g.EdgeTarget(edges[j])]
	})
	g.SetOutboundOrder(key, edges)
	for _, e := range edges {
		reorderBySubtreeSize(g, g.EdgeTarget(e), counts)
	}
}
