// Package tree implements the final tree-builder step of spec.md §4.7:
// ladderize the finished placement tree and emit it as Auspice JSON or
// Newick. Attachment itself (§4.5) lives in internal/placement, since
// it's a placement-engine concern; this package only reorders and
// serializes the already-attached node tree.
package tree

import (
	"github.com/nextstrain/nextclade-core/internal/auspice"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/graph"
)

// Ladderize reorders every node's children by ascending subtree size
// (smaller subtrees first), the conventional tree layout convention,
// by building a throwaway internal/graph graph over the node tree,
// running its generic Ladderize, and copying the resulting child order
// back onto the *auspice.Node tree in place. Reusing the generic
// graph-based ladderization (rather than reimplementing the two-pass
// terminal-count algorithm directly over *auspice.Node) keeps the
// ladderization rule defined in exactly one place.
func Ladderize(root *auspice.Node) error {
	g := graph.New[*auspice.Node, struct{}]()
	rootKey := buildGraph(g, root)
	if err := graph.Ladderize(g); err != nil {
		return errutil.WrapKind(err, errutil.KindInternal, "ladderizing placement tree")
	}
	applyOrder(g, rootKey)
	return nil
}

func buildGraph(g *graph.Graph[*auspice.Node, struct{}], n *auspice.Node) graph.NodeKey {
	key := g.AddNode(n)
	for _, c := range n.Children {
		childKey := buildGraph(g, c)
		g.AddEdge(key, childKey, struct{}{})
	}
	return key
}

func applyOrder(g *graph.Graph[*auspice.Node, struct{}], key graph.NodeKey) {
	n := *g.Payload(key)
	children := g.ChildKeys(key)
	ordered := make([]*auspice.Node, 0, len(children))
	for _, c := range children {
		ordered = append(ordered, *g.Payload(c))
		applyOrder(g, c)
	}
	n.Children = ordered
}
