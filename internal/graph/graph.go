// Package graph is a generic arena-indexed directed graph: nodes and
// edges live in flat slices and are referenced by integer keys rather
// than pointers, so a tree with parent<->child back-references never
// needs a pointer cycle (spec.md §9 "Cyclic back-references in the
// tree"). Grounded on
// original_source/packages/nextclade/src/graph/{node,edge,graph}.rs's
// GraphNodeKey/GraphEdgeKey/Node/Graph shape, translated from Rust
// generics (`N: GraphNode`) to Go type parameters.
package graph

import "fmt"

// NodeKey indexes into a Graph's node arena.
type NodeKey int

// EdgeKey indexes into a Graph's edge arena.
type EdgeKey int

// node holds one payload plus its inbound/outbound edge keys.
type node[N any] struct {
	key      NodeKey
	data     N
	outbound []EdgeKey
	inbound  []EdgeKey
}

// edge holds one payload plus its source/target node keys.
type edge[E any] struct {
	key    EdgeKey
	data   E
	source NodeKey
	target NodeKey
}

// Graph is a directed graph over node payload type N and edge payload
// type E, stored as two arenas.
type Graph[N any, E any] struct {
	nodes []node[N]
	edges []edge[E]
}

// New returns an empty graph.
func New[N any, E any]() *Graph[N, E] {
	return &Graph[N, E]{}
}

// AddNode appends a new node and returns its key.
func (g *Graph[N, E]) AddNode(data N) NodeKey {
	key := NodeKey(len(g.nodes))
	g.nodes = append(g.nodes, node[N]{key: key, data: data})
	return key
}

// AddEdge appends a new edge from source to target and returns its
// key, registering it in both endpoints' edge lists.
func (g *Graph[N, E]) AddEdge(source, target NodeKey, data E) EdgeKey {
	key := EdgeKey(len(g.edges))
	g.edges = append(g.edges, edge[E]{key: key, data: data, source: source, target: target})
	g.nodes[source].outbound = append(g.nodes[source].outbound, key)
	g.nodes[target].inbound = append(g.nodes[target].inbound, key)
	return key
}

// NumNodes returns the total number of nodes ever added.
func (g *Graph[N, E]) NumNodes() int { return len(g.nodes) }

// Payload returns the data stored at key.
func (g *Graph[N, E]) Payload(key NodeKey) *N { return &g.nodes[key].data }

// EdgePayload returns the data stored on the edge at key.
func (g *Graph[N, E]) EdgePayload(key EdgeKey) *E { return &g.edges[key].data }

// EdgeSource returns an edge's source node key.
func (g *Graph[N, E]) EdgeSource(key EdgeKey) NodeKey { return g.edges[key].source }

// EdgeTarget returns an edge's target node key.
func (g *Graph[N, E]) EdgeTarget(key EdgeKey) NodeKey { return g.edges[key].target }

// Outbound returns a node's outbound edge keys, in current order.
func (g *Graph[N, E]) Outbound(key NodeKey) []EdgeKey { return g.nodes[key].outbound }

// Inbound returns a node's inbound edge keys.
func (g *Graph[N, E]) Inbound(key NodeKey) []EdgeKey { return g.nodes[key].inbound }

// SetOutboundOrder replaces a node's outbound edge order (used by
// Ladderize to reorder children by subtree size).
func (g *Graph[N, E]) SetOutboundOrder(key NodeKey, order []EdgeKey) {
	g.nodes[key].outbound = order
}

// IsLeaf reports whether a node has no outbound edges.
func (g *Graph[N, E]) IsLeaf(key NodeKey) bool { return len(g.nodes[key].outbound) == 0 }

// IsRoot reports whether a node has no inbound edges.
func (g *Graph[N, E]) IsRoot(key NodeKey) bool { return len(g.nodes[key].inbound) == 0 }

// ChildKeys returns the node keys reached by a node's outbound edges,
// in edge order.
func (g *Graph[N, E]) ChildKeys(key NodeKey) []NodeKey {
	out := make([]NodeKey, 0, len(g.nodes[key].outbound))
	for _, e := range g.nodes[key].outbound {
		out = append(out, g.edges[e].target)
	}
	return out
}

// ParentKey returns a node's single parent, if it has exactly one
// inbound edge (true for every non-root node in a well-formed tree).
func (g *Graph[N, E]) ParentKey(key NodeKey) (NodeKey, bool) {
	if len(g.nodes[key].inbound) != 1 {
		return 0, false
	}
	return g.edges[g.nodes[key].inbound[0]].source, true
}

// ErrNotExactlyOneRoot is returned by ExactlyOneRoot when the graph's
// root count is not exactly one.
type ErrNotExactlyOneRoot struct {
	NumRoots int
}

func (e *ErrNotExactlyOneRoot) Error() string {
	return fmt.Sprintf("expected exactly one root node, found %d", e.NumRoots)
}

// ExactlyOneRoot returns the graph's sole root key, or
// ErrNotExactlyOneRoot if there isn't exactly one (spec.md §4.5
// "Validate that exactly one root exists").
func (g *Graph[N, E]) ExactlyOneRoot() (NodeKey, error) {
	var roots []NodeKey
	for i := range g.nodes {
		if g.IsRoot(NodeKey(i)) {
			roots = append(roots, NodeKey(i))
		}
	}
	if len(roots) != 1 {
		return 0, &ErrNotExactlyOneRoot{NumRoots: len(roots)}
	}
	return roots[0], nil
}

// Preorder walks the graph depth-first from root, calling visit(node)
// before visiting any of its children.
func (g *Graph[N, E]) Preorder(root NodeKey, visit func(NodeKey)) {
	visit(root)
	for _, child := range g.ChildKeys(root) {
		g.Preorder(child, visit)
	}
}

// Postorder walks the graph depth-first from root, calling
// visit(node) after all of its children have been visited.
func (g *Graph[N, E]) Postorder(root NodeKey, visit func(NodeKey)) {
	for _, child := range g.ChildKeys(root) {
		g.Postorder(child, visit)
	}
	visit(root)
}
