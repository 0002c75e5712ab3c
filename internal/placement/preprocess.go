// Package placement implements the reference-tree preprocessing,
// nearest-node search, private-mutation calling, divergence, and
// new-leaf attachment steps of the placement engine, grounded on
// original_source/packages_rs/nextclade/src/tree/tree_preprocess.rs,
// tree_find_nearest_node (referenced from find_private_nuc_mutations.rs
// and the surrounding placement pipeline), and tree_attach_new_nodes.rs.
package placement

import (
	"github.com/nextstrain/nextclade-core/internal/auspice"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/graph"
	"github.com/nextstrain/nextclade-core/internal/mutation"
)

// NodePayload is the graph.Graph node payload: the Auspice node itself
// plus the cumulative mutation maps computed during preprocessing,
// keyed by position/codon so the nearest-node search and private-
// mutation calling never have to re-walk ancestors.
type NodePayload struct {
	Node *auspice.Node

	// NucMuts is this node's cumulative nucleotide state relative to
	// reference: position -> query letter, present only where it
	// differs from reference (a reversion removes the entry, mirroring
	// tree_preprocess.rs's map_nuc_muts).
	NucMuts map[int]byte

	// AaMuts is the same, per CDS name, for amino acids.
	AaMuts map[string]map[int]byte
}

// EdgePayload is currently empty; tree topology carries no per-edge
// data beyond what NodePayload already has (branch mutations live on
// the child node's BranchAttrs).
type EdgePayload struct{}

// Graph is the placement engine's working representation of the
// reference tree.
type Graph = graph.Graph[NodePayload, EdgePayload]

// Preprocess converts an Auspice tree into a Graph with cumulative
// mutation maps computed preorder, and validates it has exactly one
// root. Grounded on tree_preprocess.rs's
// tree_preprocess_in_place_impl_recursive, translated from an in-place
// tree mutation to building a fresh graph (graph.Graph has no in-place
// node mutation API by design, it's arena-indexed).
func Preprocess(tree *auspice.Tree) (*Graph, graph.NodeKey, error) {
	g := graph.New[NodePayload, EdgePayload]()
	buildRecursive(g, tree.Root, nil, nil, graph.NodeKey(-1))
	rootKey, err := g.ExactlyOneRoot()
	if err != nil {
		return nil, 0, errutil.WrapKind(err, errutil.KindInvalidReference, "preprocessing reference tree")
	}
	return g, rootKey, nil
}

func buildRecursive(
	g *Graph,
	node *auspice.Node,
	parentNucMuts map[int]byte,
	parentAaMuts map[string]map[int]byte,
	parentKey graph.NodeKey,
) graph.NodeKey {
	nucMuts := applyNucMuts(node, parentNucMuts)
	aaMuts := applyAaMuts(node, parentAaMuts)

	key := g.AddNode(NodePayload{Node: node, NucMuts: nucMuts, AaMuts: aaMuts})
	if parentKey >= 0 {
		g.AddEdge(parentKey, key, EdgePayload{})
	}
	for _, child := range node.Children {
		buildRecursive(g, child, nucMuts, aaMuts, key)
	}
	return key
}

func applyNucMuts(node *auspice.Node, parent map[int]byte) map[int]byte {
	out := make(map[int]byte, len(parent))
	for k, v := range parent {
		out[k] = v
	}
	for _, s := range node.BranchAttrs.Mutations["nuc"] {
		sub, err := mutation.ParseNucSub(s)
		if err != nil {
			continue
		}
		pos := sub.Pos.Int()
		if sub.QryNuc == sub.RefNuc {
			delete(out, pos)
		} else {
			out[pos] = sub.QryNuc
		}
	}
	return out
}

func applyAaMuts(node *auspice.Node, parent map[string]map[int]byte) map[string]map[int]byte {
	out := make(map[string]map[int]byte, len(parent))
	for gene, m := range parent {
		cp := make(map[int]byte, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[gene] = cp
	}
	for gene, muts := range node.BranchAttrs.Mutations {
		if gene == "nuc" {
			continue
		}
		geneMap, ok := out[gene]
		if !ok {
			geneMap = make(map[int]byte)
			out[gene] = geneMap
		}
		for _, s := range muts {
			sub, err := mutation.ParseAaSubMinimal(gene, s)
			if err != nil {
				continue
			}
			pos := sub.Pos.Int()
			if sub.QryAa == sub.RefAa {
				delete(geneMap, pos)
			} else {
				geneMap[pos] = sub.QryAa
			}
		}
	}
	return out
}
