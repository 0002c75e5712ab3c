// Package auspice parses and serializes the Auspice JSON v2 tree format
// (the reference tree the placement engine attaches new query leaves
// to), grounded on the node/meta field names used by
// original_source/packages_rs/nextclade/src/tree/tree_preprocess.rs and
// tree_attach_new_nodes.rs, and on the teacher's own JSON-handling
// convention in io/polyjson/polyjson.go (a small Parse/Write pair
// wrapping encoding/json) generalized to return errors instead of
// swallowing them, per the ambient error-handling stack.
package auspice

import (
	"encoding/json"

	"github.com/nextstrain/nextclade-core/internal/errutil"
)

// UnknownValue is the sentinel Auspice uses for a node
// attribute whose value was never populated (e.g. "country" on a
// freshly attached query leaf).
const UnknownValue = "Unknown"

// DivergenceUnits selects how the tree's "div" attribute accumulates:
// a raw mutation count, or a per-site rate (count / genome length).
type DivergenceUnits int

const (
	DivergenceUnitsNumSubstitutions DivergenceUnits = iota
	DivergenceUnitsNumSubstitutionsPerYear
)

// TreeNodeAttr is Auspice's {"value": ...} wrapper used for most
// per-node string/number attributes, optionally carrying a confidence
// interval or an entropy value when the upstream tree-builder supplied
// one.
type TreeNodeAttr struct {
	Value      any     `json:"value"`
	Confidence []float64 `json:"confidence,omitempty"`
	Entropy    *float64  `json:"entropy,omitempty"`
}

// NewTreeNodeAttr wraps a plain value.
func NewTreeNodeAttr(value any) *TreeNodeAttr {
	return &TreeNodeAttr{Value: value}
}

// TreeNodeAttrs is the node_attrs object of one Auspice tree node.
// Named fields cover what the placement engine and QC reporting read
// or write; everything else (arbitrary per-dataset clade-like
// attributes, geography, dataset-specific metadata) round-trips
// through Other.
type TreeNodeAttrs struct {
	Div              *float64                 `json:"div,omitempty"`
	CladeMembership  *TreeNodeAttr            `json:"clade_membership,omitempty"`
	NodeType         *TreeNodeAttr            `json:"node_type,omitempty"`
	Region           *TreeNodeAttr            `json:"region,omitempty"`
	Country          *TreeNodeAttr            `json:"country,omitempty"`
	Division         *TreeNodeAttr            `json:"division,omitempty"`
	Alignment        *TreeNodeAttr            `json:"alignment,omitempty"`
	Missing          *TreeNodeAttr            `json:"missing,omitempty"`
	Gaps             *TreeNodeAttr            `json:"gaps,omitempty"`
	NonACGTNs        *TreeNodeAttr            `json:"non_acgtns,omitempty"`
	HasPcrPrimerChanges *TreeNodeAttr         `json:"has_pcr_primer_changes,omitempty"`
	PcrPrimerChanges *TreeNodeAttr            `json:"pcr_primer_changes,omitempty"`
	MissingCdses     *TreeNodeAttr            `json:"missing_cdses,omitempty"`
	QcStatus         *TreeNodeAttr            `json:"qc_status,omitempty"`
	CladeNodeAttrs   map[string]*TreeNodeAttr `json:"-"`
	Other            map[string]json.RawMessage `json:"-"`
}

// TreeBranchAttrs is the branch_attrs object: a set of mutation lists
// keyed by "nuc" or a CDS name, plus optional clade/placement labels.
type TreeBranchAttrs struct {
	Mutations map[string][]string `json:"mutations,omitempty"`
	Labels    map[string]string   `json:"labels,omitempty"`
	Other     map[string]json.RawMessage `json:"-"`
}

// Node is one node of the Auspice tree, recursively nested.
type Node struct {
	Name        string        `json:"name"`
	BranchAttrs TreeBranchAttrs `json:"branch_attrs"`
	NodeAttrs   TreeNodeAttrs   `json:"node_attrs"`
	Children    []*Node         `json:"children,omitempty"`

	// IsRefNode never round-trips to JSON: it records whether the node
	// came from the dataset tree (set by Parse) as opposed to having
	// been attached as a new query leaf or an auxiliary parent.
	IsRefNode bool `json:"-"`
}

// Meta is the tree-wide metadata object: clade definitions, color/
// geography scales, panels, and the divergence-units declaration the
// placement engine needs. Anything not named here round-trips through
// Other.
type Meta struct {
	Title           string                     `json:"title,omitempty"`
	Description     string                     `json:"description,omitempty"`
	LastUpdated     string                     `json:"updated,omitempty"`
	DivergenceUnits DivergenceUnits            `json:"-"`
	ExtensionsRaw   json.RawMessage            `json:"extensions,omitempty"`
	Other           map[string]json.RawMessage `json:"-"`
}

// Tree is the root Auspice JSON v2 document.
type Tree struct {
	Version      string          `json:"version,omitempty"`
	Meta         Meta            `json:"meta"`
	Root         *Node           `json:"tree"`
	RootSequence json.RawMessage `json:"root_sequence,omitempty"`
}

// Parse decodes an Auspice JSON v2 document.
func Parse(data []byte) (*Tree, error) {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, "parsing Auspice tree JSON")
	}
	markRefNodes(tree.Root)
	return &tree, nil
}

func markRefNodes(n *Node) {
	if n == nil {
		return
	}
	n.IsRefNode = true
	for _, c := range n.Children {
		markRefNodes(c)
	}
}

// Stringify encodes an Auspice JSON v2 document, pretty-printed the
// way Auspice's own exporters do (two-space indent).
func Stringify(tree *Tree) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, errutil.Wrap(err, "serializing Auspice tree JSON")
	}
	return data, nil
}
