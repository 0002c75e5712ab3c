package placement

import (
	"fmt"

	"github.com/nextstrain/nextclade-core/internal/auspice"
)

// NewLeafInput carries everything AttachNewLeaf needs to describe a
// query's placement, already computed by the preceding steps.
type NewLeafInput struct {
	SeqName          string
	Clade            string
	Divergence       float64
	AlignmentStart   int
	AlignmentEnd     int
	AlignmentScore   int32
	MissingSummary   string
	GapsSummary      string
	NonACGTNSummary  string
	QcStatus         string
	PrivateNucMuts   PrivateNucMutations
	RefSeq           []byte
}

// AttachNewLeaf attaches a new query leaf under nearestNode, per
// spec.md §4.5's "Attachment" procedure: if nearestNode is internal,
// attach directly; if a leaf, first insert an auxiliary node carrying
// the existing leaf's branch mutations and reassign. Grounded on
// original_source/packages_rs/nextclade/src/tree/tree_attach_new_nodes.rs's
// attach_new_node/add_aux_node/add_child; the retrieved add_aux_node
// clones the leaf and clears the clone's mutations but then never
// re-attaches the clone as a child (the aux node is built and
// discarded), which leaves the original leaf's state unrecoverable, so
// this is authored to complete the evident intent directly from
// spec.md's prose: keep the renamed node's own branch mutations
// (the edge leading to it already carries them), give the new aux
// child the leaf's original name with an empty (zero-length) branch,
// so the leaf's net cumulative state is unchanged, then attach the
// query as a sibling of that aux node.
func AttachNewLeaf(nearestNode *auspice.Node, in NewLeafInput) {
	if len(nearestNode.Children) == 0 {
		aux := *nearestNode
		aux.Children = nil
		aux.BranchAttrs = auspice.TreeBranchAttrs{}
		nearestNode.Name = nearestNode.Name + "_parent"
		nearestNode.Children = append(nearestNode.Children, &aux)
	}

	alignment := fmt.Sprintf("start: %d, end: %d (score: %d)", in.AlignmentStart, in.AlignmentEnd, in.AlignmentScore)
	div := in.Divergence

	child := &auspice.Node{
		Name: in.SeqName + "_new",
		BranchAttrs: auspice.TreeBranchAttrs{
			Mutations: map[string][]string{"nuc": nucSubStrings(in.PrivateNucMuts, in.RefSeq)},
		},
		NodeAttrs: auspice.TreeNodeAttrs{
			Div:             &div,
			CladeMembership: auspice.NewTreeNodeAttr(in.Clade),
			NodeType:        auspice.NewTreeNodeAttr("New"),
			Alignment:       auspice.NewTreeNodeAttr(alignment),
			Missing:         auspice.NewTreeNodeAttr(in.MissingSummary),
			Gaps:            auspice.NewTreeNodeAttr(in.GapsSummary),
			NonACGTNs:       auspice.NewTreeNodeAttr(in.NonACGTNSummary),
			QcStatus:        auspice.NewTreeNodeAttr(in.QcStatus),
		},
	}
	nearestNode.Children = append(nearestNode.Children, child)
}

// nucSubStrings renders a private mutation set as Auspice's flat "nuc"
// branch-mutation string list: substitutions in IUPAC notation, and
// deletions expanded one position per column (consistent with how a
// deletion range would appear if called as individual "refX-"
// substitutions), since Auspice's branch_attrs has no separate
// deletion-range notation.
func nucSubStrings(p PrivateNucMutations, refSeq []byte) []string {
	subs := p.AllSubstitutions()
	out := make([]string, 0, len(subs)+len(p.Deletions))
	for _, s := range subs {
		out = append(out, s.String())
	}
	for _, d := range p.Deletions {
		begin, end := d.Range.Ints()
		for pos := begin; pos < end && pos < len(refSeq); pos++ {
			out = append(out, fmt.Sprintf("%c%d-", refSeq[pos], pos+1))
		}
	}
	return out
}
