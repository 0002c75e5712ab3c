package placement

import (
	"testing"

	"github.com/nextstrain/nextclade-core/internal/auspice"
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/mutation"
)

func buildTestTree() *auspice.Tree {
	root := &auspice.Node{
		Name:        "root",
		BranchAttrs: auspice.TreeBranchAttrs{},
		Children: []*auspice.Node{
			{
				Name: "clade19A",
				BranchAttrs: auspice.TreeBranchAttrs{
					Mutations: map[string][]string{"nuc": {"C100T", "A200G"}},
				},
			},
			{
				Name: "clade20B",
				BranchAttrs: auspice.TreeBranchAttrs{
					Mutations: map[string][]string{"nuc": {"G300A"}},
				},
			},
		},
	}
	return &auspice.Tree{Root: root}
}

func TestPreprocessBuildsCumulativeMaps(t *testing.T) {
	tree := buildTestTree()
	g, root, err := Preprocess(tree)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	children := g.ChildKeys(root)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	clade19 := g.Payload(children[0])
	if clade19.NucMuts[99] != 'T' || clade19.NucMuts[199] != 'G' {
		t.Errorf("clade19A cumulative muts = %v, want {99:T,199:G}", clade19.NucMuts)
	}
}

func TestFindNearestNodePicksClosestClade(t *testing.T) {
	tree := buildTestTree()
	g, root, err := Preprocess(tree)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	querySubs := NewQuerySubs([]mutation.NucSub{
		{Pos: coord.NewNucRefGlobalPosition(99), RefNuc: 'C', QryNuc: 'T'},
		{Pos: coord.NewNucRefGlobalPosition(199), RefNuc: 'A', QryNuc: 'G'},
	})
	alignRange := coord.NewNucRefGlobalRange(0, 1000)
	nearest := FindNearestNode(g, root, querySubs, alignRange, nil)
	if g.Payload(nearest).Node.Name != "clade19A" {
		t.Errorf("nearest node = %q, want clade19A", g.Payload(nearest).Node.Name)
	}
}

func TestFindPrivateNucMutationsNovelAndReversion(t *testing.T) {
	tree := buildTestTree()
	g, root, err := Preprocess(tree)
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}
	nodeKey := g.ChildKeys(root)[0] // clade19A: muts at 99->T, 199->G
	node := g.Payload(nodeKey)

	refSeq := make([]byte, 300)
	for i := range refSeq {
		refSeq[i] = 'A'
	}
	refSeq[99] = 'C'
	refSeq[299] = 'G'

	querySubs := []mutation.NucSub{
		{Pos: coord.NewNucRefGlobalPosition(99), RefNuc: 'C', QryNuc: 'T'},  // matches node, not private
		{Pos: coord.NewNucRefGlobalPosition(299), RefNuc: 'G', QryNuc: 'A'}, // novel
	}
	alignRange := coord.NewNucRefGlobalRange(0, 300)

	priv := FindPrivateNucMutations(node, querySubs, nil, alignRange, nil, refSeq, nil)
	if len(priv.Novel) != 1 || priv.Novel[0].Pos.Int() != 299 {
		t.Errorf("Novel = %+v, want one substitution at pos 299", priv.Novel)
	}
	if len(priv.Reversions) != 1 || priv.Reversions[0].Pos.Int() != 199 {
		t.Fatalf("Reversions = %+v, want one reversion at pos 199", priv.Reversions)
	}
	if priv.Reversions[0].QryNuc != 'A' {
		t.Errorf("reversion qry = %c, want A (reference letter)", priv.Reversions[0].QryNuc)
	}
}

func TestDivergenceRawCount(t *testing.T) {
	got := Divergence(2.0, 3, 30000, auspice.DivergenceUnitsNumSubstitutions)
	if got != 5.0 {
		t.Errorf("Divergence() = %v, want 5.0", got)
	}
}

func TestAttachNewLeafToInternalNode(t *testing.T) {
	tree := buildTestTree()
	nearest := tree.Root // internal: clade19A and clade20B
	AttachNewLeaf(nearest, NewLeafInput{SeqName: "query1", Clade: "19A", RefSeq: make([]byte, 10)})
	if len(nearest.Children) != 3 || nearest.Children[2].Name != "query1_new" {
		t.Fatalf("children = %+v, want query1_new appended as a third child", nearest.Children)
	}
}

func TestAttachNewLeafToLeafInsertsAuxNode(t *testing.T) {
	tree := buildTestTree()
	leaf := tree.Root.Children[1] // clade20B has no children
	originalName := leaf.Name
	AttachNewLeaf(leaf, NewLeafInput{SeqName: "query2", Clade: "20B", RefSeq: make([]byte, 10)})

	if leaf.Name != originalName+"_parent" {
		t.Errorf("leaf.Name = %q, want %q", leaf.Name, originalName+"_parent")
	}
	if len(leaf.Children) != 2 {
		t.Fatalf("expected 2 children (aux + new query), got %d", len(leaf.Children))
	}
	if leaf.Children[0].Name != originalName {
		t.Errorf("aux child name = %q, want original name %q", leaf.Children[0].Name, originalName)
	}
	if leaf.Children[1].Name != "query2_new" {
		t.Errorf("second child name = %q, want query2_new", leaf.Children[1].Name)
	}
}
