package tree

import (
	"strings"
	"testing"

	"github.com/nextstrain/nextclade-core/internal/auspice"
)

func div(v float64) *float64 { return &v }

func buildTestTree() *auspice.Node {
	return &auspice.Node{
		Name: "root",
		NodeAttrs: auspice.TreeNodeAttrs{Div: div(0)},
		Children: []*auspice.Node{
			{Name: "big", NodeAttrs: auspice.TreeNodeAttrs{Div: div(1)}, Children: []*auspice.Node{
				{Name: "big-1", NodeAttrs: auspice.TreeNodeAttrs{Div: div(2)}},
				{Name: "big-2", NodeAttrs: auspice.TreeNodeAttrs{Div: div(2)}},
			}},
			{Name: "small", NodeAttrs: auspice.TreeNodeAttrs{Div: div(1)}},
		},
	}
}

func TestLadderizeOrdersSmallerSubtreeFirst(t *testing.T) {
	root := buildTestTree()
	if err := Ladderize(root); err != nil {
		t.Fatalf("Ladderize() error = %v", err)
	}
	if len(root.Children) != 2 || root.Children[0].Name != "small" || root.Children[1].Name != "big" {
		names := []string{}
		for _, c := range root.Children {
			names = append(names, c.Name)
		}
		t.Errorf("ladderized children = %v, want [small, big]", names)
	}
}

func TestToNewickIncludesAllLeaves(t *testing.T) {
	root := buildTestTree()
	nwk := ToNewick(root)
	for _, name := range []string{"big-1", "big-2", "small", "root"} {
		if !strings.Contains(nwk, name) {
			t.Errorf("Newick output %q missing %q", nwk, name)
		}
	}
	if !strings.HasSuffix(nwk, ";") {
		t.Errorf("Newick output %q should end with ';'", nwk)
	}
}

func TestToAuspiceJSONRoundTrips(t *testing.T) {
	doc := &auspice.Tree{Root: buildTestTree()}
	data, err := ToAuspiceJSON(doc)
	if err != nil {
		t.Fatalf("ToAuspiceJSON() error = %v", err)
	}
	reparsed, err := auspice.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if reparsed.Root.Name != "root" || len(reparsed.Root.Children) != 2 {
		t.Errorf("round trip changed tree shape: %+v", reparsed.Root)
	}
}
