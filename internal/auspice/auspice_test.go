package auspice

import "testing"

func TestParseStringifyRoundTrip(t *testing.T) {
	doc := []byte(`{
		"version": "v2",
		"meta": {"title": "test tree"},
		"tree": {
			"name": "root",
			"branch_attrs": {"mutations": {"nuc": ["A123T"]}},
			"node_attrs": {"clade_membership": {"value": "19A"}, "custom_attr": {"value": "x"}},
			"children": [
				{"name": "child", "branch_attrs": {}, "node_attrs": {}}
			]
		}
	}`)

	tree, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tree.Meta.Title != "test tree" {
		t.Errorf("Meta.Title = %q, want %q", tree.Meta.Title, "test tree")
	}
	if tree.Root.Name != "root" || !tree.Root.IsRefNode {
		t.Errorf("root node = %+v, want name=root, IsRefNode=true", tree.Root)
	}
	if len(tree.Root.Children) != 1 || tree.Root.Children[0].Name != "child" {
		t.Fatalf("children = %+v, want one child named 'child'", tree.Root.Children)
	}
	if tree.Root.NodeAttrs.CladeMembership == nil || tree.Root.NodeAttrs.CladeMembership.Value != "19A" {
		t.Errorf("CladeMembership = %+v, want value 19A", tree.Root.NodeAttrs.CladeMembership)
	}
	attr, ok := tree.Root.NodeAttrs.CladeNodeAttrs["custom_attr"]
	if !ok || attr.Value != "x" {
		t.Errorf("CladeNodeAttrs[custom_attr] = %+v, want value x", attr)
	}
	if muts := tree.Root.BranchAttrs.Mutations["nuc"]; len(muts) != 1 || muts[0] != "A123T" {
		t.Errorf("Mutations[nuc] = %v, want [A123T]", muts)
	}

	out, err := Stringify(tree)
	if err != nil {
		t.Fatalf("Stringify() error = %v", err)
	}
	tree2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}
	if tree2.Root.Name != tree.Root.Name {
		t.Errorf("round trip changed root name: %q vs %q", tree2.Root.Name, tree.Root.Name)
	}
	attr2, ok := tree2.Root.NodeAttrs.CladeNodeAttrs["custom_attr"]
	if !ok || attr2.Value != "x" {
		t.Errorf("round trip lost custom_attr: %+v", tree2.Root.NodeAttrs.CladeNodeAttrs)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
