package tree

import (
	"strconv"
	"strings"

	"github.com/nextstrain/nextclade-core/internal/auspice"
)

// newickNameReplacer escapes characters Newick reserves as syntax
// (parens, comma, colon, semicolon) by substituting underscores, the
// common convention when a tip name must survive unquoted.
var newickNameReplacer = strings.NewReplacer(
	"(", "_", ")", "_", ",", "_", ":", "_", ";", "_", " ", "_",
)

// ToNewick serializes root as a Newick string, post-order, with
// branch lengths taken from the difference between a node's and its
// parent's divergence (spec.md §4.7 "Newick (post-order, branch
// lengths from divergence differences)"). No Newick writer was
// present in the retrieved pack, so the recursive post-order
// string-building shape here follows the teacher's general
// `strings.Builder`-based serialization style (e.g.
// bio/genbank/genbank.go) rather than a translated original.
func ToNewick(root *auspice.Node) string {
	var b strings.Builder
	writeNewickNode(&b, root, 0)
	b.WriteByte(';')
	return b.String()
}

func writeNewickNode(b *strings.Builder, n *auspice.Node, parentDiv float64) {
	if len(n.Children) > 0 {
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeNewickNode(b, c, divergenceOf(n))
		}
		b.WriteByte(')')
	}
	b.WriteString(newickNameReplacer.Replace(n.Name))
	branchLength := divergenceOf(n) - parentDiv
	if branchLength < 0 {
		branchLength = 0
	}
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(branchLength, 'g', -1, 64))
}

func divergenceOf(n *auspice.Node) float64 {
	if n.NodeAttrs.Div == nil {
		return 0
	}
	return *n.NodeAttrs.Div
}

