package placement

import "github.com/nextstrain/nextclade-core/internal/auspice"

// Divergence computes a new leaf's divergence value from its parent's
// and the number of private substitutions separating them, per
// spec.md §4.5: "divergence = parent_div + (private_substitution_count
// scaled by divergence units declared by the tree: either raw count or
// per-site)".
func Divergence(parentDiv float64, privateSubstitutionCount, refLength int, units auspice.DivergenceUnits) float64 {
	switch units {
	case auspice.DivergenceUnitsNumSubstitutionsPerYear:
		if refLength == 0 {
			return parentDiv
		}
		return parentDiv + float64(privateSubstitutionCount)/float64(refLength)
	default:
		return parentDiv + float64(privateSubstitutionCount)
	}
}

// ParentDivergence reads the "div" node attribute, defaulting to 0 for
// a node that never had one (the dataset tree root, typically).
func ParentDivergence(node *auspice.Node) float64 {
	if node.NodeAttrs.Div == nil {
		return 0
	}
	return *node.NodeAttrs.Div
}
