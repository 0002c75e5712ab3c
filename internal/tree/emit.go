package tree

import "github.com/nextstrain/nextclade-core/internal/auspice"

// ToAuspiceJSON serializes the full tree document (meta plus the
// root node, already ladderized and attached) back to Auspice JSON v2,
// per spec.md §4.7.
func ToAuspiceJSON(doc *auspice.Tree) ([]byte, error) {
	return auspice.Stringify(doc)
}
