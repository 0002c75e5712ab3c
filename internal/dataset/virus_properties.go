package dataset

import (
	"encoding/json"

	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/motif"
	"github.com/nextstrain/nextclade-core/internal/qc"
)

// LabeledSubstitution is one dataset-declared "interesting" mutation
// (e.g. an immune-escape site), used to annotate private mutations
// that land on it. Grounded on spec.md §6.1's "labeled private
// substitutions". QryNuc is a single-letter string on the wire (the
// JSON representation of a nucleotide elsewhere in this dataset
// format), converted to a byte by LabeledMutationMap.
type LabeledSubstitution struct {
	Pos    int      `json:"pos"`
	QryNuc string   `json:"qryNuc"`
	Labels []string `json:"labels"`
}

// PhenotypeCoefficient gives one substitution's additive contribution
// to a named phenotype score (e.g. an antigenic-escape index computed
// from private mutations), per spec.md §6.1's "phenotype definitions".
type PhenotypeCoefficient struct {
	Pos         int     `json:"pos"`
	QryNuc      string  `json:"qryNuc"`
	Coefficient float64 `json:"coefficient"`
}

// PhenotypeDesc is one named phenotype model: a base value plus the
// substitutions that perturb it.
type PhenotypeDesc struct {
	Name         string                 `json:"name"`
	NameFriendly string                 `json:"nameFriendly"`
	Gene         string                 `json:"gene"`
	Coefficients []PhenotypeCoefficient `json:"coefficients"`
}

// CladeNodeAttrDesc describes one dataset-defined clade-node attribute
// column (beyond the built-in "clade"), so a consumer can label and
// order the arbitrary per-node attributes carried in
// auspice.TreeNodeAttrs.CladeNodeAttrs.
type CladeNodeAttrDesc struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// VirusProperties bundles every dataset-supplied configuration input
// beyond the reference, annotation and tree: QC thresholds, labeled
// mutations, phenotype models, AA-motif descriptors and clade-node-
// attribute metadata (spec.md §6.1). Grounded on
// original_source/packages/nextclade/src/qc/qc_config.rs for the QC
// portion (reused wholesale as internal/qc.Config); the remaining
// fields have no single retrieved Rust source file (virus_properties.rs
// was not present in the pack) and are authored directly from the
// spec's textual contract.
type VirusProperties struct {
	SchemaVersion        string
	QC                   qc.Config
	LabeledSubstitutions []LabeledSubstitution
	Phenotypes           []PhenotypeDesc
	AaMotifs             []motif.Desc
	CladeNodeAttrs       []CladeNodeAttrDesc
}

type virusPropertiesJSON struct {
	SchemaVersion        string                `json:"schemaVersion"`
	QC                   qc.Config             `json:"qc"`
	LabeledSubstitutions []LabeledSubstitution `json:"labeledSubstitutions"`
	Phenotypes           []PhenotypeDesc       `json:"phenotypeData"`
	AaMotifs             []motif.Desc          `json:"aaMotifs"`
	CladeNodeAttrs       []CladeNodeAttrDesc   `json:"cladeNodeAttrKeys"`
}

// ParseVirusProperties decodes a virus-properties JSON document.
func ParseVirusProperties(data []byte) (VirusProperties, error) {
	var raw virusPropertiesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return VirusProperties{}, errutil.WrapKind(err, errutil.KindInputParse, "parsing virus properties JSON")
	}
	return VirusProperties{
		SchemaVersion:        raw.SchemaVersion,
		QC:                   raw.QC,
		LabeledSubstitutions: raw.LabeledSubstitutions,
		Phenotypes:           raw.Phenotypes,
		AaMotifs:             raw.AaMotifs,
		CladeNodeAttrs:       raw.CladeNodeAttrs,
	}, nil
}

// LabeledMutationMap converts LabeledSubstitutions into the
// position->letter->labels lookup internal/placement's
// FindPrivateNucMutations consumes directly.
func (vp VirusProperties) LabeledMutationMap() map[int]map[byte][]string {
	out := make(map[int]map[byte][]string, len(vp.LabeledSubstitutions))
	for _, ls := range vp.LabeledSubstitutions {
		if ls.QryNuc == "" {
			continue
		}
		byLetter, ok := out[ls.Pos]
		if !ok {
			byLetter = make(map[byte][]string)
			out[ls.Pos] = byLetter
		}
		letter := ls.QryNuc[0]
		byLetter[letter] = append(byLetter[letter], ls.Labels...)
	}
	return out
}
