package auspice

import "encoding/json"

// Auspice node_attrs/branch_attrs/meta are flat JSON objects mixing a
// handful of named, well-known fields with arbitrary dataset-defined
// ones (clade-node attributes, color scales, panels). Go's struct tags
// can decode the named fields directly but can't also capture "every
// other key" without a second pass, so each of these types gets a
// custom (Un)MarshalJSON: decode into an alias sharing the named
// fields, decode again into a plain map, delete the named keys, and
// keep what's left.

var nodeAttrKnownKeys = []string{
	"div", "clade_membership", "node_type", "region", "country", "division",
	"alignment", "missing", "gaps", "non_acgtns", "has_pcr_primer_changes",
	"pcr_primer_changes", "missing_cdses", "qc_status",
}

func (a TreeNodeAttrs) MarshalJSON() ([]byte, error) {
	type alias TreeNodeAttrs
	base, err := json.Marshal(alias(a))
	if err != nil {
		return nil, err
	}
	merged, err := mergeExtra(base, a.CladeNodeAttrs, a.Other)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (a *TreeNodeAttrs) UnmarshalJSON(data []byte) error {
	type alias TreeNodeAttrs
	if err := json.Unmarshal(data, (*alias)(a)); err != nil {
		return err
	}
	extra, err := extractExtra(data, nodeAttrKnownKeys)
	if err != nil {
		return err
	}
	a.Other = make(map[string]json.RawMessage)
	a.CladeNodeAttrs = make(map[string]*TreeNodeAttr)
	for k, v := range extra {
		var attr TreeNodeAttr
		if err := json.Unmarshal(v, &attr); err == nil && attr.Value != nil {
			a.CladeNodeAttrs[k] = &attr
			continue
		}
		a.Other[k] = v
	}
	return nil
}

var branchAttrKnownKeys = []string{"mutations", "labels"}

func (a TreeBranchAttrs) MarshalJSON() ([]byte, error) {
	type alias TreeBranchAttrs
	base, err := json.Marshal(alias(a))
	if err != nil {
		return nil, err
	}
	return mergeExtra(base, nil, a.Other)
}

func (a *TreeBranchAttrs) UnmarshalJSON(data []byte) error {
	type alias TreeBranchAttrs
	if err := json.Unmarshal(data, (*alias)(a)); err != nil {
		return err
	}
	extra, err := extractExtra(data, branchAttrKnownKeys)
	if err != nil {
		return err
	}
	a.Other = extra
	return nil
}

var metaKnownKeys = []string{"title", "description", "updated", "extensions"}

func (m Meta) MarshalJSON() ([]byte, error) {
	type alias Meta
	base, err := json.Marshal(alias(m))
	if err != nil {
		return nil, err
	}
	out, err := mergeExtra(base, nil, m.Other)
	if err != nil {
		return nil, err
	}
	return setDivergenceUnitsKey(out, m.DivergenceUnits)
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	type alias Meta
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return err
	}
	extra, err := extractExtra(data, metaKnownKeys)
	if err != nil {
		return err
	}
	if raw, ok := extra["genome_annotations"]; ok {
		_ = raw // panel metadata is parsed by internal/genemap, not here
	}
	m.DivergenceUnits = DivergenceUnitsNumSubstitutions
	if raw, ok := extra["displayDefaults"]; ok {
		var dd struct {
			BranchLengthUnits string `json:"branch_length_units"`
		}
		if err := json.Unmarshal(raw, &dd); err == nil && dd.BranchLengthUnits == "divergence-per-year" {
			m.DivergenceUnits = DivergenceUnitsNumSubstitutionsPerYear
		}
		delete(extra, "displayDefaults")
	}
	m.Other = extra
	return nil
}

func setDivergenceUnitsKey(base []byte, units DivergenceUnits) ([]byte, error) {
	if units != DivergenceUnitsNumSubstitutionsPerYear {
		return base, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	dd, err := json.Marshal(map[string]string{"branch_length_units": "divergence-per-year"})
	if err != nil {
		return nil, err
	}
	obj["displayDefaults"] = dd
	return json.Marshal(obj)
}

// extractExtra decodes data as a flat object and returns every key not
// in known.
func extractExtra(data []byte, known []string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(obj, k)
	}
	return obj, nil
}

// mergeExtra decodes base as a flat object and adds every key from
// attrs and other, returning the re-encoded object.
func mergeExtra(base []byte, attrs map[string]*TreeNodeAttr, other map[string]json.RawMessage) ([]byte, error) {
	if len(attrs) == 0 && len(other) == 0 {
		return base, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = make(map[string]json.RawMessage)
	}
	for k, v := range attrs {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		obj[k] = raw
	}
	for k, v := range other {
		obj[k] = v
	}
	return json.Marshal(obj)
}
