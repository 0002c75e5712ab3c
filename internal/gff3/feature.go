package gff3

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nextstrain/nextclade-core/internal/errutil"
)

// Feature is a single GFF3 record (one non-comment, non-FASTA line).
type Feature struct {
	Index      int
	SeqID      string
	Source     string
	Type       string
	Start      int // 0-based, inclusive
	End        int // 0-based, exclusive
	Score      string
	Strand     string // "+", "-", "." or "?"
	Phase      string
	Attributes map[string][]string
}

// ID returns the feature's "ID" attribute, or "" if absent.
func (f *Feature) ID() string { return f.firstAttr("ID") }

// Parent returns the feature's "Parent" attribute, or "" if absent.
func (f *Feature) Parent() string { return f.firstAttr("Parent") }

func (f *Feature) firstAttr(key string) string {
	v := f.Attributes[key]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// namePriority is the attribute priority list used to pick a
// human-readable Name for a feature, per spec.md §6.1.
var namePriority = []string{"Name", "gene", "gene_name", "locus_tag", "product", "protein_id", "ID"}

// Name selects a display name for the feature using the priority
// list; falls back to Type if nothing matches.
func (f *Feature) Name() string {
	for _, key := range namePriority {
		if v := f.firstAttr(key); v != "" {
			return v
		}
	}
	return f.Type
}

// parseFeatureLine parses one tab-separated GFF3 feature line.
func parseFeatureLine(index int, line string) (*Feature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 9 {
		return nil, errutil.New(errutil.KindInputParse, fmt.Sprintf("GFF3 feature line has %d columns, want 9: %q", len(fields), line))
	}
	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("parsing GFF3 start coordinate %q", fields[3]))
	}
	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("parsing GFF3 end coordinate %q", fields[4]))
	}

	attrs := make(map[string][]string)
	if trimmed := strings.TrimSpace(fields[8]); trimmed != "" && trimmed != "." {
		for _, pair := range strings.Split(trimmed, ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				continue
			}
			key := Decode(kv[0])
			for _, v := range strings.Split(kv[1], ",") {
				attrs[key] = append(attrs[key], Decode(v))
			}
		}
	}

	return &Feature{
		Index:  index,
		SeqID:  Decode(fields[0]),
		Source: Decode(fields[1]),
		Type:   fields[2],
		// GFF3 coordinates are 1-based closed; convert to 0-based
		// half-open, matching the teacher's io/gff parser convention.
		Start:      start - 1,
		End:        end,
		Score:      fields[5],
		Strand:     fields[6],
		Phase:      fields[7],
		Attributes: attrs,
	}, nil
}

// IsGene reports whether f is a "gene" feature.
func (f *Feature) IsGene() bool { return f.Type == "gene" }

// IsCds reports whether f is a "CDS" feature.
func (f *Feature) IsCds() bool { return f.Type == "CDS" }

// IsMatureProteinRegion reports whether f describes a mature peptide
// cleavage product of a CDS.
func (f *Feature) IsMatureProteinRegion() bool {
	return f.Type == "mature_protein_region_of_CDS"
}
