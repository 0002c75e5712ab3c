package mutation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/errutil"
)

// String renders a nucleotide substitution in the bioinformatics
// convention used by Auspice branch_attrs.mutations ("nuc": ["C123T",
// ...]): 1-based position, grounded on
// original_source/packages/nextclade/src/analyze/nuc_sub.rs's Display
// impl (which adds 1 to its 0-based position for the same reason).
func (s NucSub) String() string {
	return fmt.Sprintf("%c%d%c", s.RefNuc, s.Pos.Int()+1, s.QryNuc)
}

var nucSubPattern = regexp.MustCompile(`^([A-Z-])(\d+)([A-Z-])$`)

// ParseNucSub parses a substitution notation string like "C123T".
func ParseNucSub(s string) (NucSub, error) {
	m := nucSubPattern.FindStringSubmatch(s)
	if m == nil {
		return NucSub{}, errutil.New(errutil.KindInputParse, fmt.Sprintf("unable to parse nucleotide mutation %q", s))
	}
	pos, err := strconv.Atoi(m[2])
	if err != nil {
		return NucSub{}, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("parsing position in %q", s))
	}
	return NucSub{
		Pos:    coord.NewNucRefGlobalPosition(pos - 1),
		RefNuc: m[1][0],
		QryNuc: m[3][0],
	}, nil
}

// AaSub is the minimal per-CDS amino-acid mutation shape Auspice
// branch_attrs carries (e.g. "S:N501Y"), distinct from AaChange which
// additionally classifies substitution vs deletion for reporting.
type AaSub struct {
	Gene   string
	Pos    coord.AaRefPosition
	RefAa  byte
	QryAa  byte
}

func (s AaSub) String() string {
	return fmt.Sprintf("%s:%c%d%c", s.Gene, s.RefAa, s.Pos.Int()+1, s.QryAa)
}

var aaSubPattern = regexp.MustCompile(`^([^:]+):([A-Z*-])(\d+)([A-Z*-])$`)

// ParseAaSub parses a "gene:N501Y"-style amino-acid mutation notation
// string, as found in an Auspice branch_attrs mutation list keyed by
// CDS name.
func ParseAaSub(s string) (AaSub, error) {
	m := aaSubPattern.FindStringSubmatch(s)
	if m == nil {
		return AaSub{}, errutil.New(errutil.KindInputParse, fmt.Sprintf("unable to parse amino acid mutation %q", s))
	}
	pos, err := strconv.Atoi(m[3])
	if err != nil {
		return AaSub{}, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("parsing position in %q", s))
	}
	return AaSub{
		Gene:  m[1],
		Pos:   coord.NewAaRefPosition(pos - 1),
		RefAa: m[2][0],
		QryAa: m[4][0],
	}, nil
}

var aaSubMinimalPattern = regexp.MustCompile(`^([A-Z*-])(\d+)([A-Z*-])$`)

// ParseAaSubMinimal parses a bare "N501Y"-style mutation string (no
// gene prefix), the form used inside an Auspice branch_attrs.mutations
// entry already keyed by CDS name. Grounded on
// original_source/packages_rs/nextclade/src/tree/tree_preprocess.rs's
// map_aa_muts_for_one_gene, which parses its per-gene mutation strings
// with a gene-less AaSubMinimal type for the same reason.
func ParseAaSubMinimal(gene, s string) (AaSub, error) {
	m := aaSubMinimalPattern.FindStringSubmatch(s)
	if m == nil {
		return AaSub{}, errutil.New(errutil.KindInputParse, fmt.Sprintf("unable to parse amino acid mutation %q", s))
	}
	pos, err := strconv.Atoi(m[2])
	if err != nil {
		return AaSub{}, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("parsing position in %q", s))
	}
	return AaSub{
		Gene:  gene,
		Pos:   coord.NewAaRefPosition(pos - 1),
		RefAa: m[1][0],
		QryAa: m[3][0],
	}, nil
}
