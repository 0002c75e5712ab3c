package nextclade

import (
	"fmt"
	"strings"

	"github.com/nextstrain/nextclade-core/internal/align"
	"github.com/nextstrain/nextclade-core/internal/alphabet"
	"github.com/nextstrain/nextclade-core/internal/auspice"
	"github.com/nextstrain/nextclade-core/internal/coord"
	"github.com/nextstrain/nextclade-core/internal/dataset"
	"github.com/nextstrain/nextclade-core/internal/fasta"
	"github.com/nextstrain/nextclade-core/internal/genemap"
	"github.com/nextstrain/nextclade-core/internal/graph"
	"github.com/nextstrain/nextclade-core/internal/motif"
	"github.com/nextstrain/nextclade-core/internal/mutation"
	"github.com/nextstrain/nextclade-core/internal/placement"
	"github.com/nextstrain/nextclade-core/internal/qc"
	"github.com/nextstrain/nextclade-core/internal/scoring"
	"github.com/nextstrain/nextclade-core/internal/translate"
)

// Context holds every dataset-derived quantity Analyze needs that is
// the same for every query in a run, computed once by NewContext so
// a pipeline worker pool shares it read-only rather than recomputing
// it per query.
type Context struct {
	RefSeq          []byte
	GeneMap         *genemap.GeneMap
	Graph           *placement.Graph
	Root            graph.NodeKey
	GapOpenClose    []int
	AlignParams     align.Params
	TranslateParams translate.Params
	QCConfig        qc.Config
	VirusProperties dataset.VirusProperties
	LabeledMutations map[int]map[byte][]string
	DivergenceUnits auspice.DivergenceUnits
	Primers         []mutation.PcrPrimer
}

// NewContext preprocesses a loaded dataset once: building the
// placement graph (internal/placement.Preprocess) and the codon-aware
// gap-open/close vector (internal/scoring.GapOpenCloseVector) that
// every query's alignment reuses.
func NewContext(ds *dataset.Dataset) (*Context, error) {
	g, root, err := placement.Preprocess(ds.Tree)
	if err != nil {
		return nil, err
	}
	alignParams := align.DefaultParams()
	gapOpenClose := scoring.GapOpenCloseVector(alignParams.Nuc, ds.GeneMap, len(ds.RefSeq))

	return &Context{
		RefSeq:           ds.RefSeq,
		GeneMap:          ds.GeneMap,
		Graph:            g,
		Root:             root,
		GapOpenClose:     gapOpenClose,
		AlignParams:      alignParams,
		TranslateParams:  translate.DefaultParams(),
		QCConfig:         ds.VirusProperties.QC,
		VirusProperties:  ds.VirusProperties,
		LabeledMutations: ds.VirusProperties.LabeledMutationMap(),
		DivergenceUnits:  ds.Tree.Meta.DivergenceUnits,
		Primers:          ds.Primers,
	}, nil
}

// Analyze runs one query through the whole analysis procedure:
// align, strip, call nucleotide mutations, translate and call
// amino-acid mutations per CDS, place against the reference tree,
// score QC, and locate AA motifs and phenotype values. A failure
// during alignment (spec.md §7's AlignmentFailure) is reported on
// Result.Err rather than returned, so a pipeline worker can carry on
// to the next query; this is the function pipeline.Run's work
// parameter wraps.
func (c *Context) Analyze(rec *fasta.Record) (Result, error) {
	res := Result{Name: rec.Name, Desc: rec.Desc}

	qrySeq := []byte(strings.ToUpper(rec.Seq))
	alignResult, err := align.AlignPairwise(qrySeq, c.RefSeq, c.GapOpenClose, c.AlignParams)
	if err != nil {
		res.Err = err
		return res, nil
	}
	res.AlignmentScore = alignResult.Score
	res.IsReverseComplement = alignResult.WasReverseComplemented

	cm := coord.NewCoordMap(alignResult.AlignedRef)
	stripped := align.StripInsertions(alignResult.AlignedQry, alignResult.AlignedRef)
	nucMuts := mutation.CallNucMutations(stripped.RefSeq, stripped.QrySeq)

	res.AlignmentRange = nucMuts.AlignRange
	res.Substitutions = nucMuts.Substitutions
	res.Deletions = nucMuts.Deletions
	res.Insertions = stripped.Insertions
	res.Missing = nucMuts.Missing
	res.NonACGTNs = nucMuts.NonACGTN
	res.Coverage = coverage(nucMuts, len(c.RefSeq))
	res.PrimerChanges = mutation.FindPrimerChanges(c.Primers, nucMuts.Substitutions)

	cdsResults := make(map[string]CdsResult, len(c.GeneMap.Cdses()))
	var allAaChanges []mutation.AaChange
	var qcFrameShifts []qc.GeneFrameShift
	var qcStopCodons []qc.StopCodon
	var translations []translate.Result
	var missingCdses, warnings []string

	for _, cds := range c.GeneMap.Cdses() {
		tr, err := translate.TranslateCds(cds, alignResult.AlignedRef, alignResult.AlignedQry, cm, nucMuts.AlignRange, c.TranslateParams)
		if err != nil {
			missingCdses = append(missingCdses, cds.Name)
			warnings = append(warnings, fmt.Sprintf("CDS %q: %v", cds.Name, err))
			continue
		}
		translations = append(translations, tr)

		changes := mutation.CallAaMutations(cds.Name, tr.RefPeptide, tr.QryPeptide, tr.SequencedRanges)
		allAaChanges = append(allAaChanges, changes...)

		var subs, dels []mutation.AaChange
		for _, ch := range changes {
			if ch.Type == mutation.AaChangeDel {
				dels = append(dels, ch)
			} else {
				subs = append(subs, ch)
			}
		}

		groups := mutation.GroupAdjacentAaChanges(changes, cds, nucMuts.Substitutions, nucMuts.Deletions)
		res.AaChangeGroups = append(res.AaChangeGroups, groups...)

		for _, fs := range tr.FrameShifts {
			qcFrameShifts = append(qcFrameShifts, qc.GeneFrameShift{GeneName: cds.Name, Shift: fs})
		}
		for i, aa := range tr.QryPeptide {
			if alphabet.IsStop(aa) && i != len(tr.QryPeptide)-1 {
				qcStopCodons = append(qcStopCodons, qc.StopCodon{GeneName: cds.Name, Codon: i})
			}
		}

		cdsResults[cds.Name] = CdsResult{
			QryPeptide:      tr.QryPeptide,
			RefPeptide:      tr.RefPeptide,
			AaSubstitutions: subs,
			AaDeletions:     dels,
			AaInsertions:    tr.Insertions,
			UnknownAaRanges: tr.UnsequencedRanges,
			FrameShifts:     tr.FrameShifts,
		}
	}
	res.CdsResults = cdsResults
	res.MissingCdses = missingCdses
	res.Warnings = warnings

	missingRanges := rangesOf(nucMuts.Missing)
	querySubs := placement.NewQuerySubs(nucMuts.Substitutions)
	nearestKey := placement.FindNearestNode(c.Graph, c.Root, querySubs, nucMuts.AlignRange, missingRanges)
	nearestPayload := c.Graph.Payload(nearestKey)

	privateNuc := placement.FindPrivateNucMutations(
		nearestPayload, nucMuts.Substitutions, nucMuts.Deletions,
		nucMuts.AlignRange, missingRanges, c.RefSeq, c.LabeledMutations)
	res.PrivateNuc = privateNuc
	res.NearestNodeKey = nearestKey
	res.NearestNodeName = nearestPayload.Node.Name
	if attr := nearestPayload.Node.NodeAttrs.CladeMembership; attr != nil {
		if s, ok := attr.Value.(string); ok {
			res.Clade = s
		}
	}

	changesByGene := groupChangesByGene(allAaChanges)
	privateAa := make(map[string]placement.PrivateAaMutations, len(translations))
	for _, tr := range translations {
		privateAa[tr.CdsName] = placement.FindPrivateAaMutations(
			tr.CdsName, nearestPayload, changesByGene[tr.CdsName], tr.SequencedRanges, tr.RefPeptide)
	}
	res.PrivateAa = privateAa

	parentDiv := placement.ParentDivergence(nearestPayload.Node)
	privateSubCount := len(privateNuc.AllSubstitutions()) + len(privateNuc.Deletions)
	res.Divergence = placement.Divergence(parentDiv, privateSubCount, len(c.RefSeq), c.DivergenceUnits)

	res.CladeNodeAttrs = make(map[string]string, len(c.VirusProperties.CladeNodeAttrs))
	for _, attrDesc := range c.VirusProperties.CladeNodeAttrs {
		if attr, ok := nearestPayload.Node.NodeAttrs.CladeNodeAttrs[attrDesc.Name]; ok && attr != nil {
			if s, ok := attr.Value.(string); ok {
				res.CladeNodeAttrs[attrDesc.Name] = s
			}
		}
	}

	res.QC = qc.Combine(qc.Inputs{
		TotalMissing:  totalRangeLen(nucMuts.Missing),
		TotalNonACGTN: totalRangeLen(nucMuts.NonACGTN),
		Private:       qc.NewPrivateMutationsInput(privateNuc),
		FrameShifts:   qcFrameShifts,
		StopCodons:    qcStopCodons,
	}, c.QCConfig)

	refTranslations := make([]translate.Result, len(translations))
	for i, tr := range translations {
		refTranslations[i] = translate.Result{CdsName: tr.CdsName, QryPeptide: tr.RefPeptide}
	}
	qryMotifs, err := motif.Find(c.VirusProperties.AaMotifs, translations)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("AA motifs: %v", err))
	} else {
		refMotifs, err := motif.Find(c.VirusProperties.AaMotifs, refTranslations)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("AA motifs: %v", err))
		} else {
			res.AaMotifs = qryMotifs
			res.AaMotifChanges = motif.FindChanges(refMotifs, qryMotifs)
		}
	}

	res.Phenotypes = computePhenotypes(c.VirusProperties.Phenotypes, privateNuc)

	return res, nil
}

// AttachNewLeaf adds res's query as a new leaf under its nearest node
// in the reference tree (spec.md §4.5 "Attachment"), mutating the tree
// in place. Call once per query after Analyze, typically from the
// writer stage building the augmented Auspice tree artifact, not from
// a concurrent worker (tree mutation is not goroutine-safe).
func (c *Context) AttachNewLeaf(res Result) {
	nearestPayload := c.Graph.Payload(res.NearestNodeKey)
	alignBegin, alignEnd := res.AlignmentRange.Ints()
	placement.AttachNewLeaf(nearestPayload.Node, placement.NewLeafInput{
		SeqName:         res.Name,
		Clade:           res.Clade,
		Divergence:      res.Divergence,
		AlignmentStart:  alignBegin,
		AlignmentEnd:    alignEnd,
		AlignmentScore:  res.AlignmentScore,
		MissingSummary:  summarizeRanges(res.Missing),
		GapsSummary:     summarizeDeletions(res.Deletions),
		NonACGTNSummary: summarizeRanges(res.NonACGTNs),
		QcStatus:        res.QC.OverallStatus.String(),
		PrivateNucMuts:  res.PrivateNuc,
		RefSeq:          c.RefSeq,
	})
}

func coverage(nucMuts mutation.NucMutations, refLen int) float64 {
	if refLen == 0 {
		return 0
	}
	uncovered := totalRangeLen(nucMuts.Missing)
	for _, d := range nucMuts.Deletions {
		uncovered += d.Range.Len()
	}
	return 1 - float64(uncovered)/float64(refLen)
}

func rangesOf(rcs []mutation.NucRangeCall) []coord.NucRefGlobalRange {
	out := make([]coord.NucRefGlobalRange, len(rcs))
	for i, r := range rcs {
		out[i] = r.Range
	}
	return out
}

func totalRangeLen(rcs []mutation.NucRangeCall) int {
	total := 0
	for _, r := range rcs {
		total += r.Range.Len()
	}
	return total
}

func groupChangesByGene(changes []mutation.AaChange) map[string][]mutation.AaChange {
	out := make(map[string][]mutation.AaChange)
	for _, ch := range changes {
		out[ch.Gene] = append(out[ch.Gene], ch)
	}
	return out
}

func computePhenotypes(descs []dataset.PhenotypeDesc, priv placement.PrivateNucMutations) []PhenotypeValue {
	subsByPos := make(map[int]byte, len(priv.Novel)+len(priv.Reversions))
	for _, s := range priv.AllSubstitutions() {
		subsByPos[s.Pos.Int()] = s.QryNuc
	}

	out := make([]PhenotypeValue, 0, len(descs))
	for _, d := range descs {
		var total float64
		for _, coef := range d.Coefficients {
			if letter, ok := subsByPos[coef.Pos]; ok && len(coef.QryNuc) > 0 && letter == coef.QryNuc[0] {
				total += coef.Coefficient
			}
		}
		out = append(out, PhenotypeValue{Name: d.Name, Gene: d.Gene, Value: total})
	}
	return out
}

func summarizeRanges(rcs []mutation.NucRangeCall) string {
	parts := make([]string, len(rcs))
	for i, r := range rcs {
		begin, end := r.Range.Ints()
		parts[i] = fmt.Sprintf("%d-%d", begin+1, end)
	}
	return strings.Join(parts, ",")
}

func summarizeDeletions(dels []mutation.NucDel) string {
	parts := make([]string, len(dels))
	for i, d := range dels {
		begin, end := d.Range.Ints()
		parts[i] = fmt.Sprintf("%d-%d", begin+1, end)
	}
	return strings.Join(parts, ",")
}
