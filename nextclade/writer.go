package nextclade

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nextstrain/nextclade-core/internal/auspice"
	"github.com/nextstrain/nextclade-core/internal/tree"
)

// ResultWriter receives one Result at a time, in whatever order the
// caller chooses to feed it (pipeline.InOrder for input order). Actual
// file/stream emission in every format spec.md §6.4 lists (TSV/CSV,
// FASTA, per-CDS peptide FASTA) is out of scope here; this interface
// documents the boundary a CLI or library embedder implements against.
type ResultWriter interface {
	WriteResult(Result) error
	Close() error
}

// TreeWriter emits the augmented reference tree, once, after every
// query has been placed (internal/tree.ToAuspiceJSON/ToNewick already
// implement the two documented serializations).
type TreeWriter interface {
	WriteTree(*auspice.Tree) error
}

// NDJSONWriter is the one concrete ResultWriter this package ships: it
// writes one JSON object per line, the wire shape spec.md §6.4 calls
// "NDJSON / JSON record stream." Grounded on the teacher's convention
// of keeping a default, minimal writer implementation alongside an
// interface boundary (e.g. io/fasta.Write) rather than leaving every
// consumer to hand-roll one.
type NDJSONWriter struct {
	enc *json.Encoder
}

func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

func (w *NDJSONWriter) WriteResult(res Result) error {
	return w.enc.Encode(resultJSONOf(res))
}

func (w *NDJSONWriter) Close() error { return nil }

// AuspiceTreeWriter writes the augmented tree as Auspice JSON v2.
type AuspiceTreeWriter struct {
	w io.Writer
}

func NewAuspiceTreeWriter(w io.Writer) *AuspiceTreeWriter {
	return &AuspiceTreeWriter{w: w}
}

func (w *AuspiceTreeWriter) WriteTree(t *auspice.Tree) error {
	data, err := tree.ToAuspiceJSON(t)
	if err != nil {
		return err
	}
	_, err = w.w.Write(data)
	return err
}

// NewickTreeWriter writes the augmented tree as a Newick string.
type NewickTreeWriter struct {
	w io.Writer
}

func NewNewickTreeWriter(w io.Writer) *NewickTreeWriter {
	return &NewickTreeWriter{w: w}
}

func (w *NewickTreeWriter) WriteTree(t *auspice.Tree) error {
	if err := tree.Ladderize(t.Root); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w.w, tree.ToNewick(t.Root))
	return err
}

// resultJSON is the wire shape NDJSONWriter emits: a flattened view of
// Result, with Err rendered as a plain string per spec.md §7's "output
// record with error = <string>" per-query error contract.
type resultJSON struct {
	Index int    `json:"index"`
	Name  string `json:"seqName"`
	Error string `json:"error,omitempty"`

	AlignmentScore int32 `json:"alignmentScore,omitempty"`

	Substitutions int `json:"totalSubstitutions"`
	Deletions     int `json:"totalDeletions"`
	Insertions    int `json:"totalInsertions"`
	Missing       int `json:"totalMissing"`
	NonACGTNs     int `json:"totalNonACGTNs"`

	Clade           string  `json:"clade"`
	NearestNodeName string  `json:"nearestNodeName"`
	Divergence      float64 `json:"divergence"`
	Coverage        float64 `json:"coverage"`
	QcStatus        string  `json:"qc.overallStatus"`
	QcScore         float64 `json:"qc.overallScore"`

	Warnings     []string `json:"warnings,omitempty"`
	MissingCdses []string `json:"missingCdses,omitempty"`
}

func resultJSONOf(res Result) resultJSON {
	rj := resultJSON{
		Index:           res.Index,
		Name:            res.Name,
		AlignmentScore:  res.AlignmentScore,
		Substitutions:   len(res.Substitutions),
		Deletions:       len(res.Deletions),
		Insertions:      len(res.Insertions),
		Missing:         len(res.Missing),
		NonACGTNs:       len(res.NonACGTNs),
		Clade:           res.Clade,
		NearestNodeName: res.NearestNodeName,
		Divergence:      res.Divergence,
		Coverage:        res.Coverage,
		QcStatus:        res.QC.OverallStatus.String(),
		QcScore:         res.QC.OverallScore,
		Warnings:        res.Warnings,
		MissingCdses:    res.MissingCdses,
	}
	if res.Err != nil {
		rj.Error = res.Err.Error()
	}
	return rj
}
