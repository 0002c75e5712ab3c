package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

const testGff3 = "##gff-version 3\n" +
	"ref\tfeature\tgene\t1\t12\t.\t+\t.\tID=gene1;Name=orf1\n" +
	"ref\tfeature\tCDS\t1\t12\t.\t+\t0\tID=cds1;Parent=gene1;Name=orf1\n"

const testTree = `{
  "version": "v2",
  "meta": {"title": "test tree"},
  "tree": {
    "name": "root",
    "branch_attrs": {},
    "node_attrs": {"div": 0}
  }
}`

const testVirusProperties = `{
  "schemaVersion": "1.0.0",
  "qc": {"mixedSites": {"enabled": true, "mixedSitesThreshold": 10}},
  "labeledSubstitutions": [{"pos": 9, "qryNuc": "T", "labels": ["escape"]}],
  "aaMotifs": [{"name": "sequon", "motifs": ["N[^P][ST]"]}]
}`

func writeDatasetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		FileReference:       ">ref some description\nACGTACGTACGT\n",
		FileAnnotation:      testGff3,
		FileTree:            testTree,
		FileVirusProperties: testVirusProperties,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadDatasetAssemblesEveryInput(t *testing.T) {
	dir := writeDatasetDir(t)
	ds, err := LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if string(ds.RefSeq) != "ACGTACGTACGT" {
		t.Errorf("RefSeq = %q", ds.RefSeq)
	}
	if _, ok := ds.GeneMap.Gene("orf1"); !ok {
		t.Error("GeneMap missing gene orf1")
	}
	if ds.Tree == nil || ds.Tree.Root == nil || ds.Tree.Root.Name != "root" {
		t.Errorf("Tree = %+v", ds.Tree)
	}
	if ds.VirusProperties.SchemaVersion != "1.0.0" {
		t.Errorf("VirusProperties.SchemaVersion = %q", ds.VirusProperties.SchemaVersion)
	}
	if !ds.VirusProperties.QC.MixedSites.Enabled || ds.VirusProperties.QC.MixedSites.MixedSitesThreshold != 10 {
		t.Errorf("QC.MixedSites = %+v", ds.VirusProperties.QC.MixedSites)
	}
	if len(ds.CheckSums) != 4 {
		t.Errorf("len(CheckSums) = %d, want 4", len(ds.CheckSums))
	}
	if ds.Primers != nil {
		t.Errorf("Primers = %v, want nil when primers.csv is absent", ds.Primers)
	}
}

func TestLoadDatasetLoadsOptionalPrimers(t *testing.T) {
	dir := writeDatasetDir(t)
	primerCSV := "name,sequence,direction\nF1,GTACGTAC,fwd\n"
	if err := os.WriteFile(filepath.Join(dir, FilePrimers), []byte(primerCSV), 0o644); err != nil {
		t.Fatalf("writing primers.csv: %v", err)
	}
	ds, err := LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(ds.Primers) != 1 || ds.Primers[0].Name != "F1" {
		t.Errorf("Primers = %+v", ds.Primers)
	}
}

func TestLoadDatasetMissingFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadDataset(dir); err == nil {
		t.Error("LoadDataset() error = nil, want error for missing reference.fasta")
	}
}

func TestLabeledMutationMapConvertsStringNucToByte(t *testing.T) {
	vp := VirusProperties{LabeledSubstitutions: []LabeledSubstitution{
		{Pos: 9, QryNuc: "T", Labels: []string{"escape"}},
	}}
	m := vp.LabeledMutationMap()
	if labels := m[9]['T']; len(labels) != 1 || labels[0] != "escape" {
		t.Errorf("m[9]['T'] = %v", labels)
	}
}
