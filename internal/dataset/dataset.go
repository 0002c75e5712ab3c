// Package dataset loads the four dataset-supplied inputs spec.md §6.1
// describes — reference sequence, genome annotation, reference tree,
// virus properties — plus the optional PCR primer set, from a dataset
// directory. Grounded on the teacher's io/fasta and io/gff packages'
// os.Open-based Read() functions, generalized to the several files a
// dataset directory holds together rather than one file at a time, and
// enriched with GFF3 percent-decoding (internal/gff3) and Auspice tree
// parsing (internal/auspice), neither of which the teacher's own
// io/gff package provides.
package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nextstrain/nextclade-core/internal/auspice"
	"github.com/nextstrain/nextclade-core/internal/errutil"
	"github.com/nextstrain/nextclade-core/internal/fasta"
	"github.com/nextstrain/nextclade-core/internal/genemap"
	"github.com/nextstrain/nextclade-core/internal/gff3"
	"github.com/nextstrain/nextclade-core/internal/mutation"
	"github.com/nextstrain/nextclade-core/internal/primer"
	"lukechampine.com/blake3"
)

// Conventional dataset file names, matching the actual Nextclade
// dataset directory layout.
const (
	FileReference       = "reference.fasta"
	FileAnnotation      = "genome_annotation.gff3"
	FileTree            = "tree.json"
	FileVirusProperties = "virus_properties.json"
	FilePrimers         = "primers.csv"
)

// Dataset is every input a query analysis run needs besides the query
// sequences themselves.
type Dataset struct {
	RefSeq          []byte
	GeneMap         *genemap.GeneMap
	Tree            *auspice.Tree
	VirusProperties VirusProperties
	Primers         []mutation.PcrPrimer

	// CheckSums records a blake3 digest of each loaded file's raw
	// bytes, keyed by its conventional file name, mirroring the
	// teacher's gff.Meta.CheckSum field.
	CheckSums map[string][32]byte
}

// LoadDataset reads every file in dir, using the conventional file
// names above. FilePrimers is optional; its absence is not an error.
func LoadDataset(dir string) (*Dataset, error) {
	refData, err := readFile(dir, FileReference)
	if err != nil {
		return nil, err
	}
	refRecords, err := fasta.ParseAll(bytes.NewReader(refData))
	if err != nil {
		return nil, errutil.Wrap(err, "parsing reference FASTA")
	}
	if len(refRecords) != 1 {
		return nil, errutil.New(errutil.KindInvalidReference, fmt.Sprintf("reference FASTA must have exactly one record, found %d", len(refRecords)))
	}
	refSeq := []byte(refRecords[0].Seq)

	gffData, err := readFile(dir, FileAnnotation)
	if err != nil {
		return nil, err
	}
	gffDoc, err := gff3.Parse(bytes.NewReader(gffData))
	if err != nil {
		return nil, errutil.Wrap(err, "parsing genome annotation")
	}
	geneMap, err := gff3.BuildGeneMap(gffDoc, len(refSeq))
	if err != nil {
		return nil, errutil.Wrap(err, "building gene map")
	}

	treeData, err := readFile(dir, FileTree)
	if err != nil {
		return nil, err
	}
	tree, err := auspice.Parse(treeData)
	if err != nil {
		return nil, errutil.Wrap(err, "parsing reference tree")
	}

	vpData, err := readFile(dir, FileVirusProperties)
	if err != nil {
		return nil, err
	}
	virusProperties, err := ParseVirusProperties(vpData)
	if err != nil {
		return nil, errutil.Wrap(err, "parsing virus properties")
	}

	checksums := map[string][32]byte{
		FileReference:       blake3.Sum256(refData),
		FileAnnotation:      blake3.Sum256(gffData),
		FileTree:            blake3.Sum256(treeData),
		FileVirusProperties: blake3.Sum256(vpData),
	}

	var primers []mutation.PcrPrimer
	if primerData, err := tryReadFile(dir, FilePrimers); err != nil {
		return nil, err
	} else if primerData != nil {
		defs, err := primer.ParseDefinitions(bytes.NewReader(primerData))
		if err != nil {
			return nil, errutil.Wrap(err, "parsing PCR primer definitions")
		}
		primers, err = primer.Locate(defs, refSeq)
		if err != nil {
			return nil, errutil.Wrap(err, "locating PCR primers on reference")
		}
		checksums[FilePrimers] = blake3.Sum256(primerData)
	}

	return &Dataset{
		RefSeq:          refSeq,
		GeneMap:         geneMap,
		Tree:            tree,
		VirusProperties: virusProperties,
		Primers:         primers,
		CheckSums:       checksums,
	}, nil
}

func readFile(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("reading dataset file %q", name))
	}
	return data, nil
}

func tryReadFile(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errutil.WrapKind(err, errutil.KindInputParse, fmt.Sprintf("reading dataset file %q", name))
	}
	return data, nil
}
