package gff3

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nextstrain/nextclade-core/internal/errutil"
	"lukechampine.com/blake3"
)

// Document is a parsed GFF3 file: its features plus a checksum of the
// raw bytes, mirroring the teacher's Meta.CheckSum field
// (io/gff/gff.go).
type Document struct {
	Features []*Feature
	CheckSum [32]byte
}

// Parse reads a GFF3 file from r. Only the feature lines and the
// leading "##gff-version"/"##sequence-region" directives are
// meaningful here; an embedded "##FASTA" section (if present) is
// skipped, since the reference sequence is supplied separately as its
// own FASTA record in this pipeline.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, "reading GFF3 file")
	}

	doc := &Document{CheckSum: blake3.Sum256(raw)}

	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	inFasta := false
	index := 0
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			continue
		case line == "##FASTA":
			inFasta = true
		case inFasta:
			continue
		case strings.HasPrefix(line, "#"):
			continue
		default:
			feature, err := parseFeatureLine(index, line)
			if err != nil {
				return nil, errutil.Wrap(err, fmt.Sprintf("parsing GFF3 line %d", index+1))
			}
			doc.Features = append(doc.Features, feature)
			index++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, "scanning GFF3 file")
	}

	return doc, nil
}
