// Package fasta parses FASTA records for both the single reference
// sequence (internal/dataset) and the per-query input stream
// (internal/pipeline). Grounded on the teacher's bio/fasta.Parser and
// the streaming bio.Parser.ParseToChannel/Next wrapper, generalized so
// a record's header line splits into a Name (first whitespace-
// delimited token) and a Desc (the remainder), matching spec.md §6.2's
// `{index, name, desc, seq}` shape rather than the teacher's single
// Identifier field.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/nextstrain/nextclade-core/internal/errutil"
)

// Record is one FASTA entry, header split into Name/Desc.
type Record struct {
	Name string
	Desc string
	Seq  string
}

// Parser reads FASTA records one at a time from an underlying reader,
// in the spirit of the teacher's bio/fasta.Parser (scan lines, buffer
// sequence, emit on the next header or EOF).
type Parser struct {
	scanner *bufio.Scanner
	buf     bytes.Buffer
	header  string
	started bool
	done    bool
}

// DefaultMaxLineLength mirrors the teacher's bio.DefaultMaxLengths[Fasta]
// choice of the stdlib bufio scan-token default.
const DefaultMaxLineLength = bufio.MaxScanTokenSize

// NewParser builds a Parser over r with the given maximum line length.
func NewParser(r io.Reader, maxLineLength int) *Parser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &Parser{scanner: scanner}
}

// Next returns the next record, or io.EOF once the input is exhausted.
func (p *Parser) Next() (*Record, error) {
	if p.done {
		return nil, io.EOF
	}
	for p.scanner.Scan() {
		line := p.scanner.Text()
		switch {
		case line == "" || line[0] == ';':
			continue
		case line[0] == '>':
			var rec *Record
			if p.started {
				rec = p.finish()
			}
			p.header = line[1:]
			p.started = true
			p.buf.Reset()
			if rec != nil {
				return rec, nil
			}
		default:
			p.buf.WriteString(strings.TrimRight(line, "\r"))
		}
	}
	if err := p.scanner.Err(); err != nil {
		return nil, errutil.WrapKind(err, errutil.KindInputParse, "scanning FASTA input")
	}
	p.done = true
	if !p.started {
		return nil, io.EOF
	}
	return p.finish(), nil
}

func (p *Parser) finish() *Record {
	name, desc, _ := strings.Cut(p.header, " ")
	return &Record{Name: name, Desc: strings.TrimSpace(desc), Seq: p.buf.String()}
}

// ParseAll reads every record from r, for small inputs like a
// reference FASTA that is known to hold exactly one record.
func ParseAll(r io.Reader) ([]*Record, error) {
	p := NewParser(r, DefaultMaxLineLength)
	var out []*Record
	for {
		rec, err := p.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, rec)
	}
}

// ParseToChannel streams records from r into records, closing it on
// completion unless keepOpen is set (for fan-in from multiple
// readers), mirroring the teacher's bio.Parser.ParseToChannel.
func ParseToChannel(ctx context.Context, r io.Reader, records chan<- *Record, keepOpen bool) error {
	p := NewParser(r, DefaultMaxLineLength)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := p.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			if !keepOpen {
				close(records)
			}
			return err
		}
		records <- rec
	}
}
