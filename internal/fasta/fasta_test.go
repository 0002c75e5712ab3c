package fasta

import (
	"context"
	"strings"
	"testing"
)

func TestParseAllSplitsNameAndDesc(t *testing.T) {
	input := ">seq1 some description\nACGT\nACGT\n>seq2\nTTTT\n"
	records, err := ParseAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Name != "seq1" || records[0].Desc != "some description" || records[0].Seq != "ACGTACGT" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Name != "seq2" || records[1].Desc != "" || records[1].Seq != "TTTT" {
		t.Errorf("records[1] = %+v", records[1])
	}
}

func TestParseAllEmptyInput(t *testing.T) {
	records, err := ParseAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestParseToChannelClosesOnCompletion(t *testing.T) {
	input := ">a\nAC\n>b\nGT\n"
	ch := make(chan *Record, 8)
	if err := ParseToChannel(context.Background(), strings.NewReader(input), ch, false); err != nil {
		t.Fatalf("ParseToChannel() error = %v", err)
	}
	var names []string
	for rec := range ch {
		names = append(names, rec.Name)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("names = %v, want [a b]", names)
	}
}

func TestParseToChannelRespectsContextCancellation(t *testing.T) {
	input := ">a\nAC\n>b\nGT\n"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := make(chan *Record, 8)
	err := ParseToChannel(ctx, strings.NewReader(input), ch, false)
	if err == nil {
		t.Error("ParseToChannel() error = nil, want context.Canceled")
	}
}
