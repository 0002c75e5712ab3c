package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/nextstrain/nextclade-core/internal/fasta"
)

func TestRunProcessesEveryRecord(t *testing.T) {
	input := ">a\nACGT\n>b\nTTTT\n>c\nGGGG\n"
	out, fatal := Run(context.Background(), strings.NewReader(input), 4, func(r *fasta.Record) (int, error) {
		return len(r.Seq), nil
	})

	seen := map[string]int{}
	for oc := range out {
		if oc.Err != nil {
			t.Fatalf("unexpected per-record error: %v", oc.Err)
		}
		seen[oc.Record.Name] = oc.Value
	}
	if err := fatal.Err(); err != nil {
		t.Fatalf("FirstFatal = %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("len(seen) = %d, want 3", len(seen))
	}
	for name, length := range seen {
		if length != 4 {
			t.Errorf("seen[%q] = %d, want 4", name, length)
		}
	}
}

func TestInOrderRestoresStreamOrder(t *testing.T) {
	input := ">a\nA\n>b\nBB\n>c\nCCC\n>d\nDDDD\n>e\nEEEEE\n"
	out, fatal := Run(context.Background(), strings.NewReader(input), 8, func(r *fasta.Record) (string, error) {
		return r.Name, nil
	})

	var order []string
	for oc := range InOrder(out) {
		order = append(order, oc.Value)
	}
	if err := fatal.Err(); err != nil {
		t.Fatalf("FirstFatal = %v", err)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRunSurfacesPerRecordErrors(t *testing.T) {
	input := ">bad\nACGT\n>good\nTTTT\n"
	out, _ := Run(context.Background(), strings.NewReader(input), 2, func(r *fasta.Record) (int, error) {
		if r.Name == "bad" {
			return 0, errRecordBad
		}
		return len(r.Seq), nil
	})

	var errs, ok int
	for oc := range out {
		if oc.Err != nil {
			errs++
		} else {
			ok++
		}
	}
	if errs != 1 || ok != 1 {
		t.Errorf("errs = %d, ok = %d, want 1, 1", errs, ok)
	}
}

var errRecordBad = &recordError{"bad record"}

type recordError struct{ msg string }

func (e *recordError) Error() string { return e.msg }
