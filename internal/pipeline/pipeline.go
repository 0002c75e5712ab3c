// Package pipeline runs one query sequence at a time through an
// analysis function, concurrently, preserving the query's original
// ordering on the way out if the caller asks for it. Grounded on the
// teacher's bio/bio.go Parser.ParseToChannel/ManyToChannel
// (context-cancellable channel fan-out, first-error-wins semantics),
// generalized from "many readers into one channel" to "one reader,
// many workers, one writer" since spec.md §5 calls for a bounded
// worker pool over a single query stream rather than concatenating
// several input files.
package pipeline

import (
	"container/heap"
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nextstrain/nextclade-core/internal/fasta"
)

// channelBuffer bounds the reader->worker and worker->writer queues,
// matching the teacher's bio.go convention of buffering internal
// pipeline channels rather than leaving them unbuffered.
const channelBuffer = 128

// Outcome is one query's result, carrying its original stream index
// so a caller that needs input order can restore it.
type Outcome[R any] struct {
	Index  int
	Record *fasta.Record
	Value  R
	Err    error
}

// FirstFatal records the first pipeline-infrastructure error (a
// malformed FASTA stream, a cancelled context) as opposed to a
// per-query analysis error, which is instead carried on that query's
// Outcome.Err. Mirrors the "entire pipeline exits and returns" failure
// mode of the teacher's ManyToChannel, generalized to a reusable
// accumulator since this package has more than one goroutine that
// could be first to fail.
type FirstFatal struct {
	mu  sync.Mutex
	err error
}

func (f *FirstFatal) set(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err == nil {
		f.err = err
	}
}

// Err returns the first fatal error recorded, or nil.
func (f *FirstFatal) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

type indexedRecord struct {
	index  int
	record *fasta.Record
}

// Run streams fasta records from r through work, using concurrency
// workers, and returns a channel of Outcome values plus a FirstFatal
// that the caller should check once the channel closes. Outcomes may
// arrive out of stream order; wrap the returned channel with
// InOrder to restore it.
func Run[R any](ctx context.Context, r io.Reader, concurrency int, work func(*fasta.Record) (R, error)) (<-chan Outcome[R], *FirstFatal) {
	if concurrency < 1 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	fatal := &FirstFatal{}

	records := make(chan *fasta.Record, channelBuffer)
	go func() {
		defer close(records)
		if err := fasta.ParseToChannel(ctx, r, records, true); err != nil {
			fatal.set(err)
			cancel()
		}
	}()

	indexed := make(chan indexedRecord, channelBuffer)
	go func() {
		defer close(indexed)
		i := 0
		for rec := range records {
			select {
			case indexed <- indexedRecord{i, rec}:
				i++
			case <-ctx.Done():
				return
			}
		}
	}()

	out := make(chan Outcome[R], channelBuffer)
	var workers errgroup.Group
	for w := 0; w < concurrency; w++ {
		workers.Go(func() error {
			for ir := range indexed {
				value, err := work(ir.record)
				select {
				case out <- Outcome[R]{Index: ir.index, Record: ir.record, Value: value, Err: err}:
				case <-ctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	go func() {
		_ = workers.Wait()
		close(out)
		cancel()
	}()

	return out, fatal
}

// outcomeHeap orders buffered out-of-order outcomes by Index, for
// InOrder's reordering buffer.
type outcomeHeap[R any] []Outcome[R]

func (h outcomeHeap[R]) Len() int            { return len(h) }
func (h outcomeHeap[R]) Less(i, j int) bool  { return h[i].Index < h[j].Index }
func (h outcomeHeap[R]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *outcomeHeap[R]) Push(x any)         { *h = append(*h, x.(Outcome[R])) }
func (h *outcomeHeap[R]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// InOrder re-sequences a Run() output channel back into ascending
// Index order, buffering results that arrive ahead of the next
// expected index. Use this for a writer that must emit results in
// query-submission order (spec.md §5's "results written in input
// order" requirement); skip it for a writer indifferent to order.
func InOrder[R any](in <-chan Outcome[R]) <-chan Outcome[R] {
	out := make(chan Outcome[R], channelBuffer)
	go func() {
		defer close(out)
		pending := &outcomeHeap[R]{}
		heap.Init(pending)
		next := 0
		for oc := range in {
			heap.Push(pending, oc)
			for pending.Len() > 0 && (*pending)[0].Index == next {
				out <- heap.Pop(pending).(Outcome[R])
				next++
			}
		}
	}()
	return out
}
