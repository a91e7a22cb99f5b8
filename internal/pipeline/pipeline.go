package pipeline

import (
	"context"
	"fmt"
	"sync"

	"razor/internal/fasta"
	"razor/internal/score"
)

// ParallelThreshold is the smallest batch dispatched to the worker pool.
// Smaller batches run sequentially.
const ParallelThreshold = 100

// Config controls batch execution.
type Config struct {
	Workers  int  // requested worker goroutines (>=1)
	NumCPU   int  // hardware concurrency cap; <=0 disables the cap
	FailFast bool // abort the batch on the first failed sequence
}

// EffectiveWorkers returns the worker count used for a batch of n records:
// 1 below ParallelThreshold, otherwise workers clamped to [1, numCPU].
func EffectiveWorkers(workers, numCPU, n int) int {
	if n < ParallelThreshold {
		return 1
	}
	if numCPU > 0 && workers > numCPU {
		workers = numCPU
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

type outcome struct {
	idx int
	res score.Result
}

// Run scores every record and returns one Result per record, in input
// order. A failing record yields a Result with Err set; with FailFast the
// batch stops and the failure of the lowest-indexed record seen is returned.
// prog may be nil.
func Run(ctx context.Context, cfg Config, recs []fasta.Record, p Predictor, prog Progress) ([]score.Result, error) {
	results := make([]score.Result, len(recs))
	threads := EffectiveWorkers(cfg.Workers, cfg.NumCPU, len(recs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, threads*2)
	outs := make(chan outcome, threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					o := outcome{idx: i, res: predictOne(p, recs[i])}
					select {
					case outs <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Feed work
	go func() {
		defer close(jobs)
		for i := range recs {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outs)
	}()

	// Gather by index, never by completion order.
	var (
		failIdx = -1
		done    int
	)
	for o := range outs {
		results[o.idx] = o.res
		done++
		if prog != nil {
			prog.Increment()
		}
		if o.res.Err != nil && cfg.FailFast && (failIdx < 0 || o.idx < failIdx) {
			failIdx = o.idx
			cancel()
		}
	}

	if failIdx >= 0 {
		return results, results[failIdx].Err
	}
	if err := ctx.Err(); err != nil && done < len(recs) {
		return results, err
	}
	return results, nil
}

// predictOne isolates one unit of work: errors and panics become an error
// Result instead of escaping into the batch.
func predictOne(p Predictor, rec fasta.Record) (res score.Result) {
	defer func() {
		if v := recover(); v != nil {
			res = score.Result{Accession: rec.ID, Sequence: rec.Seq, Err: fmt.Errorf("%s: panic: %v", rec.ID, v)}
		}
	}()
	r, err := p.Predict(rec.ID, rec.Seq)
	if err != nil {
		return score.Result{Accession: rec.ID, Sequence: rec.Seq, Err: err}
	}
	return r
}
