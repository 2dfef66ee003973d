package pipeline

import (
	"context"
	"sync"

	"pseudofinder/internal/annotation"
)

// Config controls the contig worker pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// ForEachContig runs proc over every contig of ix on cfg.Threads workers and
// calls visit once per contig, in ix.Contigs() order, from a single
// goroutine. It returns the first error from proc or visit, or the context
// error when cancelled.
func ForEachContig(
	ctx context.Context,
	cfg Config,
	ix *annotation.Index,
	proc ContigProcessor,
	visit func(ContigResult) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx    int
		contig string
	}
	type result struct {
		idx int
		res ContigResult
		err error
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					res, err := proc.ProcessContig(j.contig, ix.Genes(j.contig))
					select {
					case results <- result{idx: j.idx, res: res, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: reorders by contig index.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]ContigResult)
		next := 0
		for r := range results {
			if cerr != nil {
				continue
			}
			if r.err != nil {
				cerr = r.err
				cancel()
				continue
			}
			pending[r.idx] = r.res
			for {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if err := visit(res); err != nil {
					cerr = err
					cancel()
					break
				}
			}
		}
	}()

	// Feed work
feed:
	for i, contig := range ix.Contigs() {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, contig: contig}:
		}
	}
	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}
