// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"pseudofinder/internal/config"
	"pseudofinder/internal/merge"
	"pseudofinder/internal/output"
	"pseudofinder/internal/pipeline"
	"pseudofinder/internal/runutil"
	"pseudofinder/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2 // usage, configuration, or input error
	ExitRuntime   = 3 // output, summary, or invariant failure
	ExitCancelled = 130
)

type Options struct {
	Annotation string
	BlastP     string
	BlastX     string
	Lengths    string

	Thresholds config.Thresholds

	Summary              string
	NoCandidatesExitCode int

	// Now stamps the GFF header and the summary; defaults to time.Now.
	Now func() time.Time
}

// Run executes one classification: load inputs, evaluate and merge each
// contig on a worker pool, stream reported candidates to the writer, and
// write the optional summary.
func Run(parent context.Context, stdout io.Writer, logger *log.Logger, o Options, wf WriterFactory) int {
	now := o.Now
	if now == nil {
		now = time.Now
	}
	started := now()
	runID := uuid.NewString()
	logger = logger.With("run", runID[:8])

	in, err := loadInputs(o, logger)
	if err != nil {
		logger.Error("cannot load inputs", "err", err)
		return ExitUsage
	}

	t := o.Thresholds
	thr := runutil.EffectiveThreads(t.Threads, len(in.index.Contigs()))
	logger.Debug("starting", "threads", thr, "contigs", len(in.index.Contigs()))

	outw := bufio.NewWriter(stdout)
	hdr := output.GFFHeader{Date: started.Format(time.DateOnly), Regions: in.index.SequenceRegions()}
	inCh, writeErr := wf.Start(outw, hdr, runutil.WriterBuffer(thr))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	tally := pipeline.NewTally()
	reported := 0
	proc := pipeline.NewClassifier(t, in.blastp, in.blastx)
	perr := pipeline.ForEachContig(ctx, pipeline.Config{Threads: thr}, in.index, proc,
		func(res pipeline.ContigResult) error {
			tally.Add(res)
			rep := merge.Reportable(res.Candidates, t.ReportNoHit)
			merge.Number(rep)
			for _, c := range rep {
				select {
				case inCh <- c:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			reported += len(rep)
			logger.Debug("contig done", "contig", res.Contig, "genes", res.Genes, "reported", len(rep))
			return nil
		})

	close(inCh)

	if werr := <-writeErr; werr != nil {
		logger.Error("write output", "err", werr)
		return ExitRuntime
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		logger.Error("write output", "err", e)
		return ExitRuntime
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCancelled
		}
		if errors.Is(perr, merge.ErrInvariant) {
			logger.Error("internal invariant violated", "err", perr)
		} else {
			logger.Error("classification failed", "err", perr)
		}
		return ExitRuntime
	}

	st := tally.Finish(in.index, in.blastp, in.blastx)
	logOrphans(logger, "blastp", "no such locus tag", st.OrphanBlastP)
	logOrphans(logger, "blastx", "no such intergenic region", st.OrphanBlastX)

	if o.Summary != "" {
		s := buildSummary(o, in, st, runID, started, now().Sub(started), logger)
		if err := writeSummaryFile(o.Summary, s); err != nil {
			logger.Error("write summary", "path", o.Summary, "err", err)
			return ExitRuntime
		}
	}

	logger.Info("done",
		"reported", reported,
		"truncated", st.ByKind[merge.KindTruncated],
		"fragmented", st.ByKind[merge.KindFragmented],
		"no_hit", st.ByKind[merge.KindNoHit],
		"genes_joined", st.GenesJoined)
	if reported == 0 {
		return o.NoCandidatesExitCode
	}
	return ExitOK
}

func logOrphans(logger *log.Logger, kind, reason string, queries []string) {
	if len(queries) == 0 {
		return
	}
	sample := queries
	if len(sample) > 5 {
		sample = sample[:5]
	}
	logger.Warn("orphaned hit queries ignored", "kind", kind, "reason", reason, "count", len(queries), "sample", sample)
}

func writeSummaryFile(path string, s output.Summary) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return output.WriteSummary(fh, s)
}
