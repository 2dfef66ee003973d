// Package intergenicapp is the pseudofinder-intergenic entry point: it
// writes the intergenic regions of an annotated genome as FASTA, the query
// set for the BLASTX search.
package intergenicapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/cli"
	"pseudofinder/internal/intergenic"
	"pseudofinder/internal/logging"
	"pseudofinder/internal/version"
	"pseudofinder/internal/writers"
)

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("pseudofinder-intergenic")
	fs.SetOutput(io.Discard)
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseIntergenicArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flushed(outw, stderr, 0)
		}
		if errors.Is(err, cli.ErrPrintedAndExitOK) {
			cli.PrintExamples(outw, fs.Name())
			return flushed(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return flushed(outw, stderr, 2)
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "pseudofinder-intergenic version %s\n", version.Version)
		return flushed(outw, stderr, 0)
	}

	logger := logging.New(stderr, opts.LogLevel, opts.Quiet, "pseudofinder-intergenic")

	ix, err := annotation.Load(opts.Annotation)
	if err != nil {
		logger.Error("cannot load annotation", "err", err)
		return 2
	}
	genome, err := intergenic.LoadGenome(opts.Genome)
	if err != nil {
		logger.Error("cannot load genome", "err", err)
		return 2
	}
	logger.Info("loaded inputs", "genes", ix.Len(), "contigs", len(ix.Contigs()), "sequences", len(genome.SequenceRegions()))

	n, err := intergenic.WriteFASTA(outw, intergenic.Scan(ix, opts.IntergenicLength), genome)
	if err == nil {
		err = outw.Flush()
	}
	if err != nil && !writers.IsBrokenPipe(err) {
		logger.Error("write regions", "err", err)
		if errors.Is(err, intergenic.ErrUnknownContig) {
			return 2
		}
		return 3
	}
	if ctx.Err() != nil {
		return 130
	}
	logger.Info("done", "regions", n, "min_length", opts.IntergenicLength)
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flushed(w *bufio.Writer, stderr io.Writer, code int) int {
	if e := w.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}
