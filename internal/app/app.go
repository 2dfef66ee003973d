// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"pseudofinder/internal/appcore"
	"pseudofinder/internal/cli"
	"pseudofinder/internal/logging"
	"pseudofinder/internal/version"
	"pseudofinder/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("pseudofinder")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
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
		return flushed(outw, stderr, appcore.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "pseudofinder version %s\n", version.Version)
		return flushed(outw, stderr, 0)
	}

	th, err := opts.Resolve()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appcore.ExitUsage
	}
	logger := logging.New(stderr, th.LogLevel, opts.Quiet, "pseudofinder")

	coreOpts := appcore.Options{
		Annotation:           opts.Annotation,
		BlastP:               opts.BlastP,
		BlastX:               opts.BlastX,
		Lengths:              opts.Lengths,
		Thresholds:           th,
		Summary:              opts.Summary,
		NoCandidatesExitCode: opts.NoCandidatesExitCode,
	}
	writer := appcore.NewCandidateWriterFactory(opts.Output, opts.Header)
	return appcore.Run(parent, outw, logger, coreOpts, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// flushed flushes w and returns code, or 3 on a non-pipe write error.
func flushed(w *bufio.Writer, stderr io.Writer, code int) int {
	if e := w.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return appcore.ExitRuntime
	}
	return code
}
