package writers

import (
	"bufio"
	"fmt"
	"io"

	"pseudofinder/internal/jsonlutil"
	"pseudofinder/internal/merge"
	"pseudofinder/internal/output"
	"pseudofinder/pkg/api"
)

// StartCandidateWriter spins up a writer goroutine for reported candidates.
// Send candidates in output order, close the channel, then read the error
// channel once. Broken pipes are reported as nil. The goroutine always drains
// the channel, even after an error or for an unknown format.
func StartCandidateWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- merge.Candidate, <-chan error) {
	if format == "jsonl" {
		return jsonlutil.Start(out, bufSize, func(c merge.Candidate) api.CandidateV1 {
			return output.ToAPICandidate(c)
		}, IsBrokenPipe)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan merge.Candidate, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := candidateWriters[format]
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unsupported output %q", format)
			return
		}
		bw := bufio.NewWriterSize(out, 64<<10)
		err := fn(bw, in, opt)
		for range in {
		}
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
