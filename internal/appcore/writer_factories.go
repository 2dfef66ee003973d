package appcore

import (
	"io"

	"pseudofinder/internal/merge"
	"pseudofinder/internal/output"
	"pseudofinder/internal/writers"
)

// WriterFactory starts the output goroutine once inputs are loaded, so the
// GFF header can carry the contig lengths.
type WriterFactory interface {
	Start(out io.Writer, gff output.GFFHeader, bufSize int) (chan<- merge.Candidate, <-chan error)
}

type CandidateWriterFactory struct {
	Format string
	Header bool
}

func NewCandidateWriterFactory(format string, header bool) CandidateWriterFactory {
	return CandidateWriterFactory{Format: format, Header: header}
}

func (w CandidateWriterFactory) Start(out io.Writer, gff output.GFFHeader, bufSize int) (chan<- merge.Candidate, <-chan error) {
	return writers.StartCandidateWriter(out, w.Format, writers.Options{Header: w.Header, GFF: gff}, bufSize)
}
