package writers

import (
	"io"
	"sort"

	"pseudofinder/internal/merge"
	"pseudofinder/internal/output"
)

// Options carries per-format settings.
type Options struct {
	Header bool             // text: emit output.TSVHeader
	GFF    output.GFFHeader // gff: header pragmas
}

type streamFunc func(w io.Writer, in <-chan merge.Candidate, opt Options) error

// Buffered formats; jsonl is handled by StartCandidateWriter directly.
var candidateWriters = map[string]streamFunc{
	"gff": func(w io.Writer, in <-chan merge.Candidate, opt Options) error {
		return output.StreamGFF(w, in, opt.GFF)
	},
	"text": func(w io.Writer, in <-chan merge.Candidate, opt Options) error {
		return output.StreamText(w, in, opt.Header)
	},
	"json": func(w io.Writer, in <-chan merge.Candidate, _ Options) error {
		var buf []merge.Candidate
		for c := range in {
			buf = append(buf, c)
		}
		return output.WriteJSON(w, buf)
	},
}

// Formats lists every supported output format, sorted.
func Formats() []string {
	out := []string{"jsonl"}
	for f := range candidateWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether format has a writer.
func Supported(format string) bool {
	_, ok := candidateWriters[format]
	return ok || format == "jsonl"
}
