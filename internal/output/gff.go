package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/merge"
)

// GFFHeader is written once before the first feature line.
type GFFHeader struct {
	Date    string // "#!annotation-date"; omitted when empty
	Regions []annotation.SequenceRegion
}

// WriteGFFHeader writes the version pragma, the date, and one
// ##sequence-region line per contig of known length.
func WriteGFFHeader(w io.Writer, h GFFHeader) error {
	var b strings.Builder
	b.WriteString("##gff-version 3\n")
	if h.Date != "" {
		fmt.Fprintf(&b, "#!annotation-date\t%s\n", h.Date)
	}
	for _, r := range h.Regions {
		if r.Length > 0 {
			fmt.Fprintf(&b, "##sequence-region %s 1 %d\n", r.ID, r.Length)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FormatGFF renders one pseudogene feature line (no trailing newline).
func FormatGFF(c merge.Candidate) string {
	attrs := []string{
		"ID=" + escapeGFF(c.ID),
		"locus_tag=" + escapeGFF(c.ID),
		"pseudo_type=" + c.Kind.String(),
		"members=" + joinEscaped(c.MemberIDs()),
	}
	if c.HasBest {
		attrs = append(attrs, "best_hit="+escapeGFF(c.Best.Subject))
	}
	if c.HasRatio {
		attrs = append(attrs, "ratio="+strconv.FormatFloat(c.Ratio, 'f', 3, 64))
	}
	if c.HasShared {
		attrs = append(attrs, "shared_hits="+strconv.FormatFloat(c.Shared, 'f', 3, 64))
	}
	attrs = append(attrs, "Note="+escapeGFF(note(c)), "colour=229 204 255")
	return strings.Join([]string{
		c.Contig, GFFSource, "pseudogene",
		strconv.Itoa(c.Start), strconv.Itoa(c.End),
		".", c.Strand.String(), ".",
		strings.Join(attrs, ";"),
	}, "\t")
}

// StreamGFF writes the header then one line per candidate from in.
func StreamGFF(w io.Writer, in <-chan merge.Candidate, h GFFHeader) error {
	if err := WriteGFFHeader(w, h); err != nil {
		return err
	}
	for c := range in {
		if _, err := fmt.Fprintln(w, FormatGFF(c)); err != nil {
			return err
		}
	}
	return nil
}

func note(c merge.Candidate) string {
	switch c.Kind {
	case merge.KindTruncated:
		return fmt.Sprintf("pseudogene candidate. Reason: ORF is %.1f%% of the best hit length.", c.Ratio*100)
	case merge.KindFragmented:
		return fmt.Sprintf("pseudogene candidate. Reason: predicted fragmentation of a single gene (%d pieces).", len(c.Members))
	case merge.KindNoHit:
		return "pseudogene candidate. Reason: no homology evidence."
	}
	return c.Kind.String()
}

// escapeGFF percent-encodes the characters GFF3 reserves in column 9.
func escapeGFF(s string) string {
	if !strings.ContainsAny(s, "%;=&,\t\n\r") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '%', ';', '=', '&', ',', '\t', '\n', '\r':
			fmt.Fprintf(&b, "%%%02X", ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func joinEscaped(ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = escapeGFF(id)
	}
	return strings.Join(out, ",")
}
