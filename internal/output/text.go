package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"pseudofinder/internal/merge"
)

// FormatRow renders one TSV row (no trailing newline). Missing values are ".".
func FormatRow(c merge.Candidate) string {
	best, slen := ".", "."
	if c.HasBest {
		best, slen = c.Best.Subject, strconv.Itoa(c.Best.Length)
	}
	ratio, shared := ".", "."
	if c.HasRatio {
		ratio = strconv.FormatFloat(c.Ratio, 'f', 3, 64)
	}
	if c.HasShared {
		shared = strconv.FormatFloat(c.Shared, 'f', 3, 64)
	}
	return strings.Join([]string{
		c.ID, c.Contig, strconv.Itoa(c.Start), strconv.Itoa(c.End), c.Strand.String(),
		c.Kind.String(), strings.Join(c.MemberIDs(), ","), best, slen,
		strconv.Itoa(c.OwnLength), ratio, shared,
	}, "\t")
}

// StreamText writes rows as they arrive on in.
func StreamText(w io.Writer, in <-chan merge.Candidate, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for c := range in {
		if _, err := fmt.Fprintln(w, FormatRow(c)); err != nil {
			return err
		}
	}
	return nil
}
