package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"pseudofinder/internal/config"
)

// InputFile is one provenance line of the summary.
type InputFile struct {
	Role   string // "annotation", "blastp", ...
	Path   string
	Digest string // blake3 hex; empty for stdin or absent inputs
}

// TableCounts mirrors blast.Stats for one hit table.
type TableCounts struct {
	Name      string
	Rows      int
	Kept      int
	Filtered  int
	Malformed int
	NoLength  int
}

// Summary is everything the run log reports.
type Summary struct {
	Program  string
	Version  string
	RunID    string
	Date     time.Time
	Elapsed  time.Duration
	Inputs   []InputFile
	Settings config.Thresholds

	Contigs      int
	Genes        int
	Regions      int
	GenesJoined  int
	Truncated    int
	Fragmented   int
	NoHit        int // counted as candidates only when Settings.ReportNoHit
	Intact       int
	Functional   int
	Tables       []TableCounts
	OrphanBlastP int
	OrphanBlastX int
}

// Total is the number of reported pseudogenes.
func (s Summary) Total() int {
	n := s.Truncated + s.Fragmented
	if s.Settings.ReportNoHit {
		n += s.NoHit
	}
	return n
}

// WriteSummary renders the plain-text run log.
func WriteSummary(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	line := func(format string, args ...any) { fmt.Fprintf(tw, format+"\n", args...) }

	line("####### Summary from %s %s #######", s.Program, s.Version)
	line("")
	line("Date/time:\t%s", s.Date.Format(time.RFC3339))
	line("Run id:\t%s", s.RunID)
	if s.Elapsed > 0 {
		line("Elapsed:\t%s", s.Elapsed.Round(time.Millisecond))
	}
	line("")
	line("#######    Files    #######")
	for _, in := range s.Inputs {
		d := in.Digest
		if d == "" {
			d = "-"
		}
		line("%s:\t%s\tblake3:%s", title(in.Role), in.Path, d)
	}
	line("")
	line("#######  Settings   #######")
	t := s.Settings
	line("Intergenic_length:\t%d", t.IntergenicLength)
	line("Length_pseudo:\t%g", t.LengthPseudo)
	line("Shared_hits:\t%g", t.SharedHits)
	line("Evalue:\t%g", t.Evalue)
	line("Top_hits:\t%d", t.TopHits)
	line("Max_distance:\t%d", t.MaxDistance)
	line("Report_no_hit:\t%t", t.ReportNoHit)
	line("")
	line("####### Statistics  #######")
	line("#Input:")
	line("Initial ORFs:\t%d", s.Genes)
	line("Number of contigs:\t%d", s.Contigs)
	line("Intergenic regions:\t%d", s.Regions)
	for _, tc := range s.Tables {
		line("%s rows:\t%d kept, %d filtered, %d malformed, %d without length", tc.Name, tc.Kept, tc.Filtered, tc.Malformed, tc.NoLength)
	}
	line("Orphaned queries:\t%d blastp, %d blastx", s.OrphanBlastP, s.OrphanBlastX)
	line("#Output:")
	line("Initial ORFs joined:\t%d", s.GenesJoined)
	line("Pseudogenes (total):\t%d", s.Total())
	line("Pseudogenes (too short):\t%d", s.Truncated)
	line("Pseudogenes (fragmented):\t%d", s.Fragmented)
	if t.ReportNoHit {
		line("Pseudogenes (no hit):\t%d", s.NoHit)
	}
	line("Functional genes:\t%d", s.Functional)
	line("")
	line("####### Output Key  #######")
	line("Initial ORFs joined:\tinput genes merged into a fragmented pseudogene.")
	line("Pseudogenes (too short):\tgenes shorter than length_pseudo times their best hit.")
	line("Pseudogenes (fragmented):\tpseudogenes built from two or more adjacent units.")
	if t.ReportNoHit {
		line("Pseudogenes (no hit):\tgenes without usable homology evidence.")
	}
	key := "[Initial ORFs] - [Initial ORFs joined] - [Pseudogenes (too short)]"
	if t.ReportNoHit {
		key += " - [Pseudogenes (no hit)]"
	}
	line("Functional genes:\t%s", key)
	return tw.Flush()
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
