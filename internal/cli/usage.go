package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"pseudofinder/internal/version"
	"pseudofinder/internal/writers"
)

// ErrPrintedAndExitOK is returned by the parsers when --examples was given.
// Apps should print the examples and exit 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// installUsage sets a grouped Usage() on fs. body prints the tool's flag
// sections; def looks up a flag's default.
func installUsage(fs *flag.FlagSet, name, summary string, body func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}
		fmt.Fprintf(out, "%s – %s\n\n", name, summary)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintf(out, "Usage of %s:\n", name)
		body(out, def)
		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "      --log-level string      debug | info | warn | error [%s]\n", def("log-level"))
		fmt.Fprintln(out, "  -q, --quiet                 Log errors only")
		fmt.Fprintln(out, "      --examples              Print a quickstart and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}

func pseudofinderUsage(out io.Writer, def func(string) string) {
	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -a, --annotation file       GFF3 (CDS features) or TSV: locus_tag contig start end strand aa_length [*]")
	fmt.Fprintln(out, "  -p, --blastp file           BLASTP tabular output, 12 or 13 columns (slen before evalue) [*]")
	fmt.Fprintln(out, "  -x, --blastx file           BLASTX tabular output for pseudofinder-intergenic regions")
	fmt.Fprintln(out, "  -L, --lengths file          Subject lengths: protein FASTA or id<TAB>length")
	fmt.Fprintln(out, "      --config file           JSON thresholds; explicit flags win")
	fmt.Fprintln(out, "  Inputs may be '-' for STDIN (one at most), gzip or xz compressed.")

	fmt.Fprintln(out, "\nThresholds:")
	fmt.Fprintf(out, "  -i, --intergenic-length int Minimum intergenic region (bp) [%s]\n", def("intergenic-length"))
	fmt.Fprintf(out, "  -l, --length-pseudo float   Truncated below this gene/best-hit length ratio [%s]\n", def("length-pseudo"))
	fmt.Fprintf(out, "  -s, --shared-hits float     Minimum shared-subject fraction to merge [%s]\n", def("shared-hits"))
	fmt.Fprintf(out, "  -e, --evalue float          Discard hits above this e-value [%s]\n", def("evalue"))
	fmt.Fprintf(out, "      --top-hits int          Subjects compared per unit (0=all) [%s]\n", def("top-hits"))
	fmt.Fprintf(out, "      --max-distance int      Largest gap (bp) a merge may bridge (0=unlimited) [%s]\n", def("max-distance"))
	fmt.Fprintf(out, "      --report-no-hit         Also report genes without homology [%s]\n", def("report-no-hit"))

	fmt.Fprintln(out, "\nPerformance:")
	fmt.Fprintf(out, "  -t, --threads int           Contig workers (0=all CPUs) [%s]\n", def("threads"))

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output string         Output: %s [%s]\n", strings.Join(writers.Formats(), " | "), def("output"))
	fmt.Fprintln(out, "      --summary file          Write a run summary log")
	fmt.Fprintf(out, "      --no-header             Suppress header line (text) [%s]\n", def("no-header"))
	fmt.Fprintf(out, "      --no-candidates-exit-code int  Exit code when nothing is reported [%s]\n", def("no-candidates-exit-code"))
}

func intergenicUsage(out io.Writer, def func(string) string) {
	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -a, --annotation file       GFF3 (CDS features) or 6-column TSV [*]")
	fmt.Fprintln(out, "  -g, --genome file           Genome FASTA; '-' for STDIN [*]")
	fmt.Fprintln(out, "\nRegions:")
	fmt.Fprintf(out, "  -i, --intergenic-length int Minimum region length (bp) [%s]\n", def("intergenic-length"))
}

// PrintExamples prints a small quickstart for name, followed by a one-line
// tip to discover full help.
func PrintExamples(out io.Writer, name string) {
	_, _ = fmt.Fprintf(out, "%s – quickstart\n\n", name)
	switch name {
	case "pseudofinder-intergenic":
		fmt.Fprintln(out, "  # regions of at least 30 bp, ready for BLASTX")
		fmt.Fprintln(out, "  pseudofinder-intergenic -a genome.gff -g genome.fa > intergenic.fa")
	default:
		fmt.Fprintln(out, "  # GFF3 report, 13-column tables")
		fmt.Fprintln(out, "  pseudofinder -a genome.gff -p blastp.tsv -x blastx.tsv > pseudo.gff")
		fmt.Fprintln(out, "\n  # 12-column tables with subject lengths from the search database")
		fmt.Fprintln(out, "  pseudofinder -a genes.tsv -p blastp.tsv -L db.faa --summary run_log.txt")
		fmt.Fprintln(out, "\n  # stricter merging, JSON Lines")
		fmt.Fprintln(out, "  pseudofinder -a genome.gff -p blastp.tsv -s 0.5 -o jsonl")
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
