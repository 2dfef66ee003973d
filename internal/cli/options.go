// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"pseudofinder/internal/config"
	"pseudofinder/internal/writers"
)

// Options holds all pseudofinder flags.
type Options struct {
	// Inputs
	Annotation string
	BlastP     string
	BlastX     string
	Lengths    string
	ConfigFile string

	// Thresholds as given on the command line; see Resolve.
	Thresholds config.Thresholds

	// Output
	Output               string
	Header               bool // true unless --no-header
	Summary              string
	Quiet                bool
	NoCandidatesExitCode int

	Version bool

	set map[string]bool // threshold fields set explicitly
}

// thresholdFlags maps every threshold flag name (long and short) to the
// field it controls.
var thresholdFlags = map[string]func(dst *config.Thresholds, src config.Thresholds){
	"intergenic-length": func(d *config.Thresholds, s config.Thresholds) { d.IntergenicLength = s.IntergenicLength },
	"length-pseudo":     func(d *config.Thresholds, s config.Thresholds) { d.LengthPseudo = s.LengthPseudo },
	"shared-hits":       func(d *config.Thresholds, s config.Thresholds) { d.SharedHits = s.SharedHits },
	"evalue":            func(d *config.Thresholds, s config.Thresholds) { d.Evalue = s.Evalue },
	"top-hits":          func(d *config.Thresholds, s config.Thresholds) { d.TopHits = s.TopHits },
	"max-distance":      func(d *config.Thresholds, s config.Thresholds) { d.MaxDistance = s.MaxDistance },
	"report-no-hit":     func(d *config.Thresholds, s config.Thresholds) { d.ReportNoHit = s.ReportNoHit },
	"threads":           func(d *config.Thresholds, s config.Thresholds) { d.Threads = s.Threads },
	"log-level":         func(d *config.Thresholds, s config.Thresholds) { d.LogLevel = s.LogLevel },
}

var shortNames = map[string]string{
	"i": "intergenic-length",
	"l": "length-pseudo",
	"s": "shared-hits",
	"e": "evalue",
	"t": "threads",
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Thresholds: config.Default()}
	t := &opt.Thresholds
	var help, examples bool
	installUsage(fs, fs.Name(), "flag pseudogene candidates from gene annotation and homology evidence", pseudofinderUsage)

	// Inputs
	for _, name := range []string{"annotation", "a"} {
		fs.StringVar(&opt.Annotation, name, "", "gene annotation: GFF3 (CDS features) or 6-column TSV; '-' for stdin [*]")
	}
	for _, name := range []string{"blastp", "p"} {
		fs.StringVar(&opt.BlastP, name, "", "BLASTP tabular results for the proteome [*]")
	}
	for _, name := range []string{"blastx", "x"} {
		fs.StringVar(&opt.BlastX, name, "", "BLASTX tabular results for the intergenic regions []")
	}
	for _, name := range []string{"lengths", "L"} {
		fs.StringVar(&opt.Lengths, name, "", "subject lengths for 12-column tables: protein FASTA or id<TAB>length []")
	}
	fs.StringVar(&opt.ConfigFile, "config", "", "JSON thresholds file; explicit flags win []")

	// Thresholds
	fs.IntVar(&t.IntergenicLength, "intergenic-length", t.IntergenicLength, fmt.Sprintf("minimum intergenic region (bp) to scan [%d]", t.IntergenicLength))
	fs.IntVar(&t.IntergenicLength, "i", t.IntergenicLength, "shorthand for --intergenic-length")
	fs.Float64Var(&t.LengthPseudo, "length-pseudo", t.LengthPseudo, fmt.Sprintf("gene/best-hit length ratio below which a gene is truncated [%g]", t.LengthPseudo))
	fs.Float64Var(&t.LengthPseudo, "l", t.LengthPseudo, "shorthand for --length-pseudo")
	fs.Float64Var(&t.SharedHits, "shared-hits", t.SharedHits, fmt.Sprintf("minimum shared-subject fraction to merge neighbours [%g]", t.SharedHits))
	fs.Float64Var(&t.SharedHits, "s", t.SharedHits, "shorthand for --shared-hits")
	fs.Float64Var(&t.Evalue, "evalue", t.Evalue, fmt.Sprintf("discard hits above this e-value [%g]", t.Evalue))
	fs.Float64Var(&t.Evalue, "e", t.Evalue, "shorthand for --evalue")
	fs.IntVar(&t.TopHits, "top-hits", t.TopHits, fmt.Sprintf("distinct subjects per unit compared when merging (0 = all) [%d]", t.TopHits))
	fs.IntVar(&t.MaxDistance, "max-distance", t.MaxDistance, fmt.Sprintf("largest gap (bp) a merge may bridge (0 = unlimited) [%d]", t.MaxDistance))
	fs.BoolVar(&t.ReportNoHit, "report-no-hit", false, "also report genes without usable homology [false]")
	fs.IntVar(&t.Threads, "threads", 0, "number of contig workers (0 = all CPUs) [0]")
	fs.IntVar(&t.Threads, "t", 0, "shorthand for --threads")
	fs.StringVar(&t.LogLevel, "log-level", t.LogLevel, "debug | info | warn | error ["+t.LogLevel+"]")

	// Output
	for _, name := range []string{"output", "o"} {
		fs.StringVar(&opt.Output, name, "gff", "output format: "+strings.Join(writers.Formats(), " | ")+" [gff]")
	}
	fs.StringVar(&opt.Summary, "summary", "", "write a run summary log to this file []")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	for _, name := range []string{"quiet", "q"} {
		fs.BoolVar(&opt.Quiet, name, false, "log errors only [false]")
	}
	fs.IntVar(&opt.NoCandidatesExitCode, "no-candidates-exit-code", 0, "exit code when no pseudogene is reported [0]")

	fs.BoolVar(&examples, "examples", false, "print a quickstart and exit [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if examples {
		return opt, ErrPrintedAndExitOK
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader
	opt.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := shortNames[name]; ok {
			name = long
		}
		if _, ok := thresholdFlags[name]; ok {
			opt.set[name] = true
		}
	})
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	// Validation
	switch {
	case opt.Annotation == "":
		return opt, errors.New("--annotation is required")
	case opt.BlastP == "":
		return opt, errors.New("--blastp is required")
	case opt.Annotation == "-" && (opt.BlastP == "-" || opt.BlastX == "-"):
		return opt, errors.New("only one input may be read from stdin")
	case opt.BlastP == "-" && opt.BlastX == "-":
		return opt, errors.New("only one input may be read from stdin")
	}
	if !writers.Supported(opt.Output) {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.NoCandidatesExitCode < 0 || opt.NoCandidatesExitCode > 125 {
		return opt, errors.New("--no-candidates-exit-code must be within [0,125]")
	}
	if opt.ConfigFile == "" {
		if err := opt.Thresholds.Validate(); err != nil {
			return opt, err
		}
	}
	return opt, nil
}

// IsSet reports whether a threshold flag was given explicitly.
func (o Options) IsSet(flagName string) bool { return o.set[flagName] }

// Resolve returns the effective thresholds: defaults, overlaid by the
// --config file when given, overlaid by every flag set explicitly.
func (o Options) Resolve() (config.Thresholds, error) {
	if o.ConfigFile == "" {
		return o.Thresholds, o.Thresholds.Validate()
	}
	t, err := config.LoadJSON(o.ConfigFile, config.Default())
	if err != nil {
		return t, err
	}
	for name := range o.set {
		thresholdFlags[name](&t, o.Thresholds)
	}
	return t, t.Validate()
}
