package cli

import (
	"errors"
	"flag"
	"fmt"

	"pseudofinder/internal/config"
)

// IntergenicOptions holds the pseudofinder-intergenic flags.
type IntergenicOptions struct {
	Annotation       string
	Genome           string
	IntergenicLength int
	LogLevel         string
	Quiet            bool
	Version          bool
}

// ParseIntergenicArgs parses the region extraction tool's flags.
func ParseIntergenicArgs(fs *flag.FlagSet, argv []string) (IntergenicOptions, error) {
	opt := IntergenicOptions{IntergenicLength: config.DefaultIntergenicLength}
	var help, examples bool
	installUsage(fs, fs.Name(), "extract intergenic regions as FASTA for a BLASTX search", intergenicUsage)

	for _, name := range []string{"annotation", "a"} {
		fs.StringVar(&opt.Annotation, name, "", "gene annotation: GFF3 (CDS features) or 6-column TSV [*]")
	}
	for _, name := range []string{"genome", "g"} {
		fs.StringVar(&opt.Genome, name, "", "genome FASTA; '-' for stdin [*]")
	}
	for _, name := range []string{"intergenic-length", "i"} {
		fs.IntVar(&opt.IntergenicLength, name, config.DefaultIntergenicLength, fmt.Sprintf("minimum intergenic region (bp) to extract [%d]", config.DefaultIntergenicLength))
	}
	fs.StringVar(&opt.LogLevel, "log-level", "info", "debug | info | warn | error [info]")
	for _, name := range []string{"quiet", "q"} {
		fs.BoolVar(&opt.Quiet, name, false, "log errors only [false]")
	}
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
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	switch {
	case opt.Annotation == "":
		return opt, errors.New("--annotation is required")
	case opt.Genome == "":
		return opt, errors.New("--genome is required")
	case opt.Annotation == "-" && opt.Genome == "-":
		return opt, errors.New("only one input may be read from stdin")
	case opt.IntergenicLength < 1:
		return opt, errors.New("--intergenic-length must be ≥ 1")
	}
	return opt, nil
}
