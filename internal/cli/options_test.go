// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pseudofinder/internal/config"
)

func newFS() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(discard{})
	return fs
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "--annotation", "a.gff", "--blastp", "p.tsv")
	if o.Output != "gff" || !o.Header || o.BlastX != "" {
		t.Errorf("bad defaults %+v", o)
	}
	if o.Thresholds != config.Default() {
		t.Errorf("thresholds %+v, want defaults", o.Thresholds)
	}
	got, err := o.Resolve()
	if err != nil || got != config.Default() {
		t.Fatalf("Resolve = %+v, %v", got, err)
	}
}

func TestShortFlags(t *testing.T) {
	o := mustParse(t, "-a", "a.tsv", "-p", "p.tsv", "-x", "x.tsv", "-l", "0.5", "-s", "0.4", "-i", "50", "-t", "3", "-o", "jsonl")
	if o.Annotation != "a.tsv" || o.BlastX != "x.tsv" || o.Output != "jsonl" {
		t.Errorf("bad parse %+v", o)
	}
	th := o.Thresholds
	if th.LengthPseudo != 0.5 || th.SharedHits != 0.4 || th.IntergenicLength != 50 || th.Threads != 3 {
		t.Errorf("bad thresholds %+v", th)
	}
	if !o.IsSet("length-pseudo") || !o.IsSet("threads") || o.IsSet("evalue") {
		t.Errorf("set tracking wrong: %v", o.set)
	}
}

func TestRequiredInputs(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--blastp", "p.tsv"}); err == nil {
		t.Fatal("expected error without --annotation")
	}
	if _, err := ParseArgs(newFS(), []string{"--annotation", "a.gff"}); err == nil {
		t.Fatal("expected error without --blastp")
	}
	if _, err := ParseArgs(newFS(), []string{"-a", "-", "-p", "-"}); err == nil {
		t.Fatal("expected error for two stdin inputs")
	}
}

func TestInvalidOutput(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-a", "a", "-p", "p", "--output", "fasta"}); err == nil {
		t.Fatal("expected invalid --output error")
	}
}

func TestInvalidThreshold(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"-a", "a", "-p", "p", "--shared-hits", "1.5"})
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestHelpAndVersion(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
	o, err := ParseArgs(newFS(), []string{"--version"})
	if err != nil || !o.Version {
		t.Fatalf("version: %+v %v", o, err)
	}
}

func TestExamples(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, ErrPrintedAndExitOK) {
		t.Fatalf("want ErrPrintedAndExitOK, got %v", err)
	}
	var buf strings.Builder
	PrintExamples(&buf, "pseudofinder")
	if !strings.Contains(buf.String(), "pseudofinder -a genome.gff") || !strings.HasSuffix(buf.String(), "for all flags.\n") {
		t.Fatalf("unexpected examples:\n%s", buf.String())
	}
}

func TestUsageListsDefaults(t *testing.T) {
	fs := newFS()
	var buf strings.Builder
	_, _ = ParseArgs(fs, []string{"-h"})
	fs.SetOutput(&buf)
	fs.Usage()
	for _, want := range []string{"--shared-hits float", "[0.3]", "[gff]", "gff | json | jsonl | text"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("usage missing %q:\n%s", want, buf.String())
		}
	}
}

func TestConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"length_pseudo": 0.8, "shared_hits": 0.5, "top_hits": 5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	o := mustParse(t, "-a", "a", "-p", "p", "--config", path, "--shared-hits", "0.2")
	got, err := o.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if got.LengthPseudo != 0.8 || got.TopHits != 5 {
		t.Errorf("file values not applied: %+v", got)
	}
	if got.SharedHits != 0.2 {
		t.Errorf("explicit flag should win, got %g", got.SharedHits)
	}
	if got.Evalue != config.DefaultEvalue {
		t.Errorf("untouched default changed: %g", got.Evalue)
	}
}

func TestIntergenicArgs(t *testing.T) {
	o, err := ParseIntergenicArgs(newFS(), []string{"-a", "a.gff", "-g", "g.fa", "-i", "60"})
	if err != nil {
		t.Fatal(err)
	}
	if o.Genome != "g.fa" || o.IntergenicLength != 60 {
		t.Errorf("bad parse %+v", o)
	}
	if _, err := ParseIntergenicArgs(newFS(), []string{"-a", "a.gff"}); err == nil {
		t.Fatal("expected error without --genome")
	}
	if _, err := ParseIntergenicArgs(newFS(), []string{"-a", "a", "-g", "g", "-i", "0"}); err == nil {
		t.Fatal("expected error for -i 0")
	}
}
