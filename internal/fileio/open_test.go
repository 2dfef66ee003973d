package fileio

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

const payload = "contig1\t10\t20\n"

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.tsv")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := readAll(t, path); got != payload {
		t.Fatalf("plain read: got %q", got)
	}
}

func TestOpenGzipByMagic(t *testing.T) {
	// No .gz suffix: detection must come from the header bytes.
	path := filepath.Join(t.TempDir(), "hits.tsv")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	_, _ = gw.Write([]byte(payload))
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	_ = fh.Close()

	if got := readAll(t, path); got != payload {
		t.Fatalf("gzip read: got %q", got)
	}
}

func TestOpenXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.tsv.xz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	xw, err := xz.NewWriter(fh)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = xw.Write([]byte(payload))
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}
	_ = fh.Close()

	if got := readAll(t, path); got != payload {
		t.Fatalf("xz read: got %q", got)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTrimCompression(t *testing.T) {
	if got := TrimCompression("genome.gff3.gz"); got != "genome.gff3" {
		t.Fatalf("got %q", got)
	}
	if got := TrimCompression("genome.gff3"); got != "genome.gff3" {
		t.Fatalf("got %q", got)
	}
}

func TestDigestStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := Digest(path)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Digest(path)
	if a == "" || a != b || len(a) != 64 {
		t.Fatalf("digest unstable or wrong size: %q %q", a, b)
	}
	if d, _ := Digest("-"); d != "" {
		t.Fatalf("stdin digest should be empty, got %q", d)
	}
}
