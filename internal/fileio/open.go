// Package fileio opens annotation, hit-table and FASTA inputs.
package fileio

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// multiReadCloser closes every underlying closer when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path. "-" reads stdin. gzip and xz streams are
// decompressed transparently, detected by magic number or by suffix.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return wrap(bufio.NewReader(os.Stdin), nopCloser{}, path)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := wrap(bufio.NewReader(fh), fh, path)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return rc, nil
}

func wrap(br *bufio.Reader, under io.Closer, path string) (io.ReadCloser, error) {
	sig, _ := br.Peek(len(xzMagic))
	switch {
	case bytes.HasPrefix(sig, gzipMagic) || strings.HasSuffix(path, ".gz"):
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, under}}, nil
	case bytes.HasPrefix(sig, xzMagic) || strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: xr, closers: []io.Closer{under}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{under}}, nil
}

// TrimCompression strips a trailing .gz or .xz so callers can dispatch on the
// real file extension.
func TrimCompression(path string) string {
	for _, ext := range []string{".gz", ".xz"} {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}
