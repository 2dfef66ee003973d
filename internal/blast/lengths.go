package blast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"pseudofinder/internal/fileio"
)

// Lengths maps subject id to its length in amino acids.
type Lengths map[string]int

// LoadLengths reads a subject length table. A file whose first non-blank
// byte is '>' is read as protein FASTA; otherwise as "id length" rows.
func LoadLengths(path string) (Lengths, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subject lengths: %w", err)
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	for {
		b, err := br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return Lengths{}, nil
			}
			return nil, err
		}
		if b[0] != ' ' && b[0] != '\n' && b[0] != '\r' && b[0] != '\t' {
			break
		}
		_, _ = br.ReadByte()
	}
	if b, _ := br.Peek(1); len(b) == 1 && b[0] == '>' {
		return ReadLengthsFASTA(br)
	}
	return ReadLengthsTSV(br, path)
}

// ReadLengthsFASTA measures every record of a protein FASTA stream.
func ReadLengthsFASTA(r io.Reader) (Lengths, error) {
	out := make(Lengths)
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		n := s.Len()
		if n > 0 && s.Seq[n-1] == '*' {
			n--
		}
		out[s.Name()] = n
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("read subject FASTA: %w", err)
	}
	return out, nil
}

// ReadLengthsTSV parses whitespace-separated "id length" rows.
func ReadLengthsTSV(r io.Reader, name string) (Lengths, error) {
	out := make(Lengths)
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, fmt.Errorf("%s:%d bad field count %d (want 2)", name, ln, len(f))
		}
		n, err := strconv.Atoi(f[1])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s:%d bad length %q", name, ln, f[1])
		}
		out[f[0]] = n
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
