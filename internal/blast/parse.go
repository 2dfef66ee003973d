package blast

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"pseudofinder/internal/fileio"
)

// ErrMalformedRow is wrapped by every per-row Warning.
var ErrMalformedRow = errors.New("malformed hit row")

// Warning records a dropped row. The run continues past it.
type Warning struct {
	Source string
	Line   int
	Err    error
}

func (w Warning) Error() string { return fmt.Sprintf("%s:%d %v", w.Source, w.Line, w.Err) }
func (w Warning) Unwrap() error { return w.Err }

// ParseOptions controls row retention.
type ParseOptions struct {
	Name      string  // label used in warnings; defaults to the path for Load
	MaxEvalue float64 // rows with a larger e-value are dropped
	Lengths   Lengths // subject length lookup for 12-column rows; may be nil
}

// Column layout. Both are accepted:
//
//	12: qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore
//	13: qseqid sseqid pident length mismatch gapopen qstart qend sstart send slen evalue bitscore
const (
	colsStd  = 12
	colsSlen = 13
)

// Load opens path and parses it. An unreadable file is an error; bad rows
// are not.
func Load(path string, opt ParseOptions) (*Table, []Warning, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open hit table: %w", err)
	}
	defer rc.Close()
	if opt.Name == "" {
		opt.Name = path
	}
	return Parse(rc, opt)
}

// Parse reads BLAST tabular output (outfmt 6, or 7 with its comment lines).
func Parse(r io.Reader, opt ParseOptions) (*Table, []Warning, error) {
	var (
		hits  []Hit
		warns []Warning
		st    Stats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		st.Rows++
		f := strings.Split(line, "\t")
		if len(f) == 1 {
			f = strings.Fields(line)
		}
		h, err := parseRow(f)
		if err != nil {
			st.Malformed++
			warns = append(warns, Warning{Source: opt.Name, Line: ln, Err: err})
			continue
		}
		if h.Evalue > opt.MaxEvalue {
			st.Filtered++
			continue
		}
		if h.SubjectLen == 0 {
			if n, ok := opt.Lengths[h.Subject]; ok {
				h.SubjectLen = n
			} else {
				st.NoLength++
			}
		}
		h.Row = len(hits)
		hits = append(hits, h)
	}
	if err := sc.Err(); err != nil {
		return nil, warns, fmt.Errorf("%s: %w", opt.Name, err)
	}
	t := NewTable(opt.Name, hits)
	st.Kept = len(hits)
	t.stats = st
	return t, warns, nil
}

func parseRow(f []string) (Hit, error) {
	if len(f) != colsStd && len(f) != colsSlen {
		return Hit{}, fmt.Errorf("%w: %d columns (want %d or %d)", ErrMalformedRow, len(f), colsStd, colsSlen)
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	if f[0] == "" || f[1] == "" {
		return Hit{}, fmt.Errorf("%w: empty query or subject id", ErrMalformedRow)
	}
	h := Hit{Query: f[0], Subject: f[1]}

	var err error
	num := func(i int) float64 {
		if err != nil {
			return 0
		}
		v, perr := strconv.ParseFloat(f[i], 64)
		if perr != nil || math.IsNaN(v) {
			err = fmt.Errorf("%w: column %d %q is not numeric", ErrMalformedRow, i+1, f[i])
		}
		return v
	}
	integer := func(i int) int {
		if err != nil {
			return 0
		}
		v, perr := strconv.Atoi(f[i])
		if perr != nil {
			err = fmt.Errorf("%w: column %d %q is not an integer", ErrMalformedRow, i+1, f[i])
		}
		return v
	}

	h.PctIdentity = num(2)
	h.AlignLen = integer(3)
	h.Mismatch = integer(4)
	h.GapOpen = integer(5)
	h.QStart = integer(6)
	h.QEnd = integer(7)
	h.SStart = integer(8)
	h.SEnd = integer(9)
	tail := 10
	if len(f) == colsSlen {
		h.SubjectLen = integer(10)
		tail = 11
	}
	h.Evalue = num(tail)
	h.BitScore = num(tail + 1)
	if err != nil {
		return Hit{}, err
	}
	if h.Evalue < 0 || h.SubjectLen < 0 {
		return Hit{}, fmt.Errorf("%w: negative e-value or subject length", ErrMalformedRow)
	}
	return h, nil
}
