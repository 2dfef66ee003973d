package intergenic

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/fileio"
)

// ErrUnknownContig is returned when a region's contig is missing from, or
// shorter than, the genome FASTA.
var ErrUnknownContig = errors.New("contig not in genome")

// Genome holds contig sequences keyed by FASTA id.
type Genome struct {
	seqs    map[string]*linear.Seq
	regions []annotation.SequenceRegion
}

// LoadGenome reads a nucleotide FASTA file.
func LoadGenome(path string) (*Genome, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadGenome(rc)
}

// ReadGenome reads nucleotide FASTA records from r.
func ReadGenome(r io.Reader) (*Genome, error) {
	g := &Genome{seqs: make(map[string]*linear.Seq)}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if _, dup := g.seqs[s.Name()]; dup {
			return nil, fmt.Errorf("duplicate contig %q in genome FASTA", s.Name())
		}
		g.seqs[s.Name()] = s
		g.regions = append(g.regions, annotation.SequenceRegion{ID: s.Name(), Length: s.Len()})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("read genome FASTA: %w", err)
	}
	return g, nil
}

// SequenceRegions lists contig lengths in file order.
func (g *Genome) SequenceRegions() []annotation.SequenceRegion {
	return append([]annotation.SequenceRegion(nil), g.regions...)
}

// WriteFASTA writes one record per region, headed
// ">ID contig start-end strand", and returns the number written.
func WriteFASTA(w io.Writer, regions iter.Seq[Region], g *Genome) (int, error) {
	fw := fasta.NewWriter(w, 60)
	n := 0
	for r := range regions {
		s, ok := g.seqs[r.Contig]
		if !ok {
			return n, fmt.Errorf("region %s: %w: %q", r.ID, ErrUnknownContig, r.Contig)
		}
		if r.End > s.Len() {
			return n, fmt.Errorf("region %s: %w: end %d beyond length %d", r.ID, ErrUnknownContig, r.End, s.Len())
		}
		letters := append(alphabet.Letters(nil), s.Seq[r.Start-1:r.End]...)
		rec := linear.NewSeq(r.ID, letters, alphabet.DNA)
		rec.Desc = fmt.Sprintf("%s %d-%d %s", r.Contig, r.Start, r.End, r.Strand)
		if _, err := fw.Write(rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
