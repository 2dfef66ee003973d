// Package annotation holds the structural annotation of a genome: one
// GeneRecord per CDS, grouped by contig and ordered by start coordinate.
package annotation

import (
	"errors"
	"fmt"
)

// Strand of a feature on its contig.
type Strand int8

const (
	Plus  Strand = 1
	Minus Strand = -1
)

// ParseStrand accepts "+"/"-" and the numeric forms "1"/"-1".
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+", "1", "+1":
		return Plus, nil
	case "-", "-1":
		return Minus, nil
	}
	return 0, fmt.Errorf("bad strand %q", s)
}

func (s Strand) Valid() bool { return s == Plus || s == Minus }

func (s Strand) String() string {
	switch s {
	case Plus:
		return "+"
	case Minus:
		return "-"
	}
	return "."
}

// GeneRecord is one annotated CDS. Coordinates are 1-based inclusive.
// Build it with NewGeneRecord; the zero value is not a valid record.
type GeneRecord struct {
	LocusTag string
	Contig   string
	Start    int
	End      int
	Strand   Strand
	AALength int // translated product length
}

// NewGeneRecord validates and returns a GeneRecord.
func NewGeneRecord(locus, contig string, start, end int, strand Strand, aaLen int) (GeneRecord, error) {
	switch {
	case locus == "":
		return GeneRecord{}, errors.New("empty locus tag")
	case contig == "":
		return GeneRecord{}, fmt.Errorf("%s: empty contig id", locus)
	case start < 1:
		return GeneRecord{}, fmt.Errorf("%s: start %d < 1", locus, start)
	case end < start:
		return GeneRecord{}, fmt.Errorf("%s: end %d before start %d", locus, end, start)
	case !strand.Valid():
		return GeneRecord{}, fmt.Errorf("%s: invalid strand", locus)
	case aaLen < 0:
		return GeneRecord{}, fmt.Errorf("%s: negative product length %d", locus, aaLen)
	}
	return GeneRecord{
		LocusTag: locus,
		Contig:   contig,
		Start:    start,
		End:      end,
		Strand:   strand,
		AALength: aaLen,
	}, nil
}

// Length is the nucleotide span of the record.
func (g GeneRecord) Length() int { return g.End - g.Start + 1 }
