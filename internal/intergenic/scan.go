// Package intergenic derives the spans between consecutive annotated genes
// that are long enough to hide a decayed gene fragment.
package intergenic

import (
	"fmt"
	"iter"
	"slices"

	"pseudofinder/internal/annotation"
)

// Region is a qualifying gap between two genes on one contig. It takes the
// strand of its left flanking gene. Coordinates are 1-based inclusive.
type Region struct {
	ID     string
	Contig string
	Start  int
	End    int
	Strand annotation.Strand
}

func (r Region) Length() int { return r.End - r.Start + 1 }

// RegionID names the gap that precedes the ordinal-th gene of contig
// (0-based, in sorted order). BLASTX queries must use these ids.
func RegionID(contig string, ordinal int) string {
	return fmt.Sprintf("%s_ign_%d", contig, ordinal)
}

// Scan yields every qualifying region of ix, contig by contig, in
// coordinate order. Gaps before the first or after the last gene of a contig
// have only one flank and are never yielded.
func Scan(ix *annotation.Index, minLen int) iter.Seq[Region] {
	return func(yield func(Region) bool) {
		for _, contig := range ix.Contigs() {
			for r := range ScanContig(contig, ix.Genes(contig), minLen) {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// ScanContig yields the regions between the sorted genes of one contig.
// The left flank of a gap is the gene reaching furthest right so far, so a
// gene nested inside a longer one never opens a false gap.
func ScanContig(contig string, genes []annotation.GeneRecord, minLen int) iter.Seq[Region] {
	return func(yield func(Region) bool) {
		if len(genes) < 2 {
			return
		}
		flank := genes[0]
		for i := 1; i < len(genes); i++ {
			g := genes[i]
			start, end := flank.End+1, g.Start-1
			if end-start+1 >= minLen {
				r := Region{
					ID:     RegionID(contig, i),
					Contig: contig,
					Start:  start,
					End:    end,
					Strand: flank.Strand,
				}
				if !yield(r) {
					return
				}
			}
			if g.End > flank.End {
				flank = g
			}
		}
	}
}

// Collect materializes Scan.
func Collect(ix *annotation.Index, minLen int) []Region {
	return slices.Collect(Scan(ix, minLen))
}
