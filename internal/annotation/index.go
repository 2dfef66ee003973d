package annotation

import (
	"fmt"
	"sort"
)

// SequenceRegion is a contig with its total length, when known.
type SequenceRegion struct {
	ID     string
	Length int
}

// Index is the read-only view of every gene in a genome. Contigs keep the
// order in which they were first seen; genes within a contig are sorted by
// (start, end, locus tag).
type Index struct {
	contigs []string
	genes   map[string][]GeneRecord
	byLocus map[string]GeneRecord
	regions []SequenceRegion
	lengths map[string]int
}

// NewIndex groups and sorts genes. Duplicate locus tags are rejected.
// regions may be nil.
func NewIndex(genes []GeneRecord, regions []SequenceRegion) (*Index, error) {
	ix := &Index{
		genes:   make(map[string][]GeneRecord),
		byLocus: make(map[string]GeneRecord, len(genes)),
		lengths: make(map[string]int, len(regions)),
	}
	for _, r := range regions {
		if _, dup := ix.lengths[r.ID]; dup {
			continue
		}
		ix.lengths[r.ID] = r.Length
		ix.regions = append(ix.regions, r)
	}
	for _, g := range genes {
		if _, dup := ix.byLocus[g.LocusTag]; dup {
			return nil, fmt.Errorf("duplicate locus tag %q", g.LocusTag)
		}
		ix.byLocus[g.LocusTag] = g
		if _, seen := ix.genes[g.Contig]; !seen {
			ix.contigs = append(ix.contigs, g.Contig)
		}
		ix.genes[g.Contig] = append(ix.genes[g.Contig], g)
	}
	for _, list := range ix.genes {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if a.Start != b.Start {
				return a.Start < b.Start
			}
			if a.End != b.End {
				return a.End < b.End
			}
			return a.LocusTag < b.LocusTag
		})
	}
	return ix, nil
}

// Contigs returns contig ids that carry at least one gene.
func (ix *Index) Contigs() []string { return append([]string(nil), ix.contigs...) }

// Genes returns the sorted genes of contig. The slice must not be modified.
func (ix *Index) Genes(contig string) []GeneRecord { return ix.genes[contig] }

// Gene looks up a record by locus tag.
func (ix *Index) Gene(locus string) (GeneRecord, bool) {
	g, ok := ix.byLocus[locus]
	return g, ok
}

func (ix *Index) HasContig(contig string) bool {
	_, ok := ix.genes[contig]
	return ok
}

// Len is the total number of genes.
func (ix *Index) Len() int { return len(ix.byLocus) }

// ContigLength returns the declared length of contig.
func (ix *Index) ContigLength(contig string) (int, bool) {
	n, ok := ix.lengths[contig]
	return n, ok
}

// SequenceRegions returns declared contig lengths in declaration order.
func (ix *Index) SequenceRegions() []SequenceRegion {
	return append([]SequenceRegion(nil), ix.regions...)
}
