package pipeline

import (
	"pseudofinder/internal/annotation"
	"pseudofinder/internal/blast"
	"pseudofinder/internal/merge"
)

// Stats summarizes one run.
type Stats struct {
	Contigs      int
	Genes        int // input genes ("initial ORFs")
	Regions      int // qualifying intergenic regions
	Candidates   int // every candidate, reported or not
	ByKind       map[merge.Kind]int
	GenesJoined  int // gene members of fragmented candidates
	Fragmented   int // fragmented candidates ("pseudogenes formed from joined ORFs")
	OrphanBlastP []string
	OrphanBlastX []string
}

// Tally accumulates Stats from contig results. It is not safe for
// concurrent use; feed it from the visit callback.
type Tally struct {
	stats   Stats
	regions map[string]struct{}
}

func NewTally() *Tally {
	return &Tally{
		stats:   Stats{ByKind: make(map[merge.Kind]int)},
		regions: make(map[string]struct{}),
	}
}

func (t *Tally) Add(res ContigResult) {
	t.stats.Contigs++
	t.stats.Genes += res.Genes
	t.stats.Regions += len(res.RegionIDs)
	for _, id := range res.RegionIDs {
		t.regions[id] = struct{}{}
	}
	for _, c := range res.Candidates {
		t.stats.Candidates++
		t.stats.ByKind[c.Kind]++
		if c.Kind == merge.KindFragmented {
			t.stats.Fragmented++
			t.stats.GenesJoined += c.Genes()
		}
	}
}

// Finish records hit-table queries that name no gene or region and returns
// the final Stats.
func (t *Tally) Finish(ix *annotation.Index, blastp, blastx *blast.Table) Stats {
	for _, q := range blastp.Queries() {
		if _, ok := ix.Gene(q); !ok {
			t.stats.OrphanBlastP = append(t.stats.OrphanBlastP, q)
		}
	}
	for _, q := range blastx.Queries() {
		if _, ok := t.regions[q]; !ok {
			t.stats.OrphanBlastX = append(t.stats.OrphanBlastX, q)
		}
	}
	return t.stats
}

// Reported counts the candidates that reach output.
func (s Stats) Reported(reportNoHit bool) int {
	n := s.ByKind[merge.KindTruncated] + s.ByKind[merge.KindFragmented]
	if reportNoHit {
		n += s.ByKind[merge.KindNoHit]
	}
	return n
}

// Functional counts input genes not called pseudogenes.
func (s Stats) Functional(reportNoHit bool) int {
	n := s.Genes - s.GenesJoined - s.ByKind[merge.KindTruncated]
	if reportNoHit {
		n -= s.ByKind[merge.KindNoHit]
	}
	return n
}
