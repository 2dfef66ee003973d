package pipeline

import (
	"fmt"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/config"
	"pseudofinder/internal/engine"
	"pseudofinder/internal/intergenic"
	"pseudofinder/internal/merge"
)

// ContigResult is everything one contig produced.
type ContigResult struct {
	Contig     string
	Genes      int
	RegionIDs  []string
	Candidates []merge.Candidate // all candidates, reported or not
}

// ContigProcessor is the minimal capability the pipeline needs.
// Any classifier (including fakes in tests) can satisfy this.
type ContigProcessor interface {
	ProcessContig(contig string, genes []annotation.GeneRecord) (ContigResult, error)
}

// Classifier scans, evaluates, and merges one contig at a time.
type Classifier struct {
	minLen int
	eval   *engine.Evaluator
	merger *merge.Merger
}

func NewClassifier(t config.Thresholds, blastp, blastx engine.HitSource) *Classifier {
	return &Classifier{
		minLen: t.IntergenicLength,
		eval:   engine.New(engine.Config{LengthPseudo: t.LengthPseudo, TopHits: t.TopHits}, blastp, blastx),
		merger: merge.New(merge.Config{SharedHits: t.SharedHits, MaxDistance: t.MaxDistance}),
	}
}

// ProcessContig runs the per-contig decision core and verifies the
// partition before returning.
func (c *Classifier) ProcessContig(contig string, genes []annotation.GeneRecord) (ContigResult, error) {
	var regions []intergenic.Region
	for r := range intergenic.ScanContig(contig, genes, c.minLen) {
		regions = append(regions, r)
	}
	units := c.eval.EvaluateContig(genes, regions)
	cands := c.merger.Merge(units)
	if err := merge.Check(cands); err != nil {
		return ContigResult{}, fmt.Errorf("%s: %w", contig, err)
	}
	n := 0
	for _, cand := range cands {
		n += len(cand.Members)
	}
	if n != len(units) {
		return ContigResult{}, fmt.Errorf("%s: %w: %d units in, %d members out", contig, merge.ErrInvariant, len(units), n)
	}
	res := ContigResult{Contig: contig, Genes: len(genes), Candidates: cands}
	for _, r := range regions {
		res.RegionIDs = append(res.RegionIDs, r.ID)
	}
	return res, nil
}
