package engine

import (
	"sort"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/blast"
	"pseudofinder/internal/intergenic"
)

// HitSource is the view of a hit table the evaluator needs.
// *blast.Table satisfies it, including a nil *blast.Table.
type HitSource interface {
	Hits(query string) []blast.Hit
	Best(query string) (blast.Hit, bool)
	Subjects(query string, n int) []string
}

// Config holds the evaluator thresholds.
type Config struct {
	LengthPseudo float64 // strict upper bound for a truncated call
	TopHits      int     // subjects kept per unit; 0 = all
}

// Evaluator classifies genes against BLASTP evidence and regions against
// BLASTX evidence. It is safe for concurrent use.
type Evaluator struct {
	cfg    Config
	blastp HitSource
	blastx HitSource
}

func New(cfg Config, blastp, blastx HitSource) *Evaluator {
	return &Evaluator{cfg: cfg, blastp: blastp, blastx: blastx}
}

// EvaluateGene scores one gene.
func (e *Evaluator) EvaluateGene(g annotation.GeneRecord) Unit {
	u := Unit{
		ID:        g.LocusTag,
		Contig:    g.Contig,
		Start:     g.Start,
		End:       g.End,
		Strand:    g.Strand,
		OwnLength: g.AALength,
		Class:     ClassNoHit,
	}
	if best, ok := e.blastp.Best(g.LocusTag); ok {
		u.Best = toBest(best)
		u.HasBest = true
		u.Subjects = sortedSet(e.blastp.Subjects(g.LocusTag, e.cfg.TopHits))
		if r, ok := LengthRatio(u.OwnLength, best.SubjectLen); ok {
			u.Ratio, u.HasRatio = r, true
			if r < e.cfg.LengthPseudo {
				u.Class = ClassTruncated
			} else {
				u.Class = ClassIntact
			}
		}
	}
	u.Members = []Member{{ID: u.ID, Kind: KindGene, Start: u.Start, End: u.End, Class: u.Class}}
	return u
}

// EvaluateRegion scores one intergenic region. A region with hits is trimmed
// to the envelope of its hits' query coordinates.
func (e *Evaluator) EvaluateRegion(r intergenic.Region) Unit {
	u := Unit{
		ID:     r.ID,
		Contig: r.Contig,
		Start:  r.Start,
		End:    r.End,
		Strand: r.Strand,
		Class:  ClassNoEvidence,
	}
	hits := e.blastx.Hits(r.ID)
	if len(hits) > 0 {
		lo, hi := hits[0].QuerySpan()
		for _, h := range hits[1:] {
			a, b := h.QuerySpan()
			lo, hi = min(lo, a), max(hi, b)
		}
		u.Start = max(r.Start, r.Start+lo-1)
		u.End = min(r.End, r.Start+hi-1)
		if u.End < u.Start {
			u.Start, u.End = r.Start, r.End
		}
		u.Class = ClassEvidence
		u.Best = toBest(hits[0])
		u.HasBest = true
		u.Subjects = sortedSet(e.blastx.Subjects(r.ID, e.cfg.TopHits))
	}
	u.OwnLength = (u.End - u.Start + 1) / 3
	if u.HasBest {
		u.Ratio, u.HasRatio = LengthRatio(u.OwnLength, u.Best.Length)
	}
	u.Members = []Member{{ID: u.ID, Kind: KindIntergenic, Start: u.Start, End: u.End, Class: u.Class}}
	return u
}

// EvaluateContig scores every gene and region of one contig and returns the
// units sorted by (start, end, id).
func (e *Evaluator) EvaluateContig(genes []annotation.GeneRecord, regions []intergenic.Region) []Unit {
	units := make([]Unit, 0, len(genes)+len(regions))
	for _, g := range genes {
		units = append(units, e.EvaluateGene(g))
	}
	for _, r := range regions {
		units = append(units, e.EvaluateRegion(r))
	}
	SortUnits(units)
	return units
}

// SortUnits orders units by (start, end, id).
func SortUnits(units []Unit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})
}

func toBest(h blast.Hit) BestHit {
	return BestHit{Subject: h.Subject, Length: h.SubjectLen, BitScore: h.BitScore, Evalue: h.Evalue}
}

func sortedSet(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := append([]string(nil), ids...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
