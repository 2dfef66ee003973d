// Package merge joins adjacent evaluated units that share homology evidence
// into fragmented-gene candidates, and classifies the result.
package merge

import (
	"fmt"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/engine"
)

// Kind is the final call for a candidate.
type Kind uint8

const (
	KindIntact     Kind = iota // single intact gene; not reported
	KindTruncated              // single gene below the length ratio
	KindFragmented             // two or more joined units
	KindNoHit                  // single gene without usable evidence
	KindNone                   // lone intergenic region; not reported
)

var kindNames = [...]string{"intact", "truncated", "fragmented", "no-hit", "none"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Candidate is one chain of units after merging. Every input unit belongs to
// exactly one candidate.
type Candidate struct {
	ID        string // assigned by Number; empty until then
	Contig    string
	Strand    annotation.Strand
	Start     int
	End       int
	Kind      Kind
	Members   []engine.Member
	OwnLength int

	Best     engine.BestHit
	HasBest  bool
	Ratio    float64
	HasRatio bool

	Shared    float64
	HasShared bool
	Subjects  []string
}

// Reported tells whether the candidate is a pseudogene call that reaches
// output. No-hit genes are reported only when reportNoHit is set.
func (c Candidate) Reported(reportNoHit bool) bool {
	switch c.Kind {
	case KindTruncated, KindFragmented:
		return true
	case KindNoHit:
		return reportNoHit
	}
	return false
}

// MemberIDs lists the joined locus tags and region ids in order.
func (c Candidate) MemberIDs() []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.ID
	}
	return out
}

// Genes counts the gene members.
func (c Candidate) Genes() int {
	n := 0
	for _, m := range c.Members {
		if m.Kind == engine.KindGene {
			n++
		}
	}
	return n
}

// Unit converts a candidate back to a unit so it can be merged again.
func (c Candidate) Unit() engine.Unit {
	u := engine.Unit{
		Contig:    c.Contig,
		Start:     c.Start,
		End:       c.End,
		Strand:    c.Strand,
		OwnLength: c.OwnLength,
		Best:      c.Best,
		HasBest:   c.HasBest,
		Ratio:     c.Ratio,
		HasRatio:  c.HasRatio,
		Subjects:  append([]string(nil), c.Subjects...),
		Members:   append([]engine.Member(nil), c.Members...),
		Shared:    c.Shared,
		HasShared: c.HasShared,
	}
	if len(c.Members) > 0 {
		u.ID = c.Members[0].ID
		u.Class = c.Members[0].Class
	}
	return u
}

// FromUnit classifies a merged or unmerged unit.
func FromUnit(u engine.Unit) Candidate {
	c := Candidate{
		Contig:    u.Contig,
		Strand:    u.Strand,
		Start:     u.Start,
		End:       u.End,
		Members:   u.Members,
		OwnLength: u.OwnLength,
		Best:      u.Best,
		HasBest:   u.HasBest,
		Ratio:     u.Ratio,
		HasRatio:  u.HasRatio,
		Shared:    u.Shared,
		HasShared: u.HasShared,
		Subjects:  u.Subjects,
	}
	c.Kind = classify(u)
	return c
}

func classify(u engine.Unit) Kind {
	if len(u.Members) >= 2 {
		return KindFragmented
	}
	switch u.Class {
	case engine.ClassIntact:
		return KindIntact
	case engine.ClassTruncated:
		return KindTruncated
	case engine.ClassNoHit:
		return KindNoHit
	}
	return KindNone
}

// Number assigns "<contig>_pseudo_NNNN" ids to the reported candidates,
// counting from 1 within each contig in the order given.
func Number(cands []Candidate) {
	seen := make(map[string]int)
	for i := range cands {
		seen[cands[i].Contig]++
		cands[i].ID = fmt.Sprintf("%s_pseudo_%04d", cands[i].Contig, seen[cands[i].Contig])
	}
}

// Reportable filters cands to the reported ones, keeping order.
func Reportable(cands []Candidate, reportNoHit bool) []Candidate {
	var out []Candidate
	for _, c := range cands {
		if c.Reported(reportNoHit) {
			out = append(out, c)
		}
	}
	return out
}
