package engine

import "pseudofinder/internal/annotation"

// Kind tells what a member of a unit was before evaluation.
type Kind uint8

const (
	KindGene Kind = iota
	KindIntergenic
)

func (k Kind) String() string {
	if k == KindIntergenic {
		return "intergenic"
	}
	return "gene"
}

// Class is the provisional call for one gene or region.
type Class uint8

const (
	ClassIntact     Class = iota // gene, ratio ≥ length_pseudo
	ClassTruncated               // gene, ratio < length_pseudo
	ClassNoHit                   // gene without a usable hit
	ClassEvidence                // intergenic region with a BLASTX hit; merge evidence only
	ClassNoEvidence              // intergenic region without a hit
)

var classNames = [...]string{"intact", "truncated", "no-hit", "evidence", "no-evidence"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// BestHit is the evidence carried from the top-ranked hit.
type BestHit struct {
	Subject  string
	Length   int // subject length, amino acids
	BitScore float64
	Evalue   float64
}

// Outranks orders best hits the way blast.Hit.Outranks orders rows. Equal
// hits do not outrank each other, so the earlier one is kept.
func (b BestHit) Outranks(o BestHit) bool {
	if b.BitScore != o.BitScore {
		return b.BitScore > o.BitScore
	}
	return b.Evalue < o.Evalue
}

// Member is one original gene or region inside a unit.
type Member struct {
	ID    string
	Kind  Kind
	Start int
	End   int
	Class Class
}

// Unit is the evaluator output for one gene or region, or, once merged, for
// a chain of them. Members are in coordinate order.
type Unit struct {
	ID        string
	Contig    string
	Start     int
	End       int
	Strand    annotation.Strand
	OwnLength int // amino acids (regions: span/3)

	Best     BestHit
	HasBest  bool
	Ratio    float64
	HasRatio bool

	Subjects []string // sorted, distinct
	Class    Class
	Members  []Member

	Shared    float64 // weakest join that built the unit
	HasShared bool
}

// MemberIDs lists locus tags and region ids in order.
func (u Unit) MemberIDs() []string {
	out := make([]string, len(u.Members))
	for i, m := range u.Members {
		out[i] = m.ID
	}
	return out
}

// LengthRatio computes own/subject, reporting false when either is zero.
func LengthRatio(own, subject int) (float64, bool) {
	if own <= 0 || subject <= 0 {
		return 0, false
	}
	return float64(own) / float64(subject), true
}
