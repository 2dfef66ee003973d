package merge

import (
	"errors"
	"fmt"

	"github.com/biogo/store/interval"
)

// ErrInvariant is wrapped by every Check failure.
var ErrInvariant = errors.New("merge invariant violated")

// Check verifies that cands is a well-formed partition of units:
//   - members are in start order and lie inside the candidate span;
//   - no member id appears in two candidates;
//   - on one contig and strand, two overlapping candidates never interleave,
//     so the first one's members all start no later than the second's first
//     member.
//
// Overlap alone is accepted: annotated genes may overlap, and so may the
// candidates built from them.
func Check(cands []Candidate) error {
	seen := make(map[string]int, len(cands))
	for i, c := range cands {
		if len(c.Members) == 0 {
			return fmt.Errorf("%w: candidate %d on %s has no members", ErrInvariant, i, c.Contig)
		}
		if c.Members[0].Start != c.Start {
			return fmt.Errorf("%w: %s starts at %d, first member at %d", ErrInvariant, c.Members[0].ID, c.Start, c.Members[0].Start)
		}
		for j, m := range c.Members {
			if m.Start < c.Start || m.End > c.End {
				return fmt.Errorf("%w: member %s (%d-%d) outside %d-%d", ErrInvariant, m.ID, m.Start, m.End, c.Start, c.End)
			}
			if j > 0 && m.Start < c.Members[j-1].Start {
				return fmt.Errorf("%w: member %s out of order", ErrInvariant, m.ID)
			}
			if prev, dup := seen[m.ID]; dup {
				return fmt.Errorf("%w: %s in candidates %d and %d", ErrInvariant, m.ID, prev, i)
			}
			seen[m.ID] = i
		}
	}

	trees := make(map[groupKey]*interval.IntTree)
	for i, c := range cands {
		k := groupKey{c.Contig, c.Strand}
		t := trees[k]
		if t == nil {
			t = &interval.IntTree{}
			trees[k] = t
		}
		if err := t.Insert(span{uid: uintptr(i), c: &cands[i]}, true); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvariant, c.Members[0].ID, err)
		}
	}
	for _, t := range trees {
		t.AdjustRanges()
	}
	for i := range cands {
		a := &cands[i]
		last := a.Members[len(a.Members)-1].Start
		for _, o := range trees[groupKey{a.Contig, a.Strand}].Get(span{c: a}) {
			b := o.(span)
			if int(b.uid) == i || !before(a, b.c, i, int(b.uid)) {
				continue
			}
			if last > b.c.Members[0].Start {
				return fmt.Errorf("%w: %s and %s interleave on %s", ErrInvariant, a.Members[0].ID, b.c.Members[0].ID, a.Contig)
			}
		}
	}
	return nil
}

func before(a, b *Candidate, ai, bi int) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return ai < bi
}

// span adapts a candidate to the interval tree as a half-open range.
type span struct {
	uid uintptr
	c   *Candidate
}

func (s span) Overlap(b interval.IntRange) bool {
	return b.Start < s.c.End && s.c.Start-1 < b.End
}
func (s span) ID() uintptr { return s.uid }
func (s span) Range() interval.IntRange {
	return interval.IntRange{Start: s.c.Start - 1, End: s.c.End}
}
