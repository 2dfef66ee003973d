package merge

import (
	"sort"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/engine"
)

// Config holds the merge thresholds.
type Config struct {
	SharedHits  float64 // minimum Jaccard overlap of subject sets
	MaxDistance int     // largest gap in bp a join may bridge; 0 = unlimited
}

// Merger runs the adjacency sweep. It is safe for concurrent use.
type Merger struct {
	cfg Config
}

func New(cfg Config) *Merger { return &Merger{cfg: cfg} }

type groupKey struct {
	contig string
	strand annotation.Strand
}

// Merge partitions units into candidates. Units are swept per (contig,
// strand) in (start, end, id) order; each unit joins the chain before it
// when their subject sets share at least one id and overlap enough. Sweeps repeat over the chains
// until nothing joins, so the result is a fixed point: merging its
// candidates again changes nothing. The input slice is not modified.
//
// Candidates come back ordered by contig (first seen), start, end, strand.
func (m *Merger) Merge(units []engine.Unit) []Candidate {
	var keys []groupKey
	groups := make(map[groupKey][]engine.Unit)
	contigRank := make(map[string]int)
	for _, u := range units {
		if _, ok := contigRank[u.Contig]; !ok {
			contigRank[u.Contig] = len(contigRank)
		}
		k := groupKey{u.Contig, u.Strand}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], u)
	}

	var out []Candidate
	for _, k := range keys {
		for _, u := range m.fixedPoint(groups[k]) {
			out = append(out, FromUnit(u))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Contig != b.Contig {
			return contigRank[a.Contig] < contigRank[b.Contig]
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Strand > b.Strand
	})
	return out
}

// Remerge runs Merge over existing candidates.
func (m *Merger) Remerge(cands []Candidate) []Candidate {
	units := make([]engine.Unit, len(cands))
	for i, c := range cands {
		units[i] = c.Unit()
	}
	return m.Merge(units)
}

func (m *Merger) fixedPoint(units []engine.Unit) []engine.Unit {
	cur := append([]engine.Unit(nil), units...)
	for {
		engine.SortUnits(cur)
		next := m.sweep(cur)
		if len(next) == len(cur) {
			return next
		}
		cur = next
	}
}

// sweep makes one pass over sorted units of a single contig and strand.
func (m *Merger) sweep(units []engine.Unit) []engine.Unit {
	if len(units) == 0 {
		return nil
	}
	out := make([]engine.Unit, 0, len(units))
	chain := units[0]
	for _, u := range units[1:] {
		if f, ok := m.joinable(chain, u); ok {
			chain = join(chain, u, f)
			continue
		}
		out = append(out, chain)
		chain = u
	}
	return append(out, chain)
}

func (m *Merger) joinable(chain, next engine.Unit) (float64, bool) {
	if m.cfg.MaxDistance > 0 && next.Start-chain.End-1 > m.cfg.MaxDistance {
		return 0, false
	}
	f, ok := Jaccard(chain.Subjects, next.Subjects)
	if !ok || f == 0 || f < m.cfg.SharedHits {
		return 0, false
	}
	return f, true
}

// join appends next to chain. The chain keeps its id and class; its best hit
// is replaced only when next's best strictly outranks it.
func join(chain, next engine.Unit, shared float64) engine.Unit {
	out := chain
	out.End = max(chain.End, next.End)
	out.OwnLength = chain.OwnLength + next.OwnLength
	out.Members = append(append([]engine.Member(nil), chain.Members...), next.Members...)
	out.Subjects = union(chain.Subjects, next.Subjects)
	if next.HasBest && (!chain.HasBest || next.Best.Outranks(chain.Best)) {
		out.Best, out.HasBest = next.Best, true
	}
	out.Ratio, out.HasRatio = 0, false
	if out.HasBest {
		out.Ratio, out.HasRatio = engine.LengthRatio(out.OwnLength, out.Best.Length)
	}
	for _, s := range []struct {
		v  float64
		ok bool
	}{{chain.Shared, chain.HasShared}, {next.Shared, next.HasShared}} {
		if s.ok {
			shared = min(shared, s.v)
		}
	}
	out.Shared, out.HasShared = shared, true
	return out
}

// Jaccard returns |a∩b| / |a∪b| for sorted distinct sets. It reports false
// when either set is empty.
func Jaccard(a, b []string) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	inter, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			inter++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter), true
}

func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
