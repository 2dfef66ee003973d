package merge

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/engine"
)

func unit(id string, start, end int, class engine.Class, subjects ...string) engine.Unit {
	kind := engine.KindGene
	if class == engine.ClassEvidence || class == engine.ClassNoEvidence {
		kind = engine.KindIntergenic
	}
	u := engine.Unit{
		ID:        id,
		Contig:    "c",
		Start:     start,
		End:       end,
		Strand:    annotation.Plus,
		OwnLength: (end - start + 1) / 3,
		Subjects:  subjects,
		Class:     class,
		Members:   []engine.Member{{ID: id, Kind: kind, Start: start, End: end, Class: class}},
	}
	if len(subjects) > 0 {
		u.Best = engine.BestHit{Subject: subjects[0], Length: 300, BitScore: 50}
		u.HasBest = true
	}
	return u
}

var defaultCfg = Config{SharedHits: 0.3, MaxDistance: 1000}

func ids(cands []Candidate) [][]string {
	out := make([][]string, len(cands))
	for i, c := range cands {
		out[i] = c.MemberIDs()
	}
	return out
}

func TestMergeIdenticalSets(t *testing.T) {
	got := New(defaultCfg).Merge([]engine.Unit{
		unit("g1", 1, 300, engine.ClassTruncated, "sA", "sB"),
		unit("g2", 401, 700, engine.ClassTruncated, "sA", "sB"),
	})
	require.Len(t, got, 1)
	c := got[0]
	assert.Equal(t, KindFragmented, c.Kind)
	assert.Equal(t, []string{"g1", "g2"}, c.MemberIDs())
	assert.Equal(t, 1, c.Start)
	assert.Equal(t, 700, c.End)
	assert.Equal(t, 200, c.OwnLength)
	assert.True(t, c.HasShared)
	assert.Equal(t, 1.0, c.Shared)
	assert.True(t, c.HasRatio)
	assert.InDelta(t, 200.0/300.0, c.Ratio, 1e-12)
}

func TestMergeDisjointSetsNeverJoin(t *testing.T) {
	got := New(Config{SharedHits: 0}).Merge([]engine.Unit{
		unit("g1", 1, 300, engine.ClassTruncated, "sA"),
		unit("g2", 401, 700, engine.ClassTruncated, "sB"),
	})
	assert.Equal(t, [][]string{{"g1"}, {"g2"}}, ids(got))
	assert.Equal(t, KindTruncated, got[0].Kind)
}

func TestMergeEmptySetsNeverJoin(t *testing.T) {
	got := New(Config{SharedHits: 0}).Merge([]engine.Unit{
		unit("g1", 1, 300, engine.ClassNoHit),
		unit("g2", 401, 700, engine.ClassNoHit),
	})
	assert.Equal(t, [][]string{{"g1"}, {"g2"}}, ids(got))
	assert.Equal(t, KindNoHit, got[1].Kind)
}

func TestMergeThresholdIsInclusive(t *testing.T) {
	// {A,B,C} vs {A,D,E}: 1/5.
	units := []engine.Unit{
		unit("g1", 1, 300, engine.ClassIntact, "sA", "sB", "sC"),
		unit("g2", 401, 700, engine.ClassIntact, "sA", "sD", "sE"),
	}
	assert.Len(t, New(Config{SharedHits: 0.2}).Merge(units), 1)
	assert.Len(t, New(Config{SharedHits: 0.21}).Merge(units), 2)
}

func TestMergeChainThroughRegion(t *testing.T) {
	got := New(defaultCfg).Merge([]engine.Unit{
		unit("g1", 1, 300, engine.ClassTruncated, "sA", "sB"),
		unit("c_ign_1", 320, 380, engine.ClassEvidence, "sA"),
		unit("g2", 401, 700, engine.ClassTruncated, "sA", "sB"),
		unit("g3", 801, 1100, engine.ClassIntact, "sX", "sY"),
	})
	assert.Equal(t, [][]string{{"g1", "c_ign_1", "g2"}, {"g3"}}, ids(got))
	assert.Equal(t, KindFragmented, got[0].Kind)
	assert.Equal(t, 2, got[0].Genes())
	assert.Equal(t, KindIntact, got[1].Kind)
	assert.Equal(t, 0.5, got[0].Shared, "weakest join")
	assert.Equal(t, []string{"sA", "sB"}, got[0].Subjects)
}

func TestMergeLoneRegionIsNone(t *testing.T) {
	got := New(defaultCfg).Merge([]engine.Unit{
		unit("g1", 1, 300, engine.ClassIntact, "sA"),
		unit("c_ign_1", 401, 460, engine.ClassEvidence, "sZ"),
	})
	require.Len(t, got, 2)
	assert.Equal(t, KindNone, got[1].Kind)
	assert.Empty(t, Reportable(got, true))
}

func TestMergeStrandsSeparate(t *testing.T) {
	a := unit("g1", 1, 300, engine.ClassTruncated, "sA")
	b := unit("g2", 401, 700, engine.ClassTruncated, "sA")
	b.Strand = annotation.Minus
	got := New(defaultCfg).Merge([]engine.Unit{a, b})
	assert.Len(t, got, 2)
}

func TestMergeDistanceGuard(t *testing.T) {
	units := []engine.Unit{
		unit("g1", 1, 300, engine.ClassTruncated, "sA"),
		unit("g2", 1301, 1600, engine.ClassTruncated, "sA"),
	}
	assert.Len(t, New(Config{SharedHits: 0.3, MaxDistance: 1000}).Merge(units), 1, "gap of exactly 1000")
	assert.Len(t, New(Config{SharedHits: 0.3, MaxDistance: 999}).Merge(units), 2)
	assert.Len(t, New(Config{SharedHits: 0.3}).Merge(units), 1, "0 = unlimited")
}

func TestMergeBestHitTieKeepsEarliest(t *testing.T) {
	a := unit("g1", 1, 300, engine.ClassTruncated, "sA")
	b := unit("g2", 401, 700, engine.ClassTruncated, "sA")
	b.Best.Subject = "sB"
	got := New(defaultCfg).Merge([]engine.Unit{b, a})
	require.Len(t, got, 1)
	assert.Equal(t, "sA", got[0].Best.Subject)

	b.Best.BitScore = 51
	got = New(defaultCfg).Merge([]engine.Unit{a, b})
	assert.Equal(t, "sB", got[0].Best.Subject)
}

func TestMergeFixedPoint(t *testing.T) {
	// g1 vs g2 is 1/5, below the threshold; g2+g3 covers all five subjects,
	// and g1 vs that chain is 2/5, so a second sweep joins them.
	units := []engine.Unit{
		unit("g1", 1, 300, engine.ClassTruncated, "sA", "sB"),
		unit("g2", 401, 700, engine.ClassTruncated, "sA", "sC", "sD", "sE"),
		unit("g3", 801, 1100, engine.ClassTruncated, "sB", "sC", "sD", "sE"),
	}
	m := New(Config{SharedHits: 0.3})
	first := m.Merge(units)
	assert.Equal(t, [][]string{{"g1", "g2", "g3"}}, ids(first))
	assert.InDelta(t, 0.4, first[0].Shared, 1e-12)
	assert.Equal(t, first, m.Remerge(first))
}

func TestMergeIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pool := []string{"sA", "sB", "sC", "sD", "sE"}
	var units []engine.Unit
	pos := 1
	for i := 0; i < 60; i++ {
		var subj []string
		for _, s := range pool {
			if r.Intn(3) == 0 {
				subj = append(subj, s)
			}
		}
		end := pos + 90 + r.Intn(300)
		u := unit(string(rune('a'+i/26))+string(rune('a'+i%26)), pos, end, engine.ClassTruncated, subj...)
		if len(subj) == 0 {
			u.Class, u.Members[0].Class = engine.ClassNoHit, engine.ClassNoHit
		}
		if i%5 == 0 {
			u.Strand = annotation.Minus
		}
		units = append(units, u)
		pos = end + 1 + r.Intn(200)
	}
	m := New(Config{SharedHits: 0.3, MaxDistance: 150})
	once := m.Merge(units)
	require.NoError(t, Check(once))
	twice := m.Remerge(once)
	assert.Equal(t, once, twice)

	shuffled := append([]engine.Unit(nil), units...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	assert.Equal(t, once, m.Merge(shuffled), "input order does not matter")

	n := 0
	for _, c := range once {
		n += len(c.Members)
	}
	assert.Equal(t, len(units), n, "partition")
}

func TestNumberAndReportable(t *testing.T) {
	cands := []Candidate{
		{Contig: "c1", Kind: KindTruncated},
		{Contig: "c1", Kind: KindIntact},
		{Contig: "c1", Kind: KindNoHit},
		{Contig: "c2", Kind: KindFragmented},
	}
	rep := Reportable(cands, false)
	require.Len(t, rep, 2)
	Number(rep)
	assert.Equal(t, "c1_pseudo_0001", rep[0].ID)
	assert.Equal(t, "c2_pseudo_0001", rep[1].ID)
	assert.Len(t, Reportable(cands, true), 3)
}

func TestCheckRejectsInterleaving(t *testing.T) {
	m := func(id string, s, e int) engine.Member {
		return engine.Member{ID: id, Start: s, End: e}
	}
	bad := []Candidate{
		{ID: "a", Contig: "c", Strand: annotation.Plus, Start: 1, End: 900, Members: []engine.Member{m("g1", 1, 100), m("g3", 800, 900)}},
		{ID: "b", Contig: "c", Strand: annotation.Plus, Start: 400, End: 500, Members: []engine.Member{m("g2", 400, 500)}},
	}
	err := Check(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariant))

	bad[1].Strand = annotation.Minus
	assert.NoError(t, Check(bad), "other strand")

	dup := []Candidate{
		{Contig: "c", Start: 1, End: 100, Members: []engine.Member{m("g1", 1, 100)}},
		{Contig: "c", Start: 1, End: 100, Members: []engine.Member{m("g1", 1, 100)}},
	}
	assert.ErrorIs(t, Check(dup), ErrInvariant)
}

func TestCheckAcceptsOverlappingGenes(t *testing.T) {
	units := []engine.Unit{
		unit("G1", 1, 1000, engine.ClassTruncated, "sA"),
		unit("G2", 100, 200, engine.ClassIntact, "sB"),
		unit("G3", 900, 1300, engine.ClassTruncated, "sA"),
	}
	got := New(defaultCfg).Merge(units)
	assert.Equal(t, [][]string{{"G1"}, {"G2"}, {"G3"}}, ids(got), "nested G2 separates G1 from G3")
	assert.NoError(t, Check(got))
	assert.Len(t, Reportable(got, false), 2)
}

func TestJaccard(t *testing.T) {
	f, ok := Jaccard([]string{"a", "b"}, []string{"b", "c"})
	assert.True(t, ok)
	assert.InDelta(t, 1.0/3.0, f, 1e-12)
	_, ok = Jaccard(nil, []string{"a"})
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, union([]string{"a", "c"}, []string{"b", "c"}))
}
