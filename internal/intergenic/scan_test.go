package intergenic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pseudofinder/internal/annotation"
)

func gene(t *testing.T, locus, contig string, start, end int, s annotation.Strand) annotation.GeneRecord {
	t.Helper()
	g, err := annotation.NewGeneRecord(locus, contig, start, end, s, (end-start+1)/3)
	require.NoError(t, err)
	return g
}

func index(t *testing.T, genes ...annotation.GeneRecord) *annotation.Index {
	t.Helper()
	ix, err := annotation.NewIndex(genes, nil)
	require.NoError(t, err)
	return ix
}

func TestScanThresholdAndStrand(t *testing.T) {
	ix := index(t,
		gene(t, "g1", "c1", 1, 100, annotation.Minus),
		gene(t, "g2", "c1", 131, 200, annotation.Plus), // gap 101..130 = 30 bp
		gene(t, "g3", "c1", 229, 400, annotation.Plus), // gap 201..228 = 28 bp
		gene(t, "g4", "c2", 500, 600, annotation.Plus), // lone gene: no regions
	)
	got := Collect(ix, 30)
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, "c1_ign_1", r.ID)
	assert.Equal(t, 101, r.Start)
	assert.Equal(t, 130, r.End)
	assert.Equal(t, 30, r.Length(), "length equal to the threshold qualifies")
	assert.Equal(t, annotation.Minus, r.Strand, "strand of the left flank")

	assert.Len(t, Collect(ix, 28), 2)
}

func TestScanNestedGeneDoesNotOpenGap(t *testing.T) {
	ix := index(t,
		gene(t, "long", "c", 1, 1000, annotation.Plus),
		gene(t, "nested", "c", 100, 200, annotation.Plus),
		gene(t, "next", "c", 1100, 1300, annotation.Plus),
	)
	got := Collect(ix, 30)
	require.Len(t, got, 1)
	assert.Equal(t, 1001, got[0].Start)
	assert.Equal(t, 1099, got[0].End)
}

func TestScanIsLazy(t *testing.T) {
	ix := index(t,
		gene(t, "a", "c", 1, 10, annotation.Plus),
		gene(t, "b", "c", 100, 110, annotation.Plus),
		gene(t, "d", "c", 200, 210, annotation.Plus),
	)
	n := 0
	for range Scan(ix, 1) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestWriteFASTA(t *testing.T) {
	g, err := ReadGenome(strings.NewReader(">c desc\n" + strings.Repeat("A", 10) + strings.Repeat("C", 5) + strings.Repeat("G", 10) + "\n"))
	require.NoError(t, err)
	regions := []Region{{ID: "c_ign_1", Contig: "c", Start: 11, End: 15, Strand: annotation.Plus}}

	var buf bytes.Buffer
	n, err := WriteFASTA(&buf, func(yield func(Region) bool) {
		for _, r := range regions {
			if !yield(r) {
				return
			}
		}
	}, g)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, ">c_ign_1 c 11-15 +\nCCCCC\n", buf.String())
	assert.Equal(t, []annotation.SequenceRegion{{ID: "c", Length: 25}}, g.SequenceRegions())
}

func TestWriteFASTAUnknownContig(t *testing.T) {
	g, err := ReadGenome(strings.NewReader(">c\nACGT\n"))
	require.NoError(t, err)
	_, err = WriteFASTA(&bytes.Buffer{}, func(yield func(Region) bool) {
		yield(Region{ID: "x", Contig: "other", Start: 1, End: 2})
	}, g)
	assert.ErrorIs(t, err, ErrUnknownContig)
}
