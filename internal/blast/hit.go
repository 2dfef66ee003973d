// Package blast parses tabular homology-search results into per-query
// ranked hit tables.
package blast

// Hit is one retained row of a BLASTP or BLASTX table.
type Hit struct {
	Query       string
	Subject     string
	PctIdentity float64
	AlignLen    int
	Mismatch    int
	GapOpen     int
	QStart      int
	QEnd        int
	SStart      int
	SEnd        int
	Evalue      float64
	BitScore    float64
	SubjectLen  int // amino acids; 0 when unknown
	Row         int // position among retained rows of its table
}

// Outranks reports whether h sorts before o: higher bit score, then lower
// e-value, then earlier row.
func (h Hit) Outranks(o Hit) bool {
	if h.BitScore != o.BitScore {
		return h.BitScore > o.BitScore
	}
	if h.Evalue != o.Evalue {
		return h.Evalue < o.Evalue
	}
	return h.Row < o.Row
}

// QuerySpan returns the query coordinates as an ordered (lo, hi) pair.
func (h Hit) QuerySpan() (int, int) {
	if h.QStart <= h.QEnd {
		return h.QStart, h.QEnd
	}
	return h.QEnd, h.QStart
}
