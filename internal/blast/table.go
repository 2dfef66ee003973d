package blast

import "sort"

// Stats counts what happened to the rows of one table.
type Stats struct {
	Rows      int // data rows seen
	Kept      int // rows retained
	Filtered  int // rows above the e-value cutoff
	Malformed int // rows dropped for shape or number errors
	NoLength  int // retained rows with no known subject length
}

// Table maps query id to its hits, best first. It is read-only once built.
type Table struct {
	name    string
	queries []string
	hits    map[string][]Hit
	stats   Stats
}

// NewTable groups hits by query and ranks each group with Hit.Outranks.
func NewTable(name string, hits []Hit) *Table {
	t := &Table{name: name, hits: make(map[string][]Hit)}
	for _, h := range hits {
		if _, seen := t.hits[h.Query]; !seen {
			t.queries = append(t.queries, h.Query)
		}
		t.hits[h.Query] = append(t.hits[h.Query], h)
	}
	for _, list := range t.hits {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Outranks(list[j]) })
	}
	t.stats.Kept = len(hits)
	return t
}

// Table read methods accept a nil receiver, which behaves as an empty table.

func (t *Table) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Hits returns the ranked hits for query. The slice must not be modified.
func (t *Table) Hits(query string) []Hit {
	if t == nil {
		return nil
	}
	return t.hits[query]
}

// Best returns the top-ranked hit for query.
func (t *Table) Best(query string) (Hit, bool) {
	list := t.Hits(query)
	if len(list) == 0 {
		return Hit{}, false
	}
	return list[0], true
}

// Subjects returns up to n distinct subject ids for query in rank order.
// n <= 0 returns all of them.
func (t *Table) Subjects(query string, n int) []string {
	list := t.Hits(query)
	seen := make(map[string]struct{}, len(list))
	var out []string
	for _, h := range list {
		if _, dup := seen[h.Subject]; dup {
			continue
		}
		seen[h.Subject] = struct{}{}
		out = append(out, h.Subject)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// Queries returns query ids in first-seen order.
func (t *Table) Queries() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.queries...)
}

// Len is the number of queries with at least one retained hit.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.queries)
}

func (t *Table) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	return t.stats
}
