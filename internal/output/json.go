package output

import (
	"encoding/json"
	"io"

	"pseudofinder/internal/merge"
	"pseudofinder/pkg/api"
)

// ToAPICandidate converts a candidate to the stable wire schema (v1).
func ToAPICandidate(c merge.Candidate) api.CandidateV1 {
	v := api.CandidateV1{
		ID:        c.ID,
		Contig:    c.Contig,
		Start:     c.Start,
		End:       c.End,
		Strand:    c.Strand.String(),
		Kind:      c.Kind.String(),
		Members:   c.MemberIDs(),
		Genes:     c.Genes(),
		OwnLength: c.OwnLength,
		Subjects:  append([]string(nil), c.Subjects...),
	}
	if c.HasBest {
		v.BestSubject = c.Best.Subject
		v.SubjectLength = c.Best.Length
		v.BitScore = c.Best.BitScore
		e := c.Best.Evalue
		v.Evalue = &e
	}
	if c.HasRatio {
		r := c.Ratio
		v.Ratio = &r
	}
	if c.HasShared {
		s := c.Shared
		v.SharedHits = &s
	}
	return v
}

// WriteJSON writes a single JSON array of v1 candidates (pretty-indented).
// An empty list is written as [].
func WriteJSON(w io.Writer, list []merge.Candidate) error {
	out := make([]api.CandidateV1, 0, len(list))
	for _, c := range list {
		out = append(out, ToAPICandidate(c))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
