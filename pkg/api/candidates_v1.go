// pkg/api/candidates_v1.go
package api

// CandidateV1 is the stable JSON/JSONL schema for reported pseudogene
// candidates. Keep fields, names, and types stable. Add new fields only
// with ",omitempty".
type CandidateV1 struct {
	ID            string   `json:"id"`
	Contig        string   `json:"contig"`
	Start         int      `json:"start"`
	End           int      `json:"end"`
	Strand        string   `json:"strand"` // "+" | "-"
	Kind          string   `json:"kind"`   // "truncated" | "fragmented" | "no-hit"
	Members       []string `json:"members"`
	Genes         int      `json:"genes"`
	OwnLength     int      `json:"own_length"`
	BestSubject   string   `json:"best_subject,omitempty"`
	SubjectLength int      `json:"subject_length,omitempty"`
	BitScore      float64  `json:"bitscore,omitempty"`
	Evalue        *float64 `json:"evalue,omitempty"`
	Ratio         *float64 `json:"ratio,omitempty"`
	SharedHits    *float64 `json:"shared_hits,omitempty"`
	Subjects      []string `json:"subjects,omitempty"`
}
