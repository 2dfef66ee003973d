// Package config holds the thresholds that drive candidate evaluation and
// fragment merging.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Defaults.
const (
	DefaultIntergenicLength = 30
	DefaultLengthPseudo     = 0.60
	DefaultSharedHits       = 0.30
	DefaultEvalue           = 1e-4
	DefaultTopHits          = 15
	DefaultMaxDistance      = 1000
)

// Thresholds is the full set of tunables for one run.
type Thresholds struct {
	IntergenicLength int     `json:"intergenic_length"` // minimum gap (bp) scanned as a fragment
	LengthPseudo     float64 `json:"length_pseudo"`     // own/subject length ratio below which a gene is truncated
	SharedHits       float64 `json:"shared_hits"`       // minimum Jaccard overlap of subject ids to merge
	Evalue           float64 `json:"evalue"`            // maximum e-value retained at parse time
	TopHits          int     `json:"top_hits"`          // distinct subjects per unit used for overlap (0 = all)
	MaxDistance      int     `json:"max_distance"`      // largest gap (bp) bridged by a merge (0 = unlimited)
	ReportNoHit      bool    `json:"report_no_hit"`     // report genes without usable homology
	Threads          int     `json:"threads"`           // contig workers (0 = all CPUs)
	LogLevel         string  `json:"log_level"`
}

// Default returns the documented defaults.
func Default() Thresholds {
	return Thresholds{
		IntergenicLength: DefaultIntergenicLength,
		LengthPseudo:     DefaultLengthPseudo,
		SharedHits:       DefaultSharedHits,
		Evalue:           DefaultEvalue,
		TopHits:          DefaultTopHits,
		MaxDistance:      DefaultMaxDistance,
		LogLevel:         "info",
	}
}

// Validate reports the first out-of-range field.
func (t Thresholds) Validate() error {
	switch {
	case t.IntergenicLength < 1:
		return fmt.Errorf("%w: intergenic_length must be ≥ 1 (got %d)", ErrInvalid, t.IntergenicLength)
	case t.LengthPseudo <= 0:
		return fmt.Errorf("%w: length_pseudo must be > 0 (got %g)", ErrInvalid, t.LengthPseudo)
	case t.SharedHits < 0 || t.SharedHits > 1:
		return fmt.Errorf("%w: shared_hits must be within [0,1] (got %g)", ErrInvalid, t.SharedHits)
	case t.Evalue < 0:
		return fmt.Errorf("%w: evalue must be ≥ 0 (got %g)", ErrInvalid, t.Evalue)
	case t.TopHits < 0:
		return fmt.Errorf("%w: top_hits must be ≥ 0 (got %d)", ErrInvalid, t.TopHits)
	case t.MaxDistance < 0:
		return fmt.Errorf("%w: max_distance must be ≥ 0 (got %d)", ErrInvalid, t.MaxDistance)
	case t.Threads < 0:
		return fmt.Errorf("%w: threads must be ≥ 0 (got %d)", ErrInvalid, t.Threads)
	}
	return nil
}

// LoadJSON overlays the keys present in the JSON file at path onto base.
// Keys absent from the file keep their value from base.
func LoadJSON(path string, base Thresholds) (Thresholds, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	out := base
	if err := json.Unmarshal(b, &out); err != nil {
		return base, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return out, nil
}
