package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, 30, d.IntergenicLength)
	assert.Equal(t, 0.60, d.LengthPseudo)
	assert.Equal(t, 0.30, d.SharedHits)
	assert.Equal(t, 1e-4, d.Evalue)
	assert.False(t, d.ReportNoHit)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Thresholds){
		"intergenic": func(c *Thresholds) { c.IntergenicLength = 0 },
		"length":     func(c *Thresholds) { c.LengthPseudo = 0 },
		"shared-neg": func(c *Thresholds) { c.SharedHits = -0.1 },
		"shared-big": func(c *Thresholds) { c.SharedHits = 1.1 },
		"evalue":     func(c *Thresholds) { c.Evalue = -1 },
		"tophits":    func(c *Thresholds) { c.TopHits = -1 },
		"distance":   func(c *Thresholds) { c.MaxDistance = -5 },
		"threads":    func(c *Thresholds) { c.Threads = -2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoadJSONOverlaysPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"shared_hits": 0.5, "report_no_hit": true}`), 0o644))

	got, err := LoadJSON(path, Default())
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.SharedHits)
	assert.True(t, got.ReportNoHit)
	assert.Equal(t, DefaultLengthPseudo, got.LengthPseudo, "absent keys keep defaults")
}

func TestLoadJSONBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"shared_hits":`), 0o644))
	_, err := LoadJSON(path, Default())
	assert.ErrorIs(t, err, ErrInvalid)
}
