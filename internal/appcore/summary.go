package appcore

import (
	"time"

	"github.com/charmbracelet/log"

	"pseudofinder/internal/blast"
	"pseudofinder/internal/fileio"
	"pseudofinder/internal/merge"
	"pseudofinder/internal/output"
	"pseudofinder/internal/pipeline"
	"pseudofinder/internal/version"
)

func buildSummary(o Options, in inputs, st pipeline.Stats, runID string, started time.Time, elapsed time.Duration, logger *log.Logger) output.Summary {
	s := output.Summary{
		Program:      "pseudofinder",
		Version:      version.Version,
		RunID:        runID,
		Date:         started,
		Elapsed:      elapsed,
		Settings:     o.Thresholds,
		Contigs:      st.Contigs,
		Genes:        st.Genes,
		Regions:      st.Regions,
		GenesJoined:  st.GenesJoined,
		Truncated:    st.ByKind[merge.KindTruncated],
		Fragmented:   st.ByKind[merge.KindFragmented],
		NoHit:        st.ByKind[merge.KindNoHit],
		Intact:       st.ByKind[merge.KindIntact],
		Functional:   st.Functional(o.Thresholds.ReportNoHit),
		OrphanBlastP: len(st.OrphanBlastP),
		OrphanBlastX: len(st.OrphanBlastX),
	}
	for _, f := range []struct{ role, path string }{
		{"annotation", o.Annotation},
		{"blastp", o.BlastP},
		{"blastx", o.BlastX},
		{"lengths", o.Lengths},
	} {
		if f.path == "" {
			continue
		}
		d, err := fileio.Digest(f.path)
		if err != nil {
			logger.Warn("cannot digest input", "path", f.path, "err", err)
		}
		s.Inputs = append(s.Inputs, output.InputFile{Role: f.role, Path: f.path, Digest: d})
	}
	for _, tb := range []struct {
		name string
		t    *blast.Table
	}{{"BLASTP", in.blastp}, {"BLASTX", in.blastx}} {
		if tb.t == nil {
			continue
		}
		bs := tb.t.Stats()
		s.Tables = append(s.Tables, output.TableCounts{
			Name: tb.name, Rows: bs.Rows, Kept: bs.Kept,
			Filtered: bs.Filtered, Malformed: bs.Malformed, NoLength: bs.NoLength,
		})
	}
	return s
}
