package appcore

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"pseudofinder/internal/annotation"
	"pseudofinder/internal/blast"
)

// maxRowWarnings caps the malformed-row warnings logged per table.
const maxRowWarnings = 20

type inputs struct {
	index  *annotation.Index
	blastp *blast.Table
	blastx *blast.Table // nil when no BLASTX table was given
}

func loadInputs(o Options, logger *log.Logger) (inputs, error) {
	var in inputs
	ix, err := annotation.Load(o.Annotation)
	if err != nil {
		return in, err
	}
	if ix.Len() == 0 {
		return in, fmt.Errorf("%s: no gene records", o.Annotation)
	}
	in.index = ix
	logger.Info("loaded annotation", "path", o.Annotation, "genes", ix.Len(), "contigs", len(ix.Contigs()))

	var lengths blast.Lengths
	if o.Lengths != "" {
		lengths, err = blast.LoadLengths(o.Lengths)
		if err != nil {
			return in, err
		}
		logger.Info("loaded subject lengths", "path", o.Lengths, "subjects", len(lengths))
	}

	popt := blast.ParseOptions{MaxEvalue: o.Thresholds.Evalue, Lengths: lengths}
	if in.blastp, err = loadTable(o.BlastP, "blastp", popt, logger); err != nil {
		return in, err
	}
	if o.BlastX == "" {
		logger.Warn("no BLASTX table given; intergenic regions carry no evidence")
		return in, nil
	}
	if in.blastx, err = loadTable(o.BlastX, "blastx", popt, logger); err != nil {
		return in, err
	}
	return in, nil
}

func loadTable(path, kind string, opt blast.ParseOptions, logger *log.Logger) (*blast.Table, error) {
	t, warns, err := blast.Load(path, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	for i, w := range warns {
		if i == maxRowWarnings {
			logger.Warn("further malformed rows not shown", "source", w.Source, "remaining", len(warns)-i)
			break
		}
		logger.Warn("dropped hit row", "source", w.Source, "line", w.Line, "err", errors.Unwrap(w))
	}
	st := t.Stats()
	logger.Info("loaded hit table", "kind", kind, "path", path,
		"queries", t.Len(), "kept", st.Kept, "filtered", st.Filtered, "malformed", st.Malformed)
	if st.NoLength > 0 {
		logger.Warn("hits without subject length", "kind", kind, "rows", st.NoLength)
	}
	return t, nil
}
