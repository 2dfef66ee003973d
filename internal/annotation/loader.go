package annotation

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"pseudofinder/internal/fileio"
)

// Load reads an annotation file and builds its Index. Files ending in
// .gff or .gff3 (optionally compressed) are read as GFF3; anything else as
// the six-column TSV described at ReadTSV.
func Load(path string) (*Index, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		genes   []GeneRecord
		regions []SequenceRegion
	)
	switch strings.ToLower(filepath.Ext(fileio.TrimCompression(path))) {
	case ".gff", ".gff3":
		genes, regions, err = ReadGFF3(rc, path)
	default:
		genes, err = ReadTSV(rc, path)
	}
	if err != nil {
		return nil, err
	}
	ix, err := NewIndex(genes, regions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ix, nil
}

// ReadTSV parses whitespace-separated rows of
// locus_tag contig start end strand aa_length
// Blank lines, '#' comments and a leading "locus_tag" header are ignored.
func ReadTSV(r io.Reader, name string) ([]GeneRecord, error) {
	var out []GeneRecord
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if ln == 1 && f[0] == "locus_tag" {
			continue
		}
		if len(f) != 6 {
			return nil, fmt.Errorf("%s:%d bad field count %d (want 6)", name, ln, len(f))
		}
		start, err1 := strconv.Atoi(f[2])
		end, err2 := strconv.Atoi(f[3])
		aa, err3 := strconv.Atoi(f[5])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("%s:%d non-numeric coordinate or length", name, ln)
		}
		strand, err := ParseStrand(f[4])
		if err != nil {
			return nil, fmt.Errorf("%s:%d %v", name, ln, err)
		}
		g, err := NewGeneRecord(f[0], f[1], start, end, strand, aa)
		if err != nil {
			return nil, fmt.Errorf("%s:%d %v", name, ln, err)
		}
		out = append(out, g)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// ReadGFF3 collects CDS features and ##sequence-region pragmas. A CDS is keyed
// by its locus_tag attribute, falling back to ID; split CDS lines sharing a
// key are joined into one record spanning all parts. The product length is
// the coding length in codons minus the terminal stop codon.
func ReadGFF3(r io.Reader, name string) ([]GeneRecord, []SequenceRegion, error) {
	type part struct {
		contig     string
		start, end int
		strand     Strand
		nt         int
		line       int
	}
	var (
		order   []string
		parts   = make(map[string]*part)
		regions []SequenceRegion
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.HasPrefix(line, "##FASTA") {
			break
		}
		if strings.HasPrefix(line, "##sequence-region") {
			f := strings.Fields(line)
			if len(f) != 4 {
				return nil, nil, fmt.Errorf("%s:%d malformed ##sequence-region", name, ln)
			}
			end, err := strconv.Atoi(f[3])
			if err != nil {
				return nil, nil, fmt.Errorf("%s:%d malformed ##sequence-region end", name, ln)
			}
			regions = append(regions, SequenceRegion{ID: f[1], Length: end})
			continue
		}
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != 9 {
			return nil, nil, fmt.Errorf("%s:%d bad field count %d (want 9)", name, ln, len(f))
		}
		if f[2] != "CDS" {
			continue
		}
		start, err1 := strconv.Atoi(f[3])
		end, err2 := strconv.Atoi(f[4])
		if err1 != nil || err2 != nil {
			return nil, nil, fmt.Errorf("%s:%d non-numeric coordinate", name, ln)
		}
		strand, err := ParseStrand(f[6])
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d %v", name, ln, err)
		}
		attrs := parseAttributes(f[8])
		key := attrs["locus_tag"]
		if key == "" {
			key = attrs["ID"]
		}
		if key == "" {
			return nil, nil, fmt.Errorf("%s:%d CDS without locus_tag or ID", name, ln)
		}
		if p, ok := parts[key]; ok {
			if p.contig != f[0] || p.strand != strand {
				return nil, nil, fmt.Errorf("%s:%d CDS %q split across contigs or strands", name, ln, key)
			}
			p.start = min(p.start, start)
			p.end = max(p.end, end)
			p.nt += end - start + 1
			continue
		}
		order = append(order, key)
		parts[key] = &part{contig: f[0], start: start, end: end, strand: strand, nt: end - start + 1, line: ln}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}

	out := make([]GeneRecord, 0, len(order))
	for _, key := range order {
		p := parts[key]
		g, err := NewGeneRecord(key, p.contig, p.start, p.end, p.strand, max(p.nt/3-1, 0))
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d %v", name, p.line, err)
		}
		out = append(out, g)
	}
	return out, regions, nil
}

// parseAttributes decodes a GFF3 column-9 string of key=value pairs.
func parseAttributes(col string) map[string]string {
	m := make(map[string]string)
	for _, kv := range strings.Split(col, ";") {
		kv = strings.TrimSpace(kv)
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		if dec, err := url.PathUnescape(v); err == nil {
			v = dec
		}
		m[k] = v
	}
	return m
}
