// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const mod = "pseudofinder/"

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	outer := []string{
		mod + "internal/appcore", mod + "internal/app", mod + "internal/intergenicapp",
		mod + "internal/cli", mod + "cmd/",
	}
	domain := append([]string{
		mod + "internal/pipeline", mod + "internal/writers", mod + "internal/output",
		mod + "internal/logging",
	}, outer...)

	bans := map[string][]string{
		mod + "internal/annotation": domain,
		mod + "internal/blast":      domain,
		mod + "internal/intergenic": domain,
		mod + "internal/engine":     append([]string{mod + "internal/merge"}, domain...),
		mod + "internal/merge":      domain,
		mod + "internal/pipeline":   append([]string{mod + "internal/writers", mod + "internal/output"}, outer...),
		mod + "internal/writers":    append([]string{mod + "internal/pipeline"}, outer...),
		mod + "internal/output":     append([]string{mod + "internal/pipeline", mod + "internal/writers"}, outer...),
		mod + "pkg/api":             {mod + "internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if imp != prefix && !strings.HasPrefix(imp, prefix+"/") {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, mod) {
					continue
				}
				for _, ban := range forbidden {
					if dep == ban || strings.HasPrefix(dep, strings.TrimSuffix(ban, "/")+"/") {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
