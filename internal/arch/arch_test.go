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

// The core numerics must stay free of app-layer deps, and the output
// layer must not reach back into app wiring.
func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"branesim-core/": {
			"branesim/internal/", "branesim/cmd/", "branesim/pkg/",
		},
		"branesim/internal/output": {
			"branesim/internal/app", "branesim/internal/cli", "branesim/cmd/",
		},
		"branesim/internal/cli": {
			"branesim/internal/app", "branesim/internal/output", "branesim/cmd/",
		},
		"branesim/internal/scenariofile": {
			"branesim/internal/app", "branesim/internal/cli", "branesim/cmd/",
		},
		"branesim/internal/logging": {
			"branesim/internal/app", "branesim/internal/cli", "branesim/cmd/",
		},
		"branesim/pkg/api": {
			"branesim/internal/", "branesim/cmd/", "branesim-core/",
		},
	}

	for {
		var p pkg
		if err := dec.Decode(&p); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("decode: %v", err)
		}
		if p.Standard {
			continue
		}
		for prefix, banned := range bans {
			if !strings.HasPrefix(p.ImportPath, prefix) && p.ImportPath != strings.TrimSuffix(prefix, "/") {
				continue
			}
			for _, imp := range p.Imports {
				for _, ban := range banned {
					if strings.HasPrefix(imp, ban) || imp == strings.TrimSuffix(ban, "/") {
						t.Errorf("%s imports banned %s", p.ImportPath, imp)
					}
				}
			}
		}
	}
}
