//go:build e2e

package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// BuildBinary compiles the coactor CLI into a temp dir.
func BuildBinary(t *testing.T) string {
	t.Helper()

	binPath := filepath.Join(t.TempDir(), "coactor")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/coactor")
	cmd.Dir = "../../"
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Build failed: %s", out)
	}
	return binPath
}

// Run executes the binary with a clean HOME and the given extra env.
func Run(t *testing.T, bin string, env []string, args ...string) (string, error) {
	t.Helper()

	cmd := exec.Command(bin, args...)
	var clean []string
	for _, e := range os.Environ() {
		if len(e) >= 8 && e[:8] == "COACTOR_" {
			continue
		}
		clean = append(clean, e)
	}
	cmd.Env = append(clean, "HOME="+t.TempDir())
	cmd.Env = append(cmd.Env, env...)

	out, err := cmd.CombinedOutput()
	t.Logf("coactor %v:\n%s", args, out)
	return string(out), err
}
