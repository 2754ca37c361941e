//go:build e2e

package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_MockBuildThenStats(t *testing.T) {
	bin := BuildBinary(t)
	outDir := t.TempDir()

	out, err := Run(t, bin, nil, "build", "--mock", "--rounds", "1", "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "CO-ACTOR GRAPH")

	for _, name := range []string{"nodes.csv", "edges.csv", "summary.yaml"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	out, err = Run(t, bin, nil, "stats", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Laurence Fishburne (2975)")
}

func TestCLI_MissingAPIKey(t *testing.T) {
	bin := BuildBinary(t)

	out, err := Run(t, bin, nil, "build", "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "api key is required")
}

func TestCLI_EnvOverridesDefaults(t *testing.T) {
	bin := BuildBinary(t)
	outDir := t.TempDir()

	_, err := Run(t, bin, []string{"COACTOR_MOCK=true", "COACTOR_BUILD_ROUNDS=0"}, "build", "--output", outDir)
	require.NoError(t, err)

	summary, err := os.ReadFile(filepath.Join(outDir, "summary.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(summary), "- index:"))
}

func TestCLI_JSONLogsRedactKey(t *testing.T) {
	bin := BuildBinary(t)

	// Unreachable base URL: every fetch fails and is skipped.
	out, _ := Run(t, bin, []string{
		"COACTOR_API_KEY=super-secret",
		"COACTOR_TMDB_BASE_URL=http://127.0.0.1:1",
		"COACTOR_TMDB_MAX_TRIES=1",
	}, "build", "--json-logs", "--rounds", "0", "--output", t.TempDir())

	assert.NotContains(t, out, "super-secret")
}
