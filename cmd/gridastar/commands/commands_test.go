package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCommand("test", "none", "today")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunPrintsPath(t *testing.T) {
	path := writeScenario(t, "open.txt", "S..\n...\n..E\n")
	out, err := execute(t, "run", path, "--no-render")
	require.NoError(t, err)
	assert.Contains(t, out, "open: path of cost 4 after 9 expansions")
	assert.Contains(t, out, "[(0,0) (1,0) (2,0) (2,1) (2,2)]")
}

func TestRunJSON(t *testing.T) {
	path := writeScenario(t, "blocked.txt", "S#.\n##.\n..E\n")
	out, err := execute(t, "run", path, "--no-render", "--json")
	require.NoError(t, err)

	var got resultOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "blocked", got.Scenario)
	assert.Equal(t, "not_found", got.Outcome.String())
	assert.Equal(t, 1, got.Expanded)
	assert.Empty(t, got.Path)
	assert.NotEmpty(t, got.Session)
}

func TestRunRendersFrames(t *testing.T) {
	cfg := writeScenario(t, "gridastar.yaml", "render:\n  clear: false\n")
	path := writeScenario(t, "tiny.txt", "SE\n..\n")
	out, err := execute(t, "run", path, "--config", cfg)
	require.NoError(t, err)
	// one expansion frame, no path cells between adjacent endpoints, then the final grid
	assert.Contains(t, out, "So\no.\n")
	assert.Contains(t, out, "SE\no.\n")
	assert.Contains(t, out, "tiny: path of cost 1")
}

func TestRunMissingScenario(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "absent.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	good := writeScenario(t, "good.hcl", "rows = 4\nstart = [0, 0]\nend = [last, last]\n")
	bad := writeScenario(t, "bad.txt", "S.\n..\n")

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (4x4, 0 barriers, (0,0) -> (3,3))")

	out, err = execute(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "invalid scenario")
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestBadConfig(t *testing.T) {
	cfg := writeScenario(t, "gridastar.yaml", "grid:\n  rows: 0\n")
	_, err := execute(t, "validate", "x.txt", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
