package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: cli-stack-roundtrip
structure: stack
capacity: 4
steps:
  - op: insert
    value: 5
  - op: insert
    value: 9
  - op: remove
    expect_value: 9
assertions:
  - type: final_state
    length: 1
    values: [5]
`

const failingScenario = `name: cli-empty-remove
structure: stack
capacity: 4
steps:
  - op: remove
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execScript(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"script"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestScript_PassingScenario(t *testing.T) {
	path := writeScenario(t, passingScenario)

	out, err := execScript(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ cli-stack-roundtrip")
}

func TestScript_FailingScenarioExitsOne(t *testing.T) {
	path := writeScenario(t, failingScenario)

	out, err := execScript(t, path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ cli-empty-remove")
	assert.Contains(t, out, "underflow")
}

func TestScript_MissingFileExitsTwo(t *testing.T) {
	_, err := execScript(t, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScript_InvalidScenarioExitsTwo(t *testing.T) {
	path := writeScenario(t, "name: broken\nstructure: b-tree\ncapacity: 4\nsteps:\n  - op: insert\n")

	_, err := execScript(t, path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScript_JSONOutput(t *testing.T) {
	path := writeScenario(t, passingScenario)

	out, err := execScript(t, path, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestScript_VerboseShowsTrace(t *testing.T) {
	path := writeScenario(t, passingScenario)

	out, err := execScript(t, path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "PUSH(5) -> Top")
	assert.Contains(t, out, "overflow-check")
}
