package commands

import (
	"bytes"
	"testing"

	"github.com/panyam/flowres/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--env-file", "testdata/none.env", "--log-level", "off"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestResolveCommand(t *testing.T) {
	defer logger.QuietTest(t)()
	out, _, err := run(t, "resolve", "--metrics", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "// testdata/dead.yaml")
	assert.Contains(t, out, `flowres_constructs_resolved_total{kind="when"} 1`)

	out, _, err = run(t, "resolve", "-q", "testdata/bad.yaml")
	require.Error(t, err)
	assert.Equal(t, "1 of 1 files have errors", err.Error())
	assert.Contains(t, out, "UnresolvedReference: unresolved reference 'missing'")
	assert.NotContains(t, out, "// testdata/bad.yaml")

	_, _, err = run(t, "resolve", "testdata/nope.yaml")
	assert.Error(t, err)
}

func TestRootDirectory(t *testing.T) {
	defer logger.QuietTest(t)()
	out, _, err := run(t, "--root", "testdata", "resolve", "dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "// dead.yaml")

	_, _, err = run(t, "--root", "testdata", "resolve", "testdata/dead.yaml")
	require.Error(t, err, "paths are taken from the root")
	assert.Contains(t, err.Error(), "file not found: testdata/dead.yaml")

	_, _, err = run(t, "--root", "testdata", "resolve", "../commands_test.go")
	assert.Error(t, err)
}

func TestEventsCommand(t *testing.T) {
	defer logger.QuietTest(t)()
	out, _, err := run(t, "events", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "\nenter-when")
	assert.Contains(t, out, "\n  enter-branch-condition")
	assert.Contains(t, out, "\n  exit-branch-result")
	assert.NotContains(t, out, "statement")

	out, _, err = run(t, "events", "--all", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "enter-function")
}

func TestGraphCommand(t *testing.T) {
	defer logger.QuietTest(t)()
	out, errOut, err := run(t, "graph", "--format", "mermaid", "-u", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD;")
	assert.Contains(t, errOut, "testdata/dead.yaml:7:7: unreachable code")

	out, _, err = run(t, "graph", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `digraph "testdata/dead.yaml"`)

	out, _, err = run(t, "--config", "testdata/flowres.yaml", "graph", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "graph TD;", "the config file picks the format")

	_, _, err = run(t, "graph", "--format", "svg", "testdata/dead.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown graph format "svg"`)
}

func TestValidateCommand(t *testing.T) {
	defer logger.QuietTest(t)()
	out, _, err := run(t, "validate", "testdata/dead.yaml")
	require.NoError(t, err)
	assert.Equal(t, "testdata/dead.yaml: ok\n", out)

	out, _, err = run(t, "--root", "testdata", "validate", "dead.yaml", "bad.yaml")
	require.Error(t, err)
	assert.Equal(t, "validation failed", err.Error())
	assert.Contains(t, out, "dead.yaml: ok\n")
	assert.Contains(t, out, "bad.yaml:")
	assert.Contains(t, out, "unresolved reference 'missing'")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "flowres dev\n", out)
}
