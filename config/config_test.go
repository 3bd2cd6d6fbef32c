package config

import (
	"os"
	"testing"

	"github.com/panyam/flowres/logger"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "dot", c.GraphFormat)
	assert.Equal(t, 10, c.MaxDepth)
	assert.True(t, c.Color)
}

func TestPrecedence(t *testing.T) {
	c := Default()
	require.NoError(t, c.LoadFile("testdata/flowres.yaml"))
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 5, c.MaxErrors)
	assert.Equal(t, "mermaid", c.GraphFormat)
	assert.False(t, c.Color)
	assert.Equal(t, 10, c.MaxDepth, "fields missing from the file keep their defaults")

	require.NoError(t, c.ApplyEnv(env(map[string]string{
		"FLOWRES_MAX_ERRORS": "7",
		"FLOWRES_COLOR":      "true",
		"FLOWRES_METRICS":    " ",
		"FLOWRES_ROOT":       "trees",
	})))
	assert.Equal(t, "trees", c.Root)
	assert.Equal(t, 7, c.MaxErrors)
	assert.True(t, c.Color)
	assert.False(t, c.Metrics, "blank variables are ignored")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--max-errors=2", "--format", "dot", "--root", "src"}))
	require.NoError(t, c.ApplyFlags(fs))
	assert.Equal(t, 2, c.MaxErrors)
	assert.Equal(t, "dot", c.GraphFormat)
	assert.Equal(t, "src", c.Root)
	assert.Equal(t, "info", c.LogLevel, "unset flags do not override")
	assert.True(t, c.Color)
}

func TestApplyFlagsIgnoresUnregistered(t *testing.T) {
	c := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("max-errors", 0, "")
	require.NoError(t, fs.Parse([]string{"--max-errors=4"}))
	require.NoError(t, c.ApplyFlags(fs))
	assert.Equal(t, 4, c.MaxErrors)
	assert.Equal(t, "dot", c.GraphFormat)
}

func TestConfigErrors(t *testing.T) {
	c := Default()
	err := c.LoadFile("testdata/unknown.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")

	assert.Error(t, c.LoadFile("testdata/missing.yaml"))

	err = Default().ApplyEnv(env(map[string]string{"FLOWRES_MAX_ERRORS": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLOWRES_MAX_ERRORS")

	c = Default()
	c.GraphFormat = "svg"
	assert.EqualError(t, c.Validate(), `unknown graph format "svg"`)
	c = Default()
	c.LogLevel = "loud"
	assert.Error(t, c.Validate())
}

func TestLoadEnvFiles(t *testing.T) {
	t.Setenv("FLOWRES_MAX_IMPORT_DEPTH", "")
	os.Unsetenv("FLOWRES_MAX_IMPORT_DEPTH")
	require.NoError(t, LoadEnvFiles("testdata/missing.env", "testdata/test.env"))

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, c.MaxDepth)
}

func TestApply(t *testing.T) {
	defer logger.QuietTest(t)()
	c := Default()
	c.LogLevel = "error"
	require.NoError(t, c.Apply())
	assert.Equal(t, logger.LogLevelError, logger.GetLogLevel())
}
