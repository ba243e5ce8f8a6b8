package cmd

import (
	"bytes"
	"github.com/ValentinKolb/atomstore/lib/mode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

// execute runs the root command with args and stdin and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(mode.Reset)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--mode", "prod")
	require.NoError(t, err)
	assert.Contains(t, out, "atomstore v"+Version)
	assert.Contains(t, out, string(mode.Production))
}

func TestRestoreCommand(t *testing.T) {
	out, err := execute(t, `{"count": 3, "step": 2, "total": 100, "greeting": "hi"}`,
		"restore", "--mode", "dev", "--format", "json", "--file", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "count      = 3")
	assert.Contains(t, out, "total      = 6", "derived atoms are skipped and recomputed")
	assert.Contains(t, out, "shout      = HI")
}

func TestRestoreCommandRejectsUnknownAtoms(t *testing.T) {
	_, err := execute(t, "unknown: 1\n", "restore", "--mode", "dev", "--format", "yaml", "--file", "-")
	assert.ErrorContains(t, err, "unknown")
}

func TestRestoreCommandRequiresDevelopmentMode(t *testing.T) {
	_, err := execute(t, "count: 1\n", "restore", "--mode", "production", "--format", "yaml", "--file", "-")
	assert.ErrorContains(t, err, "development mode")
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "", "inspect", "--mode", "dev", "--format", "yaml", "--set", "count=3", "--set", "shout=hey", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, "total      = 3")
	assert.Contains(t, out, "greeting   = hey")
	assert.Contains(t, out, "snapshot (5 mounted atoms)")
	assert.Contains(t, out, "shout: HEY")
	assert.Contains(t, out, "atomstore_mount_total")
}
