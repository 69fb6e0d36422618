package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "inspect")
	assert.Contains(t, names, "run")
}

func TestRunCommand_RejectsUnknownOutputType(t *testing.T) {
	chdir(t, t.TempDir())
	input := filepath.Join(t.TempDir(), "inputs.json")
	require.NoError(t, os.WriteFile(input, []byte(`[]`), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"run", "--input", input, "--output-type", "SPECTRA"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPECTRA")
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a"}]`), 0o600))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a"}]`, string(data))

	_, err = readInput(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
