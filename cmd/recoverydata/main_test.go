// go test github.com/homemade/notebook-inject/cmd/recoverydata -v
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flink.recovery"), []byte("flink-A\t10.0.0.1:1\n\nflink-B\t10.0.0.2:2\n"), 0o600))

	var out bytes.Buffer
	err := run([]string{"--dir", dir, "flink-C", "10.0.0.3:3"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "flink-A\t10.0.0.1:1\nflink-B\t10.0.0.2:2\nflink-C\t10.0.0.3:3", out.String())

	out.Reset()
	err = run([]string{"--dir", dir, "flink-A", "10.0.0.1:1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "flink-A\t10.0.0.1:1\nflink-B\t10.0.0.2:2", out.String())
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run([]string{"only-one"}, &out), errUsage)
	assert.ErrorIs(t, run([]string{"--bogus", "a", "b"}, &out), errUsage)
	assert.Empty(t, out.String())
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"--dir", t.TempDir(), "a", "b"}, &out)
	assert.Error(t, err)
}
