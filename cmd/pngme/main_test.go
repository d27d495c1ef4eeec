package main

import (
	"bytes"
	"image"
	stdpng "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run installs a new default logger, so these tests do not run in parallel.

func setupRun(t *testing.T, configContent string) string {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))
	t.Setenv("PNGME_CONFIG", configPath)

	var buf bytes.Buffer
	require.NoError(t, stdpng.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	path := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRunRoundTrip(t *testing.T) {
	path := setupRun(t, "log_level: error\n")

	var out, errOut bytes.Buffer
	require.Equal(t, 0, run([]string{"encode", path, "ruSt", "hidden message"}, &out, &errOut), errOut.String())
	require.Equal(t, 0, run([]string{"decode", path, "ruSt"}, &out, &errOut), errOut.String())
	assert.Equal(t, "hidden message\n", out.String())

	out.Reset()
	require.Equal(t, 0, run([]string{"print", path}, &out, &errOut), errOut.String())
	assert.Contains(t, out.String(), "ruSt")

	require.Equal(t, 0, run([]string{"remove", path, "ruSt"}, &out, &errOut), errOut.String())
	out.Reset()
	require.Equal(t, 0, run([]string{"decode", path, "ruSt"}, &out, &errOut), errOut.String())
	assert.Equal(t, "chunk 'ruSt' not found\n", out.String())
}

func TestRunVerboseFromConfig(t *testing.T) {
	path := setupRun(t, "verbose: true\n")

	var out, errOut bytes.Buffer
	require.Equal(t, 0, run([]string{"print", path}, &out, &errOut), errOut.String())
	assert.Contains(t, out.String(), "crc")

	out.Reset()
	require.Equal(t, 0, run([]string{"print", "--verbose=false", path}, &out, &errOut), errOut.String())
	assert.NotContains(t, out.String(), "crc")
}

func TestRunFailures(t *testing.T) {
	path := setupRun(t, "")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	assert.Equal(t, 1, run([]string{"remove", path, "NoNe"}, &out, &errOut))
	assert.Contains(t, errOut.String(), "chunk not found")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.Equal(t, 2, run([]string{"encode", path}, &out, &errOut))
	assert.Equal(t, 2, run([]string{"--log-level", "loud", "print", path}, &out, &errOut))
	assert.Equal(t, 0, run([]string{"--help"}, &out, &errOut))
}

func TestRunBadConfig(t *testing.T) {
	path := setupRun(t, "color: rainbow\n")

	var out, errOut bytes.Buffer
	assert.Equal(t, 1, run([]string{"print", path}, &out, &errOut))
	assert.Contains(t, errOut.String(), "unknown color mode")
}
