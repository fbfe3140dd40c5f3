package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every on-disk path into a temp dir and clears credentials.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, name := range []string{
		"PORT",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"MARINER_VISION_API_KEY",
		"MARINETRAFFIC_API_KEY",
		"VESSELFINDER_API_KEY",
		"MARINER_ENV",
		"MARINER_DB_DRIVER",
		"MARINER_STORAGE_PROVIDER",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("MARINER_DATA_DIR", dir)
	t.Setenv("MARINER_DB_PATH", filepath.Join(dir, "mariner.db"))
	t.Setenv("MARINER_STORAGE_ROOT", filepath.Join(dir, "uploads"))
	t.Setenv("MARINER_VISION_CREDENTIALS_FILE", filepath.Join(dir, "missing.json"))
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config-dir", dir}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestVesselCommand(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "vessel", "123456789")
	require.NoError(t, err)
	assert.Contains(t, out, "Sea Explorer")
	assert.Contains(t, out, "8765432")
	assert.Contains(t, out, "demo_database")
}

func TestVesselCommandByIMO(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "vessel", "--imo", "2345678")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue Horizon")
}

func TestVesselCommandUnknown(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, dir, "vessel", "000000000")
	assert.EqualError(t, err, "Vessel not found")
}

func TestIdentifyThenHistory(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No identifications found.")

	image := filepath.Join(dir, "boat.jpg")
	require.NoError(t, os.WriteFile(image, append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{1}, 4096)...), 0644))

	out, err = run(t, dir, "identify", image)
	require.NoError(t, err)
	assert.Contains(t, out, "synthetic")
	assert.Contains(t, out, "/api/uploads/")
	assert.Contains(t, out, "demo_database")

	out, err = run(t, dir, "history", "--limit", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6, "rounded table of one row plus the summary line")
	assert.Equal(t, "Showing 1 of 1", lines[len(lines)-1])

	out, err = run(t, dir, "history", "--mmsi", "000000000")
	require.NoError(t, err)
	assert.Contains(t, out, "No identifications found.")
}

func TestIdentifyMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, dir, "identify", filepath.Join(dir, "nope.jpg"))
	assert.ErrorContains(t, err, "read image")
}

func TestOpenAPICommand(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, dir, "openapi")
	require.NoError(t, err)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc.Paths, "/identify")
	assert.Contains(t, doc.Paths, "/feedback/stats")
}

func TestRenderTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf,
		[]string{"ID", "Type"},
		[][]string{{"7", "Yacht"}, {"12"}},
		[]columnAlignment{alignRight},
	)

	assert.Contains(t, out, "Yacht")
	assert.Contains(t, out, "│  7 │")
	assert.Empty(t, renderTable(&buf, nil, nil, nil))
}

func TestRenderFieldsSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	out := renderFields(&buf, [][2]string{{"Name", "Sea Explorer"}, {"Owner", ""}})

	assert.Contains(t, out, "Sea Explorer")
	assert.NotContains(t, out, "Owner")
}
