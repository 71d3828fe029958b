package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/choirsched/internal/storage"
)

func writeLocalConfig(t *testing.T, dir string) (cfgPath, dbPath string) {
	t.Helper()
	dbPath = filepath.Join(dir, "events.db")
	content := strings.Join([]string{
		"backend: local",
		"local:",
		"  path: " + dbPath,
		"log:",
		"  file: " + filepath.Join(dir, "choirsched.log"),
		"schedule:",
		"  timezone: UTC",
		"  state_file: " + filepath.Join(dir, "state.json"),
		"",
	}, "\n")
	cfgPath = filepath.Join(dir, "choirsched.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath, dbPath
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"choirsched"}, args...))
	return out.String(), err
}

func storedEvents(t *testing.T, dbPath string) int {
	t.Helper()
	store, err := storage.OpenLocal(context.Background(), dbPath, storage.LocalOptions{})
	require.NoError(t, err)
	defer store.Close()
	events, err := store.List(context.Background())
	require.NoError(t, err)
	return len(events)
}

func TestSeedRequiresAdmin(t *testing.T) {
	cfgPath, dbPath := writeLocalConfig(t, t.TempDir())

	_, err := runApp(t, "--config", cfgPath, "seed", "--from", "2026-01", "--months", "1")
	require.ErrorIs(t, err, errAdminRequired)
	assert.Zero(t, storedEvents(t, dbPath))
}

func TestSeedDryRunWithoutAdmin(t *testing.T) {
	cfgPath, dbPath := writeLocalConfig(t, t.TempDir())

	out, err := runApp(t, "--config", cfgPath, "seed", "--from", "2026-01", "--months", "1", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would create 2026-01-")
	assert.Zero(t, storedEvents(t, dbPath))
}

func TestSeedWithAdminCreatesEvents(t *testing.T) {
	cfgPath, dbPath := writeLocalConfig(t, t.TempDir())

	out, err := runApp(t, "--config", cfgPath, "seed", "--from", "2026-01", "--months", "1", "--admin")
	require.NoError(t, err)
	assert.Contains(t, out, "created ")
	assert.NotZero(t, storedEvents(t, dbPath))
}
