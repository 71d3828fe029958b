package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "choirsched.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// inEmptyDir keeps ./choirsched.yaml lookups away from the repo.
func inEmptyDir(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(PathEnv, "")
}

const validYAML = `
backend: firestore
firestore:
  project_id: gloria-choir
  collection: schedules
log:
  level: debug
  format: json
  file: /tmp/choirsched.log
schedule:
  timezone: UTC
  write_timeout: 5s
  notice_lead: 45m
defaults:
  category: worship
  time: "11:00"
  time2: ""
  location: 대예배실
seed:
  - title: 정기 연습
    category: practice
    weekday: sun
    time: "13:30"
    location: 찬양대실
`

func TestLoadDefaultsFromEnvOnly(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.False(t, cfg.Admin)
	assert.Equal(t, "choirsched.db", cfg.Local.Path)
	assert.Equal(t, "gloria.schedules", cfg.Local.Key)
	assert.Equal(t, "schedules", cfg.Firestore.Collection)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Schedule.WriteTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Schedule.Lead())
	assert.Equal(t, "Asia/Seoul", cfg.Schedule.Location().String())
	assert.False(t, cfg.Defaults.Disabled)
	assert.Equal(t, "practice", cfg.Defaults.Category)
	assert.Equal(t, "08:00", cfg.Defaults.Time)
	assert.Equal(t, "10:20", cfg.Defaults.Time2)
	assert.Equal(t, "찬양대실", cfg.Defaults.Location)
	assert.Equal(t, DefaultSeed(), cfg.Seed)
}

func TestLoadYAMLFile(t *testing.T) {
	inEmptyDir(t)
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendFirestore, cfg.Backend)
	assert.Equal(t, "gloria-choir", cfg.Firestore.ProjectID)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 45*time.Minute, cfg.Schedule.Lead())
	assert.Equal(t, time.UTC, cfg.Schedule.Location())
	assert.Equal(t, "worship", cfg.Defaults.Category)
	require.Len(t, cfg.Seed, 1)
	assert.Equal(t, "sun", cfg.Seed[0].Weekday)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	inEmptyDir(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CHOIRSCHED_BACKEND", "local")
	t.Setenv("CHOIRSCHED_ADMIN", "true")
	t.Setenv("CHOIRSCHED_DISABLE_NOTICES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.True(t, cfg.Admin)
	assert.Zero(t, cfg.Schedule.Lead())
}

func TestLoadPathFromEnv(t *testing.T) {
	inEmptyDir(t)
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gloria-choir", cfg.Firestore.ProjectID)
}

func TestLoadPicksUpWorkingDirFile(t *testing.T) {
	inEmptyDir(t)
	writeYAML(t, ".", "backend: local\nlocal:\n  path: ./here.db\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "./here.db", cfg.Local.Path)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	inEmptyDir(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"unknown backend":      "backend: mongo\n",
		"firestore no project": "backend: firestore\n",
		"bad timezone":         "schedule:\n  timezone: Mars/Olympus\n",
		"bad default category": "defaults:\n  category: concert\n",
		"bad default time":     "defaults:\n  time: \"8am\"\n",
		"seed without title":   "seed:\n  - weekday: sunday\n",
		"seed bad weekday":     "seed:\n  - title: x\n    weekday: someday\n",
		"negative notice lead": "schedule:\n  notice_lead: -5m\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			inEmptyDir(t)
			path := writeYAML(t, t.TempDir(), body)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config: validate")
		})
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	d, err = ParseWeekday("wed")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)

	_, err = ParseWeekday("funday")
	assert.Error(t, err)
}
