package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:3000/api", c.APIURL)
	assert.Equal(t, "sqlite", c.StorageKind)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.False(t, c.Production)
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	want := defaults()
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_url":         "https://json.example/api",
		"storage_kind":    "file",
		"request_timeout": "1500ms",
		"log_format":      "json",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "https://flag.example/api", "-p", "-log-level", "debug"})
	require.NoError(t, err)

	want := defaults()
	want.APIURL = "https://flag.example/api"
	want.Production = true
	want.StorageKind = "file"
	want.RequestTimeout = 1500 * time.Millisecond
	want.LogFormat = "json"
	want.LogLevel = "debug"
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-t", "abc"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-t", "0"})
	require.Error(t, err)
}

func TestSessionPath(t *testing.T) {
	c := defaults()
	c.StoragePath = "/tmp/x.db"
	assert.Equal(t, "/tmp/x.db", c.SessionPath())

	c.StoragePath = ""
	assert.Equal(t, "session.db", filepath.Base(c.SessionPath()))
	assert.Equal(t, "fieldadmin", filepath.Base(filepath.Dir(c.SessionPath())))

	c.StorageKind = "file"
	assert.Equal(t, "session.json", filepath.Base(c.SessionPath()))
}
