package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "utang.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "Asia/Manila", cfg.Timezone)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "utang_session", cfg.Session.CookieName)
	assert.Empty(t, cfg.CORSOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Manila", loc.String())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
db_path: /var/lib/utang/utang.db
store_name: "Tindahan ni Aling Nena"
session:
  ttl: 12h
  secure: true
log:
  level: debug
  format: json
cors_origins:
  - http://localhost:5173
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/var/lib/utang/utang.db", cfg.DBPath)
	assert.Equal(t, "Tindahan ni Aling Nena", cfg.StoreName)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, "utang_session", cfg.Session.CookieName, "unset fields keep defaults")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\n")

	t.Setenv("UTANG_ADDR", ":7070")
	t.Setenv("DB_PATH", "/tmp/env.db")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("UTANG_CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown timezone", content: "timezone: Mars/Olympus\n"},
		{name: "zero ttl", content: "session:\n  ttl: 0s\n"},
		{name: "bad log format", content: "log:\n  format: xml\n"},
		{name: "bad ttl env", env: map[string]string{"SESSION_TTL": "forever"}},
		{name: "malformed yaml", content: "addr: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
