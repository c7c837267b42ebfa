package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644))
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	want := Default()
	want.Dir = dir
	assert.Equal(t, want, cfg)

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.True(t, os.IsNotExist(err), "defaults must not be written to disk")
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[injection]
method = "paste"

[log]
level = "debug"

[history]
enabled = true

[web]
enabled = true
port = 9000
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "paste", cfg.Injection.Method)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
	assert.True(t, cfg.History.Enabled)
	assert.True(t, cfg.Web.Enabled)
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.True(t, cfg.Tray.Enabled)
}

func TestLoadFrom_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Syntax", `[log`},
		{"UnknownKey", "[hotkey]\ncombo = \"ctrl+t\"\n"},
		{"BadMethod", "[injection]\nmethod = \"telepathy\"\n"},
		{"BadLevel", "[log]\nlevel = \"verbose\"\n"},
		{"BadFormat", "[log]\nformat = \"xml\"\n"},
		{"BadPort", "[web]\nenabled = true\nport = 70000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			_, err := LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := Default()
	cfg.Dir = dir
	cfg.Injection.Method = "paste"
	cfg.Tray.Enabled = false

	require.NoError(t, cfg.Save())

	loaded, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
