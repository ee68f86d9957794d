package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

func TestWriteReadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	in := models.NewSettings()
	in.ServiceName = "custom.service"
	in.RefreshIntervalMS = 30000
	require.NoError(t, writeYAML(path, in))

	var out models.Settings
	require.NoError(t, readYAML(path, &out))
	assert.Equal(t, "custom.service", out.ServiceName)
	assert.Equal(t, 30000, out.RefreshIntervalMS)
}

func TestReadYAMLMissingFile(t *testing.T) {
	var out models.Settings
	err := readYAML(filepath.Join(t.TempDir(), "missing.yaml"), &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadYAMLBadContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, writeYAML(path, "][not yaml"))

	var out models.Settings
	err := readYAML(path, &out)
	require.Error(t, err)
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "ollama.service", settings.ServiceName)
	assert.Equal(t, "http://127.0.0.1:11434", settings.APIURL)
	assert.Equal(t, 15000, settings.RefreshIntervalMS)
	assert.False(t, SettingsFileExists())
}

func TestLoadSettingsRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	settings := models.NewSettings()
	settings.APIURL = "http://127.0.0.1:11435"
	require.NoError(t, SaveSettings(settings))
	require.True(t, SettingsFileExists())

	reloaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:11435", reloaded.APIURL)
	// Fields absent from the file come back as defaults.
	assert.Equal(t, "ollama.service", reloaded.ServiceName)
}

func TestApplyDefaults(t *testing.T) {
	s := &models.Settings{APIURL: "http://10.0.0.2:11434"}
	applyDefaults(s)

	assert.Equal(t, "http://10.0.0.2:11434", s.APIURL)
	assert.Equal(t, "ollama.service", s.ServiceName)
	assert.Equal(t, 15000, s.RefreshIntervalMS)
	assert.Equal(t, 5000, s.RequestTimeoutMS)
}

func TestExpandHome(t *testing.T) {
	home, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".ollama", "models"), ExpandHome("~/.ollama/models"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/var/lib/ollama", ExpandHome("/var/lib/ollama"))
}
