package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanGSISG/ollama-tray/internal/config"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

func TestSettingsReloadOnWrite(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	settings := models.NewSettings()
	settings.RefreshIntervalMS = 5000
	require.NoError(t, config.SaveSettings(settings))

	select {
	case reloaded := <-w.Settings():
		assert.Equal(t, 5000, reloaded.RefreshIntervalMS)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event after settings write")
	}
}

func TestUnrelatedFilesIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, config.SaveDaemonInfo(models.NewDaemonInfo(1234)))

	select {
	case <-w.Settings():
		t.Fatal("daemon.yaml write must not trigger a settings reload")
	case <-time.After(700 * time.Millisecond):
	}
}
