package config

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

func TestSetupLoggingDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		log.SetFlags(log.LstdFlags)
	})

	settings := models.NewSettings()
	settings.LogFile = ""
	closeLog := SetupLogging(settings)
	defer closeLog()

	log.Println("hello from the daemon")

	data, err := os.ReadFile(filepath.Join(home, GlobalDirName, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the daemon")
}

func TestSetupLoggingConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
		log.SetFlags(log.LstdFlags)
	})

	settings := models.NewSettings()
	settings.LogFile = filepath.Join(dir, "custom.log")
	closeLog := SetupLogging(settings)
	defer closeLog()

	log.Println("configured path")

	data, err := os.ReadFile(settings.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "configured path")
}
