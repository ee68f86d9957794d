package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

// SetupLogging points the standard logger at stderr plus the configured log
// file. Returns a close function for the file, or a no-op when the file
// cannot be opened (logging still goes to stderr in that case).
func SetupLogging(settings *models.Settings) func() {
	log.SetPrefix("[ollama-tray] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	path := ExpandHome(settings.LogFile)
	if path == "" {
		dir, err := GlobalDir()
		if err != nil {
			return func() {}
		}
		path = filepath.Join(dir, LogFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Failed to open log file %s: %v", path, err)
		return func() {}
	}

	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
}
