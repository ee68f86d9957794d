// Package watcher reloads settings when the settings file changes on disk.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/seanGSISG/ollama-tray/internal/config"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

const debounceDelay = 300 * time.Millisecond

// Watcher watches ~/.ollama-tray/settings.yaml and emits the re-read
// settings after each change. Editors tend to fire several events per save,
// so events are debounced.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	settingsCh chan *models.Settings
	done       chan struct{}

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a settings watcher.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher:  fsWatcher,
		settingsCh: make(chan *models.Settings, 1),
		done:       make(chan struct{}),
	}, nil
}

// Settings returns the channel carrying reloaded settings.
func (w *Watcher) Settings() <-chan *models.Settings { return w.settingsCh }

// Start begins watching the global settings file's directory. Watching the
// directory instead of the file survives rename-replace saves.
func (w *Watcher) Start() error {
	settingsPath, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	if err := config.EnsureGlobalDir(); err != nil {
		return err
	}
	if err := w.fsWatcher.Add(filepath.Dir(settingsPath)); err != nil {
		return err
	}

	go w.loop(filepath.Base(settingsPath))
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *Watcher) loop(settingsName string) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != settingsName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Settings watcher error: %v", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		settings, err := config.LoadSettings()
		if err != nil {
			log.Printf("Failed to reload settings: %v", err)
			return
		}
		log.Println("Settings file changed, reloaded")
		select {
		case w.settingsCh <- settings:
		default:
		}
	})
}
