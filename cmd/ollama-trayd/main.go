// Package main is the entry point for the ollama-trayd tray daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/seanGSISG/ollama-tray/internal/config"
	"github.com/seanGSISG/ollama-tray/internal/daemon/gpu"
	"github.com/seanGSISG/ollama-tray/internal/daemon/ollama"
	"github.com/seanGSISG/ollama-tray/internal/daemon/poller"
	"github.com/seanGSISG/ollama-tray/internal/daemon/service"
	"github.com/seanGSISG/ollama-tray/internal/daemon/tray"
	"github.com/seanGSISG/ollama-tray/internal/daemon/watcher"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

func main() {
	foreground := flag.Bool("foreground", false, "Run without the system tray (for development)")
	flag.Parse()

	settings, err := config.LoadSettings()
	if err != nil {
		log.SetPrefix("[ollama-tray] ")
		log.Fatalf("Failed to load settings: %v", err)
	}
	closeLog := config.SetupLogging(settings)
	defer closeLog()

	if err := config.EnsureGlobalDir(); err != nil {
		log.Fatalf("Failed to create global directory: %v", err)
	}

	running, info, err := config.IsTrayRunning()
	if err != nil {
		log.Fatalf("Failed to check for a running instance: %v", err)
	}
	if running {
		log.Fatalf("ollama-trayd already running (PID %d)", info.PID)
	}

	d := newDaemon(settings)

	if *foreground {
		log.Println("Running in foreground mode (no system tray)")
		d.runForeground()
	} else {
		log.Println("Running in background mode (with system tray)")
		d.runWithTray()
	}
}

// daemon wires the poller, service manager and settings watcher together and
// implements tray.Controller.
type daemon struct {
	// settings is written by the watcher goroutine and read from the tray
	// click handler, so access goes through the atomic pointer.
	settings atomic.Pointer[models.Settings]

	svc  *service.Manager
	poll *poller.Poller

	ctx    context.Context
	cancel context.CancelFunc
}

func newDaemon(settings *models.Settings) *daemon {
	timeout := time.Duration(settings.RequestTimeoutMS) * time.Millisecond
	client := ollama.New(settings.APIURL, timeout)
	svc := service.NewManager(settings.ServiceName)
	poll := poller.New(svc, client, gpu.NewProber(), timeout, settings.DebugEnabled())

	ctx, cancel := context.WithCancel(context.Background())
	d := &daemon{
		svc:    svc,
		poll:   poll,
		ctx:    ctx,
		cancel: cancel,
	}
	d.settings.Store(settings)
	return d
}

// applySettings swaps in reloaded settings and pushes the refresh interval to
// the running poller.
func (d *daemon) applySettings(settings *models.Settings) {
	d.settings.Store(settings)
	d.poll.SetInterval(d.interval())
}

// runForeground polls and logs snapshots until a signal arrives.
func (d *daemon) runForeground() {
	d.startWatcher()

	go d.poll.Run(d.ctx, d.interval(), func(snap *models.StatusSnapshot) {
		log.Printf("Status: %s, %s, GPU: %s, Context: %s",
			snap.Service, snap.ModelsText, snap.GPUText, snap.ContextText)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	d.cancel()
	fmt.Println("Daemon stopped")
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine.
func (d *daemon) runWithTray() {
	onStart := func() {
		if err := config.SaveDaemonInfo(models.NewDaemonInfo(os.Getpid())); err != nil {
			log.Fatalf("Failed to write daemon info: %v", err)
		}
		log.Printf("Tray started (PID %d)", os.Getpid())

		d.startWatcher()

		go d.poll.Run(d.ctx, d.interval(), tray.UpdateStatus)

		// Quit the tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		d.cancel()
		if err := config.RemoveDaemonInfo(); err != nil {
			log.Printf("Failed to remove daemon info: %v", err)
		}
		fmt.Println("Daemon stopped")
	}

	tray.Run(d, onStart, onExit)
}

// startWatcher applies settings-file edits to the running poller.
func (d *daemon) startWatcher() {
	w, err := watcher.New()
	if err != nil {
		log.Printf("Settings watcher unavailable: %v", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Printf("Failed to watch settings: %v", err)
		return
	}

	go func() {
		for {
			select {
			case <-d.ctx.Done():
				w.Stop()
				return
			case settings := <-w.Settings():
				d.applySettings(settings)
			}
		}
	}()
}

func (d *daemon) interval() time.Duration {
	return time.Duration(d.settings.Load().RefreshIntervalMS) * time.Millisecond
}

// RefreshNow implements tray.Controller.
func (d *daemon) RefreshNow() {
	go func() {
		if snap, ok := d.poll.TryRefresh(d.ctx); ok {
			tray.UpdateStatus(snap)
		}
	}()
}

// StartService implements tray.Controller.
func (d *daemon) StartService() error {
	if err := d.svc.Start(); err != nil {
		return err
	}
	// Give the service a moment to come up before re-reading status.
	time.AfterFunc(2*time.Second, d.RefreshNow)
	return nil
}

// StopService implements tray.Controller.
func (d *daemon) StopService() error {
	if err := d.svc.Stop(); err != nil {
		return err
	}
	time.AfterFunc(2*time.Second, d.RefreshNow)
	return nil
}

// ModelDir implements tray.Controller.
func (d *daemon) ModelDir() string {
	return d.settings.Load().ModelDir
}

// RequestShutdown implements tray.Controller.
func (d *daemon) RequestShutdown() {
	tray.Quit()
}
