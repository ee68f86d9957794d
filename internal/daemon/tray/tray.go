package tray

import (
	"fmt"
	"log"
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/getlantern/systray"

	"github.com/seanGSISG/ollama-tray/internal/buildinfo"
	"github.com/seanGSISG/ollama-tray/internal/config"
	"github.com/seanGSISG/ollama-tray/internal/models"
)

var (
	controller Controller
	onStart    func()
	onExit     func()

	// Status rows (disabled, display only)
	statusItem  *systray.MenuItem
	modelsItem  *systray.MenuItem
	gpuItem     *systray.MenuItem
	contextItem *systray.MenuItem

	// Controls
	startItem      *systray.MenuItem
	stopItem       *systray.MenuItem
	manageItem     *systray.MenuItem
	openFolderItem *systray.MenuItem
	refreshItem    *systray.MenuItem
	aboutItem      *systray.MenuItem
	quitItem       *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the poller here).
// onExitFn is called when the tray exits (cleanup here).
func Run(c Controller, onStartFn, onExitFn func()) {
	controller = c
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetIcon(iconData)
	systray.SetTooltip("Ollama Service Monitor")

	statusItem = systray.AddMenuItem("Status: checking...", "")
	statusItem.Disable()
	modelsItem = systray.AddMenuItem("Models: checking...", "")
	modelsItem.Disable()
	gpuItem = systray.AddMenuItem("GPU: checking...", "")
	gpuItem.Disable()
	contextItem = systray.AddMenuItem("Context: -", "")
	contextItem.Disable()

	systray.AddSeparator()

	startItem = systray.AddMenuItem("Start Ollama", "Start the Ollama service")
	stopItem = systray.AddMenuItem("Stop Ollama", "Stop the Ollama service")
	manageItem = systray.AddMenuItem("Manage Models...", "Open the model manager")
	openFolderItem = systray.AddMenuItem("Open Model Folder", "Open the model directory")

	systray.AddSeparator()

	refreshItem = systray.AddMenuItem("Refresh", "Refresh status now")
	aboutItem = systray.AddMenuItem("About", "About ollama-tray")
	quitItem = systray.AddMenuItem("Quit", "Exit ollama-tray")

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-startItem.ClickedCh:
			log.Println("Starting Ollama service")
			if err := controller.StartService(); err != nil {
				notifyError(err.Error())
			} else {
				NotifyResult(models.OperationResult{Succeeded: true, FinalMessage: "Ollama service starting"})
			}

		case <-stopItem.ClickedCh:
			log.Println("Stopping Ollama service")
			if err := controller.StopService(); err != nil {
				notifyError(err.Error())
			} else {
				NotifyResult(models.OperationResult{Succeeded: true, FinalMessage: "Ollama service stopping"})
			}

		case <-manageItem.ClickedCh:
			if err := openModelManager(); err != nil {
				notifyError("Could not open a terminal for the model manager. Run: ollama-tray models manage")
			}

		case <-openFolderItem.ClickedCh:
			dir := config.ExpandHome(controller.ModelDir())
			log.Printf("Opening model folder: %s", dir)
			if err := exec.Command("xdg-open", dir).Start(); err != nil {
				notifyError("Failed to open model folder: " + err.Error())
			}

		case <-refreshItem.ClickedCh:
			controller.RefreshNow()

		case <-aboutItem.ClickedCh:
			msg := fmt.Sprintf("ollama-tray %s — Ollama service monitor", buildinfo.Version)
			if err := beeep.Notify("About ollama-tray", msg, ""); err != nil {
				log.Printf("Notification failed: %v", err)
			}

		case <-quitItem.ClickedCh:
			controller.RequestShutdown()
		}
	}
}

// UpdateStatus refreshes the display rows from a snapshot and raises a
// notification when the model count changed while the service is live.
func UpdateStatus(snap *models.StatusSnapshot) {
	if statusItem == nil {
		return
	}

	switch snap.Service {
	case models.ServiceRunning:
		statusItem.SetTitle("Status: Running")
	case models.ServiceStopped:
		statusItem.SetTitle("Status: Stopped")
	default:
		statusItem.SetTitle("Status: Unknown")
	}

	modelsItem.SetTitle("Models: " + snap.ModelsText)
	gpuItem.SetTitle("GPU: " + snap.GPUText)
	contextItem.SetTitle("Context: " + snap.ContextText)
	systray.SetTooltip(fmt.Sprintf("Ollama %s — %s", snap.Service, snap.ModelsText))

	if snap.ModelCountChanged {
		if err := beeep.Notify("Ollama Status", snap.ModelsText, ""); err != nil {
			log.Printf("Notification failed: %v", err)
		}
	}
}

// NotifyResult raises a desktop notification for a finished operation.
func NotifyResult(result models.OperationResult) {
	title := "Ollama Models"
	if !result.Succeeded {
		title = "Ollama Models — failed"
	}
	if err := beeep.Notify(title, result.FinalMessage, ""); err != nil {
		log.Printf("Notification failed: %v", err)
	}
}

func notifyError(msg string) {
	log.Println(msg)
	if err := beeep.Alert("Ollama Tray Error", msg, ""); err != nil {
		log.Printf("Notification failed: %v", err)
	}
}
