// Package tray implements the system tray icon and menu.
package tray

// Controller is what the tray needs from the daemon behind it.
type Controller interface {
	// RefreshNow triggers an immediate status refresh; the resulting
	// snapshot arrives via UpdateStatus.
	RefreshNow()
	StartService() error
	StopService() error
	ModelDir() string
	RequestShutdown()
}
