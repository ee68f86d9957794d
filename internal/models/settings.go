package models

// Settings represents global application settings.
// This corresponds to ~/.ollama-tray/settings.yaml.
type Settings struct {
	Version           int    `yaml:"version"`
	ServiceName       string `yaml:"service_name"`
	APIURL            string `yaml:"api_url"`
	ModelDir          string `yaml:"model_dir"`
	RefreshIntervalMS int    `yaml:"refresh_interval_ms"`
	RequestTimeoutMS  int    `yaml:"request_timeout_ms"`
	LogFile           string `yaml:"log_file"`
	LogLevel          string `yaml:"log_level"` // "info" | "debug"
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:           1,
		ServiceName:       "ollama.service",
		APIURL:            "http://127.0.0.1:11434",
		ModelDir:          "~/.ollama/models",
		RefreshIntervalMS: 15000,
		RequestTimeoutMS:  5000,
		LogFile:           "~/.ollama-tray/ollama-tray.log",
		LogLevel:          "info",
	}
}

// DebugEnabled reports whether debug logging is configured.
func (s *Settings) DebugEnabled() bool {
	return s.LogLevel == "debug"
}
