// Package config provides configuration loading for claude-notifications.
//
// Configuration is a layered JSON document: built-in defaults, overlaid by
// the user file, overlaid by CLAUDE_NOTIFY_* environment variables. Loading
// never fails: unreadable or corrupt configuration degrades to defaults,
// and invalid values self-heal (reset to default, correction persisted).
package config

import (
	"os"
	"path/filepath"
)

// Webhook holds the webhook channel configuration.
type Webhook struct {
	Enabled      bool   `koanf:"enabled" json:"enabled"`
	URL          string `koanf:"url" json:"url" validate:"omitempty,url"`
	ReplaceSound bool   `koanf:"replaceSound" json:"replaceSound"`
}

// ZellijVisualization holds the zellij visual-notification channel configuration.
type ZellijVisualization struct {
	Enabled          bool   `koanf:"enabled" json:"enabled"`
	PluginName       string `koanf:"pluginName" json:"pluginName"`
	NotificationType string `koanf:"notificationType" json:"notificationType"`
	Title            string `koanf:"title" json:"title"`
	Message          string `koanf:"message" json:"message"`
	Priority         string `koanf:"priority" json:"priority"`
}

// RemoteSound holds the remote sound relay configuration.
type RemoteSound struct {
	Enabled      bool   `koanf:"enabled" json:"enabled"`
	URL          string `koanf:"url" json:"url" validate:"omitempty,url"`
	Port         int    `koanf:"port" json:"port" validate:"min=0,max=65535"`
	ReplaceSound bool   `koanf:"replaceSound" json:"replaceSound"`
	TimeoutMs    int    `koanf:"timeoutMs" json:"timeoutMs" validate:"min=0"`
}

// Config is the resolved configuration for one notification cycle.
// It is loaded once per invocation and threaded explicitly into every
// component constructor; there is no package-global configuration state.
type Config struct {
	Sound               bool                `koanf:"sound" json:"sound"`
	SoundType           string              `koanf:"soundType" json:"soundType"`
	DesktopNotification bool                `koanf:"desktopNotification" json:"desktopNotification"`
	Webhook             Webhook             `koanf:"webhook" json:"webhook"`
	ZellijVisualization ZellijVisualization `koanf:"zellijVisualization" json:"zellijVisualization"`
	RemoteSound         RemoteSound         `koanf:"remoteSound" json:"remoteSound"`
}

// Sound asset keys shipped by the installer.
const (
	SoundChime = "chime"
	SoundBell  = "bell"
	SoundDing  = "ding"
)

// KnownSounds is the set of recognized sound asset keys.
var KnownSounds = map[string]bool{
	SoundChime: true,
	SoundBell:  true,
	SoundDing:  true,
}

// DefaultTimeoutMs is the default remote-sound relay request timeout.
const DefaultTimeoutMs = 1500

// Defaults returns the built-in default configuration.
func Defaults() Config {
	return Config{
		Sound:               true,
		SoundType:           SoundChime,
		DesktopNotification: false,
		Webhook: Webhook{
			Enabled:      false,
			URL:          "",
			ReplaceSound: false,
		},
		ZellijVisualization: ZellijVisualization{
			Enabled:          true,
			PluginName:       "zellij-notify",
			NotificationType: "attention",
			Title:            "Claude Code",
			Message:          "Claude is waiting for you...",
			Priority:         "high",
		},
		RemoteSound: RemoteSound{
			Enabled:      false,
			URL:          "",
			Port:         0,
			ReplaceSound: true,
			TimeoutMs:    DefaultTimeoutMs,
		},
	}
}

// FileModeDir is the permission for created directories (rwxr-xr-x).
const FileModeDir os.FileMode = 0755

// FileModeFile is the permission for the configuration file (rw-r--r--).
const FileModeFile os.FileMode = 0644

// Dir returns the configuration directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		home, _ := os.UserHomeDir()
		xdgConfigHome = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfigHome, "claude-notifications")
}

// Path returns the configuration file path. CLAUDE_NOTIFY_CONFIG_PATH
// overrides the default location.
func Path() string {
	if p := os.Getenv("CLAUDE_NOTIFY_CONFIG_PATH"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.json")
}

// SoundDir returns the directory holding sound assets keyed by asset name.
func SoundDir() string {
	if p := os.Getenv("CLAUDE_NOTIFY_SOUND_DIR"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "sounds")
}

// SoundPath returns the asset file path for a sound key.
func SoundPath(soundType string) string {
	return filepath.Join(SoundDir(), soundType+".wav")
}
