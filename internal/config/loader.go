package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/delorenj/claude-notifications/internal/colors"
)

// envKeys maps CLAUDE_NOTIFY_* environment variables to configuration keys.
// Explicit rather than computed: the config document uses camelCase keys
// which cannot be recovered mechanically from SNAKE_CASE names.
var envKeys = map[string]string{
	"SOUND":                "sound",
	"SOUND_TYPE":           "soundType",
	"DESKTOP_NOTIFICATION": "desktopNotification",
	"WEBHOOK_ENABLED":      "webhook.enabled",
	"WEBHOOK_URL":          "webhook.url",
	"WEBHOOK_REPLACE":      "webhook.replaceSound",
	"ZELLIJ_ENABLED":       "zellijVisualization.enabled",
	"ZELLIJ_PLUGIN":        "zellijVisualization.pluginName",
	"ZELLIJ_TYPE":          "zellijVisualization.notificationType",
	"ZELLIJ_TITLE":         "zellijVisualization.title",
	"ZELLIJ_MESSAGE":       "zellijVisualization.message",
	"ZELLIJ_PRIORITY":      "zellijVisualization.priority",
	"REMOTE_ENABLED":       "remoteSound.enabled",
	"REMOTE_URL":           "remoteSound.url",
	"REMOTE_PORT":          "remoteSound.port",
	"REMOTE_REPLACE":       "remoteSound.replaceSound",
	"REMOTE_TIMEOUT_MS":    "remoteSound.timeoutMs",
}

const envPrefix = "CLAUDE_NOTIFY_"

// Load resolves the configuration from path. It never fails: any read or
// parse error is logged and defaults are returned. A configuration that
// needed migration or self-healing is written back to path synchronously;
// write failures are logged, not returned.
func Load(path string) *Config {
	k := koanf.New(".")

	defaults := Defaults()
	data, err := json.Marshal(defaults)
	if err == nil {
		_ = k.Load(rawJSONProvider{data}, koanfjson.Parser())
	}

	// The user document is loaded into its own instance first: migration
	// decisions depend on which keys the file actually supplies, which the
	// defaults-seeded merge cannot tell apart.
	dirty := false
	fileExists := false
	if _, statErr := os.Stat(path); statErr == nil {
		fileExists = true
		fileK := koanf.New(".")
		if err := fileK.Load(file.Provider(path), koanfjson.Parser()); err != nil {
			colors.Warning(fmt.Sprintf("unable to parse config file %s: %v; using defaults", path, err))
			cfg := Defaults()
			return &cfg
		}
		dirty = migrate(fileK)
		if err := k.Merge(fileK); err != nil {
			colors.Warning(fmt.Sprintf("unable to merge config file %s: %v; using defaults", path, err))
			cfg := Defaults()
			return &cfg
		}
	}

	_ = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		if key, ok := envKeys[trimPrefix(s, envPrefix)]; ok {
			return key
		}
		return ""
	}), nil)

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		colors.Warning(fmt.Sprintf("unable to decode configuration: %v; using defaults", err))
		cfg = Defaults()
		return &cfg
	}

	if heal(&cfg) {
		dirty = true
	}

	if dirty && fileExists {
		if err := Save(path, &cfg); err != nil {
			colors.Warning(fmt.Sprintf("unable to persist corrected configuration: %v", err))
		}
	}

	return &cfg
}

// migrate rewrites legacy keys on the user document, before defaults are
// merged in. Returns true when the document changed and needs to be
// persisted.
func migrate(k *koanf.Koanf) bool {
	dirty := false
	// secondSound predates soundType: true meant "play the bell asset".
	if k.Exists("secondSound") {
		if !k.Exists("soundType") && k.Bool("secondSound") {
			_ = k.Set("soundType", SoundBell)
		}
		k.Delete("secondSound")
		dirty = true
	}
	return dirty
}

// heal resets invalid values to their defaults. Returns true when anything
// was corrected. Corrections are warnings, never errors: configuration
// problems must not block the notification cycle.
func heal(cfg *Config) bool {
	defaults := Defaults()
	dirty := false

	if !KnownSounds[cfg.SoundType] {
		colors.Warning(fmt.Sprintf("unknown soundType %q: must be one of: bell, chime, ding; using default: %s", cfg.SoundType, defaults.SoundType))
		cfg.SoundType = defaults.SoundType
		dirty = true
	}
	if cfg.ZellijVisualization.NotificationType != "" && !validNotificationType(cfg.ZellijVisualization.NotificationType) {
		colors.Warning(fmt.Sprintf("invalid zellijVisualization.notificationType %q; using default: %s", cfg.ZellijVisualization.NotificationType, defaults.ZellijVisualization.NotificationType))
		cfg.ZellijVisualization.NotificationType = defaults.ZellijVisualization.NotificationType
		dirty = true
	}
	if cfg.ZellijVisualization.Priority != "" && !validPriority(cfg.ZellijVisualization.Priority) {
		colors.Warning(fmt.Sprintf("invalid zellijVisualization.priority %q; using default: %s", cfg.ZellijVisualization.Priority, defaults.ZellijVisualization.Priority))
		cfg.ZellijVisualization.Priority = defaults.ZellijVisualization.Priority
		dirty = true
	}
	if cfg.ZellijVisualization.PluginName == "" {
		cfg.ZellijVisualization.PluginName = defaults.ZellijVisualization.PluginName
		dirty = true
	}
	if cfg.RemoteSound.TimeoutMs <= 0 {
		cfg.RemoteSound.TimeoutMs = DefaultTimeoutMs
		dirty = true
	}

	if err := validator.New().Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				switch fe.Namespace() {
				case "Config.Webhook.URL":
					colors.Warning(fmt.Sprintf("invalid webhook.url %q; disabling webhook", cfg.Webhook.URL))
					cfg.Webhook.URL = ""
					cfg.Webhook.Enabled = false
				case "Config.RemoteSound.URL":
					colors.Warning(fmt.Sprintf("invalid remoteSound.url %q; clearing", cfg.RemoteSound.URL))
					cfg.RemoteSound.URL = ""
				case "Config.RemoteSound.Port":
					colors.Warning(fmt.Sprintf("invalid remoteSound.port %d; clearing", cfg.RemoteSound.Port))
					cfg.RemoteSound.Port = 0
				default:
					colors.Warning(fmt.Sprintf("invalid configuration field %s; resetting to defaults", fe.Namespace()))
					*cfg = defaults
				}
				dirty = true
			}
		}
	}
	return dirty
}

func validNotificationType(s string) bool {
	switch s {
	case "success", "error", "warning", "info", "attention", "progress":
		return true
	}
	return false
}

func validPriority(s string) bool {
	switch s {
	case "low", "normal", "high", "critical":
		return true
	}
	return false
}

// Save writes cfg to path as indented JSON, creating the parent directory
// when needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), FileModeFile); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// rawJSONProvider feeds pre-marshaled JSON into koanf, used to seed defaults.
type rawJSONProvider struct {
	data []byte
}

func (p rawJSONProvider) ReadBytes() ([]byte, error) { return p.data, nil }

func (p rawJSONProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("rawJSONProvider does not support Read")
}

func trimPrefix(s, prefix string) string {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
