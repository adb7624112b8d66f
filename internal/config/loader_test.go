package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	path := writeConfig(t, "{not json")
	cfg := Load(path)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"sound": false,
		"soundType": "bell",
		"webhook": {"enabled": true, "url": "https://example.com/hook"}
	}`)
	cfg := Load(path)
	assert.False(t, cfg.Sound)
	assert.Equal(t, SoundBell, cfg.SoundType)
	assert.True(t, cfg.Webhook.Enabled)
	assert.Equal(t, "https://example.com/hook", cfg.Webhook.URL)
	// Untouched sections keep their defaults.
	assert.Equal(t, Defaults().ZellijVisualization, cfg.ZellijVisualization)
}

func TestMigrateSecondSound(t *testing.T) {
	path := writeConfig(t, `{"secondSound": true}`)
	cfg := Load(path)
	assert.Equal(t, SoundBell, cfg.SoundType)

	// The rewritten document is persisted without the legacy key.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "secondSound")
	assert.Equal(t, SoundBell, raw["soundType"])
}

func TestMigrateSecondSoundDoesNotClobberSoundType(t *testing.T) {
	path := writeConfig(t, `{"secondSound": true, "soundType": "ding"}`)
	cfg := Load(path)
	assert.Equal(t, SoundDing, cfg.SoundType)
}

func TestMigrateSecondSoundFalseOnlyDropsKey(t *testing.T) {
	path := writeConfig(t, `{"secondSound": false}`)
	cfg := Load(path)
	assert.Equal(t, SoundChime, cfg.SoundType)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "secondSound")
}

func TestSelfHealUnknownSoundType(t *testing.T) {
	path := writeConfig(t, `{"soundType": "nonexistent-asset"}`)
	cfg := Load(path)
	assert.Equal(t, SoundChime, cfg.SoundType)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, SoundChime, raw["soundType"])
}

func TestSelfHealInvalidWebhookURL(t *testing.T) {
	path := writeConfig(t, `{"webhook": {"enabled": true, "url": "not a url"}}`)
	cfg := Load(path)
	assert.False(t, cfg.Webhook.Enabled)
	assert.Empty(t, cfg.Webhook.URL)
}

func TestSelfHealInvalidZellijEnums(t *testing.T) {
	path := writeConfig(t, `{"zellijVisualization": {"notificationType": "loud", "priority": "asap"}}`)
	cfg := Load(path)
	assert.Equal(t, "attention", cfg.ZellijVisualization.NotificationType)
	assert.Equal(t, "high", cfg.ZellijVisualization.Priority)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLAUDE_NOTIFY_SOUND_TYPE", "ding")
	t.Setenv("CLAUDE_NOTIFY_WEBHOOK_URL", "https://example.com/env")
	cfg := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, SoundDing, cfg.SoundType)
	assert.Equal(t, "https://example.com/env", cfg.Webhook.URL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Defaults()
	cfg.SoundType = SoundBell
	require.NoError(t, Save(path, &cfg))

	loaded := Load(path)
	assert.Equal(t, cfg, *loaded)
}

func TestSoundPath(t *testing.T) {
	t.Setenv("CLAUDE_NOTIFY_SOUND_DIR", "/tmp/sounds")
	assert.Equal(t, "/tmp/sounds/bell.wav", SoundPath("bell"))
}
