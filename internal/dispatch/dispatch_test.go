package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/delorenj/claude-notifications/internal/config"
	"github.com/delorenj/claude-notifications/internal/logging"
	"github.com/delorenj/claude-notifications/internal/zellij"
)

type mockSound struct{ mock.Mock }

func (m *mockSound) Play(overrideType string, bellFlag bool) { m.Called(overrideType, bellFlag) }

func (m *mockSound) Resolve(overrideType string, bellFlag bool) string {
	return m.Called(overrideType, bellFlag).String(0)
}

type mockRelay struct{ mock.Mock }

func (m *mockRelay) Relay(soundType string) bool { return m.Called(soundType).Bool(0) }

type mockBanner struct{ mock.Mock }

func (m *mockBanner) Show(title, message, notificationType string) {
	m.Called(title, message, notificationType)
}

type mockWebhook struct{ mock.Mock }

func (m *mockWebhook) Fire() { m.Called() }

type mockPlugin struct{ mock.Mock }

func (m *mockPlugin) IsActive() bool              { return m.Called().Bool(0) }
func (m *mockPlugin) Send(p zellij.Payload) error { return m.Called(p).Error(0) }

type channels struct {
	sound  *mockSound
	relay  *mockRelay
	banner *mockBanner
	hook   *mockWebhook
	plugin *mockPlugin
}

func newTestDispatcher(cfg *config.Config) (*Dispatcher, channels) {
	ch := channels{
		sound:  new(mockSound),
		relay:  new(mockRelay),
		banner: new(mockBanner),
		hook:   new(mockWebhook),
		plugin: new(mockPlugin),
	}
	d := NewWithChannels(cfg, logging.Noop(), ch.sound, ch.sound, ch.relay, ch.banner, ch.hook, ch.plugin)
	return d, ch
}

func quietConfig() *config.Config {
	cfg := config.Defaults()
	cfg.ZellijVisualization.Enabled = false
	return &cfg
}

func TestRunPlaysSoundLocally(t *testing.T) {
	cfg := quietConfig()
	d, ch := newTestDispatcher(cfg)
	ch.sound.On("Resolve", "", false).Return("chime")
	ch.relay.On("Relay", "chime").Return(false)
	ch.sound.On("Play", "", false).Once()

	d.Run(Options{})
	ch.sound.AssertExpectations(t)
}

func TestRunSuppressesSoundWhenRelayed(t *testing.T) {
	cfg := quietConfig()
	d, ch := newTestDispatcher(cfg)
	ch.sound.On("Resolve", "", false).Return("chime")
	ch.relay.On("Relay", "chime").Return(true)

	d.Run(Options{})
	ch.sound.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)
}

func TestRunSkipsSoundWhenDisabled(t *testing.T) {
	cfg := quietConfig()
	cfg.Sound = false
	d, ch := newTestDispatcher(cfg)

	d.Run(Options{})
	ch.sound.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)
	ch.relay.AssertNotCalled(t, "Relay", mock.Anything)
}

func TestRunBellFlagOverridesDisabledSound(t *testing.T) {
	cfg := quietConfig()
	cfg.Sound = false
	d, ch := newTestDispatcher(cfg)
	ch.sound.On("Resolve", "", true).Return("bell")
	ch.relay.On("Relay", "bell").Return(false)
	ch.sound.On("Play", "", true).Once()

	d.Run(Options{Bell: true})
	ch.sound.AssertExpectations(t)
}

func TestRunWebhookReplacesSound(t *testing.T) {
	cfg := quietConfig()
	cfg.Webhook = config.Webhook{Enabled: true, URL: "https://hooks.example.com/x", ReplaceSound: true}
	d, ch := newTestDispatcher(cfg)
	ch.hook.On("Fire").Once()

	d.Run(Options{})
	ch.sound.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)
	ch.hook.AssertExpectations(t)
}

func TestRunShowsBannerWhenEnabled(t *testing.T) {
	cfg := quietConfig()
	cfg.Sound = false
	cfg.DesktopNotification = true
	d, ch := newTestDispatcher(cfg)
	ch.banner.On("Show", "Claude Code", "Claude is waiting for you...", "attention").Once()

	d.Run(Options{})
	ch.banner.AssertExpectations(t)
}

func TestRunSendsPluginNotification(t *testing.T) {
	cfg := config.Defaults()
	cfg.Sound = false
	d, ch := newTestDispatcher(&cfg)
	ch.plugin.On("IsActive").Return(true)
	ch.plugin.On("Send", mock.MatchedBy(func(p zellij.Payload) bool {
		return p.Type == zellij.TypeAttention &&
			p.Message == "Claude is waiting for you..." &&
			p.Title == "Claude Code" &&
			p.Priority == zellij.PriorityHigh &&
			p.Source == "claude-notify"
	})).Return(nil).Once()

	d.Run(Options{})
	ch.plugin.AssertExpectations(t)
}

func TestRunSkipsPluginOutsideSession(t *testing.T) {
	cfg := config.Defaults()
	cfg.Sound = false
	d, ch := newTestDispatcher(&cfg)
	ch.plugin.On("IsActive").Return(false)

	d.Run(Options{})
	ch.plugin.AssertNotCalled(t, "Send", mock.Anything)
}

func TestRunChannelsAreIndependent(t *testing.T) {
	cfg := config.Defaults()
	cfg.DesktopNotification = true
	cfg.Webhook = config.Webhook{Enabled: true, URL: "https://hooks.example.com/x"}
	d, ch := newTestDispatcher(&cfg)

	ch.sound.On("Resolve", "", false).Return("chime")
	ch.relay.On("Relay", "chime").Return(false)
	ch.sound.On("Play", "", false).Once()
	ch.banner.On("Show", mock.Anything, mock.Anything, mock.Anything).Once()
	ch.hook.On("Fire").Once()
	ch.plugin.On("IsActive").Return(true)
	// The plugin channel failing must not stop anything else.
	ch.plugin.On("Send", mock.Anything).Return(errors.New("pipe broke")).Once()

	d.Run(Options{})

	ch.sound.AssertExpectations(t)
	ch.banner.AssertExpectations(t)
	ch.hook.AssertExpectations(t)
	ch.plugin.AssertExpectations(t)
}

func TestRunNoChannelsEnabled(t *testing.T) {
	cfg := quietConfig()
	cfg.Sound = false
	d, ch := newTestDispatcher(cfg)

	assert.NotPanics(t, func() { d.Run(Options{}) })
	ch.hook.AssertNotCalled(t, "Fire")
}
