// Package dispatch runs one notification cycle across every configured
// channel. Channels are independent: a failing webhook never blocks the
// sound, a dead zellij session never blocks the banner.
package dispatch

import (
	"fmt"

	"github.com/delorenj/claude-notifications/internal/banner"
	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/config"
	"github.com/delorenj/claude-notifications/internal/logging"
	"github.com/delorenj/claude-notifications/internal/relay"
	"github.com/delorenj/claude-notifications/internal/sound"
	"github.com/delorenj/claude-notifications/internal/webhook"
	"github.com/delorenj/claude-notifications/internal/zellij"
)

// SoundChannel plays a notification sound locally.
type SoundChannel interface {
	Play(overrideType string, bellFlag bool)
}

// RelayChannel forwards the sound to a remote listener. Relay reports
// whether the local sound should be suppressed.
type RelayChannel interface {
	Relay(soundType string) bool
}

// SoundResolver maps the cycle's flags to a concrete sound key.
type SoundResolver interface {
	Resolve(overrideType string, bellFlag bool) string
}

// BannerChannel shows a desktop banner.
type BannerChannel interface {
	Show(title, message, notificationType string)
}

// WebhookChannel fires the configured webhook.
type WebhookChannel interface {
	Fire()
}

// PluginChannel delivers a payload into the multiplexer plugin.
type PluginChannel interface {
	IsActive() bool
	Send(p zellij.Payload) error
}

// Options are the per-invocation knobs from the CLI.
type Options struct {
	// Bell selects the bell sound for this cycle only.
	Bell bool
	// SoundOverride selects a sound key for this cycle only.
	SoundOverride string
}

// Dispatcher fans one notification out to every enabled channel.
type Dispatcher struct {
	cfg    *config.Config
	log    logging.Logger
	sound  SoundChannel
	solver SoundResolver
	relay  RelayChannel
	banner BannerChannel
	hook   WebhookChannel
	plugin PluginChannel
}

// New wires a Dispatcher from live channel implementations.
func New(cfg *config.Config, log logging.Logger) *Dispatcher {
	player := sound.NewPlayer(cfg)
	return &Dispatcher{
		cfg:    cfg,
		log:    log,
		sound:  player,
		solver: player,
		relay:  relay.NewClient(cfg.RemoteSound),
		banner: banner.NewNotifier(),
		hook:   webhook.NewNotifier(cfg.Webhook),
		plugin: zellij.NewBridge(zellij.NewDefaultRunner(), cfg.ZellijVisualization.PluginName),
	}
}

// NewWithChannels wires a Dispatcher from explicit channels.
func NewWithChannels(cfg *config.Config, log logging.Logger, snd SoundChannel, solver SoundResolver, rel RelayChannel, ban BannerChannel, hook WebhookChannel, plugin PluginChannel) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		log:    log,
		sound:  snd,
		solver: solver,
		relay:  rel,
		banner: ban,
		hook:   hook,
		plugin: plugin,
	}
}

// Run executes one notification cycle. It never returns an error: a
// notification hook must not fail the command it observes, so every
// channel failure is logged and swallowed.
func (d *Dispatcher) Run(opts Options) {
	d.playSound(opts)

	zc := d.cfg.ZellijVisualization
	if d.cfg.DesktopNotification {
		d.banner.Show(zc.Title, zc.Message, zc.NotificationType)
		d.log.Debug("banner shown", "title", zc.Title)
	}

	if d.cfg.Webhook.Enabled {
		d.hook.Fire()
	}

	if zc.Enabled {
		d.sendPlugin(zc)
	}
}

// playSound plays locally unless a remote relay accepted the sound and
// is configured to replace it.
func (d *Dispatcher) playSound(opts Options) {
	if !d.cfg.Sound && !opts.Bell && opts.SoundOverride == "" {
		return
	}
	if d.cfg.Webhook.Enabled && d.cfg.Webhook.ReplaceSound {
		d.log.Debug("local sound replaced by webhook")
		return
	}
	soundType := d.solver.Resolve(opts.SoundOverride, opts.Bell)
	if d.relay.Relay(soundType) {
		d.log.Info("sound relayed to remote listener", "soundType", soundType)
		return
	}
	d.sound.Play(opts.SoundOverride, opts.Bell)
	d.log.Debug("sound played", "soundType", soundType)
}

func (d *Dispatcher) sendPlugin(zc config.ZellijVisualization) {
	if !d.plugin.IsActive() {
		d.log.Debug("no live zellij session, skipping plugin notification")
		return
	}
	p, err := zellij.NewPayload(zellij.Draft{
		Type:     zellij.Type(zc.NotificationType),
		Message:  zc.Message,
		Title:    zc.Title,
		Source:   "claude-notify",
		Priority: zellij.Priority(zc.Priority),
	})
	if err != nil {
		// Config self-heal keeps these fields valid; reaching this
		// means the config was edited mid-run.
		colors.Warning("invalid zellij notification settings: " + err.Error())
		return
	}
	if err := d.plugin.Send(p); err != nil {
		colors.Warning(fmt.Sprintf("zellij notification failed: %v", err))
		d.log.Warn("zellij notification failed", "error", err)
		return
	}
	d.log.Debug("zellij notification delivered", "plugin", zc.PluginName)
}
