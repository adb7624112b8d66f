// Package sound plays notification sound assets through platform audio backends.
package sound

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/config"
)

// Backend is one platform audio player strategy. Backends are attempted in
// order; the first one whose binary is present and spawns cleanly wins.
type Backend struct {
	// Name is the player binary looked up in PATH.
	Name string
	// Args builds the argument list for playing the given asset file.
	Args func(assetPath string) []string
	// DoubleTrigger plays the asset twice back-to-back. PulseAudio sinks
	// that were suspended silently drop the first play request; the
	// second one is expected to produce audible output. Keep this until
	// a real sink-wake detection mechanism exists.
	DoubleTrigger bool
}

// DefaultBackends is the fixed fallback chain of audio players.
func DefaultBackends() []Backend {
	return []Backend{
		{
			Name:          "paplay",
			Args:          func(p string) []string { return []string{p} },
			DoubleTrigger: true,
		},
		{
			Name: "aplay",
			Args: func(p string) []string { return []string{"-q", p} },
		},
		{
			Name: "afplay",
			Args: func(p string) []string { return []string{p} },
		},
		{
			Name: "ffplay",
			Args: func(p string) []string {
				return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", p}
			},
		},
	}
}

// Player resolves a sound asset and plays it through the first available
// backend. Playback is best-effort and fire-and-forget: Play never reports
// an error to its caller.
type Player struct {
	cfg      *config.Config
	backends []Backend

	// injectable for tests
	lookPath func(name string) (string, error)
	spawn    func(bin string, args []string) error
	statFile func(path string) error
	bell     func()
}

// NewPlayer creates a Player for the given configuration.
func NewPlayer(cfg *config.Config) *Player {
	return &Player{
		cfg:      cfg,
		backends: DefaultBackends(),
		lookPath: exec.LookPath,
		spawn:    spawnDetached,
		statFile: func(path string) error {
			_, err := os.Stat(path)
			return err
		},
		bell: func() { fmt.Fprint(os.Stderr, "\a") },
	}
}

// spawnDetached starts the player without waiting for playback to finish.
// The notification cycle must complete in well under a second; waiting for
// a multi-second sound to drain would hang the calling hook.
func spawnDetached(bin string, args []string) error {
	cmd := exec.Command(bin, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Resolve returns the asset key to play. Resolution order: a valid explicit
// override, then the bell flag, then the configured default.
func (p *Player) Resolve(overrideType string, bellFlag bool) string {
	if overrideType != "" {
		if config.KnownSounds[overrideType] {
			return overrideType
		}
		colors.Warning(fmt.Sprintf("unknown sound %q, ignoring override", overrideType))
	}
	if bellFlag {
		return config.SoundBell
	}
	return p.cfg.SoundType
}

// Play resolves and plays a sound asset. It never returns an error: a
// missing asset warns and returns, failed backends fall through to the next
// one, and when every backend fails the terminal bell character is emitted
// as a last resort.
func (p *Player) Play(overrideType string, bellFlag bool) {
	asset := p.Resolve(overrideType, bellFlag)
	assetPath := config.SoundPath(asset)
	if err := p.statFile(assetPath); err != nil {
		colors.Warning(fmt.Sprintf("sound asset %s not found; run the installer to restore it", assetPath))
		return
	}

	for _, backend := range p.backends {
		bin, err := p.lookPath(backend.Name)
		if err != nil {
			continue
		}
		args := backend.Args(assetPath)
		if err := p.spawn(bin, args); err != nil {
			colors.Debug(fmt.Sprintf("%s failed to start: %v", backend.Name, err))
			continue
		}
		if backend.DoubleTrigger {
			// Second attempt wakes a suspended sink; ignore its outcome.
			_ = p.spawn(bin, args)
		}
		colors.Debug(fmt.Sprintf("playing %s via %s", asset, backend.Name))
		return
	}

	colors.Debug("no audio backend available, falling back to terminal bell")
	p.bell()
}
