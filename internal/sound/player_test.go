package sound

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delorenj/claude-notifications/internal/config"
)

type spawnRecord struct {
	bin  string
	args []string
}

func newTestPlayer(cfg *config.Config) (*Player, *[]spawnRecord, *int) {
	p := NewPlayer(cfg)
	var spawns []spawnRecord
	bells := 0
	p.statFile = func(string) error { return nil }
	p.spawn = func(bin string, args []string) error {
		spawns = append(spawns, spawnRecord{bin, args})
		return nil
	}
	p.bell = func() { bells++ }
	return p, &spawns, &bells
}

func TestResolveOrder(t *testing.T) {
	cfg := config.Defaults()
	p := NewPlayer(&cfg)

	tests := []struct {
		name     string
		override string
		bell     bool
		want     string
	}{
		{"configured default", "", false, config.SoundChime},
		{"bell flag forces bell", "", true, config.SoundBell},
		{"valid override wins over bell", "ding", true, config.SoundDing},
		{"unknown override falls through to bell", "kazoo", true, config.SoundBell},
		{"unknown override falls through to default", "kazoo", false, config.SoundChime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Resolve(tt.override, tt.bell))
		})
	}
}

func TestPlayMissingAssetWarnsAndSkipsBackends(t *testing.T) {
	cfg := config.Defaults()
	p, spawns, bells := newTestPlayer(&cfg)
	p.statFile = func(string) error { return errors.New("no such file") }

	p.Play("", false)

	assert.Empty(t, *spawns)
	assert.Zero(t, *bells)
}

func TestPlayDoubleTriggersPrimaryBackend(t *testing.T) {
	cfg := config.Defaults()
	p, spawns, _ := newTestPlayer(&cfg)
	p.lookPath = func(name string) (string, error) {
		if name == "paplay" {
			return "/usr/bin/paplay", nil
		}
		return "", errors.New("not found")
	}

	p.Play("", false)

	// Suspended-sink workaround: the same asset is played twice.
	assert.Len(t, *spawns, 2)
	assert.Equal(t, (*spawns)[0], (*spawns)[1])
	assert.Equal(t, "/usr/bin/paplay", (*spawns)[0].bin)
}

func TestPlayFallsThroughToNextBackend(t *testing.T) {
	cfg := config.Defaults()
	p, spawns, _ := newTestPlayer(&cfg)
	p.lookPath = func(name string) (string, error) {
		switch name {
		case "paplay", "aplay":
			return "", errors.New("not found")
		default:
			return "/usr/bin/" + name, nil
		}
	}

	p.Play("", false)

	assert.Len(t, *spawns, 1)
	assert.Equal(t, "/usr/bin/afplay", (*spawns)[0].bin)
}

func TestPlaySpawnFailureTriesNext(t *testing.T) {
	cfg := config.Defaults()
	p, _, _ := newTestPlayer(&cfg)
	p.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	var attempted []string
	p.spawn = func(bin string, args []string) error {
		attempted = append(attempted, bin)
		if bin == "/usr/bin/paplay" {
			return errors.New("spawn failed")
		}
		return nil
	}

	p.Play("", false)

	assert.Equal(t, []string{"/usr/bin/paplay", "/usr/bin/aplay"}, attempted)
}

func TestPlayAllBackendsFailRingsTerminalBell(t *testing.T) {
	cfg := config.Defaults()
	p, _, bells := newTestPlayer(&cfg)
	p.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	p.Play("", false)

	assert.Equal(t, 1, *bells)
}
