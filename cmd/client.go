/*
Copyright © 2026 delorenj
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/config"
	"github.com/delorenj/claude-notifications/internal/dispatch"
	"github.com/delorenj/claude-notifications/internal/logging"
	"github.com/delorenj/claude-notifications/internal/relay"
	"github.com/delorenj/claude-notifications/internal/sound"
)

// defaultListenPort is the relay server port when --port is not given.
const defaultListenPort = 7777

// liveClient wires the real channels behind the CLI.
type liveClient struct{}

// Notify runs one full notification cycle.
func (c *liveClient) Notify(bell bool) error {
	cfg := config.Load(config.Path())

	log, err := logging.Init(logging.FromEnv())
	if err != nil {
		colors.Debug("file logging unavailable: " + err.Error())
		log = logging.Noop()
	}
	colors.SetLogger(log)
	defer func() { _ = log.Shutdown() }()

	dispatch.New(cfg, log).Run(dispatch.Options{Bell: bell})
	return nil
}

// Listen runs the remote-sound relay server until interrupted (or after
// one request with --once).
func (c *liveClient) Listen(host string, port int, once bool) error {
	cfg := config.Load(config.Path())
	srv := relay.NewServer(sound.NewPlayer(cfg), once)
	return srv.Listen(host, port)
}

// ConfigReport prints a human-readable diagnostic of the resolved
// configuration: where files are looked up, whether they exist, and the
// effective values after defaults, migration, and self-healing.
func (c *liveClient) ConfigReport(w io.Writer) {
	path := config.Path()
	cfg := config.Load(path)

	fmt.Fprintf(w, "config file:  %s (%s)\n", path, existence(path))
	fmt.Fprintf(w, "sound dir:    %s (%s)\n", config.SoundDir(), existence(config.SoundDir()))
	for _, key := range []string{config.SoundChime, config.SoundBell, config.SoundDing} {
		assetPath := config.SoundPath(key)
		fmt.Fprintf(w, "sound %-8s%s (%s)\n", key+":", assetPath, existence(assetPath))
	}
	if v := os.Getenv(relay.EnvTarget); v != "" {
		fmt.Fprintf(w, "%s=%s\n", relay.EnvTarget, v)
	}

	fmt.Fprintln(w, "\nresolved configuration:")
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "  (unprintable: %v)\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func existence(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "exists"
	}
	return "missing"
}
