package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/config"
)

// EnvTarget overrides the relay target. It accepts a full URL or a bare
// port number, which expands to the default loopback URL pattern.
const EnvTarget = "CLAUDE_REMOTE_SOUND"

// Client relays sound-play requests to a remote relay server. All failures
// are swallowed: relaying is strictly best-effort.
type Client struct {
	cfg  config.RemoteSound
	http *http.Client

	// injectable for tests
	getenv func(string) string
	now    func() time.Time
}

// NewClient creates a relay client for the given configuration.
func NewClient(cfg config.RemoteSound) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = config.DefaultTimeoutMs * time.Millisecond
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		getenv: os.Getenv,
		now:    time.Now,
	}
}

// Target resolves the relay server URL. Priority: the CLAUDE_REMOTE_SOUND
// environment variable (full URL or bare port), then the configured URL,
// then the configured port. Empty means no remote target.
func (c *Client) Target() string {
	if v := strings.TrimSpace(c.getenv(EnvTarget)); v != "" {
		return expandTarget(v)
	}
	if !c.cfg.Enabled {
		return ""
	}
	if c.cfg.URL != "" {
		return c.cfg.URL
	}
	if c.cfg.Port > 0 {
		return fmt.Sprintf("http://127.0.0.1:%d%s", c.cfg.Port, PlayPath)
	}
	return ""
}

// expandTarget turns a bare port into a loopback URL and leaves full URLs alone.
func expandTarget(v string) string {
	if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
		return fmt.Sprintf("http://127.0.0.1:%d%s", port, PlayPath)
	}
	return v
}

// InRemoteSession reports whether the current process runs inside an
// SSH-like remote session.
func (c *Client) InRemoteSession() bool {
	return c.getenv("SSH_TTY") != "" || c.getenv("SSH_CONNECTION") != "" || c.getenv("SSH_CLIENT") != ""
}

// Relay sends the sound request to the remote target. The return value
// means "the local sound should be suppressed because the remote one will
// substitute for it": it is true only when delivery succeeded AND the
// configuration asks for sound replacement. It never returns an error;
// network failures, timeouts, and non-2xx responses all yield false.
func (c *Client) Relay(soundType string) bool {
	target := c.Target()
	if target == "" || !c.InRemoteSession() {
		return false
	}

	msg := Message{
		SoundType: soundType,
		Message:   "remote notification",
		Source:    "claude-notifications",
		Timestamp: c.now().UnixMilli(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		colors.Debug(fmt.Sprintf("relay encode failed: %v", err))
		return false
	}

	resp, err := c.http.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		colors.Debug(fmt.Sprintf("relay to %s failed: %v", target, err))
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		colors.Debug(fmt.Sprintf("relay to %s returned %d", target, resp.StatusCode))
		return false
	}

	colors.Debug(fmt.Sprintf("relayed %s sound to %s", soundType, target))
	return c.cfg.ReplaceSound
}
