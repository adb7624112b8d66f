// Package webhook fires a fixed-payload HTTP POST when a notification cycle runs.
package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/config"
)

// FixedMessage is the body text sent with every webhook POST.
const FixedMessage = "Claude has finished responding."

// requestTimeout bounds the webhook POST so the notification cycle cannot hang.
const requestTimeout = 3 * time.Second

// Notifier fires a fire-and-forget webhook POST. This channel must never
// block or fail the overall notification flow: errors are logged and
// dropped, and there is no retry.
type Notifier struct {
	cfg  config.Webhook
	http *http.Client
}

// NewNotifier creates a webhook notifier for the given configuration.
func NewNotifier(cfg config.Webhook) *Notifier {
	return &Notifier{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Fire issues the webhook POST. No-op when the channel is disabled or has
// no URL. The response is drained and ignored.
func (n *Notifier) Fire() {
	if !n.cfg.Enabled || n.cfg.URL == "" {
		return
	}

	body, err := json.Marshal(map[string]string{"message": FixedMessage})
	if err != nil {
		colors.Debug(fmt.Sprintf("webhook encode failed: %v", err))
		return
	}

	resp, err := n.http.Post(n.cfg.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		colors.Warning(fmt.Sprintf("webhook to %s failed: %v", n.cfg.URL, err))
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	colors.Debug(fmt.Sprintf("webhook to %s returned %d", n.cfg.URL, resp.StatusCode))
}
