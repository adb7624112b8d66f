package zellij

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/delorenj/claude-notifications/internal/colors"
)

// Operation timeouts. Every zellij invocation is bounded: the notification
// cycle runs inside an interactive hook and must never hang the terminal.
const (
	// probeTimeout bounds the session liveness probe.
	probeTimeout = 500 * time.Millisecond
	// layoutTimeout bounds the layout dump used for tab enumeration.
	layoutTimeout = 2 * time.Second
	// switchTimeout bounds the go-to-tab focus switch.
	switchTimeout = 2 * time.Second
	// pipeTimeout bounds the plugin pipe delivery.
	pipeTimeout = 5 * time.Second
)

// Retry defaults for transient pipe failures.
const (
	DefaultMaxRetries = 2
	DefaultRetryDelay = 100 * time.Millisecond
)

// Bridge delivers notification payloads into a named zellij plugin pipe.
type Bridge struct {
	runner     Runner
	pluginName string
	maxRetries int
	retryDelay time.Duration

	// injectable for tests
	getenv func(string) string
	sleep  func(time.Duration)
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithMaxRetries sets how many additional attempts follow a transient failure.
func WithMaxRetries(n int) BridgeOption {
	return func(b *Bridge) { b.maxRetries = n }
}

// WithRetryDelay sets the base backoff delay between attempts.
func WithRetryDelay(d time.Duration) BridgeOption {
	return func(b *Bridge) { b.retryDelay = d }
}

// NewBridge creates a Bridge delivering to the named plugin pipe.
func NewBridge(runner Runner, pluginName string, opts ...BridgeOption) *Bridge {
	if runner == nil {
		panic("NewBridge: runner dependency cannot be nil")
	}
	b := &Bridge{
		runner:     runner,
		pluginName: pluginName,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		getenv:     os.Getenv,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsActive reports whether the current process is inside a live zellij
// session. The ZELLIJ environment marker alone is not enough: it survives
// into detached shells after the original session ended, so a cheap
// liveness probe backs it up.
func (b *Bridge) IsActive() bool {
	if b.getenv("ZELLIJ") == "" {
		return false
	}
	_, _, err := b.runner.Run(probeTimeout, "action", "query-tab-names")
	return err == nil
}

// ListTabs enumerates the session's tabs from a layout dump. On any
// failure it returns an empty list; callers must treat that as "unknown",
// not as "zero tabs".
func (b *Bridge) ListTabs() []Tab {
	stdout, stderr, err := b.runner.Run(layoutTimeout, "action", "dump-layout")
	if err != nil {
		if stderr != "" {
			colors.Debug("dump-layout stderr: " + stderr)
		}
		return nil
	}
	return parseTabs(stdout)
}

// ResolveTab resolves a tab name or index against the current tab list.
// The list is observed at call time; tabs renamed or reordered between
// this call and a subsequent Send race best-effort (no re-validation).
func (b *Bridge) ResolveTab(identifier string) (int, error) {
	return ResolveTab(identifier, b.ListTabs())
}

// Send delivers a payload to the plugin pipe. Preconditions and policy:
//   - the session must be active, else ErrNotInSession;
//   - a payload targeting a tab switches focus there first; a switch
//     failure is warned about but never aborts delivery, since the plugin
//     can route by the tab index embedded in the payload;
//   - a missing plugin pipe is permanent: ErrPluginNotFound immediately,
//     no retries;
//   - any other failure is transient: retried up to maxRetries more times
//     with exponential backoff, sleeping between strictly sequential
//     attempts.
//
// Send returns nil on the first attempt that succeeds; exhaustion always
// returns a descriptive error enumerating the attempt count.
func (b *Bridge) Send(p Payload) error {
	if !b.IsActive() {
		return ErrNotInSession
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}

	if p.TabIndex != nil {
		_, stderr, err := b.runner.Run(switchTimeout, "action", "go-to-tab", strconv.Itoa(*p.TabIndex))
		if err != nil {
			colors.Warning(fmt.Sprintf("could not switch to tab %d: %v %s", *p.TabIndex, err, strings.TrimSpace(stderr)))
		}
	}

	attempts := b.maxRetries + 1
	var lastErr error
	timedOut := false
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			b.sleep(b.retryDelay * (1 << (attempt - 1)))
		}
		_, stderr, err := b.runner.Run(pipeTimeout, "action", "pipe", "--name", b.pluginName, "--", string(data))
		if err == nil {
			return nil
		}
		if isPermanent(stderr) {
			return fmt.Errorf("%w: %q (install the plugin or check --plugin)", ErrPluginNotFound, b.pluginName)
		}
		timedOut = errors.Is(err, context.DeadlineExceeded)
		lastErr = err
		colors.Debug(fmt.Sprintf("pipe attempt %d/%d failed: %v %s", attempt+1, attempts, err, strings.TrimSpace(stderr)))
	}

	if timedOut {
		return fmt.Errorf("zellij pipe timed out after %d attempts", attempts)
	}
	return fmt.Errorf("zellij pipe failed after %d attempts: %w", attempts, lastErr)
}

// isPermanent reports whether captured stderr indicates the plugin pipe
// does not exist. Those failures cannot be retried away.
func isPermanent(stderr string) bool {
	msg := strings.ToLower(stderr)
	return strings.Contains(msg, "no pipe") ||
		strings.Contains(msg, "plugin does not exist") ||
		strings.Contains(msg, "not found")
}

// TabError records one tab's delivery failure during a broadcast.
type TabError struct {
	Tab string
	Err string
}

// Broadcast aggregates the outcome of a SendToAll. Callers decide whether
// partial success is acceptable.
type Broadcast struct {
	Total   int
	Success int
	Errors  []TabError
}

// SendToAll delivers the payload once per tab, continuing past individual
// failures. When tab enumeration yields nothing the broadcast degrades to
// a single current-tab send.
func (b *Bridge) SendToAll(p Payload) Broadcast {
	tabs := b.ListTabs()
	if len(tabs) == 0 {
		result := Broadcast{Total: 1}
		if err := b.Send(p); err != nil {
			result.Errors = append(result.Errors, TabError{Tab: "current", Err: err.Error()})
		} else {
			result.Success = 1
		}
		return result
	}

	result := Broadcast{Total: len(tabs)}
	for _, tab := range tabs {
		perTab := p
		index := tab.Index
		perTab.TabIndex = &index
		if err := b.Send(perTab); err != nil {
			result.Errors = append(result.Errors, TabError{Tab: tab.Name, Err: err.Error()})
			continue
		}
		result.Success++
	}
	return result
}
