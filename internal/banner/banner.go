// Package banner shows best-effort desktop notifications.
//
// The desktop notification service is an external collaborator; this
// channel only hands the banner off and never lets a failure escape.
package banner

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/delorenj/claude-notifications/internal/colors"
)

// Backend abstracts the desktop notification service.
type Backend interface {
	// Notify shows a standard notification.
	Notify(title, message, iconPath string) error
	// Alert shows an urgent notification.
	Alert(title, message, iconPath string) error
}

// desktopBackend implements Backend by calling beeep directly.
type desktopBackend struct{}

func (desktopBackend) Notify(title, message, iconPath string) error {
	return beeep.Notify(title, message, iconPath)
}

func (desktopBackend) Alert(title, message, iconPath string) error {
	return beeep.Alert(title, message, iconPath)
}

// Notifier shows desktop banners for notification events.
type Notifier struct {
	backend Backend
}

// NewNotifier creates a banner notifier using the OS notification service.
func NewNotifier() *Notifier {
	return &Notifier{backend: desktopBackend{}}
}

// NewNotifierWithBackend creates a banner notifier with a custom backend (for testing).
func NewNotifierWithBackend(backend Backend) *Notifier {
	return &Notifier{backend: backend}
}

// urgent reports whether a notification type warrants an alert-level banner.
// Mirrors the urgency ranking the zellij plugin applies to its colors.
func urgent(notificationType string) bool {
	switch notificationType {
	case "error", "attention":
		return true
	}
	return false
}

// Show displays a desktop banner. Errors are logged and dropped: the banner
// must never block the other channels.
func (n *Notifier) Show(title, message, notificationType string) {
	var err error
	if urgent(notificationType) {
		err = n.backend.Alert(title, message, "")
	} else {
		err = n.backend.Notify(title, message, "")
	}
	if err != nil {
		colors.Debug(fmt.Sprintf("desktop notification failed: %v", err))
	}
}
