// Package zellij bridges logical notifications into a zellij plugin's pipe.
// It defines types and operations for session detection, tab resolution, and
// payload delivery with retry.
package zellij

import "errors"

// Custom error types for zellij-specific failures.
var (
	// ErrNotInSession is returned when the current process is not inside a
	// live zellij session.
	ErrNotInSession = errors.New("not in a zellij session")

	// ErrPluginNotFound is returned when the named plugin pipe does not
	// exist. Retrying cannot help; the plugin needs to be installed.
	ErrPluginNotFound = errors.New("zellij plugin pipe not found")

	// ErrTabNotFound is returned when a tab identifier matches no tab.
	ErrTabNotFound = errors.New("tab not found")
)
