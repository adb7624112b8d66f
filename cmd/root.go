/*
Copyright © 2026 delorenj
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/delorenj/claude-notifications/internal/version"
)

type notifyClient interface {
	Notify(bell bool) error
	Listen(host string, port int, once bool) error
	ConfigReport(w io.Writer)
}

// NewRootCmd creates the claude-notify command with explicit dependencies.
func NewRootCmd(client notifyClient) *cobra.Command {
	if client == nil {
		panic("NewRootCmd: client dependency cannot be nil")
	}

	var bellFlag bool
	var configFlag bool
	var listenFlag bool
	var onceFlag bool
	var portFlag int
	var hostFlag string

	rootCmd := &cobra.Command{
		Use:   "claude-notify",
		Short: "Dispatch a notification when Claude Code finishes responding",
		Long: `claude-notify - Dispatch a notification when Claude Code finishes responding

Plays a sound, optionally shows a desktop banner, fires a webhook, and
pushes a visual notification into the zellij-notify plugin, depending on
configuration. Designed to be wired to Claude Code's Stop hook.

USAGE:
    claude-notify [OPTIONS]

OPTIONS:
    -b, --bell          Play the bell sound instead of the configured one
    -c, --config        Print a diagnostic configuration report and exit
        --listen        Run as a remote-sound relay server
        --once          With --listen, serve one request then exit
        --port <N>      Relay server port (default 7777)
        --host <H>      Relay server bind address (default 0.0.0.0)
    -h, --help          Show this help`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFlag {
				client.ConfigReport(cmd.OutOrStdout())
				return nil
			}
			if listenFlag {
				return client.Listen(hostFlag, portFlag, onceFlag)
			}
			if onceFlag {
				return fmt.Errorf("--once requires --listen")
			}
			return client.Notify(bellFlag)
		},
	}

	rootCmd.Flags().BoolVarP(&bellFlag, "bell", "b", false, "Play the bell sound instead of the configured one")
	rootCmd.Flags().BoolVarP(&configFlag, "config", "c", false, "Print a diagnostic configuration report and exit")
	rootCmd.Flags().BoolVar(&listenFlag, "listen", false, "Run as a remote-sound relay server")
	rootCmd.Flags().BoolVar(&onceFlag, "once", false, "With --listen, serve one request then exit")
	rootCmd.Flags().IntVar(&portFlag, "port", defaultListenPort, "Relay server port")
	rootCmd.Flags().StringVar(&hostFlag, "host", "0.0.0.0", "Relay server bind address")

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = NewRootCmd(&liveClient{})

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
