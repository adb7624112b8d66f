/*
Copyright © 2026 delorenj
*/
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/version"
	"github.com/delorenj/claude-notifications/internal/zellij"
)

type bridgeClient interface {
	IsActive() bool
	ListTabs() []zellij.Tab
	ResolveTab(identifier string) (int, error)
	Send(p zellij.Payload) error
	SendToAll(p zellij.Payload) zellij.Broadcast
}

// bridgeFactory builds a client for a plugin pipe name. The name is a
// flag, so the client cannot be constructed before parse time.
type bridgeFactory func(pluginName string) bridgeClient

// quickTTLSeconds is the auto-dismiss TTL applied by --quick.
const quickTTLSeconds = 5

// NewNotifyCmd creates the zellij-notify command with explicit dependencies.
func NewNotifyCmd(newBridge bridgeFactory) *cobra.Command {
	if newBridge == nil {
		panic("NewNotifyCmd: bridge factory cannot be nil")
	}

	var tabNameFlag string
	var tabIndexFlag int
	var allFlag bool
	var typeFlag string
	var priorityFlag string
	var titleFlag string
	var ttlFlag int
	var dismissableFlag bool
	var quickFlag bool
	var pluginFlag string
	var listTabsFlag bool

	notifyCmd := &cobra.Command{
		Use:   "zellij-notify [OPTIONS] <message>",
		Short: "Send a visual notification to the zellij-notify plugin",
		Long: `zellij-notify - Send a visual notification to the zellij-notify plugin

USAGE:
    zellij-notify [OPTIONS] <message>

OPTIONS:
    -n, --tab-name <name>    Deliver to the tab with this name
    -i, --tab-index <n>      Deliver to the tab at this 1-based index
    -a, --all                Deliver to every tab
    -t, --type <type>        Notification type: success, error, warning, info, attention, progress (default: info)
    -p, --priority <prio>    Priority: low, normal, high, critical (default: normal)
        --title <text>       Notification title (default: "Notification")
        --ttl <seconds>      Auto-dismiss after this many seconds
    -d, --dismissable        Keep until manually dismissed (overrides --ttl)
    -q, --quick              Shorthand for --ttl 5
        --plugin <name>      Plugin pipe name (default: zellij-notify)
    -l, --list-tabs          List the session's tabs and exit
    -h, --help               Show this help`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}

			bridge := newBridge(pluginFlag)

			if listTabsFlag {
				return runListTabs(cmd, bridge)
			}

			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				return fmt.Errorf("a notification message is required")
			}

			// Validate enums before touching zellij at all.
			notifType, err := zellij.ParseType(typeFlag)
			if err != nil {
				return err
			}
			priority, err := zellij.ParsePriority(priorityFlag)
			if err != nil {
				return err
			}

			draft := zellij.Draft{
				Type:     notifType,
				Message:  message,
				Title:    titleFlag,
				Priority: priority,
			}

			if quickFlag && ttlFlag == 0 {
				ttlFlag = quickTTLSeconds
			}
			if ttlFlag > 0 && !dismissableFlag {
				ttlMs := int64(ttlFlag) * 1000
				draft.TTLMs = &ttlMs
			}

			if tabNameFlag != "" {
				index, err := bridge.ResolveTab(tabNameFlag)
				if err != nil {
					return err
				}
				draft.TabIndex = &index
			} else if cmd.Flags().Changed("tab-index") {
				index := tabIndexFlag
				draft.TabIndex = &index
			}

			payload, err := zellij.NewPayload(draft)
			if err != nil {
				return err
			}

			if allFlag {
				return runBroadcast(bridge, payload)
			}
			if err := bridge.Send(payload); err != nil {
				return err
			}
			colors.Success("notification sent")
			return nil
		},
	}

	notifyCmd.Flags().StringVarP(&tabNameFlag, "tab-name", "n", "", "Deliver to the tab with this name")
	notifyCmd.Flags().IntVarP(&tabIndexFlag, "tab-index", "i", 0, "Deliver to the tab at this 1-based index")
	notifyCmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Deliver to every tab")
	notifyCmd.Flags().StringVarP(&typeFlag, "type", "t", "info", "Notification type")
	notifyCmd.Flags().StringVarP(&priorityFlag, "priority", "p", "normal", "Priority")
	notifyCmd.Flags().StringVar(&titleFlag, "title", "", "Notification title")
	notifyCmd.Flags().IntVar(&ttlFlag, "ttl", 0, "Auto-dismiss after this many seconds")
	notifyCmd.Flags().BoolVarP(&dismissableFlag, "dismissable", "d", false, "Keep until manually dismissed")
	notifyCmd.Flags().BoolVarP(&quickFlag, "quick", "q", false, "Shorthand for --ttl 5")
	notifyCmd.Flags().StringVar(&pluginFlag, "plugin", "zellij-notify", "Plugin pipe name")
	notifyCmd.Flags().BoolVarP(&listTabsFlag, "list-tabs", "l", false, "List the session's tabs and exit")

	notifyCmd.CompletionOptions.HiddenDefaultCmd = true

	return notifyCmd
}

func runListTabs(cmd *cobra.Command, bridge bridgeClient) error {
	if !bridge.IsActive() {
		return zellij.ErrNotInSession
	}
	tabs := bridge.ListTabs()
	if len(tabs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tabs found")
		return nil
	}
	for _, tab := range tabs {
		marker := ""
		if tab.Active {
			marker = " (active)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d: %s%s\n", tab.Index, tab.Name, marker)
	}
	return nil
}

// runBroadcast delivers to every tab. Partial success is still success:
// the failures are warned about, not fatal.
func runBroadcast(bridge bridgeClient, payload zellij.Payload) error {
	result := bridge.SendToAll(payload)
	if result.Success == 0 {
		if len(result.Errors) > 0 {
			return fmt.Errorf("broadcast failed on all %d tabs: %s", result.Total, result.Errors[0].Err)
		}
		return errors.New("broadcast reached no tabs")
	}
	for _, tabErr := range result.Errors {
		colors.Warning(fmt.Sprintf("tab %s: %s", tabErr.Tab, tabErr.Err))
	}
	colors.Success(fmt.Sprintf("notification sent to %d/%d tabs", result.Success, result.Total))
	return nil
}
