/*
Copyright © 2026 delorenj
*/
package main

import (
	"os"

	"github.com/delorenj/claude-notifications/internal/colors"
	"github.com/delorenj/claude-notifications/internal/zellij"
)

func newLiveBridge(pluginName string) bridgeClient {
	return zellij.NewBridge(zellij.NewDefaultRunner(), pluginName)
}

func main() {
	if err := NewNotifyCmd(newLiveBridge).Execute(); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
