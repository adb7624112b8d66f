/*
Copyright © 2026 delorenj
*/
package main

import (
	"os"

	"github.com/delorenj/claude-notifications/cmd"
	"github.com/delorenj/claude-notifications/internal/colors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
