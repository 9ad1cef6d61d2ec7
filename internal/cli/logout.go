// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		printer := NewPrinter(outputFormat, os.Stdout)

		// The local token is cleared even when the server call fails.
		if err := c.Logout(cmd.Context()); err != nil {
			printVerbosef("logout call failed: %v", err)
		}
		_ = printer.PrintMessage("Logged out")
	},
}

// printVerbosef prints a message when verbose mode is enabled
func printVerbosef(format string, args ...any) {
	if appConfig != nil && appConfig.Verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
