// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var whoamiRemote bool

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Show the local session derived from the stored access token.

With --remote the profile is fetched from the server instead, which also
exercises the token refresh path when the token has expired.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		printer := NewPrinter(outputFormat, os.Stdout)

		if whoamiRemote {
			profile, err := c.CurrentUser(cmd.Context())
			if err != nil {
				handleError(err)
			}
			if err := printer.PrintProfile(profile); err != nil {
				handleError(err)
			}
			return
		}

		if err := printer.PrintSession(c.SessionInfo()); err != nil {
			handleError(err)
		}
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiRemote, "remote", false, "fetch the profile from the server")
}
