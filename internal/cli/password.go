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

	"github.com/uptimelabs/go-identity/pkg/client"
)

var (
	passwordCurrent string
	passwordNew     string
)

// passwordCmd changes the account password
var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	Run: func(cmd *cobra.Command, args []string) {
		if passwordCurrent == "" || passwordNew == "" {
			handleError(fmt.Errorf("--current and --new are required"))
		}

		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		if err := c.UpdatePassword(cmd.Context(), passwordCurrent, passwordNew); err != nil {
			if client.IsCredentialMismatch(err) {
				handleError(fmt.Errorf("current password is incorrect"))
			}
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		_ = printer.PrintMessage("Password changed")
	},
}

func init() {
	passwordCmd.Flags().StringVar(&passwordCurrent, "current", "", "current password")
	passwordCmd.Flags().StringVar(&passwordNew, "new", "", "new password")
}
