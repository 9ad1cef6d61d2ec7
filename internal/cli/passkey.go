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

	"github.com/uptimelabs/go-identity/pkg/webauthn"
)

var passkeyLabel string

// passkeyCmd groups the passkey management commands
var passkeyCmd = &cobra.Command{
	Use:   "passkey",
	Short: "Manage account passkeys",
}

// passkeyRegisterCmd registers a new passkey on the account
var passkeyRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new passkey",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		adapter, err := newAdapter(c)
		if err != nil {
			handleError(err)
		}

		result, err := adapter.Register(cmd.Context(), passkeyLabel)
		if err != nil {
			if webauthn.IsDuplicate(err) {
				handleError(fmt.Errorf("this authenticator is already registered"))
			}
			if webauthn.IsCancelled(err) {
				handleError(fmt.Errorf("registration was cancelled"))
			}
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintRegistration(result); err != nil {
			handleError(err)
		}
	},
}

// passkeyListCmd lists the passkeys registered to the account
var passkeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered passkeys",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		passkeys, err := c.ListPasskeys(cmd.Context())
		if err != nil {
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		if err := printer.PrintPasskeyList(passkeys); err != nil {
			handleError(err)
		}
	},
}

// passkeyRenameCmd renames a registered passkey
var passkeyRenameCmd = &cobra.Command{
	Use:   "rename <uuid> <name>",
	Short: "Rename a registered passkey",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		if err := c.RenamePasskey(cmd.Context(), args[0], args[1]); err != nil {
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		_ = printer.PrintMessage("Passkey renamed")
	},
}

// passkeyDeleteCmd removes a registered passkey
var passkeyDeleteCmd = &cobra.Command{
	Use:   "delete <uuid>",
	Short: "Delete a registered passkey",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		if err := c.DeletePasskey(cmd.Context(), args[0]); err != nil {
			handleError(err)
		}

		printer := NewPrinter(outputFormat, os.Stdout)
		_ = printer.PrintMessage("Passkey deleted")
	},
}

func init() {
	passkeyRegisterCmd.Flags().StringVar(&passkeyLabel, "label", "",
		"display name for the new passkey (default \"Web PassKey\")")

	passkeyCmd.AddCommand(passkeyRegisterCmd)
	passkeyCmd.AddCommand(passkeyListCmd)
	passkeyCmd.AddCommand(passkeyRenameCmd)
	passkeyCmd.AddCommand(passkeyDeleteCmd)
}
