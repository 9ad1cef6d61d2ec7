// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uptimelabs/go-identity/pkg/client"
)

var (
	loginEmail    string
	loginPassword string
	loginPasskey  bool
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the identity server",
	Long: `Log in with email and password, or with a passkey.

With --passkey the built-in software authenticator answers the server's
challenge; no password is needed.`,
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			handleError(err)
		}
		defer func() { _ = c.Close() }()

		printer := NewPrinter(outputFormat, os.Stdout)

		if loginPasskey {
			adapter, err := newAdapter(c)
			if err != nil {
				handleError(err)
			}
			if _, err := adapter.Authenticate(cmd.Context()); err != nil {
				handleError(err)
			}
			_ = printer.PrintMessage("Logged in with passkey")
			return
		}

		email, password, err := loginCredentials()
		if err != nil {
			handleError(err)
		}

		if err := c.Login(cmd.Context(), email, password); err != nil {
			if client.IsCredentialMismatch(err) {
				handleError(fmt.Errorf("invalid email or password"))
			}
			handleError(err)
		}
		_ = printer.PrintMessage("Logged in")
	},
}

// loginCredentials resolves email and password from flags, prompting on
// stdin for whichever is missing
func loginCredentials() (string, string, error) {
	email := loginEmail
	password := loginPassword
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Fprint(os.Stderr, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		password = strings.TrimRight(line, "\r\n")
	}
	return email, password, nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginPasskey, "passkey", false, "log in with a passkey instead of a password")
}
