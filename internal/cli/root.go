// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

// Package cli implements the identity command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/uptimelabs/go-identity/internal/config"
	"github.com/uptimelabs/go-identity/pkg/client"
	"github.com/uptimelabs/go-identity/pkg/logging"
	"github.com/uptimelabs/go-identity/pkg/tokenstore"
	"github.com/uptimelabs/go-identity/pkg/webauthn"
)

var (
	cfgFile      string
	serverAddr   string
	outputFormat string
	verbose      bool

	appConfig *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "identity",
	Short: "identity CLI - passkey and session management for the identity server",
	Long: `identity CLI manages sessions and passkeys against an identity server.

Sessions use a bearer access token that is refreshed transparently when
the server reports it expired. Passkey ceremonies run through a built-in
software authenticator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.identity.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "",
		"identity server address (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(passkeyCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads the application configuration before any command runs
func initConfig() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		handleError(err)
	}
	if serverAddr != "" {
		cfg.Server.Address = serverAddr
	}
	if verbose {
		cfg.Verbose = true
	}
	appConfig = cfg
}

// newClient builds the identity client with the file-backed token store
func newClient() (*client.Client, error) {
	store, err := tokenstore.NewFile(appConfig.TokenDir)
	if err != nil {
		return nil, err
	}

	return client.New(&client.Params{
		Config:     appConfig.ClientConfig(),
		TokenStore: store,
		Logger:     logging.NewLogger(appConfig.Verbose),
	})
}

// newAdapter builds the ceremony adapter over the software authenticator
func newAdapter(c *client.Client) (*webauthn.Adapter, error) {
	authenticator := webauthn.NewSoftwareAuthenticator(
		appConfig.WebAuthn.RPID,
		appConfig.WebAuthn.RPName,
		appConfig.WebAuthn.Origin,
	)

	return webauthn.NewAdapter(&webauthn.Params{
		Client:        c,
		Authenticator: authenticator,
		Logger:        logging.NewLogger(appConfig.Verbose),
	})
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(outputFormat, os.Stderr)
	_ = printer.PrintError(err)
	os.Exit(1)
}
