// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/uptimelabs/go-identity/pkg/client"
	"github.com/uptimelabs/go-identity/pkg/webauthn"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintMessage prints a plain status message
func (p *Printer) PrintMessage(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{"message": message})
	default:
		_, err := fmt.Fprintln(p.writer, message)
		return err
	}
}

// PrintSession prints the local session state
func (p *Printer) PrintSession(session *client.Session) error {
	switch p.format {
	case OutputFormatJSON:
		out := map[string]any{"authenticated": session.Authenticated}
		if session.Subject != "" {
			out["subject"] = session.Subject
		}
		if session.Email != "" {
			out["email"] = session.Email
		}
		if !session.ExpiresAt.IsZero() {
			out["expires_at"] = session.ExpiresAt.Format(time.RFC3339)
		}
		return p.printJSON(out)
	default:
		if !session.Authenticated {
			fmt.Fprintln(p.writer, "Not logged in")
			return nil
		}
		fmt.Fprintln(p.writer, "Logged in")
		if session.Subject != "" {
			fmt.Fprintf(p.writer, "  Subject: %s\n", session.Subject)
		}
		if session.Email != "" {
			fmt.Fprintf(p.writer, "  Email:   %s\n", session.Email)
		}
		if !session.ExpiresAt.IsZero() {
			fmt.Fprintf(p.writer, "  Expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
		}
		return nil
	}
}

// PrintProfile prints the user profile
func (p *Printer) PrintProfile(profile *client.Profile) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(profile)
	default:
		fmt.Fprintf(p.writer, "Name:  %s\n", profile.Name)
		fmt.Fprintf(p.writer, "Email: %s\n", profile.Email)
		if !profile.CreatedAt.IsZero() {
			fmt.Fprintf(p.writer, "Member since: %s\n", profile.CreatedAt.Format("2006-01-02"))
		}
		return nil
	}
}

// PrintPasskeyList prints the registered passkeys
func (p *Printer) PrintPasskeyList(passkeys []client.Passkey) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{"passkeys": passkeys})
	default:
		if len(passkeys) == 0 {
			fmt.Fprintln(p.writer, "No passkeys registered")
			return nil
		}
		fmt.Fprintln(p.writer, "Registered passkeys:")
		for _, pk := range passkeys {
			fmt.Fprintf(p.writer, "  %s  %s", pk.UUID, pk.Name)
			if !pk.CreatedAt.IsZero() {
				fmt.Fprintf(p.writer, "  (added %s)", pk.CreatedAt.Format("2006-01-02"))
			}
			fmt.Fprintln(p.writer)
		}
		return nil
	}
}

// PrintRegistration prints the result of a passkey registration
func (p *Printer) PrintRegistration(result *webauthn.RegistrationResult) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(result)
	default:
		fmt.Fprintf(p.writer, "Passkey registered (credential %s)\n", result.CredentialID)
		return nil
	}
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]any{"error": err.Error()})
	default:
		_, werr := fmt.Fprintf(p.writer, "Error: %v\n", err)
		return werr
	}
}

// printJSON outputs data as indented JSON
func (p *Printer) printJSON(data any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
