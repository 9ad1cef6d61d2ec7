// Copyright (c) 2026 Uptime Labs
//
// This file is part of go-identity.
//
// go-identity is licensed under the MIT License.
// See the LICENSE file for details.

package main

import (
	"os"

	"github.com/uptimelabs/go-identity/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
