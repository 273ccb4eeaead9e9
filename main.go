// Copyright (c) 2026 Guitab Team
// Guitab - interactive guitar tablature editor
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for guitab.
//
// Usage:
//
//	go run . [flags] [FILE]
//	./guitab [flags] [FILE]
//
// This starts the interactive tab prompt. See --help for subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/toeirei/guitab/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "guitab: %v\n", err)
		os.Exit(1)
	}
}
