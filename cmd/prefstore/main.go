// Package main is the entry point for the prefstore maintenance CLI.
//
// Usage:
//
//	prefstore [flags] <command> [args]
//
// Commands:
//
//	path   - Print the on-disk preferences directory for an app
//	get    - Read a single preference by dotted key
//	set    - Write a single preference by dotted key
//	dump   - Render a whole preferences file (toml, json, yaml)
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/prefstore/cmd/prefstore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
