// ABOUTME: Entry point for the fieldstore CLI
// ABOUTME: Inspects and edits persisted object fields backed by a SQLite table

package main

import (
	"os"
)

// Version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
