// Package main provides the entry point for the fabricsync CLI tool.
package main

import (
	"github.com/ifacegroup/fabricsync/cmd/fabricsync/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
