// Package main provides the CLI entry point for prqlcore.
package main

import (
	"os"

	"github.com/leapstack-labs/prqlcore/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
