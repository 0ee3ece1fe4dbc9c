// Package main provides the kudos command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/kudos/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
