// Package main provides the sqlaide command-line entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlaide/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
