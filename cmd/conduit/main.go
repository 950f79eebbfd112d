// Package main is the entry point for the conduit CLI.
package main

import (
	"os"

	"github.com/mrz1836/conduit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
