// Package main is the entry point for the draftkit CLI.
package main

import (
	"os"

	"draftkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		cli.PrintFatal(err)
		os.Exit(1)
	}
}
