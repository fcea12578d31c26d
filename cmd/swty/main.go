// Package main is the entry point for the swty CLI.
package main

import (
	"os"

	"github.com/f3rmion/swty/cmd/swty/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
