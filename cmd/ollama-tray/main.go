// Package main is the entry point for the ollama-tray CLI.
package main

import (
	"os"

	"github.com/seanGSISG/ollama-tray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
