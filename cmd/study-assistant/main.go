// Package main provides the entry point for the study-assistant CLI.
package main

import (
	"os"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}
