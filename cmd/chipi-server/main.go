// Chipi-server is the development backend for the Chipi chat client.
//
// It serves the three JSON endpoints the client speaks (/api/login,
// /api/register, /api/message), stores accounts in a local JSON file with
// hashed passwords, and generates assistant replies through an
// OpenRouter-compatible API with a local rule-based fallback.
//
// Usage:
//
//	chipi-server [command] [flags]
//
// Running without arguments starts the server.
// See 'chipi-server --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chipi-ai/chipi/internal/logging"
	"github.com/chipi-ai/chipi/internal/version"
)

func main() {
	// The server has no TUI fighting for the terminal; default to info.
	level := os.Getenv(logging.LogLevelEnvVar)
	if level == "" {
		level = "info"
	}
	if err := logging.Initialize(level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chipi-server",
	Short: "Chipi development backend",
	Long: `Development backend for the Chipi chat client.

Serves the login, registration and message endpoints, stores accounts
in a local JSON file, and answers chat messages through an
OpenRouter-compatible model with a local fallback.

If no command is specified, the server starts.`,
	Version: version.Version,
	RunE:    runServe,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chipi-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
