// Chipi is a terminal chat client for the Chipi assistant, a virtual
// companion for older adults.
//
// It provides account registration, login, and a conversation screen that
// talks to a Chipi backend over HTTP.
//
// Usage:
//
//	chipi [command] [flags]
//
// Running without arguments launches the interactive client.
// See 'chipi --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chipi-ai/chipi/internal/logging"
	"github.com/chipi-ai/chipi/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
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
	Use:   "chipi",
	Short: "Chipi assistant chat client",
	Long: `Terminal client for the Chipi assistant.

Chipi is a virtual companion for older adults: register with a phone
number, sign in, and chat in plain Spanish.

If no command is specified, the interactive client launches.`,
	Version: version.Version,
	RunE:    runChat,
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
		fmt.Printf("chipi %s (commit: %s)\n", version.Version, version.Commit)
	},
}
