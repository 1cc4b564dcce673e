package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chipi-ai/chipi/internal/client"
	"github.com/chipi-ai/chipi/internal/config"
	"github.com/chipi-ai/chipi/internal/discovery"
	"github.com/chipi-ai/chipi/internal/tui"
)

var (
	serverURL      string
	requestTimeout int
	scanTimeout    int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Backend base URL (overrides the config file)")
	rootCmd.PersistentFlags().IntVar(&requestTimeout, "timeout", 0, "Request timeout in seconds (overrides the config file)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(setServerCmd)
}

// buildClient resolves the backend URL and timeout from flags and the
// config file, flags winning.
func buildClient() (*client.Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	url := settings.ServerURL
	if serverURL != "" {
		url = serverURL
	}
	timeout := settings.RequestTimeout
	if requestTimeout > 0 {
		timeout = requestTimeout
	}

	c := client.New(url)
	c.SetTimeout(time.Duration(timeout) * time.Second)
	return c, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}
	return tui.Run(c)
}

// scanCmd discovers Chipi servers on the local network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Chipi servers on the network",
	Long: `Scan for Chipi servers using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from running chipi-server
instances and displays each server's base URL, so you can point the
client at one without typing an IP address.`,
	Example: `  # Scan for 10 seconds (default)
  chipi scan

  # Quick 3-second scan
  chipi scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Chipi servers (timeout: %ds)...\n\n", scanTimeout)

	services, err := discovery.Scan(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		fmt.Println("No servers found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure chipi-server is running with --announce")
		fmt.Println("  - Check that both machines are on the same network")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --server flag to specify the URL manually")
		return nil
	}

	fmt.Printf("Found %d server(s):\n\n", len(services))
	for i, svc := range services {
		fmt.Printf("%d. %s\n", i+1, svc.Instance)
		fmt.Printf("   URL:     %s\n", svc.BaseURL())
		if v := svc.GetMetadata("version"); v != "" {
			fmt.Printf("   Version: %s\n", v)
		}
		fmt.Println()
	}

	fmt.Println("Use 'chipi set-server <url>' to save one as the default")
	return nil
}

// setServerCmd persists the backend URL in the config file
var setServerCmd = &cobra.Command{
	Use:     "set-server <url>",
	Short:   "Save the backend URL as the default",
	Example: `  chipi set-server http://192.168.1.20:8600`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSetServer,
}

func runSetServer(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.ServerURL = args[0]
	if err := settings.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("Saved backend URL %s to %s\n", args[0], path)
	return nil
}
