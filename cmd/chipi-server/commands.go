package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chipi-ai/chipi/internal/assistant"
	"github.com/chipi-ai/chipi/internal/server"
)

var (
	listenAddr string
	dataDir    string
	announce   bool
	modelName  string

	tailServer string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&listenAddr, "addr", ":8600", "Listen address")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ./data)")
	rootCmd.PersistentFlags().BoolVar(&announce, "announce", false, "Announce the server on the local network via mDNS")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Chat model name (default: "+assistant.DefaultModel+")")

	rootCmd.AddCommand(tailCmd)
}

// apiKeyFromEnv reads the model API key. A .env file in the working
// directory is honored so the key never has to live in shell history.
func apiKeyFromEnv() string {
	_ = godotenv.Load()

	if key := os.Getenv("CHIPI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENROUTER_API_KEY")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := dataDir
	if dir == "" {
		dir = "data"
	}

	srv, err := server.New(server.Options{
		Addr:     listenAddr,
		UserFile: filepath.Join(dir, "users.json"),
		Assistant: assistant.Config{
			APIKey: apiKeyFromEnv(),
			Model:  modelName,
		},
		Announce: announce,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(cmd.Context())
}

// tailCmd streams debug events from a running server
var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Stream debug events from a running server",
	Long: `Connect to a running chipi-server and print its debug events:
logins, registrations and message traffic (metadata only, never
message bodies).`,
	Example: `  # Tail the local server
  chipi-server tail

  # Tail a server on another machine
  chipi-server tail --server http://192.168.1.20:8600`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVar(&tailServer, "server", "http://localhost:8600", "Server base URL")
}

func runTail(cmd *cobra.Command, args []string) error {
	wsURL, err := eventsURL(tailServer)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	fmt.Printf("Connected to %s, streaming events (ctrl+c to stop)...\n\n", tailServer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var ev server.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}
		line := fmt.Sprintf("%s  %-18s", ev.Time.Local().Format("15:04:05"), ev.Kind)
		if ev.Phone != "" {
			line += "  phone=" + ev.Phone
		}
		if ev.Detail != "" {
			line += "  " + ev.Detail
		}
		fmt.Println(line)
	}
}

// eventsURL converts a server base URL into the websocket events URL.
func eventsURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", base, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL scheme %q (want http or https)", u.Scheme)
	}
	u.Path = "/debug/events"
	return u.String(), nil
}
