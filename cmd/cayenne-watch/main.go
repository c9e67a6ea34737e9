// Cayenne-watch is a live terminal monitor for Cayenne decode gateways.
//
// It finds a gateway on the local network over mDNS (or connects to an
// address given with --gateway), subscribes to the gateway's decoded
// payload stream, and shows the latest reading for every sensor in a
// full-screen terminal UI.
//
// Usage:
//
//	cayenne-watch [flags]
//
// See 'cayenne-watch --help' for available options.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/cayenne/internal/discovery"
	"github.com/muurk/cayenne/internal/ui"
	"github.com/muurk/cayenne/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Watch flags
var (
	gatewayAddr string
	scanTimeout int
)

var rootCmd = &cobra.Command{
	Use:   "cayenne-watch",
	Short: "Cayenne Gateway Live Monitor",
	Long: `Watch decoded sensor payloads from a Cayenne decode gateway in real time.

Without flags, the first gateway advertising itself over mDNS is used.
Pass --gateway to connect to a known address and skip discovery.`,
	Version: version.Version,
	Example: `  # Discover a gateway and watch it
  cayenne-watch

  # Watch a known gateway
  cayenne-watch --gateway 192.168.4.16:8077

  # Allow more time for discovery on slow networks
  cayenne-watch --timeout 30`,
	RunE: runWatch,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&gatewayAddr, "gateway", "", "Gateway host:port (skips mDNS discovery)")
	rootCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Discovery timeout in seconds")

	rootCmd.AddCommand(versionCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	name, streamURL, err := resolveGateway()
	if err != nil {
		return err
	}

	model := ui.NewWatchModel(name, streamURL)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("monitor failed: %w", err)
	}
	return nil
}

// resolveGateway returns the display name and stream URL of the gateway
// to watch, from the --gateway flag or mDNS discovery.
func resolveGateway() (name, streamURL string, err error) {
	if gatewayAddr != "" {
		return gatewayAddr, fmt.Sprintf("ws://%s/v1/stream", gatewayAddr), nil
	}

	fmt.Printf("Scanning for gateways (timeout: %ds)...\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	gateway, err := scanner.WaitForGateway()
	if err != nil {
		return "", "", fmt.Errorf("discovery failed: %w (use --gateway to connect directly)", err)
	}

	fmt.Printf("Found %s\n", gateway)
	return gateway.Instance, gateway.StreamURL(), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cayenne-watch %s (commit: %s)\n", version.Version, version.Commit)
	},
}
