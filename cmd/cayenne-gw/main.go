// Cayenne-gw is the Cayenne LPP decode gateway.
//
// It serves an HTTP API for decoding LPP sensor payloads, streams every
// decoded payload to WebSocket subscribers, exposes Prometheus metrics,
// and advertises itself on the local network over mDNS so that clients
// like cayenne-watch can find it without configuration.
//
// Usage:
//
//	cayenne-gw serve [flags]
//
// See 'cayenne-gw serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/cayenne/internal/config"
	"github.com/muurk/cayenne/internal/gateway"
	"github.com/muurk/cayenne/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cayenne-gw",
	Short: "Cayenne LPP Decode Gateway",
	Long: `A network gateway for decoding Cayenne LPP sensor payloads.

The gateway accepts binary or hex-encoded LPP payloads over HTTP,
decodes them to JSON documents, and streams every decoded payload to
WebSocket subscribers. Custom sensor types can be declared in the
configuration file without code changes.

Note: For one-off decoding on the command line, use the separate
'cayenne-decode' utility. For live monitoring, use 'cayenne-watch'.`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	configPath string
	bindAddr   string
	port       int
	logLevel   string
	noMDNS     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the decode gateway",
	Long: `Start the gateway and serve the decode API.

Configuration is read from the YAML file given with --config; a missing
file means defaults. Command line flags override the file.`,
	Example: `  # Start with defaults (port 8077, mDNS on)
  cayenne-gw serve

  # Start with a configuration file declaring custom types
  cayenne-gw serve --config /etc/cayenne/gateway.yaml

  # Start on a custom port with debug logging
  cayenne-gw serve --port 9000 --log-level debug

  # Start without mDNS advertisement
  cayenne-gw serve --no-mdns`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "gateway.yaml", "Path to configuration file")
	serveCmd.Flags().StringVar(&bindAddr, "bind", "", "Bind address (overrides config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	serveCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Disable mDNS advertisement")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags override file values
	if bindAddr != "" {
		cfg.Gateway.BindAddress = bindAddr
	}
	if port != 0 {
		cfg.Gateway.Port = port
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if noMDNS {
		cfg.Discovery.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s, err := gateway.New(cfg)
	if err != nil {
		return err
	}
	return s.Start()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cayenne-gw %s (commit: %s)\n", version.Version, version.Commit)
	},
}
