// Cayenne-decode is a command line decoder for Cayenne LPP payloads.
//
// It reads a payload from its arguments or from standard input, decodes
// it using the standard LPP type table plus any types declared with
// --type, and prints the resulting JSON document.
//
// Usage:
//
//	cayenne-decode [payload-hex...] [flags]
//
// See 'cayenne-decode --help' for available options.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/cayenne/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Decode flags
var (
	typeFlags []string
	binary    bool
	compact   bool
)

var rootCmd = &cobra.Command{
	Use:   "cayenne-decode [payload-hex...]",
	Short: "Cayenne LPP Payload Decoder",
	Long: `Decode Cayenne LPP sensor payloads to JSON on the command line.

The payload is given as hex arguments, or piped on standard input as
hex text (or raw bytes with --binary). Custom sensor types can be
declared with the repeatable --type flag.`,
	Version: version.Version,
	Example: `  # Decode a temperature reading (channel 1, 27.2 C)
  cayenne-decode 01 67 01 10

  # Decode from a pipe
  echo "03 67 01 10 05 67 00 FF" | cayenne-decode

  # Decode raw bytes from a file
  cayenne-decode --binary < payload.bin

  # Declare a custom type: id 0xF0, 2 bytes, unsigned, divide by 1000
  cayenne-decode --type 0xF0:BatteryVoltage:2:unsigned:1000 -- 01 F0 0E 74`,
	RunE: runDecode,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringArrayVar(&typeFlags, "type", nil,
		"Custom type declaration as id:name:size[:signed|unsigned[:scale]] (repeatable)")
	rootCmd.Flags().BoolVar(&binary, "binary", false, "Read raw payload bytes from stdin instead of hex text")
	rootCmd.Flags().BoolVar(&compact, "compact", false, "Print compact JSON on one line")

	rootCmd.AddCommand(versionCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	payload, err := readPayload(args)
	if err != nil {
		return err
	}

	decoder, err := buildDecoder(typeFlags)
	if err != nil {
		return err
	}

	doc, err := decoder.Decode(payload)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	out, err := renderDocument(doc, compact)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// readPayload assembles the payload from arguments or standard input.
func readPayload(args []string) ([]byte, error) {
	if len(args) > 0 {
		return parseHex(args)
	}

	// No arguments: read from stdin, but only when something is piped in.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no payload: pass hex bytes as arguments or pipe them on stdin")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	if binary {
		return data, nil
	}
	return parseHex([]string{string(data)})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cayenne-decode %s (commit: %s)\n", version.Version, version.Commit)
	},
}
