package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/cayenne/internal/config"
	"github.com/muurk/cayenne/lpp"
)

// parseHex parses hex payload fragments, ignoring whitespace between and
// within them.
func parseHex(fragments []string) ([]byte, error) {
	var cleaned strings.Builder
	for _, frag := range fragments {
		for _, r := range frag {
			switch r {
			case ' ', '\t', '\r', '\n', ',':
				continue
			default:
				cleaned.WriteRune(r)
			}
		}
	}

	payload, err := hex.DecodeString(cleaned.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex payload: %w", err)
	}
	return payload, nil
}

// buildDecoder creates a decoder preloaded with the standard table plus
// the types declared on the command line.
func buildDecoder(flags []string) (*lpp.Decoder, error) {
	decoder := lpp.NewDecoder()

	var types []config.CustomType
	for _, flag := range flags {
		ct, err := parseTypeFlag(flag)
		if err != nil {
			return nil, fmt.Errorf("bad --type %q: %w", flag, err)
		}
		types = append(types, ct)
	}

	if err := config.RegisterCustomTypes(decoder, types); err != nil {
		return nil, err
	}
	return decoder, nil
}

// parseTypeFlag parses a custom type declaration of the form
// id:name:size[:signed|unsigned[:scale]].
func parseTypeFlag(s string) (config.CustomType, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 5 {
		return config.CustomType{}, fmt.Errorf("want id:name:size[:signed|unsigned[:scale]]")
	}

	id, err := strconv.ParseUint(parts[0], 0, 8)
	if err != nil {
		return config.CustomType{}, fmt.Errorf("invalid type id %q", parts[0])
	}

	name := parts[1]
	if name == "" {
		return config.CustomType{}, fmt.Errorf("name cannot be empty")
	}

	size, err := strconv.Atoi(parts[2])
	if err != nil {
		return config.CustomType{}, fmt.Errorf("invalid size %q", parts[2])
	}

	ct := config.CustomType{
		ID:   uint8(id),
		Name: name,
		Size: size,
	}

	if len(parts) >= 4 {
		switch parts[3] {
		case "signed":
			ct.Signed = true
		case "unsigned":
		default:
			return config.CustomType{}, fmt.Errorf("signedness must be \"signed\" or \"unsigned\", got %q", parts[3])
		}
	}

	if len(parts) == 5 {
		scale, err := strconv.ParseFloat(parts[4], 64)
		if err != nil {
			return config.CustomType{}, fmt.Errorf("invalid scale %q", parts[4])
		}
		ct.Scale = scale
	}

	if err := ct.Validate(); err != nil {
		return config.CustomType{}, err
	}
	return ct, nil
}

// renderDocument formats the decoded document, preserving record order.
func renderDocument(doc *lpp.Document, compact bool) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	if compact {
		return string(raw), nil
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format document: %w", err)
	}
	return indented.String(), nil
}
