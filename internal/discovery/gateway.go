package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Gateway represents a discovered decode gateway on the network
type Gateway struct {
	// Instance is the mDNS service instance name (e.g., "cayenne-gw-kitchen")
	Instance string

	// Hostname is the mDNS hostname (e.g., "kitchen-pi.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.4.16")
	IP string

	// Port is the HTTP port (typically 8077)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=v1.2.3"
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the gateway
func (g *Gateway) String() string {
	return fmt.Sprintf("Cayenne Gateway %s (%s) at %s:%d", g.Instance, strings.TrimSuffix(g.Hostname, "."), g.IP, g.Port)
}

// BaseURL returns the HTTP base URL for the gateway
func (g *Gateway) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", g.IP, g.Port)
}

// StreamURL returns the WebSocket URL of the gateway's decoded payload
// stream.
func (g *Gateway) StreamURL() string {
	return fmt.Sprintf("ws://%s:%d/v1/stream", g.IP, g.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (g *Gateway) GetMetadata(key string) string {
	if g.Metadata == nil {
		return ""
	}
	return g.Metadata[key]
}
