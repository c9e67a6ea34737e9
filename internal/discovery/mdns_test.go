package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
	}{
		{
			name: "gateway with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "cayenne-gw-kitchen"},
				HostName:      "kitchen-pi.local.",
				Port:          8077,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
				Text:          []string{"version=v1.2.3", "path=/v1/decode"},
			},
			wantNil:      false,
			wantInstance: "cayenne-gw-kitchen",
			wantIP:       "192.168.4.16",
			wantPort:     8077,
		},
		{
			name: "gateway with custom port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "cayenne-gw-lab"},
				HostName:      "lab.local.",
				Port:          9000,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil:      false,
			wantInstance: "cayenne-gw-lab",
			wantIP:       "10.0.0.5",
			wantPort:     9000,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "cayenne-gw-ghost"},
				HostName:      "ghost.local.",
				Port:          8077,
				AddrIPv4:      []net.IP{},
				AddrIPv6:      []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only gateway",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "cayenne-gw-v6"},
				HostName:      "v6.local.",
				Port:          8077,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:      false,
			wantInstance: "cayenne-gw-v6",
			wantIP:       "fe80::1",
			wantPort:     8077,
		},
		{
			name: "both IPv4 and IPv6 prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "cayenne-gw-dual"},
				HostName:      "dual.local.",
				Port:          8077,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:      false,
			wantInstance: "cayenne-gw-dual",
			wantIP:       "192.168.1.50",
			wantPort:     8077,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if gateway != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", gateway)
				}
				return
			}

			if gateway == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil gateway")
			}

			if gateway.Instance != tt.wantInstance {
				t.Errorf("gateway.Instance = %v, want %v", gateway.Instance, tt.wantInstance)
			}

			if gateway.IP != tt.wantIP {
				t.Errorf("gateway.IP = %v, want %v", gateway.IP, tt.wantIP)
			}

			if gateway.Port != tt.wantPort {
				t.Errorf("gateway.Port = %v, want %v", gateway.Port, tt.wantPort)
			}

			if time.Since(gateway.DiscoveredAt) > time.Second {
				t.Errorf("gateway.DiscoveredAt is not recent: %v", gateway.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "cayenne-gw-kitchen"},
		HostName:      "kitchen-pi.local.",
		Port:          8077,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
		Text:          []string{"version=v1.2.3", "path=/v1/decode", "flag"},
	}

	gateway := parseServiceEntry(entry)
	if gateway == nil {
		t.Fatal("parseServiceEntry() = nil, want gateway")
	}

	expectedMetadata := map[string]string{
		"version": "v1.2.3",
		"path":    "/v1/decode",
		"flag":    "", // Key without value
	}

	if len(gateway.Metadata) != len(expectedMetadata) {
		t.Errorf("gateway.Metadata has %d entries, want %d", len(gateway.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := gateway.Metadata[key]; !ok {
			t.Errorf("gateway.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("gateway.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
