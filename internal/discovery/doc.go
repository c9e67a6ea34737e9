// Package discovery provides mDNS-based discovery of Cayenne decode gateways.
//
// Gateways advertise themselves on the local network as "_cayenne-gw._tcp"
// service instances. Clients such as cayenne-watch use the scanner to find
// a gateway without configuration.
//
// # Usage Example
//
//	// Discover gateways with the default 10-second timeout
//	gateways, err := discovery.NewScanner().ScanForGateways()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, gw := range gateways {
//	    fmt.Printf("Found: %s\n", gw)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Gateway and client must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
