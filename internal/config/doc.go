// Package config loads and validates the gateway configuration file.
//
// Configuration is a single YAML document covering the HTTP/WebSocket
// listener, mDNS advertisement, logging, and declarative custom LPP
// types. A missing file yields the defaults, so a gateway can run with
// no configuration at all.
//
// # Custom Types
//
// Proprietary sensor types can be declared in the file instead of code:
//
//	custom_types:
//	  - id: 0xF0
//	    name: BatteryVoltage
//	    size: 2
//	    scale: 1000
//	  - id: 0xF3
//	    name: PowerConsumption
//	    size: 4
//	    signed: true
//
// Each declaration is compiled into a big-endian integer decode with
// optional sign extension and scaling, and registered on the gateway's
// decoder at startup.
package config
