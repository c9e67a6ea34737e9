// Package lpp decodes Cayenne LPP (Low Power Payload) sensor telemetry.
//
// Cayenne LPP is a compact binary format used by LoRaWAN and other
// constrained-radio devices. A payload is a flat sequence of records:
//
//	[channel:1][type:1][value:N bytes]
//
// where the value width N is fixed per type. All multi-byte values are
// big-endian; signed values are two's-complement.
//
// # Standard Types
//
// The decoder ships with the twelve Cayenne LPP v1 types:
//
//	0x00 Digital Input   1 byte    raw
//	0x01 Digital Output  1 byte    raw
//	0x02 Analog Input    2 bytes   signed, 0.01 units
//	0x03 Analog Output   2 bytes   signed, 0.01 units
//	0x65 Luminosity      2 bytes   unsigned, lux
//	0x66 Presence        1 byte    raw
//	0x67 Temperature     2 bytes   signed, 0.1 °C
//	0x68 Humidity        2 bytes   unsigned, 0.1 %
//	0x71 Accelerometer   6 bytes   3x signed, 0.001 G
//	0x73 Barometer       2 bytes   unsigned, 0.1 hPa
//	0x86 Gyrometer       6 bytes   3x signed, 0.01 °/s
//	0x88 GPS             9 bytes   3x signed 24-bit: lat/lon 0.0001°, alt 0.01 m
//
// # Usage
//
//	decoder := lpp.NewDecoder()
//	doc, err := decoder.Decode([]byte{0x01, 0x67, 0x01, 0x10})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// doc => {"Temperature_1": 27.2}
//
// # Custom Types
//
// Proprietary sensor types can be registered per decoder instance:
//
//	decoder.AddCustomType(0xF0, "BatteryVoltage", 2, func(data []byte) any {
//	    return float64(binary.BigEndian.Uint16(data)) / 1000.0
//	})
//
// Custom ids must not collide with the standard table; registration on a
// taken id returns false and changes nothing. Standard types can never be
// removed or overwritten. Each decoder owns an independent registry, so
// registrations never leak between instances.
//
// # Error Handling
//
// Decode is strict and all-or-nothing: an empty payload, an unknown type
// id, a truncated value or trailing garbage abort the whole call with an
// error wrapping ErrPayloadEmpty, ErrUnknownDataType or
// ErrBadPayloadFormat. No partial document is ever returned, so a
// consumer cannot mistake a corrupted stream for a complete one.
//
// # Thread Safety
//
// Decode performs no I/O and holds no shared state beyond the decoder's
// own registry. Concurrent decodes against a decoder that is not being
// mutated are safe; AddCustomType and RemoveCustomType require external
// synchronization.
package lpp
