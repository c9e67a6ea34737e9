package lpp

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Decoder turns raw Cayenne LPP payloads into structured documents.
// Each decoder owns an independent registry preloaded with the standard
// type table; custom-type registrations on one decoder are never visible
// to another.
//
// Decode is safe to call concurrently as long as no AddCustomType or
// RemoveCustomType call runs at the same time.
type Decoder struct {
	registry *Registry
}

// NewDecoder creates a decoder with a fresh standard-type registry.
func NewDecoder() *Decoder {
	return &Decoder{
		registry: NewRegistry(),
	}
}

// Decode parses a payload of repeated [channel][type][value...] records
// into a document keyed by "{name}_{channel}". Decoding is all-or-nothing:
// the first malformed or unknown field aborts the whole call and no
// partial document is returned.
func (d *Decoder) Decode(payload []byte) (*Document, error) {
	if len(payload) == 0 {
		return nil, ErrPayloadEmpty
	}

	doc := NewDocument()
	cursor := 0

	for cursor+2 <= len(payload) {
		channel := payload[cursor]
		typeID := payload[cursor+1]
		cursor += 2

		dt, exists := d.registry.Lookup(typeID)
		if !exists {
			return nil, fmt.Errorf("offset %d: type 0x%02x: %w", cursor-1, typeID, ErrUnknownDataType)
		}

		if cursor+dt.Size > len(payload) {
			return nil, fmt.Errorf("offset %d: %s needs %d value bytes, %d remain: %w",
				cursor, dt.Name, dt.Size, len(payload)-cursor, ErrBadPayloadFormat)
		}

		data := payload[cursor : cursor+dt.Size]
		cursor += dt.Size
		key := dt.Name + "_" + strconv.Itoa(int(channel))

		if !dt.Standard {
			if dt.Decode == nil {
				return nil, fmt.Errorf("custom type 0x%02x has no decode function: %w", typeID, ErrUnexpected)
			}
			doc.Set(key, dt.Decode(data))
			continue
		}

		doc.Set(key, decodeStandard(typeID, data))
	}

	// 0 or 1 leftover bytes cannot form another channel+type pair
	if cursor != len(payload) {
		return nil, fmt.Errorf("%d trailing bytes after last record: %w", len(payload)-cursor, ErrBadPayloadFormat)
	}

	return doc, nil
}

// AddCustomType registers a custom field type on this decoder. It returns
// false without side effects if the id is already registered (standard or
// custom), fn is nil, or size is less than 1.
func (d *Decoder) AddCustomType(id byte, name string, size int, fn DecodeFunc) bool {
	return d.registry.Register(id, name, size, fn)
}

// HasType reports whether a descriptor, standard or custom, is registered
// for id on this decoder.
func (d *Decoder) HasType(id byte) bool {
	return d.registry.Contains(id)
}

// RemoveCustomType removes a custom type from this decoder. It returns
// false for standard ids and for ids that are not registered.
func (d *Decoder) RemoveCustomType(id byte) bool {
	return d.registry.Unregister(id)
}

// Types returns every descriptor registered on this decoder in ascending
// id order.
func (d *Decoder) Types() []DataType {
	return d.registry.Types()
}

// decodeStandard dispatches a value slice to the builtin conversion for
// the given standard type id. The slice length equals the type's size.
func decodeStandard(typeID byte, data []byte) any {
	switch typeID {
	case TypeDigitalInput, TypeDigitalOutput, TypePresence:
		return int64(data[0])
	case TypeAnalogInput, TypeAnalogOutput:
		return float64(int16BE(data)) / 100.0
	case TypeLuminosity:
		return int64(uint16BE(data))
	case TypeTemperature:
		return float64(int16BE(data)) / 10.0
	case TypeHumidity, TypeBarometer:
		return float64(uint16BE(data)) / 10.0
	case TypeAccelerometer:
		return decodeVector(data, 1000.0)
	case TypeGyrometer:
		return decodeVector(data, 100.0)
	case TypeGPS:
		return decodeGPS(data)
	default:
		// Unreachable: the standard table and this switch cover the same ids.
		return nil
	}
}

// decodeVector decodes three big-endian signed 16-bit fields scaled by
// divisor into an {x, y, z} document.
func decodeVector(data []byte, divisor float64) *Document {
	doc := NewDocument()
	doc.Set("x", float64(int16BE(data[0:2]))/divisor)
	doc.Set("y", float64(int16BE(data[2:4]))/divisor)
	doc.Set("z", float64(int16BE(data[4:6]))/divisor)
	return doc
}

// decodeGPS decodes three big-endian signed 24-bit fields: latitude and
// longitude in 0.0001 degree units, altitude in 0.01 meter units.
func decodeGPS(data []byte) *Document {
	doc := NewDocument()
	doc.Set("latitude", float64(int24BE(data[0:3]))/10000.0)
	doc.Set("longitude", float64(int24BE(data[3:6]))/10000.0)
	doc.Set("altitude", float64(int24BE(data[6:9]))/100.0)
	return doc
}

// uint16BE reads a big-endian unsigned 16-bit value.
func uint16BE(data []byte) uint16 {
	return binary.BigEndian.Uint16(data)
}

// int16BE reads a big-endian 16-bit value as signed two's-complement.
func int16BE(data []byte) int16 {
	return int16(binary.BigEndian.Uint16(data))
}

// uint24BE reads a big-endian unsigned 24-bit value.
func uint24BE(data []byte) uint32 {
	return uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
}

// int24BE reads a big-endian 24-bit value as signed two's-complement.
func int24BE(data []byte) int32 {
	value := uint24BE(data)
	if value > 0x7FFFFF {
		return int32(value) - 0x1000000
	}
	return int32(value)
}
