package config

import (
	"fmt"

	"github.com/muurk/cayenne/lpp"
)

// CustomType declares a proprietary LPP field type in the configuration
// file. The declaration is compiled into a decode function and registered
// on the gateway's decoder at startup.
//
// The wire value is read as a big-endian integer of Size bytes,
// optionally reinterpreted as signed two's-complement, and divided by
// Scale. With the default scale of 1 an unsigned value decodes to an
// integer; any other scale yields a float.
type CustomType struct {
	ID     uint8   `yaml:"id"`
	Name   string  `yaml:"name"`
	Size   int     `yaml:"size"`
	Signed bool    `yaml:"signed,omitempty"`
	Scale  float64 `yaml:"scale,omitempty"` // divisor, defaults to 1
}

// Validate checks the declaration against the limits of the compiled
// decode function.
func (ct *CustomType) Validate() error {
	if ct.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if ct.Size < 1 || ct.Size > 8 {
		return fmt.Errorf("size must be between 1 and 8 bytes, got %d", ct.Size)
	}

	if ct.Scale < 0 {
		return fmt.Errorf("scale cannot be negative, got %v", ct.Scale)
	}

	return nil
}

// DecodeFunc compiles the declaration into an lpp decode function.
func (ct *CustomType) DecodeFunc() lpp.DecodeFunc {
	size := ct.Size
	signed := ct.Signed
	scale := ct.Scale
	if scale == 0 {
		scale = 1
	}

	return func(data []byte) any {
		var raw uint64
		for _, b := range data[:size] {
			raw = raw<<8 | uint64(b)
		}

		if signed {
			// Sign-extend a size*8 bit two's-complement value
			bits := uint(size) * 8
			if bits < 64 && raw > (1<<(bits-1))-1 {
				value := int64(raw) - int64(1)<<bits
				if scale == 1 {
					return value
				}
				return float64(value) / scale
			}
			if scale == 1 {
				return int64(raw)
			}
			return float64(int64(raw)) / scale
		}

		if scale == 1 {
			return int64(raw)
		}
		return float64(raw) / scale
	}
}

// RegisterCustomTypes registers every declared custom type on the
// decoder. It fails on the first declaration the decoder rejects, which
// in practice means an id collision with the standard table.
func RegisterCustomTypes(decoder *lpp.Decoder, types []CustomType) error {
	for _, ct := range types {
		if !decoder.AddCustomType(ct.ID, ct.Name, ct.Size, ct.DecodeFunc()) {
			return fmt.Errorf("cannot register custom type %q: id 0x%02x already taken", ct.Name, ct.ID)
		}
	}
	return nil
}
