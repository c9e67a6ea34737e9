package lpp

import "fmt"

// Standard Cayenne LPP v1 type identifiers (IPSO object based)
const (
	TypeDigitalInput  = 0x00
	TypeDigitalOutput = 0x01
	TypeAnalogInput   = 0x02
	TypeAnalogOutput  = 0x03
	TypeLuminosity    = 0x65
	TypePresence      = 0x66
	TypeTemperature   = 0x67
	TypeHumidity      = 0x68
	TypeAccelerometer = 0x71
	TypeBarometer     = 0x73
	TypeGyrometer     = 0x86
	TypeGPS           = 0x88
)

// DecodeFunc converts a value slice into a document value. The slice
// length always equals the registered size for the type; implementations
// must not re-validate it. The returned value may be any type the
// Document model supports, including a nested *Document.
type DecodeFunc func(data []byte) any

// DataType describes a single field type: how it is identified on the
// wire, how many payload bytes it consumes, and how it is decoded.
// Standard types are decoded by the builtin conversion library and carry
// a nil Decode; custom types always carry a caller-supplied Decode.
type DataType struct {
	ID       byte
	Name     string
	Size     int
	Standard bool
	Decode   DecodeFunc
}

// String returns a human-readable representation of the descriptor.
func (dt DataType) String() string {
	origin := "custom"
	if dt.Standard {
		origin = "standard"
	}
	return fmt.Sprintf("DataType{id=0x%02x, name=%q, size=%d, %s}", dt.ID, dt.Name, dt.Size, origin)
}

// standardTypes returns the fixed Cayenne LPP v1 table. A fresh slice is
// returned so each registry owns independent descriptors.
func standardTypes() []DataType {
	return []DataType{
		{ID: TypeDigitalInput, Name: "Digital Input", Size: 1, Standard: true},
		{ID: TypeDigitalOutput, Name: "Digital Output", Size: 1, Standard: true},
		{ID: TypeAnalogInput, Name: "Analog Input", Size: 2, Standard: true},
		{ID: TypeAnalogOutput, Name: "Analog Output", Size: 2, Standard: true},
		{ID: TypeLuminosity, Name: "Luminosity", Size: 2, Standard: true},
		{ID: TypePresence, Name: "Presence", Size: 1, Standard: true},
		{ID: TypeTemperature, Name: "Temperature", Size: 2, Standard: true},
		{ID: TypeHumidity, Name: "Humidity", Size: 2, Standard: true},
		{ID: TypeAccelerometer, Name: "Accelerometer", Size: 6, Standard: true},
		{ID: TypeBarometer, Name: "Barometer", Size: 2, Standard: true},
		{ID: TypeGyrometer, Name: "Gyrometer", Size: 6, Standard: true},
		{ID: TypeGPS, Name: "GPS", Size: 9, Standard: true},
	}
}
