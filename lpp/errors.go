package lpp

import "errors"

// Decode error kinds. Decode wraps these with positional context, so
// callers should match them with errors.Is rather than direct comparison.
var (
	// ErrPayloadEmpty is returned when Decode is given a zero-length payload.
	ErrPayloadEmpty = errors.New("payload is empty")

	// ErrUnknownDataType is returned when a payload references a type id
	// that has no registered descriptor.
	ErrUnknownDataType = errors.New("unknown data type")

	// ErrBadPayloadFormat is returned when a field would read past the end
	// of the payload, or when trailing bytes remain after the last complete
	// record.
	ErrBadPayloadFormat = errors.New("bad payload format")

	// ErrUnexpected signals an internal invariant violation, such as a
	// custom descriptor without a decode function. It should never occur
	// in normal operation.
	ErrUnexpected = errors.New("unexpected internal error")
)
