package wire

import "errors"

// Decoding errors. Each malformed-input condition has its own sentinel so
// callers can tell truncated input apart from corrupt input apart from a
// nesting bomb with errors.Is. Reader methods wrap these with positional
// detail where it helps.
var (
	// ErrUnexpectedEOF means the input ended in the middle of a field.
	ErrUnexpectedEOF = errors.New("input ended unexpectedly in the middle of a field")

	// ErrMalformedVarint means a varint ran past its maximum byte budget
	// without a terminating byte.
	ErrMalformedVarint = errors.New("malformed varint")

	// ErrNegativeLength means a length-delimited prefix decoded to a
	// negative size.
	ErrNegativeLength = errors.New("encountered a negative length")

	// ErrZeroTag means a field tag decoded to zero, which the format
	// reserves; it usually signals corrupt or misframed input.
	ErrZeroTag = errors.New("message contained an invalid tag (zero)")

	// ErrInvalidWireType means a tag carried a wire type code outside the
	// six known values.
	ErrInvalidWireType = errors.New("invalid wire type")

	// ErrGroupMismatch means an end-group tag did not match the field
	// number of the group being skipped.
	ErrGroupMismatch = errors.New("end-group tag did not match expected tag")

	// ErrFramingMismatch means a length-delimited section was closed
	// before its declared bytes were fully consumed, or after too many.
	ErrFramingMismatch = errors.New("length-delimited section not fully consumed")

	// ErrRecursionLimit means more nested sections were opened than the
	// reader allows.
	ErrRecursionLimit = errors.New("recursion limit exceeded")
)
