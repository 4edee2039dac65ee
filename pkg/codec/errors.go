package codec

import "errors"

var (
	// ErrRange reports a value that does not fit the declared width or size of a codec.
	ErrRange = errors.New("codec: value out of range")
	// ErrTruncated reports input that ends before the value is complete.
	ErrTruncated = errors.New("codec: truncated input")
	// ErrMalformed reports structurally invalid input.
	ErrMalformed = errors.New("codec: malformed input")
	// ErrUnknownVariant reports an enum tag or variant name outside the schema.
	ErrUnknownVariant = errors.New("codec: unknown enum variant")
	// ErrCountMismatch reports a declared element count that the data cannot satisfy.
	ErrCountMismatch = errors.New("codec: count mismatch")
	// ErrTrailingBytes reports bytes left over after a full decode.
	ErrTrailingBytes = errors.New("codec: trailing bytes")
	// ErrType reports a value of the wrong Go type handed to a dynamic codec.
	ErrType = errors.New("codec: unexpected value type")
	// ErrSchema reports an invalid schema definition.
	ErrSchema = errors.New("codec: invalid schema")
)
