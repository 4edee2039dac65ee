package codec

import "fmt"

// Codec encodes and decodes values of type T.
//
// Encode returns a new slice holding exactly the encoding of v. Decode reads one value from the
// front of data and returns it together with the number of bytes consumed; it never reads past
// the end of data. Byte slices in decoded values may alias data.
type Codec[T any] interface {
	Stride() Stride
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, int, error)
}

// DecodeAll decodes a single value that must span the whole of data.
func DecodeAll[T any](c Codec[T], data []byte) (T, error) {
	v, n, err := c.Decode(data)
	if err != nil {
		return v, err
	}
	if n != len(data) {
		var zero T
		return zero, fmt.Errorf("%d of %d bytes consumed: %w", n, len(data), ErrTrailingBytes)
	}
	return v, nil
}

// need fails with ErrTruncated when data holds fewer than n bytes.
func need(data []byte, n int, what string) error {
	if len(data) < n {
		return fmt.Errorf("%s needs %d bytes, have %d: %w", what, n, len(data), ErrTruncated)
	}
	return nil
}
