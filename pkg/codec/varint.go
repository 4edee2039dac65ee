package codec

import (
	"fmt"
	"math/bits"
)

// MaxUvarintLen is the longest LEB128 encoding of a uint64.
const MaxUvarintLen = 10

// UvarintSize returns the number of bytes EncodeUvarint(v) produces.
func UvarintSize(v uint64) int {
	return (bits.Len64(v|1) + 6) / 7
}

// AppendUvarint appends the unsigned LEB128 encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// EncodeUvarint returns the unsigned LEB128 encoding of v.
func EncodeUvarint(v uint64) []byte {
	return AppendUvarint(make([]byte, 0, UvarintSize(v)), v)
}

// DecodeUvarint reads an unsigned LEB128 value from the front of data.
//
// It fails with ErrTruncated when data ends before a byte without the continuation bit, and with
// ErrMalformed when the value does not fit in 64 bits.
func DecodeUvarint(data []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range data {
		if i == MaxUvarintLen-1 && b > 1 {
			return 0, 0, fmt.Errorf("varint exceeds 64 bits: %w", ErrMalformed)
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("varint without terminating byte after %d bytes: %w", len(data), ErrTruncated)
}

// decodeLength reads a varint length or count that must fit in the remaining bytes of data.
func decodeLength(data []byte, what string) (int, int, error) {
	v, n, err := DecodeUvarint(data)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", what, err)
	}
	if v > uint64(len(data)-n) {
		return 0, 0, fmt.Errorf("%s %d exceeds remaining %d bytes: %w", what, v, len(data)-n, ErrTruncated)
	}
	return int(v), n, nil
}

type uvarintCodec struct{}

// Uvarint returns the unsigned LEB128 codec.
func Uvarint() Codec[uint64] {
	return uvarintCodec{}
}

func (uvarintCodec) Stride() Stride {
	return Variable()
}

func (uvarintCodec) Encode(v uint64) ([]byte, error) {
	return EncodeUvarint(v), nil
}

func (uvarintCodec) Decode(data []byte) (uint64, int, error) {
	return DecodeUvarint(data)
}
