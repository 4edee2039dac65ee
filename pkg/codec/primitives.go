package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

type (
	atLeast8Unsigned interface {
		~uint8 | ~uint16 | ~uint32 | ~uint64
	}
	atLeast16Unsigned interface{ ~uint16 | ~uint32 | ~uint64 }
	atLeast32Unsigned interface{ ~uint32 | ~uint64 }
	atLeast64Unsigned interface{ ~uint64 }

	atLeast8Signed interface {
		~int8 | ~int16 | ~int32 | ~int64
	}
	atLeast16Signed interface{ ~int16 | ~int32 | ~int64 }
	atLeast32Signed interface{ ~int32 | ~int64 }
	atLeast64Signed interface{ ~int64 }
)

// Uint8 encodes an unsigned integer as 1 byte.
func Uint8[T atLeast8Unsigned]() Codec[T] { return uintCodec[T]{width: 1} }

// Uint16 encodes an unsigned integer as 2 little-endian bytes.
func Uint16[T atLeast16Unsigned]() Codec[T] { return uintCodec[T]{width: 2} }

// Uint24 encodes an unsigned integer as 3 little-endian bytes.
func Uint24[T atLeast32Unsigned]() Codec[T] { return uintCodec[T]{width: 3} }

// Uint32 encodes an unsigned integer as 4 little-endian bytes.
func Uint32[T atLeast32Unsigned]() Codec[T] { return uintCodec[T]{width: 4} }

// Uint48 encodes an unsigned integer as 6 little-endian bytes.
func Uint48[T atLeast64Unsigned]() Codec[T] { return uintCodec[T]{width: 6} }

// Uint56 encodes an unsigned integer as 7 little-endian bytes.
func Uint56[T atLeast64Unsigned]() Codec[T] { return uintCodec[T]{width: 7} }

// Uint64 encodes an unsigned integer as 8 little-endian bytes.
func Uint64[T atLeast64Unsigned]() Codec[T] { return uintCodec[T]{width: 8} }

// Int8 encodes a signed integer as 1 byte.
func Int8[T atLeast8Signed]() Codec[T] { return intCodec[T]{width: 1} }

// Int16 encodes a signed integer as 2 little-endian two's complement bytes.
func Int16[T atLeast16Signed]() Codec[T] { return intCodec[T]{width: 2} }

// Int24 encodes a signed integer as 3 little-endian two's complement bytes.
func Int24[T atLeast32Signed]() Codec[T] { return intCodec[T]{width: 3} }

// Int32 encodes a signed integer as 4 little-endian two's complement bytes.
func Int32[T atLeast32Signed]() Codec[T] { return intCodec[T]{width: 4} }

// Int48 encodes a signed integer as 6 little-endian two's complement bytes.
func Int48[T atLeast64Signed]() Codec[T] { return intCodec[T]{width: 6} }

// Int56 encodes a signed integer as 7 little-endian two's complement bytes.
func Int56[T atLeast64Signed]() Codec[T] { return intCodec[T]{width: 7} }

// Int64 encodes a signed integer as 8 little-endian two's complement bytes.
func Int64[T atLeast64Signed]() Codec[T] { return intCodec[T]{width: 8} }

type uintCodec[T atLeast8Unsigned] struct {
	width int
}

func (c uintCodec[T]) Stride() Stride {
	return Fixed(c.width)
}

func (c uintCodec[T]) Encode(v T) ([]byte, error) {
	u := uint64(v)
	if c.width < 8 && u>>(8*c.width) != 0 {
		return nil, fmt.Errorf("u%d value %d: %w", 8*c.width, u, ErrRange)
	}
	out := make([]byte, c.width)
	for i := range out {
		out[i] = byte(u >> (8 * i))
	}
	return out, nil
}

func (c uintCodec[T]) Decode(data []byte) (T, int, error) {
	if err := need(data, c.width, fmt.Sprintf("u%d", 8*c.width)); err != nil {
		return 0, 0, err
	}
	var u uint64
	for i := 0; i < c.width; i++ {
		u |= uint64(data[i]) << (8 * i)
	}
	return T(u), c.width, nil
}

type intCodec[T atLeast8Signed] struct {
	width int
}

func (c intCodec[T]) Stride() Stride {
	return Fixed(c.width)
}

func (c intCodec[T]) Encode(v T) ([]byte, error) {
	x := int64(v)
	if c.width < 8 {
		limit := int64(1) << (8*c.width - 1)
		if x < -limit || x >= limit {
			return nil, fmt.Errorf("i%d value %d: %w", 8*c.width, x, ErrRange)
		}
	}
	u := uint64(x)
	out := make([]byte, c.width)
	for i := range out {
		out[i] = byte(u >> (8 * i))
	}
	return out, nil
}

func (c intCodec[T]) Decode(data []byte) (T, int, error) {
	if err := need(data, c.width, fmt.Sprintf("i%d", 8*c.width)); err != nil {
		return 0, 0, err
	}
	var u uint64
	for i := 0; i < c.width; i++ {
		u |= uint64(data[i]) << (8 * i)
	}
	shift := 64 - 8*c.width
	return T(int64(u<<shift) >> shift), c.width, nil
}

type boolCodec struct{}

// Bool encodes false as 0x00 and true as 0x01. Other bytes fail to decode with ErrMalformed.
func Bool() Codec[bool] {
	return boolCodec{}
}

func (boolCodec) Stride() Stride {
	return Fixed(1)
}

func (boolCodec) Encode(v bool) ([]byte, error) {
	if v {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (boolCodec) Decode(data []byte) (bool, int, error) {
	if err := need(data, 1, "bool"); err != nil {
		return false, 0, err
	}
	switch data[0] {
	case 0:
		return false, 1, nil
	case 1:
		return true, 1, nil
	default:
		return false, 0, fmt.Errorf("bool byte %#02x: %w", data[0], ErrMalformed)
	}
}

type float32Codec struct{}

// Float32 encodes an IEEE 754 single as 4 little-endian bytes.
func Float32() Codec[float32] {
	return float32Codec{}
}

func (float32Codec) Stride() Stride {
	return Fixed(4)
}

func (float32Codec) Encode(v float32) ([]byte, error) {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), math.Float32bits(v)), nil
}

func (float32Codec) Decode(data []byte) (float32, int, error) {
	if err := need(data, 4, "f32"); err != nil {
		return 0, 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(data)), 4, nil
}

type float64Codec struct{}

// Float64 encodes an IEEE 754 double as 8 little-endian bytes.
func Float64() Codec[float64] {
	return float64Codec{}
}

func (float64Codec) Stride() Stride {
	return Fixed(8)
}

func (float64Codec) Encode(v float64) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, 8), math.Float64bits(v)), nil
}

func (float64Codec) Decode(data []byte) (float64, int, error) {
	if err := need(data, 8, "f64"); err != nil {
		return 0, 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), 8, nil
}

type unitCodec struct{}

// Unit is the zero-width codec, used for payload-less enum variants.
func Unit() Codec[struct{}] {
	return unitCodec{}
}

func (unitCodec) Stride() Stride {
	return Fixed(0)
}

func (unitCodec) Encode(struct{}) ([]byte, error) {
	return []byte{}, nil
}

func (unitCodec) Decode([]byte) (struct{}, int, error) {
	return struct{}{}, 0, nil
}
