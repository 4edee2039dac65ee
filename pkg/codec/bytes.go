package codec

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

type fixedBytesCodec struct {
	size int
}

// FixedBytes encodes a byte slice of exactly size bytes with no length prefix.
func FixedBytes(size int) Codec[[]byte] {
	if size < 0 {
		panic("codec: negative fixed bytes size")
	}
	return fixedBytesCodec{size: size}
}

func (c fixedBytesCodec) Stride() Stride {
	return Fixed(c.size)
}

func (c fixedBytesCodec) Encode(v []byte) ([]byte, error) {
	if len(v) != c.size {
		return nil, fmt.Errorf("want %d bytes, got %d: %w", c.size, len(v), ErrRange)
	}
	return bytes.Clone(v), nil
}

func (c fixedBytesCodec) Decode(data []byte) ([]byte, int, error) {
	if err := need(data, c.size, "fixed bytes"); err != nil {
		return nil, 0, err
	}
	return data[:c.size:c.size], c.size, nil
}

type varBytesCodec struct{}

// VarBytes encodes a byte slice as a varint length followed by the raw bytes.
func VarBytes() Codec[[]byte] {
	return varBytesCodec{}
}

func (varBytesCodec) Stride() Stride {
	return Variable()
}

func (varBytesCodec) Encode(v []byte) ([]byte, error) {
	out := make([]byte, 0, UvarintSize(uint64(len(v)))+len(v))
	out = AppendUvarint(out, uint64(len(v)))
	return append(out, v...), nil
}

func (varBytesCodec) Decode(data []byte) ([]byte, int, error) {
	length, n, err := decodeLength(data, "bytes length")
	if err != nil {
		return nil, 0, err
	}
	end := n + length
	return data[n:end:end], end, nil
}

type array32Codec struct{}

// Array32 encodes a 32-byte array, such as a hash, as 32 raw bytes.
func Array32() Codec[[32]byte] {
	return array32Codec{}
}

func (array32Codec) Stride() Stride {
	return Fixed(32)
}

func (array32Codec) Encode(v [32]byte) ([]byte, error) {
	return v[:], nil
}

func (array32Codec) Decode(data []byte) ([32]byte, int, error) {
	var v [32]byte
	if err := need(data, 32, "bytes32"); err != nil {
		return v, 0, err
	}
	copy(v[:], data)
	return v, 32, nil
}

type stringCodec struct{}

// String encodes a UTF-8 string as a varint byte length followed by its bytes.
func String() Codec[string] {
	return stringCodec{}
}

func (stringCodec) Stride() Stride {
	return Variable()
}

func (stringCodec) Encode(v string) ([]byte, error) {
	if !utf8.ValidString(v) {
		return nil, fmt.Errorf("string is not valid utf-8: %w", ErrMalformed)
	}
	out := make([]byte, 0, UvarintSize(uint64(len(v)))+len(v))
	out = AppendUvarint(out, uint64(len(v)))
	return append(out, v...), nil
}

func (stringCodec) Decode(data []byte) (string, int, error) {
	length, n, err := decodeLength(data, "string length")
	if err != nil {
		return "", 0, err
	}
	raw := data[n : n+length]
	if !utf8.Valid(raw) {
		return "", 0, fmt.Errorf("string is not valid utf-8: %w", ErrMalformed)
	}
	return string(raw), n + length, nil
}

type fixedStringCodec struct {
	size int
}

// FixedString encodes a UTF-8 string into a zero-padded slot of size bytes. Trailing zero bytes
// are stripped on decode.
func FixedString(size int) Codec[string] {
	if size < 0 {
		panic("codec: negative fixed string size")
	}
	return fixedStringCodec{size: size}
}

func (c fixedStringCodec) Stride() Stride {
	return Fixed(c.size)
}

func (c fixedStringCodec) Encode(v string) ([]byte, error) {
	if len(v) > c.size {
		return nil, fmt.Errorf("string is %d bytes, slot holds %d: %w", len(v), c.size, ErrRange)
	}
	if !utf8.ValidString(v) {
		return nil, fmt.Errorf("string is not valid utf-8: %w", ErrMalformed)
	}
	out := make([]byte, c.size)
	copy(out, v)
	return out, nil
}

func (c fixedStringCodec) Decode(data []byte) (string, int, error) {
	if err := need(data, c.size, "fixed string"); err != nil {
		return "", 0, err
	}
	raw := bytes.TrimRight(data[:c.size], "\x00")
	if !utf8.Valid(raw) {
		return "", 0, fmt.Errorf("string is not valid utf-8: %w", ErrMalformed)
	}
	return string(raw), c.size, nil
}
