package codec

import "fmt"

// maxZeroWidthCount bounds vectors of zero-width elements, which consume no input per element.
const maxZeroWidthCount = 1 << 16

type vectorCodec[T any] struct {
	elem Codec[T]
}

// Vector encodes a slice as a varint element count followed by each element. Its stride is
// always variable.
func Vector[T any](elem Codec[T]) Codec[[]T] {
	return vectorCodec[T]{elem: elem}
}

func (c vectorCodec[T]) Stride() Stride {
	return Variable()
}

func (c vectorCodec[T]) Encode(v []T) ([]byte, error) {
	hint := UvarintSize(uint64(len(v)))
	if size, ok := c.elem.Stride().Size(); ok {
		if size == 0 && len(v) > maxZeroWidthCount {
			return nil, fmt.Errorf("vector of %d zero-width elements: %w", len(v), ErrRange)
		}
		hint += size * len(v)
	}
	out := AppendUvarint(make([]byte, 0, hint), uint64(len(v)))
	for i, item := range v {
		b, err := c.elem.Encode(item)
		if err != nil {
			return nil, fmt.Errorf("vector element %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func (c vectorCodec[T]) Decode(data []byte) ([]T, int, error) {
	count, offset, err := DecodeUvarint(data)
	if err != nil {
		return nil, 0, fmt.Errorf("vector count: %w", err)
	}
	remaining := uint64(len(data) - offset)
	size, fixed := c.elem.Stride().Size()
	switch {
	case fixed && size == 0:
		if count > maxZeroWidthCount {
			return nil, 0, fmt.Errorf("vector of %d zero-width elements: %w", count, ErrMalformed)
		}
	case fixed && count > remaining/uint64(size):
		return nil, 0, fmt.Errorf("vector declares %d elements of %d bytes, %d bytes remain: %w",
			count, size, remaining, ErrCountMismatch)
	case count > remaining:
		return nil, 0, fmt.Errorf("vector declares %d elements, %d bytes remain: %w", count, remaining, ErrCountMismatch)
	}

	v := make([]T, 0, int(count))
	for i := uint64(0); i < count; i++ {
		item, n, err := c.elem.Decode(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("vector element %d of %d: %w: %w", i, count, ErrCountMismatch, err)
		}
		v = append(v, item)
		offset += n
	}
	return v, offset, nil
}
