package codec

import "fmt"

type optionCodec[T any] struct {
	c Codec[T]
}

// Option encodes nil as 0x00 and a present value as 0x01 followed by its encoding.
func Option[T any](c Codec[T]) Codec[*T] {
	return optionCodec[T]{c: c}
}

func (c optionCodec[T]) Stride() Stride {
	return Variable()
}

func (c optionCodec[T]) Encode(v *T) ([]byte, error) {
	if v == nil {
		return []byte{0}, nil
	}
	b, err := c.c.Encode(*v)
	if err != nil {
		return nil, fmt.Errorf("option payload: %w", err)
	}
	out := make([]byte, 1+len(b))
	out[0] = 1
	copy(out[1:], b)
	return out, nil
}

func (c optionCodec[T]) Decode(data []byte) (*T, int, error) {
	if err := need(data, 1, "option tag"); err != nil {
		return nil, 0, err
	}
	switch data[0] {
	case 0:
		return nil, 1, nil
	case 1:
		v, n, err := c.c.Decode(data[1:])
		if err != nil {
			return nil, 0, fmt.Errorf("option payload: %w", err)
		}
		return &v, 1 + n, nil
	default:
		return nil, 0, fmt.Errorf("option tag %#x: %w", data[0], ErrMalformed)
	}
}
