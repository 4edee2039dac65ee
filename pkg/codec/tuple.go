package codec

import "fmt"

type tupleCodec struct {
	children []Dyn
	stride   Stride
}

// Tuple concatenates heterogeneous children in positional order with no framing. Values are
// []any with exactly one element per child.
func Tuple(children ...Dyn) Codec[[]any] {
	strides := make([]Stride, len(children))
	for i, c := range children {
		strides[i] = c.Stride()
	}
	return &tupleCodec{children: children, stride: Sum(strides...)}
}

func (c *tupleCodec) Stride() Stride {
	return c.stride
}

func (c *tupleCodec) Encode(v []any) ([]byte, error) {
	if len(v) != len(c.children) {
		return nil, fmt.Errorf("tuple of %d elements, got %d: %w", len(c.children), len(v), ErrType)
	}
	out := make([]byte, 0, sizeHint(c.stride))
	for i, child := range c.children {
		b, err := child.EncodeAny(v[i])
		if err != nil {
			return nil, fmt.Errorf("tuple element %d: %w", i, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func (c *tupleCodec) Decode(data []byte) ([]any, int, error) {
	v := make([]any, len(c.children))
	offset := 0
	for i, child := range c.children {
		elem, n, err := child.DecodeAny(data[offset:])
		if err != nil {
			return nil, 0, fmt.Errorf("tuple element %d: %w", i, err)
		}
		v[i] = elem
		offset += n
	}
	return v, offset, nil
}
