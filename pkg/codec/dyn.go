package codec

import "fmt"

// Dyn is a type-erased codec handle. It closes over a concrete schema and exposes only the bound
// codec operations, so composites can hold heterogeneous children.
type Dyn interface {
	Stride() Stride
	EncodeAny(v any) ([]byte, error)
	DecodeAny(data []byte) (any, int, error)
}

type dynCodec[T any] struct {
	c Codec[T]
}

// Erase wraps c in a Dyn handle. EncodeAny rejects values that are not a T with ErrType.
func Erase[T any](c Codec[T]) Dyn {
	return dynCodec[T]{c: c}
}

func (d dynCodec[T]) Stride() Stride {
	return d.c.Stride()
}

func (d dynCodec[T]) EncodeAny(v any) ([]byte, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("want %T, got %T: %w", zero, v, ErrType)
	}
	return d.c.Encode(t)
}

func (d dynCodec[T]) DecodeAny(data []byte) (any, int, error) {
	return d.c.Decode(data)
}

// Assert returns a typed view of d. Encoding or decoding values that are not a T fails with ErrType.
func Assert[T any](d Dyn) Codec[T] {
	if dc, ok := d.(dynCodec[T]); ok {
		return dc.c
	}
	return &typedDyn[T]{d: d}
}

type typedDyn[T any] struct {
	d Dyn
}

func (t *typedDyn[T]) Stride() Stride {
	return t.d.Stride()
}

func (t *typedDyn[T]) Encode(v T) ([]byte, error) {
	return t.d.EncodeAny(v)
}

func (t *typedDyn[T]) Decode(data []byte) (T, int, error) {
	var zero T
	v, n, err := t.d.DecodeAny(data)
	if err != nil {
		return zero, 0, err
	}
	tv, ok := v.(T)
	if !ok {
		return zero, 0, fmt.Errorf("want %T, got %T: %w", zero, v, ErrType)
	}
	return tv, n, nil
}
