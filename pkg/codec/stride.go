// Package codec implements a schema-driven binary serialization engine.
//
// Every schema value implements Codec[T]: it reports its Stride, encodes a T into a freshly
// allocated byte slice and decodes a T from the front of a byte slice, returning the number of
// bytes consumed. Composite codecs (Tuple, Struct, Vector, Option, Enum, Mapping) are assembled
// only from the Codec contract of their children. Schemas are immutable once built and safe for
// concurrent use.
package codec

import "strconv"

// Stride describes the encoded size of a codec: either a fixed number of bytes known at
// construction time or variable per value.
type Stride struct {
	size  int
	fixed bool
}

// Fixed returns a stride of exactly n bytes.
func Fixed(n int) Stride {
	if n < 0 {
		panic("codec: negative fixed stride")
	}
	return Stride{size: n, fixed: true}
}

// Variable returns the stride of codecs whose size depends on the value.
func Variable() Stride {
	return Stride{}
}

// IsFixed reports whether the stride is a fixed size.
func (s Stride) IsFixed() bool {
	return s.fixed
}

// Size returns the fixed size and true, or 0 and false for a variable stride.
func (s Stride) Size() (int, bool) {
	return s.size, s.fixed
}

func (s Stride) String() string {
	if !s.fixed {
		return "variable"
	}
	return "fixed(" + strconv.Itoa(s.size) + ")"
}

// Sum combines child strides: fixed with the total size only if every child is fixed.
func Sum(strides ...Stride) Stride {
	total := 0
	for _, s := range strides {
		if !s.fixed {
			return Variable()
		}
		total += s.size
	}
	return Fixed(total)
}

// sizeHint is used to pre-size output buffers.
func sizeHint(s Stride) int {
	if s.fixed {
		return s.size
	}
	return 0
}
