package codec

import "fmt"

// Field is one named member of a Struct schema over S. It hides the field's own Go type behind
// accessors bound to S.
type Field[S any] interface {
	Name() string
	Stride() Stride
	encodeFrom(s *S) ([]byte, error)
	decodeInto(data []byte, s *S) (int, error)
}

type field[S, F any] struct {
	name  string
	codec Codec[F]
	get   func(*S) F
	set   func(*S, F)
}

// FieldOf binds a codec for a member of S through its getter and setter.
func FieldOf[S, F any](name string, c Codec[F], get func(*S) F, set func(*S, F)) Field[S] {
	return &field[S, F]{name: name, codec: c, get: get, set: set}
}

func (f *field[S, F]) Name() string {
	return f.name
}

func (f *field[S, F]) Stride() Stride {
	return f.codec.Stride()
}

func (f *field[S, F]) encodeFrom(s *S) ([]byte, error) {
	return f.codec.Encode(f.get(s))
}

func (f *field[S, F]) decodeInto(data []byte, s *S) (int, error) {
	v, n, err := f.codec.Decode(data)
	if err != nil {
		return 0, err
	}
	f.set(s, v)
	return n, nil
}

// Struct encodes the fields of S in definition order. Field names do not appear on the wire.
type Struct[S any] struct {
	fields []Field[S]
	stride Stride
}

// NewStruct builds a Struct schema. It panics on duplicate field names.
func NewStruct[S any](fields ...Field[S]) *Struct[S] {
	seen := make(map[string]struct{}, len(fields))
	strides := make([]Stride, len(fields))
	for i, f := range fields {
		if _, dup := seen[f.Name()]; dup {
			panic(fmt.Sprintf("codec: duplicate struct field %q", f.Name()))
		}
		seen[f.Name()] = struct{}{}
		strides[i] = f.Stride()
	}
	return &Struct[S]{fields: fields, stride: Sum(strides...)}
}

// Fields returns the field names in wire order.
func (c *Struct[S]) Fields() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name()
	}
	return names
}

func (c *Struct[S]) Stride() Stride {
	return c.stride
}

func (c *Struct[S]) Encode(v S) ([]byte, error) {
	out := make([]byte, 0, sizeHint(c.stride))
	for _, f := range c.fields {
		b, err := f.encodeFrom(&v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name(), err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func (c *Struct[S]) Decode(data []byte) (S, int, error) {
	var v S
	offset := 0
	for _, f := range c.fields {
		n, err := f.decodeInto(data[offset:], &v)
		if err != nil {
			var zero S
			return zero, 0, fmt.Errorf("field %s: %w", f.Name(), err)
		}
		offset += n
	}
	return v, offset, nil
}
