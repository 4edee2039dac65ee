package codec

import (
	"fmt"
	"sort"
)

// maxVariants is the number of distinct one-byte tags.
const maxVariants = 256

// Variant is one named alternative of an Enum over T.
type Variant[T any] interface {
	Name() string
	Stride() Stride
	encodePayload(v T) ([]byte, error)
	decodePayload(data []byte) (T, int, error)
}

type variant[T, P any] struct {
	name   string
	codec  Codec[P]
	wrap   func(P) T
	unwrap func(T) P
}

// Case declares a variant whose payload has type P. wrap lifts a decoded payload into T and
// unwrap extracts the payload from a T whose kind is name.
func Case[T, P any](name string, c Codec[P], wrap func(P) T, unwrap func(T) P) Variant[T] {
	return &variant[T, P]{name: name, codec: c, wrap: wrap, unwrap: unwrap}
}

func (v *variant[T, P]) Name() string {
	return v.name
}

func (v *variant[T, P]) Stride() Stride {
	return v.codec.Stride()
}

func (v *variant[T, P]) encodePayload(t T) ([]byte, error) {
	return v.codec.Encode(v.unwrap(t))
}

func (v *variant[T, P]) decodePayload(data []byte) (T, int, error) {
	p, n, err := v.codec.Decode(data)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v.wrap(p), n, nil
}

// Enum is a tagged union: a one-byte tag followed by the payload of the selected variant.
type Enum[T any] struct {
	kind   func(T) string
	tags   map[string]uint8
	byTag  map[uint8]Variant[T]
	stride Stride
}

// NewEnum builds an enum whose tags are the positions of the variant names in lexicographic
// order, so the tag assignment does not depend on declaration order. kind names the variant
// of a value.
func NewEnum[T any](kind func(T) string, variants ...Variant[T]) (*Enum[T], error) {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.Name())
	}
	sort.Strings(names)

	tags := make(map[string]uint8, len(names))
	for i, name := range names {
		if i >= maxVariants {
			return nil, fmt.Errorf("enum with %d variants: %w", len(names), ErrSchema)
		}
		tags[name] = uint8(i)
	}
	return newEnum(kind, tags, variants)
}

// NewTaggedEnum builds an enum with explicitly assigned tags. Every variant needs a tag and
// tags must be distinct.
func NewTaggedEnum[T any](kind func(T) string, tags map[string]uint8, variants ...Variant[T]) (*Enum[T], error) {
	if len(tags) != len(variants) {
		return nil, fmt.Errorf("enum has %d tags for %d variants: %w", len(tags), len(variants), ErrSchema)
	}
	seen := make(map[uint8]string, len(tags))
	for name, tag := range tags {
		if other, dup := seen[tag]; dup {
			return nil, fmt.Errorf("enum tag %d shared by %q and %q: %w", tag, other, name, ErrSchema)
		}
		seen[tag] = name
	}
	copied := make(map[string]uint8, len(tags))
	for name, tag := range tags {
		copied[name] = tag
	}
	return newEnum(kind, copied, variants)
}

// MustEnum panics if err is non-nil. It is meant for package-level schema variables.
func MustEnum[T any](e *Enum[T], err error) *Enum[T] {
	if err != nil {
		panic(err)
	}
	return e
}

func newEnum[T any](kind func(T) string, tags map[string]uint8, variants []Variant[T]) (*Enum[T], error) {
	byTag := make(map[uint8]Variant[T], len(variants))
	strides := make([]Stride, 0, len(variants))
	for _, v := range variants {
		tag, ok := tags[v.Name()]
		if !ok {
			return nil, fmt.Errorf("enum variant %q has no tag: %w", v.Name(), ErrSchema)
		}
		if _, dup := byTag[tag]; dup {
			return nil, fmt.Errorf("duplicate enum variant %q: %w", v.Name(), ErrSchema)
		}
		byTag[tag] = v
		strides = append(strides, v.Stride())
	}
	return &Enum[T]{kind: kind, tags: tags, byTag: byTag, stride: enumStride(strides)}, nil
}

// enumStride is fixed only when all payloads share one fixed size.
func enumStride(strides []Stride) Stride {
	if len(strides) == 0 {
		return Fixed(1)
	}
	size, fixed := strides[0].Size()
	if !fixed {
		return Variable()
	}
	for _, s := range strides[1:] {
		if n, ok := s.Size(); !ok || n != size {
			return Variable()
		}
	}
	return Fixed(1 + size)
}

// Tag returns the wire tag of the named variant.
func (e *Enum[T]) Tag(name string) (uint8, bool) {
	tag, ok := e.tags[name]
	return tag, ok
}

// Names returns the variant names ordered by tag.
func (e *Enum[T]) Names() []string {
	names := make([]string, 0, len(e.tags))
	for name := range e.tags {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return e.tags[names[i]] < e.tags[names[j]] })
	return names
}

func (e *Enum[T]) Stride() Stride {
	return e.stride
}

func (e *Enum[T]) Encode(v T) ([]byte, error) {
	name := e.kind(v)
	tag, ok := e.tags[name]
	if !ok {
		return nil, fmt.Errorf("enum variant %q: %w", name, ErrUnknownVariant)
	}
	payload, err := e.byTag[tag].encodePayload(v)
	if err != nil {
		return nil, fmt.Errorf("enum variant %s: %w", name, err)
	}
	out := make([]byte, 0, 1+len(payload))
	out = append(out, tag)
	return append(out, payload...), nil
}

func (e *Enum[T]) Decode(data []byte) (T, int, error) {
	var zero T
	if err := need(data, 1, "enum tag"); err != nil {
		return zero, 0, err
	}
	v, ok := e.byTag[data[0]]
	if !ok {
		return zero, 0, fmt.Errorf("enum tag %d of %d variants: %w", data[0], len(e.byTag), ErrUnknownVariant)
	}
	val, n, err := v.decodePayload(data[1:])
	if err != nil {
		return zero, 0, fmt.Errorf("enum variant %s: %w", v.Name(), err)
	}
	return val, 1 + n, nil
}
