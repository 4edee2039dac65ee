package codec

import "slices"

// Entry is one key/value pair of a Mapping.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Mapping encodes an ordered entry list exactly as a Vector of (key, value) tuples. Entries are
// written in slice order; duplicates are neither removed nor detected.
func Mapping[K comparable, V any](k Codec[K], v Codec[V]) Codec[[]Entry[K, V]] {
	return Vector[Entry[K, V]](NewStruct(
		FieldOf("key", k,
			func(e *Entry[K, V]) K { return e.Key },
			func(e *Entry[K, V], key K) { e.Key = key }),
		FieldOf("value", v,
			func(e *Entry[K, V]) V { return e.Value },
			func(e *Entry[K, V], value V) { e.Value = value }),
	))
}

// EntriesOf lists m ordered by compare on the keys, giving a deterministic encoding.
func EntriesOf[K comparable, V any](m map[K]V, compare func(a, b K) int) []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry[K, V]) int { return compare(a.Key, b.Key) })
	return entries
}

// ToMap collects entries into a map; later entries win over earlier ones with the same key.
func ToMap[K comparable, V any](entries []Entry[K, V]) map[K]V {
	m := make(map[K]V, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}
