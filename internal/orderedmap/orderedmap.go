// Package orderedmap provides a small insertion-ordered map, used
// wherever the spec requires iteration order to follow declaration
// order (e.g. a gene map's genes iterate in declaration order). The
// teacher has no dedicated ordered-map type and no third-party one
// appears anywhere in the example pack; rather than reach for an
// external dependency with no grounding, this follows the teacher's
// own habit of keeping an explicit slice-of-keys alongside a map
// (see e.g. bebop-poly/alphabet.Alphabet, which keeps `symbols []string`
// next to its lookup map).
package orderedmap

// Map is an insertion-ordered map from K to V.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Set inserts or overwrites the value for k, appending k to the key
// order only the first time it is set.
func (m *Map[K, V]) Set(k K, v V) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value for k and whether it was present.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Values returns the values in key insertion order.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// Range calls fn for each entry in insertion order.
func (m *Map[K, V]) Range(fn func(k K, v V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}
