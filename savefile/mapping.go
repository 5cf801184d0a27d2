package savefile

import "iter"

// Mapping is an ordered collection of key/value pairs. Keys are unique:
// when the parser sees a key a second time the existing entry becomes (or
// appends to) a Sequence holding every value for that key in encounter
// order. Iteration follows first-insertion order of each distinct key.
type Mapping struct {
	keys  []string
	vals  []Value
	index map[string]int
}

func newMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Len returns the number of distinct keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}

	return m.vals[i], true
}

// Keys returns the keys in first-insertion order. The returned slice is a
// copy and may be retained by the caller.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, len(m.keys))
	copy(keys, m.keys)

	return keys
}

// At returns the i-th entry in insertion order.
func (m *Mapping) At(i int) (string, Value) {
	return m.keys[i], m.vals[i]
}

// All iterates over entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if m == nil {
			return
		}

		for i, key := range m.keys {
			if !yield(key, m.vals[i]) {
				return
			}
		}
	}
}

// Value wraps the mapping as a Value.
func (m *Mapping) Value() Value {
	return Value{kind: KindMapping, mapping: m}
}

// Equal reports deep equality including key order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}

	for i := range m.keys {
		if m.keys[i] != o.keys[i] || !m.vals[i].Equal(o.vals[i]) {
			return false
		}
	}

	return true
}

// merge inserts a key/value pair. A repeated key converts the existing
// entry into a sequence of all values seen for that key, preserving
// encounter order.
func (m *Mapping) merge(key string, v Value) {
	i, ok := m.index[key]
	if !ok {
		m.index[key] = len(m.keys)
		m.keys = append(m.keys, key)
		m.vals = append(m.vals, v)

		return
	}

	existing := m.vals[i]
	if existing.kind == KindSequence {
		existing.seq = append(existing.seq, v)
		m.vals[i] = existing

		return
	}

	m.vals[i] = SequenceValue(existing, v)
}
