package collection

import "iter"

type mapSlot[V any] struct {
	key  uint64
	val  V
	used bool
}

// Map is a linear-probing open-addressing map keyed by uint64 hash codes.
// Keys are already hash codes (term hashes), so they index directly via
// masking; no second hash is applied. Distinct terms whose hashes collide
// share one entry; the value level is responsible for full equality checks.
type Map[V any] struct {
	slots    []mapSlot[V]
	size     int
	modCount uint64
}

// UpsertOutcome tags the result of an Upsert call.
type UpsertOutcome uint8

const (
	// UpsertAbsent means the key was absent and the callback declined to insert.
	UpsertAbsent UpsertOutcome = iota
	// UpsertInserted means a new entry was created.
	UpsertInserted
	// UpsertUpdated means an existing entry's value was replaced.
	UpsertUpdated
	// UpsertRemoved means an existing entry was removed.
	UpsertRemoved
)

// NewMap creates a map with at least the given capacity, rounded up to a
// power of two.
func NewMap[V any](capacity int) *Map[V] {
	return &Map[V]{slots: make([]mapSlot[V], initialCapacity(capacity))}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return m.size }

// Cap returns the slot count; valid positions for At are [0, Cap).
func (m *Map[V]) Cap() int { return len(m.slots) }

// At returns the entry stored at slot position i, if any. Positions are
// only stable between mutations.
func (m *Map[V]) At(i int) (uint64, V, bool) {
	sl := &m.slots[i]
	return sl.key, sl.val, sl.used
}

// Get returns the value for a key.
func (m *Map[V]) Get(key uint64) (V, bool) {
	mask := uint64(len(m.slots) - 1)
	for i := key & mask; ; i = (i - 1) & mask {
		sl := &m.slots[i]
		if !sl.used {
			var zero V
			return zero, false
		}
		if sl.key == key {
			return sl.val, true
		}
	}
}

// Put stores a value, replacing any existing entry. It reports whether a
// new entry was created.
func (m *Map[V]) Put(key uint64, val V) bool {
	mask := uint64(len(m.slots) - 1)
	for i := key & mask; ; i = (i - 1) & mask {
		sl := &m.slots[i]
		if !sl.used {
			m.insertAt(i, key, val)
			return true
		}
		if sl.key == key {
			sl.val = val
			m.modCount++
			return false
		}
	}
}

// Upsert looks up the key and applies f to the current value (or the zero
// value when absent). If f's second result is true the returned value is
// stored; otherwise the entry is removed (or, when absent, stays absent).
// This replaces closure-capturing modify-or-create callbacks with an
// explicit, tagged operation.
func (m *Map[V]) Upsert(key uint64, f func(cur V, ok bool) (V, bool)) UpsertOutcome {
	mask := uint64(len(m.slots) - 1)
	for i := key & mask; ; i = (i - 1) & mask {
		sl := &m.slots[i]
		if !sl.used {
			var zero V
			val, keep := f(zero, false)
			if !keep {
				return UpsertAbsent
			}
			m.insertAt(i, key, val)
			return UpsertInserted
		}
		if sl.key == key {
			val, keep := f(sl.val, true)
			if !keep {
				m.removeAt(i)
				return UpsertRemoved
			}
			sl.val = val
			m.modCount++
			return UpsertUpdated
		}
	}
}

func (m *Map[V]) insertAt(i uint64, key uint64, val V) {
	m.slots[i] = mapSlot[V]{key: key, val: val, used: true}
	m.size++
	m.modCount++
	if overThreshold(m.size, len(m.slots)) {
		m.grow()
	}
}

// Delete removes an entry, back-shifting the probe chain (same compaction
// as Set.removeAt). It reports whether the key was present.
func (m *Map[V]) Delete(key uint64) bool {
	mask := uint64(len(m.slots) - 1)
	for i := key & mask; ; i = (i - 1) & mask {
		sl := &m.slots[i]
		if !sl.used {
			return false
		}
		if sl.key == key {
			m.removeAt(i)
			return true
		}
	}
}

func (m *Map[V]) removeAt(i uint64) {
	mask := uint64(len(m.slots) - 1)
	m.slots[i] = mapSlot[V]{}
	for j := (i - 1) & mask; ; j = (j - 1) & mask {
		sl := &m.slots[j]
		if !sl.used {
			break
		}
		home := sl.key & mask
		if (home-i)&mask < (home-j)&mask {
			m.slots[i] = *sl
			m.slots[j] = mapSlot[V]{}
			i = j
		}
	}
	m.size--
	m.modCount++
}

func (m *Map[V]) grow() {
	old := m.slots
	m.slots = make([]mapSlot[V], len(old)*2)
	mask := uint64(len(m.slots) - 1)
	for _, sl := range old {
		if !sl.used {
			continue
		}
		for i := sl.key & mask; ; i = (i - 1) & mask {
			if !m.slots[i].used {
				m.slots[i] = sl
				break
			}
		}
	}
}

// Clear removes all entries, releasing the backing array.
func (m *Map[V]) Clear() {
	m.slots = make([]mapSlot[V], minCapacity)
	m.size = 0
	m.modCount++
}

// All returns a fail-fast iterator over the entries.
func (m *Map[V]) All() iter.Seq2[uint64, V] {
	return func(yield func(uint64, V) bool) {
		stamp := m.modCount
		for i := range m.slots {
			if stamp != m.modCount {
				panic(ErrConcurrentModification)
			}
			if m.slots[i].used && !yield(m.slots[i].key, m.slots[i].val) {
				return
			}
		}
	}
}

// Values returns a fail-fast iterator over the values only.
func (m *Map[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		stamp := m.modCount
		for i := range m.slots {
			if stamp != m.modCount {
				panic(ErrConcurrentModification)
			}
			if m.slots[i].used && !yield(m.slots[i].val) {
				return
			}
		}
	}
}
