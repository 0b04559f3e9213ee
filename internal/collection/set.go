package collection

import "iter"

type setSlot[E any] struct {
	hash uint64
	elem E
	used bool
}

// Set is a linear-probing open-addressing set. Hash codes are supplied by
// the caller on every operation and stored alongside the elements, so a
// caller that already knows a hash never pays for recomputation. Equality
// is structural, via the function given at construction.
//
// The probe sequence runs downward from hash&mask, wrapping at zero.
type Set[E any] struct {
	slots    []setSlot[E]
	size     int
	modCount uint64
	equal    func(a, b E) bool
}

// NewSet creates a set with at least the given capacity (rounded up to a
// power of two) and the given structural equality.
func NewSet[E any](capacity int, equal func(a, b E) bool) *Set[E] {
	return &Set[E]{
		slots: make([]setSlot[E], initialCapacity(capacity)),
		equal: equal,
	}
}

// Len returns the number of elements.
func (s *Set[E]) Len() int { return s.size }

// Cap returns the slot count; valid positions for At are [0, Cap).
func (s *Set[E]) Cap() int { return len(s.slots) }

// At returns the element stored at slot position i, if any. Positions are
// only stable between mutations.
func (s *Set[E]) At(i int) (E, bool) {
	sl := &s.slots[i]
	return sl.elem, sl.used
}

// Contains reports whether an equal element is present.
func (s *Set[E]) Contains(hash uint64, elem E) bool {
	mask := uint64(len(s.slots) - 1)
	for i := hash & mask; ; i = (i - 1) & mask {
		sl := &s.slots[i]
		if !sl.used {
			return false
		}
		if sl.hash == hash && s.equal(sl.elem, elem) {
			return true
		}
	}
}

// Get returns the stored element equal to the probe, if present. Callers
// use this to recover the canonical stored instance from a probe value.
func (s *Set[E]) Get(hash uint64, elem E) (E, bool) {
	mask := uint64(len(s.slots) - 1)
	for i := hash & mask; ; i = (i - 1) & mask {
		sl := &s.slots[i]
		if !sl.used {
			var zero E
			return zero, false
		}
		if sl.hash == hash && s.equal(sl.elem, elem) {
			return sl.elem, true
		}
	}
}

// TryAdd inserts the element unless an equal one is already present.
// It never fails otherwise; duplicates are reported via the return value.
func (s *Set[E]) TryAdd(hash uint64, elem E) bool {
	mask := uint64(len(s.slots) - 1)
	for i := hash & mask; ; i = (i - 1) & mask {
		sl := &s.slots[i]
		if !sl.used {
			s.insertAt(i, hash, elem)
			return true
		}
		if sl.hash == hash && s.equal(sl.elem, elem) {
			return false
		}
	}
}

// AddUnchecked inserts without a duplicate check. The caller must have
// just established that the element is absent; violating that silently
// corrupts the set.
func (s *Set[E]) AddUnchecked(hash uint64, elem E) {
	mask := uint64(len(s.slots) - 1)
	for i := hash & mask; ; i = (i - 1) & mask {
		if !s.slots[i].used {
			s.insertAt(i, hash, elem)
			return
		}
	}
}

func (s *Set[E]) insertAt(i uint64, hash uint64, elem E) {
	s.slots[i] = setSlot[E]{hash: hash, elem: elem, used: true}
	s.size++
	s.modCount++
	if overThreshold(s.size, len(s.slots)) {
		s.grow()
	}
}

// TryRemove removes an equal element if present.
func (s *Set[E]) TryRemove(hash uint64, elem E) bool {
	mask := uint64(len(s.slots) - 1)
	for i := hash & mask; ; i = (i - 1) & mask {
		sl := &s.slots[i]
		if !sl.used {
			return false
		}
		if sl.hash == hash && s.equal(sl.elem, elem) {
			s.removeAt(i)
			return true
		}
	}
}

// RemoveUnchecked removes an element the caller has just established to
// be present. If it is absent, the probe loop runs into an empty slot and
// the set is left unchanged, but callers must not rely on that.
func (s *Set[E]) RemoveUnchecked(hash uint64, elem E) {
	s.TryRemove(hash, elem)
}

// removeAt clears slot i and back-shifts the probe chain below it so that
// every surviving element stays reachable from its home slot: scanning
// onward in probe order, an element is pulled into the hole whenever the
// hole lies on its own probe path, and the scan stops at the first
// genuinely empty slot.
func (s *Set[E]) removeAt(i uint64) {
	mask := uint64(len(s.slots) - 1)
	s.slots[i] = setSlot[E]{}
	for j := (i - 1) & mask; ; j = (j - 1) & mask {
		sl := &s.slots[j]
		if !sl.used {
			break
		}
		home := sl.hash & mask
		// Probe distance from home, measured in downward steps.
		if (home-i)&mask < (home-j)&mask {
			s.slots[i] = *sl
			s.slots[j] = setSlot[E]{}
			i = j
		}
	}
	s.size--
	s.modCount++
}

// grow doubles the capacity and rehashes every live element. Capacity
// never shrinks.
func (s *Set[E]) grow() {
	old := s.slots
	s.slots = make([]setSlot[E], len(old)*2)
	mask := uint64(len(s.slots) - 1)
	for _, sl := range old {
		if !sl.used {
			continue
		}
		for i := sl.hash & mask; ; i = (i - 1) & mask {
			if !s.slots[i].used {
				s.slots[i] = sl
				break
			}
		}
	}
}

// AnyMatch reports whether any element satisfies the predicate.
func (s *Set[E]) AnyMatch(pred func(E) bool) bool {
	for i := range s.slots {
		if s.slots[i].used && pred(s.slots[i].elem) {
			return true
		}
	}
	return false
}

// Clear removes all elements, releasing the backing array.
func (s *Set[E]) Clear() {
	s.slots = make([]setSlot[E], minCapacity)
	s.size = 0
	s.modCount++
}

// All returns an iterator over the elements. The sequence is single-use
// and fails fast: a mutation during traversal panics with
// ErrConcurrentModification.
func (s *Set[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		stamp := s.modCount
		for i := range s.slots {
			if stamp != s.modCount {
				panic(ErrConcurrentModification)
			}
			if s.slots[i].used && !yield(s.slots[i].elem) {
				return
			}
		}
	}
}
