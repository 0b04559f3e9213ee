// Package collection provides the open-addressing hash structures backing
// the triple indexes: a set keyed by caller-supplied hash codes and a map
// keyed by uint64 hash codes. Both use linear probing over a power-of-two
// slot array, grow at ~0.7 load, and compact on deletion by back-shifting
// (Knuth's deletion algorithm for linear probing) instead of tombstones.
//
// Neither structure is safe for concurrent mutation. Iterators are
// optimistic: they snapshot a modification counter and panic with
// ErrConcurrentModification if the structure changes mid-traversal.
package collection

import "errors"

// ErrConcurrentModification is the panic value raised by iterators that
// detect a structural mutation between steps. It is a fatal fault for the
// traversal; restart the iteration to recover.
var ErrConcurrentModification = errors.New("collection: concurrent modification during iteration")

const (
	minCapacity = 16

	// grow when size*10 > capacity*loadFactorPct
	loadFactorPct = 7
)

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

func initialCapacity(requested int) int {
	if requested < minCapacity {
		requested = minCapacity
	}
	return nextPowerOf2(requested)
}

func overThreshold(size, capacity int) bool {
	return size*10 > capacity*loadFactorPct
}
