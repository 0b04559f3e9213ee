package rdf

import (
	"math/bits"

	"github.com/zeebo/xxh3"
)

// hashString computes a 64-bit xxhash3 of a term's lexical rendering,
// seeded with the term type so that e.g. the IRI "x" and the plain
// literal "x" never collide by construction.
func hashString(tag TermType, s string) uint64 {
	return xxh3.HashStringSeed(s, uint64(tag))
}

// mixHashes combines three term hashes into a position-dependent triple
// hash: (a,p,b) and (b,p,a) must hash differently.
func mixHashes(s, p, o uint64) uint64 {
	h := s
	h = bits.RotateLeft64(h, 17) ^ p
	h = bits.RotateLeft64(h, 17) ^ o
	return h * 0x9e3779b97f4a7c15
}
