// Package index implements the hash-indexed structures behind the
// in-memory triple stores: the match-pattern classifier, the adaptive
// per-value triple bunches, and the two-level term index.
package index

import "github.com/arne-bdt/graphmem/pkg/rdf"

// Pattern classifies a query triple by which positions are concrete.
// The value is a bit set: subject 0b100, predicate 0b010, object 0b001.
// "A" in a name stands for Any.
type Pattern uint8

const (
	PatternAAA Pattern = 0b000
	PatternAAO Pattern = 0b001
	PatternAPA Pattern = 0b010
	PatternAPO Pattern = 0b011
	PatternSAA Pattern = 0b100
	PatternSAO Pattern = 0b101
	PatternSPA Pattern = 0b110
	PatternSPO Pattern = 0b111
)

func (p Pattern) SubjectConcrete() bool   { return p&0b100 != 0 }
func (p Pattern) PredicateConcrete() bool { return p&0b010 != 0 }
func (p Pattern) ObjectConcrete() bool    { return p&0b001 != 0 }

func (p Pattern) String() string {
	buf := [3]byte{'A', 'A', 'A'}
	if p.SubjectConcrete() {
		buf[0] = 'S'
	}
	if p.PredicateConcrete() {
		buf[1] = 'P'
	}
	if p.ObjectConcrete() {
		buf[2] = 'O'
	}
	return string(buf[:])
}

// Classify maps three possibly-nil, possibly-wildcard terms to their
// match pattern. Pure, O(1).
func Classify(s, p, o rdf.Term) Pattern {
	var pt Pattern
	if s != nil && s.IsConcrete() {
		pt |= 0b100
	}
	if p != nil && p.IsConcrete() {
		pt |= 0b010
	}
	if o != nil && o.IsConcrete() {
		pt |= 0b001
	}
	return pt
}

// ClassifyTriple classifies a pattern triple; a nil pattern is AAA.
func ClassifyTriple(pattern *rdf.Triple) Pattern {
	if pattern == nil {
		return PatternAAA
	}
	return Classify(pattern.Subject, pattern.Predicate, pattern.Object)
}
