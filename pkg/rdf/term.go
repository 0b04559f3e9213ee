package rdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TermType represents the type of an RDF term
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeDefaultGraph

	// TermTypeAny is the wildcard used in query patterns
	TermTypeAny
)

// Term represents an RDF term (IRI, blank node, literal, or the wildcard)
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool

	// IsConcrete reports whether the term is a fixed value.
	// It is false only for the Any wildcard.
	IsConcrete() bool

	// IndexingValue returns the canonical representative used for
	// index placement. For most terms it is the term itself; typed
	// literals with the same value but different lexical forms
	// (e.g. "1" and "01" as xsd:integer) share one indexing value.
	IndexingValue() Term

	// Hash returns a stable 64-bit hash of the indexing value.
	Hash() uint64
}

// Matches reports whether a pattern term accepts a concrete term.
// A nil or wildcard pattern matches anything; a concrete pattern
// requires structural equality.
func Matches(pattern, term Term) bool {
	if pattern == nil || !pattern.IsConcrete() {
		return true
	}
	return pattern.Equals(term)
}

// anyTerm is the wildcard. There is a single instance, Any.
type anyTerm struct{}

// Any matches every concrete term when used in a query pattern.
// It must never appear inside a stored triple.
var Any Term = anyTerm{}

func (anyTerm) Type() TermType        { return TermTypeAny }
func (anyTerm) String() string        { return "ANY" }
func (anyTerm) IsConcrete() bool      { return false }
func (a anyTerm) IndexingValue() Term { return a }
func (anyTerm) Hash() uint64          { return 0 }

func (anyTerm) Equals(other Term) bool {
	return other != nil && other.Type() == TermTypeAny
}

// NamedNode represents an IRI
type NamedNode struct {
	IRI string
}

func NewNamedNode(iri string) *NamedNode {
	return &NamedNode{IRI: iri}
}

func (n *NamedNode) Type() TermType {
	return TermTypeNamedNode
}

func (n *NamedNode) String() string {
	return fmt.Sprintf("<%s>", n.IRI)
}

func (n *NamedNode) Equals(other Term) bool {
	if on, ok := other.(*NamedNode); ok {
		return n.IRI == on.IRI
	}
	return false
}

func (n *NamedNode) IsConcrete() bool    { return true }
func (n *NamedNode) IndexingValue() Term { return n }

func (n *NamedNode) Hash() uint64 {
	return hashString(TermTypeNamedNode, n.IRI)
}

// BlankNode represents a blank node
type BlankNode struct {
	ID string
}

func NewBlankNode(id string) *BlankNode {
	return &BlankNode{ID: id}
}

func (b *BlankNode) Type() TermType {
	return TermTypeBlankNode
}

func (b *BlankNode) String() string {
	return fmt.Sprintf("_:%s", b.ID)
}

func (b *BlankNode) Equals(other Term) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.ID == ob.ID
	}
	return false
}

func (b *BlankNode) IsConcrete() bool    { return true }
func (b *BlankNode) IndexingValue() Term { return b }

func (b *BlankNode) Hash() uint64 {
	return hashString(TermTypeBlankNode, b.ID)
}

// Literal represents an RDF literal
type Literal struct {
	Value    string
	Language string     // for language-tagged strings
	Datatype *NamedNode // for typed literals
}

func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func NewLiteralWithLanguage(value, language string) *Literal {
	return &Literal{Value: value, Language: language}
}

func NewLiteralWithDatatype(value string, datatype *NamedNode) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Type() TermType {
	return TermTypeLiteral
}

func (l *Literal) String() string {
	result := fmt.Sprintf(`"%s"`, l.Value)
	if l.Language != "" {
		result += "@" + l.Language
	} else if l.Datatype != nil {
		result += "^^" + l.Datatype.String()
	}
	return result
}

func (l *Literal) Equals(other Term) bool {
	if ol, ok := other.(*Literal); ok {
		if l.Value != ol.Value {
			return false
		}
		if l.Language != ol.Language {
			return false
		}
		if l.Datatype == nil && ol.Datatype == nil {
			return true
		}
		if l.Datatype != nil && ol.Datatype != nil {
			return l.Datatype.Equals(ol.Datatype)
		}
		return false
	}
	return false
}

func (l *Literal) IsConcrete() bool { return true }

// IndexingValue canonicalizes the lexical form of value-space datatypes
// so that equal values land in the same index bucket regardless of how
// they were written. Ill-typed literals fall back to their lexical form.
func (l *Literal) IndexingValue() Term {
	if l.Datatype == nil || l.Language != "" {
		return l
	}
	switch l.Datatype.IRI {
	case XSDInteger.IRI:
		if v, err := strconv.ParseInt(l.Value, 10, 64); err == nil {
			return canonicalLiteral(l, strconv.FormatInt(v, 10))
		}
	case XSDDecimal.IRI, XSDDouble.IRI:
		if v, err := strconv.ParseFloat(l.Value, 64); err == nil {
			return canonicalLiteral(l, strconv.FormatFloat(v, 'g', -1, 64))
		}
	case XSDBoolean.IRI:
		if v, err := strconv.ParseBool(l.Value); err == nil {
			return canonicalLiteral(l, strconv.FormatBool(v))
		}
	case XSDDateTime.IRI:
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(l.Value)); err == nil {
			return canonicalLiteral(l, t.UTC().Format(time.RFC3339Nano))
		}
	}
	return l
}

// canonicalLiteral avoids allocating when the lexical form is already canonical.
func canonicalLiteral(l *Literal, canonical string) *Literal {
	if l.Value == canonical {
		return l
	}
	return &Literal{Value: canonical, Datatype: l.Datatype}
}

func (l *Literal) Hash() uint64 {
	iv := l.IndexingValue().(*Literal)
	var sb strings.Builder
	sb.WriteString(iv.Value)
	if iv.Language != "" {
		sb.WriteByte('@')
		sb.WriteString(iv.Language)
	} else if iv.Datatype != nil {
		sb.WriteString("^^")
		sb.WriteString(iv.Datatype.IRI)
	}
	return hashString(TermTypeLiteral, sb.String())
}

// DefaultGraph represents the default graph of a dataset
type DefaultGraph struct{}

func NewDefaultGraph() *DefaultGraph {
	return &DefaultGraph{}
}

func (d *DefaultGraph) Type() TermType {
	return TermTypeDefaultGraph
}

func (d *DefaultGraph) String() string {
	return "DEFAULT"
}

func (d *DefaultGraph) Equals(other Term) bool {
	if other == nil {
		return false
	}
	_, ok := other.(*DefaultGraph)
	return ok
}

func (d *DefaultGraph) IsConcrete() bool    { return true }
func (d *DefaultGraph) IndexingValue() Term { return d }

func (d *DefaultGraph) Hash() uint64 {
	return hashString(TermTypeDefaultGraph, "")
}

// Helper constants for common XSD datatypes
var (
	XSDString   = NewNamedNode("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger  = NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal  = NewNamedNode("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble   = NewNamedNode("http://www.w3.org/2001/XMLSchema#double")
	XSDBoolean  = NewNamedNode("http://www.w3.org/2001/XMLSchema#boolean")
	XSDDateTime = NewNamedNode("http://www.w3.org/2001/XMLSchema#dateTime")
)

func NewIntegerLiteral(value int64) *Literal {
	return NewLiteralWithDatatype(strconv.FormatInt(value, 10), XSDInteger)
}

func NewDoubleLiteral(value float64) *Literal {
	return NewLiteralWithDatatype(strconv.FormatFloat(value, 'g', -1, 64), XSDDouble)
}

func NewBooleanLiteral(value bool) *Literal {
	return NewLiteralWithDatatype(strconv.FormatBool(value), XSDBoolean)
}

func NewDateTimeLiteral(value time.Time) *Literal {
	return NewLiteralWithDatatype(value.Format(time.RFC3339), XSDDateTime)
}
