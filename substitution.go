package snapdyn

import (
	"strconv"

	"github.com/shibukawa/snapdyn/value"
)

// Substitutions is the deduplicating registry that assigns placeholder
// tokens to attribute names ("#0", "#1", ...) and literal values
// (":0", ":1", ...) while the clauses of one compilation render. Numbering
// starts at 0 and increases in first-use order; the same name string or the
// same (structurally equal) value always yields the same token within one
// table.
//
// One table serves exactly one compilation: Builder.Build creates it,
// renders every requested clause against it, then calls Finish. Allocating
// through a finished table panics.
type Substitutions struct {
	names     []string
	nameIndex map[string]int
	values    []value.Value
	finished  bool
}

var _ value.Substituter = (*Substitutions)(nil)

// NewSubstitutions returns an empty table.
func NewSubstitutions() *Substitutions {
	return &Substitutions{nameIndex: map[string]int{}}
}

// NameToken returns the token for one attribute name segment, allocating
// the next sequential "#N" on first use.
func (s *Substitutions) NameToken(name string) string {
	if s.finished {
		panic("snapdyn: substitution table used after Finish")
	}

	i, ok := s.nameIndex[name]
	if !ok {
		i = len(s.names)
		s.names = append(s.names, name)
		s.nameIndex[name] = i
	}

	return "#" + strconv.Itoa(i)
}

// ValueToken returns the token for one literal value, allocating the next
// sequential ":N" on first use. Identity is structural equality, so 2.5 and
// 2.50, or two sets with the same members in different order, share a token.
// Reference values never pass through the table.
func (s *Substitutions) ValueToken(v value.Value) string {
	if s.finished {
		panic("snapdyn: substitution table used after Finish")
	}

	if v.Kind() == value.KindRef {
		panic("snapdyn: reference value has no substitution token")
	}

	for i, existing := range s.values {
		if existing.Equal(v) {
			return ":" + strconv.Itoa(i)
		}
	}

	i := len(s.values)
	s.values = append(s.values, v)

	return ":" + strconv.Itoa(i)
}

// Finish seals the table and returns the token-to-name and token-to-value
// maps for attachment to the outgoing request.
func (s *Substitutions) Finish() (map[string]string, map[string]value.Value) {
	s.finished = true

	names := make(map[string]string, len(s.names))
	for i, name := range s.names {
		names["#"+strconv.Itoa(i)] = name
	}

	values := make(map[string]value.Value, len(s.values))
	for i, v := range s.values {
		values[":"+strconv.Itoa(i)] = v
	}

	return names, values
}
