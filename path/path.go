// Package path models document paths such as "foo[3][7].bar[2].baz": an
// ordered, non-empty sequence of elements, each a bare attribute name or a
// name with one or more list indexes.
//
// When a path is rendered into a compiled expression, each element's name is
// replaced by a substitution token, so "foo[3][7].bar[2].baz" becomes
// something like "#0[3][7].#1[2].#2". Parsing and the literal String form
// round-trip: Parse(p.String()) reproduces p for every valid path.
package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shibukawa/snapdyn/value"
)

// ErrInvalidPath indicates that a path string could not be parsed.
var ErrInvalidPath = errors.New("path: invalid document path")

// Element is one segment of a Path: a name, optionally followed by one or
// more list indexes. The zero indexes case and the plain-name case are the
// same thing; IndexedField with no indexes canonicalizes to a bare name.
type Element struct {
	name    string
	indexes []uint
}

// Name returns a plain-name element.
func Name(name string) Element {
	return Element{name: name}
}

// IndexedField returns an element addressing one or more nested list
// positions, e.g. IndexedField("foo", 3, 7) for "foo[3][7]". With no
// indexes it degrades to a plain Name; this canonicalization is the only
// construction path for indexed elements.
func IndexedField(name string, indexes ...uint) Element {
	if len(indexes) == 0 {
		return Name(name)
	}

	return Element{name: name, indexes: append([]uint(nil), indexes...)}
}

// Name returns the element's attribute name.
func (e Element) Name() string { return e.name }

// Indexes returns a copy of the element's list indexes, empty for a plain name.
func (e Element) Indexes() []uint { return append([]uint(nil), e.indexes...) }

// IsIndexed reports whether the element carries list indexes.
func (e Element) IsIndexed() bool { return len(e.indexes) > 0 }

// Equal reports whether two elements have the same name and indexes.
func (e Element) Equal(o Element) bool {
	if e.name != o.name || len(e.indexes) != len(o.indexes) {
		return false
	}

	for i, idx := range e.indexes {
		if idx != o.indexes[i] {
			return false
		}
	}

	return true
}

// Express renders the element through the substituter: the name becomes a
// token, each index keeps its own brackets in declaration order.
func (e Element) Express(s value.Substituter) string {
	var sb strings.Builder

	sb.WriteString(s.NameToken(e.name))

	for _, idx := range e.indexes {
		sb.WriteByte('[')
		sb.WriteString(strconv.FormatUint(uint64(idx), 10))
		sb.WriteByte(']')
	}

	return sb.String()
}

func (e Element) String() string { return e.Express(value.Literal) }

// Path is a non-empty ordered sequence of elements. It is immutable once
// built and safe to reuse across independent compilations.
type Path struct {
	elements []Element
}

// New builds a path from explicit elements. The signature makes the
// non-empty invariant structural: at least one element is required.
func New(first Element, rest ...Element) Path {
	elements := make([]Element, 0, 1+len(rest))
	elements = append(elements, first)
	elements = append(elements, rest...)

	return Path{elements: elements}
}

// Parse parses a dotted path string such as "foo[3][7].bar[2].baz".
//
// Parsing fails when brackets are unbalanced or reversed, a segment starts
// with '[', a name resumes after a closing bracket without a dot
// ("foo[0]bar"), or bracket contents are not a non-negative integer.
func Parse(s string) (Path, error) {
	segments := strings.Split(s, ".")
	elements := make([]Element, len(segments))

	for i, segment := range segments {
		elem, err := parseElement(segment)
		if err != nil {
			return Path{}, err
		}

		elements[i] = elem
	}

	return Path{elements: elements}, nil
}

// MustParse is Parse for known-good path literals; it panics on error.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return p
}

func parseElement(segment string) (Element, error) {
	var (
		name    string
		named   bool
		indexes []uint
	)

	remaining := segment
	for len(remaining) > 0 {
		open := strings.IndexByte(remaining, '[')
		closing := strings.IndexByte(remaining, ']')

		switch {
		case open < 0 && closing < 0:
			if named {
				// "bar" in "foo[0]bar"
				return Element{}, fmt.Errorf("%w: unexpected %q after index in segment %q", ErrInvalidPath, remaining, segment)
			}

			name, named = remaining, true
			remaining = ""
		case open < 0 || closing < 0:
			return Element{}, fmt.Errorf("%w: unbalanced brackets in segment %q", ErrInvalidPath, segment)
		case open >= closing:
			// "][" with the close first
			return Element{}, fmt.Errorf("%w: brackets out of order in segment %q", ErrInvalidPath, segment)
		default:
			if !named {
				if open == 0 {
					return Element{}, fmt.Errorf("%w: segment %q starts with '['", ErrInvalidPath, segment)
				}

				name, named = remaining[:open], true
			} else if open > 0 {
				// "bar[0]" in "foo[7]bar[0]"
				return Element{}, fmt.Errorf("%w: unexpected %q after index in segment %q", ErrInvalidPath, remaining[:open], segment)
			}

			idx, err := strconv.Atoi(remaining[open+1 : closing])
			if err != nil || idx < 0 {
				return Element{}, fmt.Errorf("%w: index %q in segment %q is not a non-negative integer", ErrInvalidPath, remaining[open+1:closing], segment)
			}

			indexes = append(indexes, uint(idx))
			remaining = remaining[closing+1:]
		}
	}

	return IndexedField(name, indexes...), nil
}

// Elements returns a copy of the path's elements.
func (p Path) Elements() []Element { return append([]Element(nil), p.elements...) }

// Len returns the number of elements.
func (p Path) Len() int { return len(p.elements) }

// IsZero reports whether p is the zero Path (no elements). A Path built by
// New or Parse is never zero; the zero value stands for "absent" where a
// path is optional.
func (p Path) IsZero() bool { return len(p.elements) == 0 }

// Equal reports whether two paths have the same elements.
func (p Path) Equal(o Path) bool {
	if len(p.elements) != len(o.elements) {
		return false
	}

	for i, e := range p.elements {
		if !e.Equal(o.elements[i]) {
			return false
		}
	}

	return true
}

// Express renders the path through the substituter, elements joined by dots.
func (p Path) Express(s value.Substituter) string {
	parts := make([]string, len(p.elements))
	for i, e := range p.elements {
		parts[i] = e.Express(s)
	}

	return strings.Join(parts, ".")
}

func (p Path) String() string { return p.Express(value.Literal) }
