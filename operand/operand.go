// Package operand models the value-producing units combined by conditions
// and update actions: a document path, a literal value, or the size()
// function applied to a path.
package operand

import (
	"github.com/shibukawa/snapdyn/path"
	"github.com/shibukawa/snapdyn/value"
)

// Kind identifies which variant an Operand holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindPath
	KindValue
	KindSize
)

// Operand is a tagged union over the three operand variants. The zero
// Operand has KindInvalid and must not be used.
type Operand struct {
	kind Kind
	path path.Path
	val  value.Value
}

// Path returns an operand referencing a document path.
func Path(p path.Path) Operand {
	return Operand{kind: KindPath, path: p}
}

// Value returns an operand holding a literal value.
func Value(v value.Value) Operand {
	return Operand{kind: KindValue, val: v}
}

// Size returns an operand applying the element-count function to a path,
// rendered as "size(path)".
func Size(p path.Path) Operand {
	return Operand{kind: KindSize, path: p}
}

// Kind reports the variant held by op.
func (op Operand) Kind() Kind { return op.kind }

// Express renders the operand through the substituter.
func (op Operand) Express(s value.Substituter) string {
	switch op.kind {
	case KindPath:
		return op.path.Express(s)
	case KindValue:
		return op.val.Express(s)
	case KindSize:
		return "size(" + op.path.Express(s) + ")"
	default:
		return "<invalid>"
	}
}

func (op Operand) String() string { return op.Express(value.Literal) }
