// Package key builds key-condition expressions: the restricted condition
// form a query uses to select items by partition and sort key.
package key

import (
	"github.com/shibukawa/snapdyn/condition"
	"github.com/shibukawa/snapdyn/operand"
	"github.com/shibukawa/snapdyn/path"
)

// Key names one key attribute. Its methods produce the comparison forms the
// store permits in a key condition.
type Key struct {
	path path.Path
}

// New returns a Key for the given attribute path.
func New(p path.Path) Key {
	return Key{path: p}
}

// Equal returns "key = right".
func (k Key) Equal(right operand.Operand) Condition {
	return Condition{cond: condition.Equal(operand.Path(k.path), right)}
}

// LessThan returns "key < right".
func (k Key) LessThan(right operand.Operand) Condition {
	return Condition{cond: condition.LessThan(operand.Path(k.path), right)}
}

// LessThanOrEqual returns "key <= right".
func (k Key) LessThanOrEqual(right operand.Operand) Condition {
	return Condition{cond: condition.LessThanOrEqual(operand.Path(k.path), right)}
}

// GreaterThan returns "key > right".
func (k Key) GreaterThan(right operand.Operand) Condition {
	return Condition{cond: condition.GreaterThan(operand.Path(k.path), right)}
}

// GreaterThanOrEqual returns "key >= right".
func (k Key) GreaterThanOrEqual(right operand.Operand) Condition {
	return Condition{cond: condition.GreaterThanOrEqual(operand.Path(k.path), right)}
}

// Between returns "key BETWEEN lower AND upper".
func (k Key) Between(lower, upper operand.Operand) Condition {
	return Condition{cond: condition.Between(operand.Path(k.path), lower, upper)}
}

// BeginsWith returns "begins_with(key, prefix)" with a literal prefix.
func (k Key) BeginsWith(prefix string) Condition {
	return Condition{cond: condition.BeginsWith(k.path, prefix)}
}

// BeginsWithRef is BeginsWith with a caller-supplied value reference.
func (k Key) BeginsWithRef(ref string) Condition {
	return Condition{cond: condition.BeginsWithRef(k.path, ref)}
}

// Condition is a condition restricted to key-condition shapes, typically
// the partition key equality joined with one sort key comparison.
type Condition struct {
	cond condition.Condition
}

// And joins the partition and sort key halves of a key condition.
func (c Condition) And(right Condition) Condition {
	return Condition{cond: c.cond.And(right.cond)}
}

// Condition returns the underlying condition tree.
func (c Condition) Condition() condition.Condition { return c.cond }

// IsZero reports whether c is the zero Condition (absent).
func (c Condition) IsZero() bool { return c.cond.IsZero() }

func (c Condition) String() string { return c.cond.String() }
