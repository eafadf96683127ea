// Package condition models the boolean expression trees accepted by the
// store's condition, filter, and key-condition clauses: comparisons,
// range and membership tests, attribute functions, and boolean combinators.
//
// A Condition is a tagged variant; rendering dispatches over the closed
// kind set. Trees own their children outright and are immutable once built,
// so the same tree can be rendered into any number of independent
// compilations.
package condition

import (
	"strings"

	"github.com/shibukawa/snapdyn/operand"
	"github.com/shibukawa/snapdyn/path"
	"github.com/shibukawa/snapdyn/value"
)

// Comparator is one of the six comparison operators.
type Comparator int

const (
	// Eq is equal ("=").
	Eq Comparator = iota
	// Ne is not equal ("<>").
	Ne
	// Lt is less than ("<").
	Lt
	// Le is less than or equal ("<=").
	Le
	// Gt is greater than (">").
	Gt
	// Ge is greater than or equal (">=").
	Ge
)

func (c Comparator) String() string {
	switch c {
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "<invalid>"
	}
}

// DataType is a stored attribute type code for AttributeType conditions.
type DataType string

const (
	TypeString    DataType = "S"
	TypeStringSet DataType = "SS"
	TypeNumber    DataType = "N"
	TypeNumberSet DataType = "NS"
	TypeBinary    DataType = "B"
	TypeBinarySet DataType = "BS"
	TypeBool      DataType = "BOOL"
	TypeNull      DataType = "NULL"
	TypeList      DataType = "L"
	TypeMap       DataType = "M"
)

// Kind identifies which variant a Condition holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindComparison
	KindBetween
	KindIn
	KindAttributeExists
	KindAttributeNotExists
	KindBeginsWith
	KindContains
	KindAttributeType
	KindAnd
	KindOr
	KindNot
)

// Condition is one node of a condition tree. The zero Condition has
// KindInvalid and must not be used; build nodes with the constructors.
type Condition struct {
	kind Kind

	// comparison
	cmp      Comparator
	lhs, rhs operand.Operand

	// between / in / contains subject
	op           operand.Operand
	lower, upper operand.Operand
	items        []operand.Operand

	// attribute functions
	path     path.Path
	prefix   value.Value
	dataType DataType

	// combinators; Not stores its inner condition in left
	left, right *Condition
}

// Compare returns a comparison between two operands.
func Compare(cmp Comparator, left, right operand.Operand) Condition {
	return Condition{kind: KindComparison, cmp: cmp, lhs: left, rhs: right}
}

// Equal returns "left = right".
func Equal(left, right operand.Operand) Condition { return Compare(Eq, left, right) }

// NotEqual returns "left <> right".
func NotEqual(left, right operand.Operand) Condition { return Compare(Ne, left, right) }

// LessThan returns "left < right".
func LessThan(left, right operand.Operand) Condition { return Compare(Lt, left, right) }

// LessThanOrEqual returns "left <= right".
func LessThanOrEqual(left, right operand.Operand) Condition { return Compare(Le, left, right) }

// GreaterThan returns "left > right".
func GreaterThan(left, right operand.Operand) Condition { return Compare(Gt, left, right) }

// GreaterThanOrEqual returns "left >= right".
func GreaterThanOrEqual(left, right operand.Operand) Condition { return Compare(Ge, left, right) }

// Between returns "op BETWEEN lower AND upper".
func Between(op, lower, upper operand.Operand) Condition {
	return Condition{kind: KindBetween, op: op, lower: lower, upper: upper}
}

// In returns "op IN (first,rest...)". The store requires at least one item,
// so the signature makes that structural.
func In(op, first operand.Operand, rest ...operand.Operand) Condition {
	items := make([]operand.Operand, 0, 1+len(rest))
	items = append(items, first)
	items = append(items, rest...)

	return Condition{kind: KindIn, op: op, items: items}
}

// AttributeExists returns "attribute_exists(p)".
func AttributeExists(p path.Path) Condition {
	return Condition{kind: KindAttributeExists, path: p}
}

// AttributeNotExists returns "attribute_not_exists(p)".
func AttributeNotExists(p path.Path) Condition {
	return Condition{kind: KindAttributeNotExists, path: p}
}

// BeginsWith returns "begins_with(p, prefix)" with a literal string prefix.
func BeginsWith(p path.Path, prefix string) Condition {
	return Condition{kind: KindBeginsWith, path: p, prefix: value.String(prefix)}
}

// BeginsWithRef is BeginsWith with a caller-supplied value reference as the
// prefix instead of a literal.
func BeginsWithRef(p path.Path, ref string) Condition {
	return Condition{kind: KindBeginsWith, path: p, prefix: value.Ref(ref)}
}

// Contains returns "contains(p, op)".
func Contains(p path.Path, op operand.Operand) Condition {
	return Condition{kind: KindContains, path: p, op: op}
}

// AttributeType returns "attribute_type(p, t)". The type code is passed to
// the store as a string value, so it occupies a value token when compiled.
func AttributeType(p path.Path, t DataType) Condition {
	return Condition{kind: KindAttributeType, path: p, dataType: t}
}

// And returns "c AND right". Children render without parentheses except
// where precedence requires them: NOT binds tighter than AND, which binds
// tighter than OR, so only an Or child under And is wrapped.
func (c Condition) And(right Condition) Condition {
	return Condition{kind: KindAnd, left: &c, right: &right}
}

// Or returns "c OR right".
func (c Condition) Or(right Condition) Condition {
	return Condition{kind: KindOr, left: &c, right: &right}
}

// Not returns "NOT (c)".
func (c Condition) Not() Condition {
	return Condition{kind: KindNot, left: &c}
}

// Kind reports the variant held by c.
func (c Condition) Kind() Kind { return c.kind }

// IsZero reports whether c is the zero Condition, which stands for "absent"
// where a condition is optional.
func (c Condition) IsZero() bool { return c.kind == KindInvalid }

// Express renders the condition tree through the substituter.
func (c Condition) Express(s value.Substituter) string {
	switch c.kind {
	case KindComparison:
		return c.lhs.Express(s) + " " + c.cmp.String() + " " + c.rhs.Express(s)
	case KindBetween:
		return c.op.Express(s) + " BETWEEN " + c.lower.Express(s) + " AND " + c.upper.Express(s)
	case KindIn:
		items := make([]string, len(c.items))
		for i, item := range c.items {
			items[i] = item.Express(s)
		}

		return c.op.Express(s) + " IN (" + strings.Join(items, ",") + ")"
	case KindAttributeExists:
		return "attribute_exists(" + c.path.Express(s) + ")"
	case KindAttributeNotExists:
		return "attribute_not_exists(" + c.path.Express(s) + ")"
	case KindBeginsWith:
		return "begins_with(" + c.path.Express(s) + ", " + c.prefix.Express(s) + ")"
	case KindContains:
		return "contains(" + c.path.Express(s) + ", " + c.op.Express(s) + ")"
	case KindAttributeType:
		return "attribute_type(" + c.path.Express(s) + ", " + value.String(string(c.dataType)).Express(s) + ")"
	case KindAnd:
		return c.left.andChild(s) + " AND " + c.right.andChild(s)
	case KindOr:
		return c.left.Express(s) + " OR " + c.right.Express(s)
	case KindNot:
		return "NOT (" + c.left.Express(s) + ")"
	default:
		return "<invalid>"
	}
}

// andChild renders one side of an AND, parenthesizing it when it is an OR,
// whose looser binding would otherwise regroup the tree.
func (c *Condition) andChild(s value.Substituter) string {
	if c.kind == KindOr {
		return "(" + c.Express(s) + ")"
	}

	return c.Express(s)
}

func (c Condition) String() string { return c.Express(value.Literal) }
