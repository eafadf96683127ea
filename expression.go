// Package snapdyn compiles typed expression trees into the text
// mini-language a key-value document store accepts for its condition,
// filter, key-condition, projection, and update clauses, together with the
// substitution maps that carry the literal attribute names and values the
// placeholder tokens stand for.
//
// Callers build paths, conditions, and update actions with the path,
// condition, operand, value, update, and key packages, then hand any subset
// of the five clause slots to a Builder. All clauses of one Build share a
// single substitution table, so an attribute name or value used by several
// clauses is allocated exactly one token:
//
//	name := path.MustParse("name")
//	age := path.MustParse("age")
//
//	expr := snapdyn.NewBuilder().
//		WithFilter(condition.AttributeExists(name).
//			And(condition.GreaterThanOrEqual(operand.Path(age), operand.Value(value.NumberFromFloat(2.5))))).
//		WithProjection(name, age).
//		Build()
//
//	// *expr.Filter     == "attribute_exists(#0) AND #1 >= :0"
//	// *expr.Projection == "#0, #1"
//	// expr.Names       == map[string]string{"#0": "name", "#1": "age"}
//
// Compilation is a pure, synchronous tree traversal: it performs no I/O,
// never fails once the AST is constructed, and shares no state between two
// Build calls. AST values are immutable and may be reused freely across
// independent compilations, each of which numbers its tokens from zero.
package snapdyn

import (
	"strings"

	"github.com/shibukawa/snapdyn/condition"
	"github.com/shibukawa/snapdyn/key"
	"github.com/shibukawa/snapdyn/path"
	"github.com/shibukawa/snapdyn/update"
	"github.com/shibukawa/snapdyn/value"
)

// Expression is the result of one compilation: the rendered text for each
// requested clause plus the substitution maps. A nil clause pointer means
// the clause was not requested; an empty string is a requested clause that
// rendered empty (a projection with no paths does this).
type Expression struct {
	Condition    *string
	Filter       *string
	KeyCondition *string
	Projection   *string
	Update       *string

	// Names maps "#N" tokens to the literal attribute names they replace.
	Names map[string]string
	// Values maps ":N" tokens to the literal values they replace. The
	// request layer translates these into the store's wire encoding.
	Values map[string]value.Value
}

// Builder collects up to one of each clause kind and compiles them together.
// The zero Builder is ready to use; the With methods return a new Builder,
// leaving the receiver untouched.
//
// The condition slot is shared between the condition and filter outputs:
// WithCondition and WithFilter store the same tree, and whichever was called
// last decides which output field Build fills.
type Builder struct {
	cond          condition.Condition
	condAsFilter  bool
	keyCond       key.Condition
	projection    []path.Path
	hasProjection bool
	upd           update.Update
	hasUpdate     bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return Builder{}
}

// WithCondition sets the condition tree, compiled into the condition slot.
func (b Builder) WithCondition(c condition.Condition) Builder {
	b.cond = c
	b.condAsFilter = false

	return b
}

// WithFilter sets the condition tree, compiled into the filter slot.
func (b Builder) WithFilter(c condition.Condition) Builder {
	b.cond = c
	b.condAsFilter = true

	return b
}

// WithKeyCondition sets the key condition.
func (b Builder) WithKeyCondition(kc key.Condition) Builder {
	b.keyCond = kc
	return b
}

// WithProjection sets the projected paths. Calling it with no paths is
// legal and distinct from not calling it: the projection clause is present
// and renders as the empty string.
func (b Builder) WithProjection(paths ...path.Path) Builder {
	b.projection = append([]path.Path(nil), paths...)
	b.hasProjection = true

	return b
}

// WithUpdate sets the update actions.
func (b Builder) WithUpdate(u update.Update) Builder {
	b.upd = u
	b.hasUpdate = true

	return b
}

// Build renders every requested clause against one fresh substitution table
// and returns the compiled expression. Clauses render in a fixed order
// (condition or filter, key condition, projection, update); the order only
// decides token numbering, never clause meaning. Build is a pure function
// of the builder and may be called any number of times, each call numbering
// its tokens independently from zero.
func (b Builder) Build() Expression {
	subs := NewSubstitutions()

	var expr Expression

	if !b.cond.IsZero() {
		text := b.cond.Express(subs)
		if b.condAsFilter {
			expr.Filter = &text
		} else {
			expr.Condition = &text
		}
	}

	if !b.keyCond.IsZero() {
		text := b.keyCond.Condition().Express(subs)
		expr.KeyCondition = &text
	}

	if b.hasProjection {
		parts := make([]string, len(b.projection))
		for i, p := range b.projection {
			parts[i] = p.Express(subs)
		}

		text := strings.Join(parts, ", ")
		expr.Projection = &text
	}

	if b.hasUpdate {
		text := b.upd.Express(subs)
		expr.Update = &text
	}

	expr.Names, expr.Values = subs.Finish()

	return expr
}
