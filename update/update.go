// Package update models the four mutation clause kinds of an update
// expression: SET, REMOVE, ADD, and DELETE.
//
// Actions are built through per-shape constructors and staged builders and
// are immutable once built. Type constraints (ADD takes numbers or sets,
// DELETE takes sets, math takes numbers) are enforced here, at construction;
// rendering a well-formed Update never fails.
//
// The store rejects an update that touches the same destination path in more
// than one clause kind. That rule is left to the store: enforcing it here
// would re-implement store validation and reject requests the store's own
// rules evolve to accept. Duplicate REMOVE paths, being lossless to drop,
// are collapsed.
package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/snapdyn/operand"
	"github.com/shibukawa/snapdyn/path"
	"github.com/shibukawa/snapdyn/value"
)

var (
	// ErrMathValue is returned when a math action's operand is not a number
	// or value reference.
	ErrMathValue = errors.New("update: math operand must be a number or reference")
	// ErrListValue is returned when a list_append operand is not a list or
	// value reference.
	ErrListValue = errors.New("update: list_append operand must be a list or reference")
	// ErrAddValue is returned when an ADD value is not a number, set, or
	// value reference.
	ErrAddValue = errors.New("update: ADD value must be a number, a set, or a reference")
	// ErrDeleteValue is returned when a DELETE value is not a set or value
	// reference.
	ErrDeleteValue = errors.New("update: DELETE value must be a set or a reference")
)

// MathOp is the arithmetic operator of a SET math action.
type MathOp int

const (
	// OpAdd renders "+".
	OpAdd MathOp = iota
	// OpSub renders "-".
	OpSub
)

func (o MathOp) String() string {
	if o == OpSub {
		return "-"
	}

	return "+"
}

// Position says which side of list_append the appended list goes on.
type Position int

const (
	// After appends to the end of the destination list (the default).
	After Position = iota
	// Before prepends to the front.
	Before
)

type setKind int

const (
	setAssign setKind = iota
	setMath
	setListAppend
	setIfNotExists
)

// SetAction is one entry of a SET clause: a plain assignment, a math
// operation, a list append, or an if_not_exists default. Build one with
// Assign, Math, ListAppend, or IfNotExists.
type SetAction struct {
	kind setKind
	dst  path.Path
	src  path.Path // zero means dst
	val  operand.Operand
	op   MathOp
	num  value.Value
	list value.Value
	pos  Position
}

// Assign returns "dst = value".
func Assign(dst path.Path, val operand.Operand) SetAction {
	return SetAction{kind: setAssign, dst: dst, val: val}
}

// MathBuilder stages a SET math action. The terminal Add or Sub call
// consumes the builder and returns the immutable action.
type MathBuilder struct {
	dst path.Path
	src path.Path
}

// Math starts a math action assigning into dst. The source path defaults to
// dst unless Src is called.
func Math(dst path.Path) MathBuilder {
	return MathBuilder{dst: dst}
}

// Src sets the path whose value the operation reads.
func (b MathBuilder) Src(src path.Path) MathBuilder {
	b.src = src
	return b
}

// Add terminates the builder with "dst = src + num". The operand must be a
// number or a value reference.
func (b MathBuilder) Add(num value.Value) (SetAction, error) {
	return b.terminal(OpAdd, num)
}

// Sub terminates the builder with "dst = src - num".
func (b MathBuilder) Sub(num value.Value) (SetAction, error) {
	return b.terminal(OpSub, num)
}

func (b MathBuilder) terminal(op MathOp, num value.Value) (SetAction, error) {
	if num.Kind() != value.KindNumber && num.Kind() != value.KindRef {
		return SetAction{}, fmt.Errorf("%w: got %s", ErrMathValue, num.Kind())
	}

	return SetAction{kind: setMath, dst: b.dst, src: b.src, op: op, num: num}, nil
}

// ListAppendBuilder stages a SET list_append action. The terminal List call
// consumes the builder and returns the immutable action.
type ListAppendBuilder struct {
	dst path.Path
	src path.Path
	pos Position
}

// ListAppend starts a list_append action assigning into dst. The source list
// defaults to dst, and the appended list goes after the source unless Before
// is called.
func ListAppend(dst path.Path) ListAppendBuilder {
	return ListAppendBuilder{dst: dst}
}

// Src sets the path of the list being appended to.
func (b ListAppendBuilder) Src(src path.Path) ListAppendBuilder {
	b.src = src
	return b
}

// Before prepends the new elements instead of appending them.
func (b ListAppendBuilder) Before() ListAppendBuilder {
	b.pos = Before
	return b
}

// After appends the new elements to the end (the default).
func (b ListAppendBuilder) After() ListAppendBuilder {
	b.pos = After
	return b
}

// List terminates the builder with the list of elements to append. The
// operand must be a list or a value reference.
func (b ListAppendBuilder) List(list value.Value) (SetAction, error) {
	if list.Kind() != value.KindList && list.Kind() != value.KindRef {
		return SetAction{}, fmt.Errorf("%w: got %s", ErrListValue, list.Kind())
	}

	return SetAction{kind: setListAppend, dst: b.dst, src: b.src, pos: b.pos, list: list}, nil
}

// IfNotExistsBuilder stages a SET if_not_exists action. The terminal Value
// call consumes the builder and returns the immutable action.
type IfNotExistsBuilder struct {
	dst path.Path
	src path.Path
}

// IfNotExists starts an if_not_exists action assigning into dst. The checked
// path defaults to dst unless Src is called.
func IfNotExists(dst path.Path) IfNotExistsBuilder {
	return IfNotExistsBuilder{dst: dst}
}

// Src sets the path checked for existence.
func (b IfNotExistsBuilder) Src(src path.Path) IfNotExistsBuilder {
	b.src = src
	return b
}

// Value terminates the builder with the default used when the source path
// does not exist.
func (b IfNotExistsBuilder) Value(def operand.Operand) SetAction {
	return SetAction{kind: setIfNotExists, dst: b.dst, src: b.src, val: def}
}

func (a SetAction) source(s value.Substituter) string {
	if a.src.IsZero() {
		return a.dst.Express(s)
	}

	return a.src.Express(s)
}

// Express renders the action through the substituter.
func (a SetAction) Express(s value.Substituter) string {
	dst := a.dst.Express(s)

	switch a.kind {
	case setMath:
		return dst + " = " + a.source(s) + " " + a.op.String() + " " + a.num.Express(s)
	case setListAppend:
		first, second := a.source(s), a.list.Express(s)
		if a.pos == Before {
			first, second = second, first
		}

		return dst + " = list_append(" + first + ", " + second + ")"
	case setIfNotExists:
		return dst + " = if_not_exists(" + a.source(s) + ", " + a.val.Express(s) + ")"
	default:
		return dst + " = " + a.val.Express(s)
	}
}

func (a SetAction) String() string { return a.Express(value.Literal) }

// AddAction is one entry of an ADD clause: a numeric increment or a set
// union into dst.
type AddAction struct {
	dst path.Path
	val value.Value
}

// NewAdd builds an ADD action. The value must be a number, a set, or a
// value reference.
func NewAdd(dst path.Path, val value.Value) (AddAction, error) {
	if val.Kind() != value.KindNumber && !val.IsSet() && val.Kind() != value.KindRef {
		return AddAction{}, fmt.Errorf("%w: got %s", ErrAddValue, val.Kind())
	}

	return AddAction{dst: dst, val: val}, nil
}

// Express renders the action through the substituter.
func (a AddAction) Express(s value.Substituter) string {
	return a.dst.Express(s) + " " + a.val.Express(s)
}

func (a AddAction) String() string { return a.Express(value.Literal) }

// DeleteAction is one entry of a DELETE clause: a set difference applied
// to dst.
type DeleteAction struct {
	dst path.Path
	val value.Value
}

// NewDelete builds a DELETE action. The value must be a set or a value
// reference.
func NewDelete(dst path.Path, val value.Value) (DeleteAction, error) {
	if !val.IsSet() && val.Kind() != value.KindRef {
		return DeleteAction{}, fmt.Errorf("%w: got %s", ErrDeleteValue, val.Kind())
	}

	return DeleteAction{dst: dst, val: val}, nil
}

// Express renders the action through the substituter.
func (a DeleteAction) Express(s value.Substituter) string {
	return a.dst.Express(s) + " " + a.val.Express(s)
}

func (a DeleteAction) String() string { return a.Express(value.Literal) }

// Update aggregates the four optional action collections of one update
// expression. The zero Update is empty and ready to use; the appender
// methods return a new Update, leaving the receiver untouched.
type Update struct {
	set    []SetAction
	remove []path.Path
	add    []AddAction
	delete []DeleteAction
}

// Set appends SET actions.
func (u Update) Set(actions ...SetAction) Update {
	u.set = appendCopy(u.set, actions)
	return u
}

// Remove appends REMOVE paths, preserving order and collapsing duplicates.
func (u Update) Remove(paths ...path.Path) Update {
	out := appendCopy(u.remove, nil)

	for _, p := range paths {
		dup := false

		for _, existing := range out {
			if existing.Equal(p) {
				dup = true
				break
			}
		}

		if !dup {
			out = append(out, p)
		}
	}

	u.remove = out

	return u
}

// Add appends ADD actions.
func (u Update) Add(actions ...AddAction) Update {
	u.add = appendCopy(u.add, actions)
	return u
}

// Delete appends DELETE actions.
func (u Update) Delete(actions ...DeleteAction) Update {
	u.delete = appendCopy(u.delete, actions)
	return u
}

func appendCopy[T any](dst, src []T) []T {
	out := make([]T, 0, len(dst)+len(src))
	out = append(out, dst...)
	out = append(out, src...)

	return out
}

// IsEmpty reports whether the update carries no actions at all.
func (u Update) IsEmpty() bool {
	return len(u.set) == 0 && len(u.remove) == 0 && len(u.add) == 0 && len(u.delete) == 0
}

// Express renders the active clauses in the fixed order SET, REMOVE, ADD,
// DELETE, joined by single spaces; empty clauses are omitted.
func (u Update) Express(s value.Substituter) string {
	var clauses []string

	if len(u.set) > 0 {
		parts := make([]string, len(u.set))
		for i, a := range u.set {
			parts[i] = a.Express(s)
		}

		clauses = append(clauses, "SET "+strings.Join(parts, ", "))
	}

	if len(u.remove) > 0 {
		parts := make([]string, len(u.remove))
		for i, p := range u.remove {
			parts[i] = p.Express(s)
		}

		clauses = append(clauses, "REMOVE "+strings.Join(parts, ", "))
	}

	if len(u.add) > 0 {
		parts := make([]string, len(u.add))
		for i, a := range u.add {
			parts[i] = a.Express(s)
		}

		clauses = append(clauses, "ADD "+strings.Join(parts, ", "))
	}

	if len(u.delete) > 0 {
		parts := make([]string, len(u.delete))
		for i, a := range u.delete {
			parts[i] = a.Express(s)
		}

		clauses = append(clauses, "DELETE "+strings.Join(parts, ", "))
	}

	return strings.Join(clauses, " ")
}

func (u Update) String() string { return u.Express(value.Literal) }
