// Package value models the literal values that can appear in a compiled
// expression: scalars, sets, documents, and caller-supplied references.
//
// Numbers are backed by decimal.Decimal so that values like 3.14159265358979
// or 1e40 survive the round trip to the store without floating-point loss.
// A Value is immutable once constructed; collection constructors copy their
// input.
package value

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber is returned when a numeric literal cannot be parsed as a decimal.
var ErrInvalidNumber = errors.New("value: invalid decimal string")

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBinary
	KindBool
	KindNull
	KindStringSet
	KindNumberSet
	KindBinarySet
	KindList
	KindMap
	// KindRef is a caller-supplied substitution token. It bypasses value
	// placeholder allocation and is emitted verbatim as ":name".
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBinary:
		return "Binary"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindStringSet:
		return "StringSet"
	case KindNumberSet:
		return "NumberSet"
	case KindBinarySet:
		return "BinarySet"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindRef:
		return "Ref"
	default:
		return "Invalid"
	}
}

// Value is a tagged union over the literal kinds plus Ref.
// The zero Value has KindInvalid and must not be used.
type Value struct {
	kind Kind
	str  string // KindString, KindRef
	num  decimal.Decimal
	bin  []byte
	b    bool
	strs []string
	nums []decimal.Decimal
	bins [][]byte
	list []Value
	m    map[string]Value
}

// Substituter allocates substitution tokens for attribute names and literal
// values during rendering. It is implemented by the compiler's substitution
// table; AST nodes thread it through their Express methods.
type Substituter interface {
	// NameToken returns the token for one attribute name segment, e.g. "#0".
	NameToken(name string) string
	// ValueToken returns the token for one literal value, e.g. ":0".
	// Reference values never reach this method.
	ValueToken(v Value) string
}

// Literal is a Substituter that performs no substitution: names and values
// are rendered as themselves. It backs the String methods of the AST types.
var Literal Substituter = literal{}

type literal struct{}

func (literal) NameToken(name string) string { return name }
func (literal) ValueToken(v Value) string    { return v.String() }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value from a decimal.
func Number(d decimal.Decimal) Value { return Value{kind: KindNumber, num: d} }

// NumberFromString parses s as an arbitrary-precision decimal.
func NumberFromString(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	return Number(d), nil
}

// NumberFromInt returns a numeric Value from an integer.
func NumberFromInt(i int64) Value { return Number(decimal.NewFromInt(i)) }

// NumberFromFloat returns a numeric Value from a float.
func NumberFromFloat(f float64) Value { return Number(decimal.NewFromFloat(f)) }

// Binary returns a binary Value. The bytes are copied.
func Binary(b []byte) Value {
	return Value{kind: KindBinary, bin: append([]byte(nil), b...)}
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// StringSet returns a set of strings. The store treats sets as unordered;
// members are kept in the order given and are not deduplicated here.
func StringSet(members ...string) Value {
	return Value{kind: KindStringSet, strs: append([]string(nil), members...)}
}

// NumberSet returns a set of numbers.
func NumberSet(members ...decimal.Decimal) Value {
	return Value{kind: KindNumberSet, nums: append([]decimal.Decimal(nil), members...)}
}

// BinarySet returns a set of binary values. Members are copied.
func BinarySet(members ...[]byte) Value {
	bins := make([][]byte, len(members))
	for i, m := range members {
		bins[i] = append([]byte(nil), m...)
	}

	return Value{kind: KindBinarySet, bins: bins}
}

// List returns an ordered list of heterogeneous values.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Map returns a document Value. The map is copied.
func Map(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}

	return Value{kind: KindMap, m: m}
}

// Ref returns a reference to a value the caller supplies out of band under
// the given token name (without the leading colon). It renders as ":name"
// and never enters the substitution table.
func Ref(name string) Value { return Value{kind: KindRef, str: name} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether v is one of the three set kinds.
func (v Value) IsSet() bool {
	return v.kind == KindStringSet || v.kind == KindNumberSet || v.kind == KindBinarySet
}

// Str returns the string payload of a String value.
func (v Value) Str() string { return v.str }

// Num returns the decimal payload of a Number value.
func (v Value) Num() decimal.Decimal { return v.num }

// Bytes returns a copy of the payload of a Binary value.
func (v Value) Bytes() []byte { return append([]byte(nil), v.bin...) }

// Bool returns the payload of a Bool value.
func (v Value) Bool() bool { return v.b }

// Strings returns a copy of the members of a StringSet value.
func (v Value) Strings() []string { return append([]string(nil), v.strs...) }

// Numbers returns a copy of the members of a NumberSet value.
func (v Value) Numbers() []decimal.Decimal {
	return append([]decimal.Decimal(nil), v.nums...)
}

// Binaries returns a copy of the members of a BinarySet value.
func (v Value) Binaries() [][]byte {
	bins := make([][]byte, len(v.bins))
	for i, m := range v.bins {
		bins[i] = append([]byte(nil), m...)
	}

	return bins
}

// Items returns a copy of the items of a List value.
func (v Value) Items() []Value { return append([]Value(nil), v.list...) }

// Fields returns a copy of the fields of a Map value.
func (v Value) Fields() map[string]Value {
	m := make(map[string]Value, len(v.m))
	for k, f := range v.m {
		m[k] = f
	}

	return m
}

// RefName returns the token name of a Ref value, without the leading colon.
func (v Value) RefName() string { return v.str }

// Express renders v through the substituter: a literal value becomes its
// allocated token, a reference becomes the caller's ":name" verbatim.
func (v Value) Express(s Substituter) string {
	if v.kind == KindRef {
		return ":" + v.str
	}

	return s.ValueToken(v)
}

// Equal reports structural equality. Numbers compare by numeric value
// (2.5 equals 2.50), sets compare regardless of member order, lists and
// maps compare recursively.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindString, KindRef:
		return v.str == o.str
	case KindNumber:
		return v.num.Equal(o.num)
	case KindBinary:
		return string(v.bin) == string(o.bin)
	case KindBool:
		return v.b == o.b
	case KindNull:
		return true
	case KindStringSet:
		return stringSetEqual(v.strs, o.strs)
	case KindNumberSet:
		return numberSetEqual(v.nums, o.nums)
	case KindBinarySet:
		return binarySetEqual(v.bins, o.bins)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}

		for k, f := range v.m {
			of, ok := o.m[k]
			if !ok || !f.Equal(of) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func stringSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	contains := func(set []string, s string) bool {
		for _, m := range set {
			if m == s {
				return true
			}
		}

		return false
	}

	for _, m := range a {
		if !contains(b, m) {
			return false
		}
	}

	for _, m := range b {
		if !contains(a, m) {
			return false
		}
	}

	return true
}

func numberSetEqual(a, b []decimal.Decimal) bool {
	if len(a) != len(b) {
		return false
	}

	contains := func(set []decimal.Decimal, d decimal.Decimal) bool {
		for _, m := range set {
			if m.Equal(d) {
				return true
			}
		}

		return false
	}

	for _, m := range a {
		if !contains(b, m) {
			return false
		}
	}

	for _, m := range b {
		if !contains(a, m) {
			return false
		}
	}

	return true
}

func binarySetEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}

	contains := func(set [][]byte, v []byte) bool {
		for _, m := range set {
			if string(m) == string(v) {
				return true
			}
		}

		return false
	}

	for _, m := range a {
		if !contains(b, m) {
			return false
		}
	}

	for _, m := range b {
		if !contains(a, m) {
			return false
		}
	}

	return true
}

// String renders the value literally, for debugging and error messages.
// Strings are quoted, binary payloads are base64, sets and lists are
// brace/bracket enclosed, map fields are listed in key order.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return v.num.String()
	case KindBinary:
		return base64.StdEncoding.EncodeToString(v.bin)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNull:
		return "NULL"
	case KindStringSet:
		quoted := make([]string, len(v.strs))
		for i, m := range v.strs {
			quoted[i] = strconv.Quote(m)
		}

		return "{" + strings.Join(quoted, ", ") + "}"
	case KindNumberSet:
		nums := make([]string, len(v.nums))
		for i, m := range v.nums {
			nums[i] = m.String()
		}

		return "{" + strings.Join(nums, ", ") + "}"
	case KindBinarySet:
		bins := make([]string, len(v.bins))
		for i, m := range v.bins {
			bins[i] = base64.StdEncoding.EncodeToString(m)
		}

		return "{" + strings.Join(bins, ", ") + "}"
	case KindList:
		items := make([]string, len(v.list))
		for i, item := range v.list {
			items[i] = item.String()
		}

		return "[" + strings.Join(items, ", ") + "]"
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		fields := make([]string, len(keys))
		for i, k := range keys {
			fields[i] = strconv.Quote(k) + ": " + v.m[k].String()
		}

		return "{" + strings.Join(fields, ", ") + "}"
	case KindRef:
		return ":" + v.str
	default:
		return "<invalid>"
	}
}
