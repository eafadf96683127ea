package path

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Path
	}{
		{
			name:  "single name",
			input: "foo",
			want:  New(Name("foo")),
		},
		{
			name:  "single index",
			input: "foo[0]",
			want:  New(IndexedField("foo", 0)),
		},
		{
			name:  "nested indexes",
			input: "foo[42][37][9]",
			want:  New(IndexedField("foo", 42, 37, 9)),
		},
		{
			name:  "dotted names",
			input: "foo.bar",
			want:  New(Name("foo"), Name("bar")),
		},
		{
			name:  "index then name",
			input: "foo[42].bar",
			want:  New(IndexedField("foo", 42), Name("bar")),
		},
		{
			name:  "name then index",
			input: "foo.bar[37]",
			want:  New(Name("foo"), IndexedField("bar", 37)),
		},
		{
			name:  "indexes on both segments",
			input: "foo[42][7].bar[37][9]",
			want:  New(IndexedField("foo", 42, 7), IndexedField("bar", 37, 9)),
		},
		{
			name:  "three segments",
			input: "foo[3][7].bar[2].baz",
			want:  New(IndexedField("foo", 3, 7), IndexedField("bar", 2), Name("baz")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			assert.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"foo[9",
		"foo[]",
		"foo][",
		"foo[",
		"foo]",
		"foo[0]bar",
		"foo[0]bar[3]",
		"foo[0][",
		"foo[0][]",
		"foo.bar[x]",
		"foo.bar[-1]",
		"[0]",
		"[0]foo",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.IsError(t, err, ErrInvalidPath)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"foo",
		"foo[0]",
		"foo[3][7].bar[2].baz",
		"a.b.c.d",
		"items[10].tags",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p, err := Parse(input)
			assert.NoError(t, err)
			assert.Equal(t, input, p.String())

			again, err := Parse(p.String())
			assert.NoError(t, err)
			assert.True(t, p.Equal(again))
		})
	}
}

func TestIndexedFieldCanonicalization(t *testing.T) {
	// An indexed field with no indexes is a plain name.
	elem := IndexedField("foo")
	assert.False(t, elem.IsIndexed())
	assert.True(t, Name("foo").Equal(elem))
	assert.Equal(t, "foo", elem.String())
}

func TestElementString(t *testing.T) {
	assert.Equal(t, "foo", Name("foo").String())
	assert.Equal(t, "foo[42]", IndexedField("foo", 42).String())
	assert.Equal(t, "foo[42][37][9]", IndexedField("foo", 42, 37, 9).String())
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "foo.bar", New(Name("foo"), Name("bar")).String())
	assert.Equal(t, "foo.bar[42]", New(Name("foo"), IndexedField("bar", 42)).String())
	assert.Equal(t, "foo[42].bar", New(IndexedField("foo", 42), Name("bar")).String())
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, "foo[1].bar", MustParse("foo[1].bar").String())
	assert.Panics(t, func() {
		MustParse("[0]")
	})
}

func TestIsZero(t *testing.T) {
	var zero Path
	assert.True(t, zero.IsZero())
	assert.False(t, MustParse("foo").IsZero())
}
