package operand

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/snapdyn/path"
	"github.com/shibukawa/snapdyn/value"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		op   Operand
		want string
	}{
		{"path", Path(path.MustParse("foo[3].bar")), "foo[3].bar"},
		{"value", Value(value.String("abc")), `"abc"`},
		{"ref value", Value(value.Ref("v")), ":v"},
		{"size", Size(path.MustParse("tags")), "size(tags)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.op.String())
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindPath, Path(path.MustParse("a")).Kind())
	assert.Equal(t, KindValue, Value(value.Null()).Kind())
	assert.Equal(t, KindSize, Size(path.MustParse("a")).Kind())
}
