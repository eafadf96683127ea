package snapdyn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	"github.com/shibukawa/snapdyn/condition"
	"github.com/shibukawa/snapdyn/key"
	"github.com/shibukawa/snapdyn/operand"
	"github.com/shibukawa/snapdyn/path"
	"github.com/shibukawa/snapdyn/value"
)

// The fixtures in testdata/compile describe conditions declaratively and the
// exact clause text and substitution maps their compilation must produce.
// Operands are written as small literals: a decimal is a number, 'quoted'
// text is a string, ":name" is a value reference, "size(p)" applies the size
// function, anything else is a document path.

type condSpec struct {
	Cmp        []string   `yaml:"cmp"`        // [left, comparator, right]
	Exists     string     `yaml:"exists"`     // path
	NotExists  string     `yaml:"notExists"`  // path
	BeginsWith []string   `yaml:"beginsWith"` // [path, prefix]
	Contains   []string   `yaml:"contains"`   // [path, operand]
	Between    []string   `yaml:"between"`    // [operand, lower, upper]
	In         []string   `yaml:"in"`         // [operand, item...]
	And        []condSpec `yaml:"and"`        // left-folded
	Or         []condSpec `yaml:"or"`
	Not        *condSpec  `yaml:"not"`
}

type compileCase struct {
	Name       string    `yaml:"name"`
	Condition  *condSpec `yaml:"condition"`
	Filter     *condSpec `yaml:"filter"`
	Key        *condSpec `yaml:"key"`
	Projection *[]string `yaml:"projection"`

	Expect struct {
		Condition    *string           `yaml:"condition"`
		Filter       *string           `yaml:"filter"`
		KeyCondition *string           `yaml:"keyCondition"`
		Projection   *string           `yaml:"projection"`
		Names        map[string]string `yaml:"names"`
		Values       map[string]string `yaml:"values"`
	} `yaml:"expect"`
}

func toOperand(t *testing.T, s string) operand.Operand {
	t.Helper()

	switch {
	case strings.HasPrefix(s, ":"):
		return operand.Value(value.Ref(s[1:]))
	case strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") && len(s) >= 2:
		return operand.Value(value.String(s[1 : len(s)-1]))
	case strings.HasPrefix(s, "size(") && strings.HasSuffix(s, ")"):
		return operand.Size(path.MustParse(s[len("size(") : len(s)-1]))
	}

	if d, err := decimal.NewFromString(s); err == nil {
		return operand.Value(value.Number(d))
	}

	return operand.Path(path.MustParse(s))
}

func toComparator(t *testing.T, s string) condition.Comparator {
	t.Helper()

	switch s {
	case "=":
		return condition.Eq
	case "<>":
		return condition.Ne
	case "<":
		return condition.Lt
	case "<=":
		return condition.Le
	case ">":
		return condition.Gt
	case ">=":
		return condition.Ge
	default:
		t.Fatalf("unknown comparator %q", s)
		return condition.Eq
	}
}

func buildCondition(t *testing.T, spec condSpec) condition.Condition {
	t.Helper()

	var c condition.Condition

	switch {
	case len(spec.Cmp) == 3:
		c = condition.Compare(toComparator(t, spec.Cmp[1]), toOperand(t, spec.Cmp[0]), toOperand(t, spec.Cmp[2]))
	case spec.Exists != "":
		c = condition.AttributeExists(path.MustParse(spec.Exists))
	case spec.NotExists != "":
		c = condition.AttributeNotExists(path.MustParse(spec.NotExists))
	case len(spec.BeginsWith) == 2:
		if strings.HasPrefix(spec.BeginsWith[1], ":") {
			c = condition.BeginsWithRef(path.MustParse(spec.BeginsWith[0]), spec.BeginsWith[1][1:])
		} else {
			c = condition.BeginsWith(path.MustParse(spec.BeginsWith[0]), spec.BeginsWith[1])
		}
	case len(spec.Contains) == 2:
		c = condition.Contains(path.MustParse(spec.Contains[0]), toOperand(t, spec.Contains[1]))
	case len(spec.Between) == 3:
		c = condition.Between(toOperand(t, spec.Between[0]), toOperand(t, spec.Between[1]), toOperand(t, spec.Between[2]))
	case len(spec.In) > 1:
		rest := make([]operand.Operand, len(spec.In)-2)
		for i, item := range spec.In[2:] {
			rest[i] = toOperand(t, item)
		}

		c = condition.In(toOperand(t, spec.In[0]), toOperand(t, spec.In[1]), rest...)
	case spec.Not != nil:
		c = buildCondition(t, *spec.Not).Not()
	case len(spec.And) > 0, len(spec.Or) > 0:
		// handled below
	default:
		t.Fatalf("empty condition spec")
	}

	for i, sub := range spec.And {
		if i == 0 && c.IsZero() {
			c = buildCondition(t, sub)
			continue
		}

		c = c.And(buildCondition(t, sub))
	}

	for i, sub := range spec.Or {
		if i == 0 && c.IsZero() {
			c = buildCondition(t, sub)
			continue
		}

		c = c.Or(buildCondition(t, sub))
	}

	return c
}

func buildKeyCondition(t *testing.T, spec condSpec) key.Condition {
	t.Helper()

	switch {
	case len(spec.Cmp) == 3:
		k := key.New(path.MustParse(spec.Cmp[0]))
		right := toOperand(t, spec.Cmp[2])

		switch spec.Cmp[1] {
		case "=":
			return k.Equal(right)
		case "<":
			return k.LessThan(right)
		case "<=":
			return k.LessThanOrEqual(right)
		case ">":
			return k.GreaterThan(right)
		case ">=":
			return k.GreaterThanOrEqual(right)
		default:
			t.Fatalf("comparator %q is not valid in a key condition", spec.Cmp[1])
		}
	case len(spec.BeginsWith) == 2:
		return key.New(path.MustParse(spec.BeginsWith[0])).BeginsWith(spec.BeginsWith[1])
	case len(spec.Between) == 3:
		return key.New(path.MustParse(spec.Between[0])).
			Between(toOperand(t, spec.Between[1]), toOperand(t, spec.Between[2]))
	case len(spec.And) == 2:
		return buildKeyCondition(t, spec.And[0]).And(buildKeyCondition(t, spec.And[1]))
	}

	t.Fatalf("unsupported key condition spec")

	return key.Condition{}
}

func TestCompileAcceptance(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "compile", "*.yaml"))
	assert.NoError(t, err)
	assert.NotZero(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		assert.NoError(t, err)

		var doc struct {
			Cases []compileCase `yaml:"cases"`
		}

		assert.NoError(t, yaml.Unmarshal(data, &doc))

		for _, tc := range doc.Cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				b := NewBuilder()

				if tc.Condition != nil {
					b = b.WithCondition(buildCondition(t, *tc.Condition))
				}

				if tc.Filter != nil {
					b = b.WithFilter(buildCondition(t, *tc.Filter))
				}

				if tc.Key != nil {
					b = b.WithKeyCondition(buildKeyCondition(t, *tc.Key))
				}

				if tc.Projection != nil {
					paths := make([]path.Path, len(*tc.Projection))
					for i, p := range *tc.Projection {
						paths[i] = path.MustParse(p)
					}

					b = b.WithProjection(paths...)
				}

				expr := b.Build()

				assertClause(t, "condition", tc.Expect.Condition, expr.Condition)
				assertClause(t, "filter", tc.Expect.Filter, expr.Filter)
				assertClause(t, "keyCondition", tc.Expect.KeyCondition, expr.KeyCondition)
				assertClause(t, "projection", tc.Expect.Projection, expr.Projection)

				if tc.Expect.Names != nil {
					assert.Equal(t, tc.Expect.Names, expr.Names)
				}

				if tc.Expect.Values != nil {
					rendered := make(map[string]string, len(expr.Values))
					for token, v := range expr.Values {
						rendered[token] = v.String()
					}

					assert.Equal(t, tc.Expect.Values, rendered)
				}
			})
		}
	}
}

func assertClause(t *testing.T, name string, want, got *string) {
	t.Helper()

	if want == nil {
		if got != nil {
			t.Fatalf("%s: expected absent clause, got %q", name, *got)
		}

		return
	}

	if got == nil {
		t.Fatalf("%s: expected %q, clause is absent", name, *want)
	}

	assert.Equal(t, *want, *got)
}
