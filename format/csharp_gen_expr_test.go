package format

import (
	"io"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "null", input: nil, want: "null"},
		{name: "string", input: "hello", want: `"hello"`},
		{name: "string escapes", input: "a\"b\\c\n\t", want: `"a\"b\\c\n\t"`},
		{name: "apostrophe in string", input: "it's", want: `"it's"`},
		{name: "control character", input: "\x01", want: `"\u0001"`},
		{name: "line separator", input: "\u2028", want: `"\u2028"`},
		{name: "nul", input: "\x00", want: `"\0"`},
		{name: "char", input: codedom.Char('a'), want: `'a'`},
		{name: "apostrophe char", input: codedom.Char('\''), want: `'\''`},
		{name: "quote char", input: codedom.Char('"'), want: `'"'`},
		{name: "newline char", input: codedom.Char('\n'), want: `'\n'`},
		{name: "true", input: true, want: "true"},
		{name: "false", input: false, want: "false"},
		{name: "byte", input: uint8(255), want: "255"},
		{name: "short", input: int16(-3), want: "-3"},
		{name: "int32", input: int32(42), want: "42"},
		{name: "int", input: 7, want: "7"},
		{name: "long", input: int64(10000000000), want: "10000000000"},
		{name: "double", input: 1.5, want: "1.5"},
		{name: "whole double", input: 2.0, want: "2"},
		{name: "large double", input: 1e20, want: "1E+20"},
		{name: "small double", input: 1e-7, want: "1E-07"},
		{name: "float", input: float32(1.5), want: "1.5F"},
		{name: "large float", input: float32(1e10), want: "1E+10F"},
		{name: "NaN", input: math.NaN(), want: "double.NaN"},
		{name: "positive infinity", input: math.Inf(1), want: "double.PositiveInfinity"},
		{name: "float negative infinity", input: float32(math.Inf(-1)), want: "float.NegativeInfinity"},
		{name: "decimal", input: decimal(t, "1.25").Value, want: "1.25m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrimitiveLiteral(tt.input)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("PrimitiveLiteral(%#v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func decimal(t *testing.T, s string) *codedom.PrimitiveExpression {
	t.Helper()
	d, err := codedom.Decimal(s)
	require.NoError(t, err)
	return d
}

func TestPrimitiveLiteralUnsupported(t *testing.T) {
	_, err := PrimitiveLiteral(uint32(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedNode))
}

func TestGenerateExpression(t *testing.T) {
	ref := codedom.NewTypeReference
	a, b, c, d := codedom.Var("a"), codedom.Var("b"), codedom.Var("c"), codedom.Var("d")

	tests := []struct {
		name string
		expr codedom.Expression
		want string
	}{
		{
			name: "simple binary",
			expr: codedom.Binary(a, codedom.OpMultiply, b),
			want: "(a * b)",
		},
		{
			name: "nested binary breaks the line",
			expr: codedom.Binary(codedom.Binary(a, codedom.OpAdd, b), codedom.OpAdd, c),
			want: "((a + b)\n            + c)",
		},
		{
			name: "left-deep chain indents once",
			expr: codedom.Binary(
				codedom.Binary(codedom.Binary(a, codedom.OpAdd, b), codedom.OpAdd, c),
				codedom.OpAdd, d),
			want: "(((a + b)\n            + c)\n            + d)",
		},
		{
			name: "boolean operators",
			expr: codedom.Binary(a, codedom.OpBooleanAnd, codedom.Binary(b, codedom.OpIdentityInequality, codedom.Primitive(nil))),
			want: "(a\n            && (b != null))",
		},
		{
			name: "cast",
			expr: &codedom.CastExpression{TargetType: ref("System.Int32"), Expression: a},
			want: "((int)(a))",
		},
		{
			name: "array with initializers",
			expr: &codedom.ArrayCreateExpression{CreateType: ref("System.Int32"), Initializers: []codedom.Expression{codedom.Primitive(1), codedom.Primitive(2)}},
			want: "new int[] {\n    1,\n    2\n}",
		},
		{
			name: "empty initializers use the size",
			expr: &codedom.ArrayCreateExpression{CreateType: ref("System.String[]"), Initializers: []codedom.Expression{}},
			want: "new string[0]",
		},
		{
			name: "empty initializers with a size expression",
			expr: &codedom.ArrayCreateExpression{CreateType: ref("System.Int32"), Initializers: []codedom.Expression{}, SizeExpression: codedom.Var("n")},
			want: "new int[n]",
		},
		{
			name: "array with size",
			expr: &codedom.ArrayCreateExpression{CreateType: ref("System.Byte"), Size: 16},
			want: "new byte[16]",
		},
		{
			name: "array with size expression",
			expr: &codedom.ArrayCreateExpression{CreateType: ref("System.Byte"), SizeExpression: codedom.Var("n")},
			want: "new byte[n]",
		},
		{
			name: "object creation",
			expr: &codedom.ObjectCreateExpression{CreateType: ref("System.Text.StringBuilder"), Parameters: []codedom.Expression{codedom.Primitive("a"), codedom.Primitive(4)}},
			want: `new System.Text.StringBuilder("a", 4)`,
		},
		{
			name: "generic method call",
			expr: &codedom.MethodInvokeExpression{Method: &codedom.MethodReference{
				Target:        &codedom.TypeReferenceExpression{Type: ref("System.Linq.Enumerable")},
				MethodName:    "Empty",
				TypeArguments: []*codedom.TypeReference{ref("System.Int32")},
			}},
			want: "System.Linq.Enumerable.Empty<int>()",
		},
		{
			name: "call on binary target",
			expr: codedom.Invoke(codedom.Binary(a, codedom.OpAdd, b), "ToString"),
			want: "((a + b)).ToString()",
		},
		{
			name: "indexers",
			expr: &codedom.ArrayIndexerExpression{Target: a, Indices: []codedom.Expression{codedom.Primitive(1), codedom.Primitive(2)}},
			want: "a[1, 2]",
		},
		{
			name: "property of this",
			expr: &codedom.PropertyReference{Target: &codedom.ThisReference{}, PropertyName: "Name"},
			want: "this.Name",
		},
		{
			name: "field of base",
			expr: &codedom.FieldReference{Target: &codedom.BaseReference{}, FieldName: "count"},
			want: "base.count",
		},
		{name: "setter value", expr: &codedom.PropertySetValueReference{}, want: "value"},
		{name: "typeof", expr: &codedom.TypeOfExpression{Type: ref("System.String")}, want: "typeof(string)"},
		{name: "default", expr: &codedom.DefaultValueExpression{Type: ref("System.Int32")}, want: "default(int)"},
		{name: "argument", expr: codedom.Arg("input"), want: "input"},
		{
			name: "out argument",
			expr: &codedom.DirectionExpression{Direction: codedom.DirectionOut, Expression: codedom.Var("result")},
			want: "out result",
		},
		{
			name: "delegate creation",
			expr: &codedom.DelegateCreateExpression{DelegateType: ref("System.EventHandler"), Target: &codedom.ThisReference{}, MethodName: "OnClick"},
			want: "new System.EventHandler(this.OnClick)",
		},
		{
			name: "delegate invocation",
			expr: &codedom.DelegateInvokeExpression{Target: codedom.Var("callback"), Parameters: []codedom.Expression{codedom.Primitive(true)}},
			want: "callback(true)",
		},
		{
			name: "ref parameter declaration",
			expr: &codedom.ParameterDeclaration{Name: "x", Type: ref("System.Int32"), Direction: codedom.DirectionRef},
			want: "ref int x",
		},
		{name: "snippet", expr: &codedom.SnippetExpression{Text: "x => x * 2"}, want: "x => x * 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generate(t, func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateExpression(w, tt.expr, noHeader())
			})
			assertText(t, tt.want, got)
		})
	}
}
