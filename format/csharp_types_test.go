package format

import (
	"testing"

	"github.com/dhamidi/csgen/codedom"
	"github.com/google/go-cmp/cmp"
)

func TestTypeOutput(t *testing.T) {
	ref := codedom.NewTypeReference

	tests := []struct {
		name  string
		input *codedom.TypeReference
		want  string
	}{
		{name: "nil is void", input: nil, want: "void"},
		{name: "empty name is void", input: &codedom.TypeReference{}, want: "void"},
		{name: "System.Void", input: ref("System.Void"), want: "void"},
		{name: "alias", input: ref("System.Int32"), want: "int"},
		{name: "alias ignores case", input: ref("system.string"), want: "string"},
		{name: "alias ignores global", input: &codedom.TypeReference{BaseType: "System.Boolean", Global: true}, want: "bool"},
		{name: "unaliased", input: ref("System.Text.StringBuilder"), want: "System.Text.StringBuilder"},
		{name: "single array", input: ref("System.Byte[]"), want: "byte[]"},
		{name: "rank two", input: ref("int[,]"), want: "int[,]"},
		{name: "rank three", input: codedom.ArrayOf(ref("System.Double"), 3), want: "double[,,]"},
		{name: "jagged", input: ref("System.Int32[][,]"), want: "int[][,]"},
		{
			name:  "generic",
			input: ref("System.Collections.Generic.Dictionary`2", ref("System.String"), ref("System.Int32")),
			want:  "System.Collections.Generic.Dictionary<string, int>",
		},
		{
			name:  "generic arity added",
			input: ref("System.Collections.Generic.List", ref("System.Int32[]")),
			want:  "System.Collections.Generic.List<int[]>",
		},
		{
			name:  "nested generic",
			input: ref("Outer`1+Inner`1", ref("T"), ref("U")),
			want:  "Outer<T>.Inner<U>",
		},
		{
			name:  "array of generic",
			input: codedom.ArrayOf(ref("System.Nullable`1", ref("System.Int64")), 1),
			want:  "System.Nullable<long>[]",
		},
		{name: "global", input: &codedom.TypeReference{BaseType: "Acme.Widget", Global: true}, want: "global::Acme.Widget"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOutput(tt.input); got != tt.want {
				t.Errorf("TypeOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitGenericName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []genericSegment
	}{
		{name: "plain", input: "Widget", want: []genericSegment{{Name: "Widget"}}},
		{name: "dotted", input: "A.B", want: []genericSegment{{Name: "A"}, {Name: "B"}}},
		{name: "generic", input: "A.B`2", want: []genericSegment{{Name: "A"}, {Name: "B", Arity: 2}}},
		{name: "nested", input: "Outer`1+Inner", want: []genericSegment{{Name: "Outer", Arity: 1}, {Name: "Inner"}}},
		{name: "two digit arity", input: "Tuple`10", want: []genericSegment{{Name: "Tuple", Arity: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitGenericName(tt.input)); diff != "" {
				t.Errorf("splitGenericName() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeneratorTypeOutput(t *testing.T) {
	g := NewCSharpGenerator()
	if got := g.TypeOutput(codedom.NewTypeReference("System.Object")); got != "object" {
		t.Errorf("TypeOutput() = %q, want object", got)
	}
}
