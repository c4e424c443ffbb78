package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/csgen/codedom"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(widgetUnit()))

	want := "namespace\tAcme\t-\t-\t-\n" +
		"class\tAcme.Widget\t-\t-\tpublic\n" +
		"method\tAcme.Widget.Run\tvoid\tint\tpublic\n" +
		"property\tAcme.Widget.Name\tstring\t-\tpublic\n" +
		"constructor\tAcme.Widget..ctor\t-\t-\tpublic\n" +
		"field\tAcme.Widget.count\tint\t-\tprivate\n"
	assertText(t, want, buf.String())
}

func TestLineEncoderNestedTypes(t *testing.T) {
	unit := &codedom.CompileUnit{Namespaces: []*codedom.Namespace{{
		Types: []*codedom.TypeDeclaration{{
			MemberBase: named("Outer"),
			Static:     true,
			Members: []codedom.Member{
				&codedom.TypeDeclaration{
					MemberBase: named("Callback"),
					Kind:       codedom.KindDelegate,
					ReturnType: codedom.NewTypeReference("System.Boolean"),
					Parameters: []*codedom.ParameterDeclaration{
						codedom.Param(codedom.NewTypeReference("System.String"), "s"),
						codedom.Param(codedom.NewTypeReference("System.Int32[]"), "xs"),
					},
				},
				&codedom.EntryPoint{},
			},
		}},
	}}}

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(unit))

	want := "namespace\t-\t-\t-\t-\n" +
		"class\tOuter\t-\t-\tstatic\n" +
		"delegate\tOuter.Callback\tbool\tstring,int[]\t-\n" +
		"entryPoint\tOuter.Main\tvoid\t-\t-\n"
	assertText(t, want, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(widgetUnit()))

	var got []jsonDeclaration
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	want := []jsonDeclaration{
		{Kind: "namespace", Path: "Acme", Name: "Acme"},
		{Kind: "class", Path: "Acme.Widget", Name: "Widget", Modifiers: []string{"public"}},
		{Kind: "method", Path: "Acme.Widget.Run", Name: "Run", Type: "void", Parameters: []string{"int"}, Modifiers: []string{"public"}},
		{Kind: "property", Path: "Acme.Widget.Name", Name: "Name", Type: "string", Modifiers: []string{"public"}},
		{Kind: "constructor", Path: "Acme.Widget..ctor", Name: ".ctor", Modifiers: []string{"public"}},
		{Kind: "field", Path: "Acme.Widget.count", Name: "count", Type: "int", Modifiers: []string{"private"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSONEncoder mismatch (-want +got):\n%s", diff)
	}
}

func TestCSharpEncoder(t *testing.T) {
	unit := &codedom.CompileUnit{Namespaces: []*codedom.Namespace{{
		Name:  "Acme",
		Types: []*codedom.TypeDeclaration{{MemberBase: named("Empty")}},
	}}}
	enc := NewCSharpEncoder(nil, noHeader())
	enc.unit = unit

	text, err := enc.MarshalText()
	require.NoError(t, err)
	assertText(t, "namespace Acme {\n    class Empty {\n    }\n}\n", string(text))

	var buf bytes.Buffer
	require.NoError(t, NewCSharpEncoder(&buf, noHeader()).Encode(unit))
	assertText(t, string(text), buf.String())
}

func TestEncodersImplementEncoder(t *testing.T) {
	for _, enc := range []Encoder{
		NewCSharpEncoder(&bytes.Buffer{}, DefaultOptions()),
		NewLineEncoder(&bytes.Buffer{}),
		NewJSONEncoder(&bytes.Buffer{}),
	} {
		require.NoError(t, enc.Encode(&codedom.CompileUnit{}))
	}
}
