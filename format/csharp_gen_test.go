package format

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noHeader() Options {
	opts := DefaultOptions()
	opts.GeneratedHeader = false
	return opts
}

// generate runs fn against a fresh generator and returns the text written.
func generate(t *testing.T, fn func(g *CSharpGenerator, w io.Writer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(NewCSharpGenerator(), &buf))
	return buf.String()
}

func assertText(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generated text mismatch (-want +got):\n%s", diff)
	}
}

// reentrantWriter starts a second generation on the same generator from
// inside Write.
type reentrantWriter struct {
	g     *CSharpGenerator
	tried bool
	inner error
	buf   bytes.Buffer
}

func (w *reentrantWriter) Write(p []byte) (int, error) {
	if !w.tried {
		w.tried = true
		w.inner = w.g.GenerateExpression(io.Discard, codedom.Var("x"), DefaultOptions())
	}
	return w.buf.Write(p)
}

func TestGeneratorRebindConflict(t *testing.T) {
	g := NewCSharpGenerator()
	w := &reentrantWriter{g: g}

	require.NoError(t, g.GenerateExpression(w, codedom.Var("outer"), DefaultOptions()))
	require.True(t, w.tried)
	assert.True(t, errors.Is(w.inner, ErrSinkBound), "inner call returned %v", w.inner)
	assert.Equal(t, "outer", w.buf.String())

	// The sink is released once the outer call returns.
	var buf bytes.Buffer
	require.NoError(t, g.GenerateExpression(&buf, codedom.Var("again"), DefaultOptions()))
	assert.Equal(t, "again", buf.String())
}

func TestGeneratorConcurrentGenerators(t *testing.T) {
	unit := &codedom.CompileUnit{Namespaces: []*codedom.Namespace{{
		Name:  "Acme",
		Types: []*codedom.TypeDeclaration{{MemberBase: codedom.MemberBase{Name: "Widget"}}},
	}}}
	want, err := GenerateCSharp(unit, DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = GenerateCSharp(unit, DefaultOptions())
		}()
	}
	wg.Wait()
	for _, got := range results {
		assertText(t, string(want), string(got))
	}
}

type flushWriter struct {
	bytes.Buffer
	flushes int
}

func (w *flushWriter) Flush() error {
	w.flushes++
	return nil
}

func TestGeneratorFlushesSink(t *testing.T) {
	w := &flushWriter{}
	require.NoError(t, NewCSharpGenerator().GenerateStatement(w, &codedom.GotoStatement{Label: "end"}, DefaultOptions()))
	assert.Equal(t, 1, w.flushes)
	assert.Equal(t, "goto end;\n", w.String())
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestGeneratorWriteError(t *testing.T) {
	sinkErr := errors.New("disk full")
	err := NewCSharpGenerator().GenerateStatement(failingWriter{sinkErr}, &codedom.GotoStatement{Label: "end"}, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sinkErr))
}

func TestGeneratorUnsupportedNodes(t *testing.T) {
	tests := []struct {
		name string
		run  func(g *CSharpGenerator, w io.Writer) error
		want error
	}{
		{
			name: "nil compile unit",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateUnit(w, nil, DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "nil statement",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateStatement(w, nil, DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "nil expression",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateExpression(w, nil, DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "unknown primitive",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateExpression(w, codedom.Primitive(struct{}{}), DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "nil primitive",
			run: func(g *CSharpGenerator, w io.Writer) error {
				var p *codedom.PrimitiveExpression
				return g.GenerateExpression(w, p, DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "nil primitive operand",
			run: func(g *CSharpGenerator, w io.Writer) error {
				var p *codedom.PrimitiveExpression
				return g.GenerateExpression(w, codedom.Binary(codedom.Var("a"), codedom.OpAdd, p), DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "unknown operator",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateExpression(w, codedom.Binary(codedom.Var("a"), codedom.BinaryOperator(99), codedom.Var("b")), DefaultOptions())
			},
			want: ErrUnsupportedNode,
		},
		{
			name: "comment statement without comment",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateStatement(w, &codedom.CommentStatement{}, DefaultOptions())
			},
			want: ErrMissingPayload,
		},
		{
			name: "switch without check",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateStatement(w, &codedom.SwitchStatement{}, DefaultOptions())
			},
			want: ErrMissingPayload,
		},
		{
			name: "invoke without method",
			run: func(g *CSharpGenerator, w io.Writer) error {
				return g.GenerateExpression(w, &codedom.MethodInvokeExpression{}, DefaultOptions())
			},
			want: ErrMissingPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(NewCSharpGenerator(), io.Discard)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestOptionsNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input Options
		want  Options
	}{
		{
			name:  "zero value",
			input: Options{},
			want:  Options{IndentString: "    ", BraceStyle: BraceSameLine},
		},
		{
			name:  "C style",
			input: Options{IndentString: "\t", BraceStyle: "C"},
			want:  Options{IndentString: "\t", BraceStyle: BraceNewLine},
		},
		{
			name:  "Block style",
			input: Options{BraceStyle: "Block"},
			want:  Options{IndentString: "    ", BraceStyle: BraceSameLine},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.input.Normalize()); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
