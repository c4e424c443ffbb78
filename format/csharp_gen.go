package format

import (
	"bytes"
	"io"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("csgen.format")

// CSharpGenerator renders codedom trees as C# source.
//
// A generator holds at most one output sink at a time. Each Generate call
// binds its writer for the duration of the call; starting a call while
// another one is running on the same generator fails with ErrSinkBound.
// Use one generator per goroutine.
type CSharpGenerator struct {
	bound atomic.Bool
}

func NewCSharpGenerator() *CSharpGenerator {
	return &CSharpGenerator{}
}

// genContext is the per-call state: the type and member being emitted and
// whether namespace imports were already written by the compile unit.
type genContext struct {
	currentType   *codedom.TypeDeclaration
	currentMember codedom.Member
	usingsHoisted bool
}

type emitter struct {
	out  *indentWriter
	opts Options
	ctx  genContext
	err  error
}

// statementMode carries the for-header flag down the statement emitter.
type statementMode int

const (
	modeStatement statementMode = iota
	modeForHeader
)

func (g *CSharpGenerator) run(w io.Writer, opts Options, node any, fn func(e *emitter)) error {
	if !g.bound.CompareAndSwap(false, true) {
		return errors.WithHint(ErrSinkBound, "use a separate CSharpGenerator for each concurrent call")
	}
	defer g.bound.Store(false)

	opts = opts.Normalize()
	e := &emitter{
		out:  newIndentWriter(w, opts.IndentString),
		opts: opts,
	}
	fn(e)

	if e.err == nil {
		e.err = e.out.err
	}
	if e.err != nil {
		log.Debugf("generate %T: %s", node, e.err)
		return e.err
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (g *CSharpGenerator) GenerateUnit(w io.Writer, unit *codedom.CompileUnit, opts Options) error {
	return g.run(w, opts, unit, func(e *emitter) { e.compileUnit(unit) })
}

func (g *CSharpGenerator) GenerateNamespace(w io.Writer, ns *codedom.Namespace, opts Options) error {
	return g.run(w, opts, ns, func(e *emitter) { e.namespace(ns) })
}

func (g *CSharpGenerator) GenerateType(w io.Writer, t *codedom.TypeDeclaration, opts Options) error {
	return g.run(w, opts, t, func(e *emitter) { e.typeDeclaration(t) })
}

// GenerateMember renders a single member as if it were declared in a
// plain class.
func (g *CSharpGenerator) GenerateMember(w io.Writer, m codedom.Member, opts Options) error {
	return g.run(w, opts, m, func(e *emitter) {
		e.ctx.currentType = &codedom.TypeDeclaration{Kind: codedom.KindClass}
		e.member(m)
	})
}

func (g *CSharpGenerator) GenerateStatement(w io.Writer, s codedom.Statement, opts Options) error {
	return g.run(w, opts, s, func(e *emitter) { e.statement(s, modeStatement) })
}

func (g *CSharpGenerator) GenerateExpression(w io.Writer, x codedom.Expression, opts Options) error {
	return g.run(w, opts, x, func(e *emitter) { e.expression(x, false) })
}

// TypeOutput returns the C# spelling of t.
func (g *CSharpGenerator) TypeOutput(t *codedom.TypeReference) string {
	return TypeOutput(t)
}

// GenerateCSharp renders unit with opts into a byte slice.
func GenerateCSharp(unit *codedom.CompileUnit, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewCSharpGenerator().GenerateUnit(&buf, unit, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *emitter) failed() bool {
	return e.err != nil || e.out.err != nil
}

func (e *emitter) write(s string)     { e.out.write(s) }
func (e *emitter) writeLine(s string) { e.out.writeLine(s) }
func (e *emitter) newline()           { e.out.newline() }

// openBlock writes an opening brace according to the brace style and
// increases the indentation.
func (e *emitter) openBlock() {
	if e.opts.BraceStyle == BraceNewLine {
		e.newline()
		e.writeLine("{")
	} else {
		e.writeLine(" {")
	}
	e.out.in(1)
}

func (e *emitter) closeBlock() {
	e.out.out(1)
	e.writeLine("}")
}

// closeBlockBefore closes a block that is continued by another clause such
// as else, catch or finally.
func (e *emitter) closeBlockBefore() {
	e.out.out(1)
	e.write("}")
	if e.opts.ElseOnClosing {
		e.write(" ")
	} else {
		e.newline()
	}
}

func (e *emitter) blankLine() {
	if e.opts.BlankLinesBetweenMembers {
		e.newline()
	}
}
