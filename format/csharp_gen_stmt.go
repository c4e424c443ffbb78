package format

import (
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

func (e *emitter) statements(stmts []codedom.Statement) {
	for _, s := range stmts {
		e.statement(s, modeStatement)
		if e.failed() {
			return
		}
	}
}

// statement writes s. In modeForHeader the trailing terminator and line
// break of simple statements are left out.
func (e *emitter) statement(s codedom.Statement, mode statementMode) {
	if e.failed() {
		return
	}
	info := codedom.StatementInfo(s)
	if info == nil {
		e.fail(unsupportedNode(s))
		return
	}

	e.directives(info.StartDirectives)
	e.linePragmaStart(info.LinePragma)

	switch s := s.(type) {
	case *codedom.CommentStatement:
		if s.Comment == nil {
			e.fail(missingPayload("comment", s))
			return
		}
		e.comment(s.Comment)
	case *codedom.ReturnStatement:
		e.returnStatement(s)
	case *codedom.ConditionStatement:
		e.conditionStatement(s)
	case *codedom.TryStatement:
		e.tryStatement(s)
	case *codedom.AssignStatement:
		e.expression(s.Left, false)
		e.write(" = ")
		e.expression(s.Right, false)
		e.terminator(mode)
	case *codedom.AttachEventStatement:
		e.attachEventStatement(s)
	case *codedom.ExpressionStatement:
		e.expression(s.Expression, false)
		e.terminator(mode)
	case *codedom.IterationStatement:
		e.iterationStatement(s)
	case *codedom.ThrowStatement:
		e.write("throw")
		if s.Expression != nil {
			e.write(" ")
			e.expression(s.Expression, false)
		}
		e.writeLine(";")
	case *codedom.SnippetStatement:
		e.out.unindented(s.Text)
		if !strings.HasSuffix(s.Text, "\n") {
			e.newline()
		}
	case *codedom.VariableDeclarationStatement:
		e.write(TypeOutput(s.Type) + " " + CreateEscapedIdentifier(s.Name))
		if s.Init != nil {
			e.write(" = ")
			e.expression(s.Init, false)
		}
		e.terminator(mode)
	case *codedom.GotoStatement:
		e.writeLine("goto " + s.Label + ";")
	case *codedom.LabeledStatement:
		e.labeledStatement(s)
	case *codedom.SwitchStatement:
		e.switchStatement(s)
	default:
		e.fail(unsupportedNode(s))
		return
	}

	e.linePragmaEnd(info.LinePragma)
	e.directives(info.EndDirectives)
}

func (e *emitter) terminator(mode statementMode) {
	if mode != modeForHeader {
		e.writeLine(";")
	}
}

func (e *emitter) returnStatement(s *codedom.ReturnStatement) {
	e.write("return")
	if s.Expression != nil {
		e.write(" ")
		e.expression(s.Expression, false)
	}
	e.writeLine(";")
}

func (e *emitter) conditionStatement(s *codedom.ConditionStatement) {
	e.write("if (")
	e.expression(s.Condition, false)
	e.write(")")
	e.openBlock()
	e.statements(s.TrueStatements)
	if len(s.FalseStatements) > 0 {
		e.closeBlockBefore()
		e.write("else")
		e.openBlock()
		e.statements(s.FalseStatements)
	}
	e.closeBlock()
}

func (e *emitter) tryStatement(s *codedom.TryStatement) {
	e.write("try")
	e.openBlock()
	e.statements(s.TryStatements)
	for _, c := range s.CatchClauses {
		if c == nil {
			e.fail(missingPayload("catch clause", s))
			return
		}
		e.closeBlockBefore()
		e.write("catch (" + TypeOutput(c.ExceptionType))
		if c.VariableName != "" {
			e.write(" " + CreateEscapedIdentifier(c.VariableName))
		}
		e.write(")")
		e.openBlock()
		e.statements(c.Statements)
	}
	if len(s.FinallyStatements) > 0 {
		e.closeBlockBefore()
		e.write("finally")
		e.openBlock()
		e.statements(s.FinallyStatements)
	}
	e.closeBlock()
}

func (e *emitter) attachEventStatement(s *codedom.AttachEventStatement) {
	if s.Event == nil {
		e.fail(missingPayload("event", s))
		return
	}
	e.expression(s.Event, false)
	if s.Remove {
		e.write(" -= ")
	} else {
		e.write(" += ")
	}
	e.expression(s.Listener, false)
	e.writeLine(";")
}

func (e *emitter) iterationStatement(s *codedom.IterationStatement) {
	e.write("for (")
	if s.Init != nil {
		e.statement(s.Init, modeForHeader)
	}
	e.write("; ")
	if s.Test != nil {
		e.expression(s.Test, false)
	}
	e.write("; ")
	if s.Increment != nil {
		e.statement(s.Increment, modeForHeader)
	}
	e.write(")")
	e.openBlock()
	e.statements(s.Statements)
	e.closeBlock()
}

// labeledStatement writes the label one level to the left of the
// surrounding statements.
func (e *emitter) labeledStatement(s *codedom.LabeledStatement) {
	saved := e.out.indent
	e.out.out(1)
	e.writeLine(s.Label + ":")
	e.out.indent = saved
	if s.Statement != nil {
		e.statement(s.Statement, modeStatement)
	}
}
