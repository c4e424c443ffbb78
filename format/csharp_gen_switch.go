package format

import (
	"github.com/dhamidi/csgen/codedom"
)

func (e *emitter) switchStatement(s *codedom.SwitchStatement) {
	if s.Check == nil {
		e.fail(missingPayload("switch expression", s))
		return
	}
	e.write("switch(")
	e.expression(s.Check, false)
	e.write(")")
	e.openBlock()
	for _, section := range s.Sections {
		e.switchSection(section)
		if e.failed() {
			return
		}
	}
	e.closeBlock()
}

func (e *emitter) switchSection(section codedom.SwitchSection) {
	switch s := section.(type) {
	case *codedom.ReturnValueSection:
		if s.Return == nil {
			e.fail(missingPayload("return statement", s))
			return
		}
		if !e.caseLabel(s.Label, s) {
			return
		}
		if s.SingleLine && len(s.Statements) == 0 {
			e.write(" ")
			e.statement(s.Return, modeStatement)
			return
		}
		e.sectionBlock(s.Statements, s.Return)
	case *codedom.BreakSection:
		if !e.caseLabel(s.Label, s) {
			return
		}
		e.sectionBlock(s.Statements, nil)
	case *codedom.FallThroughSection:
		if !e.caseLabel(s.Label, s) {
			return
		}
		e.newline()
	case *codedom.DefaultBreakSection:
		e.write("default:")
		e.sectionBlock(s.Statements, nil)
	case *codedom.DefaultReturnSection:
		if s.Return == nil {
			e.fail(missingPayload("return statement", s))
			return
		}
		e.write("default:")
		e.sectionBlock(s.Statements, s.Return)
	default:
		e.fail(unsupportedNode(section))
	}
}

// caseLabel writes `case label:` and reports whether a label was present.
func (e *emitter) caseLabel(label codedom.Expression, section codedom.SwitchSection) bool {
	if label == nil {
		e.fail(missingPayload("case label", section))
		return false
	}
	e.write("case ")
	e.expression(label, false)
	e.write(":")
	return true
}

// sectionBlock writes the braced body of a section, closed by ret or by a
// break when ret is nil.
func (e *emitter) sectionBlock(body []codedom.Statement, ret *codedom.ReturnStatement) {
	e.openBlock()
	e.statements(body)
	if ret != nil {
		e.statement(ret, modeStatement)
	} else {
		e.writeLine("break;")
	}
	e.closeBlock()
}
