package codedom

// SwitchSection is one arm of a SwitchStatement.
type SwitchSection interface {
	switchSection()
}

// ReturnValueSection is `case label:` followed by its body and a return.
// SingleLine collapses a body-less section to `case label: return x;`.
type ReturnValueSection struct {
	Label      Expression
	Statements []Statement
	Return     *ReturnStatement
	SingleLine bool
}

// BreakSection is `case label:` followed by its body and `break;`.
type BreakSection struct {
	Label      Expression
	Statements []Statement
}

// FallThroughSection is a bare `case label:`.
type FallThroughSection struct {
	Label Expression
}

type DefaultBreakSection struct {
	Statements []Statement
}

type DefaultReturnSection struct {
	Statements []Statement
	Return     *ReturnStatement
}

func (*ReturnValueSection) switchSection()   {}
func (*BreakSection) switchSection()         {}
func (*FallThroughSection) switchSection()   {}
func (*DefaultBreakSection) switchSection()  {}
func (*DefaultReturnSection) switchSection() {}
