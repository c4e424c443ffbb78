package codedom

// Statement is implemented by every statement variant.
type Statement interface {
	statementBase() *StatementBase
}

// StatementBase carries the directives and line pragma wrapped around every
// statement.
type StatementBase struct {
	StartDirectives []Directive
	EndDirectives   []Directive
	LinePragma      *LinePragma
}

func (s *StatementBase) statementBase() *StatementBase { return s }

// StatementInfo returns the shared statement data of s.
func StatementInfo(s Statement) *StatementBase {
	if s == nil {
		return nil
	}
	return s.statementBase()
}

type CommentStatement struct {
	StatementBase
	Comment *Comment
}

type ReturnStatement struct {
	StatementBase
	Expression Expression
}

type ConditionStatement struct {
	StatementBase
	Condition       Expression
	TrueStatements  []Statement
	FalseStatements []Statement
}

type CatchClause struct {
	ExceptionType *TypeReference
	VariableName  string
	Statements    []Statement
}

type TryStatement struct {
	StatementBase
	TryStatements     []Statement
	CatchClauses      []*CatchClause
	FinallyStatements []Statement
}

type AssignStatement struct {
	StatementBase
	Left  Expression
	Right Expression
}

// AttachEventStatement subscribes Listener to Event; Remove selects the
// unsubscribe form.
type AttachEventStatement struct {
	StatementBase
	Event    *EventReference
	Listener Expression
	Remove   bool
}

type ExpressionStatement struct {
	StatementBase
	Expression Expression
}

type IterationStatement struct {
	StatementBase
	Init       Statement
	Test       Expression
	Increment  Statement
	Statements []Statement
}

type ThrowStatement struct {
	StatementBase
	Expression Expression
}

// SnippetStatement is raw statement text emitted without indentation.
type SnippetStatement struct {
	StatementBase
	Text string
}

type VariableDeclarationStatement struct {
	StatementBase
	Type *TypeReference
	Name string
	Init Expression
}

type GotoStatement struct {
	StatementBase
	Label string
}

// LabeledStatement places Label before Statement, which may be nil.
type LabeledStatement struct {
	StatementBase
	Label     string
	Statement Statement
}

type SwitchStatement struct {
	StatementBase
	Check    Expression
	Sections []SwitchSection
}
