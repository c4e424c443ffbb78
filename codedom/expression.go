package codedom

import (
	"math/big"

	"github.com/cockroachdb/errors"
)

// Expression is implemented by every expression variant.
type Expression interface {
	expression()
}

type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulus
	OpAssign
	OpIdentityInequality
	OpIdentityEquality
	OpValueEquality
	OpBitwiseOr
	OpBitwiseAnd
	OpBooleanOr
	OpBooleanAnd
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
)

var operatorTokens = [...]string{
	OpAdd:                "+",
	OpSubtract:           "-",
	OpMultiply:           "*",
	OpDivide:             "/",
	OpModulus:            "%",
	OpAssign:             "=",
	OpIdentityInequality: "!=",
	OpIdentityEquality:   "==",
	OpValueEquality:      "==",
	OpBitwiseOr:          "|",
	OpBitwiseAnd:         "&",
	OpBooleanOr:          "||",
	OpBooleanAnd:         "&&",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
}

// Token returns the C# token of op, or "" for an unknown operator.
func (op BinaryOperator) Token() string {
	if op < 0 || int(op) >= len(operatorTokens) {
		return ""
	}
	return operatorTokens[op]
}

type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
	DirectionRef
)

type BinaryExpression struct {
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

type CastExpression struct {
	TargetType *TypeReference
	Expression Expression
}

// ArrayCreateExpression renders the initializer form when Initializers is
// non-nil and the sized form otherwise. SizeExpression wins over Size.
type ArrayCreateExpression struct {
	CreateType     *TypeReference
	Initializers   []Expression
	Size           int
	SizeExpression Expression
}

type ArrayIndexerExpression struct {
	Target  Expression
	Indices []Expression
}

type IndexerExpression struct {
	Target  Expression
	Indices []Expression
}

type ObjectCreateExpression struct {
	CreateType *TypeReference
	Parameters []Expression
}

// MethodReference names a method on Target. A nil Target renders the bare
// method name.
type MethodReference struct {
	Target        Expression
	MethodName    string
	TypeArguments []*TypeReference
}

type MethodInvokeExpression struct {
	Method     *MethodReference
	Parameters []Expression
}

type DelegateCreateExpression struct {
	DelegateType *TypeReference
	Target       Expression
	MethodName   string
}

type DelegateInvokeExpression struct {
	Target     Expression
	Parameters []Expression
}

// PrimitiveExpression is a literal. Supported values are nil, string, Char,
// bool, uint8, int16, int32, int, int64, float32, float64 and *big.Float
// (rendered as a decimal).
type PrimitiveExpression struct {
	Value any
}

// Char is a UTF-16 character literal. It is distinct from int32 so that
// rune-typed values are not rendered as characters by accident.
type Char rune

type FieldReference struct {
	Target    Expression
	FieldName string
}

type PropertyReference struct {
	Target       Expression
	PropertyName string
}

type EventReference struct {
	Target    Expression
	EventName string
}

type VariableReference struct {
	VariableName string
}

type ArgumentReference struct {
	ParameterName string
}

type ThisReference struct{}

type BaseReference struct{}

// PropertySetValueReference is the implicit `value` of a property setter.
type PropertySetValueReference struct{}

type TypeReferenceExpression struct {
	Type *TypeReference
}

type TypeOfExpression struct {
	Type *TypeReference
}

type DefaultValueExpression struct {
	Type *TypeReference
}

// ParameterDeclaration is a formal parameter. Attributes named
// System.ParamArrayAttribute mark a params array.
type ParameterDeclaration struct {
	Name       string
	Type       *TypeReference
	Direction  Direction
	Attributes []*Attribute
}

type DirectionExpression struct {
	Direction  Direction
	Expression Expression
}

// SnippetExpression is raw expression text.
type SnippetExpression struct {
	Text string
}

func (*BinaryExpression) expression()          {}
func (*CastExpression) expression()            {}
func (*ArrayCreateExpression) expression()     {}
func (*ArrayIndexerExpression) expression()    {}
func (*IndexerExpression) expression()         {}
func (*ObjectCreateExpression) expression()    {}
func (*MethodReference) expression()           {}
func (*MethodInvokeExpression) expression()    {}
func (*DelegateCreateExpression) expression()  {}
func (*DelegateInvokeExpression) expression()  {}
func (*PrimitiveExpression) expression()       {}
func (*FieldReference) expression()            {}
func (*PropertyReference) expression()         {}
func (*EventReference) expression()            {}
func (*VariableReference) expression()         {}
func (*ArgumentReference) expression()         {}
func (*ThisReference) expression()             {}
func (*BaseReference) expression()             {}
func (*PropertySetValueReference) expression() {}
func (*TypeReferenceExpression) expression()   {}
func (*TypeOfExpression) expression()          {}
func (*DefaultValueExpression) expression()    {}
func (*ParameterDeclaration) expression()      {}
func (*DirectionExpression) expression()       {}
func (*SnippetExpression) expression()         {}

// Primitive returns a literal expression for v.
func Primitive(v any) *PrimitiveExpression {
	return &PrimitiveExpression{Value: v}
}

// Decimal returns a decimal literal parsed from s.
func Decimal(s string) (*PrimitiveExpression, error) {
	f, ok := new(big.Float).SetPrec(128).SetString(s)
	if !ok {
		return nil, errors.Newf("invalid decimal literal %q", s)
	}
	return &PrimitiveExpression{Value: f}, nil
}

func Var(name string) *VariableReference {
	return &VariableReference{VariableName: name}
}

func Arg(name string) *ArgumentReference {
	return &ArgumentReference{ParameterName: name}
}

func Binary(left Expression, op BinaryOperator, right Expression) *BinaryExpression {
	return &BinaryExpression{Left: left, Operator: op, Right: right}
}

// Invoke builds a call of method on target.
func Invoke(target Expression, method string, args ...Expression) *MethodInvokeExpression {
	return &MethodInvokeExpression{
		Method:     &MethodReference{Target: target, MethodName: method},
		Parameters: args,
	}
}

func Param(typ *TypeReference, name string) *ParameterDeclaration {
	return &ParameterDeclaration{Name: name, Type: typ}
}
