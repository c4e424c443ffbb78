package format

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
)

// binaryContinuationIndent is the extra indentation of the continuation
// lines of a nested binary expression.
const binaryContinuationIndent = 3

// expression writes x. nested is set while emitting the operands of a
// binary expression whose continuation lines are already indented.
func (e *emitter) expression(x codedom.Expression, nested bool) {
	if e.failed() {
		return
	}
	switch x := x.(type) {
	case *codedom.BinaryExpression:
		e.binary(x, nested)
	case *codedom.CastExpression:
		e.write("((" + TypeOutput(x.TargetType) + ")(")
		e.expression(x.Expression, false)
		e.write("))")
	case *codedom.ArrayCreateExpression:
		e.arrayCreate(x)
	case *codedom.ArrayIndexerExpression:
		e.indexer(x.Target, x.Indices)
	case *codedom.IndexerExpression:
		e.indexer(x.Target, x.Indices)
	case *codedom.ObjectCreateExpression:
		e.write("new " + TypeOutput(x.CreateType) + "(")
		e.expressionList(x.Parameters)
		e.write(")")
	case *codedom.MethodReference:
		e.methodReference(x)
	case *codedom.MethodInvokeExpression:
		if x.Method == nil {
			e.fail(missingPayload("method reference", x))
			return
		}
		e.methodReference(x.Method)
		e.write("(")
		e.expressionList(x.Parameters)
		e.write(")")
	case *codedom.DelegateCreateExpression:
		e.write("new " + TypeOutput(x.DelegateType) + "(")
		if x.Target != nil {
			e.expression(x.Target, false)
			e.write(".")
		}
		e.write(CreateEscapedIdentifier(x.MethodName) + ")")
	case *codedom.DelegateInvokeExpression:
		if x.Target != nil {
			e.expression(x.Target, false)
		}
		e.write("(")
		e.expressionList(x.Parameters)
		e.write(")")
	case *codedom.PrimitiveExpression:
		if x == nil {
			e.fail(unsupportedNode(x))
			return
		}
		literal, err := PrimitiveLiteral(x.Value)
		if err != nil {
			e.fail(err)
			return
		}
		e.write(literal)
	case *codedom.FieldReference:
		e.memberReference(x.Target, x.FieldName)
	case *codedom.PropertyReference:
		e.memberReference(x.Target, x.PropertyName)
	case *codedom.EventReference:
		e.memberReference(x.Target, x.EventName)
	case *codedom.VariableReference:
		e.write(CreateEscapedIdentifier(x.VariableName))
	case *codedom.ArgumentReference:
		e.write(CreateEscapedIdentifier(x.ParameterName))
	case *codedom.ThisReference:
		e.write("this")
	case *codedom.BaseReference:
		e.write("base")
	case *codedom.PropertySetValueReference:
		e.write("value")
	case *codedom.TypeReferenceExpression:
		e.write(TypeOutput(x.Type))
	case *codedom.TypeOfExpression:
		e.write("typeof(" + TypeOutput(x.Type) + ")")
	case *codedom.DefaultValueExpression:
		e.write("default(" + TypeOutput(x.Type) + ")")
	case *codedom.ParameterDeclaration:
		e.parameter(x)
	case *codedom.DirectionExpression:
		e.direction(x.Direction)
		e.expression(x.Expression, false)
	case *codedom.SnippetExpression:
		e.write(x.Text)
	default:
		e.fail(unsupportedNode(x))
	}
}

// binary writes (left OP right). When an operand is itself binary the
// operator moves to a continuation line. The outermost binary expression of
// such a chain raises the indentation for its continuation lines only;
// nested ones keep that indentation.
func (e *emitter) binary(b *codedom.BinaryExpression, nested bool) {
	token := b.Operator.Token()
	if token == "" {
		e.fail(errors.Wrapf(ErrUnsupportedNode, "binary operator %d", int(b.Operator)))
		return
	}
	_, leftBinary := b.Left.(*codedom.BinaryExpression)
	_, rightBinary := b.Right.(*codedom.BinaryExpression)
	continued := leftBinary || rightBinary
	indented := continued && !nested

	e.write("(")
	e.expression(b.Left, nested)
	if indented {
		e.out.in(binaryContinuationIndent)
	}
	if continued {
		e.newline()
	} else {
		e.write(" ")
	}
	e.write(token + " ")
	e.expression(b.Right, nested || indented)
	e.write(")")
	if indented {
		e.out.out(binaryContinuationIndent)
	}
}

func (e *emitter) arrayCreate(x *codedom.ArrayCreateExpression) {
	e.write("new ")
	if len(x.Initializers) > 0 {
		e.write(TypeOutput(x.CreateType))
		if x.CreateType == nil || x.CreateType.ArrayRank == 0 {
			e.write("[]")
		}
		e.writeLine(" {")
		e.out.in(1)
		for i, init := range x.Initializers {
			e.expression(init, false)
			if i < len(x.Initializers)-1 {
				e.write(",")
			}
			e.newline()
		}
		e.out.out(1)
		e.write("}")
		return
	}

	e.write(baseTypeOutput(x.CreateType.Element()) + "[")
	if x.SizeExpression != nil {
		e.expression(x.SizeExpression, false)
	} else {
		e.write(strconv.Itoa(x.Size))
	}
	e.write("]")
}

func (e *emitter) indexer(target codedom.Expression, indices []codedom.Expression) {
	e.expression(target, false)
	e.write("[")
	for i, idx := range indices {
		if i > 0 {
			e.write(", ")
		}
		e.expression(idx, false)
	}
	e.write("]")
}

func (e *emitter) methodReference(m *codedom.MethodReference) {
	if m.Target != nil {
		if _, ok := m.Target.(*codedom.BinaryExpression); ok {
			e.write("(")
			e.expression(m.Target, false)
			e.write(")")
		} else {
			e.expression(m.Target, false)
		}
		e.write(".")
	}
	e.write(CreateEscapedIdentifier(m.MethodName))
	if len(m.TypeArguments) > 0 {
		e.write(typeArgumentsOutput(m.TypeArguments))
	}
}

func (e *emitter) memberReference(target codedom.Expression, name string) {
	if target != nil {
		e.expression(target, false)
		e.write(".")
	}
	e.write(CreateEscapedIdentifier(name))
}

// expressionList writes a comma separated argument list. Wrapped lines of
// the list are indented one level.
func (e *emitter) expressionList(xs []codedom.Expression) {
	e.out.in(1)
	for i, x := range xs {
		if i > 0 {
			e.write(", ")
		}
		e.expression(x, false)
	}
	e.out.out(1)
}

func (e *emitter) direction(d codedom.Direction) {
	switch d {
	case codedom.DirectionOut:
		e.write("out ")
	case codedom.DirectionRef:
		e.write("ref ")
	}
}

// PrimitiveLiteral returns the C# literal for v. Values of any type not
// listed on codedom.PrimitiveExpression yield ErrUnsupportedNode.
func PrimitiveLiteral(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "null", nil
	case string:
		return quoteString(v), nil
	case codedom.Char:
		return quoteChar(rune(v)), nil
	case bool:
		return strconv.FormatBool(v), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return formatFloat(float64(v), 32), nil
	case float64:
		return formatFloat(v, 64), nil
	case *big.Float:
		if v == nil {
			return "null", nil
		}
		return v.Text('f', -1) + "m", nil
	default:
		return "", errors.Wrapf(ErrUnsupportedNode, "primitive value of type %T", v)
	}
}

// formatFloat writes the shortest text that round-trips f. Exponent
// notation is used for very small numbers and for numbers with more
// integer digits than the type carries precisely.
func formatFloat(f float64, bitSize int) string {
	typeName, suffix, digits := "double", "", 15
	if bitSize == 32 {
		typeName, suffix, digits = "float", "F", 7
	}
	switch {
	case math.IsNaN(f):
		return typeName + ".NaN"
	case math.IsInf(f, 1):
		return typeName + ".PositiveInfinity"
	case math.IsInf(f, -1):
		return typeName + ".NegativeInfinity"
	}

	s := strconv.FormatFloat(f, 'E', -1, bitSize)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'E')+1:])
	if exp < -5 || exp >= digits {
		return s + suffix
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize) + suffix
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '\'' {
			b.WriteRune(r)
			continue
		}
		writeEscaped(&b, r)
	}
	b.WriteByte('"')
	return b.String()
}

func quoteChar(r rune) string {
	var b strings.Builder
	b.WriteByte('\'')
	if r == '"' {
		b.WriteRune(r)
	} else {
		writeEscaped(&b, r)
	}
	b.WriteByte('\'')
	return b.String()
}

func writeEscaped(b *strings.Builder, r rune) {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case '"':
		b.WriteString(`\"`)
	case '\'':
		b.WriteString(`\'`)
	case 0:
		b.WriteString(`\0`)
	case '\a':
		b.WriteString(`\a`)
	case '\b':
		b.WriteString(`\b`)
	case '\f':
		b.WriteString(`\f`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\v':
		b.WriteString(`\v`)
	case '\u2028', '\u2029', '\u0085':
		fmt.Fprintf(b, `\u%04X`, r)
	default:
		if r < 0x20 {
			fmt.Fprintf(b, `\u%04X`, r)
			return
		}
		b.WriteRune(r)
	}
}
