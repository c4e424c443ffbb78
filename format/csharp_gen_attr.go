package format

import (
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

const paramArrayAttribute = "System.ParamArrayAttribute"

// parameterWrapThreshold is the number of parameters above which each
// parameter goes on a line of its own.
const parameterWrapThreshold = 15

// attributes writes attrs as bracketed blocks, one per line or, when
// inline, separated by spaces. A param array marker is not written as an
// attribute; it turns into a params keyword after the other attributes.
func (e *emitter) attributes(attrs []*codedom.Attribute, prefix string, inline bool) {
	paramArray := false
	for _, a := range attrs {
		if a == nil {
			continue
		}
		if strings.EqualFold(attributeName(a), paramArrayAttribute) {
			paramArray = true
			continue
		}
		e.write("[" + prefix + TypeOutput(a.AttributeType()))
		if len(a.Arguments) > 0 {
			e.write("(")
			for i, arg := range a.Arguments {
				if i > 0 {
					e.write(", ")
				}
				if arg == nil {
					e.fail(missingPayload("attribute argument", a))
					return
				}
				if arg.Name != "" {
					e.write(arg.Name + " = ")
				}
				e.expression(arg.Value, false)
			}
			e.write(")")
		}
		e.write("]")
		if inline {
			e.write(" ")
		} else {
			e.newline()
		}
	}
	if paramArray {
		e.write("params ")
	}
}

func attributeName(a *codedom.Attribute) string {
	if a.Name == "" && a.Type != nil {
		return a.Type.BaseType
	}
	return a.Name
}

func (e *emitter) parameters(params []*codedom.ParameterDeclaration) {
	multiline := len(params) > parameterWrapThreshold
	if multiline {
		e.out.in(3)
	}
	for i, p := range params {
		if i > 0 {
			e.write(",")
			if !multiline {
				e.write(" ")
			}
		}
		if multiline {
			e.newline()
		}
		if p == nil {
			e.fail(unsupportedNode(p))
			break
		}
		e.parameter(p)
	}
	if multiline {
		e.out.out(3)
	}
}

func (e *emitter) parameter(p *codedom.ParameterDeclaration) {
	e.attributes(p.Attributes, "", true)
	e.direction(p.Direction)
	e.write(TypeOutput(p.Type) + " " + CreateEscapedIdentifier(p.Name))
}
