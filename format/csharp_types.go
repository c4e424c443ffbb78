package format

import (
	"strconv"
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

// typeAliases maps lower-cased framework type names to C# keywords.
var typeAliases = map[string]string{
	"system.int16":   "short",
	"system.int32":   "int",
	"system.int64":   "long",
	"system.string":  "string",
	"system.object":  "object",
	"system.boolean": "bool",
	"system.void":    "void",
	"system.char":    "char",
	"system.byte":    "byte",
	"system.uint16":  "ushort",
	"system.uint32":  "uint",
	"system.uint64":  "ulong",
	"system.sbyte":   "sbyte",
	"system.single":  "float",
	"system.double":  "double",
	"system.decimal": "decimal",
}

// TypeOutput returns the C# spelling of t, including array brackets. A nil
// reference is void.
func TypeOutput(t *codedom.TypeReference) string {
	if t == nil {
		return "void"
	}
	var sb strings.Builder
	sb.WriteString(baseTypeOutput(t.Element()))
	for r := t; r != nil && r.ArrayRank > 0; r = r.ArrayElementType {
		sb.WriteByte('[')
		sb.WriteString(strings.Repeat(",", r.ArrayRank-1))
		sb.WriteByte(']')
	}
	return sb.String()
}

// baseTypeOutput spells t without array brackets.
func baseTypeOutput(t *codedom.TypeReference) string {
	if t == nil {
		return "void"
	}
	name := strings.TrimSpace(t.BaseType)
	if name == "" {
		return "void"
	}
	if alias, ok := typeAliases[strings.ToLower(name)]; ok {
		return alias
	}

	var sb strings.Builder
	if t.Global {
		sb.WriteString("global::")
	}
	args := t.TypeArguments
	cursor := 0
	for i, seg := range splitGenericName(name) {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(CreateEscapedIdentifier(seg.Name))
		if seg.Arity > 0 {
			end := min(cursor+seg.Arity, len(args))
			sb.WriteString(typeArgumentsOutput(args[cursor:end]))
			cursor = end
		}
	}
	if cursor < len(args) {
		sb.WriteString(typeArgumentsOutput(args[cursor:]))
	}
	return sb.String()
}

type genericSegment struct {
	Name  string
	Arity int
}

// splitGenericName splits a runtime type name such as
// "System.Collections.Generic.Dictionary`2" or "Outer`1+Inner`1" into its
// dotted or nested segments and their generic arities.
func splitGenericName(name string) []genericSegment {
	var segments []genericSegment
	start := 0
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '.', '+':
			segments = append(segments, genericSegment{Name: name[start:i]})
			start = i + 1
		case '`':
			j := i + 1
			for j < len(name) && name[j] >= '0' && name[j] <= '9' {
				j++
			}
			arity, _ := strconv.Atoi(name[i+1 : j])
			segments = append(segments, genericSegment{Name: name[start:i], Arity: arity})
			if j < len(name) && (name[j] == '.' || name[j] == '+') {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(name) {
		segments = append(segments, genericSegment{Name: name[start:]})
	}
	return segments
}

func typeArgumentsOutput(args []*codedom.TypeReference) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = TypeOutput(arg)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
