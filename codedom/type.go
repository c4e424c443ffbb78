package codedom

import (
	"strconv"
	"strings"
)

// TypeReference names a type. BaseType uses the runtime spelling: nested
// types are separated by '+' and generic types carry a backtick arity
// marker (List`1) whose arguments come from TypeArguments in order.
//
// An array reference has ArrayRank > 0 and describes its elements through
// ArrayElementType.
type TypeReference struct {
	BaseType         string
	TypeArguments    []*TypeReference
	ArrayRank        int
	ArrayElementType *TypeReference
	Global           bool
}

// NewTypeReference builds a reference from name. Trailing bracket groups
// such as "int[]" or "int[][,]" become array levels, the leftmost group
// being the outermost array. When args are given and name has no arity
// marker, one is appended.
func NewTypeReference(name string, args ...*TypeReference) *TypeReference {
	name = strings.TrimSpace(name)
	base, ranks := splitArraySuffix(name)

	ref := &TypeReference{BaseType: base, TypeArguments: args}
	if len(args) > 0 && !strings.Contains(base, "`") {
		ref.BaseType = base + "`" + strconv.Itoa(len(args))
	}
	for i := len(ranks) - 1; i >= 0; i-- {
		ref = ArrayOf(ref, ranks[i])
	}
	return ref
}

// ArrayOf returns an array of elem with the given rank.
func ArrayOf(elem *TypeReference, rank int) *TypeReference {
	if rank < 1 {
		rank = 1
	}
	return &TypeReference{
		BaseType:         elem.BaseType,
		TypeArguments:    elem.TypeArguments,
		ArrayRank:        rank,
		ArrayElementType: elem,
		Global:           elem.Global,
	}
}

// splitArraySuffix strips trailing groups made only of brackets and commas
// and returns their ranks from left to right.
func splitArraySuffix(name string) (string, []int) {
	var ranks []int
	for strings.HasSuffix(name, "]") {
		open := strings.LastIndexByte(name, '[')
		if open < 0 {
			break
		}
		inner := name[open+1 : len(name)-1]
		if strings.Trim(inner, ", ") != "" {
			break
		}
		ranks = append([]int{strings.Count(inner, ",") + 1}, ranks...)
		name = name[:open]
	}
	return name, ranks
}

// Element returns the innermost non-array type of t.
func (t *TypeReference) Element() *TypeReference {
	for t != nil && t.ArrayRank > 0 && t.ArrayElementType != nil {
		t = t.ArrayElementType
	}
	return t
}

// String returns a readable, unaliased spelling of t, used in outlines and
// error messages.
func (t *TypeReference) String() string {
	if t == nil {
		return "void"
	}
	var sb strings.Builder
	elem := t.Element()
	sb.WriteString(elem.BaseType)
	if len(elem.TypeArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range elem.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte('>')
	}
	for r := t; r != nil && r.ArrayRank > 0; r = r.ArrayElementType {
		sb.WriteByte('[')
		sb.WriteString(strings.Repeat(",", r.ArrayRank-1))
		sb.WriteByte(']')
	}
	return sb.String()
}
