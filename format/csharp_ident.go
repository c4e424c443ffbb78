package format

import (
	"unicode"

	"github.com/cockroachdb/errors"
)

var keywords = map[string]struct{}{
	"abstract": {}, "as": {}, "base": {}, "bool": {}, "break": {},
	"byte": {}, "case": {}, "catch": {}, "char": {}, "checked": {},
	"class": {}, "const": {}, "continue": {}, "decimal": {}, "default": {},
	"delegate": {}, "do": {}, "double": {}, "else": {}, "enum": {},
	"event": {}, "explicit": {}, "extern": {}, "false": {}, "finally": {},
	"fixed": {}, "float": {}, "for": {}, "foreach": {}, "goto": {},
	"if": {}, "implicit": {}, "in": {}, "int": {}, "interface": {},
	"internal": {}, "is": {}, "lock": {}, "long": {}, "namespace": {},
	"new": {}, "null": {}, "object": {}, "operator": {}, "out": {},
	"override": {}, "params": {}, "private": {}, "protected": {}, "public": {},
	"readonly": {}, "ref": {}, "return": {}, "sbyte": {}, "sealed": {},
	"short": {}, "sizeof": {}, "stackalloc": {}, "static": {}, "string": {},
	"struct": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "uint": {}, "ulong": {}, "unchecked": {},
	"unsafe": {}, "ushort": {}, "using": {}, "var": {}, "virtual": {},
	"void": {}, "volatile": {}, "while": {},
}

// IsKeyword reports whether s is a reserved C# keyword. The comparison is
// case-sensitive.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsValidIdentifier reports whether s can be used as an identifier without
// escaping.
func IsValidIdentifier(s string) bool {
	return !IsKeyword(s) && IsValidTypeNameOrIdentifier(s, false)
}

// IsValidTypeNameOrIdentifier checks s character by character using
// Unicode categories. Type names may also contain the punctuation of
// qualified, nested, generic, array, pointer and by-ref type names; each
// of those must be followed by a start character.
func IsValidTypeNameOrIdentifier(s string, isTypeName bool) bool {
	if s == "" {
		return false
	}
	nextMustBeStart := true
	for _, r := range s {
		switch {
		case unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl):
			nextMustBeStart = false
		case unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Nd):
			if nextMustBeStart && r != '_' {
				return false
			}
			nextMustBeStart = false
		case isTypeName && isSpecialTypeChar(r):
			nextMustBeStart = true
		case isTypeName && r == '`':
		default:
			return false
		}
	}
	return true
}

func isSpecialTypeChar(r rune) bool {
	switch r {
	case ':', '.', '$', '+', '<', '>', '-', '[', ']', ',', '&', '*':
		return true
	}
	return false
}

// ValidateIdentifier returns an ErrInvalidIdentifier error when s is not a
// valid identifier.
func ValidateIdentifier(s string) error {
	if IsValidIdentifier(s) {
		return nil
	}
	err := errors.Wrapf(ErrInvalidIdentifier, "%q", s)
	if IsKeyword(s) {
		return errors.WithHintf(err, "%q is a keyword; use %q", s, CreateValidIdentifier(s))
	}
	return err
}

// CreateEscapedIdentifier returns s unchanged; keywords are not escaped.
func CreateEscapedIdentifier(s string) string {
	return s
}

// CreateValidIdentifier turns s into a name that is not a keyword by
// prefixing underscores. A name starting with exactly two underscores gets
// one more, as such names are reserved.
func CreateValidIdentifier(s string) string {
	if len(s) > 2 && s[0] == '_' && s[1] == '_' && s[2] != '_' {
		s = "_" + s
	}
	for IsKeyword(s) {
		s = "_" + s
	}
	return s
}
