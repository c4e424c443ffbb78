// Package codedom holds the source-structure tree rendered by the format
// package: compile units, namespaces, type declarations, members,
// statements, expressions and the supporting references and directives.
package codedom

// CompileUnit is the root of a tree.
type CompileUnit struct {
	Namespaces         []*Namespace
	AssemblyAttributes []*Attribute
	StartDirectives    []Directive
	EndDirectives      []Directive
}

// Namespace groups imports and type declarations. An empty Name denotes
// the global namespace, which is emitted without braces.
type Namespace struct {
	Name     string
	Imports  []*Import
	Types    []*TypeDeclaration
	Comments []*Comment
}

type Import struct {
	Namespace  string
	LinePragma *LinePragma
}

type Comment struct {
	Text string
	Doc  bool
}

// LinePragma maps emitted code back to a source location.
type LinePragma struct {
	FileName string
	Line     int
}

type Access string

const (
	AccessNone              Access = ""
	AccessPublic            Access = "public"
	AccessPrivate           Access = "private"
	AccessProtected         Access = "protected"
	AccessInternal          Access = "internal"
	AccessProtectedInternal Access = "protected internal"
)

type Scope string

const (
	ScopeNone     Scope = ""
	ScopeAbstract Scope = "abstract"
	ScopeSealed   Scope = "sealed"
	ScopeStatic   Scope = "static"
	ScopeOverride Scope = "override"
	ScopeVirtual  Scope = "virtual"
	ScopeConst    Scope = "const"
)

// Modifiers are the access and scope keywords of a member. New hides an
// inherited member.
type Modifiers struct {
	Access Access
	Scope  Scope
	New    bool
}

// Member is implemented by every node that may appear in a type body.
type Member interface {
	memberBase() *MemberBase
}

// MemberBase carries the data shared by all members.
type MemberBase struct {
	Name            string
	Modifiers       Modifiers
	Attributes      []*Attribute
	Comments        []*Comment
	StartDirectives []Directive
	EndDirectives   []Directive
	LinePragma      *LinePragma
}

func (m *MemberBase) memberBase() *MemberBase { return m }

// Base returns the shared member data of m.
func Base(m Member) *MemberBase {
	if m == nil {
		return nil
	}
	return m.memberBase()
}

type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindStruct    TypeKind = "struct"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
	KindDelegate  TypeKind = "delegate"
)

// TypeDeclaration is a class, struct, interface, enum or delegate. The
// declaration itself is a Member so it can be nested. ReturnType and
// Parameters are used only by delegates.
type TypeDeclaration struct {
	MemberBase
	Kind           TypeKind
	Abstract       bool
	Sealed         bool
	Static         bool
	Partial        bool
	BaseTypes      []*TypeReference
	TypeParameters []*TypeParameter
	Members        []Member

	ReturnType *TypeReference
	Parameters []*ParameterDeclaration
}

func (t *TypeDeclaration) IsClass() bool     { return t.Kind == KindClass || t.Kind == "" }
func (t *TypeDeclaration) IsStruct() bool    { return t.Kind == KindStruct }
func (t *TypeDeclaration) IsInterface() bool { return t.Kind == KindInterface }
func (t *TypeDeclaration) IsEnum() bool      { return t.Kind == KindEnum }
func (t *TypeDeclaration) IsDelegate() bool  { return t.Kind == KindDelegate }

type TypeParameter struct {
	Name                     string
	Constraints              []*TypeReference
	HasConstructorConstraint bool
	Attributes               []*Attribute
}

type Field struct {
	MemberBase
	Type *TypeReference
	Init Expression
}

// Property renders as an auto property when both statement lists are
// empty. Parameters turn a property named Item into an indexer.
type Property struct {
	MemberBase
	Type                      *TypeReference
	HasGet                    bool
	HasSet                    bool
	GetStatements             []Statement
	SetStatements             []Statement
	Parameters                []*ParameterDeclaration
	PrivateImplementationType *TypeReference
}

type Method struct {
	MemberBase
	ReturnType                *TypeReference
	ReturnTypeAttributes      []*Attribute
	Parameters                []*ParameterDeclaration
	TypeParameters            []*TypeParameter
	Statements                []Statement
	PrivateImplementationType *TypeReference
}

// Constructor may chain to a base constructor or to another constructor of
// the same type; BaseArgs takes precedence when both are set.
type Constructor struct {
	MemberBase
	Parameters  []*ParameterDeclaration
	Statements  []Statement
	BaseArgs    []Expression
	ChainedArgs []Expression
}

type TypeConstructor struct {
	MemberBase
	Statements []Statement
}

// EntryPoint is the program's Main method. A nil ReturnType renders as void.
type EntryPoint struct {
	MemberBase
	ReturnType *TypeReference
	Statements []Statement
}

type Event struct {
	MemberBase
	Type                      *TypeReference
	PrivateImplementationType *TypeReference
}

// SnippetMember is raw member text emitted without indentation.
type SnippetMember struct {
	MemberBase
	Text string
}

// Attribute is an attribute declaration. Type, when nil, is derived from
// Name.
type Attribute struct {
	Name      string
	Type      *TypeReference
	Arguments []*AttributeArgument
}

type AttributeArgument struct {
	Name  string
	Value Expression
}

// AttributeType returns the type reference of a, falling back to its name.
func (a *Attribute) AttributeType() *TypeReference {
	if a.Type != nil {
		return a.Type
	}
	return NewTypeReference(a.Name)
}
