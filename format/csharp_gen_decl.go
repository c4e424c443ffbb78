package format

import (
	"slices"
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

const generatedHeader = `//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by a tool.
//
//     Changes to this file may cause incorrect behavior and will be lost if
//     the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------
`

func (e *emitter) compileUnit(u *codedom.CompileUnit) {
	if u == nil {
		e.fail(unsupportedNode(u))
		return
	}
	e.directives(u.StartDirectives)

	if e.opts.GeneratedHeader {
		e.write(generatedHeader)
		e.newline()
	}

	if e.opts.MoveUsingsOutsideNamespace {
		imports := hoistedImports(u.Namespaces)
		for _, imp := range imports {
			e.writeLine("using " + imp + ";")
		}
		if len(imports) > 0 {
			e.newline()
		}
		e.ctx.usingsHoisted = true
	}

	if len(u.AssemblyAttributes) > 0 {
		e.attributes(u.AssemblyAttributes, "assembly: ", false)
		e.newline()
	}

	for _, ns := range u.Namespaces {
		e.namespace(ns)
		if e.failed() {
			return
		}
	}
	e.directives(u.EndDirectives)
}

// hoistedImports collects the imports of all namespaces, sorted ordinally
// and without duplicates.
func hoistedImports(namespaces []*codedom.Namespace) []string {
	var imports []string
	for _, ns := range namespaces {
		if ns == nil {
			continue
		}
		for _, imp := range ns.Imports {
			if imp != nil && imp.Namespace != "" {
				imports = append(imports, imp.Namespace)
			}
		}
	}
	slices.Sort(imports)
	return slices.Compact(imports)
}

func (e *emitter) namespace(ns *codedom.Namespace) {
	if ns == nil {
		e.fail(unsupportedNode(ns))
		return
	}
	e.comments(ns.Comments, nil)

	if ns.Name != "" {
		e.write("namespace " + escapedQualifiedName(ns.Name))
		e.openBlock()
	}

	separate := false
	if !e.ctx.usingsHoisted {
		for _, imp := range ns.Imports {
			if imp == nil {
				continue
			}
			e.linePragmaStart(imp.LinePragma)
			e.writeLine("using " + escapedQualifiedName(imp.Namespace) + ";")
			e.linePragmaEnd(imp.LinePragma)
			separate = true
		}
	}

	for i, t := range ns.Types {
		if separate || (i > 0 && e.opts.BlankLinesBetweenMembers) {
			e.newline()
		}
		separate = false
		e.typeDeclaration(t)
		if e.failed() {
			return
		}
	}

	if ns.Name != "" {
		e.closeBlock()
	}
}

func (e *emitter) typeDeclaration(t *codedom.TypeDeclaration) {
	if t == nil {
		e.fail(unsupportedNode(t))
		return
	}
	saved := e.ctx
	e.ctx.currentType = t
	e.ctx.currentMember = t
	defer func() {
		e.ctx.currentType = saved.currentType
		e.ctx.currentMember = saved.currentMember
	}()

	e.directives(t.StartDirectives)
	e.comments(t.Comments, t)
	e.linePragmaStart(t.LinePragma)

	e.attributes(t.Attributes, "", false)
	if t.IsDelegate() {
		e.delegateDeclaration(t)
	} else {
		e.typeStart(t)
		e.typeMembers(t)
		e.closeBlock()
	}

	e.linePragmaEnd(t.LinePragma)
	e.directives(t.EndDirectives)
}

func (e *emitter) delegateDeclaration(t *codedom.TypeDeclaration) {
	e.accessModifier(t.Modifiers.Access)
	e.write("delegate ")
	e.write(TypeOutput(t.ReturnType))
	e.write(" ")
	e.write(CreateEscapedIdentifier(t.Name))
	e.typeParameters(t.TypeParameters)
	e.write("(")
	e.parameters(t.Parameters)
	e.writeLine(");")
}

func (e *emitter) typeStart(t *codedom.TypeDeclaration) {
	e.accessModifier(t.Modifiers.Access)
	if t.Modifiers.New {
		e.write("new ")
	}

	switch {
	case t.IsStruct():
		e.partial(t)
		e.write("struct ")
	case t.IsEnum():
		e.write("enum ")
	case t.IsInterface():
		e.partial(t)
		e.write("interface ")
	default:
		switch {
		case t.Static:
			e.write("static ")
		case t.Sealed:
			e.write("sealed ")
		case t.Abstract:
			e.write("abstract ")
		}
		e.partial(t)
		e.write("class ")
	}

	e.write(CreateEscapedIdentifier(t.Name))
	e.typeParameters(t.TypeParameters)

	for i, base := range t.BaseTypes {
		if i == 0 {
			e.write(" : ")
		} else {
			e.write(", ")
		}
		e.write(TypeOutput(base))
	}

	e.typeConstraints(t.TypeParameters)
	e.openBlock()
}

func (e *emitter) partial(t *codedom.TypeDeclaration) {
	if t.Partial {
		e.write("partial ")
	}
}

func (e *emitter) typeParameters(params []*codedom.TypeParameter) {
	if len(params) == 0 {
		return
	}
	e.write("<")
	for i, p := range params {
		if i > 0 {
			e.write(", ")
		}
		e.attributes(p.Attributes, "", true)
		e.write(CreateEscapedIdentifier(p.Name))
	}
	e.write(">")
}

// typeConstraints writes one where-clause line for every constrained type
// parameter.
func (e *emitter) typeConstraints(params []*codedom.TypeParameter) {
	for _, p := range params {
		if len(p.Constraints) == 0 && !p.HasConstructorConstraint {
			continue
		}
		parts := make([]string, 0, len(p.Constraints)+1)
		for _, c := range p.Constraints {
			parts = append(parts, TypeOutput(c))
		}
		if p.HasConstructorConstraint {
			parts = append(parts, "new()")
		}
		e.newline()
		e.out.in(1)
		e.write("where " + CreateEscapedIdentifier(p.Name) + " : " + strings.Join(parts, ", "))
		e.out.out(1)
	}
}

// Member categories in emission order.
const (
	categoryField = iota
	categorySnippet
	categoryTypeConstructor
	categoryConstructor
	categoryProperty
	categoryEvent
	categoryMethod
	categoryNestedType
	categoryUnknown
)

func memberCategory(m codedom.Member) int {
	switch m.(type) {
	case *codedom.Field:
		return categoryField
	case *codedom.SnippetMember:
		return categorySnippet
	case *codedom.TypeConstructor:
		return categoryTypeConstructor
	case *codedom.Constructor:
		return categoryConstructor
	case *codedom.Property:
		return categoryProperty
	case *codedom.Event:
		return categoryEvent
	case *codedom.Method, *codedom.EntryPoint:
		return categoryMethod
	case *codedom.TypeDeclaration:
		return categoryNestedType
	default:
		return categoryUnknown
	}
}

// orderMembers returns members sorted by category, keeping the input order
// within a category.
func orderMembers(members []codedom.Member) []codedom.Member {
	ordered := slices.Clone(members)
	slices.SortStableFunc(ordered, func(a, b codedom.Member) int {
		return memberCategory(a) - memberCategory(b)
	})
	return ordered
}

func (e *emitter) typeMembers(t *codedom.TypeDeclaration) {
	members := t.Members
	if !e.opts.VerbatimOrder {
		members = orderMembers(members)
	}
	first := true
	for _, m := range members {
		if !memberAllowed(m, t) {
			continue
		}
		if !first {
			e.blankLine()
		}
		first = false
		e.member(m)
		if e.failed() {
			return
		}
	}
}

// memberAllowed reports whether m can be declared inside t. Members that
// cannot are skipped silently.
func memberAllowed(m codedom.Member, t *codedom.TypeDeclaration) bool {
	switch m.(type) {
	case *codedom.Field:
		return !t.IsDelegate() && !t.IsInterface()
	case *codedom.Event:
		return !t.IsDelegate() && !t.IsEnum()
	case *codedom.Method, *codedom.EntryPoint, *codedom.Property:
		return t.IsClass() || t.IsStruct() || t.IsInterface()
	case *codedom.Constructor, *codedom.TypeConstructor:
		return t.IsClass() || t.IsStruct()
	}
	return true
}

func (e *emitter) member(m codedom.Member) {
	if e.failed() {
		return
	}
	if nested, ok := m.(*codedom.TypeDeclaration); ok {
		e.typeDeclaration(nested)
		return
	}
	base := codedom.Base(m)
	if base == nil {
		e.fail(unsupportedNode(m))
		return
	}
	if !memberAllowed(m, e.ctx.currentType) {
		return
	}

	saved := e.ctx.currentMember
	e.ctx.currentMember = m
	defer func() { e.ctx.currentMember = saved }()

	e.directives(base.StartDirectives)
	e.comments(base.Comments, m)
	if _, ok := m.(*codedom.SnippetMember); !ok {
		e.attributes(base.Attributes, "", false)
	}
	e.linePragmaStart(base.LinePragma)

	switch m := m.(type) {
	case *codedom.Field:
		e.field(m)
	case *codedom.Property:
		e.property(m)
	case *codedom.Method:
		e.method(m)
	case *codedom.Constructor:
		e.constructor(m)
	case *codedom.TypeConstructor:
		e.typeConstructor(m)
	case *codedom.EntryPoint:
		e.entryPoint(m)
	case *codedom.Event:
		e.event(m)
	case *codedom.SnippetMember:
		e.snippetMember(m)
	default:
		e.fail(unsupportedNode(m))
	}

	e.linePragmaEnd(base.LinePragma)
	e.directives(base.EndDirectives)
}

func (e *emitter) accessModifier(a codedom.Access) {
	if a != codedom.AccessNone {
		e.write(string(a) + " ")
	}
}

func (e *emitter) vtableModifier(m codedom.Modifiers) {
	if m.New {
		e.write("new ")
	}
}

// memberModifiers writes the access, hiding and scope keywords of a
// method, property or event. Interface members and explicit interface
// implementations take no access or scope keyword.
func (e *emitter) memberModifiers(m codedom.Modifiers, privateImpl *codedom.TypeReference) {
	if e.ctx.currentType.IsInterface() {
		e.vtableModifier(m)
		return
	}
	if privateImpl != nil {
		return
	}
	e.accessModifier(m.Access)
	e.vtableModifier(m)
	switch m.Scope {
	case codedom.ScopeNone, codedom.ScopeConst:
	default:
		e.write(string(m.Scope) + " ")
	}
}

func (e *emitter) field(f *codedom.Field) {
	if e.ctx.currentType.IsEnum() {
		e.write(CreateEscapedIdentifier(f.Name))
		if f.Init != nil {
			e.write(" = ")
			e.expression(f.Init, false)
		}
		e.writeLine(",")
		return
	}

	e.accessModifier(f.Modifiers.Access)
	e.vtableModifier(f.Modifiers)
	switch f.Modifiers.Scope {
	case codedom.ScopeStatic:
		e.write("static ")
	case codedom.ScopeConst:
		e.write("const ")
	}
	e.write(TypeOutput(f.Type) + " " + CreateEscapedIdentifier(f.Name))
	if f.Init != nil {
		e.write(" = ")
		e.expression(f.Init, false)
	}
	e.writeLine(";")
}

func (e *emitter) property(p *codedom.Property) {
	e.memberModifiers(p.Modifiers, p.PrivateImplementationType)
	e.write(TypeOutput(p.Type) + " ")
	if p.PrivateImplementationType != nil {
		e.write(TypeOutput(p.PrivateImplementationType) + ".")
	}
	if len(p.Parameters) > 0 && strings.EqualFold(p.Name, "Item") {
		e.write("this[")
		e.parameters(p.Parameters)
		e.write("]")
	} else {
		e.write(CreateEscapedIdentifier(p.Name))
	}

	hasGet := p.HasGet || len(p.GetStatements) > 0
	hasSet := p.HasSet || len(p.SetStatements) > 0
	auto := len(p.GetStatements) == 0 && len(p.SetStatements) == 0
	if auto || e.ctx.currentType.IsInterface() || p.Modifiers.Scope == codedom.ScopeAbstract {
		if hasGet && !hasSet {
			e.writeLine(" { get; }")
		} else {
			e.writeLine(" { get; set; }")
		}
		return
	}

	e.openBlock()
	if hasGet {
		e.write("get")
		e.openBlock()
		e.statements(p.GetStatements)
		e.closeBlock()
	}
	if hasSet {
		e.write("set")
		e.openBlock()
		e.statements(p.SetStatements)
		e.closeBlock()
	}
	e.closeBlock()
}

func (e *emitter) method(m *codedom.Method) {
	e.attributes(m.ReturnTypeAttributes, "return: ", false)
	e.memberModifiers(m.Modifiers, m.PrivateImplementationType)
	e.write(TypeOutput(m.ReturnType) + " ")
	if m.PrivateImplementationType != nil {
		e.write(TypeOutput(m.PrivateImplementationType) + ".")
	}
	e.write(CreateEscapedIdentifier(m.Name))
	e.typeParameters(m.TypeParameters)
	e.write("(")
	e.parameters(m.Parameters)
	e.write(")")
	e.typeConstraints(m.TypeParameters)

	if e.ctx.currentType.IsInterface() || m.Modifiers.Scope == codedom.ScopeAbstract {
		e.writeLine(";")
		return
	}
	e.openBlock()
	e.statements(m.Statements)
	e.closeBlock()
}

func (e *emitter) constructor(c *codedom.Constructor) {
	e.accessModifier(c.Modifiers.Access)
	e.write(CreateEscapedIdentifier(e.ctx.currentType.Name) + "(")
	e.parameters(c.Parameters)
	e.write(")")
	switch {
	case len(c.BaseArgs) > 0:
		e.write(" : base(")
		e.expressionList(c.BaseArgs)
		e.write(")")
	case len(c.ChainedArgs) > 0:
		e.write(" : this(")
		e.expressionList(c.ChainedArgs)
		e.write(")")
	}
	e.openBlock()
	e.statements(c.Statements)
	e.closeBlock()
}

func (e *emitter) typeConstructor(c *codedom.TypeConstructor) {
	e.write("static " + CreateEscapedIdentifier(e.ctx.currentType.Name) + "()")
	e.openBlock()
	e.statements(c.Statements)
	e.closeBlock()
}

func (e *emitter) entryPoint(m *codedom.EntryPoint) {
	e.write("public static " + TypeOutput(m.ReturnType) + " Main()")
	e.openBlock()
	e.statements(m.Statements)
	e.closeBlock()
}

func (e *emitter) event(ev *codedom.Event) {
	e.memberModifiers(ev.Modifiers, ev.PrivateImplementationType)
	e.write("event " + TypeOutput(ev.Type) + " ")
	if ev.PrivateImplementationType != nil {
		e.write(TypeOutput(ev.PrivateImplementationType) + ".")
	}
	e.writeLine(CreateEscapedIdentifier(ev.Name) + ";")
}

func (e *emitter) snippetMember(s *codedom.SnippetMember) {
	e.out.unindented(s.Text)
	if !strings.HasSuffix(s.Text, "\n") {
		e.newline()
	}
}

// escapedQualifiedName escapes each dotted segment of name.
func escapedQualifiedName(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = CreateEscapedIdentifier(p)
	}
	return strings.Join(parts, ".")
}
