package codedom

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Position is a 1-based line and column in a tree document.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// DocumentError is a decoding problem at a position of a tree document.
type DocumentError struct {
	Pos Position
	Msg string
}

func (e *DocumentError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// DocumentErrors collects every problem found while decoding a document.
type DocumentErrors []*DocumentError

func (errs DocumentErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Document is a decoded tree document. It remembers where each declared
// node came from.
type Document struct {
	Unit      *CompileUnit
	positions map[any]Position
}

// Position returns the source position of a node decoded from d.
func (d *Document) Position(node any) (Position, bool) {
	p, ok := d.positions[node]
	return p, ok
}

// UnitFromDocument decodes a YAML or JSON tree document into a compile
// unit.
func UnitFromDocument(data []byte) (*CompileUnit, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Unit, nil
}

// ParseDocument decodes a YAML or JSON tree document. Structural problems
// are returned together as DocumentErrors; the partial document is
// returned alongside them.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "parse tree document")
	}
	d := &decoder{positions: make(map[any]Position)}
	doc := &Document{positions: d.positions}

	if root.Kind == 0 || len(root.Content) == 0 {
		doc.Unit = &CompileUnit{}
		return doc, nil
	}
	doc.Unit = d.compileUnit(root.Content[0])
	if len(d.errs) > 0 {
		return doc, d.errs
	}
	return doc, nil
}

type decoder struct {
	positions map[any]Position
	errs      DocumentErrors
}

func pos(n *yaml.Node) Position {
	return Position{Line: n.Line, Column: n.Column}
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) {
	d.errs = append(d.errs, &DocumentError{Pos: pos(n), Msg: fmt.Sprintf(format, args...)})
}

func (d *decoder) mark(node any, n *yaml.Node) {
	d.positions[node] = pos(n)
}

// fields indexes the keys of a mapping node. A nil result means n was not a
// mapping; the error has been recorded.
func (d *decoder) fields(n *yaml.Node, what string) map[string]*yaml.Node {
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "%s: expected a mapping", what)
		return nil
	}
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}
	return m
}

func (d *decoder) seq(n *yaml.Node, what string) []*yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "%s: expected a list", what)
		return nil
	}
	return n.Content
}

func (d *decoder) str(n *yaml.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind != yaml.ScalarNode {
		d.errorf(n, "expected a scalar")
		return ""
	}
	return n.Value
}

func (d *decoder) boolean(n *yaml.Node) bool {
	if n == nil {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		d.errorf(n, "expected true or false")
	}
	return b
}

func (d *decoder) integer(n *yaml.Node) int {
	if n == nil {
		return 0
	}
	var i int
	if err := n.Decode(&i); err != nil {
		d.errorf(n, "expected an integer")
	}
	return i
}

func (d *decoder) compileUnit(n *yaml.Node) *CompileUnit {
	unit := &CompileUnit{}
	f := d.fields(n, "compile unit")
	if f == nil {
		return unit
	}
	for _, item := range d.seq(f["namespaces"], "namespaces") {
		unit.Namespaces = append(unit.Namespaces, d.namespace(item))
	}
	unit.AssemblyAttributes = d.attributes(f["assemblyAttributes"])
	unit.StartDirectives = d.directives(f["startDirectives"])
	unit.EndDirectives = d.directives(f["endDirectives"])
	return unit
}

func (d *decoder) namespace(n *yaml.Node) *Namespace {
	ns := &Namespace{}
	d.mark(ns, n)
	f := d.fields(n, "namespace")
	if f == nil {
		return ns
	}
	ns.Name = d.str(f["name"])
	for _, item := range d.seq(f["imports"], "imports") {
		imp := &Import{}
		if item.Kind == yaml.MappingNode {
			g := d.fields(item, "import")
			imp.Namespace = d.str(g["namespace"])
			imp.LinePragma = d.linePragma(g["linePragma"])
		} else {
			imp.Namespace = d.str(item)
		}
		ns.Imports = append(ns.Imports, imp)
	}
	ns.Comments = d.comments(f["comments"])
	for _, item := range d.seq(f["types"], "types") {
		ns.Types = append(ns.Types, d.typeDeclaration(item, nil))
	}
	return ns
}

func (d *decoder) comments(n *yaml.Node) []*Comment {
	var comments []*Comment
	for _, item := range d.seq(n, "comments") {
		c := &Comment{}
		if item.Kind == yaml.MappingNode {
			g := d.fields(item, "comment")
			c.Text = d.str(g["text"])
			c.Doc = d.boolean(g["doc"])
		} else {
			c.Text = d.str(item)
		}
		comments = append(comments, c)
	}
	return comments
}

func (d *decoder) linePragma(n *yaml.Node) *LinePragma {
	if n == nil {
		return nil
	}
	f := d.fields(n, "line pragma")
	if f == nil {
		return nil
	}
	return &LinePragma{FileName: d.str(f["file"]), Line: d.integer(f["line"])}
}

func (d *decoder) directives(n *yaml.Node) []Directive {
	var directives []Directive
	for _, item := range d.seq(n, "directives") {
		f := d.fields(item, "directive")
		if f == nil {
			continue
		}
		switch kind := d.str(f["kind"]); kind {
		case "region":
			directives = append(directives, &RegionDirective{Mode: RegionStart, Text: d.str(f["text"])})
		case "endregion":
			directives = append(directives, &RegionDirective{Mode: RegionEnd})
		case "checksum":
			directives = append(directives, d.checksum(item, f))
		default:
			d.errorf(item, "unknown directive kind %q", kind)
		}
	}
	return directives
}

func (d *decoder) checksum(n *yaml.Node, f map[string]*yaml.Node) *ChecksumPragma {
	p := &ChecksumPragma{FileName: d.str(f["file"])}
	switch alg := strings.ToLower(d.str(f["algorithm"])); alg {
	case "md5":
		p.AlgorithmID = ChecksumMD5
	case "sha1":
		p.AlgorithmID = ChecksumSHA1
	case "sha256", "":
		p.AlgorithmID = ChecksumSHA256
	default:
		id, err := uuid.Parse(alg)
		if err != nil {
			d.errorf(n, "checksum algorithm %q: %v", alg, err)
		}
		p.AlgorithmID = id
	}
	data, err := hex.DecodeString(d.str(f["data"]))
	if err != nil {
		d.errorf(n, "checksum data: %v", err)
	}
	p.Data = data
	return p
}

// typeRef decodes a type reference written either as a type name string or
// as a mapping with name, args, rank, element and global.
// keywordTypes maps the C# keyword spelling of predefined types to their
// runtime names so documents may use either.
var keywordTypes = map[string]string{
	"bool":    "System.Boolean",
	"byte":    "System.Byte",
	"sbyte":   "System.SByte",
	"char":    "System.Char",
	"decimal": "System.Decimal",
	"double":  "System.Double",
	"float":   "System.Single",
	"int":     "System.Int32",
	"uint":    "System.UInt32",
	"long":    "System.Int64",
	"ulong":   "System.UInt64",
	"short":   "System.Int16",
	"ushort":  "System.UInt16",
	"object":  "System.Object",
	"string":  "System.String",
	"void":    "System.Void",
}

func (d *decoder) typeRef(n *yaml.Node) *TypeReference {
	ref := d.rawTypeRef(n)
	for r := ref; r != nil; r = r.ArrayElementType {
		if name, ok := keywordTypes[r.BaseType]; ok {
			r.BaseType = name
		}
	}
	return ref
}

func (d *decoder) rawTypeRef(n *yaml.Node) *TypeReference {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		return NewTypeReference(n.Value)
	}
	f := d.fields(n, "type reference")
	if f == nil {
		return nil
	}
	var ref *TypeReference
	if elem := f["element"]; elem != nil {
		ref = ArrayOf(d.typeRef(elem), max(d.integer(f["rank"]), 1))
	} else {
		var args []*TypeReference
		for _, item := range d.seq(f["args"], "type arguments") {
			args = append(args, d.typeRef(item))
		}
		ref = NewTypeReference(d.str(f["name"]), args...)
		if rank := d.integer(f["rank"]); rank > 0 {
			ref = ArrayOf(ref, rank)
		}
	}
	if d.boolean(f["global"]) {
		for r := ref; r != nil; r = r.ArrayElementType {
			r.Global = true
		}
	}
	return ref
}

func (d *decoder) typeRefs(n *yaml.Node, what string) []*TypeReference {
	var refs []*TypeReference
	for _, item := range d.seq(n, what) {
		refs = append(refs, d.typeRef(item))
	}
	return refs
}

func (d *decoder) attributes(n *yaml.Node) []*Attribute {
	var attrs []*Attribute
	for _, item := range d.seq(n, "attributes") {
		a := &Attribute{}
		if item.Kind == yaml.ScalarNode {
			a.Name = item.Value
			attrs = append(attrs, a)
			continue
		}
		f := d.fields(item, "attribute")
		if f == nil {
			continue
		}
		a.Name = d.str(f["name"])
		if t := f["type"]; t != nil {
			a.Type = d.typeRef(t)
		}
		for _, arg := range d.seq(f["args"], "attribute arguments") {
			aa := &AttributeArgument{}
			if arg.Kind == yaml.MappingNode {
				if g := d.fields(arg, "attribute argument"); g["value"] != nil {
					aa.Name = d.str(g["name"])
					aa.Value = d.expression(g["value"])
					a.Arguments = append(a.Arguments, aa)
					continue
				}
			}
			aa.Value = d.expression(arg)
			a.Arguments = append(a.Arguments, aa)
		}
		attrs = append(attrs, a)
	}
	return attrs
}

func (d *decoder) memberBase(f map[string]*yaml.Node) MemberBase {
	return MemberBase{
		Name: d.str(f["name"]),
		Modifiers: Modifiers{
			Access: Access(d.str(f["access"])),
			Scope:  Scope(d.str(f["scope"])),
			New:    d.boolean(f["new"]),
		},
		Attributes:      d.attributes(f["attributes"]),
		Comments:        d.comments(f["comments"]),
		StartDirectives: d.directives(f["startDirectives"]),
		EndDirectives:   d.directives(f["endDirectives"]),
		LinePragma:      d.linePragma(f["linePragma"]),
	}
}

// typeDeclaration decodes a type. f may hold the already indexed fields of
// n.
func (d *decoder) typeDeclaration(n *yaml.Node, f map[string]*yaml.Node) *TypeDeclaration {
	t := &TypeDeclaration{}
	d.mark(t, n)
	if f == nil {
		if f = d.fields(n, "type"); f == nil {
			return t
		}
	}
	t.MemberBase = d.memberBase(f)
	t.Kind = TypeKind(d.str(f["kind"]))
	switch t.Kind {
	case "", KindClass, KindStruct, KindInterface, KindEnum, KindDelegate:
	default:
		d.errorf(n, "unknown type kind %q", t.Kind)
	}
	t.Abstract = d.boolean(f["abstract"])
	t.Sealed = d.boolean(f["sealed"])
	t.Static = d.boolean(f["static"])
	t.Partial = d.boolean(f["partial"])
	t.BaseTypes = d.typeRefs(f["baseTypes"], "base types")
	t.TypeParameters = d.typeParameters(f["typeParameters"])
	t.ReturnType = d.typeRef(f["returns"])
	t.Parameters = d.parameters(f["parameters"])
	for _, item := range d.seq(f["members"], "members") {
		if m := d.member(item); m != nil {
			t.Members = append(t.Members, m)
		}
	}
	return t
}

func (d *decoder) typeParameters(n *yaml.Node) []*TypeParameter {
	var params []*TypeParameter
	for _, item := range d.seq(n, "type parameters") {
		tp := &TypeParameter{}
		d.mark(tp, item)
		if item.Kind == yaml.ScalarNode {
			tp.Name = item.Value
		} else if f := d.fields(item, "type parameter"); f != nil {
			tp.Name = d.str(f["name"])
			tp.Constraints = d.typeRefs(f["constraints"], "constraints")
			tp.HasConstructorConstraint = d.boolean(f["new"])
			tp.Attributes = d.attributes(f["attributes"])
		}
		params = append(params, tp)
	}
	return params
}

func (d *decoder) parameters(n *yaml.Node) []*ParameterDeclaration {
	var params []*ParameterDeclaration
	for _, item := range d.seq(n, "parameters") {
		f := d.fields(item, "parameter")
		if f == nil {
			continue
		}
		params = append(params, d.parameter(item, f))
	}
	return params
}

func (d *decoder) parameter(n *yaml.Node, f map[string]*yaml.Node) *ParameterDeclaration {
	p := &ParameterDeclaration{
		Name:       d.str(f["name"]),
		Type:       d.typeRef(f["type"]),
		Direction:  d.direction(f["direction"]),
		Attributes: d.attributes(f["attributes"]),
	}
	if d.boolean(f["params"]) {
		p.Attributes = append(p.Attributes, &Attribute{Name: "System.ParamArrayAttribute"})
	}
	d.mark(p, n)
	return p
}

func (d *decoder) direction(n *yaml.Node) Direction {
	switch s := d.str(n); s {
	case "", "in":
		return DirectionIn
	case "out":
		return DirectionOut
	case "ref":
		return DirectionRef
	default:
		d.errorf(n, "unknown direction %q", s)
		return DirectionIn
	}
}

func (d *decoder) member(n *yaml.Node) Member {
	f := d.fields(n, "member")
	if f == nil {
		return nil
	}
	var m Member
	switch kind := d.str(f["kind"]); kind {
	case "class", "struct", "interface", "enum", "delegate":
		return d.typeDeclaration(n, f)
	case "field":
		m = &Field{MemberBase: d.memberBase(f), Type: d.typeRef(f["type"]), Init: d.optExpression(f["init"])}
	case "property":
		m = &Property{
			MemberBase:                d.memberBase(f),
			Type:                      d.typeRef(f["type"]),
			HasGet:                    d.boolean(f["get"]),
			HasSet:                    d.boolean(f["set"]),
			GetStatements:             d.statements(f["getStatements"]),
			SetStatements:             d.statements(f["setStatements"]),
			Parameters:                d.parameters(f["parameters"]),
			PrivateImplementationType: d.typeRef(f["implements"]),
		}
	case "method":
		m = &Method{
			MemberBase:                d.memberBase(f),
			ReturnType:                d.typeRef(f["returns"]),
			ReturnTypeAttributes:      d.attributes(f["returnAttributes"]),
			Parameters:                d.parameters(f["parameters"]),
			TypeParameters:            d.typeParameters(f["typeParameters"]),
			Statements:                d.statements(f["statements"]),
			PrivateImplementationType: d.typeRef(f["implements"]),
		}
	case "constructor":
		m = &Constructor{
			MemberBase:  d.memberBase(f),
			Parameters:  d.parameters(f["parameters"]),
			Statements:  d.statements(f["statements"]),
			BaseArgs:    d.expressions(f["baseArgs"]),
			ChainedArgs: d.expressions(f["chainedArgs"]),
		}
	case "typeConstructor":
		m = &TypeConstructor{MemberBase: d.memberBase(f), Statements: d.statements(f["statements"])}
	case "entryPoint":
		m = &EntryPoint{MemberBase: d.memberBase(f), ReturnType: d.typeRef(f["returns"]), Statements: d.statements(f["statements"])}
	case "event":
		m = &Event{MemberBase: d.memberBase(f), Type: d.typeRef(f["type"]), PrivateImplementationType: d.typeRef(f["implements"])}
	case "snippet":
		m = &SnippetMember{MemberBase: d.memberBase(f), Text: d.str(f["text"])}
	default:
		d.errorf(n, "unknown member kind %q", kind)
		return nil
	}
	d.mark(m, n)
	return m
}

func (d *decoder) statements(n *yaml.Node) []Statement {
	var stmts []Statement
	for _, item := range d.seq(n, "statements") {
		if s := d.statement(item); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (d *decoder) statementBase(f map[string]*yaml.Node) StatementBase {
	return StatementBase{
		StartDirectives: d.directives(f["startDirectives"]),
		EndDirectives:   d.directives(f["endDirectives"]),
		LinePragma:      d.linePragma(f["linePragma"]),
	}
}

func (d *decoder) statement(n *yaml.Node) Statement {
	if n == nil {
		return nil
	}
	f := d.fields(n, "statement")
	if f == nil {
		return nil
	}
	base := d.statementBase(f)
	var s Statement
	switch kind := d.str(f["kind"]); kind {
	case "comment":
		s = &CommentStatement{StatementBase: base, Comment: &Comment{Text: d.str(f["text"]), Doc: d.boolean(f["doc"])}}
	case "return":
		s = &ReturnStatement{StatementBase: base, Expression: d.optExpression(f["value"])}
	case "if":
		s = &ConditionStatement{
			StatementBase:   base,
			Condition:       d.expressionField(n, f, "condition"),
			TrueStatements:  d.statements(f["then"]),
			FalseStatements: d.statements(f["else"]),
		}
	case "try":
		t := &TryStatement{StatementBase: base, TryStatements: d.statements(f["body"]), FinallyStatements: d.statements(f["finally"])}
		for _, item := range d.seq(f["catches"], "catch clauses") {
			g := d.fields(item, "catch clause")
			if g == nil {
				continue
			}
			c := &CatchClause{ExceptionType: d.typeRef(g["type"]), VariableName: d.str(g["name"]), Statements: d.statements(g["body"])}
			d.mark(c, item)
			t.CatchClauses = append(t.CatchClauses, c)
		}
		s = t
	case "assign":
		s = &AssignStatement{StatementBase: base, Left: d.expressionField(n, f, "left"), Right: d.expressionField(n, f, "right")}
	case "attach", "remove":
		ev := &EventReference{}
		if g := d.fields(f["event"], "event"); g != nil {
			ev.Target = d.optExpression(g["target"])
			ev.EventName = d.str(g["name"])
		}
		s = &AttachEventStatement{StatementBase: base, Event: ev, Listener: d.expressionField(n, f, "listener"), Remove: kind == "remove"}
	case "expr":
		s = &ExpressionStatement{StatementBase: base, Expression: d.expressionField(n, f, "value")}
	case "for":
		s = &IterationStatement{
			StatementBase: base,
			Init:          d.statement(f["init"]),
			Test:          d.optExpression(f["test"]),
			Increment:     d.statement(f["increment"]),
			Statements:    d.statements(f["body"]),
		}
	case "throw":
		s = &ThrowStatement{StatementBase: base, Expression: d.optExpression(f["value"])}
	case "snippet":
		s = &SnippetStatement{StatementBase: base, Text: d.str(f["text"])}
	case "var":
		s = &VariableDeclarationStatement{StatementBase: base, Type: d.typeRef(f["type"]), Name: d.str(f["name"]), Init: d.optExpression(f["init"])}
	case "goto":
		s = &GotoStatement{StatementBase: base, Label: d.str(f["label"])}
	case "label":
		s = &LabeledStatement{StatementBase: base, Label: d.str(f["label"]), Statement: d.statement(f["statement"])}
	case "switch":
		sw := &SwitchStatement{StatementBase: base, Check: d.expressionField(n, f, "check")}
		for _, item := range d.seq(f["sections"], "switch sections") {
			if section := d.switchSection(item); section != nil {
				sw.Sections = append(sw.Sections, section)
			}
		}
		s = sw
	default:
		d.errorf(n, "unknown statement kind %q", kind)
		return nil
	}
	d.mark(s, n)
	return s
}

func (d *decoder) switchSection(n *yaml.Node) SwitchSection {
	f := d.fields(n, "switch section")
	if f == nil {
		return nil
	}
	ret := func() *ReturnStatement {
		if f["return"] == nil {
			d.errorf(n, "section needs a return value")
			return nil
		}
		return &ReturnStatement{Expression: d.expressionField(n, f, "return")}
	}
	var section SwitchSection
	switch kind := d.str(f["kind"]); kind {
	case "return":
		section = &ReturnValueSection{
			Label:      d.expressionField(n, f, "label"),
			Statements: d.statements(f["body"]),
			Return:     ret(),
			SingleLine: d.boolean(f["singleLine"]),
		}
	case "break":
		section = &BreakSection{Label: d.expressionField(n, f, "label"), Statements: d.statements(f["body"])}
	case "fallthrough":
		section = &FallThroughSection{Label: d.expressionField(n, f, "label")}
	case "defaultBreak":
		section = &DefaultBreakSection{Statements: d.statements(f["body"])}
	case "defaultReturn":
		section = &DefaultReturnSection{Statements: d.statements(f["body"]), Return: ret()}
	default:
		d.errorf(n, "unknown switch section kind %q", kind)
		return nil
	}
	d.mark(section, n)
	return section
}

func (d *decoder) expressions(n *yaml.Node) []Expression {
	var xs []Expression
	for _, item := range d.seq(n, "expressions") {
		xs = append(xs, d.expression(item))
	}
	return xs
}

func (d *decoder) optExpression(n *yaml.Node) Expression {
	if n == nil {
		return nil
	}
	return d.expression(n)
}

var operatorNames = map[string]BinaryOperator{
	"+": OpAdd, "add": OpAdd,
	"-": OpSubtract, "subtract": OpSubtract,
	"*": OpMultiply, "multiply": OpMultiply,
	"/": OpDivide, "divide": OpDivide,
	"%": OpModulus, "modulus": OpModulus,
	"=": OpAssign, "assign": OpAssign,
	"!=": OpIdentityInequality, "identityInequality": OpIdentityInequality,
	"==": OpIdentityEquality, "identityEquality": OpIdentityEquality,
	"valueEquality": OpValueEquality,
	"|":             OpBitwiseOr, "bitwiseOr": OpBitwiseOr,
	"&": OpBitwiseAnd, "bitwiseAnd": OpBitwiseAnd,
	"||": OpBooleanOr, "booleanOr": OpBooleanOr,
	"&&": OpBooleanAnd, "booleanAnd": OpBooleanAnd,
	"<": OpLessThan, "lessThan": OpLessThan,
	"<=": OpLessThanOrEqual, "lessThanOrEqual": OpLessThanOrEqual,
	">": OpGreaterThan, "greaterThan": OpGreaterThan,
	">=": OpGreaterThanOrEqual, "greaterThanOrEqual": OpGreaterThanOrEqual,
}

// expressionField decodes the required expression under key of the mapping
// parent, whose fields are f.
func (d *decoder) expressionField(parent *yaml.Node, f map[string]*yaml.Node, key string) Expression {
	if f[key] == nil {
		d.errorf(parent, "%s: missing expression", key)
		return nil
	}
	return d.expression(f[key])
}

// expression decodes an expression. A plain scalar is a literal whose Go
// type follows its YAML tag.
func (d *decoder) expression(n *yaml.Node) Expression {
	if n.Kind == yaml.ScalarNode {
		return Primitive(d.scalarValue(n))
	}
	f := d.fields(n, "expression")
	if f == nil {
		return nil
	}
	target := func() Expression { return d.optExpression(f["target"]) }

	switch kind := d.str(f["kind"]); kind {
	case "binary":
		op, ok := operatorNames[d.str(f["op"])]
		if !ok {
			d.errorf(n, "unknown operator %q", d.str(f["op"]))
		}
		return Binary(d.expressionField(n, f, "left"), op, d.expressionField(n, f, "right"))
	case "cast":
		return &CastExpression{TargetType: d.typeRef(f["type"]), Expression: d.expressionField(n, f, "value")}
	case "arrayCreate":
		x := &ArrayCreateExpression{CreateType: d.typeRef(f["type"])}
		if items := f["items"]; items != nil {
			x.Initializers = d.expressions(items)
			if x.Initializers == nil {
				x.Initializers = []Expression{}
			}
		}
		if size := f["size"]; size != nil {
			if size.Kind == yaml.ScalarNode && size.Tag == "!!int" {
				x.Size = d.integer(size)
			} else {
				x.SizeExpression = d.expression(size)
			}
		}
		return x
	case "arrayIndex":
		return &ArrayIndexerExpression{Target: target(), Indices: d.expressions(f["indices"])}
	case "indexer":
		return &IndexerExpression{Target: target(), Indices: d.expressions(f["indices"])}
	case "new":
		return &ObjectCreateExpression{CreateType: d.typeRef(f["type"]), Parameters: d.expressions(f["args"])}
	case "methodRef":
		return &MethodReference{Target: target(), MethodName: d.str(f["name"]), TypeArguments: d.typeRefs(f["typeArgs"], "type arguments")}
	case "invoke":
		return &MethodInvokeExpression{
			Method:     &MethodReference{Target: target(), MethodName: d.str(f["method"]), TypeArguments: d.typeRefs(f["typeArgs"], "type arguments")},
			Parameters: d.expressions(f["args"]),
		}
	case "delegateCreate":
		return &DelegateCreateExpression{DelegateType: d.typeRef(f["type"]), Target: target(), MethodName: d.str(f["method"])}
	case "delegateInvoke":
		return &DelegateInvokeExpression{Target: target(), Parameters: d.expressions(f["args"])}
	case "primitive":
		return Primitive(d.primitive(n, f))
	case "field":
		return &FieldReference{Target: target(), FieldName: d.str(f["name"])}
	case "property":
		return &PropertyReference{Target: target(), PropertyName: d.str(f["name"])}
	case "event":
		return &EventReference{Target: target(), EventName: d.str(f["name"])}
	case "variable":
		return Var(d.str(f["name"]))
	case "argument":
		return Arg(d.str(f["name"]))
	case "this":
		return &ThisReference{}
	case "base":
		return &BaseReference{}
	case "value":
		return &PropertySetValueReference{}
	case "type":
		return &TypeReferenceExpression{Type: d.typeRef(f["type"])}
	case "typeof":
		return &TypeOfExpression{Type: d.typeRef(f["type"])}
	case "default":
		return &DefaultValueExpression{Type: d.typeRef(f["type"])}
	case "param":
		return d.parameter(n, f)
	case "direction":
		return &DirectionExpression{Direction: d.direction(f["direction"]), Expression: d.expressionField(n, f, "value")}
	case "snippet":
		return &SnippetExpression{Text: d.str(f["text"])}
	default:
		d.errorf(n, "unknown expression kind %q", kind)
		return nil
	}
}

func (d *decoder) scalarValue(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		return d.boolean(n)
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			d.errorf(n, "integer literal: %v", err)
			return nil
		}
		if i == int64(int32(i)) {
			return int(i)
		}
		return i
	case "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			d.errorf(n, "float literal: %v", err)
		}
		return v
	default:
		return n.Value
	}
}

// primitive decodes {kind: primitive, value, type}. Without a type the
// value's YAML tag decides.
func (d *decoder) primitive(n *yaml.Node, f map[string]*yaml.Node) any {
	v := f["value"]
	typ := d.str(f["type"])
	if v == nil {
		if typ != "" && typ != "null" {
			d.errorf(n, "primitive of type %s needs a value", typ)
		}
		return nil
	}
	text := d.str(v)
	parseInt := func(bits int) int64 {
		i, err := strconv.ParseInt(text, 0, bits)
		if err != nil {
			d.errorf(v, "%s literal: %v", typ, err)
		}
		return i
	}
	parseFloat := func(bits int) float64 {
		x, err := strconv.ParseFloat(text, bits)
		if err != nil {
			d.errorf(v, "%s literal: %v", typ, err)
		}
		return x
	}

	switch typ {
	case "":
		return d.scalarValue(v)
	case "null":
		return nil
	case "string":
		return text
	case "bool":
		return d.boolean(v)
	case "char":
		r := []rune(text)
		if len(r) != 1 {
			d.errorf(v, "char literal must be one character, got %q", text)
			return Char(0)
		}
		return Char(r[0])
	case "byte":
		u, err := strconv.ParseUint(text, 0, 8)
		if err != nil {
			d.errorf(v, "byte literal: %v", err)
		}
		return uint8(u)
	case "short":
		return int16(parseInt(16))
	case "int":
		return int32(parseInt(32))
	case "long":
		return parseInt(64)
	case "float":
		return float32(parseFloat(32))
	case "double":
		return parseFloat(64)
	case "decimal":
		x, ok := new(big.Float).SetPrec(128).SetString(text)
		if !ok {
			d.errorf(v, "decimal literal %q", text)
			return nil
		}
		return x
	default:
		d.errorf(n, "unknown primitive type %q", typ)
		return nil
	}
}
