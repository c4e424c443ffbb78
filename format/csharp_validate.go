package format

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
)

// IdentifierError reports a declared name that is not a valid identifier.
// Node is the declaring node.
type IdentifierError struct {
	Node any
	Path string
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s: invalid identifier %q", e.Path, e.Name)
}

func (e *IdentifierError) Unwrap() error {
	return ErrInvalidIdentifier
}

// ValidateTree checks every name declared in unit and returns the failures
// joined into one error, or nil.
func ValidateTree(unit *codedom.CompileUnit) error {
	var errs []error
	for _, ie := range IdentifierErrors(unit) {
		errs = append(errs, ie)
	}
	return errors.Join(errs...)
}

// IdentifierErrors returns one error per invalid declared name in unit, in
// document order.
func IdentifierErrors(unit *codedom.CompileUnit) []*IdentifierError {
	v := &treeValidator{}
	if unit == nil {
		return nil
	}
	for _, ns := range unit.Namespaces {
		if ns == nil {
			continue
		}
		if ns.Name != "" {
			for _, part := range strings.Split(ns.Name, ".") {
				v.check(ns, ns.Name, part)
			}
		}
		for _, t := range ns.Types {
			v.typeDeclaration(ns.Name, t)
		}
	}
	return v.errs
}

type treeValidator struct {
	errs []*IdentifierError
}

func (v *treeValidator) check(node any, path, name string) {
	if !IsValidIdentifier(name) {
		v.errs = append(v.errs, &IdentifierError{Node: node, Path: path, Name: name})
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func (v *treeValidator) typeDeclaration(parent string, t *codedom.TypeDeclaration) {
	if t == nil {
		return
	}
	path := joinPath(parent, t.Name)
	v.check(t, path, t.Name)
	for _, tp := range t.TypeParameters {
		if tp != nil {
			v.check(tp, path, tp.Name)
		}
	}
	v.parameters(path, t.Parameters)

	for _, m := range t.Members {
		switch m := m.(type) {
		case *codedom.TypeDeclaration:
			v.typeDeclaration(path, m)
		case *codedom.Field:
			v.check(m, joinPath(path, m.Name), m.Name)
		case *codedom.Property:
			if !strings.EqualFold(m.Name, "Item") || len(m.Parameters) == 0 {
				v.check(m, joinPath(path, m.Name), m.Name)
			}
			v.parameters(joinPath(path, m.Name), m.Parameters)
			v.statements(joinPath(path, m.Name), m.GetStatements)
			v.statements(joinPath(path, m.Name), m.SetStatements)
		case *codedom.Event:
			v.check(m, joinPath(path, m.Name), m.Name)
		case *codedom.Method:
			mpath := joinPath(path, m.Name)
			v.check(m, mpath, m.Name)
			for _, tp := range m.TypeParameters {
				if tp != nil {
					v.check(tp, mpath, tp.Name)
				}
			}
			v.parameters(mpath, m.Parameters)
			v.statements(mpath, m.Statements)
		case *codedom.Constructor:
			v.parameters(joinPath(path, ".ctor"), m.Parameters)
			v.statements(joinPath(path, ".ctor"), m.Statements)
		case *codedom.TypeConstructor:
			v.statements(joinPath(path, ".cctor"), m.Statements)
		case *codedom.EntryPoint:
			v.statements(joinPath(path, "Main"), m.Statements)
		}
	}
}

func (v *treeValidator) parameters(path string, params []*codedom.ParameterDeclaration) {
	for _, p := range params {
		if p != nil {
			v.check(p, path, p.Name)
		}
	}
}

func (v *treeValidator) statements(path string, stmts []codedom.Statement) {
	for _, s := range stmts {
		v.statement(path, s)
	}
}

func (v *treeValidator) statement(path string, s codedom.Statement) {
	switch s := s.(type) {
	case *codedom.VariableDeclarationStatement:
		v.check(s, path, s.Name)
	case *codedom.ConditionStatement:
		v.statements(path, s.TrueStatements)
		v.statements(path, s.FalseStatements)
	case *codedom.IterationStatement:
		v.statement(path, s.Init)
		v.statements(path, s.Statements)
	case *codedom.TryStatement:
		v.statements(path, s.TryStatements)
		for _, c := range s.CatchClauses {
			if c == nil {
				continue
			}
			if c.VariableName != "" {
				v.check(c, path, c.VariableName)
			}
			v.statements(path, c.Statements)
		}
		v.statements(path, s.FinallyStatements)
	case *codedom.LabeledStatement:
		v.check(s, path, s.Label)
		v.statement(path, s.Statement)
	case *codedom.SwitchStatement:
		for _, section := range s.Sections {
			switch sec := section.(type) {
			case *codedom.ReturnValueSection:
				v.statements(path, sec.Statements)
			case *codedom.BreakSection:
				v.statements(path, sec.Statements)
			case *codedom.DefaultBreakSection:
				v.statements(path, sec.Statements)
			case *codedom.DefaultReturnSection:
				v.statements(path, sec.Statements)
			}
		}
	}
}
