package format

import (
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

// outlineEntry is one declaration of a compile unit, flattened for the line
// and JSON encoders.
type outlineEntry struct {
	Kind       string
	Path       string
	Name       string
	Type       string
	Parameters []string
	Modifiers  []string
}

func buildOutline(unit *codedom.CompileUnit) []outlineEntry {
	var entries []outlineEntry
	if unit == nil {
		return nil
	}
	for _, ns := range unit.Namespaces {
		if ns == nil {
			continue
		}
		entries = append(entries, outlineEntry{Kind: "namespace", Path: ns.Name, Name: ns.Name})
		for _, t := range ns.Types {
			entries = outlineType(entries, ns.Name, t)
		}
	}
	return entries
}

func outlineType(entries []outlineEntry, parent string, t *codedom.TypeDeclaration) []outlineEntry {
	if t == nil {
		return entries
	}
	path := joinPath(parent, t.Name)
	kind := string(t.Kind)
	if kind == "" {
		kind = string(codedom.KindClass)
	}
	entry := outlineEntry{
		Kind:      kind,
		Path:      path,
		Name:      t.Name,
		Modifiers: typeModifiers(t),
	}
	if t.IsDelegate() {
		entry.Type = TypeOutput(t.ReturnType)
		entry.Parameters = parameterTypes(t.Parameters)
	}
	entries = append(entries, entry)

	for _, m := range t.Members {
		switch m := m.(type) {
		case *codedom.TypeDeclaration:
			entries = outlineType(entries, path, m)
		case *codedom.Field:
			entries = append(entries, memberEntry("field", path, &m.MemberBase, TypeOutput(m.Type), nil))
		case *codedom.Property:
			entries = append(entries, memberEntry("property", path, &m.MemberBase, TypeOutput(m.Type), parameterTypes(m.Parameters)))
		case *codedom.Event:
			entries = append(entries, memberEntry("event", path, &m.MemberBase, TypeOutput(m.Type), nil))
		case *codedom.Method:
			entries = append(entries, memberEntry("method", path, &m.MemberBase, TypeOutput(m.ReturnType), parameterTypes(m.Parameters)))
		case *codedom.Constructor:
			entry := memberEntry("constructor", path, &m.MemberBase, "", parameterTypes(m.Parameters))
			entries = append(entries, renamed(entry, path, ".ctor"))
		case *codedom.TypeConstructor:
			entry := memberEntry("typeConstructor", path, &m.MemberBase, "", nil)
			entries = append(entries, renamed(entry, path, ".cctor"))
		case *codedom.EntryPoint:
			entry := memberEntry("entryPoint", path, &m.MemberBase, TypeOutput(m.ReturnType), nil)
			entries = append(entries, renamed(entry, path, "Main"))
		case *codedom.SnippetMember:
			entries = append(entries, memberEntry("snippet", path, &m.MemberBase, "", nil))
		}
	}
	return entries
}

func memberEntry(kind, parent string, base *codedom.MemberBase, typ string, params []string) outlineEntry {
	return outlineEntry{
		Kind:       kind,
		Path:       joinPath(parent, base.Name),
		Name:       base.Name,
		Type:       typ,
		Parameters: params,
		Modifiers:  memberModifierList(base.Modifiers),
	}
}

// renamed gives members that are declared without a name the name the
// runtime uses for them.
func renamed(entry outlineEntry, parent, name string) outlineEntry {
	entry.Name = name
	entry.Path = joinPath(parent, name)
	return entry
}

func typeModifiers(t *codedom.TypeDeclaration) []string {
	mods := memberModifierList(t.Modifiers)
	if t.Static {
		mods = append(mods, "static")
	}
	if t.Abstract {
		mods = append(mods, "abstract")
	}
	if t.Sealed {
		mods = append(mods, "sealed")
	}
	if t.Partial {
		mods = append(mods, "partial")
	}
	return mods
}

func memberModifierList(m codedom.Modifiers) []string {
	var mods []string
	if m.Access != codedom.AccessNone {
		mods = append(mods, strings.Fields(string(m.Access))...)
	}
	if m.New {
		mods = append(mods, "new")
	}
	if m.Scope != codedom.ScopeNone {
		mods = append(mods, string(m.Scope))
	}
	return mods
}

func parameterTypes(params []*codedom.ParameterDeclaration) []string {
	var types []string
	for _, p := range params {
		if p != nil {
			types = append(types, TypeOutput(p.Type))
		}
	}
	return types
}
