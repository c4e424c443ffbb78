package format

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

// comments writes the comments attached to a declaration. Doc comments
// attached to a member go through docComment.
func (e *emitter) comments(cs []*codedom.Comment, m codedom.Member) {
	for _, c := range cs {
		if c == nil {
			continue
		}
		if c.Doc && m != nil {
			e.docComment(m, c.Text)
		} else {
			e.comment(c)
		}
	}
}

func (e *emitter) comment(c *codedom.Comment) {
	prefix := "//"
	if c.Doc {
		prefix = "///"
	}
	for _, line := range splitLines(c.Text) {
		if line == "" {
			e.writeLine(prefix)
		} else {
			e.writeLine(prefix + " " + line)
		}
	}
}

// docComment wraps text in a summary element. Constructors and methods also
// get one param element per parameter, and methods a returns element.
func (e *emitter) docComment(m codedom.Member, text string) {
	lines := splitLines(text)
	if e.opts.MultilineDocComments {
		e.writeLine("/// <summary>")
		for _, line := range lines {
			e.writeLine("/// " + line)
		}
		e.writeLine("/// </summary>")
	} else {
		for i, line := range lines {
			if i == 0 {
				line = "<summary>" + line
			}
			if i == len(lines)-1 {
				line += "</summary>"
			}
			e.writeLine("/// " + line)
		}
	}

	switch m := m.(type) {
	case *codedom.Constructor:
		e.docParams(m.Parameters)
	case *codedom.Method:
		e.docParams(m.Parameters)
		e.writeLine(`/// <returns>the <see cref="` + crefName(TypeOutput(m.ReturnType)) + `"/></returns>`)
	}
}

func (e *emitter) docParams(params []*codedom.ParameterDeclaration) {
	for _, p := range params {
		if p == nil {
			continue
		}
		e.writeLine(fmt.Sprintf(`/// <param name="%s">the <see cref="%s"/></param>`,
			p.Name, crefName(TypeOutput(p.Type))))
	}
}

// crefName rewrites generic brackets the way cref attributes spell them.
func crefName(typeName string) string {
	return strings.NewReplacer("<", "{", ">", "}").Replace(typeName)
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func (e *emitter) directives(ds []codedom.Directive) {
	for _, d := range ds {
		switch d := d.(type) {
		case *codedom.RegionDirective:
			if d.Mode == codedom.RegionEnd {
				e.writeLine("#endregion")
			} else {
				e.writeLine("#region " + d.Text)
			}
		case *codedom.ChecksumPragma:
			e.writeLine(fmt.Sprintf(`#pragma checksum "%s" "{%s}" "%s"`,
				d.FileName, d.AlgorithmID, strings.ToUpper(hex.EncodeToString(d.Data))))
		default:
			e.fail(unsupportedNode(d))
			return
		}
	}
}

func (e *emitter) linePragmaStart(p *codedom.LinePragma) {
	if p == nil {
		return
	}
	e.newline()
	e.writeLine(fmt.Sprintf(`#line %d "%s"`, p.Line, p.FileName))
}

func (e *emitter) linePragmaEnd(p *codedom.LinePragma) {
	if p == nil {
		return
	}
	e.writeLine("#line default")
	e.writeLine("#line hidden")
}
