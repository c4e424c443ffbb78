package format

import (
	"io"
	"strings"
)

// indentWriter writes text to the bound sink, prefixing every line with
// the current indentation. The first write error is kept and all later
// writes are dropped.
type indentWriter struct {
	w           io.Writer
	indentStr   string
	indent      int
	atLineStart bool
	indents     []string
	err         error
}

func newIndentWriter(w io.Writer, indentStr string) *indentWriter {
	return &indentWriter{
		w:           w,
		indentStr:   indentStr,
		atLineStart: true,
	}
}

// indentation returns the prefix for the current level. Prefixes are
// built once per level.
func (iw *indentWriter) indentation() string {
	for len(iw.indents) <= iw.indent {
		iw.indents = append(iw.indents, strings.Repeat(iw.indentStr, len(iw.indents)))
	}
	return iw.indents[iw.indent]
}

func (iw *indentWriter) raw(s string) {
	if iw.err != nil || s == "" {
		return
	}
	_, iw.err = io.WriteString(iw.w, s)
}

func (iw *indentWriter) writeIndent() {
	if !iw.atLineStart {
		return
	}
	iw.atLineStart = false
	iw.raw(iw.indentation())
}

func (iw *indentWriter) write(s string) {
	if s == "" {
		return
	}
	iw.writeIndent()
	iw.raw(s)
	if strings.HasSuffix(s, "\n") {
		iw.atLineStart = true
	}
}

func (iw *indentWriter) newline() {
	iw.raw("\n")
	iw.atLineStart = true
}

func (iw *indentWriter) writeLine(s string) {
	iw.write(s)
	iw.newline()
}

func (iw *indentWriter) in(n int) {
	iw.indent += n
}

func (iw *indentWriter) out(n int) {
	iw.indent -= n
	if iw.indent < 0 {
		iw.indent = 0
	}
}

// unindented writes text at indentation level zero.
func (iw *indentWriter) unindented(s string) {
	saved := iw.indent
	iw.indent = 0
	iw.write(s)
	iw.indent = saved
}
