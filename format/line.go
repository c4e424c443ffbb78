package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/csgen/codedom"
)

// LineEncoder writes one tab separated line per declaration:
// kind, path, type, parameter types and modifiers. Empty columns are "-".
type LineEncoder struct {
	w    io.Writer
	unit *codedom.CompileUnit
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(unit *codedom.CompileUnit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, entry := range buildOutline(e.unit) {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\n",
			entry.Kind,
			orDash(entry.Path),
			orDash(entry.Type),
			listStr(entry.Parameters),
			listStr(entry.Modifiers),
		)
	}
	return []byte(sb.String()), nil
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
