package format

import (
	"bytes"
	"io"

	"github.com/dhamidi/csgen/codedom"
)

// CSharpEncoder writes compile units as C# source.
type CSharpEncoder struct {
	w    io.Writer
	unit *codedom.CompileUnit
	opts Options
	gen  *CSharpGenerator
}

func NewCSharpEncoder(w io.Writer, opts Options) *CSharpEncoder {
	return &CSharpEncoder{w: w, opts: opts, gen: NewCSharpGenerator()}
}

func (e *CSharpEncoder) Encode(unit *codedom.CompileUnit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *CSharpEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.gen.GenerateUnit(&buf, e.unit, e.opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
