package format

import (
	"encoding"

	"github.com/dhamidi/csgen/codedom"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(unit *codedom.CompileUnit) error
}
