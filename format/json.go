package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/csgen/codedom"
)

type JSONEncoder struct {
	w    io.Writer
	unit *codedom.CompileUnit
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(unit *codedom.CompileUnit) error {
	e.unit = unit
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	entries := buildOutline(e.unit)
	data := make([]jsonDeclaration, len(entries))
	for i, entry := range entries {
		data[i] = jsonDeclaration{
			Kind:       entry.Kind,
			Path:       entry.Path,
			Name:       entry.Name,
			Type:       entry.Type,
			Parameters: entry.Parameters,
			Modifiers:  entry.Modifiers,
		}
	}
	return json.MarshalIndent(data, "", "  ")
}

type jsonDeclaration struct {
	Kind       string   `json:"kind"`
	Path       string   `json:"path"`
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	Parameters []string `json:"parameters,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
}
