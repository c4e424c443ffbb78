package format

import "strings"

type BraceStyle string

const (
	// BraceSameLine places an opening brace at the end of the line that
	// introduces the block.
	BraceSameLine BraceStyle = "same-line"
	// BraceNewLine places an opening brace on a line of its own.
	BraceNewLine BraceStyle = "newline"
)

const defaultIndent = "    "

// Options control the layout of generated C# source.
type Options struct {
	IndentString               string     `json:"indent" yaml:"indent" toml:"indent" mapstructure:"indent"`
	BraceStyle                 BraceStyle `json:"brace_style" yaml:"brace_style" toml:"brace_style" mapstructure:"brace_style"`
	BlankLinesBetweenMembers   bool       `json:"blank_lines" yaml:"blank_lines" toml:"blank_lines" mapstructure:"blank_lines"`
	ElseOnClosing              bool       `json:"else_on_closing" yaml:"else_on_closing" toml:"else_on_closing" mapstructure:"else_on_closing"`
	VerbatimOrder              bool       `json:"verbatim_order" yaml:"verbatim_order" toml:"verbatim_order" mapstructure:"verbatim_order"`
	MultilineDocComments       bool       `json:"multiline_doc_comments" yaml:"multiline_doc_comments" toml:"multiline_doc_comments" mapstructure:"multiline_doc_comments"`
	MoveUsingsOutsideNamespace bool       `json:"hoist_usings" yaml:"hoist_usings" toml:"hoist_usings" mapstructure:"hoist_usings"`
	GeneratedHeader            bool       `json:"generated_header" yaml:"generated_header" toml:"generated_header" mapstructure:"generated_header"`
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		IndentString:             defaultIndent,
		BraceStyle:               BraceSameLine,
		BlankLinesBetweenMembers: true,
		GeneratedHeader:          true,
	}
}

// Normalize fills in an empty indent string and brace style. The CodeDom
// style names "C" and "Block" are accepted as well.
func (o Options) Normalize() Options {
	if o.IndentString == "" {
		o.IndentString = defaultIndent
	}
	switch strings.ToLower(string(o.BraceStyle)) {
	case "c", "newline", "new-line":
		o.BraceStyle = BraceNewLine
	default:
		o.BraceStyle = BraceSameLine
	}
	return o
}
