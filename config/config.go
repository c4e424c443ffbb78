package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/format"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("csgen.config")

// FileName is the project configuration file searched for upward from the
// working directory.
const FileName = "csgen.toml"

// EnvPrefix prefixes environment overrides, e.g. CSGEN_BRACE_STYLE.
const EnvPrefix = "CSGEN"

// Keys of the configuration, matching the mapstructure tags of
// format.Options.
const (
	KeyIndent        = "indent"
	KeyBraceStyle    = "brace_style"
	KeyBlankLines    = "blank_lines"
	KeyElseOnClosing = "else_on_closing"
	KeyVerbatimOrder = "verbatim_order"
	KeyMultilineDocs = "multiline_doc_comments"
	KeyHoistUsings   = "hoist_usings"
	KeyHeader        = "generated_header"
)

// SetDefaults registers format.DefaultOptions with v.
func SetDefaults(v *viper.Viper) {
	d := format.DefaultOptions()
	v.SetDefault(KeyIndent, d.IndentString)
	v.SetDefault(KeyBraceStyle, string(d.BraceStyle))
	v.SetDefault(KeyBlankLines, d.BlankLinesBetweenMembers)
	v.SetDefault(KeyElseOnClosing, d.ElseOnClosing)
	v.SetDefault(KeyVerbatimOrder, d.VerbatimOrder)
	v.SetDefault(KeyMultilineDocs, d.MultilineDocComments)
	v.SetDefault(KeyHoistUsings, d.MoveUsingsOutsideNamespace)
	v.SetDefault(KeyHeader, d.GeneratedHeader)
}

// New returns a viper instance with defaults and environment binding set up
// and the configuration file at path merged in. An empty path searches for
// FileName from the working directory upward; finding none is not an error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path == "" {
		wd, err := os.Getwd()
		if err == nil {
			path = FindProjectConfig(wd)
		}
	}
	if path == "" {
		return v, nil
	}

	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	log.Debugf("using config file %s", path)
	return v, nil
}

// Load reads the options from the configuration file at path (or the one
// found by FindProjectConfig), the environment and flags, in increasing
// precedence. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (format.Options, error) {
	v, err := New(path)
	if err != nil {
		return format.Options{}, err
	}
	if flags != nil {
		if err := BindFlags(v, flags); err != nil {
			return format.Options{}, err
		}
	}
	return FromViper(v)
}

// FromViper decodes the options held by v.
func FromViper(v *viper.Viper) (format.Options, error) {
	var opts format.Options
	if err := v.Unmarshal(&opts); err != nil {
		return format.Options{}, errors.Wrap(err, "decode options")
	}
	switch strings.ToLower(string(opts.BraceStyle)) {
	case "", "same-line", "block", "newline", "new-line", "c":
	default:
		return format.Options{}, errors.WithHintf(
			errors.Newf("unknown brace style %q", opts.BraceStyle),
			"use %q or %q", format.BraceSameLine, format.BraceNewLine)
	}
	return opts.Normalize(), nil
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"indent":          KeyIndent,
	"brace":           KeyBraceStyle,
	"blank-lines":     KeyBlankLines,
	"else-on-closing": KeyElseOnClosing,
	"verbatim":        KeyVerbatimOrder,
	"multiline-docs":  KeyMultilineDocs,
	"hoist-usings":    KeyHoistUsings,
	"header":          KeyHeader,
}

// AddFlags defines the option flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := format.DefaultOptions()
	fs.String("indent", d.IndentString, "indentation unit")
	fs.String("brace", string(d.BraceStyle), "brace style: same-line or newline")
	fs.Bool("blank-lines", d.BlankLinesBetweenMembers, "blank line between members and types")
	fs.Bool("else-on-closing", d.ElseOnClosing, "place else, catch and finally after the closing brace")
	fs.Bool("verbatim", d.VerbatimOrder, "keep members in declaration order")
	fs.Bool("multiline-docs", d.MultilineDocComments, "write <summary> on lines of its own")
	fs.Bool("hoist-usings", d.MoveUsingsOutsideNamespace, "write all using directives at the top of the file")
	fs.Bool("header", d.GeneratedHeader, "write the auto-generated header")
}

// BindFlags binds the option flags present in fs to v. Only flags the user
// set override the file and environment.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// FindProjectConfig walks from dir to the filesystem root and returns the
// first FileName found, or "".
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Write encodes opts as TOML.
func Write(w io.Writer, opts format.Options) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(opts); err != nil {
		return errors.Wrap(err, "encode options")
	}
	return nil
}

// WriteFile writes opts to path, refusing to replace an existing file.
func WriteFile(path string, opts format.Options) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.WithHintf(errors.Newf("%s already exists", path), "remove it or edit it by hand")
		}
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Write(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
