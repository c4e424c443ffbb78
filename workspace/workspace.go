package workspace

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
	"github.com/dhamidi/csgen/format"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("csgen.workspace")

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

// Diagnostic is a problem found in a tree document.
type Diagnostic struct {
	Pos      codedom.Position
	Severity Severity
	Message  string
}

// Workspace holds the tree documents under a root directory together with
// their decoded trees and diagnostics.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	opts    format.Options
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path        string
	Content     []byte
	Document    *codedom.Document
	Diagnostics []Diagnostic
}

// Unit returns the decoded compile unit, or nil when the file could not be
// parsed at all.
func (f *FileInfo) Unit() *codedom.CompileUnit {
	if f.Document == nil {
		return nil
	}
	return f.Document.Unit
}

func New(rootDir string, opts format.Options) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Options() format.Options {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.opts
}

func (w *Workspace) SetOptions(opts format.Options) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opts = opts
}

// IsTreeDocument reports whether path names a YAML or JSON tree document.
func IsTreeDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// ScanAll loads every tree document below the root directory, skipping
// hidden directories.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsTreeDocument(path) {
			if err := w.ScanFile(path); err != nil {
				log.Errorf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile decodes content as the new text of path and recomputes its
// diagnostics.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	info := Analyze(path, content, w.Options())
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return info
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Render generates C# for the document at path, loading it from disk if it
// is not known yet.
func (w *Workspace) Render(path string) ([]byte, error) {
	info := w.GetFile(path)
	if info == nil {
		if err := w.ScanFile(path); err != nil {
			return nil, err
		}
		info = w.GetFile(path)
	}
	if info.Unit() == nil || hasErrors(info.Diagnostics) {
		return nil, errors.Newf("%s: %s", path, firstMessage(info.Diagnostics))
	}
	return format.GenerateCSharp(info.Unit(), w.Options())
}

// OutputPath is where the C# rendering of the tree document at path is
// written: the same base name with a .cs extension, in outDir if set.
func OutputPath(path, outDir string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".cs"
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), name)
	}
	return filepath.Join(outDir, name)
}

// Analyze decodes a tree document and collects decoding, identifier and
// generation problems as diagnostics.
func Analyze(path string, content []byte, opts format.Options) *FileInfo {
	info := &FileInfo{Path: path, Content: content}

	doc, err := codedom.ParseDocument(content)
	info.Document = doc
	if err != nil {
		info.Diagnostics = append(info.Diagnostics, documentDiagnostics(err)...)
	}
	if doc == nil {
		return info
	}

	for _, ie := range format.IdentifierErrors(doc.Unit) {
		pos, _ := doc.Position(ie.Node)
		info.Diagnostics = append(info.Diagnostics, Diagnostic{
			Pos:      pos,
			Severity: SeverityWarning,
			Message:  ie.Error(),
		})
	}

	if err == nil {
		if err := format.NewCSharpGenerator().GenerateUnit(io.Discard, doc.Unit, opts); err != nil {
			info.Diagnostics = append(info.Diagnostics, Diagnostic{
				Pos:      codedom.Position{Line: 1, Column: 1},
				Severity: SeverityError,
				Message:  err.Error(),
			})
		}
	}
	return info
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func documentDiagnostics(err error) []Diagnostic {
	var docErrs codedom.DocumentErrors
	if errors.As(err, &docErrs) {
		diags := make([]Diagnostic, len(docErrs))
		for i, de := range docErrs {
			diags[i] = Diagnostic{Pos: de.Pos, Severity: SeverityError, Message: de.Msg}
		}
		return diags
	}

	pos := codedom.Position{Line: 1, Column: 1}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			pos.Line = line
		}
	}
	return []Diagnostic{{Pos: pos, Severity: SeverityError, Message: err.Error()}}
}

func hasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func firstMessage(diags []Diagnostic) string {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return d.Message
		}
	}
	return "no compile unit"
}

// WriteOutput renders path and writes the result to its OutputPath. Output
// that did not change is left untouched.
func (w *Workspace) WriteOutput(path, outDir string) (string, error) {
	text, err := w.Render(path)
	if err != nil {
		return "", err
	}
	out := OutputPath(path, outDir)
	if old, err := os.ReadFile(out); err == nil && bytes.Equal(old, text) {
		return out, nil
	}
	if err := os.WriteFile(out, text, 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", out)
	}
	log.Infof("wrote %s", out)
	return out, nil
}
