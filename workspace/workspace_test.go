package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/csgen/codedom"
	"github.com/dhamidi/csgen/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobDocument = `namespaces:
  - name: Acme
    types:
      - name: Job
        access: public
        members:
          - kind: field
            name: count
            type: int
`

const keywordDocument = `namespaces:
  - name: Acme
    types:
      - name: Job
        members:
          - kind: field
            name: class
            type: int
`

func testOptions() format.Options {
	opts := format.DefaultOptions()
	opts.GeneratedHeader = false
	return opts
}

func writeDocument(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Diagnostic
	}{
		{
			name:    "valid document",
			content: jobDocument,
		},
		{
			name:    "keyword as field name",
			content: keywordDocument,
			want: []Diagnostic{{
				Pos:      codedom.Position{Line: 6, Column: 13},
				Severity: SeverityWarning,
				Message:  `Acme.Job.class: invalid identifier "class"`,
			}},
		},
		{
			name:    "unknown member kind",
			content: "namespaces:\n  - types:\n      - name: C\n        members:\n          - kind: operator\n",
			want: []Diagnostic{{
				Pos:      codedom.Position{Line: 5, Column: 13},
				Severity: SeverityError,
				Message:  `unknown member kind "operator"`,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Analyze("job.yaml", []byte(tt.content), testOptions())
			require.NotNil(t, info.Document)
			assert.Equal(t, tt.want, info.Diagnostics)
		})
	}
}

func TestAnalyzeSyntaxError(t *testing.T) {
	info := Analyze("job.yaml", []byte("namespaces: [\n"), testOptions())
	assert.Nil(t, info.Unit())
	require.Len(t, info.Diagnostics, 1)
	assert.Equal(t, SeverityError, info.Diagnostics[0].Severity)
	assert.GreaterOrEqual(t, info.Diagnostics[0].Pos.Line, 1)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path   string
		outDir string
		want   string
	}{
		{"trees/job.yaml", "", filepath.Join("trees", "job.cs")},
		{"trees/job.tree.json", "", filepath.Join("trees", "job.tree.cs")},
		{"trees/job.yml", "gen", filepath.Join("gen", "job.cs")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.path, tt.outDir), tt.path)
	}
}

func TestIsTreeDocument(t *testing.T) {
	assert.True(t, IsTreeDocument("a.yaml"))
	assert.True(t, IsTreeDocument("a.YML"))
	assert.True(t, IsTreeDocument("a.json"))
	assert.False(t, IsTreeDocument("a.cs"))
	assert.False(t, IsTreeDocument("yaml"))
}

func TestWorkspaceScanAll(t *testing.T) {
	root := t.TempDir()
	job := writeDocument(t, root, "job.yaml", jobDocument)
	nested := writeDocument(t, root, "sub/other.yml", keywordDocument)
	hidden := writeDocument(t, root, ".cache/skip.yaml", jobDocument)
	writeDocument(t, root, "notes.txt", "not a tree")

	ws := New(root, testOptions())
	require.NoError(t, ws.ScanAll())

	require.NotNil(t, ws.GetFile(job))
	require.NotNil(t, ws.GetFile(nested))
	assert.Len(t, ws.GetFile(nested).Diagnostics, 1)
	assert.Nil(t, ws.GetFile(hidden))
	assert.Nil(t, ws.GetFile(filepath.Join(root, "notes.txt")))

	ws.RemoveFile(job)
	assert.Nil(t, ws.GetFile(job))
}

func TestWorkspaceRender(t *testing.T) {
	root := t.TempDir()
	job := writeDocument(t, root, "job.yaml", jobDocument)
	keyword := writeDocument(t, root, "keyword.yaml", keywordDocument)
	broken := writeDocument(t, root, "broken.yaml", "namespaces: 3\n")

	ws := New(root, testOptions())

	text, err := ws.Render(job)
	require.NoError(t, err)
	assert.Equal(t, "namespace Acme {\n    public class Job {\n        int count;\n    }\n}\n", string(text))

	text, err = ws.Render(keyword)
	require.NoError(t, err, "warnings do not block rendering")
	assert.Contains(t, string(text), "int class;", "identifiers are written as given")
	require.NotNil(t, ws.GetFile(keyword))
	assert.Equal(t, []Diagnostic{{
		Pos:      codedom.Position{Line: 6, Column: 13},
		Severity: SeverityWarning,
		Message:  `Acme.Job.class: invalid identifier "class"`,
	}}, ws.GetFile(keyword).Diagnostics)

	_, err = ws.Render(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "namespaces: expected a list")

	_, err = ws.Render(filepath.Join(root, "absent.yaml"))
	require.Error(t, err)
}

func TestWorkspaceSetOptions(t *testing.T) {
	root := t.TempDir()
	job := writeDocument(t, root, "job.yaml", jobDocument)
	ws := New(root, testOptions())

	opts := testOptions()
	opts.BraceStyle = format.BraceNewLine
	ws.SetOptions(opts)
	assert.Equal(t, format.BraceNewLine, ws.Options().BraceStyle)

	text, err := ws.Render(job)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), "namespace Acme\n{\n"), string(text))
}

func TestWorkspaceWriteOutput(t *testing.T) {
	root := t.TempDir()
	job := writeDocument(t, root, "job.yaml", jobDocument)
	outDir := t.TempDir()
	ws := New(root, testOptions())

	out, err := ws.WriteOutput(job, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "job.cs"), out)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	text, err := ws.Render(job)
	require.NoError(t, err)
	assert.Equal(t, text, written)

	before, err := os.Stat(out)
	require.NoError(t, err)
	_, err = ws.WriteOutput(job, outDir)
	require.NoError(t, err)
	after, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
