package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/csgen/codedom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type published struct {
	uri   string
	diags []protocol.Diagnostic
}

func recordingContext(t *testing.T, sink *[]published) *glsp.Context {
	t.Helper()
	return &glsp.Context{
		Notify: func(method string, params any) {
			require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
			p, ok := params.(protocol.PublishDiagnosticsParams)
			require.True(t, ok, "params are %T", params)
			*sink = append(*sink, published{uri: p.URI, diags: p.Diagnostics})
		},
	}
}

func startServer(t *testing.T, ctx *glsp.Context, root string) *LSPServer {
	t.Helper()
	ls := NewLSPServer("test", testOptions())
	result, err := ls.initialize(ctx, &protocol.InitializeParams{RootPath: &root})
	require.NoError(t, err)

	init, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, lsName, init.ServerInfo.Name)
	require.NotNil(t, init.Capabilities.ExecuteCommandProvider)
	assert.Equal(t, []string{CommandRender, CommandPreview}, init.Capabilities.ExecuteCommandProvider.Commands)

	require.NoError(t, ls.initialized(ctx, &protocol.InitializedParams{}))
	return ls
}

func TestLSPDocumentLifecycle(t *testing.T) {
	root := t.TempDir()
	path := writeDocument(t, root, "job.yaml", jobDocument)
	uri := "file://" + path

	var sent []published
	ctx := recordingContext(t, &sent)
	ls := startServer(t, ctx, root)
	require.NotNil(t, ls.ws.GetFile(path), "initialized scans the root")

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "yaml", Version: 1, Text: keywordDocument},
	}))
	require.Len(t, sent, 1)
	assert.Equal(t, uri, sent[0].uri)
	require.Len(t, sent[0].diags, 1)
	assert.Equal(t, protocol.Position{Line: 5, Character: 12}, sent[0].diags[0].Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *sent[0].diags[0].Severity)

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "namespaces: 3\n"}},
	}))
	require.Len(t, sent, 2)
	require.Len(t, sent[1].diags, 1)
	assert.Equal(t, "namespaces: expected a list", sent[1].diags[0].Message)
	assert.Equal(t, protocol.DiagnosticSeverityError, *sent[1].diags[0].Severity)

	// Closing drops the unsaved edit in favour of the file on disk.
	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, sent, 3)
	assert.Empty(t, sent[2].diags)
	assert.Empty(t, ls.ws.GetFile(path).Diagnostics)
}

func TestLSPIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	var sent []published
	ctx := recordingContext(t, &sent)
	ls := startServer(t, ctx, root)

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file://" + filepath.Join(root, "Job.cs"), Text: "class Job {}"},
	}))
	assert.Empty(t, sent)
}

func TestLSPExecuteCommand(t *testing.T) {
	root := t.TempDir()
	path := writeDocument(t, root, "job.yaml", jobDocument)
	uri := "file://" + path

	var sent []published
	ctx := recordingContext(t, &sent)
	ls := startServer(t, ctx, root)

	preview, err := ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{
		Command:   CommandPreview,
		Arguments: []any{uri},
	})
	require.NoError(t, err)
	assert.Contains(t, preview, "public class Job {")

	out, err := ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{
		Command:   CommandRender,
		Arguments: []any{uri},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "job.cs"), out)
	written, err := os.ReadFile(filepath.Join(root, "job.cs"))
	require.NoError(t, err)
	assert.Equal(t, preview, string(written))

	_, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{Command: CommandPreview})
	require.Error(t, err)
	_, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{Command: CommandPreview, Arguments: []any{42}})
	require.Error(t, err)
	_, err = ls.workspaceExecuteCommand(ctx, &protocol.ExecuteCommandParams{Command: "csgen.unknown", Arguments: []any{uri}})
	require.Error(t, err)
}

func TestToProtocolDiagnostics(t *testing.T) {
	got := toProtocolDiagnostics([]Diagnostic{
		{Pos: codedom.Position{Line: 6, Column: 13}, Severity: SeverityWarning, Message: "w"},
		{Severity: SeverityError, Message: "no position"},
	})
	require.Len(t, got, 2)

	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 5, Character: 12},
		End:   protocol.Position{Line: 5, Character: 13},
	}, got[0].Range)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *got[0].Severity)
	assert.Equal(t, lsName, *got[0].Source)

	assert.Equal(t, protocol.Position{}, got[1].Range.Start)
	assert.Equal(t, protocol.DiagnosticSeverityError, *got[1].Severity)
	assert.Equal(t, "no position", got[1].Message)
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/trees/job.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/trees/job.yaml", path)

	path, err = uriToPath("trees/job.yaml")
	require.NoError(t, err)
	assert.Equal(t, "trees/job.yaml", path)
}
