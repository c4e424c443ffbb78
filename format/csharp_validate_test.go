package format

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTree(t *testing.T) {
	require.NoError(t, ValidateTree(widgetUnit()))
	require.NoError(t, ValidateTree(nil))

	bad := &codedom.Method{
		MemberBase: named("Run"),
		Parameters: []*codedom.ParameterDeclaration{codedom.Param(codedom.NewTypeReference("System.Object"), "event")},
		Statements: []codedom.Statement{
			&codedom.VariableDeclarationStatement{Type: codedom.NewTypeReference("System.Int32"), Name: "1st"},
			&codedom.LabeledStatement{Label: "done"},
		},
	}
	unit := &codedom.CompileUnit{Namespaces: []*codedom.Namespace{{
		Name: "Acme.class",
		Types: []*codedom.TypeDeclaration{{
			MemberBase: named("Job"),
			Members:    []codedom.Member{bad},
		}},
	}}}

	ies := IdentifierErrors(unit)
	var got []string
	for _, ie := range ies {
		got = append(got, ie.Path+" "+ie.Name)
		assert.True(t, errors.Is(ie, ErrInvalidIdentifier))
	}
	assert.Equal(t, []string{
		"Acme.class class",
		"Acme.class.Job.Run event",
		"Acme.class.Job.Run 1st",
	}, got)
	assert.Same(t, bad.Parameters[0], ies[1].Node)

	err := ValidateTree(unit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid identifier "1st"`)
}
