package tsql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/sqlcol/tsql/ast"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kinds []ast.StatementKind
	}{
		{
			name:  "select star",
			text:  "SELECT * FROM foo",
			kinds: []ast.StatementKind{ast.KindSelect},
		},
		{
			name:  "select with where clause",
			text:  "SELECT a, b FROM foo, bar WHERE a = 1",
			kinds: []ast.StatementKind{ast.KindSelect},
		},
		{
			name:  "insert values",
			text:  "INSERT INTO foo (a) VALUES (1), (2)",
			kinds: []ast.StatementKind{ast.KindInsert},
		},
		{
			name:  "script",
			text:  "BEGIN; CREATE TABLE foo (a int); INSERT INTO foo VALUES (1);; COMMIT",
			kinds: []ast.StatementKind{ast.KindBegin, ast.KindCreateTable, ast.KindInsert, ast.KindCommit},
		},
		{
			name:  "unmodelled statements",
			text:  "UPDATE foo SET a = 2; DROP TABLE foo; ROLLBACK",
			kinds: []ast.StatementKind{ast.KindRaw, ast.KindRaw, ast.KindRollback},
		},
		{
			name: "comments only",
			text: "-- nothing here\n/* or /* here */ */",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := require.New(t)
			statements, err := Parse(tc.text)
			assert.NoError(err)

			var kinds []ast.StatementKind
			for _, stmt := range statements {
				kinds = append(kinds, stmt.Kind())
			}
			assert.Equal(tc.kinds, kinds)
		})
	}
}
