package tsql

import (
	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/parser"
)

// Parse parses TinySQL language and produces one AST per statement.
func Parse(sql string) ([]ast.Statement, error) {
	return parser.ParseStatements(sql)
}
