package parser

import (
	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

func parseCreateTable(scanner scan.TinyScanner) (*ast.CreateTableStatement, error) {
	createTableStatement := ast.CreateTableStatement{}
	column := ast.ColumnDefinition{}

	columnDefinition := all([]parserFn{
		ident(func(name string, _ bool) {
			column.Name = name
		}),
		typeName(func(t *ast.TypeName) {
			column.Type = t
		}),
		optional(allX(
			keyword(lexer.TokenPrimary),
			text("KEY"),
		), func(tokens []lexer.Token) {
			column.PrimaryKey = true
		}),
	}, func([][]lexer.Token) {
		createTableStatement.Columns = append(createTableStatement.Columns, column)
		column = ast.ColumnDefinition{}
	})

	ok, _ := allX(
		committed("CREATE", keyword(lexer.TokenCreate)),
		keyword(lexer.TokenTable),
		optional(
			allX(text("IF"), keyword(lexer.TokenNot), text("EXISTS")),
			func(tokens []lexer.Token) {
				createTableStatement.IfNotExists = true
			}),
		tableRef(false, func(table ast.TableRef) {
			createTableStatement.Table = table
		}),
		committed("COLUMNS", parensCommaSep(columnDefinition)),
	)(scanner)

	if ok {
		return &createTableStatement, nil
	}

	return nil, nil
}
