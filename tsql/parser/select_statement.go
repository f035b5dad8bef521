package parser

import (
	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

func parseSelect(scanner scan.TinyScanner) (*ast.SelectStatement, error) {
	selectStatement := ast.SelectStatement{}

	fromClause := allX(
		keyword(lexer.TokenFrom),
		committed("RELATIONS", commaSeparated(
			tableRef(true, func(table ast.TableRef) {
				selectStatement.From = append(selectStatement.From, table)
			}),
		)),
	)

	whereClause := allX(
		keyword(lexer.TokenWhere),
		committed("WHERE", makeExpressionParser(func(filter ast.Expression) {
			selectStatement.Filter = filter
		})),
	)

	ok, _ := allX(
		committed("SELECT", keyword(lexer.TokenSelect)),
		committed("COLUMNS", commaSeparated(
			resultColumn(func(column ast.ResultColumn) {
				selectStatement.Columns = append(selectStatement.Columns, column)
			}),
		)),
		optionalX(fromClause),
		optionalX(whereClause),
	)(scanner)

	if ok {
		return &selectStatement, nil
	}

	return nil, nil
}

// resultColumn parses * or an expression with an optional alias.
func resultColumn(n func(ast.ResultColumn)) parserFn {
	return oneOf([]parserFn{
		requiredToken(lexer.TokenAsterisk, func([]lexer.Token) {
			n(ast.ResultColumn{})
		}),
		func(scanner scan.TinyScanner) (bool, interface{}) {
			ok, expr := parseExpression()(scanner)
			if !ok {
				return false, nil
			}

			column := ast.ResultColumn{Expr: expr}

			optionalX(allX(
				optionalX(keyword(lexer.TokenAs)),
				alias(func(name string) {
					column.Alias = name
				}),
			))(scanner)

			n(column)

			return true, column
		},
	}, nil)
}

// tableRef parses [schema.]name followed by an alias. Without
// implicitAlias the alias has to be introduced by AS.
func tableRef(implicitAlias bool, n func(ast.TableRef)) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		table := ast.TableRef{}

		ok, _ := qualifiedName(func(qualifier, name string, _ bool) {
			table.Schema = qualifier
			table.Name = name
		})(scanner)
		if !ok {
			return false, nil
		}

		as := keyword(lexer.TokenAs)
		if implicitAlias {
			as = optionalX(as)
		}

		optionalX(allX(
			as,
			alias(func(name string) {
				table.Alias = name
			}),
		))(scanner)

		n(table)

		return true, table
	}
}

// alias parses an alias name. Reserved words are refused so that
// clauses such as LIMIT are not mistaken for one.
func alias(n func(name string)) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		next := scanner.Peek()
		if next.Kind == lexer.TokenIdentifier && lexer.IsReserved(next.Text) {
			return false, nil
		}

		return ident(func(name string, _ bool) {
			n(name)
		})(scanner)
	}
}
