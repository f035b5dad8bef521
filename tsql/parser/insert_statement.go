package parser

import (
	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

func parseInsert(scanner scan.TinyScanner) (*ast.InsertStatement, error) {
	insertStatement := ast.InsertStatement{}

	var rows []ast.Row
	var row ast.Row
	var rowStarts []lexer.Token
	var rawErr error

	valuesRow := all([]parserFn{
		token(lexer.TokenOpenParen),
		commaSeparated(makeExpressionParser(func(e ast.Expression) {
			row = append(row, e)
		})),
		token(lexer.TokenCloseParen),
	}, func(tokens [][]lexer.Token) {
		rows = append(rows, row)
		rowStarts = append(rowStarts, tokens[0][0])
		row = nil
	})

	valuesSource := all([]parserFn{
		keyword(lexer.TokenValues),
		committed("VALUES", separatedBy1(commaSeparator, valuesRow)),
	}, func([][]lexer.Token) {
		insertStatement.Source = &ast.Values{Rows: rows}
	})

	querySource := committed("QUERY", func(scanner scan.TinyScanner) (bool, interface{}) {
		if !startsQuery(scanner) {
			return false, nil
		}

		_, reset := scanner.Mark()
		if stmt, _ := parseSelect(scanner); stmt != nil && atInsertTail(scanner) {
			insertStatement.Source = &ast.Query{Statement: stmt}
			return true, stmt
		}
		reset()

		query, err := captureRaw(scanner, atInsertTail)
		if err != nil {
			rawErr = err
			return false, nil
		}

		insertStatement.Source = &ast.Query{Statement: &ast.RawStatement{Text: query}}
		return true, nil
	})

	onConflictClause := func(scanner scan.TinyScanner) (bool, interface{}) {
		_, reset := scanner.Mark()

		if ok, _ := allX(keyword(lexer.TokenOn), text("CONFLICT"))(scanner); !ok {
			return false, nil
		}
		reset()

		scanner.Commit("ON CONFLICT")
		clause, err := captureRaw(scanner, func(scanner scan.TinyScanner) bool {
			return scanner.Peek().Kind == lexer.TokenReturning
		})
		if err != nil {
			rawErr = err
			return false, nil
		}

		insertStatement.OnConflict = clause
		return true, nil
	}

	returningClause := allX(
		keyword(lexer.TokenReturning),
		committed("RETURNING", commaSeparated(
			resultColumn(func(column ast.ResultColumn) {
				insertStatement.Returning = append(insertStatement.Returning, column)
			}),
		)),
	)

	ok, _ := allX(
		committed("INSERT", text("INSERT")),
		committed("INTO", keyword(lexer.TokenInto)),
		committed("TABLE", tableRef(false, func(table ast.TableRef) {
			insertStatement.Table = table
		})),
		optional(committed("COLUMNS", parensCommaSep(identifier())), func(tokens []lexer.Token) {
			insertStatement.Columns = []ast.ColumnRef{}

			for _, t := range tokens {
				if t.Kind == lexer.TokenIdentifier || t.Kind == lexer.TokenQuotedIdentifier {
					insertStatement.Columns = append(insertStatement.Columns, ast.ColumnRef{Name: identText(t)})
				}
			}
		}),
		oneOf([]parserFn{
			valuesSource,
			querySource,
		}, nil),
		optionalX(onConflictClause),
		optionalX(returningClause),
	)(scanner)

	if rawErr != nil {
		return nil, rawErr
	}

	if !ok {
		return nil, nil
	}

	if err := checkRowLengths(&insertStatement, rowStarts); err != nil {
		return nil, err
	}

	return &insertStatement, nil
}

// checkRowLengths rejects VALUES rows that differ in length from the first
// row or from the column list. starts holds the opening paren of each row.
func checkRowLengths(stmt *ast.InsertStatement, starts []lexer.Token) error {
	values, ok := stmt.Source.(*ast.Values)
	if !ok {
		return nil
	}

	for i, row := range values.Rows {
		switch {
		case len(row) != len(values.Rows[0]):
			return newError(starts[i], "INSERT VALUES", "VALUES lists must all be the same length")
		case stmt.Columns != nil && len(row) > len(stmt.Columns):
			return newError(starts[i], "INSERT VALUES", "INSERT has more expressions than target columns")
		case stmt.Columns != nil && len(row) < len(stmt.Columns):
			return newError(starts[i], "INSERT VALUES", "INSERT has more target columns than expressions")
		}
	}

	return nil
}

// startsQuery reports whether a query, possibly parenthesised, starts here.
func startsQuery(scanner scan.TinyScanner) bool {
	_, reset := scanner.Mark()
	defer reset()

	for scanner.Peek().Kind == lexer.TokenOpenParen {
		scanner.Next()
	}

	next := scanner.Peek()

	return next.Kind == lexer.TokenSelect ||
		next.Kind == lexer.TokenTable ||
		(next.Kind == lexer.TokenIdentifier && identText(next) == "with")
}

// atInsertTail reports whether the scanner is past the row source of an
// INSERT, i.e. at ON CONFLICT, RETURNING or the end of the statement.
func atInsertTail(scanner scan.TinyScanner) bool {
	switch scanner.Peek().Kind {
	case lexer.TokenReturning, lexer.TokenSemicolon, lexer.TokenEOF:
		return true
	case lexer.TokenOn:
		_, reset := scanner.Mark()
		defer reset()

		ok, _ := allX(keyword(lexer.TokenOn), text("CONFLICT"))(scanner)
		return ok
	}

	return false
}
