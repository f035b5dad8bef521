package parser

import (
	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

// noise words allowed after the transaction keywords
var transactionNoise = optionalX(oneOf([]parserFn{
	text("TRANSACTION"),
	text("WORK"),
}, nil))

func parseBegin(scanner scan.TinyScanner) (*ast.BeginStatement, error) {
	parser := allX(
		committed("BEGIN", text("BEGIN")),
		transactionNoise,
	)

	if ok, _ := parser(scanner); ok {
		return &ast.BeginStatement{}, nil
	}

	return nil, nil
}

func parseCommit(scanner scan.TinyScanner) (*ast.CommitStatement, error) {
	parser := allX(
		committed("COMMIT", text("COMMIT")),
		transactionNoise,
	)

	if ok, _ := parser(scanner); ok {
		return &ast.CommitStatement{}, nil
	}

	return nil, nil
}

func parseRollback(scanner scan.TinyScanner) (*ast.RollbackStatement, error) {
	parser := allX(
		committed("ROLLBACK", text("ROLLBACK")),
		transactionNoise,
	)

	if ok, _ := parser(scanner); ok {
		return &ast.RollbackStatement{}, nil
	}

	return nil, nil
}
