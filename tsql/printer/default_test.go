package printer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/parser"
)

func TestDefault_Statements(t *testing.T) {
	testCases := []struct {
		sql      string
		expected string
	}{
		{
			sql:      "insert into t (a, b) values (1, 'x'), (2, 'y')",
			expected: "INSERT INTO t (a, b) VALUES ((1), ('x')), ((2), ('y'))",
		},
		{
			sql:      `INSERT INTO public."Accounts" AS acc VALUES (DEFAULT, $1)`,
			expected: `INSERT INTO public."Accounts" AS acc VALUES (DEFAULT, ($1))`,
		},
		{
			sql:      "INSERT INTO t (a) SELECT b FROM s WHERE c > 1 RETURNING a AS x, *",
			expected: "INSERT INTO t (a) SELECT b FROM s WHERE (c > (1)) RETURNING a AS x, *",
		},
		{
			sql:      "INSERT INTO t (a) (SELECT b FROM s ORDER BY b LIMIT 1)",
			expected: "INSERT INTO t (a) (SELECT b FROM s ORDER BY b LIMIT 1)",
		},
		{
			sql:      "select * from foo f, bar as b where not a = 1 and b <> 'x' or c = 2",
			expected: "SELECT * FROM foo AS f, bar AS b WHERE (((NOT (a = (1))) AND (b <> ('x'))) OR (c = (2)))",
		},
		{
			sql:      "SELECT count(*), sum(price * 2) AS total FROM products",
			expected: "SELECT (count(*)), (sum((price * (2)))) AS total FROM products",
		},
		{
			sql:      "CREATE TABLE IF NOT EXISTS users (id integer PRIMARY KEY, name varchar(20), tags text[], at timestamp with time zone)",
			expected: "CREATE TABLE IF NOT EXISTS users (id integer PRIMARY KEY, name varchar(20), tags text[], at timestamp with time zone)",
		},
		{
			sql:      "SELECT a IS NULL, b IS NOT TRUE, c ISNULL, d notnull, NOT e IS NULL FROM t",
			expected: "SELECT (a IS NULL), (b IS NOT TRUE), (c IS NULL), (d IS NOT NULL), (NOT (e IS NULL)) FROM t",
		},
		{
			sql:      "SELECT CASE WHEN a > 1 THEN 'big' ELSE 'small' END AS size, CASE b WHEN 1 THEN 'one' END FROM t",
			expected: "SELECT (CASE WHEN (a > (1)) THEN ('big') ELSE ('small') END) AS size, (CASE b WHEN (1) THEN ('one') END) FROM t",
		},
		{
			sql:      `SELECT ARRAY[1, 2], ARRAY[]::int[], interval '1 day', E'a\'b', data->'k'->>'v' FROM t`,
			expected: `SELECT (ARRAY[(1), (2)]), ((ARRAY[])::int[] ), (('1 day')::interval ), (E'a\'b'), ((data -> ('k')) ->> ('v')) FROM t`,
		},
		{
			sql:      "begin transaction",
			expected: "BEGIN",
		},
		{
			sql:      "commit work",
			expected: "COMMIT",
		},
		{
			sql:      "ROLLBACK",
			expected: "ROLLBACK",
		},
		{
			sql:      "DELETE FROM users WHERE id = 1",
			expected: "DELETE FROM users WHERE id = 1",
		},
	}

	p := NewDefault()

	for _, tc := range testCases {
		t.Run(tc.sql, func(t *testing.T) {
			r := require.New(t)

			stmt, err := parser.ParseStatement(tc.sql)
			r.NoError(err)

			result, err := p.Statement(stmt)
			r.NoError(err)
			r.Equal(tc.expected, result)
		})
	}
}

func TestDefault_Expressions(t *testing.T) {
	testCases := []struct {
		expr     ast.Expression
		expected string
	}{
		{&ast.BasicLiteral{Kind: ast.LiteralInteger, Value: "42"}, "(42)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: "10.00"}, "(10.)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: "1.20"}, "(1.2)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: ".5"}, "(0.5)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: "-0.50"}, "(-0.5)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: "1.5e10"}, "(1.5e10)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: "00.50"}, "(0.5)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNumeric, Value: "-007.0"}, "(-7.)"},
		{&ast.BasicLiteral{Kind: ast.LiteralInteger, Value: "007"}, "(7)"},
		{&ast.BasicLiteral{Kind: ast.LiteralInteger, Value: "000"}, "(0)"},
		{&ast.BasicLiteral{Kind: ast.LiteralEscapeString, Value: `tab\there`}, `(E'tab\there')`},
		{&ast.BasicLiteral{Kind: ast.LiteralString, Value: "O'Connor"}, "('O''Connor')"},
		{&ast.BasicLiteral{Kind: ast.LiteralBoolean, Value: "false"}, "(false)"},
		{&ast.BasicLiteral{Kind: ast.LiteralNull, Value: "NULL"}, "(NULL)"},
		{&ast.BasicLiteral{Kind: ast.LiteralDefault, Value: "DEFAULT"}, "DEFAULT"},
		{&ast.Ident{Value: "name"}, "name"},
		{&ast.Ident{Qualifier: "u", Value: "fullName"}, `u."fullName"`},
		{&ast.Ident{Value: "select"}, `"select"`},
		{&ast.Ident{Value: `a"b`}, `"a""b"`},
		{&ast.RawExpression{Text: "NOW()"}, "(NOW() )"},
		{&ast.Param{Index: 3}, "($3)"},
		{
			&ast.Cast{
				Expr: &ast.BasicLiteral{Kind: ast.LiteralString, Value: "John"},
				Type: &ast.TypeName{Name: "user_name", Quoted: true},
			},
			`(('John')::"user_name" )`,
		},
		{
			&ast.Cast{
				Expr: &ast.Ident{Value: "price"},
				Type: &ast.TypeName{Name: "numeric", Modifiers: []string{"10", "2"}},
			},
			"(price::numeric(10, 2) )",
		},
		{
			&ast.UnaryOperation{Operator: "-", Operand: &ast.Ident{Value: "x"}},
			"(-x)",
		},
		{
			&ast.UnaryOperation{Operator: "NOT", Operand: &ast.BasicLiteral{Kind: ast.LiteralBoolean, Value: "true"}},
			"(NOT (true))",
		},
		{
			&ast.FunctionCall{Schema: "pg_catalog", Name: "now"},
			"(pg_catalog.now())",
		},
	}

	p := NewDefault()

	for _, tc := range testCases {
		result, err := p.Expression(tc.expr)
		require.NoError(t, err)
		require.Equal(t, tc.expected, result)
	}
}

func TestDefault_Ident(t *testing.T) {
	r := require.New(t)
	p := NewDefault()

	r.Equal("user_data", p.Ident("user_data"))
	r.Equal("a$1", p.Ident("a$1"))
	r.Equal(`"userId"`, p.Ident("userId"))
	r.Equal(`"1abc"`, p.Ident("1abc"))
	r.Equal(`"user"`, p.Ident("user"))
	r.Equal(`"my table"`, p.Ident("my table"))
}

func TestDefault_UnsupportedNode(t *testing.T) {
	r := require.New(t)
	p := NewDefault()

	_, err := p.Expression(nil)
	r.True(errors.Is(err, ErrUnsupportedNode))

	_, err = p.Statement(&ast.InsertStatement{Table: ast.TableRef{Name: "t"}})
	r.True(errors.Is(err, ErrUnsupportedNode))

	_, err = p.Statement(&ast.InsertStatement{
		Table:  ast.TableRef{Name: "t"},
		Source: &ast.Values{Rows: []ast.Row{{nil}}},
	})
	r.True(errors.Is(err, ErrUnsupportedNode))

	_, err = p.Expression(&ast.CaseExpression{Else: &ast.Ident{Value: "a"}})
	r.True(errors.Is(err, ErrUnsupportedNode))
}
