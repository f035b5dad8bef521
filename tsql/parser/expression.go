package parser

import (
	"strconv"
	"strings"

	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

type expressionParserFn func(scan.TinyScanner) (bool, ast.Expression)

type opParserFn func(scan.TinyScanner) (bool, string)

type nodifyExpression func(expr ast.Expression)

type expressionMaker func(op string, a ast.Expression, b ast.Expression) ast.Expression

func makeBinaryExpression() expressionMaker {
	return func(operatorStr string, left ast.Expression, right ast.Expression) ast.Expression {
		return &ast.BinaryOperation{
			Left:     left,
			Right:    right,
			Operator: operatorStr,
		}
	}
}

// chainl requires at least one expression followed by an optional series of [op expression]
// this combinator is used to eliminate left recursion and build a left-associative expression.
//
// Left recursion:
// e.g. Expression -> Expression + Term
// pseudo code: (would never terminate)
// void Expression() {
//   Expression();
//   match('+');
//   Term();
// }
// left-to-right recursive descent parsers can't handle left recursion and this is just one of several possible
// ways to eliminate left recursion.
//
// Left associativity:
// e.g. (from wikipedia) Consider the expression a ~ b ~ c.
// If the operator ~ has left associativity, this expression would be interpreted as (a ~ b) ~ c.
// If the operator has right associativity, the expression would be interpreted as a ~ (b ~ c).
func chainl(ep expressionParserFn, em expressionMaker, opParser opParserFn) expressionParserFn {
	return func(scanner scan.TinyScanner) (bool, ast.Expression) {
		success, expression := ep(scanner)

		if !success {
			return false, nil
		}

		for {
			os, op := opParser(scanner)
			if !os {
				return true, expression
			}

			ps, right := ep(scanner)
			if !ps {
				return false, nil
			}

			expression = em(op, expression, right)
		}
	}
}

// operator matches any one of the given token kinds and yields its text.
// word operators are upper cased so AND/and print the same.
func operator(kinds ...lexer.Kind) opParserFn {
	return func(scanner scan.TinyScanner) (bool, string) {
		next := scanner.Peek()

		for _, kind := range kinds {
			if next.Kind == kind {
				scanner.Next()
				return true, strings.ToUpper(next.Text)
			}
		}

		return false, ""
	}
}

func logicalOr() opParserFn {
	return operator(lexer.TokenOr)
}

func logicalAnd() opParserFn {
	return operator(lexer.TokenAnd)
}

func comparison() opParserFn {
	return operator(
		lexer.TokenEquals,
		lexer.TokenNotEq,
		lexer.TokenLt,
		lexer.TokenGt,
		lexer.TokenLte,
		lexer.TokenGte,
	)
}

// concat covers the operators PostgreSQL groups as "any other operator"
func concat() opParserFn {
	return operator(lexer.TokenConcat, lexer.TokenArrow)
}

func sum() opParserFn {
	return operator(lexer.TokenPlus, lexer.TokenMinus)
}

func mult() opParserFn {
	return operator(lexer.TokenAsterisk, lexer.TokenDivide, lexer.TokenModulo)
}

// parseExpression parses a full expression. On failure nothing is consumed.
func parseExpression() expressionParserFn {
	ep := chainl(
		chainl(
			parseNot(
				parseIs(
					chainl(
						chainl(
							chainl(
								chainl(
									parseUnary(parseCastExpression()),
									makeBinaryExpression(),
									mult(),
								),
								makeBinaryExpression(),
								sum(),
							),
							makeBinaryExpression(),
							concat(),
						),
						makeBinaryExpression(),
						comparison(),
					),
				),
			),
			makeBinaryExpression(),
			logicalAnd(),
		),
		makeBinaryExpression(),
		logicalOr(),
	)

	return func(scanner scan.TinyScanner) (bool, ast.Expression) {
		_, reset := scanner.Mark()

		ok, expr := ep(scanner)
		if !ok {
			reset()
			return false, nil
		}

		return true, expr
	}
}

// parseNot handles the NOT prefix which binds looser than comparisons.
func parseNot(inner expressionParserFn) expressionParserFn {
	var p expressionParserFn
	p = func(scanner scan.TinyScanner) (bool, ast.Expression) {
		if scanner.Peek().Kind != lexer.TokenNot {
			return inner(scanner)
		}

		scanner.Next()

		ok, operand := p(scanner)
		if !ok {
			return false, nil
		}

		return true, &ast.UnaryOperation{Operator: "NOT", Operand: operand}
	}

	return p
}

// parseIs handles the postfix tests IS [NOT] NULL|TRUE|FALSE, ISNULL and
// NOTNULL. They bind looser than comparisons and tighter than NOT.
func parseIs(inner expressionParserFn) expressionParserFn {
	return func(scanner scan.TinyScanner) (bool, ast.Expression) {
		ok, expr := inner(scanner)
		if !ok {
			return false, nil
		}

		for {
			next := scanner.Peek()

			switch {
			case word("ISNULL")(next):
				scanner.Next()
				expr = &ast.IsTest{Expr: expr, Test: "NULL"}
			case word("NOTNULL")(next):
				scanner.Next()
				expr = &ast.IsTest{Expr: expr, Not: true, Test: "NULL"}
			case word("IS")(next):
				scanner.Next()
				test := &ast.IsTest{Expr: expr}

				if scanner.Peek().Kind == lexer.TokenNot {
					scanner.Next()
					test.Not = true
				}

				switch operand := scanner.Next(); operand.Kind {
				case lexer.TokenNull:
					test.Test = "NULL"
				case lexer.TokenBoolean:
					test.Test = strings.ToUpper(operand.Text)
				default:
					return false, nil
				}

				expr = test
			default:
				return true, expr
			}
		}
	}
}

// parseUnary handles prefix signs. A minus in front of a number is folded
// into the literal.
func parseUnary(inner expressionParserFn) expressionParserFn {
	var p expressionParserFn
	p = func(scanner scan.TinyScanner) (bool, ast.Expression) {
		ok, op := operator(lexer.TokenPlus, lexer.TokenMinus)(scanner)
		if !ok {
			return inner(scanner)
		}

		ok, operand := p(scanner)
		if !ok {
			return false, nil
		}

		if literal, isLiteral := operand.(*ast.BasicLiteral); isLiteral && op == "-" &&
			(literal.Kind == ast.LiteralInteger || literal.Kind == ast.LiteralNumeric) &&
			!strings.HasPrefix(literal.Value, "-") {
			return true, &ast.BasicLiteral{Value: "-" + literal.Value, Kind: literal.Kind}
		}

		return true, &ast.UnaryOperation{Operator: op, Operand: operand}
	}

	return p
}

// parseCastExpression parses a term followed by any number of ::type suffixes.
func parseCastExpression() expressionParserFn {
	return func(scanner scan.TinyScanner) (bool, ast.Expression) {
		ok, expr := parseTerm()(scanner)
		if !ok {
			return false, nil
		}

		for scanner.Peek().Kind == lexer.TokenCast {
			var target *ast.TypeName

			cast := allX(
				token(lexer.TokenCast),
				typeName(func(t *ast.TypeName) {
					target = t
				}),
			)

			if ok, _ := cast(scanner); !ok {
				return false, nil
			}

			expr = &ast.Cast{Expr: expr, Type: target}
		}

		return true, expr
	}
}

func parseTerm() expressionParserFn {
	return func(scanner scan.TinyScanner) (bool, ast.Expression) {
		var expr ast.Expression

		set := func(e ast.Expression) {
			expr = e
		}

		ok, _ := oneOf([]parserFn{
			parseLiteral(set),
			parseParam(set),
			parseCastCall(set),
			parseArray(set),
			parseCase(set),
			parseTypedLiteral(set),
			parseFunctionCall(set),
			parseIdent(set),
			parens(lazy(func() parserFn {
				return makeExpressionParser(set)
			})),
		}, nil)(scanner)

		return ok, expr
	}
}

func parseLiteral(nodify nodifyExpression) parserFn {
	literal := func(kind lexer.Kind, makeLiteral func(text string) *ast.BasicLiteral) parserFn {
		return requiredToken(kind, func(tokens []lexer.Token) {
			nodify(makeLiteral(tokens[0].Text))
		})
	}

	return oneOf([]parserFn{
		literal(lexer.TokenString, stringLiteral),
		literal(lexer.TokenEscapeString, func(text string) *ast.BasicLiteral {
			return &ast.BasicLiteral{Value: text[2 : len(text)-1], Kind: ast.LiteralEscapeString}
		}),
		literal(lexer.TokenNumber, func(text string) *ast.BasicLiteral {
			kind := ast.LiteralInteger
			if strings.ContainsAny(text, ".eE") {
				kind = ast.LiteralNumeric
			}

			return &ast.BasicLiteral{Value: text, Kind: kind}
		}),
		literal(lexer.TokenBoolean, func(text string) *ast.BasicLiteral {
			return &ast.BasicLiteral{Value: strings.ToLower(text), Kind: ast.LiteralBoolean}
		}),
		literal(lexer.TokenNull, func(string) *ast.BasicLiteral {
			return &ast.BasicLiteral{Value: "NULL", Kind: ast.LiteralNull}
		}),
		literal(lexer.TokenDefault, func(string) *ast.BasicLiteral {
			return &ast.BasicLiteral{Value: "DEFAULT", Kind: ast.LiteralDefault}
		}),
	}, nil)
}

func stringLiteral(text string) *ast.BasicLiteral {
	return &ast.BasicLiteral{
		Value: strings.ReplaceAll(text[1:len(text)-1], "''", "'"),
		Kind:  ast.LiteralString,
	}
}

// parseTypedLiteral parses type 'string', e.g. interval '1 day', into a cast
func parseTypedLiteral(nodify nodifyExpression) parserFn {
	var target *ast.TypeName
	var value *ast.BasicLiteral

	return unlessConstruct(all([]parserFn{
		typeName(func(t *ast.TypeName) {
			target = t
		}),
		requiredToken(lexer.TokenString, func(tokens []lexer.Token) {
			value = stringLiteral(tokens[0].Text)
		}),
	}, func([][]lexer.Token) {
		nodify(&ast.Cast{Expr: value, Type: target})
	}))
}

// parseArray parses ARRAY[a, b, ...]
func parseArray(nodify nodifyExpression) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		array := &ast.ArrayConstructor{}

		ok, _ := allX(
			text("ARRAY"),
			token(lexer.TokenOpenBracket),
			optionalX(commaSeparated(makeExpressionParser(func(e ast.Expression) {
				array.Elements = append(array.Elements, e)
			}))),
			token(lexer.TokenCloseBracket),
		)(scanner)

		if !ok {
			return false, nil
		}

		nodify(array)

		return true, array
	}
}

// parseCase parses both the simple and the searched form of CASE
func parseCase(nodify nodifyExpression) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		expr := &ast.CaseExpression{}
		var when ast.When

		operand := func(scanner scan.TinyScanner) (bool, interface{}) {
			if word("WHEN")(scanner.Peek()) {
				return false, nil
			}

			return makeExpressionParser(func(e ast.Expression) {
				expr.Operand = e
			})(scanner)
		}

		branch := all([]parserFn{
			text("WHEN"),
			makeExpressionParser(func(e ast.Expression) {
				when.Condition = e
			}),
			text("THEN"),
			makeExpressionParser(func(e ast.Expression) {
				when.Result = e
			}),
		}, func([][]lexer.Token) {
			expr.Whens = append(expr.Whens, when)
			when = ast.When{}
		})

		ok, _ := allX(
			text("CASE"),
			optionalX(operand),
			branch,
			zeroOrMore(branch),
			optionalX(allX(
				text("ELSE"),
				makeExpressionParser(func(e ast.Expression) {
					expr.Else = e
				}),
			)),
			text("END"),
		)(scanner)

		if !ok {
			return false, nil
		}

		nodify(expr)

		return true, expr
	}
}

func parseParam(nodify nodifyExpression) parserFn {
	return requiredToken(lexer.TokenParam, func(tokens []lexer.Token) {
		index, _ := strconv.Atoi(tokens[0].Text[1:])
		nodify(&ast.Param{Index: index})
	})
}

func parseIdent(nodify nodifyExpression) parserFn {
	return unlessConstruct(qualifiedName(func(qualifier, name string, _ bool) {
		nodify(&ast.Ident{Qualifier: qualifier, Value: name})
	}))
}

// unlessConstruct fails on CASE and ARRAY so a malformed construct is an
// error rather than a column or type of that name.
func unlessConstruct(p parserFn) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		if next := scanner.Peek(); word("CASE")(next) || word("ARRAY")(next) {
			return false, nil
		}

		return p(scanner)
	}
}

// parseCastCall parses CAST(expr AS type)
func parseCastCall(nodify nodifyExpression) parserFn {
	var operand ast.Expression
	var target *ast.TypeName

	return all([]parserFn{
		keyword(lexer.TokenCastKeyword),
		token(lexer.TokenOpenParen),
		makeExpressionParser(func(e ast.Expression) {
			operand = e
		}),
		keyword(lexer.TokenAs),
		typeName(func(t *ast.TypeName) {
			target = t
		}),
		token(lexer.TokenCloseParen),
	}, func([][]lexer.Token) {
		nodify(&ast.Cast{Expr: operand, Type: target})
	})
}

func parseFunctionCall(nodify nodifyExpression) parserFn {
	call := &ast.FunctionCall{}

	arguments := oneOf([]parserFn{
		requiredToken(lexer.TokenAsterisk, func([]lexer.Token) {
			call.Star = true
		}),
		commaSeparated(makeExpressionParser(func(e ast.Expression) {
			call.Args = append(call.Args, e)
		})),
	}, nil)

	return func(scanner scan.TinyScanner) (bool, interface{}) {
		*call = ast.FunctionCall{}

		ok, _ := allX(
			qualifiedName(func(qualifier, name string, _ bool) {
				call.Schema = qualifier
				call.Name = name
			}),
			token(lexer.TokenOpenParen),
			optionalX(arguments),
			token(lexer.TokenCloseParen),
		)(scanner)

		if !ok {
			return false, nil
		}

		result := *call
		nodify(&result)

		return true, &result
	}
}

// typeName parses a cast target such as text, "user_name", varchar(20),
// numeric(10, 2), int[] or timestamp with time zone.
func typeName(n func(t *ast.TypeName)) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		t := &ast.TypeName{}

		ok, _ := allX(
			qualifiedName(func(qualifier, name string, quoted bool) {
				t.Schema = qualifier
				t.Name = name
				t.Quoted = quoted
			}),
		)(scanner)
		if !ok {
			return false, nil
		}

		if !t.Quoted {
			t.Name += multiWordSuffix(scanner, t.Name)
		}

		optional(parensCommaSep(token(lexer.TokenNumber)), func(tokens []lexer.Token) {
			for _, tok := range tokens {
				if tok.Kind == lexer.TokenNumber {
					t.Modifiers = append(t.Modifiers, tok.Text)
				}
			}
		})(scanner)

		for {
			if ok, _ := allX(token(lexer.TokenOpenBracket), token(lexer.TokenCloseBracket))(scanner); !ok {
				break
			}
			t.ArrayBounds++
		}

		n(t)

		return true, t
	}
}

// multiWordSuffix consumes the remaining words of the SQL standard
// type names that are spelled with more than one word.
func multiWordSuffix(scanner scan.TinyScanner, name string) string {
	var suffixes [][]string

	switch name {
	case "double":
		suffixes = [][]string{{"precision"}}
	case "character", "char":
		suffixes = [][]string{{"varying"}}
	case "timestamp", "time":
		suffixes = [][]string{{"with", "time", "zone"}, {"without", "time", "zone"}}
	}

	for _, words := range suffixes {
		parsers := make([]parserFn, len(words))
		for i, word := range words {
			parsers[i] = text(word)
		}

		if ok, _ := all(parsers, nil)(scanner); ok {
			return " " + strings.Join(words, " ")
		}
	}

	return ""
}

func makeExpressionParser(nodify nodifyExpression) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		success, expr := parseExpression()(scanner)

		if success {
			nodify(expr)
		}

		return success, expr
	}
}
